package skill

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	skillmodel "github.com/zhouzirui/babysitter/backend/internal/model/skill"
	"github.com/zhouzirui/babysitter/backend/internal/model/transcript"
	"github.com/zhouzirui/babysitter/backend/internal/service/dialog"
	transcriptservice "github.com/zhouzirui/babysitter/backend/internal/service/transcript"
)

var (
	ErrInvalidApplicationID = errors.New("invalid application id")
	ErrUnsupportedRequest   = errors.New("unsupported request type")
)

// Dialog is the conversation logic the executor drives.
type Dialog interface {
	OnSessionStarted(ctx context.Context, session skillmodel.Session)
	OnLaunch(ctx context.Context, session skillmodel.Session) (dialog.Result, error)
	OnIntent(ctx context.Context, intentName string, session skillmodel.Session) (dialog.Result, error)
	OnSessionEnded(ctx context.Context, session skillmodel.Session)
}

// Executor validates a request envelope, routes it to the dialog and builds
// the response envelope.
type Executor struct {
	appID       string
	dialog      Dialog
	transcripts transcriptservice.Store
	logger      *zap.Logger
}

// NewExecutor creates an executor. An empty appID disables the application
// check; a nil transcripts store disables turn recording.
func NewExecutor(appID string, d Dialog, transcripts transcriptservice.Store, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		appID:       appID,
		dialog:      d,
		transcripts: transcripts,
		logger:      logger.Named("skill"),
	}
}

// Execute handles one request envelope.
func (e *Executor) Execute(ctx context.Context, env skillmodel.RequestEnvelope) (*skillmodel.ResponseEnvelope, error) {
	if e.appID != "" && env.Session.Application.ApplicationID != e.appID {
		e.logger.Warn("rejected application id",
			zap.String("applicationId", env.Session.Application.ApplicationID),
			zap.String("requestId", env.Request.RequestID),
		)
		return nil, fmt.Errorf("%w: %q", ErrInvalidApplicationID, env.Session.Application.ApplicationID)
	}

	session := env.Session
	if session.Attributes == nil {
		session.Attributes = skillmodel.Attributes{}
	}

	if session.New {
		e.dialog.OnSessionStarted(ctx, session)
	}

	var (
		result     dialog.Result
		err        error
		intentName string
	)

	switch env.Request.Type {
	case skillmodel.RequestLaunch:
		result, err = e.dialog.OnLaunch(ctx, session)
	case skillmodel.RequestIntent:
		if env.Request.Intent != nil {
			intentName = env.Request.Intent.Name
		}
		result, err = e.dialog.OnIntent(ctx, intentName, session)
	case skillmodel.RequestSessionEnded:
		e.dialog.OnSessionEnded(ctx, session)
		e.forget(ctx, session.ID)
		return skillmodel.EmptyResponseEnvelope(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRequest, env.Request.Type)
	}
	if err != nil {
		return nil, err
	}

	if result.Response.ShouldEndSession {
		e.forget(ctx, session.ID)
	} else {
		e.record(ctx, transcript.Turn{
			SessionID:   session.ID,
			RequestType: env.Request.Type,
			Intent:      intentName,
			Speech:      result.Response.Speech.Text,
		})
	}

	return skillmodel.NewResponseEnvelope(result.Response, result.Attributes), nil
}

func (e *Executor) record(ctx context.Context, turn transcript.Turn) {
	if e.transcripts == nil || turn.SessionID == "" {
		return
	}
	if err := e.transcripts.Append(ctx, turn); err != nil {
		e.logger.Warn("record turn failed", zap.String("sessionId", turn.SessionID), zap.Error(err))
	}
}

func (e *Executor) forget(ctx context.Context, sessionID string) {
	if e.transcripts == nil || sessionID == "" {
		return
	}
	if err := e.transcripts.Delete(ctx, sessionID); err != nil {
		e.logger.Warn("delete transcript failed", zap.String("sessionId", sessionID), zap.Error(err))
	}
}
