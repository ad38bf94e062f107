package dialog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/zhouzirui/babysitter/backend/internal/model/joke"
	"github.com/zhouzirui/babysitter/backend/internal/model/skill"
)

// Intent names routed by the controller.
const (
	IntentYes          = "AMAZON.YesIntent"
	IntentNo           = "AMAZON.NoIntent"
	IntentHelp         = "AMAZON.HelpIntent"
	IntentStop         = "AMAZON.StopIntent"
	IntentCancel       = "AMAZON.CancelIntent"
	IntentWhosThere    = "WhosThereIntent"
	IntentSetupNameWho = "SetupNameWhoIntent"
	IntentTellMeAJoke  = "TellMeAJokeIntent"
)

// ErrUnknownIntent is returned by OnIntent for names missing from the dispatch table.
var ErrUnknownIntent = errors.New("unknown intent")

// Result is the outcome of one turn: what to say and the attributes to carry forward.
type Result struct {
	Response   skill.Response
	Attributes skill.Attributes
}

// HandlerFunc handles one intent. attrs must be treated as read-only.
type HandlerFunc func(ctx context.Context, attrs skill.Attributes) (Result, error)

// Controller routes launch and intent events to dialog handlers.
type Controller struct {
	handlers map[string]HandlerFunc
	jokes    joke.Source
	logger   *zap.Logger
}

// NewController builds the controller with its dispatch table. jokes may be nil,
// in which case TellMeAJokeIntent answers with the retrieval fallback.
func NewController(jokes joke.Source, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Controller{
		jokes:  jokes,
		logger: logger.Named("dialog"),
	}
	c.handlers = map[string]HandlerFunc{
		IntentYes:          c.handleYes,
		IntentNo:           c.handleNo,
		IntentHelp:         c.handleHelp,
		IntentStop:         c.handleGoodbye,
		IntentCancel:       c.handleGoodbye,
		IntentWhosThere:    c.handleWhosThere,
		IntentSetupNameWho: c.handleSetupNameWho,
		IntentTellMeAJoke:  c.handleTellMeAJoke,
	}
	return c
}

// Intents lists the intent names the controller can route.
func (c *Controller) Intents() []string {
	names := make([]string, 0, len(c.handlers))
	for name := range c.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OnSessionStarted is called once for the first request of a session.
func (c *Controller) OnSessionStarted(_ context.Context, session skill.Session) {
	c.logger.Info("session started", zap.String("sessionId", session.ID))
}

// OnLaunch handles a launch without an intent by greeting the user.
func (c *Controller) OnLaunch(ctx context.Context, session skill.Session) (Result, error) {
	c.logger.Info("launch", zap.String("sessionId", session.ID))
	return c.greet(ctx, session.Attributes)
}

// OnIntent dispatches intentName. Unknown names yield ErrUnknownIntent.
func (c *Controller) OnIntent(ctx context.Context, intentName string, session skill.Session) (Result, error) {
	handler, ok := c.handlers[intentName]
	if !ok {
		c.logger.Warn("unknown intent", zap.String("sessionId", session.ID), zap.String("intent", intentName))
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownIntent, intentName)
	}

	c.logger.Debug("intent",
		zap.String("sessionId", session.ID),
		zap.String("intent", intentName),
		zap.Any("attributes", session.Attributes),
	)
	return handler(ctx, session.Attributes)
}

// OnSessionEnded is called when the platform closes the session.
func (c *Controller) OnSessionEnded(_ context.Context, session skill.Session) {
	c.logger.Info("session ended", zap.String("sessionId", session.ID))
}

func (c *Controller) handleGoodbye(_ context.Context, attrs skill.Attributes) (Result, error) {
	return Result{
		Response:   skill.Tell(skill.PlainText(goodbyeText)),
		Attributes: attrs.Clone(),
	}, nil
}

func (c *Controller) handleHelp(_ context.Context, attrs skill.Attributes) (Result, error) {
	text := helpFor(attrs)
	return Result{
		Response:   skill.Ask(skill.PlainText(text), skill.PlainText(text)),
		Attributes: attrs.Clone(),
	}, nil
}
