package skill

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	skillmodel "github.com/zhouzirui/babysitter/backend/internal/model/skill"
	"github.com/zhouzirui/babysitter/backend/internal/service/dialog"
	skillservice "github.com/zhouzirui/babysitter/backend/internal/service/skill"
	"github.com/zhouzirui/babysitter/backend/pkg/utils"
)

const maxEnvelopeBytes = 1 << 20

// Executor runs one request envelope through the skill.
type Executor interface {
	Execute(ctx context.Context, env skillmodel.RequestEnvelope) (*skillmodel.ResponseEnvelope, error)
}

// Handler serves the voice platform endpoint.
type Handler struct {
	executor Executor
	logger   *zap.Logger
}

// New creates the skill handler.
func New(executor Executor, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		executor: executor,
		logger:   logger.Named("skill-http"),
	}
}

// RegisterRoutes registers the skill endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/skill", h.handleSkill)
}

func (h *Handler) handleSkill(w http.ResponseWriter, r *http.Request) {
	var env skillmodel.RequestEnvelope
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEnvelopeBytes)).Decode(&env); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request envelope")
		return
	}

	resp, err := h.executor.Execute(r.Context(), env)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("execute failed", zap.String("requestId", env.Request.RequestID), zap.Error(err))
		}
		utils.RespondError(w, status, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, skillservice.ErrInvalidApplicationID):
		return http.StatusForbidden
	case errors.Is(err, dialog.ErrUnknownIntent), errors.Is(err, skillservice.ErrUnsupportedRequest):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
