package transcript

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	transcriptservice "github.com/zhouzirui/babysitter/backend/internal/service/transcript"
	"github.com/zhouzirui/babysitter/backend/pkg/utils"
)

// Handler serves the turns recorded for live sessions.
type Handler struct {
	store  transcriptservice.Store
	logger *zap.Logger
}

// New creates the transcript handler.
func New(store transcriptservice.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:  store,
		logger: logger.Named("transcript-http"),
	}
}

// RegisterRoutes registers the transcript routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions/{sessionID}/transcript", h.handleGetTranscript)
}

func (h *Handler) handleGetTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	turns, err := h.store.Load(r.Context(), sessionID)
	switch {
	case errors.Is(err, transcriptservice.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	case errors.Is(err, transcriptservice.ErrSessionRequired):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("load transcript failed", zap.String("sessionId", sessionID), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "failed to load transcript")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"sessionId": sessionID,
		"turns":     turns,
	})
}
