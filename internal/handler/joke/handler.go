package joke

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/babysitter/backend/internal/model/joke"
	"github.com/zhouzirui/babysitter/backend/pkg/utils"
)

// Handler exposes the joke catalog.
type Handler struct {
	jokes joke.Store
}

// New creates the joke handler.
func New(jokes joke.Store) *Handler {
	return &Handler{
		jokes: jokes,
	}
}

// RegisterRoutes registers the joke routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/jokes", h.handleListJokes)
	r.Get("/jokes/{jokeID}", h.handleGetJoke)
}

func (h *Handler) handleListJokes(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.jokes.List())
}

func (h *Handler) handleGetJoke(w http.ResponseWriter, r *http.Request) {
	item, ok := h.jokes.FindByID(chi.URLParam(r, "jokeID"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "joke not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}
