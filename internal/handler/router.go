package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	jokehandler "github.com/zhouzirui/babysitter/backend/internal/handler/joke"
	skillhandler "github.com/zhouzirui/babysitter/backend/internal/handler/skill"
	transcripthandler "github.com/zhouzirui/babysitter/backend/internal/handler/transcript"
	middlewarePkg "github.com/zhouzirui/babysitter/backend/internal/middleware"
	"github.com/zhouzirui/babysitter/backend/internal/model/joke"
	transcriptservice "github.com/zhouzirui/babysitter/backend/internal/service/transcript"
	"github.com/zhouzirui/babysitter/backend/pkg/utils"
)

// Deps are the services the HTTP surface is built on. Transcripts may be nil.
type Deps struct {
	Executor    skillhandler.Executor
	AppID       string
	Jokes       joke.Store
	Transcripts transcriptservice.Store
	Logger      *zap.Logger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		skillhandler.New(deps.Executor, logger).RegisterRoutes(api)
		skillhandler.NewConsoleHandler(deps.Executor, deps.AppID, logger).RegisterRoutes(api)

		if deps.Jokes != nil {
			jokehandler.New(deps.Jokes).RegisterRoutes(api)
		}
		if deps.Transcripts != nil {
			transcripthandler.New(deps.Transcripts, logger).RegisterRoutes(api)
		}
	})

	return r
}
