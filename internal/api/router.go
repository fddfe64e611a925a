package api

import (
	"net/http"

	"github.com/dom/fantasy-draft-assistant/internal/api/handlers"
	"github.com/dom/fantasy-draft-assistant/internal/api/middleware"
	"github.com/dom/fantasy-draft-assistant/internal/config"
	"github.com/dom/fantasy-draft-assistant/internal/render"
	"github.com/dom/fantasy-draft-assistant/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

func NewRouter(services *service.Services, cfg *config.Config, log *logrus.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS())

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("OK"))
	})

	renderer := render.NewCardRenderer()
	playerHandler := handlers.NewPlayerHandler(services, renderer, cfg, log)
	statusHandler := handlers.NewStatusHandler(services.Status, cfg, log)
	analysisHandler := handlers.NewAnalysisHandler(services.Analysis, cfg, log)
	refreshHandler := handlers.NewRefreshHandler(services.Stats, services.Analysis, cfg, log)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/players", func(r chi.Router) {
			r.Get("/", playerHandler.List)
			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", playerHandler.Get)
				r.Get("/status", statusHandler.Get)
				r.Put("/status", statusHandler.Update)
				r.Get("/teammates", playerHandler.GetTeammates)
				r.Post("/analysis", analysisHandler.Generate)
				r.Get("/card", playerHandler.GetCard)
				r.Post("/refresh-stats", refreshHandler.RefreshPlayer)
			})
		})
		r.Post("/refresh-stats", refreshHandler.RefreshTop)
	})

	return r
}
