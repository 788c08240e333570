package routes

import (
	"net/http"

	"zeladoria-bknd/internal/config"
	"zeladoria-bknd/internal/handlers"
	"zeladoria-bknd/internal/logger"
	"zeladoria-bknd/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/uptrace/bun"
)

func NewRouter(db *bun.DB, cfg *config.Config, logr *logger.Logger) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// CORS middleware with config
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	areaSvc := services.NewAreaService(db)
	teamSvc := services.NewTeamService(db)

	areaHandler := handlers.NewAreaHandler(areaSvc, logr.Logger)
	teamHandler := handlers.NewTeamHandler(teamSvc, logr.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/areas", func(r chi.Router) {
			r.Post("/register-daily", areaHandler.RegisterDaily)
			r.Patch("/{id}/position", areaHandler.UpdatePosition)

			r.Get("/{category}", areaHandler.GetAreas)
			r.Get("/{category}/summary", areaHandler.GetCycleSummary)
		})

		r.Get("/teams", teamHandler.GetTeams)
	})

	return r
}
