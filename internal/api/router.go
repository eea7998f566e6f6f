package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// NewRouter builds and returns the Chi router with all routes configured.
// Rate limiting is applied globally per IP; ratePerMinute <= 0 means 60.
// db and redis may be nil when the deployment runs without them.
func NewRouter(handlers *Handlers, ratePerMinute int, db, redis Pinger, log *slog.Logger) *chi.Mux {
	if ratePerMinute <= 0 {
		ratePerMinute = 60
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(httprate.LimitByIP(ratePerMinute, time.Minute))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", HealthHandlerFunc(db, redis, log))

		r.Get("/home", handlers.Home)
		r.Get("/search", handlers.Search)
		r.Get("/inspirations", handlers.Inspirations)
		r.Get("/nearby", handlers.Nearby)
		r.Get("/destinations/{slug}", handlers.GetDestination)
		r.Post("/destinations/{slug}/refresh", handlers.RefreshDestination)

		r.Get("/plan/options", handlers.PlanOptions)
		r.Post("/plan/match", handlers.MatchPlan)
		r.Get("/plans", handlers.RecentPlans)
		r.Get("/plans/{id}", handlers.GetPlan)

		r.Get("/profile", handlers.Profile)
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
