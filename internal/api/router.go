package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Advisor/internal/broker"
)

func NewRouter(b *broker.Broker, rateLimit int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(rateLimit))

	recs := NewRecommendationsHandler(b)
	sessions := NewSessionsHandler(b)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog/options", recs.Options)
		r.Get("/scoring/weights", recs.Weights)
		r.Post("/recommendations", recs.Recommend)

		r.Post("/sessions", sessions.Create)
		r.Get("/sessions/{id}", sessions.Get)
		r.Delete("/sessions/{id}", sessions.Delete)
		r.Post("/sessions/{id}/start", sessions.Start)
		r.Post("/sessions/{id}/answer", sessions.Answer)
		r.Post("/sessions/{id}/restart", sessions.Restart)
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
