package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sentinel-refactor/httpapi/middleware"
	"sentinel-refactor/pkg/metrics"
)

// NewRouter wires the full route table (spec §6) onto a chi.Mux: tracing
// first, then recovery, metrics, security headers, CORS, and rate limiting,
// mirroring the teacher's layering in middleware/middleware.go and
// router/router.go.
func NewRouter(h *Handler, collector *metrics.Collector, corsOrigins []string, rateLimitRPS float64, rateLimitBurst int) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Tracing)
	r.Use(chimw.Recoverer)
	if collector != nil {
		r.Use(middleware.Metrics(collector))
	}
	r.Use(middleware.SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	limiter := middleware.NewRateLimiter(rateLimitRPS, rateLimitBurst)
	r.Use(limiter.RateLimit)

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", h.Analyze)
		r.Post("/upload", h.Upload)
		r.Get("/analysis/{id}", func(w http.ResponseWriter, req *http.Request) {
			h.GetAnalysis(w, req, chi.URLParam(req, "id"))
		})
		r.Get("/analyses", h.ListAnalyses)
		r.Post("/refactor/apply", h.ApplyRefactor)
		r.Get("/stats", h.Stats)
	})

	return r
}
