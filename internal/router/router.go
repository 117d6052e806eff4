package router

import (
	"net/http"

	"foodshare/internal/handler"
	"foodshare/internal/metrics"
	"foodshare/internal/middleware"
	"foodshare/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Options configures the cross-cutting parts of the router.
type Options struct {
	AllowedOrigins []string
	Metrics        *metrics.HTTPMetrics
	Gatherer       prometheus.Gatherer
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	foodHandler *handler.FoodHandler,
	requestHandler *handler.RequestHandler,
	healthHandler *handler.HealthHandler,
	opts Options,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Recovery -> RequestID -> Logging -> CORS -> Metrics
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(opts.AllowedOrigins))
	r.Use(middleware.Metrics(opts.Metrics))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteFailure(w, http.StatusNotFound, model.ErrCodeNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteFailure(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	r.Get("/", healthHandler.Root)
	r.Get("/health/ready", healthHandler.Ready)

	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/foods", func(r chi.Router) {
		r.Get("/", foodHandler.List)
		r.Post("/", foodHandler.Create)
		r.Get("/search", foodHandler.Search)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", foodHandler.GetByID)
			r.Put("/", foodHandler.Update)
			r.Patch("/", foodHandler.Update)
			r.Delete("/", foodHandler.Delete)

			r.Post("/request", requestHandler.Create)
			r.Get("/requests", requestHandler.ListByFood)
			r.Patch("/requests/{reqId}", requestHandler.UpdateStatus)
		})
	})

	r.Get("/requests", requestHandler.ListAll)

	return r
}
