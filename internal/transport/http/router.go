package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/sebastian-gm/hr-data-insights/internal/analytics"
	"github.com/sebastian-gm/hr-data-insights/internal/config"
	"github.com/sebastian-gm/hr-data-insights/internal/dataprocessing"
	"github.com/sebastian-gm/hr-data-insights/internal/middleware"
)

// RouterOptions bundles everything the serving surface needs.
type RouterOptions struct {
	Config  config.ServerConfig
	Result  *dataprocessing.Result
	Report  *analytics.Report
	Version string
	Logger  *slog.Logger
	Metrics *Metrics
}

// NewRouter builds the top-level router: middleware chain, API routes, and
// the metrics endpoint. The metrics endpoint stays outside the middleware
// group so scrapes are not rate limited or logged per request.
func NewRouter(opts RouterOptions) chi.Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.StructuredLogger(logger))
		r.Use(middleware.Recoverer(logger))
		r.Use(middleware.SecurityHeaders)
		r.Use(middleware.Compress(5))

		if opts.Config.RateLimitRPS > 0 {
			r.Use(middleware.NewRateLimiter(
				opts.Config.RateLimitRPS,
				opts.Config.RateLimitBurst,
				logger,
			).Handler)
		}

		if opts.Metrics != nil {
			r.Use(opts.Metrics.Instrument)
		}

		r.Route("/api", func(r chi.Router) {
			r.Use(render.SetContentType(render.ContentTypeJSON))

			health := NewHealthHandler(opts.Version, logger)
			r.Get("/health", health.HealthCheck)
			r.Get("/health/live", health.LivenessCheck)
			r.Get("/health/ready", health.ReadinessCheck)
			r.Get("/version", health.Version)

			r.Mount("/data", NewDatasetHandler(opts.Result, logger).Routes())
			r.Mount("/analytics", NewAnalyticsHandler(opts.Report, logger).Routes())
		})
	})

	return r
}
