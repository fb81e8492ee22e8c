package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/riandyrn/otelchi"
	otelchimetric "github.com/riandyrn/otelchi/metric"
	"go.opentelemetry.io/otel"

	"github.com/parsenplate/scraper/internal/middleware"
	"github.com/parsenplate/scraper/internal/sentry"
)

// Routes builds the HTTP router with tracing, metrics and request logging.
func (s *Server) Routes() http.Handler {
	serviceName := s.cfg.ServiceName

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(sentry.HTTPMiddleware)

	r.Use(otelchi.Middleware(serviceName,
		otelchi.WithChiRoutes(r),
		otelchi.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	))

	metricCfg := otelchimetric.NewBaseConfig(serviceName, otelchimetric.WithMeterProvider(otel.GetMeterProvider()))
	r.Use(otelchimetric.NewRequestDurationMillis(metricCfg))
	r.Use(otelchimetric.NewRequestInFlight(metricCfg))
	r.Use(otelchimetric.NewResponseSizeBytes(metricCfg))

	r.Use(middleware.Logging)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))

	r.Get("/health", s.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/parse-recipe", s.HandleParseRecipe)
		r.Post("/url-validator", s.HandleURLValidator)
	})

	return r
}
