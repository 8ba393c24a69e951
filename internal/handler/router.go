package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"rhiza/internal/service"
)

// RouterConfig holds what the router serves
type RouterConfig struct {
	Service *service.VisualizationService
	// Events serves the SSE stream; nil leaves /events unrouted
	Events      http.Handler
	CORSOrigins []string
	Logger      *zap.Logger
}

// NewRouter builds the HTTP API
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	h := NewVisualizationHandler(cfg.Service, logger)
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(Logger(logger))
	router.Use(Metrics)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/health", h.Health)
	router.Handle("/metrics", promhttp.Handler())
	if cfg.Events != nil {
		router.Get("/events", cfg.Events.ServeHTTP)
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/search/{word}", h.Search)

		r.Get("/containers", h.ListContainers)
		r.Route("/containers/{container}", func(r chi.Router) {
			r.Post("/graph", h.RenderGraph)
			r.Post("/word/{word}", h.ShowWord)

			r.Get("/frame", h.GetFrame)
			r.Get("/svg", h.GetSVG)
			r.Get("/render/{backend}", h.Render)
			r.Get("/positions", h.GetPositions)

			r.Post("/mode", h.ApplyMode)
			r.Post("/drag", h.Drag)
			r.Post("/hover", h.Hover)
			r.Post("/zoom", h.Zoom)
			r.Post("/pan", h.Pan)

			r.Delete("/", h.Close)
		})
	})

	return router
}
