// Package metrics holds the Prometheus collectors of the service.
// Collectors register themselves with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts API requests by method, route pattern and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rhiza_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures API response time
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rhiza_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// ActiveEngines is the number of running layout engines
	ActiveEngines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rhiza_active_engines",
		Help: "Number of layout engines currently running",
	})

	// EngineTicks counts simulation steps across all engines
	EngineTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rhiza_engine_ticks_total",
		Help: "Total number of simulation ticks",
	})

	// ConvergenceTicks records how many ticks a layout took to settle
	ConvergenceTicks = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rhiza_engine_convergence_ticks",
		Help:    "Ticks taken for a layout to settle after a start or reheat",
		Buckets: []float64{50, 100, 200, 300, 400, 600, 1000},
	})

	// EngineIntents counts interaction intents by kind
	EngineIntents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rhiza_engine_intents_total",
			Help: "Total number of interaction intents applied",
		},
		[]string{"kind"},
	)

	// ProxyRequestsTotal counts proxied requests by upstream and status
	ProxyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rhiza_proxy_requests_total",
			Help: "Total number of proxied requests",
		},
		[]string{"upstream", "status"},
	)

	// CacheEntries is the number of stored payloads after the last purge, expired or not
	CacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rhiza_cache_entries",
		Help: "Number of payloads held in the cache",
	})

	// CacheLookups counts payload cache lookups by result (hit, miss, expired)
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rhiza_cache_lookups_total",
			Help: "Payload cache lookups by result",
		},
		[]string{"result"},
	)

	// SSEClients is the number of connected event stream clients
	SSEClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rhiza_sse_clients",
		Help: "Number of connected server-sent event clients",
	})
)
