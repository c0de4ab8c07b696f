// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Artifact loading
	ArtifactLoads      *prometheus.CounterVec // labels: artifact, result
	ArtifactLoadTime   *prometheus.HistogramVec
	CacheInvalidations prometheus.Counter

	// Normalization
	PairsNormalized prometheus.Counter
	PairsDropped    prometheus.Counter
	LoadFailures    prometheus.Counter

	// Simulation
	CurvesSimulated  prometheus.Counter
	SimulationErrors prometheus.Counter
	CurvesArchived   prometheus.Counter

	// HTTP
	RequestDuration *prometheus.HistogramVec
	WSClients       prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "forex_dashboard"
	}

	return &Metrics{
		ArtifactLoads: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "artifact",
			Name:      "loads_total",
			Help:      "Artifact load attempts by artifact name and result",
		}, []string{"artifact", "result"}),
		ArtifactLoadTime: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "artifact",
			Name:      "load_duration_seconds",
			Help:      "Artifact read+parse duration",
			Buckets:   prometheus.DefBuckets,
		}, []string{"artifact"}),
		CacheInvalidations: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "artifact",
			Name:      "cache_invalidations_total",
			Help:      "Explicit cache invalidations",
		}),
		PairsNormalized: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "normalize",
			Name:      "pairs_total",
			Help:      "Pairs that passed normalization",
		}),
		PairsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "normalize",
			Name:      "pairs_dropped_total",
			Help:      "Pairs dropped for failing validation",
		}),
		LoadFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "load_failures_total",
			Help:      "Whole-model load failures surfaced to the UI",
		}),
		CurvesSimulated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "equity",
			Name:      "curves_simulated_total",
			Help:      "Equity curves generated",
		}),
		SimulationErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "equity",
			Name:      "simulation_errors_total",
			Help:      "Simulator input errors",
		}),
		CurvesArchived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "equity",
			Name:      "curves_archived_total",
			Help:      "Equity curves written to the archive",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration by route and status",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
		WSClients: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ws",
			Name:      "clients",
			Help:      "Connected websocket clients",
		}),
	}
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
