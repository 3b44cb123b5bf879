package metrics

import (
	"mercator-hq/callisto/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns the HTTP request instruments for a Callisto instance.
// It registers a request counter and a duration histogram on a private
// Prometheus registry and exposes explicit recording methods so the
// instruments are passed into the interceptor rather than reached through
// package-level state.
//
// Both instruments carry the label set {path, status_code, method}. The
// path label is always a resolved route template (or a RegExp stringification,
// or a raw path for unmatched routes), never a parametrized URL, so its
// cardinality is independent of request parameter values.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// requestsTotal counts completed requests. Its path label space is
	// additionally capped by the PathLimiter in the interceptor.
	requestsTotal *prometheus.CounterVec

	// requestDuration observes request latency in seconds for requests
	// whose route resolved.
	requestDuration *prometheus.HistogramVec
}

// NewCollector creates a collector and registers its instruments with the
// given registry. If registry is nil, a new private registry is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = config.DefaultNamespace
	}
	subsystem := cfg.Subsystem
	if subsystem == "" {
		subsystem = config.DefaultSubsystem
	}
	buckets := cfg.DurationBuckets
	if len(buckets) == 0 {
		buckets = config.DefaultDurationBuckets()
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests processed, by resolved path, status code, and method",
			},
			[]string{"path", "status_code", "method"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds, by resolved path, status code, and method",
				Buckets:   buckets,
			},
			[]string{"path", "status_code", "method"},
		),
	}

	registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
	)

	return c
}

// ObserveDuration records a completed request's latency.
//
// Parameters:
//   - path: resolved route template (e.g., "/orders/{id}")
//   - method: HTTP method
//   - statusCode: final response status as a string, "0" when unknown
//   - seconds: elapsed wall-clock time
func (c *Collector) ObserveDuration(path, method, statusCode string, seconds float64) {
	c.requestDuration.WithLabelValues(path, statusCode, method).Observe(seconds)
}

// IncRequests increments the request counter for a completed request.
// Label semantics match ObserveDuration.
func (c *Collector) IncRequests(path, method, statusCode string) {
	c.requestsTotal.WithLabelValues(path, statusCode, method).Inc()
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
