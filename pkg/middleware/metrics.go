package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"mercator-hq/callisto/pkg/telemetry/metrics"
)

// Options configures the metrics interceptor. Collector, Limiter, and
// Resolver are required; Exclude and Debug are optional.
type Options struct {
	// Collector supplies the shared request instruments.
	Collector *metrics.Collector

	// Limiter caps the counter's distinct path labels.
	Limiter *metrics.PathLimiter

	// Resolver looks up the logical route for each request.
	Resolver Resolver

	// Exclude defines paths excluded from measurement.
	Exclude ExcludeConfig

	// Debug enables per-request logging of the interception overhead at
	// debug level. Costs nothing when disabled.
	Debug bool
}

// Interceptor is the metrics-collection middleware. It wraps every request:
// resolves the logical route path, consults the exclusion matcher, gates
// the counter through the path limiter, and records histogram and counter
// observations with the final status code once the response completes.
//
// Measurement never blocks or fails a request: the wrapped handler is
// invoked unconditionally, route-resolution misses are expected control
// flow, and a response whose status never became known degrades to a "0"
// status label.
type Interceptor struct {
	collector *metrics.Collector
	limiter   *metrics.PathLimiter
	resolver  Resolver
	matcher   *exclusionMatcher
	debug     bool
}

// NewInterceptor validates opts and builds the interceptor. Configuration
// problems surface here, before any request is processed; nothing in the
// request path can fail afterwards.
func NewInterceptor(opts Options) (*Interceptor, error) {
	if opts.Collector == nil {
		return nil, fmt.Errorf("metrics interceptor requires a collector")
	}
	if opts.Limiter == nil {
		return nil, fmt.Errorf("metrics interceptor requires a path limiter")
	}
	if opts.Resolver == nil {
		return nil, fmt.Errorf("metrics interceptor requires a route resolver")
	}

	return &Interceptor{
		collector: opts.Collector,
		limiter:   opts.Limiter,
		resolver:  opts.Resolver,
		matcher:   newExclusionMatcher(opts.Exclude),
		debug:     opts.Debug,
	}, nil
}

// Wrap returns next wrapped with metrics collection. The interceptor is
// shared by all requests; per-request state (the timer and captured
// labels) lives on the stack of each invocation.
func (m *Interceptor) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var began time.Time
		if m.debug {
			began = time.Now()
		}

		route, resolved := m.resolver.Resolve(r)
		path := r.URL.Path
		if resolved {
			path = route.Label()
		}

		if !m.matcher.ShouldMeasure(path) {
			next.ServeHTTP(w, r)
			return
		}

		// The histogram only ever sees resolved routes: timing unmatched
		// requests would give it one label per distinct garbage path. The
		// counter takes unmatched paths too, so it is gated by the limiter.
		measureDuration := resolved
		measureCount := m.limiter.Admit(path)

		if m.debug {
			slog.Debug("metrics interception",
				"path", path,
				"resolved", resolved,
				"counted", measureCount,
				"overhead", time.Since(began),
			)
		}

		if !measureDuration && !measureCount {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		status := strconv.Itoa(rw.Status())
		if measureDuration {
			m.collector.ObserveDuration(path, r.Method, status, time.Since(start).Seconds())
		}
		if measureCount {
			m.collector.IncRequests(path, r.Method, status)
		}
	})
}

// ExclusionCacheSize returns the number of memoized exclusion decisions,
// for occupancy reporting.
func (m *Interceptor) ExclusionCacheSize() int {
	return m.matcher.cacheSize()
}
