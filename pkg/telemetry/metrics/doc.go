// Package metrics provides the Prometheus instruments for Callisto.
//
// # Overview
//
// The package owns the two HTTP request instruments (a request counter and
// a duration histogram), the path-cardinality limiter that caps the
// counter's label space, the scrape endpoint handler, and the default
// process probes. All instruments live on a private registry created at
// startup; the Collector is passed explicitly to the interceptor rather
// than accessed through globals.
//
// # Instruments
//
//	callisto_http_requests_total{path,status_code,method}            counter
//	callisto_http_request_duration_seconds{path,status_code,method}  histogram
//
// The histogram's default bucket boundaries are 3ms, 30ms, 100ms, 300ms,
// 1.5s, and 10s.
//
// # Cardinality Management
//
// The path label is always a resolved route template, so its cardinality is
// normally bounded by the route table. Requests that match no route keep
// their raw path as the label, which is where attacker-controlled growth
// comes from; the PathLimiter caps the counter's distinct path labels at a
// configured maximum, first come first served, with no eviction. The
// duration histogram is not gated by the limiter because it never observes
// unresolved paths in the first place.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Metrics, nil)
//	limiter := metrics.NewPathLimiter(cfg.Metrics.MaxPaths())
//	probes, err := metrics.StartDefaultProbes(collector.Registry(), cfg.Metrics.Probes)
//
//	http.Handle(cfg.Metrics.Path, collector.Handler())
//
// # Default Probes
//
// StartDefaultProbes registers the standard Go runtime, process, and
// build-info collectors plus a periodic runtime sampler. Each probe can be
// disabled by name via the configuration blacklist; the sampler interval
// is configurable with a 1s floor.
package metrics
