// Package server assembles the Callisto pipeline into a runnable HTTP
// server.
//
// NewServer builds every component from the validated configuration: a
// private Prometheus registry with the request instruments and default
// probes, the path-cardinality limiter seeded from the configured storage
// backend, the exclusion rules (with the scrape route always excluded from
// its own measurement), and the metrics interceptor over an http.ServeMux.
//
// Application routes registered through Handle and HandleFunc are served
// through the chain
//
//	Recovery(Logging(RequestID(interceptor.Wrap(mux))))
//
// with the scrape route mounted ahead of them. Start blocks until the
// context is cancelled or a SIGINT/SIGTERM arrives, then shuts down
// gracefully, persisting a final admitted-path snapshot.
package server
