// Package middleware provides the HTTP request interceptors for Callisto.
//
// The centerpiece is the metrics Interceptor, which attaches latency and
// request-count observations to every inbound request while keeping the
// metric label space bounded. The package also carries the cross-cutting
// middlewares the server chain is assembled from: request ID generation,
// structured request logging, and panic recovery.
//
// # Middleware Chain
//
// Middleware functions are chained so the interceptor sits ahead of normal
// routing dispatch:
//
//	handler = Recovery(Logging(RequestID(interceptor.Wrap(mux))))
//
// # Metrics Interception
//
// For each request the interceptor:
//
//  1. Resolves the logical route through a Resolver. A resolved route
//     contributes its path template (or "RegExp(...)" stringification) as
//     the metric label; an unresolved request keeps its raw path.
//  2. Consults the exclusion matcher. Excluded paths are not instrumented
//     at all; decisions are memoized per distinct path and frozen at their
//     first answer.
//  3. Times the request, but only when the route resolved, so the
//     duration histogram never accumulates one label per unmatched path.
//  4. Counts the request, gated by the path-cardinality limiter: once the
//     configured number of distinct path labels exists, never-seen paths
//     are silently uncounted. The histogram is deliberately not gated (see
//     pkg/telemetry/metrics).
//
// Observations are recorded when the response completes, labeled with the
// final status code ("0" when the status never became known). Nothing in
// the interceptor can fail or delay a request; misconfiguration is
// rejected by NewInterceptor before the middleware is installed.
//
// # Route Resolution
//
// Two Resolver implementations are provided: MuxResolver for
// *http.ServeMux route patterns, and RegexpResolver for services routed by
// regular expressions. Custom routers plug in by implementing Resolver.
package middleware
