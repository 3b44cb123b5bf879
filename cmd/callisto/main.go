// Callisto is an HTTP metrics server with path-cardinality protection.
//
// It serves application routes through a metrics interceptor that records
// request counts and latencies with Prometheus, while keeping the metric
// label space bounded: route templates collapse path parameters into one
// label, and a hard cap on distinct path labels stops unmatched request
// floods from growing the counter without bound.
//
// Usage:
//
//	# Start server with default configuration
//	callisto run
//
//	# Start with custom configuration file
//	callisto run --config /path/to/config.yaml
//
//	# Validate a configuration file
//	callisto validate --config /path/to/config.yaml
//
//	# Show version information
//	callisto version
package main

func main() {
	Execute()
}
