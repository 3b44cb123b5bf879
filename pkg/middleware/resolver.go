package middleware

import (
	"net/http"
	"regexp"
	"strings"
)

// Route describes a resolved route. Exactly one of Template or Pattern is
// set: Template for routers that expose a path template, Pattern for
// regexp-routed services.
type Route struct {
	// Template is the route's path template (e.g., "/orders/{id}").
	Template string

	// Pattern is the route's regular expression, for pattern-matched routes.
	Pattern *regexp.Regexp
}

// Label returns the metric label value for this route. Template routes use
// the template verbatim; pattern routes are formatted as
// "RegExp(<pattern source>)" so distinct patterns stay distinguishable
// without leaking per-request path values.
func (rt Route) Label() string {
	if rt.Pattern != nil {
		return "RegExp(" + rt.Pattern.String() + ")"
	}
	return rt.Template
}

// Resolver looks up the logical route for a request without dispatching it.
// A false return means no route matched (the request will be a 404 or
// similar); the interceptor then labels the request with its raw path and
// skips duration measurement.
type Resolver interface {
	Resolve(r *http.Request) (Route, bool)
}

// MuxResolver resolves routes against a *http.ServeMux using its pattern
// lookup. The mux is consulted without serving the request.
type MuxResolver struct {
	mux *http.ServeMux
}

// NewMuxResolver creates a resolver backed by mux.
func NewMuxResolver(mux *http.ServeMux) *MuxResolver {
	return &MuxResolver{mux: mux}
}

// Resolve implements Resolver.
func (mr *MuxResolver) Resolve(r *http.Request) (Route, bool) {
	_, pattern := mr.mux.Handler(r)
	if pattern == "" {
		return Route{}, false
	}
	return Route{Template: trimPatternMethod(pattern)}, true
}

// trimPatternMethod strips the optional "METHOD " prefix from a ServeMux
// pattern so the path label does not duplicate the method label.
func trimPatternMethod(pattern string) string {
	if i := strings.IndexByte(pattern, ' '); i >= 0 {
		return pattern[i+1:]
	}
	return pattern
}

// RegexpResolver resolves routes against an ordered list of regular
// expressions, for services that route by pattern instead of template.
// The first matching pattern wins.
type RegexpResolver struct {
	routes []*regexp.Regexp
}

// NewRegexpResolver creates a resolver over the given patterns, tried in
// order against the request path.
func NewRegexpResolver(patterns ...*regexp.Regexp) *RegexpResolver {
	return &RegexpResolver{routes: patterns}
}

// Resolve implements Resolver.
func (rr *RegexpResolver) Resolve(r *http.Request) (Route, bool) {
	for _, p := range rr.routes {
		if p.MatchString(r.URL.Path) {
			return Route{Pattern: p}, true
		}
	}
	return Route{}, false
}
