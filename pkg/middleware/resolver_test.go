package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
)

func TestMuxResolver(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/{id}", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/static", func(w http.ResponseWriter, r *http.Request) {})

	resolver := NewMuxResolver(mux)

	t.Run("template route strips method prefix", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders/7", nil)
		route, ok := resolver.Resolve(req)
		if !ok {
			t.Fatal("expected route to resolve")
		}
		if route.Label() != "/orders/{id}" {
			t.Errorf("Label() = %q, want /orders/{id}", route.Label())
		}
	})

	t.Run("parameter values share one label", func(t *testing.T) {
		req7 := httptest.NewRequest(http.MethodGet, "/orders/7", nil)
		req9 := httptest.NewRequest(http.MethodGet, "/orders/9", nil)

		route7, _ := resolver.Resolve(req7)
		route9, _ := resolver.Resolve(req9)

		if route7.Label() != route9.Label() {
			t.Errorf("labels differ: %q vs %q", route7.Label(), route9.Label())
		}
	})

	t.Run("plain pattern", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/static", nil)
		route, ok := resolver.Resolve(req)
		if !ok {
			t.Fatal("expected route to resolve")
		}
		if route.Label() != "/static" {
			t.Errorf("Label() = %q, want /static", route.Label())
		}
	})

	t.Run("no match", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
		if _, ok := resolver.Resolve(req); ok {
			t.Error("unmatched path should not resolve")
		}
	})
}

func TestRegexpResolver(t *testing.T) {
	userRe := regexp.MustCompile(`^/users/\d+$`)
	fileRe := regexp.MustCompile(`^/files/.+`)
	resolver := NewRegexpResolver(userRe, fileRe)

	t.Run("pattern label formatting", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
		route, ok := resolver.Resolve(req)
		if !ok {
			t.Fatal("expected route to resolve")
		}
		want := `RegExp(^/users/\d+$)`
		if route.Label() != want {
			t.Errorf("Label() = %q, want %q", route.Label(), want)
		}
	})

	t.Run("first match wins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/files/a/b", nil)
		route, ok := resolver.Resolve(req)
		if !ok {
			t.Fatal("expected route to resolve")
		}
		if route.Pattern != fileRe {
			t.Errorf("resolved wrong pattern: %v", route.Pattern)
		}
	})

	t.Run("no match", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/abc", nil)
		if _, ok := resolver.Resolve(req); ok {
			t.Error("non-matching path should not resolve")
		}
	})
}
