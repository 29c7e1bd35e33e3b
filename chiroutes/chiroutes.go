/*
Package chiroutes integrates package [github.com/jub0bs/routecors] with
[chi] routers.

[chi]: https://github.com/go-chi/chi
*/
package chiroutes

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/jub0bs/routecors"
)

// FromRouter builds a route table from the routes registered on r,
// including those of its subrouters. Route patterns are converted to route
// templates by [Template]. Handlers registered for chi's catch-all method
// are ignored.
//
// Routes are registered in the order in which [chi.Walk] visits them,
// which is not necessarily the order in which they were registered on r.
//
// If some route cannot be registered, FromRouter returns a nil
// *routecors.Routes and some non-nil error.
func FromRouter(r chi.Routes) (*routecors.Routes, error) {
	rt, err := walk(r)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// walk is like FromRouter, but it returns the routes that could be
// registered even when it fails.
func walk(r chi.Routes) (*routecors.Routes, error) {
	rt := routecors.NewRoutes()
	var errs []error
	register := func(method, route string, h http.Handler, _ ...func(http.Handler) http.Handler) error {
		if err := rt.Register(method, Template(route), h); err != nil {
			errs = append(errs, err)
		}
		return nil
	}
	if err := chi.Walk(r, register); err != nil {
		errs = append(errs, err)
	}
	return rt, errors.Join(errs...)
}

// Template converts chi route pattern pattern to a route template:
// chi placeholders, whether named ("{id}") or constrained by a regular
// expression ("{id:[0-9]+}", "{n:[0-9]{3}}"), become named placeholders
// ("{id}", "{n}"); the rest of pattern is kept as is.
//
// Note that a route-template placeholder only matches a slash followed by
// ASCII letters, digits, and underscores, and that it disregards chi's
// regular-expression constraints; moreover, chi placeholders that don't
// immediately follow a slash (e.g. "{b}" in "/{a}-{b}") are matched
// literally, and so are catch-alls ("*").
func Template(pattern string) string {
	i := strings.IndexByte(pattern, paramStart)
	if i < 0 {
		return pattern
	}
	var sb strings.Builder
	sb.Grow(len(pattern))
	for i >= 0 {
		end := closingBrace(pattern[i:])
		if end < 0 { // unbalanced braces
			break
		}
		sb.WriteString(pattern[:i])
		param := pattern[i+1 : i+end]
		name, _, _ := strings.Cut(param, regexpSep)
		sb.WriteByte(paramStart)
		sb.WriteString(name)
		sb.WriteByte(paramEnd)
		pattern = pattern[i+end+1:]
		i = strings.IndexByte(pattern, paramStart)
	}
	sb.WriteString(pattern)
	return sb.String()
}

const (
	paramStart = '{'
	paramEnd   = '}'
	regexpSep  = ":" // separates a placeholder's name from its regexp
)

// closingBrace returns the index of the brace that closes the one at the
// start of str, or -1 if there is no such brace.
// Like chi, it accounts for braces nested in regular expressions.
func closingBrace(str string) int {
	var depth int
	for i := range len(str) {
		switch str[i] {
		case paramStart:
			depth++
		case paramEnd:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// Middleware returns a chi middleware that decorates responses with d,
// using the routes registered on r. Because chi requires middleware to be
// declared before routes, the route table is built (once) upon the first
// request rather than when Middleware is called:
//
//	r := chi.NewRouter()
//	r.Use(chiroutes.Middleware(d, r))
//	r.Get("/items/{id}", handleItem)
//
// Because chi replies to OPTIONS requests with 405 Method Not Allowed on
// routes where no handler is registered for OPTIONS, the middleware itself
// replies with 204 No Content to such requests; see
// [*routecors.Decorator.Preflight].
//
// Routes that [FromRouter] would reject are ignored.
func Middleware(d *routecors.Decorator, r chi.Routes) func(http.Handler) http.Handler {
	table := sync.OnceValue(func() *routecors.Routes {
		rt, _ := walk(r)
		return rt
	})
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, req *http.Request) {
			if d.Preflight(w.Header(), req, table()) {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, req)
		}
		return http.HandlerFunc(f)
	}
}
