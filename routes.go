package routecors

import (
	"errors"
	"iter"
	"net/http"
	"strings"

	"github.com/jub0bs/routecors/cfgerrors"
	"github.com/jub0bs/routecors/internal/headers"
	"github.com/jub0bs/routecors/internal/methods"
	"github.com/jub0bs/routecors/internal/routes"
)

// Routes is a route table: it maps route templates to HTTP methods to
// handlers. Routes is also an HTTP request multiplexer; see
// [*Routes.ServeHTTP].
//
// A route template consists of literal text and of placeholders of the form
// "/{name}", where name is non-empty and contains neither "{" nor "}".
// For instance, route template "/users/{id}" matches paths "/users/42" and
// "/users/jub0bs", but neither "/users/jub0bs.com" nor "/users/42/posts".
//
// Each route template is compiled once, when it is first registered.
// Route templates are tried in their order of registration.
//
// The zero value is an empty route table ready to use.
// Routes must be fully populated before it starts serving requests;
// registration is not safe for use concurrently with other methods.
type Routes struct {
	table routes.Table
}

// NewRoutes allocates and returns a new, empty route table.
func NewRoutes() *Routes {
	return new(Routes)
}

// Register registers h on template for method.
// Method names that are a byte-case-insensitive match for one of DELETE,
// GET, HEAD, OPTIONS, POST, and PUT are byte-uppercased;
// other method names are case-sensitive.
//
// If method is not a valid method name, if template does not start with a
// slash, if h is nil, or if some handler is already registered on template
// for method, Register leaves rt unchanged and returns some non-nil error.
// Otherwise, it returns nil.
//
// If you need to programmatically handle the errors constitutive of the
// resulting error, rely on package
// [github.com/jub0bs/routecors/cfgerrors].
func (rt *Routes) Register(method, template string, h http.Handler) error {
	var errs []error
	if !methods.IsValid(method) {
		err := &cfgerrors.UnacceptableMethodError{
			Value:  method,
			Reason: "invalid",
		}
		errs = append(errs, err)
	}
	if !strings.HasPrefix(template, "/") {
		err := &cfgerrors.UnacceptableTemplateError{
			Value:  template,
			Reason: "invalid",
		}
		errs = append(errs, err)
	}
	if h == nil {
		err := &cfgerrors.MissingHandlerError{
			Template: template,
			Method:   method,
		}
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	method = methods.Normalize(method)
	if !rt.table.Add(template, method, h) {
		return &cfgerrors.DuplicateRouteError{
			Template: template,
			Method:   method,
		}
	}
	return nil
}

// Handle is like [*Routes.Register] but panics instead of returning an error,
// in keeping with [http.ServeMux.Handle].
func (rt *Routes) Handle(method, template string, h http.Handler) {
	if err := rt.Register(method, template, h); err != nil {
		panic(err)
	}
}

// HandleFunc is like [*Routes.Handle], but for a handler function.
func (rt *Routes) HandleFunc(method, template string, f func(http.ResponseWriter, *http.Request)) {
	var h http.Handler
	if f != nil {
		h = http.HandlerFunc(f)
	}
	rt.Handle(method, template, h)
}

// Match returns the registered route template that corresponds to path:
//  1. if some registered route template is identical to path,
//     Match returns path;
//  2. otherwise, Match returns the first route template (in registration
//     order) whose placeholders can be substituted to yield path;
//  3. otherwise, Match returns path itself.
//
// Note that, in the last case, the result is not necessarily a registered
// route template. For a nil *Routes, Match simply returns path.
func (rt *Routes) Match(path string) string {
	if rt == nil {
		return path
	}
	return rt.table.Match(path)
}

// Methods returns the methods registered on template,
// sorted in lexicographical order.
// If template isn't registered in rt, Methods returns nil.
func (rt *Routes) Methods(template string) []string {
	if rt == nil {
		return nil
	}
	e, found := rt.table.Entry(template)
	if !found {
		return nil
	}
	return e.Methods().ToSlice()
}

// Templates returns an iterator over rt's route templates,
// in registration order.
func (rt *Routes) Templates() iter.Seq[string] {
	if rt == nil {
		return func(func(string) bool) {}
	}
	return rt.table.Templates()
}

// preflight returns the value of the Allow header for path:
// the methods registered on the route template that matches path
// (along with OPTIONS), sorted and separated by commas.
// It also reports whether that route template is registered in rt
// without any handler for OPTIONS.
func (rt *Routes) preflight(path string) (allow string, unhandled bool) {
	if rt == nil {
		return http.MethodOptions, false
	}
	e, found := rt.table.Entry(rt.table.Match(path))
	if !found {
		return http.MethodOptions, false
	}
	_, handled := e.Handler(http.MethodOptions)
	return e.Allow(), !handled
}

// ServeHTTP dispatches r to the handler registered on the route template
// that matches r's path (see [*Routes.Match]) for r's method.
// The values of the template's placeholders are made available to that
// handler via [http.Request.PathValue].
//
// If no route template matches r's path, ServeHTTP replies with
// 404 Not Found.
// If some route template matches r's path but no handler is registered on
// it for r's method, ServeHTTP replies with 204 No Content when r's method
// is OPTIONS, and with 405 Method Not Allowed otherwise.
//
// A nil *Routes replies 404 Not Found to all requests.
func (rt *Routes) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if rt == nil {
		http.NotFound(w, r)
		return
	}
	e, vals, found := rt.table.Lookup(r.URL.Path)
	if !found {
		http.NotFound(w, r)
		return
	}
	h, found := e.Handler(r.Method)
	if !found {
		w.Header().Set(headers.Allow, e.Allow())
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		const code = http.StatusMethodNotAllowed
		http.Error(w, http.StatusText(code), code)
		return
	}
	if len(vals) > 0 {
		names := e.Names()
		for i, v := range vals {
			r.SetPathValue(names[i], v)
		}
	}
	h.ServeHTTP(w, r)
}
