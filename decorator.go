package routecors

import (
	"net/http"
	"sync/atomic"

	"github.com/jub0bs/routecors/internal/headers"
)

// A Decorator is a CORS middleware that decorates responses with CORS
// headers; see the package documentation for details.
//
// The zero value is ready to use but is a mere "passthrough" decorator,
// i.e. a decorator that sets no headers at all.
// To obtain a proper CORS decorator, you should call [NewDecorator].
//
// A Decorator must not be copied after first use.
//
// Decorators are safe for concurrent use by multiple goroutines.
// Therefore, you are free to reconfigure a Decorator without having to
// restart your server.
type Decorator struct {
	icfg atomic.Pointer[internalConfig]
}

// NewDecorator creates a CORS decorator that behaves in accordance with cfg.
// NewDecorator performs no validation of cfg; see [Config.Validate].
//
// Mutating the fields of cfg after NewDecorator has returned does not alter
// the decorator's behavior.
// However, you can reconfigure a [Decorator] via its
// [*Decorator.Reconfigure] method.
func NewDecorator(cfg Config) *Decorator {
	var d Decorator
	d.icfg.Store(newInternalConfig(&cfg))
	return &d
}

// Reconfigure reconfigures d in accordance with cfg.
// If cfg is nil, it turns d into a passthrough decorator.
// The following statement is guaranteed to be a no-op:
//
//	d.Reconfigure(d.Config())
//
// You can safely reconfigure a decorator
// even as it's concurrently processing requests.
//
// Mutating the fields of cfg after Reconfigure has returned does not alter
// d's behavior.
func (d *Decorator) Reconfigure(cfg *Config) {
	d.icfg.Store(newInternalConfig(cfg))
}

// Config returns a pointer to a deep copy of d's current configuration;
// if d is a passthrough decorator, it simply returns nil.
//
// Mutating the fields of the result does not alter d's behavior.
func (d *Decorator) Config() *Config {
	return newConfig(d.icfg.Load())
}

// Decorate adds CORS headers to resHdrs in response to r.
// When r's method is OPTIONS, Decorate relies on rt (which it never mutates)
// to determine which methods to advertise; a nil rt is treated as an empty
// route table.
//
// Decorate is useful for integrating d with routers and frameworks whose
// handlers aren't of type [http.Handler]; otherwise, you should prefer
// [*Decorator.Wrap].
func (d *Decorator) Decorate(resHdrs http.Header, r *http.Request, rt *Routes) {
	icfg := d.icfg.Load()
	if icfg == nil { // passthrough decorator
		return
	}
	icfg.decorate(resHdrs, r, rt)
}

// Preflight is like [*Decorator.Decorate], but it also reports whether r is
// an OPTIONS request whose path matches a route template registered in rt
// without any handler for OPTIONS. In that case, the caller should reply
// to r with 204 No Content rather than let its router reply with an error
// status (e.g. 404 or 405), which would cause browsers to fail the
// CORS-preflight check.
// A passthrough decorator sets no headers and always reports false.
//
// Preflight is useful for integrating d with routers that don't reply to
// OPTIONS requests on their own; see packages
// [github.com/jub0bs/routecors/chiroutes] and
// [github.com/jub0bs/routecors/ginroutes].
func (d *Decorator) Preflight(resHdrs http.Header, r *http.Request, rt *Routes) bool {
	icfg := d.icfg.Load()
	if icfg == nil { // passthrough decorator
		return false
	}
	return icfg.decorate(resHdrs, r, rt)
}

func (icfg *internalConfig) decorate(resHdrs http.Header, r *http.Request, rt *Routes) (unhandled bool) {
	// Note that we set rather than add headers here,
	// because the values we compute are authoritative.
	resHdrs.Set(headers.ACAO, icfg.acao)
	resHdrs.Set(headers.ACAC, icfg.acac)
	if r.Method != http.MethodOptions {
		return false
	}
	allow, unhandled := rt.preflight(r.URL.Path)
	resHdrs.Set(headers.ACAM, allow)
	resHdrs.Set(headers.Allow, allow)
	// All the ACRH field lines get reflected as ACAH field lines, since
	// the Fetch standard requires browsers to handle multiple ACAH field
	// lines; see https://fetch.spec.whatwg.org/#cors-preflight-fetch-0.
	resHdrs[headers.ACAH] = headers.Reflect(r.Header, headers.ACRH)
	if icfg.acma != "" {
		resHdrs.Set(headers.ACMA, icfg.acma)
	}
	return unhandled
}

// Wrap applies d to h: the resulting handler decorates the response with
// CORS headers (relying on rt, which it never mutates) before delegating
// to h.
func (d *Decorator) Wrap(rt *Routes, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d.Decorate(w.Header(), r, rt)
		h.ServeHTTP(w, r)
	})
}

// Handler is shorthand for
//
//	d.Wrap(rt, rt)
//
// It is useful when rt doubles as your request multiplexer.
func (d *Decorator) Handler(rt *Routes) http.Handler {
	return d.Wrap(rt, rt)
}
