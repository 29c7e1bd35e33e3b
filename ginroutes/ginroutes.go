/*
Package ginroutes integrates package [github.com/jub0bs/routecors] with
the [Gin] Web framework.

[Gin]: https://github.com/gin-gonic/gin
*/
package ginroutes

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/jub0bs/routecors"
)

const (
	segSep      = "/"
	paramPfx    = ':' // named parameter, e.g. ":id"
	catchAllPfx = '*' // catch-all parameter, e.g. "*filepath"
)

// FromEngine builds a route table from the routes registered on engine.
// Gin parameters (":name" and "*name") are converted to route-template
// placeholders ("{name}"). Note that a placeholder only ever matches a
// single path segment; as a result, catch-all parameters lose their
// ability to match multiple segments.
//
// Because Gin handlers aren't of type [net/http.Handler], the handler
// registered in the resulting table for each route is engine itself.
//
// Routes are registered in the order in which [*gin.Engine.Routes] lists
// them, i.e. grouped by method.
//
// If some route cannot be registered, FromEngine returns a nil
// *routecors.Routes and some non-nil error.
func FromEngine(engine *gin.Engine) (*routecors.Routes, error) {
	rt, err := fromEngine(engine)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// fromEngine is like FromEngine, but it returns the routes that could be
// registered even when it fails.
func fromEngine(engine *gin.Engine) (*routecors.Routes, error) {
	rt := routecors.NewRoutes()
	var errs []error
	for _, ri := range engine.Routes() {
		if err := rt.Register(ri.Method, Template(ri.Path), engine); err != nil {
			errs = append(errs, err)
		}
	}
	return rt, errors.Join(errs...)
}

// Template converts Gin path pattern path to a route template.
func Template(path string) string {
	if strings.IndexByte(path, paramPfx) < 0 && strings.IndexByte(path, catchAllPfx) < 0 {
		return path
	}
	segs := strings.Split(path, segSep)
	for i, seg := range segs {
		if len(seg) < 2 {
			continue
		}
		if seg[0] == paramPfx || seg[0] == catchAllPfx {
			segs[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segs, segSep)
}

// Middleware returns a Gin middleware that decorates responses with d,
// using the routes registered on engine. Because Gin only applies
// middleware to routes registered after it, the route table is built
// (once) upon the first request rather than when Middleware is called:
//
//	engine := gin.New()
//	engine.Use(ginroutes.Middleware(d, engine))
//	engine.GET("/items/:id", handleItem)
//
// Because Gin replies with 404 Not Found to OPTIONS requests on routes
// where no handler is registered for OPTIONS, the middleware itself replies
// with 204 No Content to such requests and aborts the handler chain; see
// [*routecors.Decorator.Preflight].
//
// Routes that [FromEngine] would reject are ignored.
func Middleware(d *routecors.Decorator, engine *gin.Engine) gin.HandlerFunc {
	table := sync.OnceValue(func() *routecors.Routes {
		rt, _ := fromEngine(engine)
		return rt
	})
	return func(c *gin.Context) {
		if d.Preflight(c.Writer.Header(), c.Request, table()) {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
