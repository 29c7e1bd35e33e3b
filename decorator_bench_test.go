package routecors_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jub0bs/routecors"
)

func BenchmarkDecorator(b *testing.B) {
	for _, mwbc := range decoratorTestCases {
		if mwbc.cfg == nil {
			continue
		}
		var d *routecors.Decorator
		// benchmark initialization
		f := func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				d = routecors.NewDecorator(*mwbc.cfg)
			}
		}
		b.Run("initialization "+mwbc.desc, f)

		// benchmark config
		f = func(b *testing.B) {
			if d == nil { // in case subbenchmark 'initialization' wasn't run
				d = routecors.NewDecorator(*mwbc.cfg)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for range b.N {
				d.Config()
			}
		}
		b.Run("config         "+mwbc.desc, f)
	}

	// benchmark execution
	for _, mwbc := range decoratorTestCases {
		rt := newRoutes(b, mwbc.routes...)
		d := new(routecors.Decorator)
		if mwbc.cfg != nil {
			d.Reconfigure(mwbc.cfg)
		}
		handler := d.Wrap(rt, newSpyHandler(http.StatusOK, nil, ""))
		for _, bc := range mwbc.cases {
			f := func(b *testing.B) {
				req := newRequest(bc.reqMethod, bc.reqPath, bc.reqHeaders)
				b.ReportAllocs()
				b.ResetTimer()
				// We run benchmarks in parallel because typical workloads
				// for HTTP handlers are concurrent.
				b.RunParallel(func(pb *testing.PB) {
					for pb.Next() {
						rec := httptest.NewRecorder()
						handler.ServeHTTP(rec, req)
					}
				})
			}
			b.Run(mwbc.desc+" "+bc.desc, f)
		}
	}
}

func BenchmarkDecorateManyRoutes(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		rt := routecors.NewRoutes()
		h := newSpyHandler(http.StatusOK, nil, "")
		for i := range n {
			rt.Handle(http.MethodGet, fmt.Sprintf("/r%d/{id}", i), h)
			rt.Handle(http.MethodPut, fmt.Sprintf("/r%d/{id}", i), h)
		}
		d := routecors.NewDecorator(credentialedExample)
		paths := map[string]string{
			"first":   "/r0/42",
			"last":    fmt.Sprintf("/r%d/42", n-1),
			"missing": "/nowhere/42",
		}
		for desc, path := range paths {
			f := func(b *testing.B) {
				req := newRequest(http.MethodOptions, path, Headers{
					headerACRH: "authorization",
				})
				b.ReportAllocs()
				b.ResetTimer()
				for range b.N {
					d.Decorate(make(http.Header), req, rt)
				}
			}
			b.Run(fmt.Sprintf("%d routes %s", n, desc), f)
		}
	}
}
