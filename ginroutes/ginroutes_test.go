package ginroutes_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"slices"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jub0bs/routecors"
	"github.com/jub0bs/routecors/ginroutes"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func TestTemplate(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{path: "/", want: "/"},
		{path: "/items", want: "/items"},
		{path: "/items/:id", want: "/items/{id}"},
		{path: "/users/:uid/items/:id", want: "/users/{uid}/items/{id}"},
		{path: "/static/*filepath", want: "/static/{filepath}"},
		{path: "/a:b", want: "/a:b"},
		{path: "/:", want: "/:"},
	}
	for _, tc := range cases {
		f := func(t *testing.T) {
			if got := ginroutes.Template(tc.path); got != tc.want {
				t.Errorf("got %q; want %q", got, tc.want)
			}
		}
		t.Run(tc.path, f)
	}
}

func TestFromEngine(t *testing.T) {
	engine := gin.New()
	engine.GET("/items", noContent)
	engine.POST("/items", noContent)
	engine.GET("/items/:id", noContent)
	engine.DELETE("/items/:id", noContent)
	admin := engine.Group("/admin")
	admin.PUT("/users/:name", noContent)

	rt, err := ginroutes.FromEngine(engine)
	if err != nil {
		t.Fatalf("got %v; want nil error", err)
	}
	got := slices.Sorted(rt.Templates())
	want := []string{"/admin/users/{name}", "/items", "/items/{id}"}
	if !slices.Equal(got, want) {
		t.Fatalf("templates: got %q; want %q", got, want)
	}
	cases := []struct {
		template string
		want     []string
	}{
		{template: "/items", want: []string{"GET", "POST"}},
		{template: "/items/{id}", want: []string{"DELETE", "GET"}},
		{template: "/admin/users/{name}", want: []string{"PUT"}},
	}
	for _, tc := range cases {
		f := func(t *testing.T) {
			if got := rt.Methods(tc.template); !slices.Equal(got, tc.want) {
				t.Errorf("got %q; want %q", got, tc.want)
			}
		}
		t.Run(tc.template, f)
	}
	if got, want := rt.Match("/items/42"), "/items/{id}"; got != want {
		t.Errorf("Match: got %q; want %q", got, want)
	}
}

func TestMiddleware(t *testing.T) {
	d := routecors.NewDecorator(routecors.Config{
		Origins:      []string{"https://example.com"},
		Credentialed: true,
	})
	engine := gin.New()
	engine.Use(ginroutes.Middleware(d, engine))
	engine.GET("/items/:id", noContent)
	engine.DELETE("/items/:id", noContent)
	engine.OPTIONS("/items/:id", noContent)

	cases := []struct {
		desc       string
		reqMethod  string
		reqHeaders map[string]string
		want       map[string]string
		absent     []string
	}{
		{
			desc:      "non-OPTIONS",
			reqMethod: http.MethodGet,
			want: map[string]string{
				"Access-Control-Allow-Origin":      "https://example.com",
				"Access-Control-Allow-Credentials": "true",
			},
			absent: []string{
				"Access-Control-Allow-Methods",
				"Allow",
			},
		}, {
			desc:      "OPTIONS",
			reqMethod: http.MethodOptions,
			reqHeaders: map[string]string{
				"Access-Control-Request-Headers": "x-foo",
			},
			want: map[string]string{
				"Access-Control-Allow-Origin":      "https://example.com",
				"Access-Control-Allow-Credentials": "true",
				"Access-Control-Allow-Methods":     "DELETE, GET, OPTIONS",
				"Allow":                            "DELETE, GET, OPTIONS",
				"Access-Control-Allow-Headers":     "x-foo",
			},
			absent: []string{
				"Access-Control-Max-Age",
			},
		},
	}
	for _, tc := range cases {
		f := func(t *testing.T) {
			req := httptest.NewRequest(tc.reqMethod, "https://example.com/items/42", nil)
			for k, v := range tc.reqHeaders {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			res := rec.Result()
			if res.StatusCode != http.StatusNoContent {
				const tmpl = "got status code %d; want %d"
				t.Errorf(tmpl, res.StatusCode, http.StatusNoContent)
			}
			for k, want := range tc.want {
				if got := res.Header.Values(k); len(got) != 1 || got[0] != want {
					t.Errorf("%s: got %q; want %q", k, got, want)
				}
			}
			for _, k := range tc.absent {
				if got, found := res.Header[k]; found {
					t.Errorf("%s: got %q; want no such header", k, got)
				}
			}
		}
		t.Run(tc.desc, f)
	}
}

// Gin replies with 404 to OPTIONS requests on routes that have no handler
// for OPTIONS; the middleware must answer such preflight requests itself.
func TestMiddlewareWithoutOptionsHandler(t *testing.T) {
	cfg := routecors.Config{
		Origins: []string{"https://example.com"},
	}
	newEngine := func(d *routecors.Decorator) *gin.Engine {
		engine := gin.New()
		engine.Use(ginroutes.Middleware(d, engine))
		engine.GET("/items/:id", noContent)
		return engine
	}
	cases := []struct {
		desc       string
		d          *routecors.Decorator
		reqMethod  string
		path       string
		wantStatus int
		want       map[string]string
	}{
		{
			desc:       "preflight on route without OPTIONS handler",
			d:          routecors.NewDecorator(cfg),
			reqMethod:  http.MethodOptions,
			path:       "/items/42",
			wantStatus: http.StatusNoContent,
			want: map[string]string{
				"Access-Control-Allow-Origin":  "https://example.com",
				"Access-Control-Allow-Methods": "GET, OPTIONS",
				"Allow":                        "GET, OPTIONS",
			},
		}, {
			desc:       "non-OPTIONS on route without OPTIONS handler",
			d:          routecors.NewDecorator(cfg),
			reqMethod:  http.MethodGet,
			path:       "/items/42",
			wantStatus: http.StatusNoContent,
			want: map[string]string{
				"Access-Control-Allow-Origin": "https://example.com",
			},
		}, {
			desc:       "preflight on unknown path",
			d:          routecors.NewDecorator(cfg),
			reqMethod:  http.MethodOptions,
			path:       "/unknown",
			wantStatus: http.StatusNotFound,
			want: map[string]string{
				"Access-Control-Allow-Origin":  "https://example.com",
				"Access-Control-Allow-Methods": "OPTIONS",
			},
		}, {
			desc:       "passthrough",
			d:          new(routecors.Decorator),
			reqMethod:  http.MethodOptions,
			path:       "/items/42",
			wantStatus: http.StatusNotFound,
		},
	}
	for _, tc := range cases {
		f := func(t *testing.T) {
			engine := newEngine(tc.d)
			req := httptest.NewRequest(tc.reqMethod, "https://example.com"+tc.path, nil)
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			res := rec.Result()
			if res.StatusCode != tc.wantStatus {
				const tmpl = "got status code %d; want %d"
				t.Errorf(tmpl, res.StatusCode, tc.wantStatus)
			}
			for k, want := range tc.want {
				if got := res.Header.Values(k); len(got) != 1 || got[0] != want {
					t.Errorf("%s: got %q; want %q", k, got, want)
				}
			}
			if tc.d.Config() == nil {
				if got, found := res.Header["Access-Control-Allow-Origin"]; found {
					t.Errorf("got %q; want no ACAO header", got)
				}
			}
		}
		t.Run(tc.desc, f)
	}
}
