package dispatch

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vitalvas/actionroute/routes"
)

var uuidV4Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

const document = `
routes:
  opcache:
    method: GET
    uri: /settings/opcache
    action: Settings->opcache
  example:
    method: GET
    uri: /examples/qwe/:id:
    action: Examples->qwe
  orphan:
    method: GET
    uri: /orphan/route
    action: Orphan->route
`

func newTestManager(t *testing.T) *routes.Manager {
	t.Helper()

	table, err := routes.DecodeDocument([]byte(document))
	require.NoError(t, err)

	return routes.NewWithTable(table)
}

func TestDispatcherServeHTTP(t *testing.T) {
	t.Run("dispatches to action handler", func(t *testing.T) {
		d := New(newTestManager(t))
		d.HandleFunc("Settings->opcache", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, CurrentAction(r).String())
		})

		w := httptest.NewRecorder()
		d.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/settings/opcache", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Settings->opcache", w.Body.String())
	})

	t.Run("exposes bound parameters", func(t *testing.T) {
		d := New(newTestManager(t))
		d.HandleFunc("Examples->qwe", func(w http.ResponseWriter, r *http.Request) {
			id, ok := Param(r, "id")
			assert.True(t, ok)
			assert.Equal(t, "3", id)
			_, ok = Param(r, "missing")
			assert.False(t, ok)
			ResponseJSON(w, http.StatusOK, Params(r))
		})

		w := httptest.NewRecorder()
		d.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/examples/qwe/3", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"id":"3"}`, w.Body.String())
	})

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "unknown route", method: http.MethodGet, path: "/invalid/route"},
		{name: "single segment", method: http.MethodGet, path: "/asdas"},
		{name: "wrong method", method: http.MethodPost, path: "/settings/opcache"},
		{name: "action without handler", method: http.MethodGet, path: "/orphan/route"},
	}

	for _, tt := range tests {
		t.Run("404 for "+tt.name, func(t *testing.T) {
			d := New(newTestManager(t))
			d.HandleFunc("Settings->opcache", func(_ http.ResponseWriter, _ *http.Request) {})

			w := httptest.NewRecorder()
			d.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}

	t.Run("custom not found handler", func(t *testing.T) {
		d := New(newTestManager(t))
		d.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, "custom 404")
		})

		w := httptest.NewRecorder()
		d.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "custom 404", w.Body.String())
	})

	t.Run("cleans path by default", func(t *testing.T) {
		d := New(newTestManager(t))
		d.HandleFunc("Settings->opcache", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "ok")
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.URL.Path = "/settings/../settings/opcache"
		d.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("skip clean matches raw path", func(t *testing.T) {
		d := New(newTestManager(t), SkipClean())
		d.HandleFunc("Settings->opcache", func(_ http.ResponseWriter, _ *http.Request) {})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.URL.Path = "/settings/../settings/opcache"
		d.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("runtime routes are served", func(t *testing.T) {
		m := newTestManager(t)
		d := New(m)
		d.HandleFunc("test->test", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "added")
		})

		require.NoError(t, m.AddRoute("test1", http.MethodGet, "/new/test", "test->test"))

		w := httptest.NewRecorder()
		d.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/new/test", nil))
		assert.Equal(t, "added", w.Body.String())
	})
}

func TestDispatcherRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	d := New(newTestManager(t), WithLogger(zap.New(core)))
	d.HandleFunc("Settings->opcache", func(_ http.ResponseWriter, _ *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	d.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/settings/opcache", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries := logs.FilterMessage("handler panic").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0].ContextMap()["panic"])
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
}

func TestDispatcherRequestID(t *testing.T) {
	tests := []struct {
		name     string
		config   RequestIDConfig
		incoming string
		want     string
	}{
		{name: "generates uuid v4", config: RequestIDConfig{}},
		{name: "ignores incoming by default", config: RequestIDConfig{}, incoming: "client-id"},
		{name: "trusts incoming", config: RequestIDConfig{TrustIncoming: true}, incoming: "client-id", want: "client-id"},
		{name: "custom generator", config: RequestIDConfig{GenerateFunc: func(_ *http.Request) string { return "fixed" }}, want: "fixed"},
		{name: "custom header", config: RequestIDConfig{HeaderName: "X-Trace", GenerateFunc: func(_ *http.Request) string { return "t" }}, want: "t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			d := New(newTestManager(t), WithRequestID(tt.config))
			d.HandleFunc("Settings->opcache", func(_ http.ResponseWriter, r *http.Request) {
				seen = RequestIDFromContext(r.Context())
			})

			header := tt.config.header()
			req := httptest.NewRequest(http.MethodGet, "/settings/opcache", nil)
			if tt.incoming != "" {
				req.Header.Set(header, tt.incoming)
			}

			w := httptest.NewRecorder()
			d.ServeHTTP(w, req)

			got := w.Header().Get(header)
			assert.Equal(t, got, seen)
			if tt.want != "" {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Regexp(t, uuidV4Regex, got)
			}
		})
	}

	t.Run("uuid v7 generator", func(t *testing.T) {
		assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-7`, GenerateUUIDv7(nil))
	})

	t.Run("empty id is not propagated", func(t *testing.T) {
		d := New(newTestManager(t), WithRequestID(RequestIDConfig{GenerateFunc: func(_ *http.Request) string { return "" }}))
		w := httptest.NewRecorder()
		d.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/asdas", nil))
		assert.Empty(t, w.Header().Get(DefaultRequestIDHeader))
	})
}

func TestDispatcherMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	d := New(newTestManager(t), WithMetrics(metrics))
	d.HandleFunc("Settings->opcache", func(_ http.ResponseWriter, _ *http.Request) {})

	for _, p := range []string{"/settings/opcache", "/settings/opcache", "/invalid/route", "/orphan/route"} {
		d.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, resultMatched)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, resultUnmatched)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, resultUnhandled)))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.actions.WithLabelValues("Settings->opcache")))

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestDispatcherMetricsMethodLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	d := New(newTestManager(t), WithMetrics(metrics))

	for i := range 500 {
		d.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(fmt.Sprintf("X%d", i), "/settings/opcache", nil))
	}
	d.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/settings/opcache", nil))

	assert.Equal(t, 2, testutil.CollectAndCount(metrics.requests))
	assert.Equal(t, float64(500), testutil.ToFloat64(metrics.requests.WithLabelValues(methodOther, resultUnmatched)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodDelete, resultUnmatched)))

	tests := map[string]string{
		http.MethodGet:     http.MethodGet,
		http.MethodOptions: http.MethodOptions,
		"get":              methodOther,
		"PROPFIND":         methodOther,
		"":                 methodOther,
	}
	for in, want := range tests {
		assert.Equal(t, want, methodLabel(in), in)
	}
}

func TestDispatcherMetricsPanic(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	d := New(newTestManager(t), WithMetrics(metrics))
	d.HandleFunc("Examples->qwe", func(_ http.ResponseWriter, _ *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	d.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/examples/qwe/1", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	assert.Equal(t, 1, testutil.CollectAndCount(metrics.requests))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requests))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, resultPanic)))
}

func TestWithRoute(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, Params(req))
	assert.True(t, CurrentAction(req).IsZero())

	req = WithRoute(req, routes.ParseAction("A->b"), routes.Params{"id": "1"})
	assert.Equal(t, "A->b", CurrentAction(req).String())
	v, ok := Param(req, "id")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestResponseJSON(t *testing.T) {
	t.Run("encodes body", func(t *testing.T) {
		w := httptest.NewRecorder()
		ResponseJSON(w, http.StatusCreated, map[string]string{"id": "1"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"id":"1"}`, w.Body.String())
	})

	t.Run("encoding failure", func(t *testing.T) {
		w := httptest.NewRecorder()
		ResponseJSON(w, http.StatusOK, func() {})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotEqual(t, "application/json", w.Header().Get("Content-Type"))
	})
}

func TestCleanPath(t *testing.T) {
	tests := map[string]string{
		"":              "/",
		"a/b":           "/a/b",
		"/a/./b":        "/a/b",
		"/a/../b/c/":    "/b/c/",
		"/settings//op": "/settings/op",
		"/":             "/",
	}

	for in, want := range tests {
		assert.Equal(t, want, cleanPath(in), in)
	}
}
