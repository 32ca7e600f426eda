package observability_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/classwrap/pkg/observability"
)

func TestHealthHandler_ReturnsOK(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	observability.HealthHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadyHandler(t *testing.T) {
	t.Parallel()

	pass := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("not initialized") }

	tests := []struct {
		name   string
		body   string
		checks []observability.ReadyCheck
		code   int
	}{
		{name: "no checks", code: http.StatusOK, body: `{"status":"ok"}`},
		{name: "all pass", checks: []observability.ReadyCheck{pass, pass}, code: http.StatusOK, body: `{"status":"ok"}`},
		{
			name:   "one fails",
			checks: []observability.ReadyCheck{pass, fail},
			code:   http.StatusServiceUnavailable,
			body:   `{"status":"unavailable"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			observability.ReadyHandler(tc.checks...).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))

			assert.Equal(t, tc.code, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}

func TestInit_PrometheusHandlerExportsRED(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()
	cfg.Prometheus = true

	providers, err := observability.Init(cfg)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })
	require.NotNil(t, providers.MetricsHandler)

	red, err := observability.NewREDMetrics(providers.Meter)
	require.NoError(t, err)
	red.RecordRequest(context.Background(), "rewrite", observability.StatusOK, "", time.Millisecond)

	rec := httptest.NewRecorder()
	providers.MetricsHandler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "target_info")
	assert.Contains(t, rec.Body.String(), "classwrap_requests")
}

func TestInit_NoMetricsHandlerByDefault(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)
	assert.Nil(t, providers.MetricsHandler)
}

func TestDiagnosticsServer(t *testing.T) {
	t.Parallel()

	var ready atomic.Bool

	check := func(context.Context) error {
		if !ready.Load() {
			return errors.New("not ready")
		}

		return nil
	}

	metrics := http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(rw, "metrics")
	})

	srv, err := observability.NewDiagnosticsServer("127.0.0.1:0", metrics, check)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, srv.Close()) })

	get := func(path string) (int, string) {
		resp, getErr := http.Get("http://" + srv.Addr() + path) //nolint:noctx // test helper.
		require.NoError(t, getErr)

		defer resp.Body.Close()

		body, readErr := io.ReadAll(resp.Body)
		require.NoError(t, readErr)

		return resp.StatusCode, string(body)
	}

	code, _ := get("/healthz")
	assert.Equal(t, http.StatusOK, code)

	code, _ = get("/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	ready.Store(true)

	code, _ = get("/readyz")
	assert.Equal(t, http.StatusOK, code)

	code, body := get("/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "metrics", body)
}
