package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/artpar/admingate/adapters/metrics"
	"github.com/artpar/admingate/core/registry"
)

func TestMetricsMiddleware_CountsRequests(t *testing.T) {
	reg := testRegistry(t)
	promReg := prometheus.NewRegistry()
	collector := metrics.NewWithRegistry(promReg)

	h := NewHandler(Deps{
		Registry: func() *registry.Registry { return reg },
		Logger:   zerolog.Nop(),
		Metrics:  collector,
	})
	router := h.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/resources", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	got := testutil.ToFloat64(collector.RequestsTotal.WithLabelValues(
		"GET", "/api/resources", "2xx"))
	if got != 1 {
		t.Errorf("requests_total = %v, want 1", got)
	}
}

func TestMetricsMiddleware_SkipsInternalEndpoints(t *testing.T) {
	reg := testRegistry(t)
	promReg := prometheus.NewRegistry()
	collector := metrics.NewWithRegistry(promReg)

	h := NewHandler(Deps{
		Registry: func() *registry.Registry { return reg },
		Logger:   zerolog.Nop(),
		Metrics:  collector,
	})
	router := h.Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	got := testutil.ToFloat64(collector.RequestsInFlight)
	if got != 0 {
		t.Errorf("requests_in_flight = %v, want 0", got)
	}
}

func TestMetricsMiddleware_ConfiguredPath(t *testing.T) {
	reg := testRegistry(t)
	promReg := prometheus.NewRegistry()
	collector := metrics.NewWithRegistry(promReg)

	h := NewHandler(Deps{
		Registry:    func() *registry.Registry { return reg },
		Logger:      zerolog.Nop(),
		Metrics:     collector,
		MetricsPath: "/internal/metrics",
	})
	router := h.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/internal/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /internal/metrics = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /metrics = %d, want 404 when a custom path is set", rec.Code)
	}

	// The configured endpoint stays out of its own numbers
	if got := testutil.ToFloat64(collector.RequestsTotal.WithLabelValues(
		"GET", "/internal/metrics", "2xx")); got != 0 {
		t.Errorf("requests_total for metrics endpoint = %v, want 0", got)
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{200, "2xx"},
		{204, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{500, "5xx"},
		{0, "other"},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.status); got != tt.want {
			t.Errorf("statusLabel(%d) = %s, want %s", tt.status, got, tt.want)
		}
	}
}
