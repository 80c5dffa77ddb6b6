package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-seat-hold-inventory/internal/api"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/api/handler"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/api/middleware"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/application"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/config"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/infrastructure/memory"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/pkg/clock"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/pkg/metrics"
)

// TestServer はE2Eテスト用のサーバー
type TestServer struct {
	Echo    *echo.Echo
	Clock   *clock.Fake
	Metrics *metrics.Metrics
}

// newTestServer は本番と同じ構成のサーバーをインメモリで組み立てる
func newTestServer(t *testing.T, opts ...application.InventoryServiceOption) *TestServer {
	t.Helper()

	clk := clock.NewFake(time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC))
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	opts = append([]application.InventoryServiceOption{
		application.WithClock(clk),
		application.WithHoldTimeout(application.DefaultHoldTimeout),
		application.WithMetrics(m),
	}, opts...)
	svc := application.NewInventoryService(memory.NewStore(), opts...)

	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	middleware.SetupMiddleware(e)
	e.Use(middleware.PrometheusMiddleware(m))

	handler.RegisterRoutes(e, svc)
	e.GET("/metrics/prometheus",
		echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		middleware.MetricsBasicAuth(config.MetricsConfig{}),
	)

	return &TestServer{Echo: e, Clock: clk, Metrics: m}
}

func (s *TestServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func (s *TestServer) createEvent(t *testing.T, totalSeats int) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/events", map[string]interface{}{"name": "E2Eライブ", "total_seats": totalSeats})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp handler.CreateEventResponse
	decode(t, rec, &resp)
	return resp.EventID
}

func (s *TestServer) createHold(t *testing.T, eventID string, qty int) handler.HoldResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/holds", map[string]interface{}{"event_id": eventID, "qty": qty})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp handler.HoldResponse
	decode(t, rec, &resp)
	return resp
}

func (s *TestServer) snapshot(t *testing.T, eventID string) handler.SnapshotResponse {
	t.Helper()
	rec := s.do(t, http.MethodGet, "/events/"+eventID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp handler.SnapshotResponse
	decode(t, rec, &resp)
	return resp
}

func (s *TestServer) counters(t *testing.T) handler.MetricsResponse {
	t.Helper()
	rec := s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp handler.MetricsResponse
	decode(t, rec, &resp)
	return resp
}
