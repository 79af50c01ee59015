package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/metrics"
	"github.com/pkordes/trip-planner/internal/middleware"
)

// scrape returns the Prometheus exposition text served by rec.
func scrape(t *testing.T, rec *metrics.Recorder) string {
	t.Helper()
	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	b, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(b)
}

// TestMetrics_labelsByRoutePattern verifies requests are counted under the
// chi route pattern, so different trip IDs share one series.
func TestMetrics_labelsByRoutePattern(t *testing.T) {
	rec := metrics.NewRecorder()

	r := chi.NewRouter()
	r.Use(middleware.NewMetrics(rec))
	r.Get("/trips/{tripId}/links", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, id := range []string{tripID, "9b2f0e1c-1111-4111-8111-111111111111"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/trips/"+id+"/links", nil))
	}

	body := scrape(t, rec)
	assert.Contains(t, body,
		`trip_planner_http_requests_total{method="GET",route="/trips/{tripId}/links",status_code="200"} 2`)
	assert.Contains(t, body, `trip_planner_http_request_duration_seconds_count{method="GET",route="/trips/{tripId}/links",status_code="200"} 2`)
}

// TestMetrics_recordsErrorStatus verifies non-2xx statuses get their own series.
func TestMetrics_recordsErrorStatus(t *testing.T) {
	rec := metrics.NewRecorder()

	r := chi.NewRouter()
	r.Use(middleware.NewMetrics(rec))
	r.Get("/trips/{tripId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/trips/"+tripID, nil))

	assert.Contains(t, scrape(t, rec),
		`trip_planner_http_requests_total{method="GET",route="/trips/{tripId}",status_code="404"} 1`)
}

// TestMetrics_implicitOK verifies a handler that writes nothing is counted as 200.
func TestMetrics_implicitOK(t *testing.T) {
	rec := metrics.NewRecorder()
	h := middleware.NewMetrics(rec)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Contains(t, scrape(t, rec),
		`trip_planner_http_requests_total{method="GET",route="unmatched",status_code="200"} 1`)
}
