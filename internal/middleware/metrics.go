package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/trip-planner/internal/metrics"
)

// unmatchedRoute labels requests that did not match any route, so 404 probes
// for random paths cannot blow up label cardinality.
const unmatchedRoute = "unmatched"

// NewMetrics returns a middleware that records each request's count and
// latency on rec, labelled by the chi route pattern.
//
// The pattern is only known after routing, so it is read once the downstream
// handler returns.
func NewMetrics(rec *metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				// Handler wrote nothing; net/http sends 200.
				status = http.StatusOK
			}
			rec.ObserveRequest(routePattern(r), r.Method, status, time.Since(start))
		})
	}
}

// routePattern returns the matched chi route pattern, or unmatchedRoute.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return unmatchedRoute
}
