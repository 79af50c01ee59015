// Package metrics holds the Prometheus collectors for the trip planner API.
// Collectors are registered on a dedicated registry rather than the global
// default, so tests can build as many Recorders as they like.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "trip_planner"

// Recorder records HTTP request counts and latencies.
type Recorder struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with its own registry. The registry also
// carries the standard Go runtime and process collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto := promauto.With(reg)

	return &Recorder{
		registry: reg,
		requests: auto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests by route, method, and status code.",
			},
			[]string{"route", "method", "status_code"},
		),
		requestDuration: auto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds by route, method, and status code.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method", "status_code"},
		),
	}
}

// ObserveRequest records one finished request. route should be the router
// pattern (e.g. "/trips/{tripId}/links"), never the raw path, to keep label
// cardinality bounded.
func (r *Recorder) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	r.requests.WithLabelValues(route, method, code).Inc()
	r.requestDuration.WithLabelValues(route, method, code).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
