package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus collectors are process-wide singletons registered once at
// startup. Keeping them at package level lets NewMetrics be called multiple
// times (tests, restarts) without duplicate registration panics.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fencecalc_requests_total",
		Help: "Total number of HTTP requests processed, labeled by endpoint and status code.",
	}, []string{"endpoint", "status"})

	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fencecalc_active_requests",
		Help: "Number of HTTP requests currently being served.",
	})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fencecalc_request_duration_seconds",
		Help:    "HTTP request latency distribution, labeled by endpoint.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// Metrics exposes the Prometheus instrumentation of the HTTP server.
type Metrics struct {
	handler http.Handler
}

// NewMetrics creates a Metrics instance backed by the default Prometheus
// registry, which includes the Go runtime collectors.
func NewMetrics() *Metrics {
	return &Metrics{handler: promhttp.Handler()}
}

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// IncrementActiveRequests increments the in-flight request gauge.
func (m *Metrics) IncrementActiveRequests() {
	activeRequests.Inc()
}

// DecrementActiveRequests decrements the in-flight request gauge.
func (m *Metrics) DecrementActiveRequests() {
	activeRequests.Dec()
}

// ObserveRequest records a completed request for the counter and latency
// histogram.
//
// Parameters:
//   - endpoint: The request path.
//   - status: The HTTP status code as a string.
//   - seconds: The request duration in seconds.
func (m *Metrics) ObserveRequest(endpoint, status string, seconds float64) {
	requestsTotal.WithLabelValues(endpoint, status).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(seconds)
}
