// Package server exposes the polynomial engine over HTTP: evaluation,
// operation listing, health and Prometheus metrics.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks HTTP-level activity. Per-operation counters and durations
// are recorded by the engine itself.
type Metrics struct {
	handler http.Handler
}

var (
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "polycalc_active_requests",
		Help: "Current number of in-flight HTTP requests",
	})
	totalRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polycalc_requests_total",
		Help: "Total number of HTTP requests received, by path",
	}, []string{"path"})
)

// NewMetrics creates a Metrics serving the default Prometheus registry.
//
// Returns:
//   - *Metrics: The metrics collector and its promhttp handler.
func NewMetrics() *Metrics {
	return &Metrics{
		handler: promhttp.Handler(),
	}
}

// IncrementActiveRequests records the start of a request.
//
// Parameters:
//   - path: The request path, used as the polycalc_requests_total label.
func (m *Metrics) IncrementActiveRequests(path string) {
	activeRequests.Inc()
	totalRequests.WithLabelValues(path).Inc()
}

// DecrementActiveRequests records the end of a request.
func (m *Metrics) DecrementActiveRequests() {
	activeRequests.Dec()
}

// WritePrometheus writes the metrics in Prometheus text format.
//
// Parameters:
//   - w: The response writer.
//   - r: The scrape request; promhttp negotiates the encoding from it.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.metrics.WritePrometheus(w, r)
}

// metricsMiddleware tracks in-flight requests.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests(r.URL.Path)
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}
