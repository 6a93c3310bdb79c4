package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors shared across the HTTP surface.
// Feature packages define their own collectors where they need more detail.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	AuditDropped    prometheus.Counter
}

// New creates the shared collectors on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates the collectors on a caller-owned registry. Tests
// use this to avoid duplicate registration on the process-global registry.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regwise_http_requests_total",
			Help: "Total HTTP requests served, by method, path and status.",
		}, []string{"method", "path", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "regwise_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		AuditDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "regwise_audit_events_dropped_total",
			Help: "Audit events dropped because the worker inbox was full.",
		}),
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, path string, status int, d time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// IncrementAuditDropped counts one dropped audit event.
func (m *Metrics) IncrementAuditDropped() {
	m.AuditDropped.Inc()
}
