package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service-level prometheus instruments.
type Metrics struct {
	MessagesIngested prometheus.Counter
	StatusCascades   *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		MessagesIngested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fieldwatch_device_messages_ingested_total",
			Help: "Device messages accepted and projected into reports.",
		}),
		StatusCascades: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldwatch_status_cascades_total",
			Help: "Review status transitions cascaded onto watcher reports.",
		}, []string{"status"}),
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldwatch_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fieldwatch_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}
