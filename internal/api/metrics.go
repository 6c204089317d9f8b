package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	clientRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusrate_client_requests_total",
			Help: "Total number of backend requests issued by the client",
		},
		[]string{"method", "path", "status"},
	)

	clientRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campusrate_client_request_duration_seconds",
			Help:    "Backend request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

func recordRequest(method, path, status string, duration time.Duration) {
	clientRequestsTotal.WithLabelValues(method, path, status).Inc()
	clientRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
