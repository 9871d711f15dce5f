package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "escolta_http_requests_total",
		Help: "Total HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "escolta_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	StorageUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "escolta_storage_uploads_total",
		Help: "Object storage uploads by folder and result.",
	}, []string{"folder", "result"})

	StorageDeleteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "escolta_storage_delete_failures_total",
		Help: "Best-effort object deletions that failed and were swallowed.",
	})
)
