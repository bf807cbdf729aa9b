package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ticketdesk_http_request_duration_seconds",
		Help:    "HTTP request latencies in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	httpRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ticketdesk_http_requests_in_flight",
		Help: "Current number of HTTP requests being served",
	})

	sessionCacheOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ticketdesk_session_cache_operations_total",
		Help: "Session cache operations by kind and result",
	}, []string{"op", "result"})
)
