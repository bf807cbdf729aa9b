package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSent    = "sent"
	resultFailed  = "failed"
	resultDropped = "dropped"
)

var (
	sendsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ticketdesk_notify_sends_total",
		Help: "Notification send attempts by result",
	}, []string{"result"})

	sendDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ticketdesk_notify_send_duration_seconds",
		Help:    "Time spent in a single mailer send attempt",
		Buckets: prometheus.DefBuckets,
	})
)
