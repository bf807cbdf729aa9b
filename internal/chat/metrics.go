package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
	outcomeEnded = "ended"
)

var (
	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ticketdesk_chat_turns_total",
		Help: "Chat turns handled by intent and outcome",
	}, []string{"intent", "outcome"}) // outcome=ok|error|ended

	handlerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ticketdesk_chat_handler_duration_seconds",
		Help:    "Time spent in chat intent handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"intent"})

	supportRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketdesk_chat_support_requests_total",
		Help: "Support requests handed to the notification bridge",
	})
)
