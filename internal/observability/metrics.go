// Package observability holds the Prometheus collectors exported on /metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Roster operation outcomes used as the "result" label.
const (
	ResultOK              = "ok"
	ResultNotFound        = "activity_not_found"
	ResultAlreadySignedUp = "already_signed_up"
	ResultNotRegistered   = "not_registered"
	ResultError           = "error"
)

var (
	Signups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "activities",
			Name:      "signups_total",
			Help:      "Signup attempts by outcome.",
		},
		[]string{"result"},
	)

	Unregistrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "activities",
			Name:      "unregistrations_total",
			Help:      "Unregister attempts by outcome.",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "activities",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "activities",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
