package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestTotal counts HTTP requests by method, route and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "board_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// NotificationsTotal counts notifications committed to the log, by save scope and title.
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_notifications_total",
			Help: "Total number of notifications committed",
		},
		[]string{"scope", "title"},
	)
	// RebalanceRewrites counts priority values rewritten by the rebalancer.
	RebalanceRewrites = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "board_rebalance_rewrites_total",
			Help: "Total number of priority values rewritten by rebalancing",
		},
	)
	// ProjectUpdatesTotal counts single-project updates by mode and outcome.
	ProjectUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_project_updates_total",
			Help: "Total number of project updates",
		},
		[]string{"mode", "status"},
	)
)
