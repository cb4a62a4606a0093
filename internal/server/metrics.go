package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datapath_events_total",
			Help: "Tutor events received over the API",
		},
		[]string{"event", "outcome"},
	)

	eventDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "datapath_event_duration_seconds",
			Help:    "Time to apply an event and run its effects",
			Buckets: []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"event"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "datapath_active_sessions",
			Help: "Number of live API sessions",
		},
	)

	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datapath_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)
)
