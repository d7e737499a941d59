package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wellen_http_requests_total",
		Help: "HTTP requests by method, route and status code",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wellen_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	SubmissionsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wellen_submissions_accepted_total",
		Help: "Progress submissions written by batched submits",
	})

	LiveClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wellen_live_clients",
		Help: "Connected live-feed websocket clients",
	})
)
