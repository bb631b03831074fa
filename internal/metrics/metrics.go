package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RemoteRequestsTotal counts calls to the forecasting backend by outcome.
	RemoteRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "powercast_remote_requests_total",
			Help: "Total number of requests issued to the forecasting backend",
		},
		[]string{"endpoint", "outcome"}, // ok, unavailable, circuit_open
	)

	RemoteRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "powercast_remote_request_duration_seconds",
			Help:    "Forecasting backend request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"endpoint"},
	)

	// FallbacksTotal counts responses served from synthetic data.
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "powercast_fallback_total",
			Help: "Total number of responses substituted with synthetic data",
		},
		[]string{"category"},
	)

	CircuitBreakerStateGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "powercast_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	LivePollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "powercast_live_polls_total",
			Help: "Total number of live grid polls by data source",
		},
		[]string{"source"},
	)
)
