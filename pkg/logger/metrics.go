package logger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for IndicatorComputations
const (
	OutcomeOK            = "ok"
	OutcomeInvalidConfig = "invalid_config"
	OutcomeInvalidBars   = "invalid_bars"
	OutcomeUnknown       = "unknown_indicator"
	OutcomeError         = "error"
)

var (
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	IndicatorComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "indicator_computations_total",
			Help: "Total number of indicator computations by outcome",
		},
		[]string{"indicator", "outcome"},
	)

	IndicatorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "indicator_computation_duration_seconds",
			Help:    "Time spent computing an indicator over a bar array",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 10),
		},
		[]string{"indicator"},
	)

	IndicatorInputBars = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "indicator_input_bars",
			Help:    "Number of bars passed to an indicator computation",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		},
		[]string{"indicator"},
	)
)
