package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PlisioRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plisiopay",
			Subsystem: "plisio_api",
			Name:      "requests_total",
			Help:      "Total number of Plisio API calls",
		},
		[]string{"operation", "result"},
	)

	PlisioRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "plisiopay",
			Subsystem: "plisio_api",
			Name:      "request_duration_seconds",
			Help:      "Plisio API call latency in seconds",
			Buckets:   []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	StepTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plisiopay",
			Subsystem: "paysheet",
			Name:      "step_transitions_total",
			Help:      "Total number of payment step changes observed by sessions",
		},
		[]string{"step"},
	)

	ActivePolls = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "plisiopay",
			Subsystem: "paysheet",
			Name:      "active_polls",
			Help:      "Number of invoice poll loops currently running",
		},
	)

	StepEventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plisiopay",
			Subsystem: "paysheet",
			Name:      "step_events_published_total",
			Help:      "Total number of step events handed to sinks",
		},
		[]string{"sink", "status"},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "plisiopay",
			Subsystem: "paysheet",
			Name:      "active_sessions",
			Help:      "Number of open payment sessions",
		},
	)
)

// API call results.
const (
	ResultSuccess     = "success"
	ResultNotFound    = "not_found"
	ResultAPIError    = "api_error"
	ResultBadResponse = "bad_response"
	ResultUnavailable = "unavailable"
)

func init() {
	Registry.MustRegister(
		PlisioRequestsTotal,
		PlisioRequestDuration,
		StepTransitions,
		ActivePolls,
		StepEventsPublished,
		ActiveSessions,
	)
}
