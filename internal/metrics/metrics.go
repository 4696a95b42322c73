package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts made against the routing provider
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed against the routing provider",
	})
}

// NewRoutingFallbackTotal returns a Prometheus counter for routes answered by the haversine estimate
// because the provider failed
func NewRoutingFallbackTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "routing_fallback_total",
		Help: "Total number of routing requests answered by the haversine fallback after a provider failure",
	})
}

// NewEventSinkFailuresTotal returns a counter of failed event publishes by sink
func NewEventSinkFailuresTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "event_sink_failures_total",
		Help: "Total number of events a sink failed to publish",
	}, []string{"sink"})
}

// NewMatchingDuration returns a histogram of matching pass durations in seconds
func NewMatchingDuration() prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "matching_duration_seconds",
		Help:    "Duration of supplier matching passes",
		Buckets: prometheus.DefBuckets,
	})
}

// NewSolverDuration returns a histogram of batched route solve durations in seconds
func NewSolverDuration() prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vrp_solve_duration_seconds",
		Help:    "Duration of pickup and delivery route solves",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})
}

// NewJobsProcessedTotal returns a counter of worker jobs by kind and result
func NewJobsProcessedTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jobs_processed_total",
		Help: "Total number of worker jobs processed by kind and result",
	}, []string{"kind", "result"})
}

// NewHTTPRequestsTotal returns a counter of served HTTP requests by method, route pattern and status
func NewHTTPRequestsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
}

// NewHTTPRequestDuration returns a histogram of HTTP request durations in seconds
func NewHTTPRequestDuration() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
}
