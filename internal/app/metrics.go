package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"parts-dispatch/internal/http/middleware"
	"parts-dispatch/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter     `name:"rate_limit_exceeded_total"`
	GatewayRetriesTotal    prometheus.Counter     `name:"gateway_retries_total"`
	RoutingFallbackTotal   prometheus.Counter     `name:"routing_fallback_total"`
	EventSinkFailuresTotal *prometheus.CounterVec `name:"event_sink_failures_total"`
	JobsProcessedTotal     *prometheus.CounterVec `name:"jobs_processed_total"`
	MatchingDuration       prometheus.Histogram   `name:"matching_duration_seconds"`
	SolverDuration         prometheus.Histogram   `name:"vrp_solve_duration_seconds"`
	HTTP                   middleware.HTTPMetrics
}

// provideMetrics registers every collector on the default registry. Collectors that are
// already registered are reused so both binaries and tests can build containers repeatedly.
func provideMetrics() (metricsOut, error) {
	reg := prometheus.DefaultRegisterer
	var (
		out  metricsOut
		errs []error
	)
	out.RateLimitExceededTotal, errs = register(reg, "rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal(), errs)
	out.GatewayRetriesTotal, errs = register(reg, "gateway_retries_total", metrics.NewGatewayRetriesTotal(), errs)
	out.RoutingFallbackTotal, errs = register(reg, "routing_fallback_total", metrics.NewRoutingFallbackTotal(), errs)
	out.EventSinkFailuresTotal, errs = register(reg, "event_sink_failures_total", metrics.NewEventSinkFailuresTotal(), errs)
	out.JobsProcessedTotal, errs = register(reg, "jobs_processed_total", metrics.NewJobsProcessedTotal(), errs)
	out.MatchingDuration, errs = register(reg, "matching_duration_seconds", metrics.NewMatchingDuration(), errs)
	out.SolverDuration, errs = register(reg, "vrp_solve_duration_seconds", metrics.NewSolverDuration(), errs)
	out.HTTP.Requests, errs = register(reg, "http_requests_total", metrics.NewHTTPRequestsTotal(), errs)
	out.HTTP.Duration, errs = register(reg, "http_request_duration_seconds", metrics.NewHTTPRequestDuration(), errs)
	if len(errs) > 0 {
		return metricsOut{}, errors.Join(errs...)
	}
	return out, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, name string, c T, errs []error) (T, []error) {
	err := reg.Register(c)
	if err == nil {
		return c, errs
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, errs
		}
	}
	return c, append(errs, fmt.Errorf("register %s: %w", name, err))
}
