package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"parts-dispatch/internal/config"
	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/events"
	"parts-dispatch/internal/gateway/routing"
	"parts-dispatch/internal/logx"
	"parts-dispatch/internal/repository"
	"parts-dispatch/internal/service/catalog"
	"parts-dispatch/internal/service/delivery"
	"parts-dispatch/internal/service/lifecycle"
	"parts-dispatch/internal/service/matching"
	"parts-dispatch/internal/transport/kafka"
)

// jobQueue is nil when Kafka is off.
type jobQueue interface {
	Enqueue(ctx context.Context, job domain.Job) error
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		func(pool *pgxpool.Pool) *repository.Store { return repository.NewStore(pool) },
		newJobQueue,
		newEmitter,
		newRoutingClient,
		newProfiles,
		newLifecycle,
		newMatching,
		newDelivery,
		func(cfg *config.Config, store *repository.Store, logger logx.Logger) *catalog.Service {
			return catalog.NewService(store, cfg.OperationTimeout, logger)
		},
	)
}

func newJobQueue(cfg *config.Config, in *infra) jobQueue {
	if in == nil || in.producer == nil {
		return nil
	}
	return kafka.NewJobProducer(in.producer, cfg.Kafka.JobsTopic)
}

type emitterIn struct {
	dig.In

	Config   *config.Config
	Logger   logx.Logger
	Store    *repository.Store
	Infra    *infra
	Failures *prometheus.CounterVec `name:"event_sink_failures_total"`
}

// newEmitter always records events in the store, then fans out to redis and kafka
// when they are configured.
func newEmitter(in emitterIn) *events.Emitter {
	sinks := []events.Sink{events.NewStoreSink(in.Store)}
	if in.Infra != nil && in.Infra.redis != nil {
		sinks = append(sinks, events.NewRedisSink(in.Infra.redis, in.Config.Redis.ChannelPrefix))
	}
	if in.Infra != nil && in.Infra.producer != nil {
		sinks = append(sinks, kafka.NewEventSink(in.Infra.producer, in.Config.Kafka.EventsTopic))
	}
	return events.NewEmitter(in.Logger, in.Failures, 0, sinks...)
}

type routingIn struct {
	dig.In

	Config    *config.Config
	Logger    logx.Logger
	Retries   prometheus.Counter `name:"gateway_retries_total"`
	Fallbacks prometheus.Counter `name:"routing_fallback_total"`
}

// newRoutingClient puts retries around openrouteservice and the haversine estimate behind both.
// Without an API key every leg is estimated.
func newRoutingClient(in routingIn) *routing.FallbackRouter {
	rc := in.Config.Routing
	est := routing.NewEstimator(rc.RoadFactor, rc.AverageSpeedKmh)

	var primary routing.Router
	if ors := routing.NewORSClient(routing.ORSConfig{
		BaseURL:           rc.BaseURL,
		APIKey:            rc.APIKey,
		Timeout:           rc.Timeout,
		RequestsPerSecond: rc.RequestsPerSecond,
	}); ors != nil {
		primary = routing.NewRetryingRouter(ors, in.Logger, in.Retries, routing.RetryConfig{
			MaxAttempts: rc.MaxAttempts,
			BaseDelay:   rc.BaseDelay,
			MaxDelay:    rc.MaxDelay,
		})
	} else {
		in.Logger.Warn("ORS_API_KEY not set, routing uses haversine estimates")
	}
	return routing.NewFallbackRouter(primary, est, rc.Timeout, in.Logger, in.Fallbacks)
}

func newProfiles(cfg *config.Config) (*matching.Profiles, error) {
	p, err := config.LoadWeightProfiles(cfg.Matching.WeightProfilesFile)
	if err != nil {
		return nil, fmt.Errorf("weight profiles: %w", err)
	}
	return matching.NewProfiles(p), nil
}

func newLifecycle(cfg *config.Config, store *repository.Store, em *events.Emitter, q jobQueue, logger logx.Logger) *lifecycle.Service {
	return lifecycle.NewService(store, em, q, cfg.OperationTimeout, logger)
}

type matchingIn struct {
	dig.In

	Config   *config.Config
	Logger   logx.Logger
	Store    *repository.Store
	Router   *routing.FallbackRouter
	Profiles *matching.Profiles
	Emitter  *events.Emitter
	Duration prometheus.Histogram `name:"matching_duration_seconds"`
}

func newMatching(in matchingIn) *matching.Engine {
	return matching.NewEngine(in.Store, in.Store, in.Router, in.Profiles, in.Emitter, in.Duration, in.Config.OperationTimeout, in.Logger)
}

type deliveryIn struct {
	dig.In

	Config   *config.Config
	Logger   logx.Logger
	Store    *repository.Store
	Router   *routing.FallbackRouter
	Emitter  *events.Emitter
	Duration prometheus.Histogram `name:"vrp_solve_duration_seconds"`
}

func newDelivery(in deliveryIn) *delivery.Service {
	return delivery.NewDeliveryService(in.Store, in.Router, in.Emitter, delivery.NewWindowFactory(), in.Duration, delivery.Config{
		OperationTimeout: in.Config.OperationTimeout,
		SolverBudget:     in.Config.Routing.SolverBudget,
		DefaultVehicles:  in.Config.Routing.DefaultVehicles,
	}, in.Logger)
}
