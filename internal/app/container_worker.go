package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"parts-dispatch/internal/config"
	"parts-dispatch/internal/logx"
	"parts-dispatch/internal/service/delivery"
	"parts-dispatch/internal/service/jobs"
	"parts-dispatch/internal/service/matching"
	"parts-dispatch/internal/transport/kafka"
)

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		newJobProcessor,
		newJobConsumer,
	)
}

type processorIn struct {
	dig.In

	Logger    logx.Logger
	Engine    *matching.Engine
	Delivery  *delivery.Service
	Processed *prometheus.CounterVec `name:"jobs_processed_total"`
}

func newJobProcessor(in processorIn) *jobs.Processor {
	return jobs.NewProcessor(in.Engine, in.Delivery, in.Processed, in.Logger)
}

// newJobConsumer returns nil when kafka is not configured. Failed jobs go back to the
// jobs topic through the same producer the API uses.
func newJobConsumer(cfg *config.Config, logger logx.Logger, p *jobs.Processor, q jobQueue) (*kafka.Consumer, error) {
	consumer, err := kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.Group, cfg.Kafka.JobsTopic, p.Handle)
	if err != nil || consumer == nil {
		return nil, err
	}
	if q != nil {
		consumer = consumer.WithRequeue(q, cfg.Kafka.MaxAttempts)
	}
	return consumer, nil
}
