package app

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/redis/go-redis/v9"

	"parts-dispatch/internal/config"
	"parts-dispatch/internal/logx"
	"parts-dispatch/internal/transport/kafka"
)

// infra holds the optional broker connections. Either field is nil when its backend is
// not configured.
type infra struct {
	producer sarama.SyncProducer
	redis    *redis.Client
}

var (
	newKafkaProducer = kafka.NewProducer
	newRedisClient   = connectRedis
)

func newInfra(ctx context.Context, cfg *config.Config, logger logx.Logger) (*infra, error) {
	in := &infra{}

	p, err := newKafkaProducer(cfg.Kafka.Brokers)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	in.producer = p
	if p == nil {
		logger.Warn("kafka disabled, background jobs and event stream are off")
	}

	rdb, err := newRedisClient(ctx, cfg.Redis)
	if err != nil {
		in.close(logger)
		return nil, fmt.Errorf("redis: %w", err)
	}
	in.redis = rdb
	if rdb == nil {
		logger.Warn("redis disabled, live notification fan-out is off")
	}
	return in, nil
}

func connectRedis(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return rdb, nil
}

func (in *infra) close(logger logx.Logger) {
	if in == nil {
		return
	}
	if in.producer != nil {
		if err := in.producer.Close(); err != nil {
			logger.Error("kafka producer close error", logx.Err(err))
		}
	}
	if in.redis != nil {
		if err := in.redis.Close(); err != nil {
			logger.Error("redis close error", logx.Err(err))
		}
	}
}
