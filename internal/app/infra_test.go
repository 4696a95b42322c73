package app

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"parts-dispatch/internal/config"
	testlog "parts-dispatch/internal/testutil"
)

func withInfraStubs(
	t *testing.T,
	producer func([]string) (sarama.SyncProducer, error),
	rdb func(context.Context, config.Redis) (*redis.Client, error),
) {
	t.Helper()
	origP, origR := newKafkaProducer, newRedisClient
	newKafkaProducer, newRedisClient = producer, rdb
	t.Cleanup(func() { newKafkaProducer, newRedisClient = origP, origR })
}

func TestNewInfra_Disabled_WarnsAndReturnsEmpty(t *testing.T) {
	rec := testlog.New()

	in, err := newInfra(context.Background(), testConfig(), rec.Logger())
	require.NoError(t, err)
	require.Nil(t, in.producer)
	require.Nil(t, in.redis)
	require.True(t, rec.Has("kafka disabled, background jobs and event stream are off"))
	require.True(t, rec.Has("redis disabled, live notification fan-out is off"))
}

func TestNewInfra_ProducerError(t *testing.T) {
	withInfraStubs(t,
		func([]string) (sarama.SyncProducer, error) { return nil, errors.New("no brokers") },
		connectRedis,
	)

	_, err := newInfra(context.Background(), testConfig(), testlog.New().Logger())
	require.Error(t, err)
	require.Contains(t, err.Error(), "kafka producer: no brokers")
}

func TestNewInfra_RedisError(t *testing.T) {
	p := mocks.NewSyncProducer(t, nil)
	withInfraStubs(t,
		func([]string) (sarama.SyncProducer, error) { return p, nil },
		func(context.Context, config.Redis) (*redis.Client, error) { return nil, errors.New("refused") },
	)

	_, err := newInfra(context.Background(), testConfig(), testlog.New().Logger())
	require.Error(t, err)
	require.Contains(t, err.Error(), "redis: refused")
}

func TestConnectRedis(t *testing.T) {
	t.Parallel()

	rdb, err := connectRedis(context.Background(), config.Redis{})
	require.NoError(t, err)
	require.Nil(t, rdb)

	_, err = connectRedis(context.Background(), config.Redis{URL: "not-a-url"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse url")
}

func TestInfraClose_NilSafe(t *testing.T) {
	t.Parallel()

	var in *infra
	require.NotPanics(t, func() { in.close(testlog.New().Logger()) })
	require.NotPanics(t, func() { (&infra{}).close(testlog.New().Logger()) })
}
