//go:generate mockgen -source=contracts.go -destination=events_mocks_test.go -package=events_test

// Package events delivers domain events to their sinks after the producing transaction commits.
package events

import (
	"context"

	"github.com/redis/go-redis/v9"

	"parts-dispatch/internal/domain"
)

// Sink receives committed events.
type Sink interface {
	Name() string
	Publish(ctx context.Context, e domain.Event) error
}

type redisPublisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}
