package events

import (
	"context"
	"fmt"
	"strconv"

	"parts-dispatch/internal/domain"
)

// RedisSink publishes each event on the pub/sub channel of every target user.
type RedisSink struct {
	rdb    redisPublisher
	prefix string
}

// NewRedisSink builds a sink publishing to prefix+userID channels.
func NewRedisSink(rdb redisPublisher, prefix string) *RedisSink {
	return &RedisSink{rdb: rdb, prefix: prefix}
}

// Name implements Sink.
func (*RedisSink) Name() string { return "redis" }

// Channel returns the channel of a user.
func (s *RedisSink) Channel(userID int64) string {
	return s.prefix + strconv.FormatInt(userID, 10)
}

// Publish implements Sink.
func (s *RedisSink) Publish(ctx context.Context, e domain.Event) error {
	if len(e.TargetUserIDs) == 0 {
		return nil
	}
	data, err := Marshal(e)
	if err != nil {
		return err
	}
	for _, uid := range e.TargetUserIDs {
		if err := s.rdb.Publish(ctx, s.Channel(uid), data).Err(); err != nil {
			return fmt.Errorf("publish %s to user %d: %w", e.Type, uid, err)
		}
	}
	return nil
}
