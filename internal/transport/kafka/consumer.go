// Package kafka carries background jobs and committed events over Kafka topics.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/logx"
)

// HandleFunc processes a single job from Kafka.
type HandleFunc func(context.Context, domain.Job) error

type requeuer interface {
	Enqueue(ctx context.Context, job domain.Job) error
}

var newConsumerGroup = sarama.NewConsumerGroup

// Consumer wraps a Sarama consumer group and dispatches jobs to a handler.
// Offsets are marked once a job has been handled, dropped or handed back to the
// topic, so a job runs at most once per delivery.
type Consumer struct {
	group       sarama.ConsumerGroup
	topic       string
	handler     HandleFunc
	logger      logx.Logger
	requeue     requeuer
	maxAttempts int
	backoff     time.Duration
}

// NewConsumer creates a new Kafka consumer. It returns nil when kafka is not configured.
func NewConsumer(logger logx.Logger, brokers []string, groupID, topic string, h HandleFunc) (*Consumer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" || strings.TrimSpace(groupID) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logx.Nop()
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := newConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:       group,
		topic:       topic,
		handler:     h,
		logger:      logger,
		maxAttempts: 1,
		backoff:     time.Second,
	}, nil
}

// WithRequeue hands failed jobs back to the topic until they have run maxAttempts times.
func (c *Consumer) WithRequeue(r requeuer, maxAttempts int) *Consumer {
	if c == nil {
		return nil
	}
	c.requeue = r
	c.maxAttempts = max(1, maxAttempts)
	return c
}

// Run starts the consumer and blocks until ctx is done.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &groupHandler{c: c}

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("kafka consume error", logx.String("topic", c.topic), logx.Err(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff):
			}
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close stops the consumer group.
func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log := h.c.logger
	for msg := range claim.Messages() {
		var dto JobDTO
		if err := json.Unmarshal(msg.Value, &dto); err != nil {
			log.Warn("kafka bad json", logx.Int64("offset", msg.Offset), logx.Err(err))
			sess.MarkMessage(msg, "")
			continue
		}
		job, err := ToDomain(dto)
		if err != nil {
			log.Warn("kafka invalid job", logx.Int64("offset", msg.Offset), logx.Err(err))
			sess.MarkMessage(msg, "")
			continue
		}

		if err := h.c.handler(sess.Context(), job); err != nil {
			if err := h.retry(sess.Context(), job, err); err != nil {
				return err
			}
		}
		sess.MarkMessage(msg, "")
	}
	return nil
}

// retry decides what happens to a failed job. It returns an error only when the job
// could not be handed back, which leaves the offset unmarked for redelivery.
func (h *groupHandler) retry(ctx context.Context, job domain.Job, cause error) error {
	log := h.c.logger.With(
		logx.String("job_id", job.ID.String()),
		logx.String("kind", string(job.Kind)),
		logx.Int("attempt", job.Attempt),
	)

	var perm PermanentError
	if errors.As(cause, &perm) || h.c.requeue == nil || job.Attempt+1 >= h.c.maxAttempts {
		log.Warn("kafka handle failed, skipping message", logx.String("event", "job_abandoned"), logx.Err(cause))
		return nil
	}

	job.Attempt++
	if err := h.c.requeue.Enqueue(ctx, job); err != nil {
		log.Error("kafka requeue failed", logx.Err(err))
		return err
	}
	log.Info("kafka job requeued", logx.String("event", "job_requeued"), logx.Err(cause))
	return nil
}
