package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/IBM/sarama"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/events"
)

var newSyncProducer = sarama.NewSyncProducer

// NewProducer dials a synchronous producer that waits for all in-sync replicas.
// It returns nil when no brokers are configured.
func NewProducer(brokers []string) (sarama.SyncProducer, error) {
	if len(brokers) == 0 {
		return nil, nil
	}
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Partitioner = sarama.NewHashPartitioner
	return newSyncProducer(brokers, cfg)
}

// JobProducer publishes jobs to the jobs topic.
type JobProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewJobProducer builds a JobProducer.
func NewJobProducer(p sarama.SyncProducer, topic string) *JobProducer {
	return &JobProducer{producer: p, topic: strings.TrimSpace(topic)}
}

// Enqueue publishes a job. Jobs for the same target share a partition.
func (p *JobProducer) Enqueue(ctx context.Context, job domain.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(FromDomain(job))
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", job.ID, err)
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(string(job.Kind) + ":" + strconv.FormatInt(job.TargetID(), 10)),
		Value: sarama.ByteEncoder(b),
	})
	if err != nil {
		return fmt.Errorf("enqueue %s job %s: %w", job.Kind, job.ID, err)
	}
	return nil
}

// EventSink publishes committed events to the events topic, keyed by entity.
type EventSink struct {
	producer sarama.SyncProducer
	topic    string
}

// NewEventSink builds an EventSink.
func NewEventSink(p sarama.SyncProducer, topic string) *EventSink {
	return &EventSink{producer: p, topic: strings.TrimSpace(topic)}
}

var _ events.Sink = (*EventSink)(nil)

// Name implements events.Sink.
func (*EventSink) Name() string { return "kafka" }

// Publish implements events.Sink.
func (s *EventSink) Publish(ctx context.Context, e domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := events.Marshal(e)
	if err != nil {
		return err
	}
	_, _, err = s.producer.SendMessage(&sarama.ProducerMessage{
		Topic:     s.topic,
		Key:       sarama.StringEncoder(e.EntityType + ":" + strconv.FormatInt(e.EntityID, 10)),
		Value:     sarama.ByteEncoder(b),
		Timestamp: e.OccurredAt,
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(e.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}
