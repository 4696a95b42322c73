package events

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/logx"
)

const defaultEmitTimeout = 5 * time.Second

// Emitter fans events out to every sink. Sink failures are logged and counted, never returned.
type Emitter struct {
	sinks    []Sink
	logger   logx.Logger
	failures *prometheus.CounterVec
	timeout  time.Duration
}

// NewEmitter builds an emitter. failures may be nil.
func NewEmitter(logger logx.Logger, failures *prometheus.CounterVec, timeout time.Duration, sinks ...Sink) *Emitter {
	if logger == nil {
		logger = logx.Nop()
	}
	if timeout <= 0 {
		timeout = defaultEmitTimeout
	}
	return &Emitter{sinks: sinks, logger: logger, failures: failures, timeout: timeout}
}

// Emit publishes events to all sinks. It outlives the caller's cancellation so that
// a finished request still gets its events delivered.
func (m *Emitter) Emit(ctx context.Context, events ...domain.Event) {
	if len(events) == 0 || len(m.sinks) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
	defer cancel()

	for _, e := range events {
		for _, s := range m.sinks {
			if err := s.Publish(ctx, e); err != nil {
				if m.failures != nil {
					m.failures.WithLabelValues(s.Name()).Inc()
				}
				m.logger.Error("event sink failed",
					logx.String("event", "event_emit_failed"),
					logx.String("sink", s.Name()),
					logx.String("event_type", string(e.Type)),
					logx.String("event_id", e.ID.String()),
					logx.Err(err),
				)
				continue
			}
		}
		m.logger.Debug("event emitted",
			logx.String("event", "event_emitted"),
			logx.String("event_type", string(e.Type)),
			logx.String("entity_type", e.EntityType),
			logx.Int64("entity_id", e.EntityID),
			logx.Int64s("targets", e.TargetUserIDs),
		)
	}
}
