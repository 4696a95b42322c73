// Package jobs runs background work pulled from the job queue.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parts-dispatch/internal/apperr"
	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/logx"
)

// Job results reported to the processed counter.
const (
	ResultOK        = "ok"
	ResultDropped   = "dropped"
	ResultRetryable = "retryable"
	ResultUnknown   = "unknown_kind"
)

// Processor executes jobs as the system actor.
type Processor struct {
	matching  MatchingPort
	delivery  DeliveryPort
	factory   *actionFactory
	processed resultCounter
	logger    logx.Logger
}

// NewProcessor creates a Processor. processed may be nil.
func NewProcessor(m MatchingPort, d DeliveryPort, processed resultCounter, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{
		matching:  m,
		delivery:  d,
		processed: processed,
		logger:    logger,
	}
	p.factory = newActionFactory(p.onMatch, p.onPlan, p.onRecompute)
	return p
}

// Handle runs one job. Failures that a retry cannot fix are logged and swallowed;
// everything else is returned so the transport can redeliver the job.
func (p *Processor) Handle(ctx context.Context, job domain.Job) error {
	fn, ok := p.factory.get(job.Kind)
	if !ok {
		p.logger.Warn("unknown job kind",
			logx.String("event", "job_unknown"),
			logx.String("job_id", job.ID.String()),
			logx.String("kind", string(job.Kind)),
		)
		p.count(job.Kind, ResultUnknown)
		return nil
	}

	start := time.Now()
	err := fn(ctx, job)
	fields := []logx.Field{
		logx.String("job_id", job.ID.String()),
		logx.String("kind", string(job.Kind)),
		logx.Int64("target_id", job.TargetID()),
		logx.Int("attempt", job.Attempt),
		logx.Duration("took", time.Since(start)),
	}

	switch {
	case err == nil:
		p.count(job.Kind, ResultOK)
		p.logger.Info("job done", append(fields, logx.String("event", "job_done"))...)
		return nil
	case Permanent(err):
		p.count(job.Kind, ResultDropped)
		p.logger.Warn("job dropped", append(fields, logx.String("event", "job_dropped"), logx.Err(err))...)
		return nil
	default:
		p.count(job.Kind, ResultRetryable)
		p.logger.Error("job failed", append(fields, logx.String("event", "job_failed"), logx.Err(err))...)
		return fmt.Errorf("job %s %s: %w", job.Kind, job.ID, err)
	}
}

func (p *Processor) onMatch(ctx context.Context, j domain.Job) error {
	_, err := p.matching.RunMatching(ctx, j.OrderID, domain.SystemActor())
	return err
}

func (p *Processor) onPlan(ctx context.Context, j domain.Job) error {
	_, err := p.delivery.CreateSingleDelivery(ctx, domain.SystemActor(), j.AssignmentID)
	return err
}

func (p *Processor) onRecompute(ctx context.Context, j domain.Job) error {
	_, err := p.delivery.RecomputeETA(ctx, domain.SystemActor(), j.DeliveryID)
	return err
}

func (p *Processor) count(kind domain.JobKind, result string) {
	if p.processed != nil {
		p.processed.WithLabelValues(string(kind), result).Inc()
	}
}

// Permanent reports whether err is a domain outcome that redelivery would only repeat.
func Permanent(err error) bool {
	for _, target := range []error{
		apperr.ErrNotFound,
		apperr.ErrValidation,
		apperr.ErrForbidden,
		apperr.ErrInvalidTransition,
		apperr.ErrInsufficientStock,
		apperr.ErrNoRouteFound,
		apperr.ErrConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
