package events

import (
	"context"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/ports/dispatchtx"
)

// StoreSink writes the event log row and one notification per target user.
type StoreSink struct {
	runner dispatchtx.Runner
}

// NewStoreSink returns a sink over the transactional store.
func NewStoreSink(runner dispatchtx.Runner) *StoreSink {
	return &StoreSink{runner: runner}
}

// Name implements Sink.
func (*StoreSink) Name() string { return "store" }

// Publish implements Sink.
func (s *StoreSink) Publish(ctx context.Context, e domain.Event) error {
	return s.runner.WithTx(ctx, func(tx dispatchtx.Repository) error {
		if err := tx.InsertEvent(ctx, e); err != nil {
			return err
		}
		return tx.InsertNotifications(ctx, e)
	})
}
