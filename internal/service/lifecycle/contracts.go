//go:generate mockgen -source=contracts.go -destination=lifecycle_mocks_test.go -package=lifecycle_test

package lifecycle

import (
	"context"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/ports/dispatchtx"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error
}

type emitter interface {
	Emit(ctx context.Context, events ...domain.Event)
}

type jobQueue interface {
	Enqueue(ctx context.Context, job domain.Job) error
}
