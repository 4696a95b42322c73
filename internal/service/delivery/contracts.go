//go:generate mockgen -source=contracts.go -destination=delivery_mocks_test.go -package=delivery_test

package delivery

import (
	"context"
	"time"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/gateway/routing"
	"parts-dispatch/internal/geo"
	"parts-dispatch/internal/ports/dispatchtx"
)

// WindowFactory derives the planning windows of an assignment.
type WindowFactory interface {
	Windows(c domain.AssignmentContext, now time.Time) Windows
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error
}

type router interface {
	Route(ctx context.Context, from, to geo.Point) (routing.Leg, error)
	Matrix(ctx context.Context, points []geo.Point) (routing.Matrix, error)
}

type emitter interface {
	Emit(ctx context.Context, events ...domain.Event)
}

type observer interface {
	Observe(v float64)
}
