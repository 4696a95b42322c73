package matching

//go:generate mockgen -source=contracts.go -destination=matching_mocks_test.go -package=matching_test

import (
	"context"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/gateway/routing"
	"parts-dispatch/internal/geo"
	"parts-dispatch/internal/ports/dispatchtx"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error
}

type stockFinder interface {
	FindStock(ctx context.Context, normalizedPart string, minQuantity int) ([]domain.SupplierStock, error)
}

type distanceMatrix interface {
	Matrix(ctx context.Context, points []geo.Point) (routing.Matrix, error)
}

type emitter interface {
	Emit(ctx context.Context, events ...domain.Event)
}

type observer interface {
	Observe(v float64)
}
