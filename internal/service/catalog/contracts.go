package catalog

import (
	"context"

	"parts-dispatch/internal/ports/dispatchtx"
)

// txRunner defines the storage surface required by the catalog service.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error
}
