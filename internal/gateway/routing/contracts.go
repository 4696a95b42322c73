package routing

import (
	"context"
	"fmt"

	"parts-dispatch/internal/apperr"
	"parts-dispatch/internal/geo"
)

// Leg is a road leg between two points.
type Leg struct {
	DistanceKm  float64
	DurationMin float64
	Geometry    geo.LineString
	// Estimated is set when the leg comes from the great-circle estimate instead of the provider.
	Estimated bool
}

// Matrix holds pairwise travel figures. Row i is the origin, column j the destination.
type Matrix struct {
	DistancesKm  [][]float64
	DurationsMin [][]float64
	Estimated    bool
}

// Size returns the number of points the matrix covers.
func (m Matrix) Size() int { return len(m.DurationsMin) }

// Router computes legs and distance matrices.
type Router interface {
	Route(ctx context.Context, from, to geo.Point) (Leg, error)
	Matrix(ctx context.Context, points []geo.Point) (Matrix, error)
}

type counter interface {
	Inc()
}

var errMatrixSize = fmt.Errorf("%w: matrix size mismatch", apperr.ErrUpstreamUnavailable)
