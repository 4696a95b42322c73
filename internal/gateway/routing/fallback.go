package routing

import (
	"context"
	"time"

	"parts-dispatch/internal/geo"
	"parts-dispatch/internal/logx"
)

const (
	// DefaultRoadFactor inflates great-circle distance to approximate road distance.
	DefaultRoadFactor = 1.3
	// DefaultSpeedKmh is the average speed used for estimated durations.
	DefaultSpeedKmh = 35.0
)

// Estimator derives legs from great-circle distance. It never fails.
type Estimator struct {
	RoadFactor float64
	SpeedKmh   float64
}

// NewEstimator falls back to the default factor and speed for non-positive values.
func NewEstimator(roadFactor, speedKmh float64) Estimator {
	if roadFactor <= 0 {
		roadFactor = DefaultRoadFactor
	}
	if speedKmh <= 0 {
		speedKmh = DefaultSpeedKmh
	}
	return Estimator{RoadFactor: roadFactor, SpeedKmh: speedKmh}
}

// Leg returns the estimated leg between from and to.
func (e Estimator) Leg(from, to geo.Point) Leg {
	d := geo.HaversineKm(from, to) * e.RoadFactor
	return Leg{
		DistanceKm:  d,
		DurationMin: d / e.SpeedKmh * 60,
		Geometry:    geo.NewLineString(from, to),
		Estimated:   true,
	}
}

// Grid returns the estimated matrix for points.
func (e Estimator) Grid(points []geo.Point) Matrix {
	n := len(points)
	m := Matrix{DistancesKm: make([][]float64, n), DurationsMin: make([][]float64, n), Estimated: true}
	for i := range points {
		m.DistancesKm[i] = make([]float64, n)
		m.DurationsMin[i] = make([]float64, n)
		for j := range points {
			if i == j {
				continue
			}
			l := e.Leg(points[i], points[j])
			m.DistancesKm[i][j] = l.DistanceKm
			m.DurationsMin[i][j] = l.DurationMin
		}
	}
	return m
}

// Route implements Router.
func (e Estimator) Route(_ context.Context, from, to geo.Point) (Leg, error) {
	return e.Leg(from, to), nil
}

// Matrix implements Router.
func (e Estimator) Matrix(_ context.Context, points []geo.Point) (Matrix, error) {
	return e.Grid(points), nil
}

// FallbackRouter prefers the provider and degrades to the estimate on any provider failure.
// Its methods never return an error.
type FallbackRouter struct {
	primary   Router
	estimate  Estimator
	timeout   time.Duration
	logger    logx.Logger
	fallbacks counter
}

// NewFallbackRouter builds a router over primary. A nil primary always estimates.
func NewFallbackRouter(primary Router, estimate Estimator, timeout time.Duration, logger logx.Logger, fallbacks counter) *FallbackRouter {
	if logger == nil {
		logger = logx.Nop()
	}
	return &FallbackRouter{primary: primary, estimate: estimate, timeout: timeout, logger: logger, fallbacks: fallbacks}
}

// Route returns a zero leg for identical points without calling the provider.
func (r *FallbackRouter) Route(ctx context.Context, from, to geo.Point) (Leg, error) {
	if from.Equal(to) {
		return Leg{Geometry: geo.NewLineString(from, to), Estimated: r.primary == nil}, nil
	}
	if r.primary == nil {
		return r.estimate.Leg(from, to), nil
	}

	cctx, cancel := r.withTimeout(ctx)
	defer cancel()
	leg, err := r.primary.Route(cctx, from, to)
	if err != nil {
		r.degraded("Route", err)
		return r.estimate.Leg(from, to), nil
	}
	return leg, nil
}

// Matrix returns the provider matrix, or the estimated one when the provider fails.
func (r *FallbackRouter) Matrix(ctx context.Context, points []geo.Point) (Matrix, error) {
	if r.primary == nil || len(points) < 2 {
		return r.estimate.Grid(points), nil
	}

	cctx, cancel := r.withTimeout(ctx)
	defer cancel()
	m, err := r.primary.Matrix(cctx, points)
	if err == nil && m.Size() != len(points) {
		err = errMatrixSize
	}
	if err != nil {
		r.degraded("Matrix", err)
		return r.estimate.Grid(points), nil
	}
	return m, nil
}

func (r *FallbackRouter) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *FallbackRouter) degraded(method string, err error) {
	if r.fallbacks != nil {
		r.fallbacks.Inc()
	}
	r.logger.Warn("routing provider unavailable, using estimate",
		logx.String("event", "routing_fallback"),
		logx.String("method", method),
		logx.Err(err),
	)
}
