// Package vrp solves small pickup-and-delivery routing problems with time windows.
//
// Node 0 is the depot. Every pair names a pickup node and a dropoff node that must be
// served by the same vehicle, pickup first. Travel cost is the duration matrix.
package vrp

import (
	"fmt"
	"time"

	"parts-dispatch/internal/apperr"
)

// Window bounds the service start at a node, in seconds from the plan start.
type Window struct {
	Start float64
	End   float64
}

// Pair is one pickup and its dropoff.
type Pair struct {
	Pickup  int
	Dropoff int
}

// Problem is a pickup and delivery problem.
type Problem struct {
	Durations [][]float64 // seconds, square, node 0 is the depot
	Windows   []Window    // one per node
	Pairs     []Pair
	Vehicles  int
}

// Options bound the search.
type Options struct {
	TimeBudget    time.Duration
	MaxIterations int
	// Stall stops the search after this many iterations without a new best.
	Stall int
	Seed  int64
}

const (
	defaultBudget = 2 * time.Second
	defaultStall  = 400
)

func (o Options) withDefaults() Options {
	if o.TimeBudget <= 0 {
		o.TimeBudget = defaultBudget
	}
	if o.Stall <= 0 {
		o.Stall = defaultStall
	}
	if o.Seed == 0 {
		o.Seed = 1
	}
	return o
}

// Route is the visiting order of one vehicle, depot excluded.
type Route struct {
	Vehicle  int
	Nodes    []int
	Arrivals []float64 // service start per node, seconds
	Duration float64   // travel time depot to depot
}

// Solution is a full assignment of every pair.
type Solution struct {
	Routes       []Route // non-empty routes only
	Cost         float64
	Iterations   int
	Improvements int
}

// Validate checks the shape of the problem.
func (p Problem) Validate() error {
	n := len(p.Durations)
	if n < 3 {
		return fmt.Errorf("%w: need a depot and at least one pickup and dropoff", apperr.ErrValidation)
	}
	for i, row := range p.Durations {
		if len(row) != n {
			return fmt.Errorf("%w: duration row %d has %d columns, want %d", apperr.ErrValidation, i, len(row), n)
		}
	}
	if len(p.Windows) != n {
		return fmt.Errorf("%w: %d windows for %d nodes", apperr.ErrValidation, len(p.Windows), n)
	}
	if len(p.Pairs) == 0 {
		return fmt.Errorf("%w: no pickup and dropoff pairs", apperr.ErrValidation)
	}
	if p.Vehicles < 1 {
		return fmt.Errorf("%w: vehicles must be positive", apperr.ErrValidation)
	}
	seen := make(map[int]bool, 2*len(p.Pairs))
	for _, pr := range p.Pairs {
		for _, node := range []int{pr.Pickup, pr.Dropoff} {
			if node <= 0 || node >= n {
				return fmt.Errorf("%w: node %d out of range", apperr.ErrValidation, node)
			}
			if seen[node] {
				return fmt.Errorf("%w: node %d used twice", apperr.ErrValidation, node)
			}
			seen[node] = true
		}
	}
	return nil
}
