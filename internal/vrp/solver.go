package vrp

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"parts-dispatch/internal/apperr"
)

const eps = 1e-9

// plan holds one node sequence per vehicle.
type plan [][]int

func (pl plan) clone() plan {
	out := make(plan, len(pl))
	for i, r := range pl {
		out[i] = append([]int(nil), r...)
	}
	return out
}

type solver struct {
	p   Problem
	rng *rand.Rand
}

// Solve builds a plan by cheapest insertion and improves it with pair relocation and
// ruin-and-recreate under simulated annealing until the budget, the iteration cap or
// the stall limit is hit. It returns apperr.ErrNoRouteFound when some pair cannot be
// served within the time windows.
func Solve(ctx context.Context, p Problem, opt Options) (Solution, error) {
	if err := p.Validate(); err != nil {
		return Solution{}, err
	}
	opt = opt.withDefaults()
	s := &solver{p: p, rng: rand.New(rand.NewSource(opt.Seed))}

	all := make([]int, len(p.Pairs))
	for i := range all {
		all[i] = i
	}
	cur, ok := s.recreate(make(plan, p.Vehicles), all, false)
	if !ok {
		// regret order sometimes finds room greedy order does not
		if cur, ok = s.recreate(make(plan, p.Vehicles), all, true); !ok {
			return Solution{}, fmt.Errorf("%w: %d pickup and dropoff pairs do not fit %d vehicles", apperr.ErrNoRouteFound, len(p.Pairs), p.Vehicles)
		}
	}
	s.relocate(cur)

	best, bestCost := cur.clone(), s.cost(cur)
	curCost := bestCost
	var (
		removalW   = []float64{1, 1} // random, related
		insertionW = []float64{1, 1} // greedy, regret
		temp       = 0.02*bestCost + 1
		cool       = 0.995
		deadline   = time.Now().Add(opt.TimeBudget)
		sol        Solution
		stall      int
	)

	for ctx.Err() == nil && time.Now().Before(deadline) && stall < opt.Stall {
		if opt.MaxIterations > 0 && sol.Iterations >= opt.MaxIterations {
			break
		}
		sol.Iterations++
		stall++

		k := 1 + s.rng.Intn(min(3, len(p.Pairs)))
		ro := selectOp(removalW, s.rng)
		io := selectOp(insertionW, s.rng)

		cand := cur.clone()
		var removed []int
		if ro == 0 {
			removed = s.randomPairs(k)
		} else {
			removed = s.relatedPairs(k)
		}
		cand = s.removePairs(cand, removed)
		cand, ok = s.recreate(cand, removed, io == 1)
		if !ok {
			removalW[ro] = math.Max(0.01, removalW[ro]*0.999)
			insertionW[io] = math.Max(0.01, insertionW[io]*0.999)
			continue
		}
		s.relocate(cand)

		c := s.cost(cand)
		delta := c - curCost
		if delta < -eps || s.rng.Float64() < math.Exp(-delta/(temp+eps)) {
			cur, curCost = cand, c
			if c < bestCost-eps {
				best, bestCost = cand.clone(), c
				removalW[ro] += 0.1
				insertionW[io] += 0.1
				sol.Improvements++
				stall = 0
			} else {
				removalW[ro] += 0.01
				insertionW[io] += 0.01
			}
		} else {
			removalW[ro] = math.Max(0.01, removalW[ro]*0.999)
			insertionW[io] = math.Max(0.01, insertionW[io]*0.999)
		}
		temp *= cool
	}

	for v, r := range best {
		if len(r) == 0 {
			continue
		}
		arrivals, duration, _ := s.schedule(r)
		sol.Routes = append(sol.Routes, Route{Vehicle: v, Nodes: r, Arrivals: arrivals, Duration: duration})
	}
	sol.Cost = bestCost
	return sol, nil
}

// schedule walks a route from the depot at time 0, waiting for window starts.
// It reports false when a window end or the depot window is missed.
func (s *solver) schedule(r []int) ([]float64, float64, bool) {
	d := s.p.Durations
	w := s.p.Windows
	arrivals := make([]float64, len(r))
	t, travel, prev := w[0].Start, 0.0, 0
	ok := true
	for i, node := range r {
		travel += d[prev][node]
		t = math.Max(t+d[prev][node], w[node].Start)
		if t > w[node].End+eps {
			ok = false
		}
		arrivals[i] = t
		prev = node
	}
	travel += d[prev][0]
	if t+d[prev][0] > w[0].End+eps {
		ok = false
	}
	return arrivals, travel, ok
}

func (s *solver) feasible(r []int) bool {
	t, prev := s.p.Windows[0].Start, 0
	for _, node := range r {
		t = math.Max(t+s.p.Durations[prev][node], s.p.Windows[node].Start)
		if t > s.p.Windows[node].End+eps {
			return false
		}
		prev = node
	}
	return t+s.p.Durations[prev][0] <= s.p.Windows[0].End+eps
}

func (s *solver) routeCost(r []int) float64 {
	if len(r) == 0 {
		return 0
	}
	d := s.p.Durations
	c, prev := 0.0, 0
	for _, node := range r {
		c += d[prev][node]
		prev = node
	}
	return c + d[prev][0]
}

func (s *solver) cost(pl plan) float64 {
	total := 0.0
	for _, r := range pl {
		total += s.routeCost(r)
	}
	return total
}

// insertion places a pair's pickup before position i and its dropoff before position j (i <= j)
// of the original route.
type insertion struct {
	route, i, j int
	delta       float64
}

func withPair(r []int, pr Pair, i, j int) []int {
	out := make([]int, 0, len(r)+2)
	out = append(out, r[:i]...)
	out = append(out, pr.Pickup)
	out = append(out, r[i:j]...)
	out = append(out, pr.Dropoff)
	return append(out, r[j:]...)
}

func (s *solver) insertDelta(r []int, pr Pair, i, j int) float64 {
	d := s.p.Durations
	at := func(k int) int {
		if k < 0 || k >= len(r) {
			return 0
		}
		return r[k]
	}
	a := at(i - 1)
	if i == j {
		b := at(i)
		return d[a][pr.Pickup] + d[pr.Pickup][pr.Dropoff] + d[pr.Dropoff][b] - d[a][b]
	}
	x := r[i]
	y, z := r[j-1], at(j)
	return d[a][pr.Pickup] + d[pr.Pickup][x] - d[a][x] +
		d[y][pr.Dropoff] + d[pr.Dropoff][z] - d[y][z]
}

// bestInsertions returns the cheapest and second cheapest feasible insertions of a pair.
func (s *solver) bestInsertions(pl plan, pr Pair) (best, second insertion, ok bool) {
	best.delta, second.delta = math.Inf(1), math.Inf(1)
	triedEmpty := false
	for ri, r := range pl {
		if len(r) == 0 {
			// empty vehicles are interchangeable
			if triedEmpty {
				continue
			}
			triedEmpty = true
		}
		for i := 0; i <= len(r); i++ {
			for j := i; j <= len(r); j++ {
				delta := s.insertDelta(r, pr, i, j)
				if delta >= second.delta {
					continue
				}
				if !s.feasible(withPair(r, pr, i, j)) {
					continue
				}
				cand := insertion{route: ri, i: i, j: j, delta: delta}
				if delta < best.delta {
					best, second = cand, best
				} else {
					second = cand
				}
			}
		}
	}
	return best, second, !math.IsInf(best.delta, 1)
}

// recreate inserts the pending pairs one at a time, cheapest first or largest regret first.
func (s *solver) recreate(pl plan, pending []int, regret bool) (plan, bool) {
	pending = append([]int(nil), pending...)
	for len(pending) > 0 {
		pick, score := -1, math.Inf(1)
		var chosen insertion
		for k, pi := range pending {
			best, second, ok := s.bestInsertions(pl, s.p.Pairs[pi])
			if !ok {
				return pl, false
			}
			key := best.delta
			if regret {
				r := second.delta - best.delta
				if math.IsInf(second.delta, 1) {
					r = math.MaxFloat64 / 2
				}
				key = -r
			}
			if key < score {
				pick, score, chosen = k, key, best
			}
		}
		pr := s.p.Pairs[pending[pick]]
		pl[chosen.route] = withPair(pl[chosen.route], pr, chosen.i, chosen.j)
		pending = append(pending[:pick], pending[pick+1:]...)
	}
	return pl, true
}

func (s *solver) removePairs(pl plan, pairs []int) plan {
	drop := make(map[int]bool, 2*len(pairs))
	for _, pi := range pairs {
		drop[s.p.Pairs[pi].Pickup] = true
		drop[s.p.Pairs[pi].Dropoff] = true
	}
	for ri, r := range pl {
		kept := r[:0]
		for _, node := range r {
			if !drop[node] {
				kept = append(kept, node)
			}
		}
		pl[ri] = kept
	}
	return pl
}

// relocate moves single pairs to their best position while that lowers the cost.
func (s *solver) relocate(pl plan) {
	for pass := 0; pass < 3; pass++ {
		improved := false
		for _, pi := range s.rng.Perm(len(s.p.Pairs)) {
			pr := s.p.Pairs[pi]
			ri := s.routeOf(pl, pr.Pickup)
			if ri < 0 {
				continue
			}
			before := s.routeCost(pl[ri])
			trial := pl.clone()
			trial = s.removePairs(trial, []int{pi})
			gain := before - s.routeCost(trial[ri])

			best, _, ok := s.bestInsertions(trial, pr)
			if !ok || best.delta >= gain-eps {
				continue
			}
			trial[best.route] = withPair(trial[best.route], pr, best.i, best.j)
			copy(pl, trial)
			improved = true
		}
		if !improved {
			return
		}
	}
}

func (s *solver) routeOf(pl plan, node int) int {
	for ri, r := range pl {
		for _, n := range r {
			if n == node {
				return ri
			}
		}
	}
	return -1
}

func (s *solver) randomPairs(k int) []int {
	return s.rng.Perm(len(s.p.Pairs))[:k]
}

// relatedPairs removes a random pair and the pairs whose pickups and dropoffs are closest to it.
func (s *solver) relatedPairs(k int) []int {
	d := s.p.Durations
	seed := s.rng.Intn(len(s.p.Pairs))
	sp := s.p.Pairs[seed]

	type scored struct {
		pair  int
		score float64
	}
	rel := make([]scored, 0, len(s.p.Pairs)-1)
	for pi, pr := range s.p.Pairs {
		if pi == seed {
			continue
		}
		rel = append(rel, scored{pair: pi, score: d[sp.Pickup][pr.Pickup] + d[sp.Dropoff][pr.Dropoff]})
	}
	sort.Slice(rel, func(i, j int) bool { return rel[i].score < rel[j].score })

	out := []int{seed}
	for i := 0; i < len(rel) && len(out) < k; i++ {
		out = append(out, rel[i].pair)
	}
	return out
}

// selectOp picks an index by roulette wheel over weights.
func selectOp(weights []float64, rng *rand.Rand) int {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return 0
	}
	r := rng.Float64() * sum
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return i
		}
	}
	return len(weights) - 1
}
