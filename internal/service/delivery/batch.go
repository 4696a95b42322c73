package delivery

import (
	"context"
	"fmt"
	"time"

	"parts-dispatch/internal/apperr"
	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/events"
	"parts-dispatch/internal/gateway/routing"
	"parts-dispatch/internal/geo"
	"parts-dispatch/internal/logx"
	"parts-dispatch/internal/ports/dispatchtx"
	"parts-dispatch/internal/vrp"
)

// node is one VRP node; index 0 is the depot and has no assignment.
type node struct {
	assignment int // index into the loaded contexts
	stop       domain.StopType
	point      geo.Point
}

// CreateBatchedDelivery routes several assignments over up to vehicles trips that start
// from the centroid of all stops. Each non-empty trip becomes its own delivery.
func (s *Service) CreateBatchedDelivery(ctx context.Context, actor domain.Actor, assignmentIDs []int64, vehicles int) ([]domain.Delivery, error) {
	if !actor.Privileged() {
		return nil, fmt.Errorf("%w: only admins plan deliveries", apperr.ErrForbidden)
	}
	ids := domain.UniqueIDs(assignmentIDs)
	if len(ids) < 2 {
		return nil, fmt.Errorf("%w: a batch needs at least two assignments", apperr.ErrValidation)
	}
	if vehicles <= 0 {
		vehicles = s.defaultVehicles
	}

	ctx, cancel := s.withTimeout(ctx, s.operationTimeout+s.solverBudget)
	defer cancel()

	contexts, err := s.loadRoutable(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := s.now()
	windows := make([]Windows, len(contexts))
	for i, c := range contexts {
		windows[i] = s.factory.Windows(c, now)
	}
	p, nodes, err := s.problem(ctx, contexts, windows, vehicles)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	sol, err := vrp.Solve(ctx, p, vrp.Options{TimeBudget: s.solverBudget})
	if s.solveDuration != nil {
		s.solveDuration.Observe(time.Since(started).Seconds())
	}
	if err != nil {
		return nil, err
	}

	direct := make([][2]geo.Point, len(contexts))
	for i, c := range contexts {
		direct[i] = [2]geo.Point{c.Pickup(), c.Dropoff()}
	}
	naive, err := s.legs(ctx, direct)
	if err != nil {
		return nil, err
	}

	planned := make([]domain.Delivery, 0, len(sol.Routes))
	for _, r := range sol.Routes {
		d, err := s.routeDelivery(ctx, r, nodes, contexts, windows, naive, now)
		if err != nil {
			return nil, err
		}
		planned = append(planned, d)
	}
	if len(planned) == 0 {
		return nil, fmt.Errorf("%w: solver returned no routes", apperr.ErrNoRouteFound)
	}

	var box events.Outbox
	err = s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		if _, err := routable(ctx, tx, ids); err != nil {
			return err
		}
		for i := range planned {
			if err := persist(ctx, tx, &planned[i], now); err != nil {
				return err
			}
			box.Add(plannedEvent(&planned[i], contexts, now))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, box.Events()...)
	for _, d := range planned {
		s.logger.Info("delivery planned",
			logx.String("event", "delivery_planned"),
			logx.Int64("delivery_id", d.ID),
			logx.String("type", string(d.Type)),
			logx.Int("stops", len(d.Stops)),
			logx.Float64("distance_km", d.OptimizedDistanceKm),
			logx.Float64("savings_km", d.SavingsKm()),
		)
	}
	s.logger.Debug("batch solved",
		logx.String("event", "batch_solved"),
		logx.Int("assignments", len(contexts)),
		logx.Int("vehicles", p.Vehicles),
		logx.Int("iterations", sol.Iterations),
		logx.Float64("cost_s", sol.Cost),
	)
	return planned, nil
}

// problem builds the pickup and delivery instance: a centroid depot, then a pickup and a
// dropoff node per assignment, with travel durations in seconds.
func (s *Service) problem(ctx context.Context, contexts []domain.AssignmentContext, windows []Windows, vehicles int) (vrp.Problem, []node, error) {
	nodes := make([]node, 1, 2*len(contexts)+1)
	stops := make([]geo.Point, 0, 2*len(contexts))
	for i, c := range contexts {
		nodes = append(nodes,
			node{assignment: i, stop: domain.StopPickup, point: c.Pickup()},
			node{assignment: i, stop: domain.StopDropoff, point: c.Dropoff()},
		)
		stops = append(stops, c.Pickup(), c.Dropoff())
	}
	nodes[0] = node{assignment: -1, point: geo.Centroid(stops)}

	points := make([]geo.Point, len(nodes))
	for i, n := range nodes {
		points[i] = n.point
	}
	m, err := s.router.Matrix(ctx, points)
	if err != nil {
		return vrp.Problem{}, nil, err
	}
	if m.Size() != len(points) {
		return vrp.Problem{}, nil, fmt.Errorf("%w: matrix has %d rows for %d points", apperr.ErrUpstreamUnavailable, m.Size(), len(points))
	}

	p := vrp.Problem{
		Durations: make([][]float64, len(points)),
		Windows:   make([]vrp.Window, len(points)),
		Pairs:     make([]vrp.Pair, 0, len(contexts)),
		Vehicles:  max(1, min(vehicles, len(contexts))),
	}
	for i, row := range m.DurationsMin {
		p.Durations[i] = make([]float64, len(row))
		for j, v := range row {
			p.Durations[i][j] = v * 60
		}
	}
	p.Windows[0] = depotWindow()
	for i := range contexts {
		pickup, dropoff := 2*i+1, 2*i+2
		p.Windows[pickup] = windows[i].Pickup
		p.Windows[dropoff] = windows[i].Dropoff
		p.Pairs = append(p.Pairs, vrp.Pair{Pickup: pickup, Dropoff: dropoff})
	}
	return p, nodes, nil
}

// routeDelivery chains the legs of one vehicle route. ETAs run from now along the legs,
// and a pickup is never planned before its part is ready.
func (s *Service) routeDelivery(
	ctx context.Context,
	r vrp.Route,
	nodes []node,
	contexts []domain.AssignmentContext,
	windows []Windows,
	naive []routing.Leg,
	now time.Time,
) (domain.Delivery, error) {
	hops := make([][2]geo.Point, 0, len(r.Nodes))
	for i := 1; i < len(r.Nodes); i++ {
		hops = append(hops, [2]geo.Point{nodes[r.Nodes[i-1]].point, nodes[r.Nodes[i]].point})
	}
	legs, err := s.legs(ctx, hops)
	if err != nil {
		return domain.Delivery{}, err
	}

	d := domain.Delivery{
		Type:      domain.DeliveryBatched,
		Status:    domain.DeliveryPlanned,
		Geometry:  geo.LineString{Type: "LineString"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, l := range legs {
		d.TotalDistanceKm += l.DistanceKm
		d.TotalDurationMin += l.DurationMin
		d.Geometry = d.Geometry.Append(l.Geometry.Coordinates)
	}
	d.OptimizedDistanceKm = d.TotalDistanceKm

	eta := now
	for i, idx := range r.Nodes {
		n := nodes[idx]
		c := contexts[n.assignment]
		if i > 0 {
			eta = eta.Add(minutes(legs[i-1].DurationMin))
		}
		if n.stop == domain.StopPickup {
			if ready := c.ReadyAt(now); eta.Before(ready) {
				eta = ready
			}
		} else {
			d.NaiveDistanceKm += naive[n.assignment].DistanceKm
		}
		d.Stops = append(d.Stops, newStop(c, n.stop, i+1, windows[n.assignment], eta))
	}
	return d, nil
}
