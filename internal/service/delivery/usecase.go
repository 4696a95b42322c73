// Package delivery plans vehicle trips for accepted assignments and tracks them to completion.
package delivery

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"parts-dispatch/internal/apperr"
	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/events"
	"parts-dispatch/internal/gateway/routing"
	"parts-dispatch/internal/geo"
	"parts-dispatch/internal/logx"
	"parts-dispatch/internal/ports/dispatchtx"
)

const legLookupLimit = 4

// Config bounds planning work.
type Config struct {
	OperationTimeout time.Duration
	SolverBudget     time.Duration
	DefaultVehicles  int
}

// Service - delivery planning use cases.
type Service struct {
	repo             txRunner
	router           router
	emitter          emitter
	factory          WindowFactory
	solveDuration    observer
	operationTimeout time.Duration
	solverBudget     time.Duration
	defaultVehicles  int
	logger           logx.Logger
	now              func() time.Time
}

func (s *Service) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d)
}

// NewDeliveryService - creates a new delivery Service. solveDuration may be nil.
func NewDeliveryService(
	repo txRunner,
	r router,
	em emitter,
	f WindowFactory,
	solveDuration observer,
	cfg Config,
	logger logx.Logger,
) *Service {
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = 10 * time.Second
	}
	if cfg.SolverBudget <= 0 {
		cfg.SolverBudget = 2 * time.Second
	}
	if cfg.DefaultVehicles < 1 {
		cfg.DefaultVehicles = 3
	}
	if f == nil {
		f = NewWindowFactory()
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             repo,
		router:           r,
		emitter:          em,
		factory:          f,
		solveDuration:    solveDuration,
		operationTimeout: cfg.OperationTimeout,
		solverBudget:     cfg.SolverBudget,
		defaultVehicles:  cfg.DefaultVehicles,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// CreateSingleDelivery plans a direct trip from the supplier to the buyer for one assignment.
func (s *Service) CreateSingleDelivery(ctx context.Context, actor domain.Actor, assignmentID int64) (*domain.Delivery, error) {
	if !actor.Privileged() {
		return nil, fmt.Errorf("%w: only admins plan deliveries", apperr.ErrForbidden)
	}

	ctx, cancel := s.withTimeout(ctx, s.operationTimeout)
	defer cancel()

	ids := []int64{assignmentID}
	contexts, err := s.loadRoutable(ctx, ids)
	if err != nil {
		return nil, err
	}
	c := contexts[0]

	leg, err := s.router.Route(ctx, c.Pickup(), c.Dropoff())
	if err != nil {
		return nil, err
	}

	now := s.now()
	w := s.factory.Windows(c, now)
	pickupETA := c.ReadyAt(now)
	dropoffETA := pickupETA.Add(minutes(leg.DurationMin))

	d := &domain.Delivery{
		Type:                domain.DeliverySingle,
		Status:              domain.DeliveryPlanned,
		TotalDistanceKm:     leg.DistanceKm,
		TotalDurationMin:    leg.DurationMin,
		OptimizedDistanceKm: leg.DistanceKm,
		NaiveDistanceKm:     leg.DistanceKm,
		Geometry:            leg.Geometry,
		Stops: []domain.DeliveryStop{
			newStop(c, domain.StopPickup, 1, w, pickupETA),
			newStop(c, domain.StopDropoff, 2, w, dropoffETA),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	var box events.Outbox
	err = s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		if _, err := routable(ctx, tx, ids); err != nil {
			return err
		}
		if err := persist(ctx, tx, d, now); err != nil {
			return err
		}
		box.Add(plannedEvent(d, contexts, now))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, box.Events()...)
	s.logger.Info("delivery planned",
		logx.String("event", "delivery_planned"),
		logx.Int64("delivery_id", d.ID),
		logx.String("type", string(d.Type)),
		logx.Int64("assignment_id", assignmentID),
		logx.Float64("distance_km", d.TotalDistanceKm),
		logx.Bool("estimated", leg.Estimated),
	)
	return d, nil
}

// UpdateDeliveryStatus moves a delivery one step along PLANNED, IN_PROGRESS, COMPLETED.
// Repeating the current status is a no-op. Completing fulfils every live assignment on the stops.
func (s *Service) UpdateDeliveryStatus(ctx context.Context, actor domain.Actor, deliveryID int64, to domain.DeliveryStatus) (*domain.Delivery, error) {
	if !actor.Privileged() {
		return nil, fmt.Errorf("%w: only admins update deliveries", apperr.ErrForbidden)
	}

	ctx, cancel := s.withTimeout(ctx, s.operationTimeout)
	defer cancel()

	var (
		box     events.Outbox
		out     *domain.Delivery
		from    domain.DeliveryStatus
		changed bool
	)
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		d, err := tx.GetDeliveryForUpdate(ctx, deliveryID)
		if err != nil {
			return err
		}
		out, from = d, d.Status
		if d.Status == to {
			return nil
		}
		if next, ok := d.Status.Next(); !ok || next != to {
			return fmt.Errorf("%w: delivery %s -> %s", apperr.ErrInvalidTransition, d.Status, to)
		}

		now := s.now()
		if err := tx.UpdateDeliveryStatus(ctx, d.ID, to, now); err != nil {
			return err
		}
		d.Status, d.UpdatedAt, changed = to, now, true
		if to != domain.DeliveryCompleted {
			return nil
		}

		contexts, err := tx.AssignmentContexts(ctx, d.AssignmentIDs())
		if err != nil {
			return err
		}
		fulfilled := make([]int64, 0, len(contexts))
		for _, c := range contexts {
			switch c.Assignment.Status {
			case domain.AssignmentRejected, domain.AssignmentFulfilled:
				continue
			}
			if err := tx.UpdateAssignmentStatus(ctx, c.Assignment.ID, domain.AssignmentFulfilled, now); err != nil {
				return err
			}
			fulfilled = append(fulfilled, c.Assignment.ID)
		}
		box.Add(domain.NewEvent(domain.EventDeliveryCompleted, domain.EntityDelivery, d.ID, map[string]any{
			"delivery_id":    d.ID,
			"status":         string(to),
			"assignment_ids": fulfilled,
			"changed_by":     actor.UserIDPtr(),
		}, targets(contexts), now))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, box.Events()...)
	if changed {
		s.logger.Info("delivery status changed",
			logx.String("event", "delivery_status_changed"),
			logx.Int64("delivery_id", deliveryID),
			logx.String("from", string(from)),
			logx.String("to", string(to)),
		)
	}
	return out, nil
}

// RecomputeETA re-estimates the stops that are still ahead from the current time and
// appends the new arrival to the ETA log.
func (s *Service) RecomputeETA(ctx context.Context, actor domain.Actor, deliveryID int64) (*domain.Delivery, error) {
	if !actor.Privileged() {
		return nil, fmt.Errorf("%w: only admins recompute ETAs", apperr.ErrForbidden)
	}

	ctx, cancel := s.withTimeout(ctx, s.operationTimeout)
	defer cancel()

	var d *domain.Delivery
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		var err error
		d, err = tx.GetDelivery(ctx, deliveryID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(d.Stops) == 0 {
		return nil, fmt.Errorf("%w: delivery %d has no stops", apperr.ErrValidation, deliveryID)
	}

	now := s.now()
	pending := pendingStops(d.Stops, now)
	hops := make([][2]geo.Point, 0, len(pending))
	for i := 1; i < len(pending); i++ {
		hops = append(hops, [2]geo.Point{d.Stops[pending[i-1]].Point(), d.Stops[pending[i]].Point()})
	}
	legs, err := s.legs(ctx, hops)
	if err != nil {
		return nil, err
	}

	eta := now
	updated := make([]domain.DeliveryStop, 0, len(pending))
	for i, idx := range pending {
		if i > 0 {
			eta = eta.Add(minutes(legs[i-1].DurationMin))
		}
		d.Stops[idx].ETA = eta
		updated = append(updated, d.Stops[idx])
	}

	var box events.Outbox
	err = s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		if _, err := tx.GetDeliveryForUpdate(ctx, deliveryID); err != nil {
			return err
		}
		if err := tx.UpdateStopETAs(ctx, deliveryID, updated); err != nil {
			return err
		}
		if err := tx.InsertEtaLog(ctx, &domain.EtaLogEntry{DeliveryID: deliveryID, ETA: eta, CreatedAt: now}); err != nil {
			return err
		}
		contexts, err := tx.AssignmentContexts(ctx, d.AssignmentIDs())
		if err != nil {
			return err
		}
		box.Add(domain.NewEvent(domain.EventETAUpdated, domain.EntityDelivery, deliveryID, map[string]any{
			"delivery_id":       deliveryID,
			"estimated_arrival": eta.Format(time.RFC3339),
			"changed_by":        actor.UserIDPtr(),
		}, targets(contexts), now))
		return nil
	})
	if err != nil {
		return nil, err
	}
	d.LatestETA = &eta

	s.emitter.Emit(ctx, box.Events()...)
	s.logger.Info("eta updated",
		logx.String("event", "eta_updated"),
		logx.Int64("delivery_id", deliveryID),
		logx.Int("stops", len(updated)),
		logx.Time("eta", eta),
	)
	return d, nil
}

// GetDelivery returns a delivery with its stops and latest ETA. Buyers and suppliers see
// only deliveries that carry one of their assignments.
func (s *Service) GetDelivery(ctx context.Context, actor domain.Actor, deliveryID int64) (*domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx, s.operationTimeout)
	defer cancel()

	var d *domain.Delivery
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		var err error
		if d, err = tx.GetDelivery(ctx, deliveryID); err != nil {
			return err
		}
		if actor.Privileged() {
			return nil
		}
		contexts, err := tx.AssignmentContexts(ctx, d.AssignmentIDs())
		if err != nil {
			return err
		}
		for _, c := range contexts {
			if involved(actor, c) {
				return nil
			}
		}
		return fmt.Errorf("%w: delivery %d", apperr.ErrForbidden, deliveryID)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// AvailableAssignments lists assignments of confirmed orders that are not on a delivery yet.
func (s *Service) AvailableAssignments(ctx context.Context, actor domain.Actor) ([]domain.AssignmentContext, error) {
	if !actor.Privileged() {
		return nil, fmt.Errorf("%w: only admins plan deliveries", apperr.ErrForbidden)
	}

	ctx, cancel := s.withTimeout(ctx, s.operationTimeout)
	defer cancel()

	var out []domain.AssignmentContext
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		var err error
		out, err = tx.AvailableAssignments(ctx)
		return err
	})
	return out, err
}

// Stats summarizes planned deliveries.
func (s *Service) Stats(ctx context.Context) (domain.DeliveryStats, error) {
	ctx, cancel := s.withTimeout(ctx, s.operationTimeout)
	defer cancel()

	var out domain.DeliveryStats
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		var err error
		out, err = tx.DeliveryStats(ctx)
		return err
	})
	return out, err
}

func (s *Service) loadRoutable(ctx context.Context, ids []int64) ([]domain.AssignmentContext, error) {
	var out []domain.AssignmentContext
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		var err error
		out, err = routable(ctx, tx, ids)
		return err
	})
	return out, err
}

// routable loads the assignments and checks that every one of them can go on a new delivery.
func routable(ctx context.Context, tx dispatchtx.Repository, ids []int64) ([]domain.AssignmentContext, error) {
	contexts, err := tx.AssignmentContexts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range contexts {
		a := c.Assignment
		if a.Status != domain.AssignmentAccepted && a.Status != domain.AssignmentProposed {
			return nil, fmt.Errorf("%w: assignment %d is %s", apperr.ErrValidation, a.ID, a.Status)
		}
		if c.ScheduledOnID != nil {
			return nil, fmt.Errorf("%w: assignment %d is already on delivery %d", apperr.ErrValidation, a.ID, *c.ScheduledOnID)
		}
		if !located(c.Pickup()) || !located(c.Dropoff()) {
			return nil, fmt.Errorf("%w: assignment %d has no coordinates", apperr.ErrValidation, a.ID)
		}
	}
	return contexts, nil
}

// legs routes every hop, a few at a time.
func (s *Service) legs(ctx context.Context, hops [][2]geo.Point) ([]routing.Leg, error) {
	out := make([]routing.Leg, len(hops))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(legLookupLimit)
	for i, h := range hops {
		g.Go(func() error {
			leg, err := s.router.Route(gctx, h[0], h[1])
			if err != nil {
				return err
			}
			out[i] = leg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func persist(ctx context.Context, tx dispatchtx.Repository, d *domain.Delivery, now time.Time) error {
	if err := tx.InsertDelivery(ctx, d); err != nil {
		return err
	}
	eta, ok := d.FinalDropoffETA()
	if !ok {
		return fmt.Errorf("%w: delivery without dropoff", apperr.ErrValidation)
	}
	if err := tx.InsertEtaLog(ctx, &domain.EtaLogEntry{DeliveryID: d.ID, ETA: eta, CreatedAt: now}); err != nil {
		return err
	}
	d.LatestETA = &eta
	return nil
}

func plannedEvent(d *domain.Delivery, contexts []domain.AssignmentContext, at time.Time) domain.Event {
	ids := d.AssignmentIDs()
	on := make(map[int64]bool, len(ids))
	for _, id := range ids {
		on[id] = true
	}
	var served []domain.AssignmentContext
	for _, c := range contexts {
		if on[c.Assignment.ID] {
			served = append(served, c)
		}
	}
	payload := map[string]any{
		"delivery_id":    d.ID,
		"delivery_type":  string(d.Type),
		"assignment_ids": ids,
		"distance_km":    d.TotalDistanceKm,
	}
	if len(served) == 1 {
		payload["order_id"] = served[0].OrderID
		payload["order_item_id"] = served[0].ItemID
	}
	return domain.NewEvent(domain.EventDeliveryPlanned, domain.EntityDelivery, d.ID, payload, targets(served), at)
}

func newStop(c domain.AssignmentContext, t domain.StopType, seq int, w Windows, eta time.Time) domain.DeliveryStop {
	p := c.Dropoff()
	if t == domain.StopPickup {
		p = c.Pickup()
	}
	return domain.DeliveryStop{
		AssignmentID: c.Assignment.ID,
		Type:         t,
		Sequence:     seq,
		Lat:          p.Lat,
		Lng:          p.Lng,
		WindowStart:  w.Start,
		WindowEnd:    w.Due,
		ETA:          eta,
	}
}

// pendingStops returns the indexes of stops not reached yet, or the last stop when all were.
func pendingStops(stops []domain.DeliveryStop, now time.Time) []int {
	var out []int
	for i, st := range stops {
		if st.ETA.IsZero() || !st.ETA.Before(now) {
			out = append(out, i)
		}
	}
	if len(out) == 0 {
		out = []int{len(stops) - 1}
	}
	return out
}

func targets(contexts []domain.AssignmentContext) []int64 {
	ids := make([]int64, 0, 2*len(contexts))
	for _, c := range contexts {
		ids = append(ids, c.BuyerUserID, c.Assignment.SupplierUserID)
	}
	return domain.UniqueIDs(ids)
}

func involved(actor domain.Actor, c domain.AssignmentContext) bool {
	switch actor.Role {
	case domain.RoleBuyer:
		return c.BuyerUserID == actor.UserID
	case domain.RoleSupplier:
		return c.Assignment.SupplierUserID == actor.UserID
	}
	return false
}

func located(p geo.Point) bool {
	return p.Valid() && (p.Lat != 0 || p.Lng != 0)
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
