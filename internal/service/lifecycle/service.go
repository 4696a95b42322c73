// Package lifecycle owns the order, item and assignment state machine.
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"parts-dispatch/internal/apperr"
	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/events"
	"parts-dispatch/internal/logx"
	"parts-dispatch/internal/ports/dispatchtx"
)

// Service - order lifecycle use cases.
type Service struct {
	repo             txRunner
	emitter          emitter
	jobs             jobQueue
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService - creates a lifecycle Service. jobs may be nil.
func NewService(repo txRunner, em emitter, jobs jobQueue, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if em == nil {
		em = nopEmitter{}
	}
	return &Service{
		repo:             repo,
		emitter:          em,
		jobs:             jobs,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

type nopEmitter struct{}

func (nopEmitter) Emit(context.Context, ...domain.Event) {}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// OrderDetails is the order read model.
type OrderDetails struct {
	Order      *domain.Order
	History    []domain.HistoryEntry
	TotalValue decimal.Decimal
}

// PlaceOrder creates an order in PLACED with PENDING items and queues matching for it.
func (s *Service) PlaceOrder(ctx context.Context, actor domain.Actor, in domain.NewOrder) (*domain.Order, error) {
	urgency, err := validateNewOrder(&in)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		box   events.Outbox
		order *domain.Order
	)
	err = s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		buyer, err := tx.GetBuyer(ctx, in.BuyerID)
		if err != nil {
			return err
		}
		if !actor.Privileged() && (actor.Role != domain.RoleBuyer || buyer.UserID != actor.UserID) {
			return fmt.Errorf("%w: cannot order for buyer %d", apperr.ErrForbidden, buyer.ID)
		}

		now := s.now()
		o := &domain.Order{
			BuyerID:     buyer.ID,
			BuyerUserID: buyer.UserID,
			BuyerLat:    buyer.Lat,
			BuyerLng:    buyer.Lng,
			Urgency:     urgency,
			RequiredBy:  in.RequiredBy,
			Status:      domain.OrderPlaced,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		for _, it := range in.Items {
			o.Items = append(o.Items, domain.OrderItem{
				PartNumber:  it.PartNumber,
				Description: it.Description,
				Quantity:    it.Quantity,
				Status:      domain.ItemPending,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}
		if err := tx.InsertOrder(ctx, o); err != nil {
			return err
		}
		err = tx.InsertHistory(ctx, &domain.HistoryEntry{
			OrderID:     o.ID,
			ToStatus:    string(domain.OrderPlaced),
			ActorUserID: actor.UserIDPtr(),
			ActorRole:   actor.Role,
			CreatedAt:   now,
		})
		if err != nil {
			return err
		}
		box.Add(domain.NewEvent(domain.EventOrderPlaced, domain.EntityOrder, o.ID, map[string]any{
			"order_id": o.ID,
			"status":   string(o.Status),
			"urgency":  string(o.Urgency),
			"items":    len(o.Items),
		}, []int64{o.BuyerUserID}, now))
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, box.Events()...)
	s.logger.Info("order placed",
		logx.String("event", "order_placed"),
		logx.Int64("order_id", order.ID),
		logx.String("urgency", string(order.Urgency)),
		logx.Int("items", len(order.Items)),
	)

	if s.jobs != nil {
		if err := s.jobs.Enqueue(ctx, domain.NewJob(domain.JobMatchOrder, order.ID, s.now())); err != nil {
			s.logger.Error("enqueue matching failed",
				logx.String("event", "job_enqueue_failed"),
				logx.Int64("order_id", order.ID),
				logx.Err(err),
			)
		}
	}
	return order, nil
}

func validateNewOrder(in *domain.NewOrder) (domain.Urgency, error) {
	if in.BuyerID <= 0 {
		return "", fmt.Errorf("%w: buyer_id is required", apperr.ErrValidation)
	}
	urgency := domain.UrgencyStandard
	if strings.TrimSpace(string(in.Urgency)) != "" {
		u, ok := domain.ParseUrgency(string(in.Urgency))
		if !ok {
			return "", fmt.Errorf("%w: urgency must be standard, urgent or critical", apperr.ErrValidation)
		}
		urgency = u
	}
	if len(in.Items) == 0 {
		return "", fmt.Errorf("%w: order needs at least one item", apperr.ErrValidation)
	}
	for i := range in.Items {
		in.Items[i].PartNumber = strings.TrimSpace(in.Items[i].PartNumber)
		if in.Items[i].PartNumber == "" {
			return "", fmt.Errorf("%w: item %d: part_number is required", apperr.ErrValidation, i)
		}
		if in.Items[i].Quantity <= 0 {
			return "", fmt.Errorf("%w: item %d: quantity must be positive", apperr.ErrValidation, i)
		}
	}
	return urgency, nil
}

// GetOrder returns the order with items, assignments, history and total value.
func (s *Service) GetOrder(ctx context.Context, orderID int64) (OrderDetails, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out OrderDetails
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		o, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		h, err := tx.ListHistory(ctx, orderID)
		if err != nil {
			return err
		}
		out = OrderDetails{Order: o, History: h, TotalValue: o.TotalValue()}
		return nil
	})
	return out, err
}

// History returns the status history of an order, oldest first.
func (s *Service) History(ctx context.Context, orderID int64) ([]domain.HistoryEntry, error) {
	d, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return d.History, nil
}

// Notifications returns the newest notifications of a user.
func (s *Service) Notifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out []domain.Notification
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		var err error
		out, err = tx.ListNotifications(ctx, userID, limit)
		return err
	})
	return out, err
}

// change locks the order resolved by locate, runs fn over it and emits the collected events after commit.
func (s *Service) change(
	ctx context.Context,
	actor domain.Actor,
	locate func(tx dispatchtx.Repository) (int64, error),
	fn func(tx dispatchtx.Repository, t *Transitioner) error,
) (*domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		box   events.Outbox
		order *domain.Order
	)
	err := s.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		id, err := locate(tx)
		if err != nil {
			return err
		}
		o, err := tx.GetOrderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		t := NewTransitioner(tx, o, actor, s.now(), &box)
		if err := fn(tx, t); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, box.Events()...)
	return order, nil
}

func byOrder(id int64) func(dispatchtx.Repository) (int64, error) {
	return func(dispatchtx.Repository) (int64, error) { return id, nil }
}

// TransitionOrderStatus moves an order to next. Items at the order's level follow it,
// so the order keeps reflecting its least advanced item. Same status is a no-op.
// The call fails when an item the actor may move keeps the order below next; a
// supplier only moves its own items, and other suppliers' items may hold the order back.
func (s *Service) TransitionOrderStatus(ctx context.Context, orderID int64, next domain.OrderStatus, actor domain.Actor) (*domain.Order, error) {
	if _, ok := domain.ParseOrderStatus(string(next)); !ok {
		return nil, fmt.Errorf("%w: unknown order status %q", apperr.ErrValidation, next)
	}

	o, err := s.change(ctx, actor, byOrder(orderID), func(_ dispatchtx.Repository, t *Transitioner) error {
		o := t.Order()
		if o.Status == next {
			return nil
		}
		if !o.Status.CanTransition(next) {
			return fmt.Errorf("%w: order %s -> %s", apperr.ErrInvalidTransition, o.Status, next)
		}
		if err := authorizeOrder(actor, o, next); err != nil {
			return err
		}
		if next == domain.OrderCancelled {
			return t.Cancel(ctx)
		}

		target := domain.ItemStatus(next)
		for i := range o.Items {
			it := &o.Items[i]
			if !it.Status.CanTransition(target) || it.Status.Level() != o.Status.Level() {
				continue
			}
			if actor.Role == domain.RoleSupplier && !ownsCommitted(actor, it) {
				continue
			}
			if err := t.SetItemStatus(ctx, it.ID, target); err != nil {
				return err
			}
		}
		if err := t.Advance(ctx); err != nil {
			return err
		}
		if o.Status != next {
			if it, ok := holdingBack(o, next, actor); ok {
				return fmt.Errorf("%w: order %d stays %s, item %d is %s",
					apperr.ErrInvalidTransition, o.ID, o.Status, it.ID, it.Status)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order status changed",
		logx.String("event", "order_status_changed"),
		logx.Int64("order_id", o.ID),
		logx.String("status", string(o.Status)),
		logx.String("actor_role", string(actor.Role)),
	)
	return o, nil
}

// holdingBack returns the first live item below next that the actor could have moved.
func holdingBack(o *domain.Order, next domain.OrderStatus, actor domain.Actor) (*domain.OrderItem, bool) {
	for i := range o.Items {
		it := &o.Items[i]
		if it.Status == domain.ItemCancelled || it.Status.Level() >= next.Level() {
			continue
		}
		if actor.Role == domain.RoleSupplier && !ownsCommitted(actor, it) {
			continue
		}
		return it, true
	}
	return nil, false
}

// TransitionItemStatus moves one item to next and advances its order.
func (s *Service) TransitionItemStatus(ctx context.Context, itemID int64, next domain.ItemStatus, actor domain.Actor) (*domain.OrderItem, error) {
	if _, ok := domain.ParseItemStatus(string(next)); !ok {
		return nil, fmt.Errorf("%w: unknown item status %q", apperr.ErrValidation, next)
	}

	locate := func(tx dispatchtx.Repository) (int64, error) { return tx.OrderIDByItem(ctx, itemID) }
	o, err := s.change(ctx, actor, locate, func(_ dispatchtx.Repository, t *Transitioner) error {
		it, ok := t.Order().Item(itemID)
		if !ok {
			return fmt.Errorf("%w: order item %d", apperr.ErrNotFound, itemID)
		}
		if it.Status == next {
			return nil
		}
		if !it.Status.CanTransition(next) {
			return fmt.Errorf("%w: item %s -> %s", apperr.ErrInvalidTransition, it.Status, next)
		}
		if err := authorizeItem(actor, t.Order(), it, next); err != nil {
			return err
		}
		if err := t.SetItemStatus(ctx, itemID, next); err != nil {
			return err
		}
		return t.Advance(ctx)
	})
	if err != nil {
		return nil, err
	}

	it, _ := o.Item(itemID)
	s.logger.Info("item status changed",
		logx.String("event", "item_status_changed"),
		logx.Int64("order_id", o.ID),
		logx.Int64("item_id", itemID),
		logx.String("status", string(it.Status)),
		logx.String("order_status", string(o.Status)),
	)
	return it, nil
}

// CancelOrder cancels the order and all its open items, returning committed stock.
// Orders that already shipped cannot be cancelled; cancelling twice is a no-op.
func (s *Service) CancelOrder(ctx context.Context, orderID int64, actor domain.Actor) (*domain.Order, error) {
	o, err := s.change(ctx, actor, byOrder(orderID), func(_ dispatchtx.Repository, t *Transitioner) error {
		o := t.Order()
		if o.Status == domain.OrderCancelled {
			return nil
		}
		if !actor.Privileged() && (actor.Role != domain.RoleBuyer || o.BuyerUserID != actor.UserID) {
			return fmt.Errorf("%w: only the buyer or an admin can cancel order %d", apperr.ErrForbidden, o.ID)
		}
		if !o.Status.CanTransition(domain.OrderCancelled) {
			return fmt.Errorf("%w: order %d is %s and can no longer be cancelled", apperr.ErrInvalidTransition, o.ID, o.Status)
		}
		return t.Cancel(ctx)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order cancelled",
		logx.String("event", "order_cancelled"),
		logx.Int64("order_id", o.ID),
		logx.String("actor_role", string(actor.Role)),
	)
	return o, nil
}

// AcceptAssignment commits stock to a PROPOSED assignment, rejects its siblings and
// confirms the item. Fails with ErrInsufficientStock, leaving everything untouched,
// when the catalog row cannot cover the item quantity.
func (s *Service) AcceptAssignment(ctx context.Context, assignmentID int64, actor domain.Actor) (*domain.Assignment, error) {
	var (
		accepted domain.Assignment
		low      bool
	)
	locate := func(tx dispatchtx.Repository) (int64, error) { return tx.OrderIDByAssignment(ctx, assignmentID) }
	_, err := s.change(ctx, actor, locate, func(tx dispatchtx.Repository, t *Transitioner) error {
		it, a, err := findAssignment(t.Order(), assignmentID)
		if err != nil {
			return err
		}
		if err := authorizeAssignment(actor, a); err != nil {
			return err
		}
		if a.Status != domain.AssignmentProposed {
			return fmt.Errorf("%w: assignment %d is %s, only PROPOSED can be accepted", apperr.ErrInvalidTransition, a.ID, a.Status)
		}
		if !it.Status.CanTransition(domain.ItemConfirmed) {
			return fmt.Errorf("%w: item %d is %s", apperr.ErrInvalidTransition, it.ID, it.Status)
		}

		entry, err := tx.GetCatalogEntryForUpdate(ctx, a.CatalogID)
		if err != nil {
			return err
		}
		if entry.QuantityInStock < it.Quantity {
			return fmt.Errorf("%w: catalog %d has %d, need %d", apperr.ErrInsufficientStock, entry.ID, entry.QuantityInStock, it.Quantity)
		}
		remaining, err := tx.AdjustStock(ctx, entry.ID, -it.Quantity, s.now())
		if err != nil {
			return err
		}
		err = tx.InsertLedger(ctx, &domain.LedgerEntry{
			CatalogID:    entry.ID,
			Change:       -it.Quantity,
			Reason:       domain.LedgerOrderConfirmed,
			AssignmentID: &a.ID,
			CreatedAt:    s.now(),
		})
		if err != nil {
			return err
		}

		if err := t.SetAssignmentStatus(ctx, a, domain.AssignmentAccepted); err != nil {
			return err
		}
		for i := range it.Assignments {
			sib := &it.Assignments[i]
			if sib.ID != a.ID && sib.Status == domain.AssignmentProposed {
				if err := t.SetAssignmentStatus(ctx, sib, domain.AssignmentRejected); err != nil {
					return err
				}
			}
		}
		if err := t.SetItemStatus(ctx, it.ID, domain.ItemConfirmed); err != nil {
			return err
		}
		if err := t.Advance(ctx); err != nil {
			return err
		}

		entry.QuantityInStock = remaining
		low = lowStockAlert(t.box, *entry, a.SupplierUserID, t.at)
		accepted = *a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("assignment accepted",
		logx.String("event", "assignment_accepted"),
		logx.Int64("assignment_id", accepted.ID),
		logx.Int64("item_id", accepted.ItemID),
		logx.Int64("catalog_id", accepted.CatalogID),
		logx.Bool("low_stock", low),
	)
	return &accepted, nil
}

// RejectAssignment rejects a PROPOSED assignment. A MATCHED item left without live
// assignments goes back to PENDING. Rejecting twice is a no-op.
func (s *Service) RejectAssignment(ctx context.Context, assignmentID int64, actor domain.Actor) (*domain.Assignment, error) {
	var rejected domain.Assignment
	locate := func(tx dispatchtx.Repository) (int64, error) { return tx.OrderIDByAssignment(ctx, assignmentID) }
	_, err := s.change(ctx, actor, locate, func(_ dispatchtx.Repository, t *Transitioner) error {
		it, a, err := findAssignment(t.Order(), assignmentID)
		if err != nil {
			return err
		}
		if err := authorizeAssignment(actor, a); err != nil {
			return err
		}
		switch a.Status {
		case domain.AssignmentRejected:
			rejected = *a
			return nil
		case domain.AssignmentFulfilled, domain.AssignmentAccepted:
			return fmt.Errorf("%w: assignment %d is %s", apperr.ErrInvalidTransition, a.ID, a.Status)
		}
		if err := t.SetAssignmentStatus(ctx, a, domain.AssignmentRejected); err != nil {
			return err
		}
		if _, err := t.ReturnToPending(ctx, it.ID); err != nil {
			return err
		}
		rejected = *a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("assignment rejected",
		logx.String("event", "assignment_rejected"),
		logx.Int64("assignment_id", rejected.ID),
		logx.Int64("item_id", rejected.ItemID),
	)
	return &rejected, nil
}

func findAssignment(o *domain.Order, id int64) (*domain.OrderItem, *domain.Assignment, error) {
	for i := range o.Items {
		it := &o.Items[i]
		for j := range it.Assignments {
			if it.Assignments[j].ID == id {
				return it, &it.Assignments[j], nil
			}
		}
	}
	return nil, nil, fmt.Errorf("%w: assignment %d", apperr.ErrNotFound, id)
}
