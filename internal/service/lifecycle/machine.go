package lifecycle

import (
	"context"
	"fmt"
	"time"

	"parts-dispatch/internal/apperr"
	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/events"
	"parts-dispatch/internal/ports/dispatchtx"
)

// Transitioner applies status changes to one locked order inside a transaction.
// It keeps the loaded order in sync with what it writes, records history and
// collects the resulting events in the outbox.
type Transitioner struct {
	tx    dispatchtx.Repository
	order *domain.Order
	actor domain.Actor
	at    time.Time
	box   *events.Outbox

	// suppliers that held a live assignment when the order was loaded; they keep
	// receiving events for this change even if it rejects their assignment
	notify []int64
}

// NewTransitioner wraps an order loaded with GetOrderForUpdate.
func NewTransitioner(tx dispatchtx.Repository, order *domain.Order, actor domain.Actor, at time.Time, box *events.Outbox) *Transitioner {
	return &Transitioner{
		tx:     tx,
		order:  order,
		actor:  actor,
		at:     at,
		box:    box,
		notify: order.SupplierUserIDs(),
	}
}

// Order returns the order being changed.
func (t *Transitioner) Order() *domain.Order { return t.order }

// Targets returns the buyer and every supplier involved in the order.
func (t *Transitioner) Targets() []int64 {
	ids := append([]int64{t.order.BuyerUserID}, t.notify...)
	return domain.UniqueIDs(append(ids, t.order.SupplierUserIDs()...))
}

// SetItemStatus moves an item along the item graph. Cancelling releases the item's
// assignments; delivering fulfils its accepted one. The order is not advanced.
func (t *Transitioner) SetItemStatus(ctx context.Context, itemID int64, to domain.ItemStatus) error {
	it, ok := t.order.Item(itemID)
	if !ok {
		return fmt.Errorf("%w: order item %d", apperr.ErrNotFound, itemID)
	}
	if it.Status == to {
		return nil
	}
	if !it.Status.CanTransition(to) {
		return fmt.Errorf("%w: item %s -> %s", apperr.ErrInvalidTransition, it.Status, to)
	}
	if err := backed(it, to); err != nil {
		return err
	}
	if err := t.writeItemStatus(ctx, it, to); err != nil {
		return err
	}

	switch to {
	case domain.ItemCancelled:
		if err := t.ReleaseAssignments(ctx, it); err != nil {
			return err
		}
	case domain.ItemDelivered:
		for i := range it.Assignments {
			if it.Assignments[i].Status == domain.AssignmentAccepted {
				if err := t.SetAssignmentStatus(ctx, &it.Assignments[i], domain.AssignmentFulfilled); err != nil {
					return err
				}
			}
		}
	}

	if ev, ok := domain.EventForItemStatus(to); ok {
		t.box.Add(domain.NewEvent(ev, domain.EntityOrderItem, it.ID, map[string]any{
			"order_id":      t.order.ID,
			"order_item_id": it.ID,
			"status":        string(to),
		}, t.Targets(), t.at))
	}
	return nil
}

// backed checks that the item holds the assignment its next status stands for.
// MATCHED needs a PROPOSED assignment and CONFIRMED an accepted one, so stock is
// only ever committed through AcceptAssignment.
func backed(it *domain.OrderItem, to domain.ItemStatus) error {
	switch to {
	case domain.ItemMatched:
		if _, ok := it.Proposed(); !ok {
			return fmt.Errorf("%w: item %d has no PROPOSED assignment", apperr.ErrInvalidTransition, it.ID)
		}
	case domain.ItemConfirmed:
		if _, ok := it.Committed(); !ok {
			return fmt.Errorf("%w: item %d has no accepted assignment, accept one instead", apperr.ErrInvalidTransition, it.ID)
		}
	}
	return nil
}

// ReturnToPending sends a MATCHED item without live assignments back to matching.
func (t *Transitioner) ReturnToPending(ctx context.Context, itemID int64) (bool, error) {
	it, ok := t.order.Item(itemID)
	if !ok {
		return false, fmt.Errorf("%w: order item %d", apperr.ErrNotFound, itemID)
	}
	if it.Status != domain.ItemMatched || it.HasActiveAssignment() {
		return false, nil
	}
	return true, t.writeItemStatus(ctx, it, domain.ItemPending)
}

func (t *Transitioner) writeItemStatus(ctx context.Context, it *domain.OrderItem, to domain.ItemStatus) error {
	from := it.Status
	if err := t.tx.UpdateItemStatus(ctx, it.ID, to, t.at); err != nil {
		return err
	}
	it.Status = to
	it.UpdatedAt = t.at

	itemID := it.ID
	return t.tx.InsertHistory(ctx, &domain.HistoryEntry{
		OrderID:     t.order.ID,
		ItemID:      &itemID,
		FromStatus:  string(from),
		ToStatus:    string(to),
		ActorUserID: t.actor.UserIDPtr(),
		ActorRole:   t.actor.Role,
		CreatedAt:   t.at,
	})
}

// SetAssignmentStatus writes an assignment status and mirrors it on the loaded order.
func (t *Transitioner) SetAssignmentStatus(ctx context.Context, a *domain.Assignment, to domain.AssignmentStatus) error {
	if a.Status == to {
		return nil
	}
	if err := t.tx.UpdateAssignmentStatus(ctx, a.ID, to, t.at); err != nil {
		return err
	}
	a.Status = to
	a.UpdatedAt = t.at
	return nil
}

// ReleaseAssignments rejects every live assignment of the item. Accepted ones give
// their quantity back to the catalog row first.
func (t *Transitioner) ReleaseAssignments(ctx context.Context, it *domain.OrderItem) error {
	for i := range it.Assignments {
		a := &it.Assignments[i]
		switch a.Status {
		case domain.AssignmentAccepted:
			if err := t.Restock(ctx, a.CatalogID, it.Quantity, a.ID, domain.LedgerRestock); err != nil {
				return err
			}
		case domain.AssignmentProposed:
		default:
			continue
		}
		if err := t.SetAssignmentStatus(ctx, a, domain.AssignmentRejected); err != nil {
			return err
		}
	}
	return nil
}

// Restock adds qty to a catalog row and writes the ledger row.
func (t *Transitioner) Restock(ctx context.Context, catalogID int64, qty int, assignmentID int64, reason string) error {
	if _, err := t.tx.AdjustStock(ctx, catalogID, qty, t.at); err != nil {
		return err
	}
	var ref *int64
	if assignmentID != 0 {
		ref = &assignmentID
	}
	return t.tx.InsertLedger(ctx, &domain.LedgerEntry{
		CatalogID:    catalogID,
		Change:       qty,
		Reason:       reason,
		AssignmentID: ref,
		CreatedAt:    t.at,
	})
}

// SetOrderStatus performs one legal order transition.
func (t *Transitioner) SetOrderStatus(ctx context.Context, to domain.OrderStatus) error {
	if t.order.Status == to {
		return nil
	}
	if !t.order.Status.CanTransition(to) {
		return fmt.Errorf("%w: order %s -> %s", apperr.ErrInvalidTransition, t.order.Status, to)
	}
	return t.writeOrderStatus(ctx, to)
}

func (t *Transitioner) writeOrderStatus(ctx context.Context, to domain.OrderStatus) error {
	from := t.order.Status
	if err := t.tx.UpdateOrderStatus(ctx, t.order.ID, to, t.at); err != nil {
		return err
	}
	t.order.Status = to
	t.order.UpdatedAt = t.at

	err := t.tx.InsertHistory(ctx, &domain.HistoryEntry{
		OrderID:     t.order.ID,
		FromStatus:  string(from),
		ToStatus:    string(to),
		ActorUserID: t.actor.UserIDPtr(),
		ActorRole:   t.actor.Role,
		CreatedAt:   t.at,
	})
	if err != nil {
		return err
	}

	if ev, ok := domain.EventForOrderStatus(to); ok {
		t.box.Add(domain.NewEvent(ev, domain.EntityOrder, t.order.ID, map[string]any{
			"order_id":    t.order.ID,
			"status":      string(to),
			"from_status": string(from),
		}, t.Targets(), t.at))
	}
	return nil
}

// Advance moves the order up to the minimum level of its live items one step at a
// time. An order whose items are all cancelled becomes CANCELLED. Terminal orders
// and orders already at or past the target are left alone.
func (t *Transitioner) Advance(ctx context.Context) error {
	if t.order.Status.Terminal() {
		return nil
	}
	target, ok := t.order.TargetStatus()
	if !ok {
		return nil
	}
	if target == domain.OrderCancelled {
		return t.writeOrderStatus(ctx, domain.OrderCancelled)
	}

	for level := t.order.Status.Level() + 1; level <= target.Level(); level++ {
		next, _ := domain.OrderStatusAtLevel(level)
		if err := t.SetOrderStatus(ctx, next); err != nil {
			return err
		}
	}
	return nil
}

// Cancel cancels every open item and then the order itself.
func (t *Transitioner) Cancel(ctx context.Context) error {
	for i := range t.order.Items {
		it := &t.order.Items[i]
		if it.Status.Terminal() {
			if err := t.ReleaseAssignments(ctx, it); err != nil {
				return err
			}
			continue
		}
		if err := t.SetItemStatus(ctx, it.ID, domain.ItemCancelled); err != nil {
			return err
		}
	}
	if t.order.Status == domain.OrderCancelled {
		return nil
	}
	return t.writeOrderStatus(ctx, domain.OrderCancelled)
}

// lowStockAlert queues a LOW_STOCK_ALERT when entry is below its threshold.
func lowStockAlert(box *events.Outbox, entry domain.CatalogEntry, supplierUserID int64, at time.Time) bool {
	if !entry.LowStock() {
		return false
	}
	box.Add(domain.NewEvent(domain.EventLowStockAlert, domain.EntityCatalog, entry.ID, map[string]any{
		"catalog_id":         entry.ID,
		"part_number":        entry.PartNumber,
		"quantity_in_stock":  entry.QuantityInStock,
		"min_order_quantity": entry.MinOrderQuantity,
	}, []int64{supplierUserID}, at))
	return true
}
