package lifecycle

import (
	"fmt"

	"parts-dispatch/internal/apperr"
	"parts-dispatch/internal/domain"
)

var supplierTargets = map[domain.ItemStatus]bool{
	domain.ItemDispatched: true,
	domain.ItemInTransit:  true,
	domain.ItemDelivered:  true,
}

// authorizeItem checks whether actor may move the item of order o to next.
func authorizeItem(actor domain.Actor, o *domain.Order, it *domain.OrderItem, next domain.ItemStatus) error {
	switch {
	case actor.Privileged():
		return nil
	case actor.Role == domain.RoleBuyer:
		if o.BuyerUserID != actor.UserID {
			return fmt.Errorf("%w: order %d does not belong to buyer", apperr.ErrForbidden, o.ID)
		}
		if next != domain.ItemCancelled {
			return fmt.Errorf("%w: buyer can only cancel", apperr.ErrForbidden)
		}
		if it.Status.Shipped() {
			return fmt.Errorf("%w: item %d has already shipped", apperr.ErrInvalidTransition, it.ID)
		}
		return nil
	case actor.Role == domain.RoleSupplier:
		if !supplierTargets[next] {
			return fmt.Errorf("%w: supplier cannot move an item to %s", apperr.ErrForbidden, next)
		}
		if !ownsCommitted(actor, it) {
			return fmt.Errorf("%w: supplier holds no accepted assignment for item %d", apperr.ErrForbidden, it.ID)
		}
		return nil
	default:
		return fmt.Errorf("%w: role %q", apperr.ErrForbidden, actor.Role)
	}
}

// authorizeOrder checks whether actor may move order o to next.
func authorizeOrder(actor domain.Actor, o *domain.Order, next domain.OrderStatus) error {
	switch {
	case actor.Privileged():
		return nil
	case actor.Role == domain.RoleBuyer:
		if o.BuyerUserID != actor.UserID {
			return fmt.Errorf("%w: order %d does not belong to buyer", apperr.ErrForbidden, o.ID)
		}
		if next != domain.OrderCancelled {
			return fmt.Errorf("%w: buyer can only cancel", apperr.ErrForbidden)
		}
		if o.Status.Level() >= domain.OrderDispatched.Level() {
			return fmt.Errorf("%w: order %d has already shipped", apperr.ErrInvalidTransition, o.ID)
		}
		return nil
	case actor.Role == domain.RoleSupplier:
		if !supplierTargets[domain.ItemStatus(next)] {
			return fmt.Errorf("%w: supplier cannot move an order to %s", apperr.ErrForbidden, next)
		}
		for i := range o.Items {
			if ownsCommitted(actor, &o.Items[i]) {
				return nil
			}
		}
		return fmt.Errorf("%w: supplier holds no accepted assignment on order %d", apperr.ErrForbidden, o.ID)
	default:
		return fmt.Errorf("%w: role %q", apperr.ErrForbidden, actor.Role)
	}
}

// authorizeAssignment checks that a supplier acts on its own assignment.
func authorizeAssignment(actor domain.Actor, a *domain.Assignment) error {
	switch {
	case actor.Privileged():
		return nil
	case actor.Role == domain.RoleSupplier:
		if a.SupplierUserID != actor.UserID {
			return fmt.Errorf("%w: assignment %d belongs to another supplier", apperr.ErrForbidden, a.ID)
		}
		return nil
	default:
		return fmt.Errorf("%w: only suppliers and admins handle assignments", apperr.ErrForbidden)
	}
}

func ownsCommitted(actor domain.Actor, it *domain.OrderItem) bool {
	for _, a := range it.Assignments {
		if a.SupplierUserID == actor.UserID && a.Status.Committed() {
			return true
		}
	}
	return false
}
