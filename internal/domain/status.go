package domain

import "strings"

type (
	// OrderStatus is the lifecycle status of an order.
	OrderStatus string
	// ItemStatus is the lifecycle status of an order line.
	ItemStatus string
	// AssignmentStatus is the status of a supplier assignment.
	AssignmentStatus string
	// DeliveryStatus is the status of a planned delivery.
	DeliveryStatus string
	// Urgency is the buyer-declared priority tier.
	Urgency string
)

// Order statuses.
const (
	OrderPlaced     OrderStatus = "PLACED"
	OrderMatched    OrderStatus = "MATCHED"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderDispatched OrderStatus = "DISPATCHED"
	OrderInTransit  OrderStatus = "IN_TRANSIT"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// Item statuses.
const (
	ItemPending    ItemStatus = "PENDING"
	ItemMatched    ItemStatus = "MATCHED"
	ItemConfirmed  ItemStatus = "CONFIRMED"
	ItemDispatched ItemStatus = "DISPATCHED"
	ItemInTransit  ItemStatus = "IN_TRANSIT"
	ItemDelivered  ItemStatus = "DELIVERED"
	ItemCancelled  ItemStatus = "CANCELLED"
)

// Assignment statuses.
const (
	AssignmentProposed  AssignmentStatus = "PROPOSED"
	AssignmentAccepted  AssignmentStatus = "ACCEPTED"
	AssignmentRejected  AssignmentStatus = "REJECTED"
	AssignmentFulfilled AssignmentStatus = "FULFILLED"
)

// Delivery statuses.
const (
	DeliveryPlanned    DeliveryStatus = "PLANNED"
	DeliveryInProgress DeliveryStatus = "IN_PROGRESS"
	DeliveryCompleted  DeliveryStatus = "COMPLETED"
)

// Urgency tiers.
const (
	UrgencyStandard Urgency = "standard"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyCritical Urgency = "critical"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPlaced:     {OrderMatched, OrderCancelled},
	OrderMatched:    {OrderConfirmed, OrderCancelled},
	OrderConfirmed:  {OrderDispatched, OrderCancelled},
	OrderDispatched: {OrderInTransit},
	OrderInTransit:  {OrderDelivered},
	OrderDelivered:  nil,
	OrderCancelled:  nil,
}

var itemTransitions = map[ItemStatus][]ItemStatus{
	ItemPending:    {ItemMatched, ItemCancelled},
	ItemMatched:    {ItemConfirmed, ItemCancelled},
	ItemConfirmed:  {ItemDispatched, ItemCancelled},
	ItemDispatched: {ItemInTransit, ItemCancelled},
	ItemInTransit:  {ItemDelivered, ItemCancelled},
	ItemDelivered:  nil,
	ItemCancelled:  nil,
}

// orderLevels lists order statuses by lifecycle level. CANCELLED has no level.
var orderLevels = []OrderStatus{
	OrderPlaced, OrderMatched, OrderConfirmed, OrderDispatched, OrderInTransit, OrderDelivered,
}

var itemLevels = map[ItemStatus]int{
	ItemPending:    0,
	ItemMatched:    1,
	ItemConfirmed:  2,
	ItemDispatched: 3,
	ItemInTransit:  4,
	ItemDelivered:  5,
}

var deliveryNext = map[DeliveryStatus]DeliveryStatus{
	DeliveryPlanned:    DeliveryInProgress,
	DeliveryInProgress: DeliveryCompleted,
}

// ParseOrderStatus normalizes and validates an order status.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := orderTransitions[st]
	return st, ok
}

// ParseItemStatus normalizes and validates an item status.
func ParseItemStatus(s string) (ItemStatus, bool) {
	st := ItemStatus(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := itemTransitions[st]
	return st, ok
}

// ParseDeliveryStatus normalizes and validates a delivery status.
func ParseDeliveryStatus(s string) (DeliveryStatus, bool) {
	st := DeliveryStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case DeliveryPlanned, DeliveryInProgress, DeliveryCompleted:
		return st, true
	}
	return st, false
}

// ParseUrgency normalizes and validates an urgency tier.
func ParseUrgency(s string) (Urgency, bool) {
	u := Urgency(strings.ToLower(strings.TrimSpace(s)))
	switch u {
	case UrgencyStandard, UrgencyUrgent, UrgencyCritical:
		return u, true
	}
	return u, false
}

// CanTransition reports whether the order may move from s to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, v := range orderTransitions[s] {
		if v == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// Level returns the lifecycle level of s, or -1 for CANCELLED and unknown statuses.
func (s OrderStatus) Level() int {
	for i, v := range orderLevels {
		if v == s {
			return i
		}
	}
	return -1
}

// OrderStatusAtLevel returns the order status for a lifecycle level.
func OrderStatusAtLevel(level int) (OrderStatus, bool) {
	if level < 0 || level >= len(orderLevels) {
		return "", false
	}
	return orderLevels[level], true
}

// CanTransition reports whether the item may move from s to next.
func (s ItemStatus) CanTransition(next ItemStatus) bool {
	for _, v := range itemTransitions[s] {
		if v == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s ItemStatus) Terminal() bool {
	return s == ItemDelivered || s == ItemCancelled
}

// Level returns the lifecycle level of s, or -1 for CANCELLED and unknown statuses.
func (s ItemStatus) Level() int {
	if l, ok := itemLevels[s]; ok {
		return l
	}
	return -1
}

// Shipped reports whether the item has left the supplier.
func (s ItemStatus) Shipped() bool {
	return s == ItemDispatched || s == ItemInTransit || s == ItemDelivered
}

// Active reports whether the assignment still binds a supplier to the item.
func (s AssignmentStatus) Active() bool {
	return s == AssignmentProposed || s == AssignmentAccepted || s == AssignmentFulfilled
}

// Committed reports whether the supplier has taken the item.
func (s AssignmentStatus) Committed() bool {
	return s == AssignmentAccepted || s == AssignmentFulfilled
}

// Next returns the only legal successor of s.
func (s DeliveryStatus) Next() (DeliveryStatus, bool) {
	n, ok := deliveryNext[s]
	return n, ok
}
