package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// EventType names a domain event.
type EventType string

// Event types.
const (
	EventOrderPlaced       EventType = "ORDER_PLACED"
	EventSupplierMatched   EventType = "SUPPLIER_MATCHED"
	EventOrderConfirmed    EventType = "ORDER_CONFIRMED"
	EventOrderDispatched   EventType = "ORDER_DISPATCHED"
	EventOrderInTransit    EventType = "ORDER_IN_TRANSIT"
	EventOrderDelivered    EventType = "ORDER_DELIVERED"
	EventOrderCancelled    EventType = "ORDER_CANCELLED"
	EventDeliveryPlanned   EventType = "DELIVERY_PLANNED"
	EventDeliveryCompleted EventType = "DELIVERY_COMPLETED"
	EventETAUpdated        EventType = "ETA_UPDATED"
	EventLowStockAlert     EventType = "LOW_STOCK_ALERT"
)

// Entity types carried in event payloads.
const (
	EntityOrder     = "order"
	EntityOrderItem = "order_item"
	EntityDelivery  = "delivery"
	EntityCatalog   = "catalog"
)

var orderStatusEvents = map[OrderStatus]EventType{
	OrderPlaced:     EventOrderPlaced,
	OrderMatched:    EventSupplierMatched,
	OrderConfirmed:  EventOrderConfirmed,
	OrderDispatched: EventOrderDispatched,
	OrderInTransit:  EventOrderInTransit,
	OrderDelivered:  EventOrderDelivered,
	OrderCancelled:  EventOrderCancelled,
}

// EventForOrderStatus returns the event emitted when an order reaches s.
func EventForOrderStatus(s OrderStatus) (EventType, bool) {
	e, ok := orderStatusEvents[s]
	return e, ok
}

// EventForItemStatus returns the event emitted when an item reaches s.
func EventForItemStatus(s ItemStatus) (EventType, bool) {
	if s == ItemPending {
		return "", false
	}
	return EventForOrderStatus(OrderStatus(s))
}

// Event is an emitted domain event.
type Event struct {
	ID            uuid.UUID
	Type          EventType
	EntityType    string
	EntityID      int64
	Payload       map[string]any
	TargetUserIDs []int64
	OccurredAt    time.Time
}

// NewEvent builds an event with a fresh id. Payload always carries entity_type and entity_id.
func NewEvent(t EventType, entityType string, entityID int64, payload map[string]any, targets []int64, at time.Time) Event {
	p := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		p[k] = v
	}
	p["entity_type"] = entityType
	p["entity_id"] = entityID
	return Event{
		ID:            uuid.New(),
		Type:          t,
		EntityType:    entityType,
		EntityID:      entityID,
		Payload:       p,
		TargetUserIDs: UniqueIDs(targets),
		OccurredAt:    at,
	}
}

// Key identifies events that describe the same fact.
func (e Event) Key() string {
	return string(e.Type) + "/" + e.EntityType + "/" + strconv.FormatInt(e.EntityID, 10)
}

// Notification is a persisted per-user copy of an event.
type Notification struct {
	ID        int64
	UserID    int64
	EventID   uuid.UUID
	EventType EventType
	Payload   map[string]any
	Read      bool
	CreatedAt time.Time
}

// UniqueIDs drops zero and duplicate ids keeping first occurrence order.
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
