package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"parts-dispatch/internal/geo"
)

// Buyer is a workshop placing parts orders.
type Buyer struct {
	ID     int64
	UserID int64
	Name   string
	Lat    float64
	Lng    float64
}

// Order is a buyer's parts order.
type Order struct {
	ID          int64
	BuyerID     int64
	BuyerUserID int64
	BuyerLat    float64
	BuyerLng    float64
	Urgency     Urgency
	RequiredBy  *time.Time
	Status      OrderStatus
	Items       []OrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BuyerLocation returns the delivery point of the order.
func (o Order) BuyerLocation() geo.Point {
	return geo.Point{Lat: o.BuyerLat, Lng: o.BuyerLng}
}

// Item returns the item with the given id.
func (o *Order) Item(id int64) (*OrderItem, bool) {
	for i := range o.Items {
		if o.Items[i].ID == id {
			return &o.Items[i], true
		}
	}
	return nil, false
}

// TargetStatus returns the status the order should reach given its items:
// the minimum level among non-cancelled items, or CANCELLED when every item is cancelled.
func (o Order) TargetStatus() (OrderStatus, bool) {
	if len(o.Items) == 0 {
		return "", false
	}
	minLevel := -1
	for _, it := range o.Items {
		if it.Status == ItemCancelled {
			continue
		}
		l := it.Status.Level()
		if minLevel == -1 || l < minLevel {
			minLevel = l
		}
	}
	if minLevel == -1 {
		return OrderCancelled, true
	}
	return OrderStatusAtLevel(minLevel)
}

// SupplierUserIDs returns the owners of every non-rejected assignment, deduplicated in order.
func (o Order) SupplierUserIDs() []int64 {
	seen := make(map[int64]struct{})
	var out []int64
	for _, it := range o.Items {
		for _, a := range it.Assignments {
			if a.Status == AssignmentRejected {
				continue
			}
			if _, ok := seen[a.SupplierUserID]; ok {
				continue
			}
			seen[a.SupplierUserID] = struct{}{}
			out = append(out, a.SupplierUserID)
		}
	}
	return out
}

// TotalValue sums the committed assignment of each item, falling back to the proposed one.
func (o Order) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		if a, ok := it.Committed(); ok {
			total = total.Add(a.LineTotal)
			continue
		}
		if a, ok := it.Proposed(); ok {
			total = total.Add(a.LineTotal)
		}
	}
	return total
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID          int64
	OrderID     int64
	PartNumber  string
	Description string
	Quantity    int
	Status      ItemStatus
	Assignments []Assignment
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Committed returns the ACCEPTED or FULFILLED assignment of the item.
func (it OrderItem) Committed() (Assignment, bool) {
	for _, a := range it.Assignments {
		if a.Status.Committed() {
			return a, true
		}
	}
	return Assignment{}, false
}

// Proposed returns the PROPOSED assignment of the item.
func (it OrderItem) Proposed() (Assignment, bool) {
	for _, a := range it.Assignments {
		if a.Status == AssignmentProposed {
			return a, true
		}
	}
	return Assignment{}, false
}

// HasActiveAssignment reports whether any assignment is not REJECTED.
func (it OrderItem) HasActiveAssignment() bool {
	for _, a := range it.Assignments {
		if a.Status.Active() {
			return true
		}
	}
	return false
}

// Assignment links an order item to a supplier catalog entry.
type Assignment struct {
	ID             int64
	ItemID         int64
	SupplierID     int64
	SupplierUserID int64
	CatalogID      int64
	UnitPrice      decimal.Decimal
	LineTotal      decimal.Decimal
	Score          float64
	Status         AssignmentStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HistoryEntry is an immutable status change record.
type HistoryEntry struct {
	ID          int64
	OrderID     int64
	ItemID      *int64
	FromStatus  string
	ToStatus    string
	ActorUserID *int64
	ActorRole   Role
	CreatedAt   time.Time
}

// NewOrder carries the input to place an order.
type NewOrder struct {
	BuyerID    int64
	Urgency    Urgency
	RequiredBy *time.Time
	Items      []NewOrderItem
}

// NewOrderItem is one requested line.
type NewOrderItem struct {
	PartNumber  string
	Description string
	Quantity    int
}
