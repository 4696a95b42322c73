package domain

import (
	"time"

	"parts-dispatch/internal/geo"
)

type (
	// DeliveryType distinguishes direct trips from batched routes.
	DeliveryType string
	// StopType is the kind of a delivery stop.
	StopType string
)

// Delivery types.
const (
	DeliverySingle  DeliveryType = "single"
	DeliveryBatched DeliveryType = "batched"
)

// Stop types.
const (
	StopPickup  StopType = "pickup"
	StopDropoff StopType = "dropoff"
)

// Delivery is a planned vehicle trip.
type Delivery struct {
	ID                  int64
	Type                DeliveryType
	Status              DeliveryStatus
	TotalDistanceKm     float64
	TotalDurationMin    float64
	OptimizedDistanceKm float64
	NaiveDistanceKm     float64
	Geometry            geo.LineString
	Stops               []DeliveryStop
	LatestETA           *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// SavingsKm returns the non-negative distance saved over direct trips.
func (d Delivery) SavingsKm() float64 {
	if s := d.NaiveDistanceKm - d.OptimizedDistanceKm; s > 0 {
		return s
	}
	return 0
}

// SavingsPercent returns SavingsKm as a share of the naive distance.
func (d Delivery) SavingsPercent() float64 {
	if d.NaiveDistanceKm <= 0 {
		return 0
	}
	return d.SavingsKm() / d.NaiveDistanceKm * 100
}

// AssignmentIDs returns the distinct assignments served by the delivery in stop order.
func (d Delivery) AssignmentIDs() []int64 {
	seen := make(map[int64]struct{}, len(d.Stops))
	out := make([]int64, 0, len(d.Stops)/2)
	for _, s := range d.Stops {
		if _, ok := seen[s.AssignmentID]; ok {
			continue
		}
		seen[s.AssignmentID] = struct{}{}
		out = append(out, s.AssignmentID)
	}
	return out
}

// FinalDropoffETA returns the latest dropoff ETA.
func (d Delivery) FinalDropoffETA() (time.Time, bool) {
	var latest time.Time
	found := false
	for _, s := range d.Stops {
		if s.Type != StopDropoff {
			continue
		}
		if !found || s.ETA.After(latest) {
			latest = s.ETA
			found = true
		}
	}
	return latest, found
}

// DeliveryStop is one pickup or dropoff on a delivery.
type DeliveryStop struct {
	ID           int64
	DeliveryID   int64
	AssignmentID int64
	Type         StopType
	Sequence     int
	Lat          float64
	Lng          float64
	WindowStart  time.Time
	WindowEnd    time.Time
	ETA          time.Time
}

// Point returns the stop location.
func (s DeliveryStop) Point() geo.Point {
	return geo.Point{Lat: s.Lat, Lng: s.Lng}
}

// EtaLogEntry is an append-only ETA computation record.
type EtaLogEntry struct {
	ID         int64
	DeliveryID int64
	ETA        time.Time
	CreatedAt  time.Time
}

// DeliveryStats summarizes planned deliveries.
type DeliveryStats struct {
	Count             int
	BatchedCount      int
	AvgDistanceKm     float64
	AvgDurationMin    float64
	TotalSavingsKm    float64
	AvgSavingsPercent float64
}

// AssignmentContext is an assignment joined with everything routing needs.
type AssignmentContext struct {
	Assignment    Assignment
	ItemID        int64
	OrderID       int64
	OrderStatus   OrderStatus
	PartNumber    string
	Quantity      int
	BuyerUserID   int64
	BuyerLat      float64
	BuyerLng      float64
	RequiredBy    *time.Time
	SupplierLat   float64
	SupplierLng   float64
	LeadTimeHours int
	ScheduledOnID *int64
}

// Pickup returns the supplier location.
func (c AssignmentContext) Pickup() geo.Point {
	return geo.Point{Lat: c.SupplierLat, Lng: c.SupplierLng}
}

// Dropoff returns the buyer location.
func (c AssignmentContext) Dropoff() geo.Point {
	return geo.Point{Lat: c.BuyerLat, Lng: c.BuyerLng}
}

// DueBy returns the required-by time, or now+fallback when unset.
func (c AssignmentContext) DueBy(now time.Time, fallback time.Duration) time.Time {
	if c.RequiredBy != nil {
		return c.RequiredBy.UTC()
	}
	return now.Add(fallback)
}

// ReadyAt returns the earliest pickup time.
func (c AssignmentContext) ReadyAt(now time.Time) time.Time {
	return now.Add(time.Duration(c.LeadTimeHours) * time.Hour)
}
