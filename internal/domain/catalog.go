package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"parts-dispatch/internal/geo"
)

// Stock ledger reasons.
const (
	LedgerOrderConfirmed   = "order_confirmed"
	LedgerRestock          = "restock"
	LedgerManualAdjustment = "manual_adjustment"
)

// lowStockFactor marks a row as low once stock drops below this multiple of the minimum order quantity.
const lowStockFactor = 2

// Supplier is a parts supplier.
type Supplier struct {
	ID              int64
	UserID          int64
	Name            string
	Lat             float64
	Lng             float64
	ServiceRadiusKm float64
	Reliability     float64
}

// CatalogEntry is one supplier stock row.
type CatalogEntry struct {
	ID               int64
	SupplierID       int64
	PartNumber       string
	NormalizedPart   string
	Description      string
	UnitPrice        decimal.Decimal
	QuantityInStock  int
	MinOrderQuantity int
	LeadTimeHours    int
	UpdatedAt        time.Time
}

// LowStock reports whether the row has fallen below the alert threshold.
func (c CatalogEntry) LowStock() bool {
	return c.QuantityInStock < c.MinOrderQuantity*lowStockFactor
}

// SupplierStock is a catalog row joined with its supplier, as returned by catalog lookups.
type SupplierStock struct {
	CatalogEntry
	SupplierUserID  int64
	SupplierName    string
	Lat             float64
	Lng             float64
	ServiceRadiusKm float64
	Reliability     float64
}

// Location returns the supplier location.
func (s SupplierStock) Location() geo.Point {
	return geo.Point{Lat: s.Lat, Lng: s.Lng}
}

// LedgerEntry is an append-only stock movement.
type LedgerEntry struct {
	ID           int64
	CatalogID    int64
	Change       int
	Reason       string
	AssignmentID *int64
	CreatedAt    time.Time
}

// MatchLogEntry is the audit record of one scored candidate.
type MatchLogEntry struct {
	ID                 int64
	ItemID             int64
	SupplierID         int64
	CatalogID          int64
	DistanceKm         float64
	DistanceScore      float64
	ReliabilityScore   float64
	PriceScore         float64
	UrgencyScore       float64
	ConsolidationBonus float64
	TotalScore         float64
	Rank               int
	CreatedAt          time.Time
}
