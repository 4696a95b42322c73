package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"parts-dispatch/internal/geo"
)

type placeOrderRequest struct {
	BuyerID    int64              `json:"buyer_id"`
	Urgency    string             `json:"urgency"`
	RequiredBy *time.Time         `json:"required_by,omitempty"`
	Items      []orderItemRequest `json:"items"`
}

type orderItemRequest struct {
	PartNumber  string `json:"part_number"`
	Description string `json:"description,omitempty"`
	Quantity    int    `json:"quantity"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type assignmentDTO struct {
	ID         int64           `json:"id"`
	SupplierID int64           `json:"supplier_id"`
	CatalogID  int64           `json:"catalog_id"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
	Score      float64         `json:"score"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type orderItemDTO struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order_id"`
	PartNumber  string          `json:"part_number"`
	Description string          `json:"description,omitempty"`
	Quantity    int             `json:"quantity"`
	Status      string          `json:"status"`
	Assignments []assignmentDTO `json:"assignments"`
}

type orderDTO struct {
	ID         int64          `json:"id"`
	BuyerID    int64          `json:"buyer_id"`
	Urgency    string         `json:"urgency"`
	RequiredBy *time.Time     `json:"required_by,omitempty"`
	Status     string         `json:"status"`
	Items      []orderItemDTO `json:"items"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

type historyDTO struct {
	ID          int64     `json:"id"`
	ItemID      *int64    `json:"order_item_id,omitempty"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	ActorUserID *int64    `json:"actor_user_id,omitempty"`
	ActorRole   string    `json:"actor_role"`
	CreatedAt   time.Time `json:"created_at"`
}

type orderDetailsResponse struct {
	orderDTO
	TotalValue decimal.Decimal `json:"total_value"`
	History    []historyDTO    `json:"history"`
}

type simulateRequest struct {
	OrderID     int64 `json:"order_id,omitempty"`
	OrderItemID int64 `json:"order_item_id,omitempty"`
}

type matchLogDTO struct {
	SupplierID         int64     `json:"supplier_id"`
	CatalogID          int64     `json:"catalog_id"`
	DistanceKm         float64   `json:"distance_km"`
	DistanceScore      float64   `json:"distance_score"`
	ReliabilityScore   float64   `json:"reliability_score"`
	PriceScore         float64   `json:"price_score"`
	UrgencyScore       float64   `json:"urgency_score"`
	ConsolidationBonus float64   `json:"consolidation_bonus"`
	TotalScore         float64   `json:"total_score"`
	Rank               int       `json:"rank"`
	CreatedAt          time.Time `json:"created_at"`
}

type singleDeliveryRequest struct {
	AssignmentID int64 `json:"assignment_id"`
}

type batchDeliveryRequest struct {
	AssignmentIDs []int64 `json:"assignment_ids"`
	Vehicles      int     `json:"vehicles,omitempty"`
}

type stopDTO struct {
	AssignmentID int64     `json:"assignment_id"`
	Type         string    `json:"stop_type"`
	Sequence     int       `json:"sequence"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	WindowStart  time.Time `json:"time_window_start"`
	WindowEnd    time.Time `json:"time_window_end"`
	ETA          time.Time `json:"eta"`
}

type deliveryDTO struct {
	ID                  int64      `json:"id"`
	Type                string     `json:"delivery_type"`
	Status              string     `json:"status"`
	TotalDistanceKm     float64    `json:"total_distance_km"`
	TotalDurationMin    float64    `json:"total_duration_min"`
	OptimizedDistanceKm float64    `json:"optimized_distance_km"`
	NaiveDistanceKm     float64    `json:"naive_distance_km"`
	SavingsKm           float64    `json:"savings_km"`
	SavingsPercent      float64    `json:"savings_percent"`
	LatestETA           *time.Time `json:"latest_eta,omitempty"`
	Stops               []stopDTO  `json:"stops"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type routeResponse struct {
	DeliveryID int64          `json:"delivery_id"`
	Geometry   geo.LineString `json:"geometry"`
	Stops      []stopDTO      `json:"stops"`
}

type availableAssignmentDTO struct {
	AssignmentID int64      `json:"assignment_id"`
	OrderID      int64      `json:"order_id"`
	OrderItemID  int64      `json:"order_item_id"`
	PartNumber   string     `json:"part_number"`
	Quantity     int        `json:"quantity"`
	SupplierID   int64      `json:"supplier_id"`
	SupplierLat  float64    `json:"supplier_lat"`
	SupplierLng  float64    `json:"supplier_lng"`
	BuyerLat     float64    `json:"buyer_lat"`
	BuyerLng     float64    `json:"buyer_lng"`
	RequiredBy   *time.Time `json:"required_by,omitempty"`
}

type deliveryStatsDTO struct {
	Count             int     `json:"total_deliveries"`
	BatchedCount      int     `json:"batched_deliveries"`
	AvgDistanceKm     float64 `json:"avg_distance_km"`
	AvgDurationMin    float64 `json:"avg_duration_min"`
	TotalSavingsKm    float64 `json:"total_savings_km"`
	AvgSavingsPercent float64 `json:"avg_savings_percent"`
}

type restockRequest struct {
	Quantity int `json:"quantity"`
}

type catalogDTO struct {
	ID               int64           `json:"id"`
	SupplierID       int64           `json:"supplier_id"`
	PartNumber       string          `json:"part_number"`
	Description      string          `json:"description,omitempty"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	QuantityInStock  int             `json:"quantity_in_stock"`
	MinOrderQuantity int             `json:"min_order_quantity"`
	LeadTimeHours    int             `json:"lead_time_hours"`
	LowStock         bool            `json:"low_stock"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type stockDTO struct {
	catalogDTO
	SupplierName    string  `json:"supplier_name"`
	Lat             float64 `json:"lat"`
	Lng             float64 `json:"lng"`
	ServiceRadiusKm float64 `json:"service_radius_km"`
	Reliability     float64 `json:"reliability_score"`
}

type notificationDTO struct {
	ID        int64          `json:"id"`
	EventID   string         `json:"event_id"`
	EventType string         `json:"event_type"`
	Payload   map[string]any `json:"payload"`
	Read      bool           `json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
}

type enqueueJobRequest struct {
	Kind     string `json:"kind"`
	TargetID int64  `json:"target_id"`
}

type enqueueJobResponse struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	TargetID int64  `json:"target_id"`
}
