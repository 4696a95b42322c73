package dispatchtx

import (
	"context"
	"time"

	"parts-dispatch/internal/domain"
)

// CatalogLookup finds supplier stock for a normalized part number.
type CatalogLookup interface {
	FindStock(ctx context.Context, normalizedPart string, minQuantity int) ([]domain.SupplierStock, error)
}

// OrderRepository reads and writes orders, items, assignments and history.
type OrderRepository interface {
	GetBuyer(ctx context.Context, id int64) (*domain.Buyer, error)
	InsertOrder(ctx context.Context, o *domain.Order) error
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	GetOrderForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	OrderIDByItem(ctx context.Context, itemID int64) (int64, error)
	OrderIDByAssignment(ctx context.Context, assignmentID int64) (int64, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus, at time.Time) error
	UpdateItemStatus(ctx context.Context, id int64, status domain.ItemStatus, at time.Time) error
	InsertAssignment(ctx context.Context, a *domain.Assignment) error
	UpdateAssignmentStatus(ctx context.Context, id int64, status domain.AssignmentStatus, at time.Time) error
	InsertHistory(ctx context.Context, h *domain.HistoryEntry) error
	ListHistory(ctx context.Context, orderID int64) ([]domain.HistoryEntry, error)
}

// CatalogRepository reads and locks supplier stock rows.
type CatalogRepository interface {
	CatalogLookup
	GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error)
	GetCatalogEntry(ctx context.Context, id int64) (*domain.CatalogEntry, error)
	GetCatalogEntryForUpdate(ctx context.Context, id int64) (*domain.CatalogEntry, error)
	AdjustStock(ctx context.Context, catalogID int64, change int, at time.Time) (int, error)
	InsertLedger(ctx context.Context, e *domain.LedgerEntry) error
	ListLowStock(ctx context.Context, supplierID int64) ([]domain.CatalogEntry, error)
}

// MatchRepository stores the matching audit log.
type MatchRepository interface {
	ReplaceMatchLog(ctx context.Context, itemID int64, entries []domain.MatchLogEntry) error
	ListMatchLog(ctx context.Context, itemID int64) ([]domain.MatchLogEntry, error)
}

// DeliveryRepository reads and writes deliveries and their stops.
type DeliveryRepository interface {
	AssignmentContexts(ctx context.Context, assignmentIDs []int64) ([]domain.AssignmentContext, error)
	AvailableAssignments(ctx context.Context) ([]domain.AssignmentContext, error)
	InsertDelivery(ctx context.Context, d *domain.Delivery) error
	GetDelivery(ctx context.Context, id int64) (*domain.Delivery, error)
	GetDeliveryForUpdate(ctx context.Context, id int64) (*domain.Delivery, error)
	UpdateDeliveryStatus(ctx context.Context, id int64, status domain.DeliveryStatus, at time.Time) error
	UpdateStopETAs(ctx context.Context, deliveryID int64, stops []domain.DeliveryStop) error
	InsertEtaLog(ctx context.Context, e *domain.EtaLogEntry) error
	DeliveryStats(ctx context.Context) (domain.DeliveryStats, error)
}

// EventRepository persists emitted events and per-user notifications.
type EventRepository interface {
	InsertEvent(ctx context.Context, e domain.Event) error
	InsertNotifications(ctx context.Context, e domain.Event) error
	ListNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
}

// Repository is the full transactional store surface.
type Repository interface {
	OrderRepository
	CatalogRepository
	MatchRepository
	DeliveryRepository
	EventRepository
}

// Runner is a transaction runner.
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
