//go:generate mockgen -source=contracts.go -destination=handlers_mocks_test.go -package=handlers

package handlers

import (
	"context"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/service/lifecycle"
	"parts-dispatch/internal/service/matching"
)

type ordersUsecase interface {
	PlaceOrder(ctx context.Context, actor domain.Actor, in domain.NewOrder) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID int64) (lifecycle.OrderDetails, error)
	TransitionOrderStatus(ctx context.Context, orderID int64, next domain.OrderStatus, actor domain.Actor) (*domain.Order, error)
	TransitionItemStatus(ctx context.Context, itemID int64, next domain.ItemStatus, actor domain.Actor) (*domain.OrderItem, error)
	CancelOrder(ctx context.Context, orderID int64, actor domain.Actor) (*domain.Order, error)
	AcceptAssignment(ctx context.Context, assignmentID int64, actor domain.Actor) (*domain.Assignment, error)
	RejectAssignment(ctx context.Context, assignmentID int64, actor domain.Actor) (*domain.Assignment, error)
	Notifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
}

type matchingUsecase interface {
	RunMatching(ctx context.Context, orderID int64, actor domain.Actor) ([]matching.ItemResult, error)
	SimulateOrder(ctx context.Context, orderID int64) ([]matching.ItemResult, error)
	SimulateItem(ctx context.Context, itemID int64) (matching.ItemResult, error)
	MatchLog(ctx context.Context, itemID int64) ([]domain.MatchLogEntry, error)
}

type weightProfiles interface {
	Current() domain.WeightProfiles
	Replace(overrides map[domain.Urgency]domain.WeightProfile) (domain.WeightProfiles, error)
}

type deliveryUsecase interface {
	CreateSingleDelivery(ctx context.Context, actor domain.Actor, assignmentID int64) (*domain.Delivery, error)
	CreateBatchedDelivery(ctx context.Context, actor domain.Actor, assignmentIDs []int64, vehicles int) ([]domain.Delivery, error)
	UpdateDeliveryStatus(ctx context.Context, actor domain.Actor, deliveryID int64, to domain.DeliveryStatus) (*domain.Delivery, error)
	RecomputeETA(ctx context.Context, actor domain.Actor, deliveryID int64) (*domain.Delivery, error)
	GetDelivery(ctx context.Context, actor domain.Actor, deliveryID int64) (*domain.Delivery, error)
	AvailableAssignments(ctx context.Context, actor domain.Actor) ([]domain.AssignmentContext, error)
	Stats(ctx context.Context) (domain.DeliveryStats, error)
}

type catalogUsecase interface {
	Get(ctx context.Context, id int64) (*domain.CatalogEntry, error)
	Search(ctx context.Context, part string, minQuantity int) ([]domain.SupplierStock, error)
	Restock(ctx context.Context, actor domain.Actor, catalogID int64, qty int) (*domain.CatalogEntry, error)
	LowStock(ctx context.Context, actor domain.Actor, supplierID int64) ([]domain.CatalogEntry, error)
}

type jobQueue interface {
	Enqueue(ctx context.Context, job domain.Job) error
}
