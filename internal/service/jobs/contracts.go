//go:generate mockgen -source=contracts.go -destination=jobs_mocks_test.go -package=jobs_test

package jobs

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/service/matching"
)

// MatchingPort is the part of the matching engine the worker drives.
type MatchingPort interface {
	RunMatching(ctx context.Context, orderID int64, actor domain.Actor) ([]matching.ItemResult, error)
}

// DeliveryPort is the part of the delivery planner the worker drives.
type DeliveryPort interface {
	CreateSingleDelivery(ctx context.Context, actor domain.Actor, assignmentID int64) (*domain.Delivery, error)
	RecomputeETA(ctx context.Context, actor domain.Actor, deliveryID int64) (*domain.Delivery, error)
}

type resultCounter interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}
