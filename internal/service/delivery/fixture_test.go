package delivery_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/gateway/routing"
	"parts-dispatch/internal/geo"
	"parts-dispatch/internal/logx"
	"parts-dispatch/internal/ports/dispatchtx"
	"parts-dispatch/internal/repository/memstore"
	"parts-dispatch/internal/service/delivery"
)

var (
	admin     = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	buyer     = domain.Actor{UserID: 10, Role: domain.RoleBuyer}
	stranger  = domain.Actor{UserID: 11, Role: domain.RoleBuyer}
	supplierA = domain.Actor{UserID: 20, Role: domain.RoleSupplier}
	supplierB = domain.Actor{UserID: 30, Role: domain.RoleSupplier}

	pune      = geo.Point{Lat: 18.520, Lng: 73.857}
	mumbai    = geo.Point{Lat: 19.076, Lng: 72.877}
	chakan    = geo.Point{Lat: 18.760, Lng: 73.863}
	hinjewadi = geo.Point{Lat: 18.591, Lng: 73.738}

	estimator = routing.NewEstimator(1.3, 35)
)

type emitterStub struct {
	mu     sync.Mutex
	events []domain.Event
}

func (e *emitterStub) Emit(_ context.Context, evs ...domain.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, evs...)
}

func (e *emitterStub) of(t domain.EventType) []domain.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []domain.Event
	for _, ev := range e.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

type fixture struct {
	store *memstore.Store
	svc   *delivery.Service
	em    *emitterStub

	buyer, buyer2 domain.Buyer
	supA, supB    domain.Supplier
	catA, catB    domain.CatalogEntry
}

// newFixture seeds a Pune buyer, a second buyer in Hinjewadi, a Mumbai supplier with a
// four hour lead time and a Chakan supplier with an eight hour lead time.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := memstore.New()
	f := &fixture{store: s, em: &emitterStub{}}
	f.buyer = s.AddBuyer(domain.Buyer{UserID: buyer.UserID, Name: "garage", Lat: pune.Lat, Lng: pune.Lng})
	f.buyer2 = s.AddBuyer(domain.Buyer{UserID: 12, Name: "plant", Lat: hinjewadi.Lat, Lng: hinjewadi.Lng})
	f.supA = s.AddSupplier(domain.Supplier{UserID: supplierA.UserID, Name: "a", Lat: mumbai.Lat, Lng: mumbai.Lng, ServiceRadiusKm: 300, Reliability: 0.9})
	f.supB = s.AddSupplier(domain.Supplier{UserID: supplierB.UserID, Name: "b", Lat: chakan.Lat, Lng: chakan.Lng, ServiceRadiusKm: 100, Reliability: 0.8})
	f.catA = s.AddCatalogEntry(domain.CatalogEntry{
		SupplierID: f.supA.ID, PartNumber: "6205 BB", NormalizedPart: "BALLBEARING6205",
		UnitPrice: decimal.NewFromInt(12), QuantityInStock: 50, MinOrderQuantity: 1, LeadTimeHours: 4,
	})
	f.catB = s.AddCatalogEntry(domain.CatalogEntry{
		SupplierID: f.supB.ID, PartNumber: "BRAKE-PAD", NormalizedPart: "BRAKEPAD",
		UnitPrice: decimal.NewFromInt(30), QuantityInStock: 50, MinOrderQuantity: 1, LeadTimeHours: 8,
	})
	f.svc = delivery.NewDeliveryService(s, estimator, f.em, nil, nil, delivery.Config{
		OperationTimeout: 5 * time.Second,
		SolverBudget:     time.Second,
	}, logx.Nop())
	return f
}

// assignment stores a confirmed order with one item and one assignment of cat to b.
func (f *fixture) assignment(t *testing.T, b domain.Buyer, cat domain.CatalogEntry, status domain.AssignmentStatus, requiredBy *time.Time) int64 {
	t.Helper()

	ctx := context.Background()
	now := time.Now().UTC()
	var id int64
	require.NoError(t, f.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		o := &domain.Order{
			BuyerID: b.ID, Urgency: domain.UrgencyStandard, RequiredBy: requiredBy, Status: domain.OrderConfirmed,
			CreatedAt: now, UpdatedAt: now,
			Items: []domain.OrderItem{{PartNumber: cat.PartNumber, Quantity: 2, Status: domain.ItemConfirmed, CreatedAt: now, UpdatedAt: now}},
		}
		if err := tx.InsertOrder(ctx, o); err != nil {
			return err
		}
		a := &domain.Assignment{
			ItemID: o.Items[0].ID, SupplierID: cat.SupplierID, CatalogID: cat.ID, UnitPrice: cat.UnitPrice,
			LineTotal: cat.UnitPrice.Mul(decimal.NewFromInt(2)), Status: status, CreatedAt: now, UpdatedAt: now,
		}
		if err := tx.InsertAssignment(ctx, a); err != nil {
			return err
		}
		id = a.ID
		return nil
	}))
	return id
}

func (f *fixture) assignmentStatus(t *testing.T, id int64) domain.AssignmentStatus {
	t.Helper()

	var st domain.AssignmentStatus
	require.NoError(t, f.store.WithTx(context.Background(), func(tx dispatchtx.Repository) error {
		cs, err := tx.AssignmentContexts(context.Background(), []int64{id})
		if err != nil {
			return err
		}
		st = cs[0].Assignment.Status
		return nil
	}))
	return st
}

func (f *fixture) delivery(t *testing.T, id int64) *domain.Delivery {
	t.Helper()

	d, err := f.svc.GetDelivery(context.Background(), admin, id)
	require.NoError(t, err)
	return d
}

// requirePaired checks that every assignment is picked up before it is dropped off.
func requirePaired(t *testing.T, d domain.Delivery) {
	t.Helper()

	seen := map[int64]domain.StopType{}
	for i, st := range d.Stops {
		require.Equal(t, i+1, st.Sequence)
		switch st.Type {
		case domain.StopPickup:
			_, dup := seen[st.AssignmentID]
			require.False(t, dup)
		case domain.StopDropoff:
			require.Equal(t, domain.StopPickup, seen[st.AssignmentID], "dropoff before pickup")
		}
		seen[st.AssignmentID] = st.Type
	}
	for id, last := range seen {
		require.Equal(t, domain.StopDropoff, last, "assignment %d not dropped off", id)
	}
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
