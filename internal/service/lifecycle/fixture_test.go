package lifecycle_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/events"
	"parts-dispatch/internal/logx"
	"parts-dispatch/internal/ports/dispatchtx"
	"parts-dispatch/internal/repository/memstore"
	"parts-dispatch/internal/service/lifecycle"
)

var (
	admin     = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	buyer     = domain.Actor{UserID: 10, Role: domain.RoleBuyer}
	stranger  = domain.Actor{UserID: 11, Role: domain.RoleBuyer}
	supplierA = domain.Actor{UserID: 20, Role: domain.RoleSupplier}
	supplierB = domain.Actor{UserID: 30, Role: domain.RoleSupplier}
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

func (e *emitterStub) of(t domain.EventType, entity string) []domain.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []domain.Event
	for _, ev := range e.events {
		if ev.Type == t && ev.EntityType == entity {
			out = append(out, ev)
		}
	}
	return out
}

type fixture struct {
	store *memstore.Store
	svc   *lifecycle.Service
	em    *emitterStub

	buyer      domain.Buyer
	supA, supB domain.Supplier
	catA, catB domain.CatalogEntry
}

func newFixture(t *testing.T, stockA int) *fixture {
	t.Helper()

	s := memstore.New()
	f := &fixture{store: s, em: &emitterStub{}}
	f.buyer = s.AddBuyer(domain.Buyer{UserID: buyer.UserID, Name: "garage", Lat: 18.52, Lng: 73.857})
	f.supA = s.AddSupplier(domain.Supplier{UserID: supplierA.UserID, Name: "a", Lat: 19.076, Lng: 72.877, ServiceRadiusKm: 200, Reliability: 0.9})
	f.supB = s.AddSupplier(domain.Supplier{UserID: supplierB.UserID, Name: "b", Lat: 18.6, Lng: 73.8, ServiceRadiusKm: 50, Reliability: 0.7})
	f.catA = s.AddCatalogEntry(domain.CatalogEntry{
		SupplierID: f.supA.ID, PartNumber: "6205 BB", NormalizedPart: "BALLBEARING6205",
		UnitPrice: decimal.NewFromInt(12), QuantityInStock: stockA, MinOrderQuantity: 1, LeadTimeHours: 4,
	})
	f.catB = s.AddCatalogEntry(domain.CatalogEntry{
		SupplierID: f.supB.ID, PartNumber: "6205-BB", NormalizedPart: "BALLBEARING6205",
		UnitPrice: decimal.NewFromInt(15), QuantityInStock: 100, MinOrderQuantity: 1, LeadTimeHours: 8,
	})
	f.svc = lifecycle.NewService(s, f.em, nil, time.Second, logx.Nop())
	return f
}

func (f *fixture) place(t *testing.T, quantities ...int) *domain.Order {
	t.Helper()
	in := domain.NewOrder{BuyerID: f.buyer.ID, Urgency: domain.UrgencyStandard}
	for _, q := range quantities {
		in.Items = append(in.Items, domain.NewOrderItem{PartNumber: "6205 BB", Quantity: q})
	}
	o, err := f.svc.PlaceOrder(context.Background(), buyer, in)
	require.NoError(t, err)
	return o
}

// propose attaches a PROPOSED assignment to the item and matches it.
func (f *fixture) propose(t *testing.T, itemID int64, cat domain.CatalogEntry, sup domain.Supplier) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	require.NoError(t, f.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		orderID, err := tx.OrderIDByItem(ctx, itemID)
		if err != nil {
			return err
		}
		o, err := tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		it, _ := o.Item(itemID)
		a := domain.Assignment{
			ItemID: itemID, SupplierID: sup.ID, SupplierUserID: sup.UserID, CatalogID: cat.ID,
			UnitPrice: cat.UnitPrice, LineTotal: cat.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
			Score: 0.8, Status: domain.AssignmentProposed,
		}
		if err := tx.InsertAssignment(ctx, &a); err != nil {
			return err
		}
		it.Assignments = append(it.Assignments, a)
		id = a.ID

		var box events.Outbox
		tr := lifecycle.NewTransitioner(tx, o, domain.SystemActor(), time.Now(), &box)
		if it.Status == domain.ItemPending {
			if err := tr.SetItemStatus(ctx, itemID, domain.ItemMatched); err != nil {
				return err
			}
		}
		return tr.Advance(ctx)
	}))
	return id
}

func (f *fixture) order(t *testing.T, id int64) *domain.Order {
	t.Helper()
	d, err := f.svc.GetOrder(context.Background(), id)
	require.NoError(t, err)
	return d.Order
}
