package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"parts-dispatch/internal/apperr"
	"parts-dispatch/internal/domain"
)

type txRepo struct {
	st *state
}

func notFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, apperr.ErrNotFound)
}

func (r *txRepo) FindStock(_ context.Context, normalizedPart string, minQuantity int) ([]domain.SupplierStock, error) {
	var out []domain.SupplierStock
	for _, id := range sortedKeys(r.st.catalog) {
		c := r.st.catalog[id]
		if c.NormalizedPart != normalizedPart || c.QuantityInStock < minQuantity {
			continue
		}
		sp, ok := r.st.suppliers[c.SupplierID]
		if !ok {
			continue
		}
		out = append(out, domain.SupplierStock{
			CatalogEntry:    c,
			SupplierUserID:  sp.UserID,
			SupplierName:    sp.Name,
			Lat:             sp.Lat,
			Lng:             sp.Lng,
			ServiceRadiusKm: sp.ServiceRadiusKm,
			Reliability:     sp.Reliability,
		})
	}
	return out, nil
}

func (r *txRepo) GetSupplier(_ context.Context, id int64) (*domain.Supplier, error) {
	s, ok := r.st.suppliers[id]
	if !ok {
		return nil, notFound("supplier", id)
	}
	return &s, nil
}

func (r *txRepo) GetCatalogEntry(_ context.Context, id int64) (*domain.CatalogEntry, error) {
	c, ok := r.st.catalog[id]
	if !ok {
		return nil, notFound("catalog entry", id)
	}
	return &c, nil
}

func (r *txRepo) GetCatalogEntryForUpdate(ctx context.Context, id int64) (*domain.CatalogEntry, error) {
	return r.GetCatalogEntry(ctx, id)
}

func (r *txRepo) AdjustStock(_ context.Context, catalogID int64, change int, at time.Time) (int, error) {
	c, ok := r.st.catalog[catalogID]
	if !ok {
		return 0, notFound("catalog entry", catalogID)
	}
	if c.QuantityInStock+change < 0 {
		return 0, fmt.Errorf("catalog entry %d: %w", catalogID, apperr.ErrInsufficientStock)
	}
	c.QuantityInStock += change
	c.UpdatedAt = at
	r.st.catalog[catalogID] = c
	return c.QuantityInStock, nil
}

func (r *txRepo) InsertLedger(_ context.Context, e *domain.LedgerEntry) error {
	e.ID = r.st.next()
	r.st.ledger = append(r.st.ledger, *e)
	return nil
}

func (r *txRepo) ListLowStock(_ context.Context, supplierID int64) ([]domain.CatalogEntry, error) {
	var out []domain.CatalogEntry
	for _, id := range sortedKeys(r.st.catalog) {
		c := r.st.catalog[id]
		if !c.LowStock() || (supplierID != 0 && c.SupplierID != supplierID) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].QuantityInStock < out[j].QuantityInStock })
	return out, nil
}

func (r *txRepo) GetBuyer(_ context.Context, id int64) (*domain.Buyer, error) {
	b, ok := r.st.buyers[id]
	if !ok {
		return nil, notFound("buyer", id)
	}
	return &b, nil
}

func (r *txRepo) InsertOrder(_ context.Context, o *domain.Order) error {
	if _, ok := r.st.buyers[o.BuyerID]; !ok {
		return notFound("buyer", o.BuyerID)
	}
	o.ID = r.st.next()
	stored := *o
	stored.Items = nil
	r.st.orders[o.ID] = stored
	for i := range o.Items {
		it := &o.Items[i]
		it.ID = r.st.next()
		it.OrderID = o.ID
		si := *it
		si.Assignments = nil
		r.st.items[it.ID] = si
	}
	return nil
}

func (r *txRepo) GetOrder(_ context.Context, id int64) (*domain.Order, error) {
	return r.loadOrder(id)
}

func (r *txRepo) GetOrderForUpdate(_ context.Context, id int64) (*domain.Order, error) {
	return r.loadOrder(id)
}

func (r *txRepo) loadOrder(id int64) (*domain.Order, error) {
	o, ok := r.st.orders[id]
	if !ok {
		return nil, notFound("order", id)
	}
	b := r.st.buyers[o.BuyerID]
	o.BuyerUserID, o.BuyerLat, o.BuyerLng = b.UserID, b.Lat, b.Lng
	o.Items = nil
	for _, iid := range sortedKeys(r.st.items) {
		it := r.st.items[iid]
		if it.OrderID != id {
			continue
		}
		it.Assignments = nil
		for _, aid := range sortedKeys(r.st.assignments) {
			a := r.st.assignments[aid]
			if a.ItemID == iid {
				a.SupplierUserID = r.st.suppliers[a.SupplierID].UserID
				it.Assignments = append(it.Assignments, a)
			}
		}
		o.Items = append(o.Items, it)
	}
	return &o, nil
}

func (r *txRepo) OrderIDByItem(_ context.Context, itemID int64) (int64, error) {
	it, ok := r.st.items[itemID]
	if !ok {
		return 0, notFound("order item", itemID)
	}
	return it.OrderID, nil
}

func (r *txRepo) OrderIDByAssignment(ctx context.Context, assignmentID int64) (int64, error) {
	a, ok := r.st.assignments[assignmentID]
	if !ok {
		return 0, notFound("assignment", assignmentID)
	}
	return r.OrderIDByItem(ctx, a.ItemID)
}

func (r *txRepo) UpdateOrderStatus(_ context.Context, id int64, status domain.OrderStatus, at time.Time) error {
	o, ok := r.st.orders[id]
	if !ok {
		return notFound("order", id)
	}
	o.Status, o.UpdatedAt = status, at
	r.st.orders[id] = o
	return nil
}

func (r *txRepo) UpdateItemStatus(_ context.Context, id int64, status domain.ItemStatus, at time.Time) error {
	it, ok := r.st.items[id]
	if !ok {
		return notFound("order item", id)
	}
	it.Status, it.UpdatedAt = status, at
	r.st.items[id] = it
	return nil
}

func (r *txRepo) InsertAssignment(_ context.Context, a *domain.Assignment) error {
	if _, ok := r.st.items[a.ItemID]; !ok {
		return notFound("order item", a.ItemID)
	}
	a.ID = r.st.next()
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	}
	r.st.assignments[a.ID] = *a
	return nil
}

func (r *txRepo) UpdateAssignmentStatus(_ context.Context, id int64, status domain.AssignmentStatus, at time.Time) error {
	a, ok := r.st.assignments[id]
	if !ok {
		return notFound("assignment", id)
	}
	a.Status, a.UpdatedAt = status, at
	r.st.assignments[id] = a
	return nil
}

func (r *txRepo) InsertHistory(_ context.Context, h *domain.HistoryEntry) error {
	h.ID = r.st.next()
	r.st.history = append(r.st.history, *h)
	return nil
}

func (r *txRepo) ListHistory(_ context.Context, orderID int64) ([]domain.HistoryEntry, error) {
	var out []domain.HistoryEntry
	for _, h := range r.st.history {
		if h.OrderID == orderID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *txRepo) ReplaceMatchLog(_ context.Context, itemID int64, entries []domain.MatchLogEntry) error {
	stored := make([]domain.MatchLogEntry, len(entries))
	for i := range entries {
		entries[i].ID = r.st.next()
		entries[i].ItemID = itemID
		stored[i] = entries[i]
	}
	r.st.matchLogs[itemID] = stored
	return nil
}

func (r *txRepo) ListMatchLog(_ context.Context, itemID int64) ([]domain.MatchLogEntry, error) {
	out := append([]domain.MatchLogEntry(nil), r.st.matchLogs[itemID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

func (r *txRepo) scheduledOn(assignmentID int64) *int64 {
	for _, sid := range sortedKeys(r.st.stops) {
		s := r.st.stops[sid]
		if s.AssignmentID == assignmentID {
			id := s.DeliveryID
			return &id
		}
	}
	return nil
}

func (r *txRepo) assignmentContext(a domain.Assignment) domain.AssignmentContext {
	it := r.st.items[a.ItemID]
	o := r.st.orders[it.OrderID]
	b := r.st.buyers[o.BuyerID]
	sp := r.st.suppliers[a.SupplierID]
	a.SupplierUserID = sp.UserID
	return domain.AssignmentContext{
		Assignment:    a,
		ItemID:        it.ID,
		OrderID:       o.ID,
		OrderStatus:   o.Status,
		PartNumber:    it.PartNumber,
		Quantity:      it.Quantity,
		BuyerUserID:   b.UserID,
		BuyerLat:      b.Lat,
		BuyerLng:      b.Lng,
		RequiredBy:    o.RequiredBy,
		SupplierLat:   sp.Lat,
		SupplierLng:   sp.Lng,
		LeadTimeHours: r.st.catalog[a.CatalogID].LeadTimeHours,
		ScheduledOnID: r.scheduledOn(a.ID),
	}
}

func (r *txRepo) AssignmentContexts(_ context.Context, assignmentIDs []int64) ([]domain.AssignmentContext, error) {
	out := make([]domain.AssignmentContext, 0, len(assignmentIDs))
	for _, id := range assignmentIDs {
		a, ok := r.st.assignments[id]
		if !ok {
			return nil, notFound("assignment", id)
		}
		out = append(out, r.assignmentContext(a))
	}
	return out, nil
}

func (r *txRepo) AvailableAssignments(_ context.Context) ([]domain.AssignmentContext, error) {
	var out []domain.AssignmentContext
	for _, id := range sortedKeys(r.st.assignments) {
		a := r.st.assignments[id]
		if a.Status != domain.AssignmentAccepted && a.Status != domain.AssignmentProposed {
			continue
		}
		c := r.assignmentContext(a)
		if c.OrderStatus != domain.OrderConfirmed || c.ScheduledOnID != nil {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *txRepo) InsertDelivery(_ context.Context, d *domain.Delivery) error {
	d.ID = r.st.next()
	stored := *d
	stored.Stops = nil
	r.st.deliveries[d.ID] = stored
	for i := range d.Stops {
		s := &d.Stops[i]
		s.ID = r.st.next()
		s.DeliveryID = d.ID
		r.st.stops[s.ID] = *s
	}
	return nil
}

func (r *txRepo) GetDelivery(_ context.Context, id int64) (*domain.Delivery, error) {
	return r.loadDelivery(id)
}

func (r *txRepo) GetDeliveryForUpdate(_ context.Context, id int64) (*domain.Delivery, error) {
	return r.loadDelivery(id)
}

func (r *txRepo) loadDelivery(id int64) (*domain.Delivery, error) {
	d, ok := r.st.deliveries[id]
	if !ok {
		return nil, notFound("delivery", id)
	}
	d.Stops = nil
	for _, sid := range sortedKeys(r.st.stops) {
		if s := r.st.stops[sid]; s.DeliveryID == id {
			d.Stops = append(d.Stops, s)
		}
	}
	sort.SliceStable(d.Stops, func(i, j int) bool { return d.Stops[i].Sequence < d.Stops[j].Sequence })
	d.LatestETA = nil
	for i := len(r.st.etaLogs) - 1; i >= 0; i-- {
		if e := r.st.etaLogs[i]; e.DeliveryID == id {
			eta := e.ETA
			d.LatestETA = &eta
			break
		}
	}
	return &d, nil
}

func (r *txRepo) UpdateDeliveryStatus(_ context.Context, id int64, status domain.DeliveryStatus, at time.Time) error {
	d, ok := r.st.deliveries[id]
	if !ok {
		return notFound("delivery", id)
	}
	d.Status, d.UpdatedAt = status, at
	r.st.deliveries[id] = d
	return nil
}

func (r *txRepo) UpdateStopETAs(_ context.Context, deliveryID int64, stops []domain.DeliveryStop) error {
	for _, s := range stops {
		cur, ok := r.st.stops[s.ID]
		if !ok || cur.DeliveryID != deliveryID {
			return notFound("delivery stop", s.ID)
		}
		cur.ETA = s.ETA
		r.st.stops[s.ID] = cur
	}
	return nil
}

func (r *txRepo) InsertEtaLog(_ context.Context, e *domain.EtaLogEntry) error {
	if _, ok := r.st.deliveries[e.DeliveryID]; !ok {
		return notFound("delivery", e.DeliveryID)
	}
	e.ID = r.st.next()
	r.st.etaLogs = append(r.st.etaLogs, *e)
	return nil
}

func (r *txRepo) DeliveryStats(_ context.Context) (domain.DeliveryStats, error) {
	var (
		s                   domain.DeliveryStats
		dist, dur, pctTotal float64
	)
	for _, d := range r.st.deliveries {
		s.Count++
		dist += d.TotalDistanceKm
		dur += d.TotalDurationMin
		if d.Type == domain.DeliveryBatched {
			s.BatchedCount++
			s.TotalSavingsKm += d.SavingsKm()
			pctTotal += d.SavingsPercent()
		}
	}
	if s.Count > 0 {
		s.AvgDistanceKm = dist / float64(s.Count)
		s.AvgDurationMin = dur / float64(s.Count)
	}
	if s.BatchedCount > 0 {
		s.AvgSavingsPercent = pctTotal / float64(s.BatchedCount)
	}
	return s, nil
}

func (r *txRepo) InsertEvent(_ context.Context, e domain.Event) error {
	for _, existing := range r.st.events {
		if existing.ID == e.ID {
			return nil
		}
	}
	r.st.events = append(r.st.events, e)
	return nil
}

func (r *txRepo) InsertNotifications(_ context.Context, e domain.Event) error {
	for _, uid := range e.TargetUserIDs {
		r.st.notifications = append(r.st.notifications, domain.Notification{
			ID:        r.st.next(),
			UserID:    uid,
			EventID:   e.ID,
			EventType: e.Type,
			Payload:   e.Payload,
			CreatedAt: e.OccurredAt,
		})
	}
	return nil
}

func (r *txRepo) ListNotifications(_ context.Context, userID int64, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	for i := len(r.st.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if n := r.st.notifications[i]; n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}
