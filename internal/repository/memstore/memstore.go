// Package memstore is an in-memory dispatch store used as test support by the
// service packages; production wiring always uses the PostgreSQL store. Transactions
// are serialized and applied atomically, which gives the same isolation the service
// layer relies on from row locks in PostgreSQL.
package memstore

import (
	"context"
	"sort"
	"sync"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/ports/dispatchtx"
)

// Store is an in-memory implementation of dispatchtx.Runner.
type Store struct {
	mu sync.Mutex
	st *state
}

// New returns an empty store.
func New() *Store {
	return &Store{st: newState()}
}

var (
	_ dispatchtx.Runner        = (*Store)(nil)
	_ dispatchtx.CatalogLookup = (*Store)(nil)
	_ dispatchtx.Repository    = (*txRepo)(nil)
)

// WithTx runs fn against a private copy of the state and publishes it when fn succeeds.
func (s *Store) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.st.clone()
	if err := fn(&txRepo{st: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// FindStock runs a catalog lookup outside of a transaction.
func (s *Store) FindStock(ctx context.Context, normalizedPart string, minQuantity int) ([]domain.SupplierStock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txRepo{st: s.st}).FindStock(ctx, normalizedPart, minQuantity)
}

// AddBuyer stores a buyer and returns it with its id.
func (s *Store) AddBuyer(b domain.Buyer) domain.Buyer {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.st.next()
	s.st.buyers[b.ID] = b
	return b
}

// AddSupplier stores a supplier and returns it with its id.
func (s *Store) AddSupplier(sp domain.Supplier) domain.Supplier {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp.ID = s.st.next()
	s.st.suppliers[sp.ID] = sp
	return sp
}

// AddCatalogEntry stores a catalog row and returns it with its id.
func (s *Store) AddCatalogEntry(c domain.CatalogEntry) domain.CatalogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.st.next()
	s.st.catalog[c.ID] = c
	return c
}

// CatalogEntry returns a committed catalog row.
func (s *Store) CatalogEntry(id int64) (domain.CatalogEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.st.catalog[id]
	return c, ok
}

// Ledger returns every committed ledger row.
func (s *Store) Ledger() []domain.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.LedgerEntry(nil), s.st.ledger...)
}

// Events returns every committed event in insertion order.
func (s *Store) Events() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Event(nil), s.st.events...)
}

// EtaLogs returns the committed ETA log of a delivery.
func (s *Store) EtaLogs(deliveryID int64) []domain.EtaLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.EtaLogEntry
	for _, e := range s.st.etaLogs {
		if e.DeliveryID == deliveryID {
			out = append(out, e)
		}
	}
	return out
}

// Deliveries returns the ids of every committed delivery.
func (s *Store) Deliveries() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.st.deliveries))
	for id := range s.st.deliveries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type state struct {
	seq           int64
	buyers        map[int64]domain.Buyer
	suppliers     map[int64]domain.Supplier
	catalog       map[int64]domain.CatalogEntry
	ledger        []domain.LedgerEntry
	orders        map[int64]domain.Order
	items         map[int64]domain.OrderItem
	assignments   map[int64]domain.Assignment
	history       []domain.HistoryEntry
	matchLogs     map[int64][]domain.MatchLogEntry
	deliveries    map[int64]domain.Delivery
	stops         map[int64]domain.DeliveryStop
	etaLogs       []domain.EtaLogEntry
	events        []domain.Event
	notifications []domain.Notification
}

func newState() *state {
	return &state{
		buyers:      map[int64]domain.Buyer{},
		suppliers:   map[int64]domain.Supplier{},
		catalog:     map[int64]domain.CatalogEntry{},
		orders:      map[int64]domain.Order{},
		items:       map[int64]domain.OrderItem{},
		assignments: map[int64]domain.Assignment{},
		matchLogs:   map[int64][]domain.MatchLogEntry{},
		deliveries:  map[int64]domain.Delivery{},
		stops:       map[int64]domain.DeliveryStop{},
	}
}

func (s *state) next() int64 {
	s.seq++
	return s.seq
}

func (s *state) clone() *state {
	c := &state{
		seq:           s.seq,
		buyers:        cloneMap(s.buyers),
		suppliers:     cloneMap(s.suppliers),
		catalog:       cloneMap(s.catalog),
		ledger:        append([]domain.LedgerEntry(nil), s.ledger...),
		orders:        cloneMap(s.orders),
		items:         cloneMap(s.items),
		assignments:   cloneMap(s.assignments),
		history:       append([]domain.HistoryEntry(nil), s.history...),
		matchLogs:     make(map[int64][]domain.MatchLogEntry, len(s.matchLogs)),
		deliveries:    cloneMap(s.deliveries),
		stops:         cloneMap(s.stops),
		etaLogs:       append([]domain.EtaLogEntry(nil), s.etaLogs...),
		events:        append([]domain.Event(nil), s.events...),
		notifications: append([]domain.Notification(nil), s.notifications...),
	}
	for k, v := range s.matchLogs {
		c.matchLogs[k] = append([]domain.MatchLogEntry(nil), v...)
	}
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
