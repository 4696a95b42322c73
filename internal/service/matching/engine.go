// Package matching ranks supplier stock for order items and proposes winners.
package matching

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"parts-dispatch/internal/apperr"
	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/events"
	"parts-dispatch/internal/geo"
	"parts-dispatch/internal/logx"
	"parts-dispatch/internal/ports/dispatchtx"
	"parts-dispatch/internal/service/lifecycle"
)

const (
	radiusStepKm    = 50.0
	radiusCeilingKm = 500.0
	lookupLimit     = 4
)

// Engine - supplier matching use cases.
type Engine struct {
	repo             txRunner
	catalog          stockFinder
	router           distanceMatrix
	profiles         *Profiles
	emitter          emitter
	duration         observer
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewEngine - creates a matching Engine. duration may be nil.
func NewEngine(
	repo txRunner,
	catalog stockFinder,
	router distanceMatrix,
	profiles *Profiles,
	em emitter,
	duration observer,
	timeout time.Duration,
	logger logx.Logger,
) *Engine {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if profiles == nil {
		profiles = NewProfiles(domain.DefaultWeightProfiles())
	}
	return &Engine{
		repo:             repo,
		catalog:          catalog,
		router:           router,
		profiles:         profiles,
		emitter:          em,
		duration:         duration,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, e.operationTimeout)
}

// Profiles returns the weight profiles the engine scores with.
func (e *Engine) Profiles() *Profiles { return e.profiles }

// RunMatching scores every PENDING item of the order and proposes the winner of each,
// replacing the item's earlier proposals and match log. Items past PENDING are left alone.
func (e *Engine) RunMatching(ctx context.Context, orderID int64, actor domain.Actor) ([]ItemResult, error) {
	start := time.Now()
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	o, err := e.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.Privileged() && (actor.Role != domain.RoleBuyer || actor.UserID != o.BuyerUserID) {
		return nil, fmt.Errorf("%w: cannot run matching for order %d", apperr.ErrForbidden, o.ID)
	}

	items := pendingItems(o)
	if len(items) == 0 {
		return []ItemResult{}, nil
	}
	scored, err := e.score(ctx, o, items, true)
	if err != nil {
		return nil, err
	}

	now := e.now()
	var (
		box        events.Outbox
		assigned   = make(map[int64]int64)
		matchedIDs []int64
	)
	err = e.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		locked, err := tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		t := lifecycle.NewTransitioner(tx, locked, actor, now, &box)
		winners := []int64{locked.BuyerUserID}

		for i := range locked.Items {
			it := &locked.Items[i]
			ranked, ok := scored[it.ID]
			// state may have moved on while candidates were scored
			if !ok || it.Status != domain.ItemPending {
				continue
			}
			if err := tx.ReplaceMatchLog(ctx, it.ID, matchLog(ranked, now)); err != nil {
				return err
			}
			if len(ranked) == 0 {
				continue
			}
			id, err := propose(ctx, tx, t, it, ranked[0], now)
			if err != nil {
				return err
			}
			assigned[it.ID] = id
			matchedIDs = append(matchedIDs, it.ID)
			winners = append(winners, ranked[0].SupplierUserID)
		}
		if err := t.Advance(ctx); err != nil {
			return err
		}
		if len(matchedIDs) > 0 {
			box.Add(domain.NewEvent(domain.EventSupplierMatched, domain.EntityOrder, locked.ID, map[string]any{
				"order_id":       locked.ID,
				"order_item_ids": matchedIDs,
				"status":         string(locked.Status),
			}, domain.UniqueIDs(winners), now))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if e.emitter != nil {
		e.emitter.Emit(ctx, box.Events()...)
	}

	results := e.results(items, scored)
	for i := range results {
		results[i].AssignmentID = assigned[results[i].ItemID]
	}
	if e.duration != nil {
		e.duration.Observe(time.Since(start).Seconds())
	}
	e.logger.Info("order matched",
		logx.String("event", "supplier_matched"),
		logx.Int64("order_id", orderID),
		logx.Int("items_scored", len(items)),
		logx.Int("items_matched", len(matchedIDs)),
		logx.Duration("took", time.Since(start)),
	)
	return results, nil
}

// propose supersedes the item's PROPOSED assignments with one for the winner and marks the item MATCHED.
func propose(ctx context.Context, tx dispatchtx.Repository, t *lifecycle.Transitioner, it *domain.OrderItem, w Match, now time.Time) (int64, error) {
	for j := range it.Assignments {
		if it.Assignments[j].Status == domain.AssignmentProposed {
			if err := t.SetAssignmentStatus(ctx, &it.Assignments[j], domain.AssignmentRejected); err != nil {
				return 0, err
			}
		}
	}
	a := domain.Assignment{
		ItemID:         it.ID,
		SupplierID:     w.SupplierID,
		SupplierUserID: w.SupplierUserID,
		CatalogID:      w.CatalogID,
		UnitPrice:      w.UnitPrice,
		LineTotal:      w.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
		Score:          w.TotalScore,
		Status:         domain.AssignmentProposed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := tx.InsertAssignment(ctx, &a); err != nil {
		return 0, err
	}
	it.Assignments = append(it.Assignments, a)
	if it.Status == domain.ItemPending {
		if err := t.SetItemStatus(ctx, it.ID, domain.ItemMatched); err != nil {
			return 0, err
		}
	}
	return a.ID, nil
}

// SimulateOrder scores every uncommitted item of the order, MATCHED ones included,
// without persisting anything.
func (e *Engine) SimulateOrder(ctx context.Context, orderID int64) ([]ItemResult, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	o, err := e.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items := openItems(o)
	if len(items) == 0 {
		return []ItemResult{}, nil
	}
	scored, err := e.score(ctx, o, items, true)
	if err != nil {
		return nil, err
	}
	return e.results(items, scored), nil
}

// SimulateItem scores one item on its own. No consolidation bonus applies.
func (e *Engine) SimulateItem(ctx context.Context, itemID int64) (ItemResult, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	var o *domain.Order
	err := e.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		orderID, err := tx.OrderIDByItem(ctx, itemID)
		if err != nil {
			return err
		}
		o, err = tx.GetOrder(ctx, orderID)
		return err
	})
	if err != nil {
		return ItemResult{}, err
	}
	it, ok := o.Item(itemID)
	if !ok {
		return ItemResult{}, fmt.Errorf("%w: order item %d", apperr.ErrNotFound, itemID)
	}

	scored, err := e.score(ctx, o, []domain.OrderItem{*it}, false)
	if err != nil {
		return ItemResult{}, err
	}
	return newItemResult(itemID, scored[itemID]), nil
}

// MatchLog returns the audit log of the item's last matching pass, best rank first.
func (e *Engine) MatchLog(ctx context.Context, itemID int64) ([]domain.MatchLogEntry, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	var out []domain.MatchLogEntry
	err := e.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		if _, err := tx.OrderIDByItem(ctx, itemID); err != nil {
			return err
		}
		var err error
		out, err = tx.ListMatchLog(ctx, itemID)
		return err
	})
	return out, err
}

func (e *Engine) loadOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	var o *domain.Order
	err := e.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		var err error
		o, err = tx.GetOrder(ctx, orderID)
		return err
	})
	return o, err
}

// score discovers and scores candidates for every item concurrently, then ranks them.
func (e *Engine) score(ctx context.Context, o *domain.Order, items []domain.OrderItem, bonus bool) (map[int64][]Match, error) {
	var (
		mu  sync.Mutex
		out = make(map[int64][]Match, len(items))
		w   = e.profiles.For(o.Urgency)
		now = e.now()
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupLimit)
	for _, it := range items {
		g.Go(func() error {
			cands, err := e.discover(gctx, o.BuyerLocation(), it)
			if err != nil {
				return fmt.Errorf("item %d: %w", it.ID, err)
			}
			if len(cands) == 0 {
				e.logger.Debug("no supplier candidates",
					logx.String("event", "match_no_candidates"),
					logx.Int64("order_id", o.ID),
					logx.Int64("item_id", it.ID),
					logx.String("part_number", it.PartNumber),
				)
			}
			ms := scoreItem(cands, w, o.RequiredBy, now)
			mu.Lock()
			out[it.ID] = ms
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if bonus {
		applyConsolidationBonus(out)
	}
	for _, ms := range out {
		rank(ms)
	}
	return out, nil
}

// discover looks up stock for the item and keeps the suppliers close enough to serve the buyer.
func (e *Engine) discover(ctx context.Context, buyer geo.Point, it domain.OrderItem) ([]Candidate, error) {
	stocks, err := e.catalog.FindStock(ctx, NormalizePart(it.PartNumber), it.Quantity)
	if err != nil {
		return nil, err
	}
	if len(stocks) == 0 {
		return nil, nil
	}

	points := make([]geo.Point, 0, len(stocks)+1)
	points = append(points, buyer)
	for _, s := range stocks {
		points = append(points, s.Location())
	}
	m, err := e.router.Matrix(ctx, points)
	if err != nil {
		return nil, err
	}
	if m.Size() != len(points) || len(m.DistancesKm) == 0 || len(m.DistancesKm[0]) != len(points) {
		return nil, fmt.Errorf("distance matrix has %d rows, want %d", m.Size(), len(points))
	}

	cands := make([]Candidate, 0, len(stocks))
	for i, s := range stocks {
		cands = append(cands, Candidate{Stock: s, DistanceKm: m.DistancesKm[0][i+1]})
	}
	return withinReach(cands), nil
}

// withinReach keeps candidates inside their own service radius. When none are, it widens
// the accepted distance in steps up to the ceiling and stops at the first non-empty set.
func withinReach(cands []Candidate) []Candidate {
	if got := filterRadius(cands, 0); len(got) > 0 {
		return got
	}
	for r := radiusStepKm; r <= radiusCeilingKm; r += radiusStepKm {
		if got := filterRadius(cands, r); len(got) > 0 {
			return got
		}
	}
	return nil
}

func filterRadius(cands []Candidate, radius float64) []Candidate {
	var out []Candidate
	for _, c := range cands {
		if c.DistanceKm <= math.Max(radius, c.Stock.ServiceRadiusKm) {
			out = append(out, c)
		}
	}
	return out
}

func (e *Engine) results(items []domain.OrderItem, scored map[int64][]Match) []ItemResult {
	out := make([]ItemResult, 0, len(items))
	for _, it := range items {
		out = append(out, newItemResult(it.ID, scored[it.ID]))
	}
	return out
}

// open reports whether an item is still uncommitted and worth scoring.
func open(it domain.OrderItem) bool {
	if it.Status != domain.ItemPending && it.Status != domain.ItemMatched {
		return false
	}
	_, committed := it.Committed()
	return !committed
}

// pendingItems returns the items still waiting for a proposal. Items that are
// already MATCHED keep their proposal until the supplier answers it.
func pendingItems(o *domain.Order) []domain.OrderItem {
	var out []domain.OrderItem
	for _, it := range o.Items {
		if it.Status == domain.ItemPending {
			out = append(out, it)
		}
	}
	return out
}

func openItems(o *domain.Order) []domain.OrderItem {
	var out []domain.OrderItem
	for _, it := range o.Items {
		if open(it) {
			out = append(out, it)
		}
	}
	return out
}
