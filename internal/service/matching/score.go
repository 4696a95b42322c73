package matching

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"parts-dispatch/internal/domain"
)

const (
	singleCandidateMaxKm = 500.0
	noDeadlineHours      = 168.0
	transitKmPerHour     = 50.0
	consolidationBonus   = 0.10
	topMatches           = 3
)

// Candidate is a supplier stock row together with its road distance from the buyer.
type Candidate struct {
	Stock      domain.SupplierStock
	DistanceKm float64
}

// Match is a scored candidate.
type Match struct {
	SupplierID         int64           `json:"supplier_id"`
	SupplierUserID     int64           `json:"supplier_user_id"`
	SupplierName       string          `json:"supplier_name"`
	CatalogID          int64           `json:"catalog_id"`
	PartNumber         string          `json:"part_number"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	QuantityInStock    int             `json:"quantity_in_stock"`
	LeadTimeHours      int             `json:"lead_time_hours"`
	DistanceKm         float64         `json:"distance_km"`
	DistanceScore      float64         `json:"distance_score"`
	ReliabilityScore   float64         `json:"reliability_score"`
	PriceScore         float64         `json:"price_score"`
	UrgencyScore       float64         `json:"urgency_score"`
	ConsolidationBonus float64         `json:"consolidation_bonus"`
	TotalScore         float64         `json:"total_score"`
}

// ItemResult is the outcome of matching one order item.
type ItemResult struct {
	ItemID             int64   `json:"order_item_id"`
	Ranked             []Match `json:"-"`
	TopMatches         []Match `json:"top_matches"`
	SelectedSupplierID *int64  `json:"selected_supplier_id"`
	AssignmentID       int64   `json:"assignment_id,omitempty"`
}

// Winner returns the top ranked match.
func (r ItemResult) Winner() (Match, bool) {
	if len(r.Ranked) == 0 {
		return Match{}, false
	}
	return r.Ranked[0], true
}

// scoreItem scores candidates for one item against each other.
func scoreItem(cands []Candidate, w domain.WeightProfile, requiredBy *time.Time, now time.Time) []Match {
	if len(cands) == 0 {
		return nil
	}

	maxKm := singleCandidateMaxKm
	if len(cands) > 1 {
		maxKm = 0
		for _, c := range cands {
			maxKm = math.Max(maxKm, c.DistanceKm)
		}
		if maxKm == 0 {
			maxKm = 1
		}
	}
	maxPrice := 0.0
	for _, c := range cands {
		maxPrice = math.Max(maxPrice, c.Stock.UnitPrice.InexactFloat64())
	}
	if maxPrice == 0 {
		maxPrice = 1
	}

	out := make([]Match, 0, len(cands))
	for _, c := range cands {
		price := c.Stock.UnitPrice.InexactFloat64()
		m := Match{
			SupplierID:       c.Stock.SupplierID,
			SupplierUserID:   c.Stock.SupplierUserID,
			SupplierName:     c.Stock.SupplierName,
			CatalogID:        c.Stock.ID,
			PartNumber:       c.Stock.PartNumber,
			UnitPrice:        c.Stock.UnitPrice,
			QuantityInStock:  c.Stock.QuantityInStock,
			LeadTimeHours:    c.Stock.LeadTimeHours,
			DistanceKm:       c.DistanceKm,
			DistanceScore:    clamp01((maxKm - c.DistanceKm) / maxKm),
			ReliabilityScore: clamp01(c.Stock.Reliability),
			PriceScore:       clamp01((maxPrice - price) / maxPrice),
			UrgencyScore:     urgencyScore(requiredBy, now, c.DistanceKm, float64(c.Stock.LeadTimeHours)),
		}
		m.TotalScore = w.Distance*m.DistanceScore +
			w.Reliability*m.ReliabilityScore +
			w.Price*m.PriceScore +
			w.Urgency*m.UrgencyScore
		out = append(out, m)
	}
	return out
}

// urgencyScore fits the lead time into the hours left before the deadline once transit is subtracted.
func urgencyScore(requiredBy *time.Time, now time.Time, distanceKm, leadHours float64) float64 {
	headroom := noDeadlineHours
	if requiredBy != nil {
		headroom = requiredBy.Sub(now).Hours()
	}
	headroom -= distanceKm / transitKmPerHour
	if headroom <= 0 || leadHours > headroom {
		return 0
	}
	return clamp01(1 - leadHours/headroom)
}

// applyConsolidationBonus rewards suppliers that can serve every item that has candidates.
// It needs at least two such items.
func applyConsolidationBonus(results map[int64][]Match) {
	var common map[int64]struct{}
	items := 0
	for _, ms := range results {
		if len(ms) == 0 {
			continue
		}
		items++
		set := make(map[int64]struct{}, len(ms))
		for _, m := range ms {
			if common == nil {
				set[m.SupplierID] = struct{}{}
				continue
			}
			if _, ok := common[m.SupplierID]; ok {
				set[m.SupplierID] = struct{}{}
			}
		}
		common = set
	}
	if items < 2 || len(common) == 0 {
		return
	}

	for _, ms := range results {
		for i := range ms {
			if _, ok := common[ms[i].SupplierID]; !ok {
				continue
			}
			boosted := math.Min(1, ms[i].TotalScore+consolidationBonus)
			ms[i].ConsolidationBonus = boosted - ms[i].TotalScore
			ms[i].TotalScore = boosted
		}
	}
}

// rank orders matches by score, then distance, then price.
func rank(ms []Match) {
	sort.SliceStable(ms, func(i, j int) bool {
		a, b := ms[i], ms[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if a.DistanceKm != b.DistanceKm {
			return a.DistanceKm < b.DistanceKm
		}
		if !a.UnitPrice.Equal(b.UnitPrice) {
			return a.UnitPrice.LessThan(b.UnitPrice)
		}
		return a.CatalogID < b.CatalogID
	})
}

func newItemResult(itemID int64, ranked []Match) ItemResult {
	r := ItemResult{ItemID: itemID, Ranked: ranked, TopMatches: ranked[:min(len(ranked), topMatches)]}
	if w, ok := r.Winner(); ok {
		id := w.SupplierID
		r.SelectedSupplierID = &id
	}
	return r
}

func matchLog(ranked []Match, at time.Time) []domain.MatchLogEntry {
	out := make([]domain.MatchLogEntry, 0, len(ranked))
	for i, m := range ranked {
		out = append(out, domain.MatchLogEntry{
			SupplierID:         m.SupplierID,
			CatalogID:          m.CatalogID,
			DistanceKm:         m.DistanceKm,
			DistanceScore:      m.DistanceScore,
			ReliabilityScore:   m.ReliabilityScore,
			PriceScore:         m.PriceScore,
			UrgencyScore:       m.UrgencyScore,
			ConsolidationBonus: m.ConsolidationBonus,
			TotalScore:         m.TotalScore,
			Rank:               i + 1,
			CreatedAt:          at,
		})
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
