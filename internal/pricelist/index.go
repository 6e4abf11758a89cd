package pricelist

import (
	"github.com/google/uuid"

	"github.com/prijslijst/pricelist-backend/pkg/db/models"
	"github.com/prijslijst/pricelist-backend/pkg/enums"
)

// Rule captures the effective availability of one kind or product in a shop:
// whether the row is active and which tiers are both enabled and priced.
type Rule struct {
	Active bool
	Tiers  map[enums.PriceTier]float64
}

// HasTier reports whether the tier is sellable under this rule.
func (r Rule) HasTier(tier enums.PriceTier) bool {
	if !r.Active {
		return false
	}
	_, ok := r.Tiers[tier]
	return ok
}

// Index is the per-shop availability lookup keyed by kind or product id.
// A missing key means the shop does not carry the item at all.
type Index map[uuid.UUID]Rule

// Lookup returns the rule for the given item id.
func (idx Index) Lookup(id uuid.UUID) (Rule, bool) {
	rule, ok := idx[id]
	return rule, ok
}

// BuildIndex folds ShopToPrice rows (with their price templates preloaded)
// into an availability index. A tier is included only when the shop enables
// it and the template carries a non-nil amount for it.
func BuildIndex(rows []models.ShopToPrice) Index {
	idx := make(Index, len(rows))
	for _, row := range rows {
		var key uuid.UUID
		switch {
		case row.KindID != nil:
			key = *row.KindID
		case row.ProductID != nil:
			key = *row.ProductID
		default:
			continue
		}
		rule := Rule{Active: row.Active, Tiers: effectiveTiers(row)}
		idx[key] = rule
	}
	return idx
}

func effectiveTiers(row models.ShopToPrice) map[enums.PriceTier]float64 {
	tiers := make(map[enums.PriceTier]float64, 6)
	if row.Price == nil {
		return tiers
	}
	put := func(enabled bool, tier enums.PriceTier, amount *float64) {
		if enabled && amount != nil {
			tiers[tier] = *amount
		}
	}
	put(row.UseHalf, enums.PriceTierHalf, row.Price.Half)
	put(row.UseOne, enums.PriceTierOne, row.Price.One)
	put(row.UseTwoFive, enums.PriceTierTwoFive, row.Price.TwoFive)
	put(row.UseFive, enums.PriceTierFive, row.Price.Five)
	put(row.UseJoint, enums.PriceTierJoint, row.Price.Joint)
	put(row.UsePiece, enums.PriceTierPiece, row.Price.Piece)
	return tiers
}
