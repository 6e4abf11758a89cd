package orders

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prijslijst/pricelist-backend/internal/pricelist"
	"github.com/prijslijst/pricelist-backend/pkg/enums"
	"github.com/prijslijst/pricelist-backend/pkg/types"
)

// gramsPerLabel maps the quantity labels used on order lines to cannabis
// weight in grams. Labels use Dutch decimal commas as printed on menus.
var gramsPerLabel = map[string]float64{
	"0,5 gram": 0.5,
	"1 gram":   1,
	"2,5 gram": 2.5,
	"5 gram":   5,
	"1 joint":  0.4,
	"joint":    0.4,
}

// tierPerLabel maps quantity labels to the price tier they are sold under.
var tierPerLabel = map[string]enums.PriceTier{
	"0,5 gram": enums.PriceTierHalf,
	"1 gram":   enums.PriceTierOne,
	"2,5 gram": enums.PriceTierTwoFive,
	"5 gram":   enums.PriceTierFive,
	"1 joint":  enums.PriceTierJoint,
	"joint":    enums.PriceTierJoint,
}

// CannabisWeight sums the cannabis grams carried by the order lines.
// Lines with unrecognized labels contribute zero.
func CannabisWeight(lines types.OrderLines) float64 {
	var total float64
	for _, line := range lines {
		if grams, ok := gramsPerLabel[normalizeLabel(line.Description)]; ok {
			total += grams * float64(line.Quantity)
		}
	}
	return total
}

// TierForDescription resolves the price tier an order line is sold under.
// Unrecognized labels fall back to the piece tier (horeca items).
func TierForDescription(description string) enums.PriceTier {
	if tier, ok := tierPerLabel[normalizeLabel(description)]; ok {
		return tier
	}
	return enums.PriceTierPiece
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// UnavailableLine reports the first order line the shop cannot sell: the
// referenced item is missing from the index, marked inactive, or the line's
// tier is not enabled and priced. The returned name is the customer-facing
// display name; ok is false when every line is available.
func UnavailableLine(lines types.OrderLines, idx pricelist.Index) (string, bool) {
	for _, line := range lines {
		var key uuid.UUID
		switch {
		case line.KindID != nil:
			key = *line.KindID
		case line.ProductID != nil:
			key = *line.ProductID
		default:
			return line.DisplayName(), true
		}
		rule, found := idx.Lookup(key)
		if !found || !rule.HasTier(TierForDescription(line.Description)) {
			return line.DisplayName(), true
		}
	}
	return "", false
}

// TotalMatches verifies the submitted total against the recomputed sum of
// line price times quantity, using decimals to avoid float drift.
func TotalMatches(lines types.OrderLines, submitted float64) bool {
	sum := decimal.Zero
	for _, line := range lines {
		price := decimal.NewFromFloat(line.Price)
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return sum.Round(2).Equal(decimal.NewFromFloat(submitted).Round(2))
}
