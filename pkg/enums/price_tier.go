package enums

import "fmt"

// PriceTier represents the canonical quantity tiers carried by a price template.
type PriceTier string

const (
	PriceTierHalf    PriceTier = "half"
	PriceTierOne     PriceTier = "one"
	PriceTierTwoFive PriceTier = "two_five"
	PriceTierFive    PriceTier = "five"
	PriceTierJoint   PriceTier = "joint"
	PriceTierPiece   PriceTier = "piece"
)

var validPriceTiers = []PriceTier{
	PriceTierHalf,
	PriceTierOne,
	PriceTierTwoFive,
	PriceTierFive,
	PriceTierJoint,
	PriceTierPiece,
}

// tierPrecedence orders tiers for price-list rendering. Lower ranks first.
var tierPrecedence = map[PriceTier]int{
	PriceTierPiece:   0,
	PriceTierJoint:   1,
	PriceTierOne:     2,
	PriceTierFive:    3,
	PriceTierHalf:    4,
	PriceTierTwoFive: 5,
}

// String implements fmt.Stringer.
func (t PriceTier) String() string {
	return string(t)
}

// IsValid reports whether the value is a known PriceTier.
func (t PriceTier) IsValid() bool {
	for _, candidate := range validPriceTiers {
		if candidate == t {
			return true
		}
	}
	return false
}

// Rank returns the rendering precedence for the tier. Unknown tiers sort last.
func (t PriceTier) Rank() int {
	if rank, ok := tierPrecedence[t]; ok {
		return rank
	}
	return len(tierPrecedence)
}

// ParsePriceTier converts raw input into a PriceTier.
func ParsePriceTier(value string) (PriceTier, error) {
	for _, candidate := range validPriceTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price tier %q", value)
}
