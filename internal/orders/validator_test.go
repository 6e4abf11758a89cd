package orders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prijslijst/pricelist-backend/internal/pricelist"
	"github.com/prijslijst/pricelist-backend/pkg/enums"
	"github.com/prijslijst/pricelist-backend/pkg/types"
)

func line(desc string, price float64, qty int, kindID *uuid.UUID, productID *uuid.UUID) types.OrderLine {
	return types.OrderLine{
		Description: desc,
		Price:       price,
		Quantity:    qty,
		KindID:      kindID,
		ProductID:   productID,
	}
}

func TestCannabisWeight(t *testing.T) {
	kindID := uuid.New()
	productID := uuid.New()

	tests := []struct {
		name  string
		lines types.OrderLines
		want  float64
	}{
		{
			name:  "single gram",
			lines: types.OrderLines{line("1 gram", 10, 1, &kindID, nil)},
			want:  1,
		},
		{
			name:  "comma labels",
			lines: types.OrderLines{line("0,5 gram", 6, 2, &kindID, nil), line("2,5 gram", 22, 1, &kindID, nil)},
			want:  3.5,
		},
		{
			name:  "joints count for 0.4",
			lines: types.OrderLines{line("1 joint", 5, 2, &kindID, nil), line("joint", 5, 1, &kindID, nil)},
			want:  1.2,
		},
		{
			name:  "horeca lines contribute nothing",
			lines: types.OrderLines{line("Cola", 2.5, 4, nil, &productID), line("5 gram", 40, 1, &kindID, nil)},
			want:  5,
		},
		{
			name:  "label casing and padding normalized",
			lines: types.OrderLines{line("  1 Gram ", 10, 1, &kindID, nil)},
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CannabisWeight(tt.lines), 1e-9)
		})
	}
}

func TestTierForDescription(t *testing.T) {
	assert.Equal(t, enums.PriceTierHalf, TierForDescription("0,5 gram"))
	assert.Equal(t, enums.PriceTierOne, TierForDescription("1 gram"))
	assert.Equal(t, enums.PriceTierTwoFive, TierForDescription("2,5 gram"))
	assert.Equal(t, enums.PriceTierFive, TierForDescription("5 gram"))
	assert.Equal(t, enums.PriceTierJoint, TierForDescription("1 joint"))
	assert.Equal(t, enums.PriceTierJoint, TierForDescription("joint"))
	assert.Equal(t, enums.PriceTierPiece, TierForDescription("Chocolate bar"))
	assert.Equal(t, enums.PriceTierPiece, TierForDescription(""))
}

func TestUnavailableLine(t *testing.T) {
	kindID := uuid.New()
	productID := uuid.New()
	kindName := "Amnesia Haze"

	idx := pricelist.Index{
		kindID: {
			Active: true,
			Tiers: map[enums.PriceTier]float64{
				enums.PriceTierOne: 10,
			},
		},
		productID: {
			Active: true,
			Tiers: map[enums.PriceTier]float64{
				enums.PriceTierPiece: 2.5,
			},
		},
	}

	t.Run("all available", func(t *testing.T) {
		lines := types.OrderLines{
			line("1 gram", 10, 1, &kindID, nil),
			line("Cola", 2.5, 1, nil, &productID),
		}
		_, unavailable := UnavailableLine(lines, idx)
		assert.False(t, unavailable)
	})

	t.Run("tier not enabled", func(t *testing.T) {
		lines := types.OrderLines{
			{Description: "5 gram", Price: 40, Quantity: 1, KindID: &kindID, KindName: &kindName},
		}
		name, unavailable := UnavailableLine(lines, idx)
		require.True(t, unavailable)
		assert.Equal(t, "Amnesia Haze", name)
	})

	t.Run("missing from index", func(t *testing.T) {
		unknown := uuid.New()
		lines := types.OrderLines{
			{Description: "1 gram", Price: 10, Quantity: 1, KindID: &unknown, KindName: &kindName},
		}
		_, unavailable := UnavailableLine(lines, idx)
		assert.True(t, unavailable)
	})

	t.Run("inactive row", func(t *testing.T) {
		inactiveIdx := pricelist.Index{
			kindID: {Active: false, Tiers: map[enums.PriceTier]float64{enums.PriceTierOne: 10}},
		}
		_, unavailable := UnavailableLine(types.OrderLines{line("1 gram", 10, 1, &kindID, nil)}, inactiveIdx)
		assert.True(t, unavailable)
	})
}

func TestTotalMatches(t *testing.T) {
	kindID := uuid.New()
	lines := types.OrderLines{
		line("0,5 gram", 6.35, 3, &kindID, nil),
		line("1 gram", 11.5, 2, &kindID, nil),
	}

	assert.True(t, TotalMatches(lines, 42.05))
	assert.False(t, TotalMatches(lines, 42.04))
	assert.True(t, TotalMatches(types.OrderLines{}, 0))
}
