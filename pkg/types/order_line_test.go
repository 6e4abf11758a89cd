package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestOrderLineValidate(t *testing.T) {
	kindID := uuid.New()
	productID := uuid.New()

	valid := OrderLine{Description: "1 gram", Price: 10, KindID: &kindID, Quantity: 1}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		line OrderLine
	}{
		{name: "zero quantity", line: OrderLine{Description: "1 gram", Price: 10, KindID: &kindID}},
		{name: "negative price", line: OrderLine{Description: "1 gram", Price: -1, KindID: &kindID, Quantity: 1}},
		{name: "no reference", line: OrderLine{Description: "1 gram", Price: 10, Quantity: 1}},
		{name: "both references", line: OrderLine{Description: "1 gram", Price: 10, KindID: &kindID, ProductID: &productID, Quantity: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.line.Validate())
		})
	}
}

func TestOrderLinesValidateRequiresLines(t *testing.T) {
	require.Error(t, OrderLines{}.Validate())
}

func TestOrderLineDisplayName(t *testing.T) {
	kindID := uuid.New()
	name := "Amnesia Haze"
	line := OrderLine{Description: "1 gram", KindID: &kindID, KindName: &name, Quantity: 1, Price: 10}
	require.Equal(t, "Amnesia Haze", line.DisplayName())

	line.KindName = nil
	require.Equal(t, "1 gram", line.DisplayName())
}
