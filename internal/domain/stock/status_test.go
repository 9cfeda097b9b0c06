package stock

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	minLevel := decimal.NewFromInt(10)
	cases := []struct {
		name     string
		quantity decimal.Decimal
		want     Status
	}{
		{"cero es agotado", decimal.Zero, StatusOutOfStock},
		{"negativo es agotado", decimal.NewFromInt(-1), StatusOutOfStock},
		{"igual al mínimo es bajo", decimal.NewFromInt(10), StatusLowStock},
		{"fracción sobre cero es bajo", decimal.RequireFromString("0.5"), StatusLowStock},
		{"sobre el mínimo es disponible", decimal.NewFromInt(11), StatusInStock},
		{"justo sobre el mínimo", decimal.RequireFromString("10.01"), StatusInStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Derive(tc.quantity, minLevel))
		})
	}
}

func TestDerive_MinimoCero(t *testing.T) {
	assert.Equal(t, StatusOutOfStock, Derive(decimal.Zero, decimal.Zero))
	assert.Equal(t, StatusInStock, Derive(decimal.NewFromInt(1), decimal.Zero))
}

func TestStatusRank(t *testing.T) {
	assert.Less(t, StatusOutOfStock.Rank(), StatusLowStock.Rank())
	assert.Less(t, StatusLowStock.Rank(), StatusInStock.Rank())
	assert.True(t, StatusOutOfStock.NeedsAttention())
	assert.True(t, StatusLowStock.NeedsAttention())
	assert.False(t, StatusInStock.NeedsAttention())
}

func TestAveragePriceAndValue(t *testing.T) {
	avg, ok := AveragePrice(nil)
	assert.False(t, ok)
	assert.True(t, avg.IsZero())
	assert.True(t, Value(decimal.NewFromInt(5), avg, ok).IsZero(), "sin precios aporta 0")

	avg, ok = AveragePrice([]decimal.Decimal{decimal.NewFromInt(100), decimal.NewFromInt(200)})
	assert.True(t, ok)
	assert.True(t, avg.Equal(decimal.NewFromInt(150)))
	assert.True(t, Value(decimal.NewFromInt(4), avg, ok).Equal(decimal.NewFromInt(600)))
}
