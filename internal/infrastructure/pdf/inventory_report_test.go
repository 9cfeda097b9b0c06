package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/dto"
)

func sampleItems() []dto.MaterialStockResponse {
	return []dto.MaterialStockResponse{
		{MaterialID: 1, Name: "Bata Merah", Unit: "pcs", CategoryName: "Bata", Quantity: decimal.NewFromInt(500), MinStockLevel: decimal.NewFromInt(100), Status: "in_stock"},
		{MaterialID: 2, Name: "Bata Ringan", Unit: "pcs", CategoryName: "Bata", Quantity: decimal.NewFromInt(40), MinStockLevel: decimal.NewFromInt(100), Status: "low_stock"},
		{MaterialID: 3, Name: "Semen 50kg", Unit: "sak", CategoryName: "Semen", Quantity: decimal.Zero, MinStockLevel: decimal.NewFromInt(20), Status: "out_of_stock"},
		{MaterialID: 4, Name: "Paku", Unit: "kg", Quantity: decimal.RequireFromString("2.5"), MinStockLevel: decimal.NewFromInt(1), Status: "in_stock"},
	}
}

func TestInventoryReportGenerator_Generate(t *testing.T) {
	g := NewInventoryReportGenerator("PT Konstruksi")

	out, err := g.Generate(context.Background(), sampleItems(), time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestInventoryReportGenerator_SinMateriales(t *testing.T) {
	out, err := NewInventoryReportGenerator("").Generate(context.Background(), nil, time.Now())

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestInventoryReportGenerator_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewInventoryReportGenerator("x").Generate(ctx, sampleItems(), time.Now())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGroupByCategory(t *testing.T) {
	groups := groupByCategory(sampleItems())

	require.Len(t, groups, 3)
	assert.Equal(t, "Bata", groups[0].name)
	assert.Len(t, groups[0].items, 2)
	assert.Equal(t, "Semen", groups[1].name)
	assert.Equal(t, uncategorized, groups[2].name)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "OUT", statusLabel("out_of_stock"))
	assert.Equal(t, "LOW", statusLabel("low_stock"))
	assert.Equal(t, "OK", statusLabel("in_stock"))
}
