package inventory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/inventory"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuery(s *memory.Store) *inventory.QueryUseCase {
	return inventory.NewQueryUseCase(s.Materials(), s.Transactions(), inventory.QueryConfig{
		DefaultPageSize: 10,
		MaxPageSize:     100,
		LowStockLimit:   10,
		RecentLimit:     10,
	})
}

func stockIn(t *testing.T, e *inventory.StockEngine, id int64, qty int64, price *decimal.Decimal) {
	t.Helper()
	_, err := e.ApplyStockIn(context.Background(), staff, inventory.StockInInput{MaterialID: id, Quantity: dec(qty), UnitPrice: price})
	require.NoError(t, err)
}

func TestQuery_PaginacionDeterminista(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	e := newEngine(s)
	for i := 25; i >= 1; i-- { // orden de inserción inverso al esperado
		m := seedMaterial(t, s, fmt.Sprintf("Material %02d", i), 10)
		stockIn(t, e, m.ID, 50, nil)
	}
	q := newQuery(s)

	page2, err := q.ListMaterialsWithStock(ctx, inventory.ListFilter{Page: 2, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page2.Items, 10)
	assert.Equal(t, "Material 11", page2.Items[0].Name)
	assert.Equal(t, "Material 20", page2.Items[9].Name)
	assert.Equal(t, 25, page2.Pagination.Total)
	assert.Equal(t, 3, page2.Pagination.Pages)

	page3, err := q.ListMaterialsWithStock(ctx, inventory.ListFilter{Page: 3, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page3.Items, 5)
	assert.Equal(t, "Material 21", page3.Items[0].Name)
	assert.Equal(t, "Material 25", page3.Items[4].Name)

	page4, err := q.ListMaterialsWithStock(ctx, inventory.ListFilter{Page: 4, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page4.Items)
	assert.Equal(t, 3, page4.Pagination.Pages)

	again, err := q.ListMaterialsWithStock(ctx, inventory.ListFilter{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, page2.Items, again.Items)
}

func TestQuery_OrdenPorUrgenciaYFiltroBajoStock(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	e := newEngine(s)
	a := seedMaterial(t, s, "Atap Seng", 10) // in_stock
	stockIn(t, e, a.ID, 11, nil)
	b := seedMaterial(t, s, "Batako", 10) // low_stock (= mínimo)
	stockIn(t, e, b.ID, 10, nil)
	c := seedMaterial(t, s, "Cat Dasar", 10) // out_of_stock (sin snapshot)
	q := newQuery(s)

	page, err := q.ListMaterialsWithStock(ctx, inventory.ListFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, c.ID, page.Items[0].MaterialID)
	assert.Equal(t, "out_of_stock", page.Items[0].Status)
	assert.Equal(t, "low_stock", page.Items[1].Status)
	assert.Equal(t, "in_stock", page.Items[2].Status)
	assert.Equal(t, 1, page.Pagination.Page, "page 0 se normaliza a 1")
	assert.Equal(t, 10, page.Pagination.Limit)

	low, err := q.ListMaterialsWithStock(ctx, inventory.ListFilter{LowStockOnly: true})
	require.NoError(t, err)
	assert.Len(t, low.Items, 2)

	widget, err := q.GetLowStockMaterials(ctx, 1)
	require.NoError(t, err)
	require.Len(t, widget, 1)
	assert.Equal(t, c.ID, widget[0].MaterialID)

	found, err := q.ListMaterialsWithStock(ctx, inventory.ListFilter{Search: "BATA"})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, b.ID, found.Items[0].MaterialID)
}

func TestQuery_PaginaVacia(t *testing.T) {
	page, err := newQuery(memory.New()).ListMaterialsWithStock(context.Background(), inventory.ListFilter{PageSize: 1000})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Pagination.Pages)
	assert.Equal(t, 100, page.Pagination.Limit, "acotado al máximo")
}

func TestQuery_ValoracionExcluyeEntradasSinPrecio(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	e := newEngine(s)
	p100, p200 := dec(100), dec(200)

	a := seedMaterial(t, s, "Semen", 5)
	stockIn(t, e, a.ID, 10, &p100)
	stockIn(t, e, a.ID, 10, &p200)
	stockIn(t, e, a.ID, 10, nil) // sin precio: no entra al promedio
	b := seedMaterial(t, s, "Pasir", 5)
	stockIn(t, e, b.ID, 40, nil) // sin historial de precios: aporta 0
	seedMaterial(t, s, "Kerikil", 5)

	stats, err := newQuery(s).GetInventoryValuation(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalMaterials)
	assert.Equal(t, 2, stats.InStock)
	assert.Equal(t, 1, stats.OutOfStock)
	assert.True(t, stats.TotalValue.Equal(dec(4500)), "30 * avg(100,200) = %s", stats.TotalValue)
}

func TestQuery_GetMaterial(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	q := newQuery(s)
	m := seedMaterial(t, s, "Keramik 40x40", 10)

	got, err := q.GetMaterial(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "out_of_stock", got.Status)

	_, err = q.GetMaterial(ctx, 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Materials().Archive(ctx, m.ID, time.Now()))
	_, err = q.GetMaterial(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuery_HistorialYRecientes(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := day
	s := memory.New(memory.WithClock(func() time.Time { return clock }))
	e := newEngine(s)
	q := newQuery(s)
	m := seedMaterial(t, s, "Hebel", 10)

	stockIn(t, e, m.ID, 20, nil)
	clock = day.Add(2 * time.Hour)
	_, err := e.ApplyStockOut(ctx, staff, inventory.StockOutInput{MaterialID: m.ID, Quantity: dec(5)})
	require.NoError(t, err)
	clock = day.AddDate(0, 0, 3)
	stockIn(t, e, m.ID, 1, nil)

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	hist, err := q.GetTransactionHistory(ctx, inventory.HistoryFilter{Start: start, End: start.AddDate(0, 0, 1)})
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, entity.TransactionTypeOut, hist[0].Type)
	assert.Equal(t, "Hebel", hist[0].MaterialName)

	_, err = q.GetTransactionHistory(ctx, inventory.HistoryFilter{Start: start.AddDate(0, 0, 2), End: start})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	recent, err := q.GetRecentTransactions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.True(t, recent[0].Quantity.Equal(dec(1)))
}

func TestQuery_ReportePorCategoria(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	kayu := &entity.Category{Name: "Kayu"}
	besi := &entity.Category{Name: "Besi"}
	require.NoError(t, s.Categories().Create(ctx, kayu))
	require.NoError(t, s.Categories().Create(ctx, besi))
	for _, m := range []*entity.Material{
		{Name: "Triplek", Unit: "lembar", CategoryID: &kayu.ID},
		{Name: "Besi 12mm", Unit: "batang", CategoryID: &besi.ID},
		{Name: "Balok", Unit: "batang", CategoryID: &kayu.ID},
	} {
		require.NoError(t, s.Materials().Create(ctx, m))
	}

	rows, err := newQuery(s).GetInventoryReport(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Besi 12mm", "Balok", "Triplek"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})
}
