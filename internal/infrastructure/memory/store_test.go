package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/inventory"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMaterial(t *testing.T, s *Store, name string) *entity.Material {
	t.Helper()
	m := &entity.Material{Name: name, Unit: "sak", MinStockLevel: decimal.NewFromInt(10)}
	require.NoError(t, s.Materials().Create(context.Background(), m))
	return m
}

func TestRun_CommitPublicaTodoJunto(t *testing.T) {
	ctx := context.Background()
	s := New()
	m := newMaterial(t, s, "Semen Portland")

	err := s.Run(ctx, func(r inventory.Repos) error {
		if _, err := r.Inventory.Increase(ctx, m.ID, decimal.NewFromInt(50)); err != nil {
			return err
		}
		// Fuera de la unidad de trabajo todavía no se ve nada.
		snap, err := s.Inventory().Get(ctx, m.ID)
		require.NoError(t, err)
		assert.True(t, snap.Quantity.IsZero())

		return r.Transactions.Append(ctx, &entity.Transaction{
			MaterialID: m.ID, Type: entity.TransactionTypeIn, Quantity: decimal.NewFromInt(50), RecordedBy: "1",
		})
	})
	require.NoError(t, err)

	snap, err := s.Inventory().Get(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, snap.Quantity.Equal(decimal.NewFromInt(50)))

	txs, err := s.Transactions().ListByMaterial(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.TransactionTypeIn, txs[0].Type)
}

func TestRun_ErrorDescartaStaging(t *testing.T) {
	ctx := context.Background()
	s := New()
	m := newMaterial(t, s, "Besi Beton")
	boom := errors.New("boom")

	err := s.Run(ctx, func(r inventory.Repos) error {
		_, err := r.Inventory.Increase(ctx, m.ID, decimal.NewFromInt(5))
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	snap, err := s.Inventory().Get(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, snap.Quantity.IsZero())

	// El bloqueo quedó libre.
	err = s.Run(ctx, func(r inventory.Repos) error {
		_, err := r.Inventory.Increase(ctx, m.ID, decimal.NewFromInt(1))
		return err
	})
	require.NoError(t, err)
}

func TestRun_BloqueoPorMaterialRespetaContexto(t *testing.T) {
	s := New()
	m := newMaterial(t, s, "Pasir")
	other := newMaterial(t, s, "Kerikil")

	holding := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = s.Run(context.Background(), func(r inventory.Repos) error {
			_, err := r.Inventory.Increase(context.Background(), m.ID, decimal.NewFromInt(1))
			close(holding)
			<-done
			return err
		})
	}()
	<-holding

	// Otro material no contiende.
	require.NoError(t, s.Run(context.Background(), func(r inventory.Repos) error {
		_, err := r.Inventory.Increase(context.Background(), other.ID, decimal.NewFromInt(1))
		return err
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err := s.Run(ctx, func(r inventory.Repos) error {
		_, err := r.Inventory.Increase(ctx, m.ID, decimal.NewFromInt(1))
		return err
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(done)
}

func TestDecreaseIfAvailable(t *testing.T) {
	ctx := context.Background()
	s := New()
	m := newMaterial(t, s, "Cat Tembok")

	qty, applied, err := s.Inventory().DecreaseIfAvailable(ctx, m.ID, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.False(t, applied)
	assert.True(t, qty.IsZero(), "sin snapshot la cantidad disponible es 0")

	_, err = s.Inventory().Increase(ctx, m.ID, decimal.NewFromInt(3))
	require.NoError(t, err)
	qty, applied, err = s.Inventory().DecreaseIfAvailable(ctx, m.ID, decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.True(t, applied)
	assert.True(t, qty.IsZero())

	_, err = s.Inventory().Increase(ctx, 999, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestListWithStock_FiltrosYBusqueda(t *testing.T) {
	ctx := context.Background()
	s := New()
	cat := &entity.Category{Name: "Semen"}
	require.NoError(t, s.Categories().Create(ctx, cat))

	a := &entity.Material{Name: "SEMEN Tiga Roda", Unit: "sak", CategoryID: &cat.ID}
	require.NoError(t, s.Materials().Create(ctx, a))
	b := &entity.Material{Name: "Pipa PVC", Description: "untuk saluran semen", Unit: "batang"}
	require.NoError(t, s.Materials().Create(ctx, b))
	c := newMaterial(t, s, "Genteng")
	require.NoError(t, s.Materials().Archive(ctx, c.ID, time.Now()))

	rows, err := s.Materials().ListWithStock(ctx, repository.MaterialFilter{Search: "semen"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Semen", rows[0].Material.CategoryName)

	rows, err = s.Materials().ListWithStock(ctx, repository.MaterialFilter{CategoryID: &cat.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, a.ID, rows[0].Material.ID)

	rows, err = s.Materials().ListWithStock(ctx, repository.MaterialFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 2, "archivados fuera del listado")

	rows, err = s.Materials().ListWithStock(ctx, repository.MaterialFilter{IncludeArchived: true})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestMaterialDelete_Cascada(t *testing.T) {
	ctx := context.Background()
	s := New()
	m := newMaterial(t, s, "Triplek")
	keep := newMaterial(t, s, "Paku")
	for _, id := range []int64{m.ID, keep.ID} {
		_, err := s.Inventory().Increase(ctx, id, decimal.NewFromInt(2))
		require.NoError(t, err)
		require.NoError(t, s.Transactions().Append(ctx, &entity.Transaction{
			MaterialID: id, Type: entity.TransactionTypeIn, Quantity: decimal.NewFromInt(2), RecordedBy: "1",
		}))
	}

	require.NoError(t, s.Materials().Delete(ctx, m.ID))

	got, err := s.Materials().GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	txs, err := s.Transactions().ListByMaterial(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)
	txs, err = s.Transactions().ListByMaterial(ctx, keep.ID)
	require.NoError(t, err)
	assert.Len(t, txs, 1)

	assert.ErrorIs(t, s.Materials().Delete(ctx, m.ID), domain.ErrNotFound)
}

func TestCategoryDelete_EnUso(t *testing.T) {
	ctx := context.Background()
	s := New()
	cat := &entity.Category{Name: "Kayu"}
	require.NoError(t, s.Categories().Create(ctx, cat))
	assert.ErrorIs(t, s.Categories().Create(ctx, &entity.Category{Name: "Kayu"}), domain.ErrDuplicate)

	m := &entity.Material{Name: "Balok", Unit: "batang", CategoryID: &cat.ID}
	require.NoError(t, s.Materials().Create(ctx, m))
	assert.ErrorIs(t, s.Categories().Delete(ctx, cat.ID), domain.ErrConflict)

	m.CategoryID = nil
	require.NoError(t, s.Materials().Update(ctx, m))
	require.NoError(t, s.Categories().Delete(ctx, cat.ID))
}

func TestHistory_RangoSemiabiertoYOrden(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	clock := day
	s := New(WithClock(func() time.Time { return clock }))
	m := newMaterial(t, s, "Keramik")
	_, err := s.Inventory().Increase(ctx, m.ID, decimal.NewFromInt(10))
	require.NoError(t, err)

	add := func(at time.Time, typ string) int64 {
		clock = at
		tx := &entity.Transaction{MaterialID: m.ID, Type: typ, Quantity: decimal.NewFromInt(1), RecordedBy: "1"}
		require.NoError(t, s.Transactions().Append(ctx, tx))
		return tx.ID
	}
	first := add(day.Add(1*time.Hour), entity.TransactionTypeIn)
	second := add(day.Add(1*time.Hour), entity.TransactionTypeOut)
	add(day.AddDate(0, 0, 1), entity.TransactionTypeIn) // fuera del rango [day, day+1)

	views, err := s.Transactions().History(ctx, repository.HistoryFilter{From: day, To: day.AddDate(0, 0, 1)})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, second, views[0].ID, "mismo instante: ID mayor primero")
	assert.Equal(t, first, views[1].ID)
	assert.Equal(t, "Keramik", views[0].MaterialName)
}
