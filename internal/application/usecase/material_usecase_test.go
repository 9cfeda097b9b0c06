package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/dto"
	"github.com/kyujizt/Storage-Konstruksi/internal/application/inventory"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
	"github.com/kyujizt/Storage-Konstruksi/internal/infrastructure/memory"
	"github.com/kyujizt/Storage-Konstruksi/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var admin = entity.Actor{UserID: "1", Username: "admin", Role: entity.RoleAdmin}

func newMaterialUseCase(s *memory.Store, policy DeletePolicy) *MaterialUseCase {
	engine := inventory.NewStockEngine(s, logger.Nop(), inventory.EngineConfig{})
	return NewMaterialUseCase(s, engine, s.Materials(), s.Categories(), policy)
}

func ptr[T any](v T) *T { return &v }

func TestMaterialUseCase_CreateConStockInicial(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	uc := newMaterialUseCase(s, DeletePolicyArchive)

	out, err := uc.Create(ctx, admin, dto.CreateMaterialRequest{
		Name:            " Semen Portland ",
		Unit:            "sak",
		MinStockLevel:   decimal.NewFromInt(10),
		InitialQuantity: ptr(decimal.NewFromInt(25)),
	})
	require.NoError(t, err)

	snap, err := s.Inventory().Get(ctx, out.MaterialID)
	require.NoError(t, err)
	assert.True(t, snap.Quantity.Equal(decimal.NewFromInt(25)))

	txs, err := s.Transactions().ListByMaterial(ctx, out.MaterialID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, inventory.InitialStockNote, txs[0].Notes)
	assert.Equal(t, "1", txs[0].RecordedBy)

	m, err := s.Materials().GetByID(ctx, out.MaterialID)
	require.NoError(t, err)
	assert.Equal(t, "Semen Portland", m.Name)
}

func TestMaterialUseCase_CreateValidacion(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	uc := newMaterialUseCase(s, DeletePolicyArchive)

	_, err := uc.Create(ctx, admin, dto.CreateMaterialRequest{Name: "Pasir", Unit: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, admin, dto.CreateMaterialRequest{Name: "Pasir", Unit: "m3", MinStockLevel: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, admin, dto.CreateMaterialRequest{Name: "Pasir", Unit: "m3", InitialQuantity: ptr(decimal.NewFromInt(-2))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, admin, dto.CreateMaterialRequest{Name: "Pasir", Unit: "m3", CategoryID: ptr(int64(77))})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	rows, err := s.Materials().ListWithStock(ctx, repositoryFilterAll())
	require.NoError(t, err)
	assert.Empty(t, rows, "ningún material creado")
}

func TestMaterialUseCase_UpdateQuitaCategoria(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	uc := newMaterialUseCase(s, DeletePolicyArchive)
	cat := &entity.Category{Name: "Kayu"}
	require.NoError(t, s.Categories().Create(ctx, cat))
	out, err := uc.Create(ctx, admin, dto.CreateMaterialRequest{Name: "Balok", Unit: "batang", CategoryID: &cat.ID})
	require.NoError(t, err)

	require.NoError(t, uc.Update(ctx, out.MaterialID, dto.UpdateMaterialRequest{CategoryID: ptr(int64(0)), Unit: ptr("m3")}))
	m, err := s.Materials().GetByID(ctx, out.MaterialID)
	require.NoError(t, err)
	assert.Nil(t, m.CategoryID)
	assert.Equal(t, "m3", m.Unit)

	assert.ErrorIs(t, uc.Update(ctx, out.MaterialID, dto.UpdateMaterialRequest{}), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.Update(ctx, 999, dto.UpdateMaterialRequest{Unit: ptr("kg")}), domain.ErrNotFound)
}

func TestMaterialUseCase_DeleteArchive(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	uc := newMaterialUseCase(s, "")
	out, err := uc.Create(ctx, admin, dto.CreateMaterialRequest{Name: "Genteng", Unit: "buah", InitialQuantity: ptr(decimal.NewFromInt(3))})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, out.MaterialID))
	m, err := s.Materials().GetByID(ctx, out.MaterialID)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.True(t, m.Archived())

	txs, err := s.Transactions().ListByMaterial(ctx, out.MaterialID)
	require.NoError(t, err)
	assert.Len(t, txs, 1, "el ledger sobrevive al archivado")

	assert.ErrorIs(t, uc.Delete(ctx, out.MaterialID), domain.ErrNotFound)
}

func TestMaterialUseCase_DeleteCascade(t *testing.T) {
	repo := new(mockMaterialRepo)
	repo.On("GetByID", mock.Anything, int64(5)).Return(&entity.Material{ID: 5}, nil).Once()
	repo.On("Delete", mock.Anything, int64(5)).Return(nil).Once()

	uc := NewMaterialUseCase(nil, nil, repo, nil, DeletePolicyCascade)
	require.NoError(t, uc.Delete(context.Background(), 5))
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Archive", mock.Anything, mock.Anything, mock.AnythingOfType("time.Time"))
}

func TestMaterialUseCase_DeleteArchiveUsaHoraActual(t *testing.T) {
	repo := new(mockMaterialRepo)
	repo.On("GetByID", mock.Anything, int64(5)).Return(&entity.Material{ID: 5}, nil).Once()
	repo.On("Archive", mock.Anything, int64(5), mock.MatchedBy(func(at time.Time) bool {
		return time.Since(at) < time.Minute
	})).Return(nil).Once()

	uc := NewMaterialUseCase(nil, nil, repo, nil, DeletePolicyArchive)
	require.NoError(t, uc.Delete(context.Background(), 5))
	repo.AssertExpectations(t)
}

func repositoryFilterAll() repository.MaterialFilter {
	return repository.MaterialFilter{IncludeArchived: true}
}
