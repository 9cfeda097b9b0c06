package usecase

import (
	"context"
	"time"

	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
	"github.com/stretchr/testify/mock"
)

type mockCategoryRepo struct{ mock.Mock }

func (m *mockCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *mockCategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *mockCategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entity.Category), args.Error(1)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockMaterialRepo solo implementa con expectativas lo que usan los casos de uso de categoría.
type mockMaterialRepo struct {
	mock.Mock
	repository.MaterialRepository
}

func (m *mockMaterialRepo) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	args := m.Called(ctx, categoryID)
	return args.Int(0), args.Error(1)
}

func (m *mockMaterialRepo) GetByID(ctx context.Context, id int64) (*entity.Material, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*entity.Material), args.Error(1)
}

func (m *mockMaterialRepo) Archive(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *mockMaterialRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
