package usecase

import (
	"context"
	"strings"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/dto"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías de material.
type CategoryUseCase struct {
	repo      repository.CategoryRepository
	materials repository.MaterialRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, materials repository.MaterialRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, materials: materials}
}

// Create crea una categoría; el nombre es único.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("category_name", "is required")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, domain.Internal("get category", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	c := &entity.Category{Name: name, Description: strings.TrimSpace(in.Description)}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, passDomain("create category", err)
	}
	return toCategoryResponse(c), nil
}

// Update renombra o cambia la descripción.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("category_name", "is required")
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("get category", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if other, err := uc.repo.GetByName(ctx, name); err != nil {
		return nil, domain.Internal("get category", err)
	} else if other != nil && other.ID != id {
		return nil, domain.ErrDuplicate
	}
	c.Name = name
	c.Description = strings.TrimSpace(in.Description)
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, passDomain("update category", err)
	}
	return toCategoryResponse(c), nil
}

// List categorías ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, domain.Internal("list categories", err)
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Delete se rechaza con ErrConflict mientras algún material la use.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Internal("get category", err)
	}
	if c == nil {
		return domain.ErrNotFound
	}
	n, err := uc.materials.CountByCategory(ctx, id)
	if err != nil {
		return domain.Internal("count materials", err)
	}
	if n > 0 {
		return domain.ErrConflict
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return passDomain("delete category", err)
	}
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{CategoryID: c.ID, Name: c.Name, Description: c.Description}
}
