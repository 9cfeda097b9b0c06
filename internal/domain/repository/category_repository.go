package repository

import (
	"context"

	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// List ordenado por nombre.
	List(ctx context.Context) ([]*entity.Category, error)
	// Delete devuelve domain.ErrConflict si algún material la referencia.
	Delete(ctx context.Context, id int64) error
}
