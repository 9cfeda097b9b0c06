package repository

import (
	"context"
	"time"

	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MaterialFilter filtros de catálogo aplicados en la consulta (parametrizados).
// El estado de stock NO se filtra aquí: lo deriva la capa de consultas.
type MaterialFilter struct {
	Search          string // subcadena, sin distinguir mayúsculas, sobre nombre o descripción
	CategoryID      *int64
	IncludeArchived bool
}

// MaterialStock material unido a su cantidad actual (0 si aún no tiene snapshot).
type MaterialStock struct {
	Material entity.Material
	Quantity decimal.Decimal
}

// MaterialRepository define el puerto de persistencia del catálogo de materiales.
// GetByID devuelve (nil, nil) si no existe.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id int64) (*entity.Material, error)
	Update(ctx context.Context, material *entity.Material) error
	Archive(ctx context.Context, id int64, at time.Time) error
	// Delete borra el material; snapshot y transacciones caen por cascada.
	Delete(ctx context.Context, id int64) error
	CountByCategory(ctx context.Context, categoryID int64) (int, error)

	// ListWithStock devuelve todos los materiales que cumplen el filtro con su cantidad.
	ListWithStock(ctx context.Context, filter MaterialFilter) ([]MaterialStock, error)
	// GetWithStock devuelve (nil, nil) si no existe.
	GetWithStock(ctx context.Context, id int64) (*MaterialStock, error)
}
