package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/kyujizt/Storage-Konstruksi/internal/application/dto"
	"github.com/kyujizt/Storage-Konstruksi/internal/application/inventory"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DeletePolicy qué hace Delete con un material y su historial.
type DeletePolicy string

const (
	// DeletePolicyArchive marca archived_at: el material deja de listarse, rechaza movimientos
	// y su ledger sigue consultable.
	DeletePolicyArchive DeletePolicy = "archive"
	// DeletePolicyCascade borra el material; snapshot y transacciones caen por cascada.
	DeletePolicyCascade DeletePolicy = "cascade"
)

// MaterialUseCase casos de uso del catálogo de materiales. El stock solo cambia vía el motor.
type MaterialUseCase struct {
	txRunner   inventory.TxRunner
	engine     *inventory.StockEngine
	materials  repository.MaterialRepository
	categories repository.CategoryRepository
	policy     DeletePolicy
}

// NewMaterialUseCase construye el caso de uso. Una política vacía equivale a archive.
func NewMaterialUseCase(
	txRunner inventory.TxRunner,
	engine *inventory.StockEngine,
	materials repository.MaterialRepository,
	categories repository.CategoryRepository,
	policy DeletePolicy,
) *MaterialUseCase {
	if policy == "" {
		policy = DeletePolicyArchive
	}
	return &MaterialUseCase{
		txRunner:   txRunner,
		engine:     engine,
		materials:  materials,
		categories: categories,
		policy:     policy,
	}
}

// Create crea el material y su snapshot en la misma transacción. Con initial_quantity > 0
// registra además la entrada "Initial stock".
func (uc *MaterialUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateMaterialRequest) (*dto.MaterialCreatedResponse, error) {
	if !actor.Valid() {
		return nil, domain.NewValidationError("actor", "an authenticated actor is required")
	}
	name, unit := strings.TrimSpace(in.Name), strings.TrimSpace(in.Unit)
	if name == "" {
		return nil, domain.NewValidationError("material_name", "is required")
	}
	if unit == "" {
		return nil, domain.NewValidationError("unit", "is required")
	}
	if in.MinStockLevel.IsNegative() {
		return nil, domain.NewValidationError("min_stock_level", "must be zero or greater")
	}
	initial := decimal.Zero
	if in.InitialQuantity != nil {
		initial = *in.InitialQuantity
	}
	if initial.IsNegative() {
		return nil, domain.NewValidationError("initial_quantity", "must be zero or greater")
	}
	categoryID := normalizeID(in.CategoryID)
	if err := uc.requireCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	m := &entity.Material{
		Name:          name,
		Description:   strings.TrimSpace(in.Description),
		Unit:          unit,
		CategoryID:    categoryID,
		MinStockLevel: in.MinStockLevel,
	}
	err := uc.txRunner.Run(ctx, func(r inventory.Repos) error {
		if err := r.Materials.Create(ctx, m); err != nil {
			return err
		}
		return uc.engine.OpenMaterialStockTx(ctx, r, actor, m.ID, initial)
	})
	if err != nil {
		return nil, passDomain("create material", err)
	}
	return &dto.MaterialCreatedResponse{MaterialID: m.ID}, nil
}

// Update actualización parcial. No toca el stock.
func (uc *MaterialUseCase) Update(ctx context.Context, id int64, in dto.UpdateMaterialRequest) error {
	if in.Empty() {
		return domain.NewValidationError("", "no fields to update")
	}
	m, err := uc.materials.GetByID(ctx, id)
	if err != nil {
		return domain.Internal("get material", err)
	}
	if m == nil || m.Archived() {
		return domain.ErrNotFound
	}
	if in.Name != nil {
		if m.Name = strings.TrimSpace(*in.Name); m.Name == "" {
			return domain.NewValidationError("material_name", "is required")
		}
	}
	if in.Description != nil {
		m.Description = strings.TrimSpace(*in.Description)
	}
	if in.Unit != nil {
		if m.Unit = strings.TrimSpace(*in.Unit); m.Unit == "" {
			return domain.NewValidationError("unit", "is required")
		}
	}
	if in.MinStockLevel != nil {
		if in.MinStockLevel.IsNegative() {
			return domain.NewValidationError("min_stock_level", "must be zero or greater")
		}
		m.MinStockLevel = *in.MinStockLevel
	}
	if in.CategoryID != nil {
		// category_id 0 quita la categoría.
		m.CategoryID = normalizeID(in.CategoryID)
		if err := uc.requireCategory(ctx, m.CategoryID); err != nil {
			return err
		}
	}
	if err := uc.materials.Update(ctx, m); err != nil {
		return passDomain("update material", err)
	}
	return nil
}

// Delete aplica la política configurada.
func (uc *MaterialUseCase) Delete(ctx context.Context, id int64) error {
	m, err := uc.materials.GetByID(ctx, id)
	if err != nil {
		return domain.Internal("get material", err)
	}
	if m == nil || (m.Archived() && uc.policy == DeletePolicyArchive) {
		return domain.ErrNotFound
	}
	switch uc.policy {
	case DeletePolicyCascade:
		err = uc.materials.Delete(ctx, id)
	default:
		err = uc.materials.Archive(ctx, id, time.Now())
	}
	if err != nil {
		return passDomain("delete material", err)
	}
	return nil
}

// Policy política de borrado en uso.
func (uc *MaterialUseCase) Policy() DeletePolicy { return uc.policy }

func (uc *MaterialUseCase) requireCategory(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	c, err := uc.categories.GetByID(ctx, *id)
	if err != nil {
		return domain.Internal("get category", err)
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return nil
}

// normalizeID trata 0 como ausente.
func normalizeID(id *int64) *int64 {
	if id == nil || *id == 0 {
		return nil
	}
	v := *id
	return &v
}

// passDomain deja pasar errores de dominio y envuelve el resto como ErrInternal.
func passDomain(op string, err error) error {
	if domain.IsDomainError(err) {
		return err
	}
	return domain.Internal(op, err)
}
