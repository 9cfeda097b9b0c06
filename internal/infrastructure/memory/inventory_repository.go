package memory

import (
	"context"
	"fmt"

	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo snapshot de cantidades. Cada método toma el bloqueo del material.
type InventoryRepo struct {
	s *Store
	u *unitOfWork
}

func (r *InventoryRepo) within(ctx context.Context, fn func(u *unitOfWork) error) error {
	if r.u != nil {
		return fn(r.u)
	}
	return r.s.autocommit(ctx, fn)
}

func (r *InventoryRepo) Get(ctx context.Context, materialID int64) (*entity.InventorySnapshot, error) {
	if r.u != nil {
		if err := r.u.lock(ctx, materialID); err != nil {
			return nil, err
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if snap := r.s.lookupQuantity(r.u, materialID); snap != nil {
		cp := *snap
		return &cp, nil
	}
	return &entity.InventorySnapshot{MaterialID: materialID, Quantity: decimal.Zero}, nil
}

func (r *InventoryRepo) Increase(ctx context.Context, materialID int64, quantity decimal.Decimal) (decimal.Decimal, error) {
	var next decimal.Decimal
	err := r.within(ctx, func(u *unitOfWork) error {
		if err := u.lock(ctx, materialID); err != nil {
			return err
		}
		current, err := r.current(u, materialID)
		if err != nil {
			return err
		}
		next = current.Add(quantity)
		if next.IsNegative() {
			return fmt.Errorf("inventory %d: quantity >= 0: %w", materialID, domain.ErrInvalidInput)
		}
		u.quantities[materialID] = &entity.InventorySnapshot{MaterialID: materialID, Quantity: next, UpdatedAt: r.s.now()}
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return next, nil
}

func (r *InventoryRepo) DecreaseIfAvailable(ctx context.Context, materialID int64, quantity decimal.Decimal) (decimal.Decimal, bool, error) {
	var (
		result  decimal.Decimal
		applied bool
	)
	err := r.within(ctx, func(u *unitOfWork) error {
		if err := u.lock(ctx, materialID); err != nil {
			return err
		}
		current, err := r.current(u, materialID)
		if err != nil {
			return err
		}
		if current.LessThan(quantity) {
			result = current
			return nil
		}
		result = current.Sub(quantity)
		applied = true
		u.quantities[materialID] = &entity.InventorySnapshot{MaterialID: materialID, Quantity: result, UpdatedAt: r.s.now()}
		return nil
	})
	if err != nil {
		return decimal.Zero, false, err
	}
	return result, applied, nil
}

// current cantidad actual; el material debe existir (FK inventory.material_id).
func (r *InventoryRepo) current(u *unitOfWork, materialID int64) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.lookupMaterial(u, materialID) == nil {
		return decimal.Zero, fmt.Errorf("inventory material %d: %w", materialID, domain.ErrConflict)
	}
	return r.s.quantityOf(u, materialID), nil
}
