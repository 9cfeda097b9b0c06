package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kyujizt/Storage-Konstruksi/internal/domain"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo snapshot de cantidades sobre PostgreSQL. Dentro de una tx cada sentencia
// toma el bloqueo de la fila del material hasta Commit/Rollback.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene el snapshot bloqueando la fila (SELECT FOR UPDATE); cantidad 0 si no existe.
func (r *InventoryRepo) Get(ctx context.Context, materialID int64) (*entity.InventorySnapshot, error) {
	sqlStr, args, err := psql.Select("material_id", "quantity", "updated_at").
		From("inventory").
		Where(sq.Eq{"material_id": materialID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, err
	}
	var s entity.InventorySnapshot
	if err := r.q.QueryRow(ctx, sqlStr, args...).Scan(&s.MaterialID, &s.Quantity, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventorySnapshot{MaterialID: materialID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &s, nil
}

// Increase upsert: crea la fila o suma sobre la existente en una sola sentencia.
func (r *InventoryRepo) Increase(ctx context.Context, materialID int64, quantity decimal.Decimal) (decimal.Decimal, error) {
	sqlStr, args, err := psql.Insert("inventory").
		Columns("material_id", "quantity", "updated_at").
		Values(materialID, quantity, sq.Expr("now()")).
		Suffix("ON CONFLICT (material_id) DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity, updated_at = now() RETURNING quantity").
		ToSql()
	if err != nil {
		return decimal.Zero, err
	}
	var next decimal.Decimal
	if err := r.q.QueryRow(ctx, sqlStr, args...).Scan(&next); err != nil {
		switch {
		case isForeignKeyViolation(err):
			return decimal.Zero, fmt.Errorf("increase inventory: %w", domain.ErrConflict)
		case isCheckViolation(err):
			return decimal.Zero, fmt.Errorf("increase inventory: %w", domain.ErrInvalidInput)
		}
		return decimal.Zero, fmt.Errorf("increase inventory: %w", err)
	}
	return next, nil
}

// DecreaseIfAvailable decremento condicional: el UPDATE solo aplica si quantity >= $q.
// Si no aplica lee la cantidad actual (0 sin fila) para informar al caller.
func (r *InventoryRepo) DecreaseIfAvailable(ctx context.Context, materialID int64, quantity decimal.Decimal) (decimal.Decimal, bool, error) {
	sqlStr, args, err := psql.Update("inventory").
		Set("quantity", sq.Expr("quantity - ?", quantity)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"material_id": materialID}).
		Where(sq.GtOrEq{"quantity": quantity}).
		Suffix("RETURNING quantity").
		ToSql()
	if err != nil {
		return decimal.Zero, false, err
	}
	var next decimal.Decimal
	err = r.q.QueryRow(ctx, sqlStr, args...).Scan(&next)
	if err == nil {
		return next, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, false, fmt.Errorf("decrease inventory: %w", err)
	}
	snap, err := r.Get(ctx, materialID)
	if err != nil {
		return decimal.Zero, false, err
	}
	return snap.Quantity, false, nil
}
