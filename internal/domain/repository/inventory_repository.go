package repository

import (
	"context"

	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventoryRepository puerto del snapshot de inventario (una fila por material).
// Se usa dentro de la transacción del motor: cada método toma el bloqueo de la fila
// del material y lo mantiene hasta Commit/Rollback.
type InventoryRepository interface {
	// Get devuelve el snapshot; si no existe, cantidad 0.
	Get(ctx context.Context, materialID int64) (*entity.InventorySnapshot, error)

	// Increase suma quantity (crea la fila si no existe) y devuelve la nueva cantidad.
	Increase(ctx context.Context, materialID int64, quantity decimal.Decimal) (decimal.Decimal, error)

	// DecreaseIfAvailable resta quantity solo si la cantidad actual alcanza, en un único paso atómico.
	// Si aplicó devuelve (nueva cantidad, true); si no alcanzó devuelve (cantidad actual, false).
	DecreaseIfAvailable(ctx context.Context, materialID int64, quantity decimal.Decimal) (decimal.Decimal, bool, error)
}
