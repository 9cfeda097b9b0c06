package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventorySnapshot cantidad actual de un material (materializada desde el ledger).
// Solo el motor de inventario la modifica; nunca es negativa.
type InventorySnapshot struct {
	MaterialID int64
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
