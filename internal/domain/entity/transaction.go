package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del ledger.
const (
	TransactionTypeIn  = "in"  // entrada (stock in)
	TransactionTypeOut = "out" // salida (stock out)
)

// Transaction es una entrada inmutable del ledger. Quantity siempre es positiva;
// el signo lo da Type. SupplierID solo aplica a "in" y ProjectID solo a "out".
type Transaction struct {
	ID         int64
	MaterialID int64
	Type       string
	Quantity   decimal.Decimal
	UnitPrice  *decimal.Decimal // nil = entrada sin precio (excluida del promedio)
	SupplierID *int64
	ProjectID  *int64
	Notes      string
	RecordedBy string
	Date       time.Time // asignada por el servidor al insertar
}

// SignedQuantity efecto de la transacción sobre el snapshot (+in, -out).
func (t *Transaction) SignedQuantity() decimal.Decimal {
	if t.Type == TransactionTypeOut {
		return t.Quantity.Neg()
	}
	return t.Quantity
}

// TransactionView transacción con nombres para mostrar (material, proveedor, proyecto).
type TransactionView struct {
	Transaction
	MaterialName string
	Unit         string
	SupplierName string
	ProjectName  string
}
