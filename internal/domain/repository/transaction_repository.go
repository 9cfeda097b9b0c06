package repository

import (
	"context"
	"time"

	"github.com/kyujizt/Storage-Konstruksi/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// HistoryFilter rango [From, To) de fechas de transacción, opcionalmente por material.
type HistoryFilter struct {
	From       time.Time
	To         time.Time
	MaterialID *int64
}

// TransactionRepository puerto del ledger. Solo existe Append como escritura:
// no hay Update ni Delete.
type TransactionRepository interface {
	// Append inserta la transacción y asigna ID y Date.
	Append(ctx context.Context, tx *entity.Transaction) error

	// ListByMaterial devuelve las transacciones del material en orden cronológico.
	ListByMaterial(ctx context.Context, materialID int64) ([]*entity.Transaction, error)

	// History devuelve las transacciones del rango, más recientes primero, con nombres unidos.
	History(ctx context.Context, filter HistoryFilter) ([]*entity.TransactionView, error)

	// Recent devuelve las últimas limit transacciones, más recientes primero.
	Recent(ctx context.Context, limit int) ([]*entity.TransactionView, error)

	// AverageInPrices precio unitario promedio por material sobre las entradas con precio.
	// Los materiales sin entradas con precio no aparecen en el mapa.
	AverageInPrices(ctx context.Context) (map[int64]decimal.Decimal, error)
}
