package inventory

import (
	"context"

	"github.com/kyujizt/Storage-Konstruksi/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción de BD.
type Repos struct {
	Materials    repository.MaterialRepository
	Inventory    repository.InventoryRepository
	Transactions repository.TransactionRepository
	Suppliers    repository.SupplierRepository
	Projects     repository.ProjectRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
