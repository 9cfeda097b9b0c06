package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa un material de construcción del catálogo.
// El stock no vive aquí: se maneja en InventorySnapshot vía el motor de inventario.
type Material struct {
	ID            int64
	Name          string
	Description   string
	Unit          string // sak, m3, batang, kg...
	CategoryID    *int64 // nil si no tiene categoría
	CategoryName  string // solo lectura (join)
	MinStockLevel decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ArchivedAt    *time.Time // nil = activo
}

// Archived indica si el material fue archivado (política de borrado "archive").
func (m *Material) Archived() bool {
	return m.ArchivedAt != nil
}
