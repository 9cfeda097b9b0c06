package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockInRequest body para POST /api/inventory.
type StockInRequest struct {
	MaterialID int64            `json:"material_id" validate:"required,gt=0"`
	Quantity   decimal.Decimal  `json:"quantity"`
	SupplierID *int64           `json:"supplier_id,omitempty" validate:"omitempty,gt=0"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
	Notes      string           `json:"notes" validate:"max=1000"`
}

// StockOutRequest body para PUT /api/inventory.
type StockOutRequest struct {
	MaterialID int64           `json:"material_id" validate:"required,gt=0"`
	Quantity   decimal.Decimal `json:"quantity"`
	ProjectID  *int64          `json:"project_id,omitempty" validate:"omitempty,gt=0"`
	Notes      string          `json:"notes" validate:"max=1000"`
}

// Normalize trata supplier_id 0 como ausente (los formularios envían 0 para "sin proveedor").
func (r *StockInRequest) Normalize() {
	if r.SupplierID != nil && *r.SupplierID == 0 {
		r.SupplierID = nil
	}
}

// Normalize trata project_id 0 como ausente.
func (r *StockOutRequest) Normalize() {
	if r.ProjectID != nil && *r.ProjectID == 0 {
		r.ProjectID = nil
	}
}

// MovementResponse data de una mutación aplicada.
type MovementResponse struct {
	TransactionID int64 `json:"transaction_id"`
}

// MaterialStockResponse material con su cantidad actual y estado derivado.
type MaterialStockResponse struct {
	MaterialID    int64           `json:"material_id"`
	Name          string          `json:"material_name"`
	Description   string          `json:"description"`
	Unit          string          `json:"unit"`
	CategoryID    *int64          `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	Quantity      decimal.Decimal `json:"stock_quantity"`
	Status        string          `json:"stock_level"` // out_of_stock | low_stock | in_stock
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// MaterialPage página de materiales con stock.
type MaterialPage struct {
	Items      []MaterialStockResponse
	Pagination Pagination
}

// TransactionResponse transacción del ledger con nombres para mostrar.
type TransactionResponse struct {
	TransactionID int64            `json:"transaction_id"`
	Date          time.Time        `json:"transaction_date"`
	Type          string           `json:"transaction_type"`
	Quantity      decimal.Decimal  `json:"quantity"`
	MaterialID    int64            `json:"material_id"`
	MaterialName  string           `json:"material_name"`
	Unit          string           `json:"unit"`
	SupplierID    *int64           `json:"supplier_id,omitempty"`
	SupplierName  string           `json:"supplier_name,omitempty"`
	ProjectID     *int64           `json:"project_id,omitempty"`
	ProjectName   string           `json:"project_name,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	Notes         string           `json:"notes"`
	RecordedBy    string           `json:"recorded_by"`
}
