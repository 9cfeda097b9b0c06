package dto

import "github.com/shopspring/decimal"

// CreateMaterialRequest entrada para crear un material.
type CreateMaterialRequest struct {
	Name            string           `json:"material_name" validate:"required,min=1,max=150"`
	Description     string           `json:"description" validate:"max=1000"`
	Unit            string           `json:"unit" validate:"required,min=1,max=30"`
	CategoryID      *int64           `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	MinStockLevel   decimal.Decimal  `json:"min_stock_level"`
	InitialQuantity *decimal.Decimal `json:"initial_quantity,omitempty"`
}

// UpdateMaterialRequest actualización parcial (sin stock: se maneja vía movimientos).
// category_id 0 quita la categoría.
type UpdateMaterialRequest struct {
	Name          *string          `json:"material_name" validate:"omitempty,min=1,max=150"`
	Description   *string          `json:"description" validate:"omitempty,max=1000"`
	Unit          *string          `json:"unit" validate:"omitempty,min=1,max=30"`
	CategoryID    *int64           `json:"category_id" validate:"omitempty,gte=0"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level"`
}

// Empty true si no hay campos que actualizar.
func (r UpdateMaterialRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.Unit == nil && r.CategoryID == nil && r.MinStockLevel == nil
}

// MaterialCreatedResponse data de un material creado.
type MaterialCreatedResponse struct {
	MaterialID int64 `json:"material_id"`
}
