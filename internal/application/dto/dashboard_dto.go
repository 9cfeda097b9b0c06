package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse respuesta de GET /api/dashboard/stats.
type DashboardStatsResponse struct {
	TotalMaterials int             `json:"total_materials"`
	InStock        int             `json:"in_stock"`
	LowStock       int             `json:"low_stock"`
	OutOfStock     int             `json:"out_of_stock"`
	TotalValue     decimal.Decimal `json:"total_value"` // Σ cantidad * precio promedio de entradas
}
