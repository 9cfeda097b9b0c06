// Package stock contiene la lógica pura de clasificación y valoración del stock.
// Todas las vistas (listado, detalle, dashboard, reportes) derivan el estado desde aquí.
package stock

import "github.com/shopspring/decimal"

// Status estado derivado de un material. Nunca se persiste.
type Status string

const (
	StatusOutOfStock Status = "out_of_stock"
	StatusLowStock   Status = "low_stock"
	StatusInStock    Status = "in_stock"
)

// Derive clasifica la cantidad frente al mínimo configurado:
//
//	quantity <= 0            -> out_of_stock
//	0 < quantity <= minLevel -> low_stock
//	quantity > minLevel      -> in_stock
func Derive(quantity, minLevel decimal.Decimal) Status {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return StatusOutOfStock
	}
	if quantity.LessThanOrEqual(minLevel) {
		return StatusLowStock
	}
	return StatusInStock
}

// Rank urgencia del estado para ordenar (menor = requiere atención primero).
func (s Status) Rank() int {
	switch s {
	case StatusOutOfStock:
		return 1
	case StatusLowStock:
		return 2
	default:
		return 3
	}
}

// NeedsAttention true para out_of_stock y low_stock.
func (s Status) NeedsAttention() bool {
	return s == StatusOutOfStock || s == StatusLowStock
}
