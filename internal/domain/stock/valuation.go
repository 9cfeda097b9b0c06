package stock

import "github.com/shopspring/decimal"

// AveragePrice promedio simple de los precios unitarios registrados en entradas.
// Las entradas sin precio no participan; sin precios devuelve (0, false).
func AveragePrice(prices []decimal.Decimal) (decimal.Decimal, bool) {
	if len(prices) == 0 {
		return decimal.Zero, false
	}
	return decimal.Avg(prices[0], prices[1:]...), true
}

// Value valor de inventario de un material: cantidad * precio promedio.
// Un material sin historial de precios aporta 0.
func Value(quantity, avgPrice decimal.Decimal, priced bool) decimal.Decimal {
	if !priced || quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return quantity.Mul(avgPrice)
}
