package inventory

import "github.com/shopspring/decimal"

// CostCalculator costo promedio ponderado tras una entrada:
// ((stock * costo) + (entrada * costoEntrada)) / (stock + entrada).
// Stock negativo se trata como cero; sin unidades resultantes devuelve cero.
func CostCalculator(stock, cost, qtyIn, unitCostIn decimal.Decimal) decimal.Decimal {
	if stock.IsNegative() {
		stock = decimal.Zero
	}
	sum := stock.Add(qtyIn)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return stock.Mul(cost).Add(qtyIn.Mul(unitCostIn)).Div(sum).Round(2)
}
