package inventory

import "github.com/shopspring/decimal"

// CostCalculator mezcla el costo promedio ponderado de una entrada con el
// stock ya existente:
//
//	promedio = (cantidadPrevia*costoPrevio + cantidadEntrada*costoEntrada) / (cantidadPrevia + cantidadEntrada)
//
// El cociente conserva toda la precisión de la división; el redondeo a dos
// decimales ocurre recién al serializar la respuesta. Si la cantidad total
// resultante no es positiva devuelve cero.
func CostCalculator(cantidadPrevia, costoPrevio, cantidadEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	total := cantidadPrevia.Add(cantidadEntrada)
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	valorPrevio := cantidadPrevia.Mul(costoPrevio)
	valorEntrada := cantidadEntrada.Mul(costoEntrada)
	return valorPrevio.Add(valorEntrada).Div(total)
}
