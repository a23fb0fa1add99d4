package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord representa el stock actual de un producto: cantidad y costo
// promedio ponderado. Invariante: Quantity >= 0 después de cada ajuste.
// Se crea perezosamente en el primer ajuste y solo lo muta el motor de ajustes.
type StockRecord struct {
	ID          string
	ProductID   string
	Quantity    int64
	AvgCost     decimal.Decimal
	LastUpdated time.Time
}
