package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El stock y el costo promedio
// viven en StockRecord y se mutan solo vía el motor de ajustes.
type Product struct {
	ID           string
	Name         string
	SKU          string // opcional, único cuando no está vacío
	Description  string
	Unit         string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	ReorderLevel int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
