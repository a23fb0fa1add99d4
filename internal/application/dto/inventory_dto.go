package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/inventory/adjust.
type AdjustStockRequest struct {
	ProductID  string           `json:"product_id"`
	Quantity   int64            `json:"quantity"` // delta con signo, distinto de cero
	Reason     string           `json:"reason"`
	NewAvgCost *decimal.Decimal `json:"new_avg_cost,omitempty"`
}

// StockResponse registro de stock aplanado con datos del producto.
type StockResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Quantity     int64           `json:"quantity"`
	AvgCost      decimal.Decimal `json:"avg_cost"`
	LastUpdated  time.Time       `json:"last_updated"`
	ProductName  string          `json:"product_name,omitempty"`
	ProductSKU   string          `json:"product_sku,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	ReorderLevel int64           `json:"reorder_level"`
}

// StockSummaryResponse totales del inventario.
type StockSummaryResponse struct {
	TotalItems      int64           `json:"total_items"`
	LowStockItems   int64           `json:"low_stock_items"`
	OutOfStockItems int64           `json:"out_of_stock_items"`
	TotalValue      decimal.Decimal `json:"total_inventory_value"`
}

// MovementResponse una entrada del libro de movimientos.
type MovementResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Type       string    `json:"movement_type"`
	Quantity   int64     `json:"quantity"`
	SourceType string    `json:"reference_type,omitempty"`
	SourceID   string    `json:"reference_id,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
