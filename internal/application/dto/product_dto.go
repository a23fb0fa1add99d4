package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	SKU          string          `json:"sku,omitempty"`
	Description  string          `json:"description,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	ReorderLevel int64           `json:"reorder_level"`
}

// UpdateProductRequest body para PUT /api/products/:id. Punteros = campos opcionales.
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty"`
	SKU          *string          `json:"sku,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Unit         *string          `json:"unit,omitempty"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPrice *decimal.Decimal `json:"selling_price,omitempty"`
	ReorderLevel *int64           `json:"reorder_level,omitempty"`
}

// ProductResponse representación de un producto en respuestas.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku,omitempty"`
	Description  string          `json:"description,omitempty"`
	Unit         string          `json:"unit"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	ReorderLevel int64           `json:"reorder_level"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
