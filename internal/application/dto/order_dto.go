package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest una línea para crear una orden de compra o venta.
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	SupplierID string             `json:"supplier_id"`
	Items      []OrderItemRequest `json:"items"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID string             `json:"customer_id"`
	Items      []OrderItemRequest `json:"items"`
}

// UpdateOrderStatusRequest body para PATCH /api/{purchases,sales}/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse línea de orden con proyección del producto.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"order_id"`
	ProductID   string          `json:"product_id"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	ProductName string          `json:"product_name,omitempty"`
	ProductSKU  string          `json:"product_sku,omitempty"`
}

// OrderResponse orden de compra o venta aplanada con el nombre de la contraparte.
type OrderResponse struct {
	ID               string              `json:"id"`
	CounterpartyID   string              `json:"counterparty_id"`
	CounterpartyName string              `json:"counterparty_name,omitempty"`
	Number           string              `json:"number"`
	OrderDate        time.Time           `json:"order_date"`
	TotalAmount      decimal.Decimal     `json:"total_amount"`
	Status           string              `json:"status"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	Items            []OrderItemResponse `json:"items,omitempty"`
}
