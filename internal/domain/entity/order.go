package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden (compra o venta).
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus indica si s es un estado de orden reconocido.
func ValidOrderStatus(s string) bool {
	return s == OrderStatusPending || s == OrderStatusCompleted || s == OrderStatusCancelled
}

// PurchaseOrder orden de compra a un proveedor. TotalAmount siempre es la suma
// de los TotalPrice de sus ítems. SupplierName es proyección de lectura (JOIN).
type PurchaseOrder struct {
	ID           string
	SupplierID   string
	SupplierName string
	Number       string
	OrderDate    time.Time
	TotalAmount  decimal.Decimal
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Items        []*PurchaseItem
}

// PurchaseItem línea de una orden de compra. TotalPrice = Quantity * UnitPrice
// (calculado, nunca suministrado). ProductName/ProductSKU son proyección de lectura.
type PurchaseItem struct {
	ID          string
	PurchaseID  string
	ProductID   string
	Quantity    int64
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	ProductName string
	ProductSKU  string
}

// SaleOrder orden de venta a un cliente. Misma forma estructural que la compra.
type SaleOrder struct {
	ID           string
	CustomerID   string
	CustomerName string
	Number       string
	OrderDate    time.Time
	TotalAmount  decimal.Decimal
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Items        []*SaleItem
}

// SaleItem línea de una orden de venta.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	Quantity    int64
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	ProductName string
	ProductSKU  string
}
