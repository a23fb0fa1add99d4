package dto

import "github.com/shopspring/decimal"

// DashboardResponse contadores del panel principal.
type DashboardResponse struct {
	Sales struct {
		Today decimal.Decimal `json:"today"`
		Month decimal.Decimal `json:"month"`
		Year  decimal.Decimal `json:"year"`
	} `json:"sales"`
	Purchases struct {
		Today decimal.Decimal `json:"today"`
		Month decimal.Decimal `json:"month"`
	} `json:"purchases"`
	Inventory struct {
		TotalProducts      int64           `json:"total_products"`
		LowStockProducts   int64           `json:"low_stock_products"`
		OutOfStockProducts int64           `json:"out_of_stock_products"`
		TotalValue         decimal.Decimal `json:"total_value"`
	} `json:"inventory"`
	Counts struct {
		Customers int64 `json:"customers"`
		Suppliers int64 `json:"suppliers"`
	} `json:"counts"`
}

// ReportRowResponse fila de reporte de ventas o compras por período.
type ReportRowResponse struct {
	Period      string          `json:"period"`
	OrderCount  int64           `json:"order_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	AvgAmount   decimal.Decimal `json:"avg_amount"`
}

// TopProductResponse fila del ranking de productos más vendidos.
type TopProductResponse struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	ProductSKU    string          `json:"product_sku,omitempty"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// TopCustomerResponse fila del ranking de clientes.
type TopCustomerResponse struct {
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	ContactPerson string          `json:"contact_person,omitempty"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	OrderCount    int64           `json:"order_count"`
}
