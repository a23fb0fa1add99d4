package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardResult contadores del panel principal.
type DashboardResult struct {
	SalesToday     decimal.Decimal
	SalesMonth     decimal.Decimal
	SalesYear      decimal.Decimal
	PurchasesToday decimal.Decimal
	PurchasesMonth decimal.Decimal
	TotalProducts  int64
	LowStock       int64
	OutOfStock     int64
	InventoryValue decimal.Decimal
	TotalCustomers int64
	TotalSuppliers int64
}

// ReportRow una fila de reporte agregado por período (día/semana/mes).
type ReportRow struct {
	Period      string
	OrderCount  int64
	TotalAmount decimal.Decimal
	AvgAmount   decimal.Decimal
}

// TopProductRow producto ordenado por unidades vendidas en el período.
type TopProductRow struct {
	ProductID     string
	ProductName   string
	ProductSKU    string
	TotalQuantity int64
	TotalRevenue  decimal.Decimal
}

// TopCustomerRow cliente ordenado por monto comprado en el período.
type TopCustomerRow struct {
	CustomerID    string
	CustomerName  string
	ContactPerson string
	TotalSpent    decimal.Decimal
	OrderCount    int64
}

// AnalyticsRepository consultas de solo lectura para el panel y los reportes.
// Siempre opera sobre el pool (nunca dentro de una transacción de escritura).
type AnalyticsRepository interface {
	Dashboard(ctx context.Context, now time.Time) (*DashboardResult, error)
	// SalesReport/PurchaseReport agrupan órdenes completadas por groupBy: day, week o month.
	SalesReport(ctx context.Context, from, to time.Time, groupBy string) ([]ReportRow, error)
	PurchaseReport(ctx context.Context, from, to time.Time, groupBy string) ([]ReportRow, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductRow, error)
	TopCustomers(ctx context.Context, from, to time.Time, limit int) ([]TopCustomerRow, error)
}
