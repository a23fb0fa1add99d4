package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// Agrupaciones válidas para reportes.
const (
	GroupByDay   = "day"
	GroupByWeek  = "week"
	GroupByMonth = "month"
)

// AnalyticsUseCase panel y reportes de solo lectura sobre órdenes completadas.
type AnalyticsUseCase struct {
	repo repository.AnalyticsRepository
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(repo repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{repo: repo}
}

// Dashboard arma los contadores del panel principal.
func (uc *AnalyticsUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	result, err := uc.repo.Dashboard(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	var out dto.DashboardResponse
	out.Sales.Today = result.SalesToday.Round(2)
	out.Sales.Month = result.SalesMonth.Round(2)
	out.Sales.Year = result.SalesYear.Round(2)
	out.Purchases.Today = result.PurchasesToday.Round(2)
	out.Purchases.Month = result.PurchasesMonth.Round(2)
	out.Inventory.TotalProducts = result.TotalProducts
	out.Inventory.LowStockProducts = result.LowStock
	out.Inventory.OutOfStockProducts = result.OutOfStock
	out.Inventory.TotalValue = result.InventoryValue.Round(2)
	out.Counts.Customers = result.TotalCustomers
	out.Counts.Suppliers = result.TotalSuppliers
	return &out, nil
}

func normalizeGroupBy(groupBy string) (string, error) {
	switch groupBy {
	case "":
		return GroupByDay, nil
	case GroupByDay, GroupByWeek, GroupByMonth:
		return groupBy, nil
	default:
		return "", domain.ErrInvalidInput
	}
}

func toReportRows(rows []repository.ReportRow) []dto.ReportRowResponse {
	out := make([]dto.ReportRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ReportRowResponse{
			Period:      r.Period,
			OrderCount:  r.OrderCount,
			TotalAmount: r.TotalAmount.Round(2),
			AvgAmount:   r.AvgAmount.Round(2),
		})
	}
	return out
}

// SalesReport agrega las ventas completadas del rango por día/semana/mes.
func (uc *AnalyticsUseCase) SalesReport(ctx context.Context, from, to time.Time, groupBy string) ([]dto.ReportRowResponse, error) {
	groupBy, err := normalizeGroupBy(groupBy)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.SalesReport(ctx, from, to, groupBy)
	if err != nil {
		return nil, err
	}
	return toReportRows(rows), nil
}

// PurchaseReport agrega las compras completadas del rango por día/semana/mes.
func (uc *AnalyticsUseCase) PurchaseReport(ctx context.Context, from, to time.Time, groupBy string) ([]dto.ReportRowResponse, error) {
	groupBy, err := normalizeGroupBy(groupBy)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.PurchaseReport(ctx, from, to, groupBy)
	if err != nil {
		return nil, err
	}
	return toReportRows(rows), nil
}

// TopProducts ranking de productos por unidades vendidas en el rango.
func (uc *AnalyticsUseCase) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]dto.TopProductResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := uc.repo.TopProducts(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductResponse{
			ProductID:     r.ProductID,
			ProductName:   r.ProductName,
			ProductSKU:    r.ProductSKU,
			TotalQuantity: r.TotalQuantity,
			TotalRevenue:  r.TotalRevenue.Round(2),
		})
	}
	return out, nil
}

// TopCustomers ranking de clientes por monto comprado en el rango.
func (uc *AnalyticsUseCase) TopCustomers(ctx context.Context, from, to time.Time, limit int) ([]dto.TopCustomerResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := uc.repo.TopCustomers(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopCustomerResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopCustomerResponse{
			CustomerID:    r.CustomerID,
			CustomerName:  r.CustomerName,
			ContactPerson: r.ContactPerson,
			TotalSpent:    r.TotalSpent.Round(2),
			OrderCount:    r.OrderCount,
		})
	}
	return out, nil
}
