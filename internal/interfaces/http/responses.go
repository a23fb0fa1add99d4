package http

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// Conversión entidad -> DTO de respuesta. Los casos de uso devuelven entidades;
// la forma JSON es responsabilidad de esta capa.

// money redondea montos a dos decimales para el wire. El almacenamiento usa
// NUMERIC(18,4) y el costo promedio se mezcla sin redondear; solo la
// representación JSON se fija en dos decimales.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		Description:  p.Description,
		Unit:         p.Unit,
		CostPrice:    money(p.CostPrice),
		SellingPrice: money(p.SellingPrice),
		ReorderLevel: p.ReorderLevel,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toProductList(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toSupplierResponse(s *entity.Supplier) dto.PartnerResponse {
	return dto.PartnerResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toCustomerResponse(c *entity.Customer) dto.PartnerResponse {
	return dto.PartnerResponse{
		ID:            c.ID,
		Name:          c.Name,
		ContactPerson: c.ContactPerson,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toPurchaseResponse(o *entity.PurchaseOrder) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:               o.ID,
		CounterpartyID:   o.SupplierID,
		CounterpartyName: o.SupplierName,
		Number:           o.Number,
		OrderDate:        o.OrderDate,
		TotalAmount:      money(o.TotalAmount),
		Status:           o.Status,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			ID:          it.ID,
			OrderID:     it.PurchaseID,
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			UnitPrice:   money(it.UnitPrice),
			TotalPrice:  money(it.TotalPrice),
			ProductName: it.ProductName,
			ProductSKU:  it.ProductSKU,
		})
	}
	return out
}

func toSaleResponse(o *entity.SaleOrder) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:               o.ID,
		CounterpartyID:   o.CustomerID,
		CounterpartyName: o.CustomerName,
		Number:           o.Number,
		OrderDate:        o.OrderDate,
		TotalAmount:      money(o.TotalAmount),
		Status:           o.Status,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			ID:          it.ID,
			OrderID:     it.SaleID,
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			UnitPrice:   money(it.UnitPrice),
			TotalPrice:  money(it.TotalPrice),
			ProductName: it.ProductName,
			ProductSKU:  it.ProductSKU,
		})
	}
	return out
}

func toStockResponse(s *repository.StockWithProduct) dto.StockResponse {
	return dto.StockResponse{
		ID:           s.ID,
		ProductID:    s.ProductID,
		Quantity:     s.Quantity,
		AvgCost:      money(s.AvgCost),
		LastUpdated:  s.LastUpdated,
		ProductName:  s.ProductName,
		ProductSKU:   s.ProductSKU,
		Unit:         s.Unit,
		CostPrice:    money(s.CostPrice),
		SellingPrice: money(s.SellingPrice),
		ReorderLevel: s.ReorderLevel,
	}
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		SourceType: m.SourceType,
		SourceID:   m.SourceID,
		Reason:     m.Reason,
		CreatedAt:  m.CreatedAt,
	}
}
