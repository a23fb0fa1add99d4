package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/inventory"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// SaleUseCase flujo de órdenes de venta: validación previa de disponibilidad,
// creación transaccional con salidas de stock por línea, consultas, estado,
// borrado y PDF.
type SaleUseCase struct {
	txRunner     SaleTxRunner
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	adjuster     StockAdjuster
	pdfGenerator SaleOrderPDFGenerator
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner SaleTxRunner,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	adjuster StockAdjuster,
	pdfGenerator SaleOrderPDFGenerator,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		adjuster:     adjuster,
		pdfGenerator: pdfGenerator,
	}
}

// Create crea la orden de venta en una sola transacción con disciplina de dos
// fases: primero bloquea y verifica la disponibilidad de TODAS las líneas; si
// alguna queda corta, la operación completa aborta con InsufficientStockError
// sin persistir orden, líneas, stock ni movimientos. Solo después de que todas
// pasan se crea la orden y se aplican las salidas.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*entity.SaleOrder, error) {
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if err := validateOrderItems(in.Items); err != nil {
		return nil, err
	}
	products, err := resolveProducts(uc.productRepo, in.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.SaleOrder{
		ID:           uuid.New().String(),
		CustomerID:   in.CustomerID,
		CustomerName: customer.Name,
		Number:       NewOrderNumber(SaleNumberPrefix, now),
		OrderDate:    now,
		TotalAmount:  decimal.Zero,
		Status:       entity.OrderStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
	) error {
		// Fase 1: verificación previa con bloqueo de fila. El FOR UPDATE
		// serializa ventas concurrentes del mismo producto, de modo que la
		// secuencia verificar-luego-descontar no puede sobrevender.
		for _, it := range in.Items {
			record, err := stockRepo.GetByProductForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			var available int64
			if record != nil {
				available = record.Quantity
			}
			if available < it.Quantity {
				return &domain.InsufficientStockError{
					ProductID:   it.ProductID,
					ProductName: products[it.ProductID].Name,
					Requested:   it.Quantity,
					Available:   available,
				}
			}
		}

		// Fase 2: crear orden, líneas y salidas de stock.
		if err := saleRepo.Create(order); err != nil {
			return err
		}
		total := decimal.Zero
		for _, it := range in.Items {
			product := products[it.ProductID]
			lineTotal := it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
			item := &entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      order.ID,
				ProductID:   it.ProductID,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				TotalPrice:  lineTotal,
				ProductName: product.Name,
				ProductSKU:  product.SKU,
			}
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
			// Salida: delta negativo, el costo promedio no se toca.
			if _, err := uc.adjuster.ApplyInTx(stockRepo, movRepo, inventory.Adjustment{
				ProductID:   it.ProductID,
				ProductName: product.Name,
				Delta:       -it.Quantity,
				Reason:      fmt.Sprintf("orden de venta %s", order.Number),
				SourceType:  entity.SourceTypeSale,
				SourceID:    order.ID,
			}); err != nil {
				return err
			}
			total = total.Add(lineTotal)
			order.Items = append(order.Items, item)
		}
		order.TotalAmount = total
		return saleRepo.UpdateTotal(order.ID, total)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetWithItems devuelve la orden con sus líneas y proyección del producto.
func (uc *SaleUseCase) GetWithItems(id string) (*entity.SaleOrder, error) {
	order, err := uc.saleRepo.GetWithItems(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List lista órdenes de venta con el nombre del cliente proyectado.
func (uc *SaleUseCase) List(filter repository.OrderListFilter) ([]*entity.SaleOrder, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.saleRepo.List(filter)
}

// UpdateStatus cambia el estado de la orden, sin efectos de stock.
func (uc *SaleUseCase) UpdateStatus(id, status string) (*entity.SaleOrder, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.saleRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}

// Delete elimina la orden y sus líneas; las completadas no se pueden borrar.
func (uc *SaleUseCase) Delete(id string) error {
	order, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status == entity.OrderStatusCompleted {
		return domain.ErrInvalidState
	}
	return uc.saleRepo.Delete(id)
}

// GeneratePDF genera la representación PDF de la orden de venta.
func (uc *SaleUseCase) GeneratePDF(id string) ([]byte, error) {
	order, err := uc.GetWithItems(id)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(order.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdfGenerator.GenerateSaleOrderPDF(order, customer)
}
