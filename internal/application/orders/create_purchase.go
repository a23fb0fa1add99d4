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

// PurchaseUseCase flujo de órdenes de compra: creación transaccional con
// entradas de stock por línea, consultas, transición de estado y borrado.
type PurchaseUseCase struct {
	txRunner     PurchaseTxRunner
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
	adjuster     StockAdjuster
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner PurchaseTxRunner,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	adjuster StockAdjuster,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		adjuster:     adjuster,
	}
}

// validateOrderItems valida la lista de líneas compartida por compras y ventas:
// no vacía, cantidades positivas y precios unitarios positivos.
func validateOrderItems(items []dto.OrderItemRequest) error {
	if len(items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 || !it.UnitPrice.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// resolveProducts carga los productos de las líneas y falla con ErrNotFound si
// alguno no existe. Validación de solo lectura, fuera de la transacción.
func resolveProducts(productRepo repository.ProductRepository, items []dto.OrderItemRequest) (map[string]*entity.Product, error) {
	products := make(map[string]*entity.Product, len(items))
	for _, it := range items {
		if _, ok := products[it.ProductID]; ok {
			continue
		}
		product, err := productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		products[it.ProductID] = product
	}
	return products, nil
}

// Create crea la orden de compra con sus líneas y aplica la entrada de stock
// de cada línea (mezcla de costo promedio con el precio unitario) en una sola
// transacción. Cualquier falla revierte la orden, las líneas y todos los
// efectos de stock y movimientos ya aplicados.
func (uc *PurchaseUseCase) Create(ctx context.Context, in dto.CreatePurchaseRequest) (*entity.PurchaseOrder, error) {
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
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
	order := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		SupplierID:   in.SupplierID,
		SupplierName: supplier.Name,
		Number:       NewOrderNumber(PurchaseNumberPrefix, now),
		OrderDate:    now,
		TotalAmount:  decimal.Zero,
		Status:       entity.OrderStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunPurchase(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		if err := purchaseRepo.Create(order); err != nil {
			return err
		}
		total := decimal.Zero
		// Las líneas se procesan en el orden del caller para que el libro de
		// movimientos quede determinista.
		for _, it := range in.Items {
			product := products[it.ProductID]
			lineTotal := it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
			item := &entity.PurchaseItem{
				ID:          uuid.New().String(),
				PurchaseID:  order.ID,
				ProductID:   it.ProductID,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				TotalPrice:  lineTotal,
				ProductName: product.Name,
				ProductSKU:  product.SKU,
			}
			if err := purchaseRepo.CreateItem(item); err != nil {
				return err
			}
			unitCost := it.UnitPrice
			if _, err := uc.adjuster.ApplyInTx(stockRepo, movRepo, inventory.Adjustment{
				ProductID:   it.ProductID,
				ProductName: product.Name,
				Delta:       it.Quantity,
				Reason:      fmt.Sprintf("orden de compra %s", order.Number),
				SourceType:  entity.SourceTypePurchase,
				SourceID:    order.ID,
				UnitCost:    &unitCost,
			}); err != nil {
				return err
			}
			total = total.Add(lineTotal)
			order.Items = append(order.Items, item)
		}
		order.TotalAmount = total
		return purchaseRepo.UpdateTotal(order.ID, total)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetWithItems devuelve la orden con sus líneas y proyección del producto.
func (uc *PurchaseUseCase) GetWithItems(id string) (*entity.PurchaseOrder, error) {
	order, err := uc.purchaseRepo.GetWithItems(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List lista órdenes de compra con el nombre del proveedor proyectado.
func (uc *PurchaseUseCase) List(filter repository.OrderListFilter) ([]*entity.PurchaseOrder, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.purchaseRepo.List(filter)
}

// UpdateStatus cambia el estado de la orden. Las transiciones de estado no
// tienen efectos de stock: el stock se aplicó al crear y cancelar no lo revierte.
func (uc *PurchaseUseCase) UpdateStatus(id, status string) (*entity.PurchaseOrder, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.purchaseRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}

// Delete elimina la orden y sus líneas. Las órdenes completadas son inmutables:
// borrar una falla con ErrInvalidState.
func (uc *PurchaseUseCase) Delete(id string) error {
	order, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status == entity.OrderStatusCompleted {
		return domain.ErrInvalidState
	}
	return uc.purchaseRepo.Delete(id)
}
