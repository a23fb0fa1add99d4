package usecase

import (
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// InventoryQueryUseCase lado de lectura del inventario: listados aplanados con
// proyección del producto (JOIN explícito), resumen y libro de movimientos.
// Nunca muta stock; eso es exclusivo del motor de ajustes.
type InventoryQueryUseCase struct {
	stockRepo   repository.StockRepository
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewInventoryQueryUseCase construye el caso de uso.
func NewInventoryQueryUseCase(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) *InventoryQueryUseCase {
	return &InventoryQueryUseCase{stockRepo: stockRepo, movRepo: movRepo, productRepo: productRepo}
}

// List lista el inventario con datos del producto; admite filtros de búsqueda,
// bajo stock (cantidad <= punto de reorden) y agotados.
func (uc *InventoryQueryUseCase) List(filter repository.StockListFilter) ([]*repository.StockWithProduct, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.stockRepo.ListWithProduct(filter)
}

// GetByProduct devuelve el registro de stock aplanado de un producto.
func (uc *InventoryQueryUseCase) GetByProduct(productID string) (*repository.StockWithProduct, error) {
	record, err := uc.stockRepo.GetWithProduct(productID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

// Summary devuelve los totales agregados del inventario.
func (uc *InventoryQueryUseCase) Summary() (*repository.StockSummary, error) {
	return uc.stockRepo.Summary()
}

// Movements consulta el libro de movimientos. Si el filtro trae ProductID se
// valida que el producto exista.
func (uc *InventoryQueryUseCase) Movements(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.ProductID != "" {
		product, err := uc.productRepo.GetByID(filter.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
	}
	return uc.movRepo.List(filter)
}
