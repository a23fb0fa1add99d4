package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// OrderListFilter filtros para listar órdenes (compra o venta).
type OrderListFilter struct {
	CounterpartyID string // supplier o customer según el repositorio
	Status         string
	Search         string     // número de orden o nombre de la contraparte
	Date           *time.Time // ventas de un día concreto
	Limit          int
	Offset         int
}

// PurchaseRepository define el puerto de persistencia para órdenes de compra.
// Create/CreateItem/UpdateTotal se usan dentro de la transacción del flujo de
// compra; el resto opera sobre el pool.
type PurchaseRepository interface {
	Create(order *entity.PurchaseOrder) error
	CreateItem(item *entity.PurchaseItem) error
	UpdateTotal(orderID string, total decimal.Decimal) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetWithItems incluye las líneas con nombre y SKU del producto proyectados.
	GetWithItems(id string) (*entity.PurchaseOrder, error)
	List(filter OrderListFilter) ([]*entity.PurchaseOrder, error)
	UpdateStatus(id, status string) error
	// Delete elimina la orden y sus líneas (ON DELETE CASCADE).
	Delete(id string) error
}

// SaleRepository define el puerto de persistencia para órdenes de venta.
type SaleRepository interface {
	Create(order *entity.SaleOrder) error
	CreateItem(item *entity.SaleItem) error
	UpdateTotal(orderID string, total decimal.Decimal) error
	GetByID(id string) (*entity.SaleOrder, error)
	GetWithItems(id string) (*entity.SaleOrder, error)
	List(filter OrderListFilter) ([]*entity.SaleOrder, error)
	UpdateStatus(id, status string) error
	Delete(id string) error
}
