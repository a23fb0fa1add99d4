package orders

import (
	"context"

	"github.com/jhoicas/comercio-api/internal/application/inventory"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// PurchaseTxRunner ejecuta una función dentro de una transacción que incluye
// los repos de inventario y de órdenes de compra. Todo el flujo de creación
// (orden, líneas, ajustes de stock, movimientos, total) es una unidad atómica.
type PurchaseTxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}

// SaleTxRunner igual que PurchaseTxRunner pero con el repo de ventas.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// StockAdjuster interfaz para integrar los flujos de orden con el motor de
// inventario. ApplyInTx aplica un ajuste usando los repositorios del caller
// (misma transacción); si retorna error el caller debe hacer rollback.
type StockAdjuster interface {
	ApplyInTx(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		in inventory.Adjustment,
	) (*entity.StockRecord, error)
}

// SaleOrderPDFGenerator genera la representación PDF de una orden de venta.
type SaleOrderPDFGenerator interface {
	GenerateSaleOrderPDF(order *entity.SaleOrder, customer *entity.Customer) ([]byte, error)
}
