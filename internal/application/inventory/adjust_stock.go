package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	domaininv "github.com/jhoicas/comercio-api/internal/domain/inventory"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// AdjustStockUseCase es el motor de ajustes de inventario: aplica un delta con
// signo al registro de stock de un producto, recalcula el costo promedio en
// entradas con precio, y agrega un movimiento al libro, todo en la misma
// unidad atómica. Lo usan el ajuste manual (Adjust) y los flujos de orden
// (ApplyInTx, dentro de la transacción del caller).
type AdjustStockUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewAdjustStockUseCase construye el motor.
func NewAdjustStockUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, productRepo: productRepo}
}

// Adjustment entrada para un ajuste de stock.
// Delta es la cantidad con signo: positivo entrada, negativo salida.
// UnitCost es el costo de la entrada para la mezcla ponderada (flujo de compra).
// OverrideAvgCost fija el costo promedio sin mezclar (ajuste manual con costo).
type Adjustment struct {
	ProductID       string
	ProductName     string
	Delta           int64
	Reason          string
	SourceType      string // entity.SourceType*
	SourceID        string
	UnitCost        *decimal.Decimal
	OverrideAvgCost *decimal.Decimal
}

// Adjust aplica un ajuste manual: valida que el delta no sea cero y que el
// producto exista, abre su propia transacción y devuelve el registro resultante.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, in Adjustment) (*entity.StockRecord, error) {
	if in.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	in.ProductName = product.Name
	if in.SourceType == "" {
		in.SourceType = entity.SourceTypeAdjustment
	}

	var record *entity.StockRecord
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		record, err = uc.ApplyInTx(stockRepo, movRepo, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ApplyInTx aplica el ajuste usando los repositorios del caller (misma
// transacción). Bloquea la fila de stock (SELECT FOR UPDATE), crea el registro
// perezosamente si no existe, rechaza cualquier resultado negativo y agrega el
// movimiento correspondiente. Los flujos de compra/venta lo invocan una vez
// por línea; si retorna error el caller debe hacer rollback completo.
func (uc *AdjustStockUseCase) ApplyInTx(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	in Adjustment,
) (*entity.StockRecord, error) {
	now := time.Now()

	record, err := stockRepo.GetByProductForUpdate(in.ProductID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		// Sin registro el FOR UPDATE anterior no bloqueó nada y dos
		// transacciones podrían crear el registro a la vez, pisándose la
		// cantidad. La fila del producto actúa de candado sustituto; tras
		// adquirirlo se relee por si otra transacción ya insertó el registro.
		if err := stockRepo.LockProduct(in.ProductID); err != nil {
			return nil, err
		}
		record, err = stockRepo.GetByProductForUpdate(in.ProductID)
		if err != nil {
			return nil, err
		}
	}
	if record == nil {
		if in.Delta < 0 {
			return nil, &domain.InsufficientStockError{
				ProductID:   in.ProductID,
				ProductName: in.ProductName,
				Requested:   -in.Delta,
				Available:   0,
			}
		}
		record = &entity.StockRecord{
			ID:        uuid.New().String(),
			ProductID: in.ProductID,
			Quantity:  0,
			AvgCost:   decimal.Zero,
		}
	}

	newQty := record.Quantity + in.Delta
	if newQty < 0 {
		return nil, &domain.InsufficientStockError{
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			Requested:   -in.Delta,
			Available:   record.Quantity,
		}
	}

	// El costo promedio solo cambia en entradas con precio (mezcla ponderada)
	// o cuando el ajuste manual trae un costo explícito.
	switch {
	case in.Delta > 0 && in.UnitCost != nil:
		record.AvgCost = domaininv.CostCalculator(
			decimal.NewFromInt(record.Quantity), record.AvgCost,
			decimal.NewFromInt(in.Delta), *in.UnitCost,
		)
	case in.OverrideAvgCost != nil && in.OverrideAvgCost.GreaterThan(decimal.Zero):
		record.AvgCost = *in.OverrideAvgCost
	}

	record.Quantity = newQty
	record.LastUpdated = now
	if err := stockRepo.Upsert(record); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:         uuid.New().String(),
		ProductID:  in.ProductID,
		Type:       entity.MovementTypeForDelta(in.Delta),
		Quantity:   in.Delta,
		SourceType: in.SourceType,
		SourceID:   in.SourceID,
		Reason:     in.Reason,
		CreatedAt:  now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return record, nil
}
