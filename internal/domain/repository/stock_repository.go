package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// StockWithProduct proyección de lectura: registro de stock aplanado con los
// datos del producto (JOIN explícito, no carga perezosa).
type StockWithProduct struct {
	ID           string
	ProductID    string
	Quantity     int64
	AvgCost      decimal.Decimal
	LastUpdated  time.Time
	ProductName  string
	ProductSKU   string
	Unit         string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	ReorderLevel int64
}

// StockSummary totales agregados del inventario.
type StockSummary struct {
	TotalItems      int64
	LowStockItems   int64
	OutOfStockItems int64
	TotalValue      decimal.Decimal // sum(quantity * avg_cost)
}

// StockListFilter filtros para el listado de inventario.
type StockListFilter struct {
	Search     string
	LowStock   bool
	OutOfStock bool
	Limit      int
	Offset     int
}

// StockRepository define el puerto para consultar/actualizar el stock por producto.
// Las escrituras ocurren siempre dentro de la transacción del motor de ajustes.
type StockRepository interface {
	// GetByProduct devuelve nil (sin error) cuando no hay registro todavía.
	GetByProduct(productID string) (*entity.StockRecord, error)
	// GetByProductForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar
	// la secuencia verificar-luego-mutar bajo concurrencia.
	GetByProductForUpdate(productID string) (*entity.StockRecord, error)
	// LockProduct bloquea la fila del producto como candado sustituto cuando el
	// registro de stock todavía no existe: FOR UPDATE sobre cero filas no
	// bloquea nada, así que la creación perezosa se serializa sobre el producto.
	LockProduct(productID string) error
	Upsert(record *entity.StockRecord) error
	GetWithProduct(productID string) (*StockWithProduct, error)
	ListWithProduct(filter StockListFilter) ([]*StockWithProduct, error)
	Summary() (*StockSummary, error)
}
