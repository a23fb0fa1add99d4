package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// Una venta descuenta stock, acumula el total y deja movimientos de salida.
func TestSaleCreate_DescuentaStock(t *testing.T) {
	f := newFixture(&entity.Product{ID: "p1", Name: "Tornillo", SKU: "TOR-01"})
	f.seedStock("p1", 10, "5.00")
	uc := f.saleUC()

	order, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		CustomerID: "c1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 4, UnitPrice: precio("9.50")}},
	})
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(precio("38.00")))
	assert.Equal(t, "Ferretería Central", order.CustomerName)
	assert.Equal(t, entity.OrderStatusPending, order.Status)

	record := f.tx.stock.records["p1"]
	assert.Equal(t, int64(6), record.Quantity)
	assert.True(t, record.AvgCost.Equal(precio("5.00")), "la salida no toca el costo promedio")

	// Semilla + salida de la venta.
	require.Len(t, f.tx.mov.movements, 2)
	salida := f.tx.mov.movements[1]
	assert.Equal(t, entity.MovementTypeOut, salida.Type)
	assert.Equal(t, int64(-4), salida.Quantity)
	assert.Equal(t, entity.SourceTypeSale, salida.SourceType)
	assert.Equal(t, order.ID, salida.SourceID)
}

// Si cualquier línea queda corta, la venta completa aborta sin efectos:
// ni orden, ni líneas, ni stock descontado, ni movimientos.
func TestSaleCreate_LineaInsuficienteAbortaTodo(t *testing.T) {
	f := newFixture(
		&entity.Product{ID: "p1", Name: "Tornillo"},
		&entity.Product{ID: "p2", Name: "Tuerca"},
	)
	f.seedStock("p1", 10, "5.00")
	f.seedStock("p2", 2, "3.00")
	uc := f.saleUC()

	movimientosPrevios := len(f.tx.mov.movements)

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		CustomerID: "c1",
		Items: []dto.OrderItemRequest{
			{ProductID: "p1", Quantity: 4, UnitPrice: precio("9.00")},
			{ProductID: "p2", Quantity: 5, UnitPrice: precio("6.00")},
		},
	})
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p2", stockErr.ProductID)
	assert.Equal(t, "Tuerca", stockErr.ProductName)
	assert.Equal(t, int64(5), stockErr.Requested)
	assert.Equal(t, int64(2), stockErr.Available)

	assert.Empty(t, f.tx.sale.orders, "la orden no debe persistirse")
	assert.Empty(t, f.tx.sale.items)
	assert.Equal(t, int64(10), f.tx.stock.records["p1"].Quantity, "p1 no debe descontarse")
	assert.Equal(t, int64(2), f.tx.stock.records["p2"].Quantity)
	assert.Len(t, f.tx.mov.movements, movimientosPrevios, "sin movimientos nuevos")
}

// Vender un producto que nunca tuvo stock también es insuficiencia (disponible 0).
func TestSaleCreate_SinRegistroDeStock(t *testing.T) {
	f := newFixture(&entity.Product{ID: "p1", Name: "Tornillo"})
	uc := f.saleUC()

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		CustomerID: "c1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: precio("2.00")}},
	})
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(0), stockErr.Available)
}

// Vender exactamente todo el stock disponible es válido y deja cantidad cero.
func TestSaleCreate_VenderTodoElStock(t *testing.T) {
	f := newFixture(&entity.Product{ID: "p1", Name: "Tornillo"})
	f.seedStock("p1", 5, "4.00")
	uc := f.saleUC()

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		CustomerID: "c1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 5, UnitPrice: precio("7.00")}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.tx.stock.records["p1"].Quantity)
}

// El libro de movimientos reconstruye la cantidad tras compras y ventas mezcladas.
func TestOrdenes_LibroReconstruyeCantidad(t *testing.T) {
	f := newFixture(&entity.Product{ID: "p1", Name: "Tornillo"})
	compraUC := f.purchaseUC()
	ventaUC := f.saleUC()

	_, err := compraUC.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "s1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 10, UnitPrice: precio("5.00")}},
	})
	require.NoError(t, err)

	_, err = ventaUC.Create(context.Background(), dto.CreateSaleRequest{
		CustomerID: "c1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 3, UnitPrice: precio("9.00")}},
	})
	require.NoError(t, err)

	_, err = compraUC.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "s1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 4, UnitPrice: precio("6.00")}},
	})
	require.NoError(t, err)

	var suma int64
	for _, m := range f.tx.mov.movements {
		suma += m.Quantity
	}
	assert.Equal(t, f.tx.stock.records["p1"].Quantity, suma,
		"sum(movimientos) debe igualar la cantidad actual")
	assert.Equal(t, int64(11), suma)
}

// Cancelar una venta no devuelve el stock descontado.
func TestSaleUpdateStatus_CancelarNoRevierte(t *testing.T) {
	f := newFixture(&entity.Product{ID: "p1", Name: "Tornillo"})
	f.seedStock("p1", 10, "5.00")
	uc := f.saleUC()

	order, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		CustomerID: "c1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 4, UnitPrice: precio("9.00")}},
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)

	assert.Equal(t, int64(6), f.tx.stock.records["p1"].Quantity,
		"cancelar es solo un cambio de estado")
}

// Las ventas completadas no se pueden borrar.
func TestSaleDelete_CompletadaEsInmutable(t *testing.T) {
	f := newFixture(&entity.Product{ID: "p1", Name: "Tornillo"})
	f.seedStock("p1", 10, "5.00")
	uc := f.saleUC()

	order, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		CustomerID: "c1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: precio("2.00")}},
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(order.ID, entity.OrderStatusCompleted)
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(order.ID), domain.ErrInvalidState)
}

// GeneratePDF delega en el generador con la orden y el cliente resueltos.
func TestSaleGeneratePDF(t *testing.T) {
	f := newFixture(&entity.Product{ID: "p1", Name: "Tornillo"})
	f.seedStock("p1", 10, "5.00")
	uc := f.saleUC()

	order, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		CustomerID: "c1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: precio("2.00")}},
	})
	require.NoError(t, err)

	pdf, err := uc.GeneratePDF(order.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	_, err = uc.GeneratePDF("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
