package orders

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

func precio(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Una compra de dos líneas acumula el total, ingresa stock y re-promedia costos.
func TestPurchaseCreate_TotalesYEntradasDeStock(t *testing.T) {
	f := newFixture(
		&entity.Product{ID: "p1", Name: "Tornillo", SKU: "TOR-01"},
		&entity.Product{ID: "p2", Name: "Tuerca", SKU: "TUE-01"},
	)
	uc := f.purchaseUC()

	order, err := uc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "s1",
		Items: []dto.OrderItemRequest{
			{ProductID: "p1", Quantity: 4, UnitPrice: precio("10.00")},
			{ProductID: "p2", Quantity: 6, UnitPrice: precio("3.00")},
		},
	})
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(precio("58.00")),
		"total = 4*10 + 6*3 = 58.00, se obtuvo %s", order.TotalAmount)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, "Distribuidora Norte", order.SupplierName)
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].TotalPrice.Equal(precio("40.00")))

	// La orden y sus líneas quedaron persistidas con el total actualizado.
	saved, err := f.tx.purchase.GetWithItems(order.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.True(t, saved.TotalAmount.Equal(precio("58.00")))
	assert.Len(t, saved.Items, 2)

	// Cada línea ingresó stock con su precio unitario como costo.
	s1 := f.tx.stock.records["p1"]
	require.NotNil(t, s1)
	assert.Equal(t, int64(4), s1.Quantity)
	assert.True(t, s1.AvgCost.Equal(precio("10.00")))

	s2 := f.tx.stock.records["p2"]
	require.NotNil(t, s2)
	assert.Equal(t, int64(6), s2.Quantity)

	// Un movimiento de entrada por línea, ligado a la orden.
	require.Len(t, f.tx.mov.movements, 2)
	for _, m := range f.tx.mov.movements {
		assert.Equal(t, entity.MovementTypeIn, m.Type)
		assert.Equal(t, entity.SourceTypePurchase, m.SourceType)
		assert.Equal(t, order.ID, m.SourceID)
	}
}

// Una segunda compra del mismo producto mezcla el costo promedio ponderado.
func TestPurchaseCreate_RePromediaCosto(t *testing.T) {
	f := newFixture(&entity.Product{ID: "p1", Name: "Tornillo"})
	uc := f.purchaseUC()

	_, err := uc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "s1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 10, UnitPrice: precio("5.00")}},
	})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "s1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 5, UnitPrice: precio("8.00")}},
	})
	require.NoError(t, err)

	record := f.tx.stock.records["p1"]
	assert.Equal(t, int64(15), record.Quantity)
	assert.True(t, record.AvgCost.Equal(precio("6.00")),
		"(10*5 + 5*8) / 15 = 6.00, se obtuvo %s", record.AvgCost)
}

// Proveedor inexistente.
func TestPurchaseCreate_ProveedorInexistente(t *testing.T) {
	f := newFixture(&entity.Product{ID: "p1", Name: "Tornillo"})
	uc := f.purchaseUC()

	_, err := uc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "nope",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: precio("1.00")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Líneas inválidas: vacías, cantidad no positiva o precio no positivo.
func TestPurchaseCreate_LineasInvalidas(t *testing.T) {
	f := newFixture(&entity.Product{ID: "p1", Name: "Tornillo"})
	uc := f.purchaseUC()

	casos := []struct {
		nombre string
		items  []dto.OrderItemRequest
	}{
		{"sin líneas", nil},
		{"cantidad cero", []dto.OrderItemRequest{{ProductID: "p1", Quantity: 0, UnitPrice: precio("1.00")}}},
		{"cantidad negativa", []dto.OrderItemRequest{{ProductID: "p1", Quantity: -2, UnitPrice: precio("1.00")}}},
		{"precio cero", []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.Zero}}},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := uc.Create(context.Background(), dto.CreatePurchaseRequest{
				SupplierID: "s1",
				Items:      c.items,
			})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, f.tx.purchase.orders, "ninguna orden debe persistirse")
}

// Si una línea referencia un producto inexistente, nada queda persistido.
func TestPurchaseCreate_ProductoInexistenteNoDejasRastro(t *testing.T) {
	f := newFixture(&entity.Product{ID: "p1", Name: "Tornillo"})
	uc := f.purchaseUC()

	_, err := uc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "s1",
		Items: []dto.OrderItemRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: precio("1.00")},
			{ProductID: "fantasma", Quantity: 1, UnitPrice: precio("1.00")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.tx.purchase.orders)
	assert.Empty(t, f.tx.mov.movements)
	assert.Empty(t, f.tx.stock.records)
}

// Cambios de estado: válidos pasan, desconocidos fallan, cancelar no revierte stock.
func TestPurchaseUpdateStatus(t *testing.T) {
	f := newFixture(&entity.Product{ID: "p1", Name: "Tornillo"})
	uc := f.purchaseUC()

	order, err := uc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "s1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 3, UnitPrice: precio("2.00")}},
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(order.ID, "enviada")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := uc.UpdateStatus(order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, updated.Status)

	// Cancelar es solo un cambio de estado: el stock ingresado permanece.
	assert.Equal(t, int64(3), f.tx.stock.records["p1"].Quantity)
	assert.Len(t, f.tx.mov.movements, 1)
}

// Las órdenes completadas son inmutables: no se pueden borrar.
func TestPurchaseDelete_CompletadaEsInmutable(t *testing.T) {
	f := newFixture(&entity.Product{ID: "p1", Name: "Tornillo"})
	uc := f.purchaseUC()

	order, err := uc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "s1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: precio("2.00")}},
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(order.ID, entity.OrderStatusCompleted)
	require.NoError(t, err)

	err = uc.Delete(order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	saved, _ := f.tx.purchase.GetByID(order.ID)
	assert.NotNil(t, saved, "la orden completada debe seguir existiendo")
}

// Una orden pendiente sí se puede borrar, junto con sus líneas.
func TestPurchaseDelete_PendienteSeBorraConLineas(t *testing.T) {
	f := newFixture(&entity.Product{ID: "p1", Name: "Tornillo"})
	uc := f.purchaseUC()

	order, err := uc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "s1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: precio("2.00")}},
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(order.ID))
	saved, _ := f.tx.purchase.GetByID(order.ID)
	assert.Nil(t, saved)
	assert.Empty(t, f.tx.purchase.items)
}

// Formato del número de orden: prefijo + fecha + sufijo de 8 caracteres.
func TestNewOrderNumber_Formato(t *testing.T) {
	now := time.Date(2025, 1, 14, 10, 0, 0, 0, time.UTC)

	po := NewOrderNumber(PurchaseNumberPrefix, now)
	assert.Regexp(t, regexp.MustCompile(`^PO20250114[0-9A-F]{8}$`), po)

	so := NewOrderNumber(SaleNumberPrefix, now)
	assert.Regexp(t, regexp.MustCompile(`^SO20250114[0-9A-F]{8}$`), so)

	assert.NotEqual(t, po[10:], so[10:], "los sufijos aleatorios no deben coincidir")
}
