package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	records map[string]*entity.StockRecord // por productID
	upserts int
	// onLockProduct simula lo que otra transacción dejó confirmado antes de
	// que este caller obtuviera el candado del producto.
	onLockProduct func()
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{records: map[string]*entity.StockRecord{}}
}

func (f *fakeStockRepo) GetByProduct(productID string) (*entity.StockRecord, error) {
	if r, ok := f.records[productID]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStockRepo) GetByProductForUpdate(productID string) (*entity.StockRecord, error) {
	return f.GetByProduct(productID)
}

func (f *fakeStockRepo) LockProduct(string) error {
	if f.onLockProduct != nil {
		f.onLockProduct()
	}
	return nil
}

func (f *fakeStockRepo) Upsert(record *entity.StockRecord) error {
	cp := *record
	f.records[record.ProductID] = &cp
	f.upserts++
	return nil
}

func (f *fakeStockRepo) GetWithProduct(string) (*repository.StockWithProduct, error) {
	return nil, nil
}

func (f *fakeStockRepo) ListWithProduct(repository.StockListFilter) ([]*repository.StockWithProduct, error) {
	return nil, nil
}

func (f *fakeStockRepo) Summary() (*repository.StockSummary, error) { return nil, nil }

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	f.movements = append(f.movements, &cp)
	return nil
}

func (f *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.movements {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, nil
}
func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeProductRepo) Update(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) List(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Delete(id string) error { delete(f.products, id); return nil }

// fakeTxRunner ejecuta el callback directamente con los fakes (sin transacción real).
type fakeTxRunner struct {
	stock *fakeStockRepo
	mov   *fakeMovementRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(f.stock, f.mov)
}

func buildEngine(products ...*entity.Product) (*AdjustStockUseCase, *fakeStockRepo, *fakeMovementRepo) {
	stock := newFakeStockRepo()
	mov := &fakeMovementRepo{}
	uc := NewAdjustStockUseCase(&fakeTxRunner{stock: stock, mov: mov}, newFakeProductRepo(products...))
	return uc, stock, mov
}

func producto(id, name string) *entity.Product {
	return &entity.Product{ID: id, Name: name, Unit: "unidad"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// El primer ajuste positivo crea el registro de stock perezosamente.
func TestAdjust_CreaRegistroEnPrimerAjuste(t *testing.T) {
	uc, stock, mov := buildEngine(producto("p1", "Tornillo"))

	record, err := uc.Adjust(context.Background(), Adjustment{
		ProductID: "p1",
		Delta:     10,
		Reason:    "conteo inicial",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), record.Quantity)
	assert.NotEmpty(t, record.ID, "el registro debe recibir un ID nuevo")

	saved := stock.records["p1"]
	require.NotNil(t, saved)
	assert.Equal(t, int64(10), saved.Quantity)

	require.Len(t, mov.movements, 1)
	assert.Equal(t, entity.MovementTypeIn, mov.movements[0].Type)
	assert.Equal(t, int64(10), mov.movements[0].Quantity)
	assert.Equal(t, entity.SourceTypeAdjustment, mov.movements[0].SourceType)
}

// Un ajuste negativo sobre un producto sin registro falla sin crear nada.
func TestAdjust_NegativoSinRegistroFalla(t *testing.T) {
	uc, stock, mov := buildEngine(producto("p1", "Tornillo"))

	_, err := uc.Adjust(context.Background(), Adjustment{ProductID: "p1", Delta: -3})
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(3), stockErr.Requested)
	assert.Equal(t, int64(0), stockErr.Available)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Empty(t, stock.records, "no debe crearse registro")
	assert.Empty(t, mov.movements, "no debe registrarse movimiento")
}

// El stock nunca queda negativo: un delta mayor al disponible aborta el ajuste.
func TestAdjust_RechazaResultadoNegativo(t *testing.T) {
	uc, stock, mov := buildEngine(producto("p1", "Tornillo"))

	_, err := uc.Adjust(context.Background(), Adjustment{ProductID: "p1", Delta: 5})
	require.NoError(t, err)

	_, err = uc.Adjust(context.Background(), Adjustment{ProductID: "p1", Delta: -8})
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(8), stockErr.Requested)
	assert.Equal(t, int64(5), stockErr.Available)

	assert.Equal(t, int64(5), stock.records["p1"].Quantity, "la cantidad no debe cambiar")
	assert.Len(t, mov.movements, 1, "solo el primer ajuste deja movimiento")
}

// Las entradas con costo re-promedian: 10 uds a 5.00 + 5 uds a 8.00 = 6.00.
func TestAdjust_MezclaCostoPromedioEnEntradas(t *testing.T) {
	uc, stock, _ := buildEngine(producto("p1", "Tornillo"))

	costo5 := decimal.RequireFromString("5.00")
	_, err := uc.Adjust(context.Background(), Adjustment{
		ProductID: "p1", Delta: 10, UnitCost: &costo5,
	})
	require.NoError(t, err)
	assert.True(t, stock.records["p1"].AvgCost.Equal(costo5))

	costo8 := decimal.RequireFromString("8.00")
	record, err := uc.Adjust(context.Background(), Adjustment{
		ProductID: "p1", Delta: 5, UnitCost: &costo8,
	})
	require.NoError(t, err)
	assert.True(t, record.AvgCost.Equal(decimal.RequireFromString("6.00")),
		"promedio ponderado: (10*5 + 5*8) / 15 = 6.00, se obtuvo %s", record.AvgCost)
	assert.Equal(t, int64(15), record.Quantity)
}

// Las salidas no tocan el costo promedio.
func TestAdjust_SalidaNoCambiaCosto(t *testing.T) {
	uc, stock, _ := buildEngine(producto("p1", "Tornillo"))

	costo := decimal.RequireFromString("5.00")
	_, err := uc.Adjust(context.Background(), Adjustment{ProductID: "p1", Delta: 10, UnitCost: &costo})
	require.NoError(t, err)

	record, err := uc.Adjust(context.Background(), Adjustment{ProductID: "p1", Delta: -4})
	require.NoError(t, err)
	assert.True(t, record.AvgCost.Equal(costo), "el costo promedio no debe cambiar en salidas")
	assert.Equal(t, int64(6), stock.records["p1"].Quantity)
}

// Un ajuste manual con costo explícito fija el promedio sin mezclar.
func TestAdjust_OverrideFijaCostoPromedio(t *testing.T) {
	uc, _, _ := buildEngine(producto("p1", "Tornillo"))

	costo := decimal.RequireFromString("5.00")
	_, err := uc.Adjust(context.Background(), Adjustment{ProductID: "p1", Delta: 10, UnitCost: &costo})
	require.NoError(t, err)

	nuevo := decimal.RequireFromString("7.50")
	record, err := uc.Adjust(context.Background(), Adjustment{
		ProductID: "p1", Delta: 2, OverrideAvgCost: &nuevo,
	})
	require.NoError(t, err)
	assert.True(t, record.AvgCost.Equal(nuevo))
}

// Delta cero es inválido.
func TestAdjust_DeltaCeroEsInvalido(t *testing.T) {
	uc, _, _ := buildEngine(producto("p1", "Tornillo"))

	_, err := uc.Adjust(context.Background(), Adjustment{ProductID: "p1", Delta: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Producto inexistente.
func TestAdjust_ProductoInexistente(t *testing.T) {
	uc, _, _ := buildEngine()

	_, err := uc.Adjust(context.Background(), Adjustment{ProductID: "nope", Delta: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Dos transacciones que ven "sin registro" a la vez se serializan con el
// candado del producto: la segunda relee tras adquirirlo y suma sobre lo que
// la primera dejó confirmado, en vez de sobrescribirlo con su propio delta.
func TestAdjust_CreacionPerezosaSerializada(t *testing.T) {
	uc, stock, mov := buildEngine(producto("p1", "Tornillo"))

	costoPrevio := decimal.RequireFromString("5.00")
	stock.onLockProduct = func() {
		// La otra transacción ganó el candado, insertó +10 a 5.00 y confirmó.
		if _, ok := stock.records["p1"]; !ok {
			stock.records["p1"] = &entity.StockRecord{
				ID:        "r-previo",
				ProductID: "p1",
				Quantity:  10,
				AvgCost:   costoPrevio,
			}
		}
	}

	costo8 := decimal.RequireFromString("8.00")
	record, err := uc.Adjust(context.Background(), Adjustment{
		ProductID: "p1", Delta: 5, UnitCost: &costo8,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(15), record.Quantity,
		"debe sumar sobre el registro releído, no sobrescribirlo")
	assert.Equal(t, "r-previo", record.ID, "se reutiliza el registro existente")
	assert.True(t, record.AvgCost.Equal(decimal.RequireFromString("6.00")),
		"la mezcla parte del costo ya confirmado")

	var suma int64
	for _, m := range mov.movements {
		suma += m.Quantity
	}
	assert.Equal(t, int64(5), suma, "solo este ajuste dejó movimiento aquí")
}

// La cantidad actual siempre es reconstruible sumando el libro de movimientos.
func TestAdjust_LibroReconstruyeCantidad(t *testing.T) {
	uc, stock, mov := buildEngine(producto("p1", "Tornillo"))

	deltas := []int64{10, -3, 7, -5, 2}
	for _, d := range deltas {
		_, err := uc.Adjust(context.Background(), Adjustment{ProductID: "p1", Delta: d})
		require.NoError(t, err)
	}

	var suma int64
	for _, m := range mov.movements {
		suma += m.Quantity
	}
	assert.Equal(t, stock.records["p1"].Quantity, suma,
		"sum(movimientos) debe igualar la cantidad actual")
	assert.Equal(t, int64(11), suma)
}
