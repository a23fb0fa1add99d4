package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/application/inventory"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// Fakes en memoria compartidos por los tests de compras y ventas. El txRunner
// toma un snapshot del estado antes de ejecutar el callback y lo restaura si
// este falla, simulando el rollback completo de la transacción real.

type memStockRepo struct {
	records map[string]*entity.StockRecord
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{records: map[string]*entity.StockRecord{}}
}

func (m *memStockRepo) GetByProduct(productID string) (*entity.StockRecord, error) {
	if r, ok := m.records[productID]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (m *memStockRepo) GetByProductForUpdate(productID string) (*entity.StockRecord, error) {
	return m.GetByProduct(productID)
}

func (m *memStockRepo) LockProduct(string) error { return nil }

func (m *memStockRepo) Upsert(record *entity.StockRecord) error {
	cp := *record
	m.records[record.ProductID] = &cp
	return nil
}

func (m *memStockRepo) GetWithProduct(string) (*repository.StockWithProduct, error) {
	return nil, nil
}

func (m *memStockRepo) ListWithProduct(repository.StockListFilter) ([]*repository.StockWithProduct, error) {
	return nil, nil
}

func (m *memStockRepo) Summary() (*repository.StockSummary, error) { return nil, nil }

func (m *memStockRepo) snapshot() map[string]*entity.StockRecord {
	out := make(map[string]*entity.StockRecord, len(m.records))
	for k, v := range m.records {
		cp := *v
		out[k] = &cp
	}
	return out
}

type memMovementRepo struct {
	movements []*entity.StockMovement
}

func (m *memMovementRepo) Create(mov *entity.StockMovement) error {
	cp := *mov
	m.movements = append(m.movements, &cp)
	return nil
}

func (m *memMovementRepo) List(repository.MovementFilter) ([]*entity.StockMovement, error) {
	return m.movements, nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	m := &memProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProductRepo) Create(p *entity.Product) error { m.products[p.ID] = p; return nil }
func (m *memProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, nil
}
func (m *memProductRepo) GetBySKU(string) (*entity.Product, error)       { return nil, nil }
func (m *memProductRepo) Update(p *entity.Product) error                 { m.products[p.ID] = p; return nil }
func (m *memProductRepo) List(string, int, int) ([]*entity.Product, error) { return nil, nil }
func (m *memProductRepo) Delete(id string) error                         { delete(m.products, id); return nil }

type memSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func newMemSupplierRepo(suppliers ...*entity.Supplier) *memSupplierRepo {
	m := &memSupplierRepo{suppliers: map[string]*entity.Supplier{}}
	for _, s := range suppliers {
		m.suppliers[s.ID] = s
	}
	return m
}

func (m *memSupplierRepo) Create(s *entity.Supplier) error { m.suppliers[s.ID] = s; return nil }
func (m *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	if s, ok := m.suppliers[id]; ok {
		return s, nil
	}
	return nil, nil
}
func (m *memSupplierRepo) GetByName(string) (*entity.Supplier, error)        { return nil, nil }
func (m *memSupplierRepo) Update(s *entity.Supplier) error                   { m.suppliers[s.ID] = s; return nil }
func (m *memSupplierRepo) List(string, int, int) ([]*entity.Supplier, error) { return nil, nil }
func (m *memSupplierRepo) Delete(id string) error                            { delete(m.suppliers, id); return nil }

type memCustomerRepo struct {
	customers map[string]*entity.Customer
}

func newMemCustomerRepo(customers ...*entity.Customer) *memCustomerRepo {
	m := &memCustomerRepo{customers: map[string]*entity.Customer{}}
	for _, c := range customers {
		m.customers[c.ID] = c
	}
	return m
}

func (m *memCustomerRepo) Create(c *entity.Customer) error { m.customers[c.ID] = c; return nil }
func (m *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	if c, ok := m.customers[id]; ok {
		return c, nil
	}
	return nil, nil
}
func (m *memCustomerRepo) GetByName(string) (*entity.Customer, error)        { return nil, nil }
func (m *memCustomerRepo) Update(c *entity.Customer) error                   { m.customers[c.ID] = c; return nil }
func (m *memCustomerRepo) List(string, int, int) ([]*entity.Customer, error) { return nil, nil }
func (m *memCustomerRepo) Delete(id string) error                            { delete(m.customers, id); return nil }

type memPurchaseRepo struct {
	orders map[string]*entity.PurchaseOrder
	items  []*entity.PurchaseItem
}

func newMemPurchaseRepo() *memPurchaseRepo {
	return &memPurchaseRepo{orders: map[string]*entity.PurchaseOrder{}}
}

func (m *memPurchaseRepo) Create(order *entity.PurchaseOrder) error {
	cp := *order
	cp.Items = nil
	m.orders[order.ID] = &cp
	return nil
}

func (m *memPurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	cp := *item
	m.items = append(m.items, &cp)
	return nil
}

func (m *memPurchaseRepo) UpdateTotal(orderID string, total decimal.Decimal) error {
	if o, ok := m.orders[orderID]; ok {
		o.TotalAmount = total
	}
	return nil
}

func (m *memPurchaseRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	if o, ok := m.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (m *memPurchaseRepo) GetWithItems(id string) (*entity.PurchaseOrder, error) {
	order, err := m.GetByID(id)
	if order == nil || err != nil {
		return order, err
	}
	for _, it := range m.items {
		if it.PurchaseID == id {
			order.Items = append(order.Items, it)
		}
	}
	return order, nil
}

func (m *memPurchaseRepo) List(repository.OrderListFilter) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *memPurchaseRepo) UpdateStatus(id, status string) error {
	if o, ok := m.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (m *memPurchaseRepo) Delete(id string) error {
	delete(m.orders, id)
	kept := m.items[:0]
	for _, it := range m.items {
		if it.PurchaseID != id {
			kept = append(kept, it)
		}
	}
	m.items = kept
	return nil
}

type memSaleRepo struct {
	orders map[string]*entity.SaleOrder
	items  []*entity.SaleItem
}

func newMemSaleRepo() *memSaleRepo {
	return &memSaleRepo{orders: map[string]*entity.SaleOrder{}}
}

func (m *memSaleRepo) Create(order *entity.SaleOrder) error {
	cp := *order
	cp.Items = nil
	m.orders[order.ID] = &cp
	return nil
}

func (m *memSaleRepo) CreateItem(item *entity.SaleItem) error {
	cp := *item
	m.items = append(m.items, &cp)
	return nil
}

func (m *memSaleRepo) UpdateTotal(orderID string, total decimal.Decimal) error {
	if o, ok := m.orders[orderID]; ok {
		o.TotalAmount = total
	}
	return nil
}

func (m *memSaleRepo) GetByID(id string) (*entity.SaleOrder, error) {
	if o, ok := m.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (m *memSaleRepo) GetWithItems(id string) (*entity.SaleOrder, error) {
	order, err := m.GetByID(id)
	if order == nil || err != nil {
		return order, err
	}
	for _, it := range m.items {
		if it.SaleID == id {
			order.Items = append(order.Items, it)
		}
	}
	return order, nil
}

func (m *memSaleRepo) List(repository.OrderListFilter) ([]*entity.SaleOrder, error) {
	var out []*entity.SaleOrder
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *memSaleRepo) UpdateStatus(id, status string) error {
	if o, ok := m.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (m *memSaleRepo) Delete(id string) error {
	delete(m.orders, id)
	kept := m.items[:0]
	for _, it := range m.items {
		if it.SaleID != id {
			kept = append(kept, it)
		}
	}
	m.items = kept
	return nil
}

// memTxRunner simula la atomicidad: restaura el estado previo cuando el
// callback devuelve error.
type memTxRunner struct {
	stock    *memStockRepo
	mov      *memMovementRepo
	purchase *memPurchaseRepo
	sale     *memSaleRepo
}

func (m *memTxRunner) rollbackPoint() func() {
	stockSnap := m.stock.snapshot()
	movLen := len(m.mov.movements)
	purchaseOrders := make(map[string]*entity.PurchaseOrder, len(m.purchase.orders))
	for k, v := range m.purchase.orders {
		cp := *v
		purchaseOrders[k] = &cp
	}
	purchaseItemsLen := len(m.purchase.items)
	saleOrders := make(map[string]*entity.SaleOrder, len(m.sale.orders))
	for k, v := range m.sale.orders {
		cp := *v
		saleOrders[k] = &cp
	}
	saleItemsLen := len(m.sale.items)

	return func() {
		m.stock.records = stockSnap
		m.mov.movements = m.mov.movements[:movLen]
		m.purchase.orders = purchaseOrders
		m.purchase.items = m.purchase.items[:purchaseItemsLen]
		m.sale.orders = saleOrders
		m.sale.items = m.sale.items[:saleItemsLen]
	}
}

func (m *memTxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	rollback := m.rollbackPoint()
	if err := fn(m.stock, m.mov); err != nil {
		rollback()
		return err
	}
	return nil
}

func (m *memTxRunner) RunPurchase(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	rollback := m.rollbackPoint()
	if err := fn(m.stock, m.mov, m.purchase); err != nil {
		rollback()
		return err
	}
	return nil
}

func (m *memTxRunner) RunSale(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
) error) error {
	rollback := m.rollbackPoint()
	if err := fn(m.stock, m.mov, m.sale); err != nil {
		rollback()
		return err
	}
	return nil
}

type stubPDFGenerator struct{}

func (stubPDFGenerator) GenerateSaleOrderPDF(*entity.SaleOrder, *entity.Customer) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

// fixture agrupa todo lo necesario para armar los casos de uso de órdenes.
type fixture struct {
	tx        *memTxRunner
	products  *memProductRepo
	suppliers *memSupplierRepo
	customers *memCustomerRepo
	adjuster  *inventory.AdjustStockUseCase
}

func newFixture(products ...*entity.Product) *fixture {
	tx := &memTxRunner{
		stock:    newMemStockRepo(),
		mov:      &memMovementRepo{},
		purchase: newMemPurchaseRepo(),
		sale:     newMemSaleRepo(),
	}
	prodRepo := newMemProductRepo(products...)
	return &fixture{
		tx:        tx,
		products:  prodRepo,
		suppliers: newMemSupplierRepo(&entity.Supplier{ID: "s1", Name: "Distribuidora Norte"}),
		customers: newMemCustomerRepo(&entity.Customer{ID: "c1", Name: "Ferretería Central"}),
		adjuster:  inventory.NewAdjustStockUseCase(tx, prodRepo),
	}
}

func (f *fixture) purchaseUC() *PurchaseUseCase {
	return NewPurchaseUseCase(f.tx, f.suppliers, f.products, f.tx.purchase, f.adjuster)
}

func (f *fixture) saleUC() *SaleUseCase {
	return NewSaleUseCase(f.tx, f.customers, f.products, f.tx.sale, f.adjuster, stubPDFGenerator{})
}

// seedStock deja stock inicial aplicando un ajuste manual.
func (f *fixture) seedStock(productID string, qty int64, cost string) {
	c := decimal.RequireFromString(cost)
	_, err := f.adjuster.Adjust(context.Background(), inventory.Adjustment{
		ProductID: productID,
		Delta:     qty,
		UnitCost:  &c,
	})
	if err != nil {
		panic(err)
	}
}
