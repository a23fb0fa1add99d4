package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de órdenes de compra.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la cabecera de una orden de compra.
func (r *PurchaseRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, supplier_id, order_number, order_date, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.SupplierID, order.Number, order.OrderDate,
		order.TotalAmount, order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la orden de compra.
func (r *PurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	query := `
		INSERT INTO purchase_items (id, purchase_id, product_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PurchaseID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("insert purchase item: %w", err)
	}
	return nil
}

// UpdateTotal fija el total de la orden una vez sumadas sus líneas.
func (r *PurchaseRepo) UpdateTotal(orderID string, total decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET total_amount = $2, updated_at = now() WHERE id = $1`,
		orderID, total,
	)
	if err != nil {
		return fmt.Errorf("update purchase total: %w", err)
	}
	return nil
}

const purchaseColumns = `
	po.id, po.supplier_id, s.name, po.order_number, po.order_date,
	po.total_amount, po.status, po.created_at, po.updated_at`

func scanPurchase(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := row.Scan(&o.ID, &o.SupplierID, &o.SupplierName, &o.Number, &o.OrderDate,
		&o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID obtiene la cabecera de una orden de compra (sin líneas).
func (r *PurchaseRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchase_orders po
		JOIN suppliers s ON s.id = po.supplier_id
		WHERE po.id = $1`
	o, err := scanPurchase(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return o, nil
}

// GetWithItems obtiene la orden con sus líneas y datos del producto proyectados.
func (r *PurchaseRepo) GetWithItems(id string) (*entity.PurchaseOrder, error) {
	order, err := r.GetByID(id)
	if err != nil || order == nil {
		return order, err
	}

	query := `
		SELECT i.id, i.purchase_id, i.product_id, i.quantity, i.unit_price, i.total_price, p.name, p.sku
		FROM purchase_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.purchase_id = $1
		ORDER BY p.name`
	rows, err := r.q.Query(context.Background(), query, id)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.Quantity,
			&it.UnitPrice, &it.TotalPrice, &it.ProductName, &it.ProductSKU); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		order.Items = append(order.Items, &it)
	}
	return order, rows.Err()
}

// List lista órdenes de compra con filtros opcionales, de la más reciente a la más antigua.
func (r *PurchaseRepo) List(filter repository.OrderListFilter) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchase_orders po
		JOIN suppliers s ON s.id = po.supplier_id`
	var conds []string
	args := []any{}
	if filter.CounterpartyID != "" {
		args = append(args, filter.CounterpartyID)
		conds = append(conds, fmt.Sprintf(`po.supplier_id = $%d`, len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf(`po.status = $%d`, len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf(`(po.order_number ILIKE $%d OR s.name ILIKE $%d)`, len(args), len(args)))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		conds = append(conds, fmt.Sprintf(`po.order_date::date = $%d::date`, len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += ` WHERE ` + c
		} else {
			query += ` AND ` + c
		}
	}
	query += fmt.Sprintf(` ORDER BY po.created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la orden.
func (r *PurchaseRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	return nil
}

// Delete elimina la orden; las líneas caen por ON DELETE CASCADE.
func (r *PurchaseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	return nil
}
