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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de órdenes de venta.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de una orden de venta.
func (r *SaleRepo) Create(order *entity.SaleOrder) error {
	query := `
		INSERT INTO sale_orders (id, customer_id, order_number, order_date, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerID, order.Number, order.OrderDate,
		order.TotalAmount, order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la orden de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// UpdateTotal fija el total de la orden una vez sumadas sus líneas.
func (r *SaleRepo) UpdateTotal(orderID string, total decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sale_orders SET total_amount = $2, updated_at = now() WHERE id = $1`,
		orderID, total,
	)
	if err != nil {
		return fmt.Errorf("update sale total: %w", err)
	}
	return nil
}

const saleColumns = `
	so.id, so.customer_id, c.name, so.order_number, so.order_date,
	so.total_amount, so.status, so.created_at, so.updated_at`

func scanSale(row pgx.Row) (*entity.SaleOrder, error) {
	var o entity.SaleOrder
	err := row.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.Number, &o.OrderDate,
		&o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID obtiene la cabecera de una orden de venta (sin líneas).
func (r *SaleRepo) GetByID(id string) (*entity.SaleOrder, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sale_orders so
		JOIN customers c ON c.id = so.customer_id
		WHERE so.id = $1`
	o, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale order: %w", err)
	}
	return o, nil
}

// GetWithItems obtiene la orden con sus líneas y datos del producto proyectados.
func (r *SaleRepo) GetWithItems(id string) (*entity.SaleOrder, error) {
	order, err := r.GetByID(id)
	if err != nil || order == nil {
		return order, err
	}

	query := `
		SELECT i.id, i.sale_id, i.product_id, i.quantity, i.unit_price, i.total_price, p.name, p.sku
		FROM sale_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.sale_id = $1
		ORDER BY p.name`
	rows, err := r.q.Query(context.Background(), query, id)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity,
			&it.UnitPrice, &it.TotalPrice, &it.ProductName, &it.ProductSKU); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		order.Items = append(order.Items, &it)
	}
	return order, rows.Err()
}

// List lista órdenes de venta con filtros opcionales, de la más reciente a la más antigua.
func (r *SaleRepo) List(filter repository.OrderListFilter) ([]*entity.SaleOrder, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sale_orders so
		JOIN customers c ON c.id = so.customer_id`
	var conds []string
	args := []any{}
	if filter.CounterpartyID != "" {
		args = append(args, filter.CounterpartyID)
		conds = append(conds, fmt.Sprintf(`so.customer_id = $%d`, len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf(`so.status = $%d`, len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf(`(so.order_number ILIKE $%d OR c.name ILIKE $%d)`, len(args), len(args)))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		conds = append(conds, fmt.Sprintf(`so.order_date::date = $%d::date`, len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += ` WHERE ` + c
		} else {
			query += ` AND ` + c
		}
	}
	query += fmt.Sprintf(` ORDER BY so.created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sale orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleOrder
	for rows.Next() {
		o, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la orden.
func (r *SaleRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sale_orders SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return nil
}

// Delete elimina la orden; las líneas caen por ON DELETE CASCADE.
func (r *SaleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sale_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale order: %w", err)
	}
	return nil
}
