package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetByProduct obtiene el registro de stock de un producto. Devuelve nil sin
// error cuando el producto todavía no tiene registro.
func (r *StockRepo) GetByProduct(productID string) (*entity.StockRecord, error) {
	query := `
		SELECT id, product_id, quantity, avg_cost, last_updated
		FROM stock_records WHERE product_id = $1`
	var s entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&s.ID, &s.ProductID, &s.Quantity, &s.AvgCost, &s.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetByProductForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE)
// para serializar verificar-luego-mutar bajo concurrencia.
func (r *StockRepo) GetByProductForUpdate(productID string) (*entity.StockRecord, error) {
	query := `
		SELECT id, product_id, quantity, avg_cost, last_updated
		FROM stock_records WHERE product_id = $1
		FOR UPDATE`
	var s entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&s.ID, &s.ProductID, &s.Quantity, &s.AvgCost, &s.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// LockProduct bloquea la fila del producto (SELECT FOR UPDATE). Sirve de
// candado sustituto para la creación perezosa del registro de stock: el
// SELECT FOR UPDATE sobre stock_records no bloquea nada cuando la fila no
// existe, y dos transacciones podrían insertar cantidades que se pisan.
func (r *StockRepo) LockProduct(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`SELECT id FROM products WHERE id = $1 FOR UPDATE`, productID)
	if err != nil {
		return fmt.Errorf("lock product: %w", err)
	}
	return nil
}

// Upsert inserta o actualiza el registro de stock del producto.
func (r *StockRepo) Upsert(record *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (id, product_id, quantity, avg_cost, last_updated)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, avg_cost = EXCLUDED.avg_cost, last_updated = now()`
	_, err := r.q.Exec(context.Background(), query, record.ID, record.ProductID, record.Quantity, record.AvgCost)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

const stockWithProductColumns = `
	s.id, s.product_id, s.quantity, s.avg_cost, s.last_updated,
	p.name, p.sku, p.unit, p.cost_price, p.selling_price, p.reorder_level`

func scanStockWithProduct(row pgx.Row) (*repository.StockWithProduct, error) {
	var s repository.StockWithProduct
	err := row.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.AvgCost, &s.LastUpdated,
		&s.ProductName, &s.ProductSKU, &s.Unit, &s.CostPrice, &s.SellingPrice, &s.ReorderLevel)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetWithProduct obtiene el stock de un producto con sus datos proyectados.
func (r *StockRepo) GetWithProduct(productID string) (*repository.StockWithProduct, error) {
	query := `
		SELECT ` + stockWithProductColumns + `
		FROM stock_records s
		JOIN products p ON p.id = s.product_id
		WHERE s.product_id = $1`
	s, err := scanStockWithProduct(r.q.QueryRow(context.Background(), query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock with product: %w", err)
	}
	return s, nil
}

// ListWithProduct lista el inventario con datos del producto y filtros opcionales.
func (r *StockRepo) ListWithProduct(filter repository.StockListFilter) ([]*repository.StockWithProduct, error) {
	query := `
		SELECT ` + stockWithProductColumns + `
		FROM stock_records s
		JOIN products p ON p.id = s.product_id`
	var conds []string
	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf(`(p.name ILIKE $%d OR p.sku ILIKE $%d)`, len(args), len(args)))
	}
	if filter.LowStock {
		conds = append(conds, `s.quantity > 0 AND s.quantity <= p.reorder_level`)
	}
	if filter.OutOfStock {
		conds = append(conds, `s.quantity = 0`)
	}
	for i, c := range conds {
		if i == 0 {
			query += ` WHERE ` + c
		} else {
			query += ` AND ` + c
		}
	}
	query += fmt.Sprintf(` ORDER BY p.name LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*repository.StockWithProduct
	for rows.Next() {
		s, err := scanStockWithProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Summary devuelve los agregados del inventario en una sola consulta.
func (r *StockRepo) Summary() (*repository.StockSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE s.quantity > 0 AND s.quantity <= p.reorder_level),
			COUNT(*) FILTER (WHERE s.quantity = 0),
			COALESCE(SUM(s.quantity * s.avg_cost), 0)
		FROM stock_records s
		JOIN products p ON p.id = s.product_id`
	var sum repository.StockSummary
	err := r.q.QueryRow(context.Background(), query).Scan(
		&sum.TotalItems, &sum.LowStockItems, &sum.OutOfStockItems, &sum.TotalValue,
	)
	if err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	return &sum, nil
}
