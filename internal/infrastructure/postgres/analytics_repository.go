package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el panel y los reportes.
// Opera siempre sobre el pool, nunca dentro de una transacción de escritura.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// Dashboard devuelve los contadores del panel en pocas consultas agregadas.
// Solo cuentan las órdenes completadas; now fija el "hoy" para tests deterministas.
func (r *AnalyticsRepo) Dashboard(ctx context.Context, now time.Time) (*repository.DashboardResult, error) {
	var res repository.DashboardResult

	const salesQuery = `
	SELECT
	    COALESCE(SUM(total_amount) FILTER (WHERE order_date::date = $1::date), 0),
	    COALESCE(SUM(total_amount) FILTER (WHERE date_trunc('month', order_date) = date_trunc('month', $1::timestamptz)), 0),
	    COALESCE(SUM(total_amount) FILTER (WHERE date_trunc('year', order_date) = date_trunc('year', $1::timestamptz)), 0)
	FROM sale_orders
	WHERE status = 'completed'`
	if err := r.pool.QueryRow(ctx, salesQuery, now).Scan(&res.SalesToday, &res.SalesMonth, &res.SalesYear); err != nil {
		return nil, fmt.Errorf("analytics.Dashboard sales: %w", err)
	}

	const purchasesQuery = `
	SELECT
	    COALESCE(SUM(total_amount) FILTER (WHERE order_date::date = $1::date), 0),
	    COALESCE(SUM(total_amount) FILTER (WHERE date_trunc('month', order_date) = date_trunc('month', $1::timestamptz)), 0)
	FROM purchase_orders
	WHERE status = 'completed'`
	if err := r.pool.QueryRow(ctx, purchasesQuery, now).Scan(&res.PurchasesToday, &res.PurchasesMonth); err != nil {
		return nil, fmt.Errorf("analytics.Dashboard purchases: %w", err)
	}

	const inventoryQuery = `
	SELECT
	    (SELECT COUNT(*) FROM products),
	    COALESCE(COUNT(*) FILTER (WHERE s.quantity > 0 AND s.quantity <= p.reorder_level), 0),
	    COALESCE(COUNT(*) FILTER (WHERE s.quantity = 0), 0),
	    COALESCE(SUM(s.quantity * s.avg_cost), 0)
	FROM stock_records s
	JOIN products p ON p.id = s.product_id`
	if err := r.pool.QueryRow(ctx, inventoryQuery).Scan(
		&res.TotalProducts, &res.LowStock, &res.OutOfStock, &res.InventoryValue,
	); err != nil {
		return nil, fmt.Errorf("analytics.Dashboard inventory: %w", err)
	}

	const partiesQuery = `
	SELECT
	    (SELECT COUNT(*) FROM customers),
	    (SELECT COUNT(*) FROM suppliers)`
	if err := r.pool.QueryRow(ctx, partiesQuery).Scan(&res.TotalCustomers, &res.TotalSuppliers); err != nil {
		return nil, fmt.Errorf("analytics.Dashboard parties: %w", err)
	}

	return &res, nil
}

// truncUnit valida el agrupador y lo traduce a la unidad de date_trunc.
// groupBy ya viene normalizado por el caso de uso; el default es defensa en profundidad.
func truncUnit(groupBy string) string {
	switch groupBy {
	case "week":
		return "week"
	case "month":
		return "month"
	default:
		return "day"
	}
}

func (r *AnalyticsRepo) orderReport(ctx context.Context, table string, from, to time.Time, groupBy string) ([]repository.ReportRow, error) {
	// table proviene de constantes internas, nunca de entrada del usuario.
	query := fmt.Sprintf(`
	SELECT
	    to_char(date_trunc('%s', order_date), 'YYYY-MM-DD')  AS period,
	    COUNT(*)                                             AS order_count,
	    COALESCE(SUM(total_amount), 0)                       AS total_amount,
	    COALESCE(AVG(total_amount), 0)                       AS avg_amount
	FROM %s
	WHERE status = 'completed'
	  AND order_date BETWEEN $1 AND $2
	GROUP BY 1
	ORDER BY 1`, truncUnit(groupBy), table)

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics report %s: %w", table, err)
	}
	defer rows.Close()

	var results []repository.ReportRow
	for rows.Next() {
		var row repository.ReportRow
		if err := rows.Scan(&row.Period, &row.OrderCount, &row.TotalAmount, &row.AvgAmount); err != nil {
			return nil, fmt.Errorf("analytics report %s scan: %w", table, err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// SalesReport agrupa ventas completadas por período.
func (r *AnalyticsRepo) SalesReport(ctx context.Context, from, to time.Time, groupBy string) ([]repository.ReportRow, error) {
	return r.orderReport(ctx, "sale_orders", from, to, groupBy)
}

// PurchaseReport agrupa compras completadas por período.
func (r *AnalyticsRepo) PurchaseReport(ctx context.Context, from, to time.Time, groupBy string) ([]repository.ReportRow, error) {
	return r.orderReport(ctx, "purchase_orders", from, to, groupBy)
}

// TopProducts devuelve los productos con más unidades vendidas en el período.
func (r *AnalyticsRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProductRow, error) {
	const query = `
	SELECT
	    p.id                            AS product_id,
	    p.name                          AS product_name,
	    p.sku,
	    SUM(i.quantity)                 AS total_quantity,
	    COALESCE(SUM(i.total_price), 0) AS total_revenue
	FROM sale_items i
	JOIN sale_orders so ON so.id = i.sale_id
	JOIN products p     ON p.id  = i.product_id
	WHERE so.status = 'completed'
	  AND so.order_date BETWEEN $1 AND $2
	GROUP BY p.id, p.name, p.sku
	ORDER BY total_quantity DESC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.ProductSKU,
			&row.TotalQuantity, &row.TotalRevenue); err != nil {
			return nil, fmt.Errorf("analytics.TopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopCustomers devuelve los clientes con mayor monto comprado en el período.
func (r *AnalyticsRepo) TopCustomers(ctx context.Context, from, to time.Time, limit int) ([]repository.TopCustomerRow, error) {
	const query = `
	SELECT
	    c.id                             AS customer_id,
	    c.name                           AS customer_name,
	    c.contact_person,
	    COALESCE(SUM(so.total_amount), 0) AS total_spent,
	    COUNT(*)                          AS order_count
	FROM sale_orders so
	JOIN customers c ON c.id = so.customer_id
	WHERE so.status = 'completed'
	  AND so.order_date BETWEEN $1 AND $2
	GROUP BY c.id, c.name, c.contact_person
	ORDER BY total_spent DESC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopCustomers: %w", err)
	}
	defer rows.Close()

	var results []repository.TopCustomerRow
	for rows.Next() {
		var row repository.TopCustomerRow
		if err := rows.Scan(&row.CustomerID, &row.CustomerName, &row.ContactPerson,
			&row.TotalSpent, &row.OrderCount); err != nil {
			return nil, fmt.Errorf("analytics.TopCustomers scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
