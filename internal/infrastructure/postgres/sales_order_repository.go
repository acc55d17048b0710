package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GustavoCollie/GUSMI-STORE/internal/domain"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/entity"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

const salesOrderColumns = `o.id, o.customer_name, o.customer_email, o.product_id, o.quantity,
	o.unit_price, o.subtotal, o.tax_amount, o.total_amount, o.shipping_cost,
	o.shipping_type, o.shipping_address, o.delivery_date, o.status, p.name, o.created_at`

const salesOrderFrom = `
	FROM sales_orders o
	JOIN products p ON p.id = o.product_id`

// SalesOrderRepo implementación del puerto SalesOrderRepository sobre
// PostgreSQL (usable con pool o tx).
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// Create persiste una nueva orden de venta.
func (r *SalesOrderRepo) Create(ctx context.Context, order *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (id, customer_name, customer_email, product_id, quantity,
			unit_price, subtotal, tax_amount, total_amount, shipping_cost,
			shipping_type, shipping_address, delivery_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.CustomerName, order.CustomerEmail, order.ProductID, order.Quantity,
		order.UnitPrice, order.Subtotal, order.TaxAmount, order.TotalAmount,
		order.ShippingCost, order.ShippingType, order.ShippingAddress,
		order.DeliveryDate, order.Status, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sales order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *SalesOrderRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	query := `SELECT ` + salesOrderColumns + salesOrderFrom + ` WHERE o.id = $1`
	o, err := scanSalesOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	return o, nil
}

// Update actualiza una orden existente.
func (r *SalesOrderRepo) Update(ctx context.Context, order *entity.SalesOrder) error {
	query := `
		UPDATE sales_orders SET customer_name = $2, customer_email = $3, product_id = $4,
			quantity = $5, unit_price = $6, subtotal = $7, tax_amount = $8,
			total_amount = $9, shipping_cost = $10, shipping_type = $11,
			shipping_address = $12, delivery_date = $13, status = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		order.ID, order.CustomerName, order.CustomerEmail, order.ProductID, order.Quantity,
		order.UnitPrice, order.Subtotal, order.TaxAmount, order.TotalAmount,
		order.ShippingCost, order.ShippingType, order.ShippingAddress,
		order.DeliveryDate, order.Status,
	)
	if err != nil {
		return fmt.Errorf("update sales order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// UpdateStatus cambia solo el estado de una orden.
func (r *SalesOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE sales_orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sales order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// List lista todas las órdenes, más recientes primero.
func (r *SalesOrderRepo) List(ctx context.Context) ([]*entity.SalesOrder, error) {
	query := `SELECT ` + salesOrderColumns + salesOrderFrom + ` ORDER BY o.created_at DESC`
	return r.list(ctx, query)
}

// ListCreatedBetween devuelve órdenes creadas en el rango [from, to].
func (r *SalesOrderRepo) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*entity.SalesOrder, error) {
	query := `SELECT ` + salesOrderColumns + salesOrderFrom + `
		WHERE o.created_at >= $1 AND o.created_at <= $2
		ORDER BY o.created_at ASC`
	return r.list(ctx, query, from, to)
}

// Delete elimina una orden por ID.
func (r *SalesOrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sales order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *SalesOrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.SalesOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesOrder
	for rows.Next() {
		o, err := scanSalesOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanSalesOrder(row pgx.Row) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	err := row.Scan(
		&o.ID, &o.CustomerName, &o.CustomerEmail, &o.ProductID, &o.Quantity,
		&o.UnitPrice, &o.Subtotal, &o.TaxAmount, &o.TotalAmount, &o.ShippingCost,
		&o.ShippingType, &o.ShippingAddress, &o.DeliveryDate, &o.Status,
		&o.ProductName, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
