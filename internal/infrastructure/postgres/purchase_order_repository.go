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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const purchaseOrderColumns = `o.id, o.supplier_id, o.product_id, o.quantity, o.unit_price,
	o.tax_amount, o.total_amount, o.currency, o.savings_amount, o.freight_amount,
	o.other_expenses_amount, o.other_expenses_description, o.status,
	o.expected_delivery_date, o.actual_delivery_date, o.is_rejected, o.rejection_reason,
	o.invoice_number, o.referral_guide_number, o.invoice_path, o.referral_guide_path,
	s.name, p.name, o.created_at`

const purchaseOrderFrom = `
	FROM purchase_orders o
	JOIN suppliers s ON s.id = o.supplier_id
	JOIN products p ON p.id = o.product_id`

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre
// PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste una nueva orden de compra.
func (r *PurchaseOrderRepo) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, supplier_id, product_id, quantity, unit_price,
			tax_amount, total_amount, currency, savings_amount, freight_amount,
			other_expenses_amount, other_expenses_description, status,
			expected_delivery_date, actual_delivery_date, is_rejected, rejection_reason,
			invoice_number, referral_guide_number, invoice_path, referral_guide_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.SupplierID, order.ProductID, order.Quantity, order.UnitPrice,
		order.TaxAmount, order.TotalAmount, order.Currency, order.SavingsAmount,
		order.FreightAmount, order.OtherExpensesAmount, order.OtherExpensesDescription,
		order.Status, order.ExpectedDeliveryDate, order.ActualDeliveryDate,
		order.IsRejected, order.RejectionReason, order.InvoiceNumber,
		order.ReferralGuideNumber, order.InvoicePath, order.ReferralGuidePath, order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + purchaseOrderFrom + ` WHERE o.id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get purchase order")
}

// GetForUpdate obtiene una orden bloqueando su fila (serializa recepciones
// concurrentes de la misma OC). Solo tiene sentido dentro de una transacción.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + purchaseOrderFrom + ` WHERE o.id = $1 FOR UPDATE OF o`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get purchase order for update")
}

// Update actualiza una orden existente.
func (r *PurchaseOrderRepo) Update(ctx context.Context, order *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET supplier_id = $2, product_id = $3, quantity = $4,
			unit_price = $5, tax_amount = $6, total_amount = $7, currency = $8,
			savings_amount = $9, freight_amount = $10, other_expenses_amount = $11,
			other_expenses_description = $12, status = $13, expected_delivery_date = $14,
			actual_delivery_date = $15, is_rejected = $16, rejection_reason = $17,
			invoice_number = $18, referral_guide_number = $19, invoice_path = $20,
			referral_guide_path = $21
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		order.ID, order.SupplierID, order.ProductID, order.Quantity, order.UnitPrice,
		order.TaxAmount, order.TotalAmount, order.Currency, order.SavingsAmount,
		order.FreightAmount, order.OtherExpensesAmount, order.OtherExpensesDescription,
		order.Status, order.ExpectedDeliveryDate, order.ActualDeliveryDate,
		order.IsRejected, order.RejectionReason, order.InvoiceNumber,
		order.ReferralGuideNumber, order.InvoicePath, order.ReferralGuidePath,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// List lista órdenes con paginación, más recientes primero.
// limit <= 0 devuelve todas.
func (r *PurchaseOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + purchaseOrderFrom + `
		ORDER BY o.created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	return r.list(ctx, query, args...)
}

// ListCreatedBetween devuelve órdenes creadas en el rango [from, to].
func (r *PurchaseOrderRepo) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + purchaseOrderFrom + `
		WHERE o.created_at >= $1 AND o.created_at <= $2
		ORDER BY o.created_at ASC`
	return r.list(ctx, query, from, to)
}

// Delete elimina una orden por ID.
func (r *PurchaseOrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *PurchaseOrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func (r *PurchaseOrderRepo) scanOne(row pgx.Row, op string) (*entity.PurchaseOrder, error) {
	o, err := scanPurchaseOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := row.Scan(
		&o.ID, &o.SupplierID, &o.ProductID, &o.Quantity, &o.UnitPrice,
		&o.TaxAmount, &o.TotalAmount, &o.Currency, &o.SavingsAmount, &o.FreightAmount,
		&o.OtherExpensesAmount, &o.OtherExpensesDescription, &o.Status,
		&o.ExpectedDeliveryDate, &o.ActualDeliveryDate, &o.IsRejected, &o.RejectionReason,
		&o.InvoiceNumber, &o.ReferralGuideNumber, &o.InvoicePath, &o.ReferralGuidePath,
		&o.SupplierName, &o.ProductName, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
