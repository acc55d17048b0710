package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/GustavoCollie/GUSMI-STORE/internal/domain"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/entity"
	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `m.id, m.product_id, m.quantity, m.type, m.reference, m.document_path,
	m.applicant, m.applicant_area, m.is_returnable, m.return_deadline, m.recipient_email,
	m.parent_id, m.sales_order_id, m.purchase_order_id, p.name, m.date`

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL
// (usable con pool o tx). La tabla tiene un índice único parcial sobre
// purchase_order_id que respalda la idempotencia de recepción de OC.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento. Devuelve domain.ErrDuplicate si ya existe un
// movimiento con el mismo purchase_order_id.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	query := `
		INSERT INTO movements (id, product_id, quantity, type, reference, document_path,
			applicant, applicant_area, is_returnable, return_deadline, recipient_email,
			parent_id, sales_order_id, purchase_order_id, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.Quantity, movement.Type,
		movement.Reference, movement.DocumentPath, movement.Applicant,
		movement.ApplicantArea, movement.IsReturnable, movement.ReturnDeadline,
		movement.RecipientEmail, movement.ParentID, movement.SalesOrderID,
		movement.PurchaseOrderID, movement.Date,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements m JOIN products p ON p.id = m.product_id
		WHERE m.id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get movement")
}

// GetByPurchaseOrder busca el movimiento de ingreso asociado a una OC.
func (r *MovementRepo) GetByPurchaseOrder(ctx context.Context, purchaseOrderID string) (*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements m JOIN products p ON p.id = m.product_id
		WHERE m.purchase_order_id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, purchaseOrderID), "get movement by purchase order")
}

// List devuelve todos los movimientos ordenados por fecha descendente.
func (r *MovementRepo) List(ctx context.Context) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements m JOIN products p ON p.id = m.product_id
		ORDER BY m.date DESC`
	return r.list(ctx, query)
}

// ListByProduct devuelve los movimientos de un producto, más recientes primero.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements m JOIN products p ON p.id = m.product_id
		WHERE m.product_id = $1
		ORDER BY m.date DESC`
	return r.list(ctx, query, productID)
}

// FindInitial devuelve el primer movimiento de entrada de un producto (la
// entrada de trazabilidad inicial) o nil si no existe.
func (r *MovementRepo) FindInitial(ctx context.Context, productID string) (*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements m JOIN products p ON p.id = m.product_id
		WHERE m.product_id = $1 AND m.type IN ($2, $3)
		ORDER BY m.date ASC
		LIMIT 1`
	return r.scanOne(
		r.q.QueryRow(ctx, query, productID, entity.MovementTypeIngreso, entity.MovementTypeEntry),
		"find initial movement",
	)
}

// UpdateInitial corrige referencia y documento de la entrada inicial.
// Es la única mutación permitida del libro.
func (r *MovementRepo) UpdateInitial(ctx context.Context, movement *entity.Movement) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE movements SET reference = $2, document_path = $3 WHERE id = $1`,
		movement.ID, movement.Reference, movement.DocumentPath,
	)
	if err != nil {
		return fmt.Errorf("update initial movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}
	return nil
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *MovementRepo) scanOne(row pgx.Row, op string) (*entity.Movement, error) {
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.ProductID, &m.Quantity, &m.Type, &m.Reference, &m.DocumentPath,
		&m.Applicant, &m.ApplicantArea, &m.IsReturnable, &m.ReturnDeadline,
		&m.RecipientEmail, &m.ParentID, &m.SalesOrderID, &m.PurchaseOrderID,
		&m.ProductName, &m.Date,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
