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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL
// (usable con pool o tx). La relación con productos vive en supplier_products.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un nuevo proveedor.
func (r *SupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, email, phone, ruc, contact_name, contact_position, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		supplier.ID, supplier.Name, supplier.Email, supplier.Phone,
		supplier.RUC, supplier.ContactName, supplier.ContactPosition, supplier.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor con sus productos asociados.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `
		SELECT s.id, s.name, s.email, s.phone, s.ruc, s.contact_name, s.contact_position, s.is_active,
			COALESCE(array_agg(sp.product_id) FILTER (WHERE sp.product_id IS NOT NULL), '{}'),
			COALESCE(array_agg(p.name) FILTER (WHERE p.name IS NOT NULL), '{}')
		FROM suppliers s
		LEFT JOIN supplier_products sp ON sp.supplier_id = s.id
		LEFT JOIN products p ON p.id = sp.product_id
		WHERE s.id = $1
		GROUP BY s.id`
	s, err := scanSupplier(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

// Update actualiza los datos de contacto de un proveedor.
func (r *SupplierRepo) Update(ctx context.Context, supplier *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $2, email = $3, phone = $4, ruc = $5,
			contact_name = $6, contact_position = $7, is_active = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		supplier.ID, supplier.Name, supplier.Email, supplier.Phone,
		supplier.RUC, supplier.ContactName, supplier.ContactPosition, supplier.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}

// List lista proveedores con paginación, con sus productos asociados.
func (r *SupplierRepo) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT s.id, s.name, s.email, s.phone, s.ruc, s.contact_name, s.contact_position, s.is_active,
			COALESCE(array_agg(sp.product_id) FILTER (WHERE sp.product_id IS NOT NULL), '{}'),
			COALESCE(array_agg(p.name) FILTER (WHERE p.name IS NOT NULL), '{}')
		FROM suppliers s
		LEFT JOIN supplier_products sp ON sp.supplier_id = s.id
		LEFT JOIN products p ON p.id = sp.product_id
		GROUP BY s.id
		ORDER BY s.name ASC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Delete elimina un proveedor; los vínculos con productos caen en cascada.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}

// LinkProduct asocia proveedor y producto. Idempotente.
func (r *SupplierRepo) LinkProduct(ctx context.Context, supplierID, productID string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO supplier_products (supplier_id, product_id) VALUES ($1, $2)
		 ON CONFLICT (supplier_id, product_id) DO NOTHING`,
		supplierID, productID,
	)
	if err != nil {
		return fmt.Errorf("link supplier product: %w", err)
	}
	return nil
}

// UnlinkProducts elimina todas las asociaciones proveedor-producto.
func (r *SupplierRepo) UnlinkProducts(ctx context.Context, supplierID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM supplier_products WHERE supplier_id = $1`,
		supplierID,
	)
	if err != nil {
		return fmt.Errorf("unlink supplier products: %w", err)
	}
	return nil
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(
		&s.ID, &s.Name, &s.Email, &s.Phone, &s.RUC,
		&s.ContactName, &s.ContactPosition, &s.IsActive,
		&s.ProductIDs, &s.ProductNames,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
