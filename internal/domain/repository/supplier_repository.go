package repository

import (
	"context"

	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para proveedores,
// incluida la relación muchos-a-muchos con productos.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error)
	Delete(ctx context.Context, id string) error
	// LinkProduct asocia proveedor y producto (idempotente: ON CONFLICT DO NOTHING).
	LinkProduct(ctx context.Context, supplierID, productID string) error
	// UnlinkProducts elimina todas las asociaciones del proveedor; junto con
	// LinkProduct permite reemplazar el conjunto completo.
	UnlinkProducts(ctx context.Context, supplierID string) error
}
