package repository

import (
	"context"

	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro de
	// una transacción para serializar mutaciones de stock por producto.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
	TotalStock(ctx context.Context) (int, error)
	// Delete elimina el producto y, en cascada, sus movimientos.
	Delete(ctx context.Context, id string) error
}
