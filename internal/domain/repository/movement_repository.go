package repository

import (
	"context"

	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el libro de
// movimientos. Append-only: no hay Update ni Delete generales; la única
// mutación permitida es la corrección de trazabilidad inicial.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// GetByPurchaseOrder busca el movimiento de ingreso asociado a una OC
	// (clave de idempotencia estructurada; índice único en la tabla).
	GetByPurchaseOrder(ctx context.Context, purchaseOrderID string) (*entity.Movement, error)
	// List devuelve todos los movimientos ordenados por fecha descendente.
	List(ctx context.Context) ([]*entity.Movement, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error)
	// FindInitial devuelve el primer movimiento de entrada de un producto
	// (la entrada de trazabilidad inicial) o nil si no existe.
	FindInitial(ctx context.Context, productID string) (*entity.Movement, error)
	// UpdateInitial corrige referencia/documento de la entrada inicial.
	// Es el único camino de mutación del libro.
	UpdateInitial(ctx context.Context, movement *entity.Movement) error
}
