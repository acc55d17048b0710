package repository

import (
	"context"
	"time"

	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la fila de la orden dentro de una transacción
	// (serializa recepciones concurrentes de la misma OC).
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	Update(ctx context.Context, order *entity.PurchaseOrder) error
	List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error)
	// ListCreatedBetween devuelve órdenes creadas en el rango [from, to] (para analítica).
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*entity.PurchaseOrder, error)
	Delete(ctx context.Context, id string) error
}
