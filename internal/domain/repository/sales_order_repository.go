package repository

import (
	"context"
	"time"

	"github.com/GustavoCollie/GUSMI-STORE/internal/domain/entity"
)

// SalesOrderRepository define el puerto de persistencia para órdenes de venta.
type SalesOrderRepository interface {
	Create(ctx context.Context, order *entity.SalesOrder) error
	GetByID(ctx context.Context, id string) (*entity.SalesOrder, error)
	Update(ctx context.Context, order *entity.SalesOrder) error
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context) ([]*entity.SalesOrder, error)
	// ListCreatedBetween devuelve órdenes creadas en el rango [from, to] (para analítica).
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*entity.SalesOrder, error)
	Delete(ctx context.Context, id string) error
}
