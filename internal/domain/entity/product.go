package entity

import (
	"time"

	"github.com/GustavoCollie/GUSMI-STORE/internal/domain"
	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
//
// Reglas de negocio:
//   - El stock nunca puede ser negativo.
//   - El stock solo se modifica vía AddStock/RemoveStock (respaldado por movimientos).
//   - Cada producto tiene un SKU único.
type Product struct {
	ID                       string
	Name                     string
	Description              string
	SKU                      string
	Stock                    int
	RetailPrice              *decimal.Decimal // precio de venta al público (vacío = no publicado en tienda)
	ImagePath                *string
	TechSheetPath            *string
	IsPreorder               bool
	PreorderPrice            *decimal.Decimal
	EstimatedDeliveryDate    *time.Time
	PreorderDescription      *string
	HasPendingPurchaseOrders bool
	UpdatedAt                time.Time
}

// NewProduct construye un producto validando que el stock inicial no sea negativo.
func NewProduct(id, name, description, sku string, stock int, now time.Time) (*Product, error) {
	if stock < 0 {
		return nil, &domain.InvalidStockError{Stock: stock}
	}
	return &Product{
		ID:          id,
		Name:        name,
		Description: description,
		SKU:         sku,
		Stock:       stock,
		UpdatedAt:   now,
	}, nil
}

// AddStock añade stock al producto. La cantidad debe ser positiva.
func (p *Product) AddStock(quantity int, now time.Time) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	p.Stock += quantity
	p.UpdatedAt = now
	return nil
}

// RemoveStock remueve stock del producto. Falla con InsufficientStockError
// si la cantidad solicitada excede el stock disponible; el estado no se muta en ese caso.
func (p *Product) RemoveStock(quantity int, now time.Time) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if p.Stock < quantity {
		return &domain.InsufficientStockError{Available: p.Stock, Requested: quantity}
	}
	p.Stock -= quantity
	p.UpdatedAt = now
	return nil
}
