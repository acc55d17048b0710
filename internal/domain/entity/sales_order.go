package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de venta. COMPLETED y CANCELLED son terminales.
const (
	SalesStatusPending   = "PENDING"
	SalesStatusCompleted = "COMPLETED"
	SalesStatusCancelled = "CANCELLED"
)

// Tipos de entrega de una orden de venta.
const (
	ShippingTypePickup   = "PICKUP"
	ShippingTypeDelivery = "DELIVERY"
)

// SalesOrder orden de venta a un cliente.
// Invariante: TotalAmount = Subtotal + IGV + ShippingCost, recalculado en cada edición.
type SalesOrder struct {
	ID              string
	CustomerName    string
	CustomerEmail   string
	ProductID       string
	Quantity        int
	UnitPrice       decimal.Decimal
	Subtotal        decimal.Decimal
	TaxAmount       decimal.Decimal // IGV (18%)
	TotalAmount     decimal.Decimal
	ShippingCost    decimal.Decimal
	ShippingType    string // PICKUP, DELIVERY
	ShippingAddress *string
	DeliveryDate    *time.Time
	Status          string // PENDING, COMPLETED, CANCELLED
	ProductName     string // denormalizado en listados
	CreatedAt       time.Time
}

// RecomputeTotals recalcula subtotal, IGV y total a partir de los campos actuales.
func (o *SalesOrder) RecomputeTotals() {
	o.Subtotal = decimal.NewFromInt(int64(o.Quantity)).Mul(o.UnitPrice)
	o.TaxAmount = o.Subtotal.Mul(IGVRate)
	o.TotalAmount = o.Subtotal.Add(o.TaxAmount).Add(o.ShippingCost)
}

// IsTerminal indica si la orden alcanzó un estado final (COMPLETED o CANCELLED).
func (o *SalesOrder) IsTerminal() bool {
	return o.Status == SalesStatusCompleted || o.Status == SalesStatusCancelled
}

// CanTransitionTo valida la transición de estado PENDING -> COMPLETED | CANCELLED.
func (o *SalesOrder) CanTransitionTo(status string) bool {
	if o.Status != SalesStatusPending {
		return false
	}
	return status == SalesStatusCompleted || status == SalesStatusCancelled
}
