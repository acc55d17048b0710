package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. RECEIVED y REJECTED son terminales.
const (
	PurchaseStatusPending  = "PENDING"
	PurchaseStatusReceived = "RECEIVED"
	PurchaseStatusRejected = "REJECTED"
)

// IGVRate tasa de IGV (Perú, 18%) aplicada a órdenes de compra y de venta.
var IGVRate = decimal.NewFromFloat(0.18)

// PurchaseOrder orden de compra a un proveedor.
// Invariante: TotalAmount = subtotal + IGV + flete + otros gastos - ahorro,
// recalculado en cada creación y edición.
type PurchaseOrder struct {
	ID                       string
	SupplierID               string
	ProductID                string
	Quantity                 int
	UnitPrice                decimal.Decimal
	TaxAmount                decimal.Decimal // IGV (18%)
	TotalAmount              decimal.Decimal // Coste Total de Adquisición (CTA)
	Currency                 string          // USD, PEN
	SavingsAmount            decimal.Decimal
	FreightAmount            decimal.Decimal
	OtherExpensesAmount      decimal.Decimal
	OtherExpensesDescription *string
	Status                   string // PENDING, RECEIVED, REJECTED
	ExpectedDeliveryDate     *time.Time
	ActualDeliveryDate       *time.Time
	IsRejected               bool
	RejectionReason          *string
	InvoiceNumber            *string
	ReferralGuideNumber      *string
	InvoicePath              *string
	ReferralGuidePath        *string
	SupplierName             string // denormalizado en listados
	ProductName              string
	CreatedAt                time.Time
}

// Subtotal devuelve cantidad × precio unitario.
func (o *PurchaseOrder) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(int64(o.Quantity)).Mul(o.UnitPrice)
}

// RecomputeTotals recalcula IGV y total a partir de los campos actuales.
// Total = (Subtotal + IGV) + Flete + Otros Gastos - Ahorro.
func (o *PurchaseOrder) RecomputeTotals() {
	subtotal := o.Subtotal()
	o.TaxAmount = subtotal.Mul(IGVRate)
	o.TotalAmount = subtotal.Add(o.TaxAmount).
		Add(o.FreightAmount).
		Add(o.OtherExpensesAmount).
		Sub(o.SavingsAmount)
}

// IsTerminal indica si la orden alcanzó un estado final (RECEIVED o REJECTED).
func (o *PurchaseOrder) IsTerminal() bool {
	return o.Status == PurchaseStatusReceived || o.Status == PurchaseStatusRejected
}

// ReceiptToken devuelve el token corto determinístico de la orden ("OC " +
// primeros 8 caracteres del ID), embebido en la referencia del movimiento de
// ingreso al recibir la orden.
func (o *PurchaseOrder) ReceiptToken() string {
	return ReceiptToken(o.ID)
}

// ReceiptToken calcula el token corto de recepción para un ID de orden.
func ReceiptToken(orderID string) string {
	short := orderID
	if len(short) > 8 {
		short = short[:8]
	}
	return "OC " + short
}
