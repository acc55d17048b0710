package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name            string   `json:"name" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone"`
	RUC             string   `json:"ruc" validate:"required"`
	ContactName     string   `json:"contact_name"`
	ContactPosition string   `json:"contact_position"`
	IsActive        *bool    `json:"is_active"`
	ProductIDs      []string `json:"product_ids"`
}

// UpdateSupplierRequest actualización parcial de un proveedor.
type UpdateSupplierRequest struct {
	Name            *string  `json:"name"`
	Email           *string  `json:"email"`
	Phone           *string  `json:"phone"`
	RUC             *string  `json:"ruc"`
	ContactName     *string  `json:"contact_name"`
	ContactPosition *string  `json:"contact_position"`
	IsActive        *bool    `json:"is_active"`
	ProductIDs      []string `json:"product_ids"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	RUC             string   `json:"ruc"`
	ContactName     string   `json:"contact_name"`
	ContactPosition string   `json:"contact_position"`
	IsActive        bool     `json:"is_active"`
	ProductIDs      []string `json:"product_ids"`
	Products        []string `json:"products"`
}

// CreatePurchaseOrderRequest entrada para crear una orden de compra.
// IGV y total se calculan en el servidor.
type CreatePurchaseOrderRequest struct {
	SupplierID               string          `json:"supplier_id" validate:"required"`
	ProductID                string          `json:"product_id" validate:"required"`
	Quantity                 int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice                decimal.Decimal `json:"unit_price"`
	Currency                 string          `json:"currency"` // USD, PEN
	ExpectedDeliveryDate     *time.Time      `json:"expected_delivery_date"`
	SavingsAmount            decimal.Decimal `json:"savings_amount"`
	FreightAmount            decimal.Decimal `json:"freight_amount"`
	OtherExpensesAmount      decimal.Decimal `json:"other_expenses_amount"`
	OtherExpensesDescription *string         `json:"other_expenses_description"`
}

// UpdatePurchaseOrderRequest edición de una orden PENDING; totales se recalculan.
type UpdatePurchaseOrderRequest struct {
	SupplierID               *string          `json:"supplier_id"`
	ProductID                *string          `json:"product_id"`
	Quantity                 *int             `json:"quantity"`
	UnitPrice                *decimal.Decimal `json:"unit_price"`
	Currency                 *string          `json:"currency"`
	ExpectedDeliveryDate     *time.Time       `json:"expected_delivery_date"`
	SavingsAmount            *decimal.Decimal `json:"savings_amount"`
	FreightAmount            *decimal.Decimal `json:"freight_amount"`
	OtherExpensesAmount      *decimal.Decimal `json:"other_expenses_amount"`
	OtherExpensesDescription *string          `json:"other_expenses_description"`
}

// ReceiveOrderRequest metadatos de recepción (factura y guía de remisión).
type ReceiveOrderRequest struct {
	ActualDeliveryDate  *time.Time `json:"actual_delivery_date"`
	InvoiceNumber       *string    `json:"invoice_number"`
	ReferralGuideNumber *string    `json:"referral_guide_number"`
	InvoicePath         *string    `json:"invoice_path"`
	ReferralGuidePath   *string    `json:"referral_guide_path"`
}

// RejectOrderRequest motivo de rechazo de una orden.
type RejectOrderRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID                       string          `json:"id"`
	SupplierID               string          `json:"supplier_id"`
	SupplierName             string          `json:"supplier_name,omitempty"`
	ProductID                string          `json:"product_id"`
	ProductName              string          `json:"product_name,omitempty"`
	Quantity                 int             `json:"quantity"`
	UnitPrice                decimal.Decimal `json:"unit_price"`
	TaxAmount                decimal.Decimal `json:"tax_amount"`
	TotalAmount              decimal.Decimal `json:"total_amount"`
	Currency                 string          `json:"currency"`
	SavingsAmount            decimal.Decimal `json:"savings_amount"`
	FreightAmount            decimal.Decimal `json:"freight_amount"`
	OtherExpensesAmount      decimal.Decimal `json:"other_expenses_amount"`
	OtherExpensesDescription *string         `json:"other_expenses_description,omitempty"`
	Status                   string          `json:"status"`
	ExpectedDeliveryDate     *time.Time      `json:"expected_delivery_date,omitempty"`
	ActualDeliveryDate       *time.Time      `json:"actual_delivery_date,omitempty"`
	IsRejected               bool            `json:"is_rejected"`
	RejectionReason          *string         `json:"rejection_reason,omitempty"`
	InvoiceNumber            *string         `json:"invoice_number,omitempty"`
	ReferralGuideNumber      *string         `json:"referral_guide_number,omitempty"`
	CreatedAt                time.Time       `json:"created_at"`
}

// PurchaseKPIsResponse indicadores del módulo de compras.
type PurchaseKPIsResponse struct {
	QualityRate        decimal.Decimal `json:"quality_rate"`          // % órdenes rechazadas
	TotalCTA           decimal.Decimal `json:"total_cta"`             // Coste Total de Adquisición
	TotalSavings       decimal.Decimal `json:"total_savings"`
	OnTimeDeliveryRate decimal.Decimal `json:"on_time_delivery_rate"` // % entregas a tiempo
	TotalOrders        int             `json:"total_orders"`
	RejectedOrders     int             `json:"rejected_orders"`
}
