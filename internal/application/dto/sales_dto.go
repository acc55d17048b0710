package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSalesOrderRequest entrada para crear una orden de venta.
// Subtotal, IGV y total se calculan en el servidor.
type CreateSalesOrderRequest struct {
	CustomerName    string          `json:"customer_name" validate:"required"`
	CustomerEmail   string          `json:"customer_email" validate:"required,email"`
	ProductID       string          `json:"product_id" validate:"required"`
	Quantity        int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	ShippingType    string          `json:"shipping_type"` // PICKUP, DELIVERY
	ShippingAddress *string         `json:"shipping_address"`
	DeliveryDate    *time.Time      `json:"delivery_date"`
}

// UpdateSalesOrderRequest edición de una orden PENDING; totales se recalculan.
type UpdateSalesOrderRequest struct {
	CustomerName    *string          `json:"customer_name"`
	CustomerEmail   *string          `json:"customer_email"`
	ProductID       *string          `json:"product_id"`
	Quantity        *int             `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	ShippingCost    *decimal.Decimal `json:"shipping_cost"`
	ShippingType    *string          `json:"shipping_type"`
	ShippingAddress *string          `json:"shipping_address"`
	DeliveryDate    *time.Time       `json:"delivery_date"`
}

// UpdateSalesStatusRequest transición de estado PENDING -> COMPLETED | CANCELLED.
type UpdateSalesStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SalesOrderResponse salida de una orden de venta.
type SalesOrderResponse struct {
	ID              string          `json:"id"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	ShippingType    string          `json:"shipping_type"`
	ShippingAddress *string         `json:"shipping_address,omitempty"`
	DeliveryDate    *time.Time      `json:"delivery_date,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// SalesKPIsResponse indicadores del módulo de ventas.
type SalesKPIsResponse struct {
	TotalOrders     int             `json:"total_orders"`
	CompletedOrders int             `json:"completed_orders"`
	CancelledOrders int             `json:"cancelled_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"` // excluye CANCELLED
}
