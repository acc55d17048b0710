package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// El stock inicial genera un movimiento ENTRY de trazabilidad ("Registro Inicial").
type CreateProductRequest struct {
	Name             string  `json:"name" validate:"required,min=1,max=200"`
	Description      string  `json:"description"`
	SKU              string  `json:"sku" validate:"required,min=1,max=100"`
	Stock            int     `json:"stock"`
	InitialReference string  `json:"initial_reference"`
	DocumentPath     *string `json:"document_path"`
}

// UpdateProductRequest entrada para actualización completa (PUT).
type UpdateProductRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description"`
	SKU         string `json:"sku" validate:"required,min=1,max=100"`
}

// PatchProductRequest actualización parcial con campos opcionales explícitos.
// InitialReference/InitialDocumentPath corrigen la trazabilidad inicial
// (único camino de mutación del libro de movimientos).
type PatchProductRequest struct {
	Name                  *string          `json:"name"`
	Description           *string          `json:"description"`
	SKU                   *string          `json:"sku"`
	RetailPrice           *decimal.Decimal `json:"retail_price"`
	IsPreorder            *bool            `json:"is_preorder"`
	PreorderPrice         *decimal.Decimal `json:"preorder_price"`
	EstimatedDeliveryDate *time.Time       `json:"estimated_delivery_date"`
	PreorderDescription   *string          `json:"preorder_description"`
	InitialReference      *string          `json:"initial_reference"`
	InitialDocumentPath   *string          `json:"initial_document_path"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                       string           `json:"id"`
	Name                     string           `json:"name"`
	Description              string           `json:"description"`
	SKU                      string           `json:"sku"`
	Stock                    int              `json:"stock"`
	RetailPrice              *decimal.Decimal `json:"retail_price,omitempty"`
	ImagePath                *string          `json:"image_path,omitempty"`
	TechSheetPath            *string          `json:"tech_sheet_path,omitempty"`
	IsPreorder               bool             `json:"is_preorder"`
	PreorderPrice            *decimal.Decimal `json:"preorder_price,omitempty"`
	EstimatedDeliveryDate    *time.Time       `json:"estimated_delivery_date,omitempty"`
	PreorderDescription      *string          `json:"preorder_description,omitempty"`
	HasPendingPurchaseOrders bool             `json:"has_pending_purchase_orders"`
	UpdatedAt                time.Time        `json:"updated_at"`
}
