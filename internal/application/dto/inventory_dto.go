package dto

import "time"

// ReceiveStockRequest entrada para registrar un ingreso de stock.
type ReceiveStockRequest struct {
	Quantity     int     `json:"quantity" validate:"required,gt=0"`
	Reference    string  `json:"reference" validate:"required"`
	DocumentPath *string `json:"document_path"`
}

// DispatchStockRequest entrada para registrar una salida de stock
// (venta, consumo interno o salida devolutiva).
type DispatchStockRequest struct {
	Quantity       int        `json:"quantity" validate:"required,gt=0"`
	Type           string     `json:"type"` // VENTA, CONSUMO INTERNO, EXIT
	Reference      string     `json:"reference" validate:"required"`
	Applicant      *string    `json:"applicant"`
	ApplicantArea  *string    `json:"applicant_area"`
	IsReturnable   bool       `json:"is_returnable"`
	ReturnDeadline *time.Time `json:"return_deadline"`
	RecipientEmail *string    `json:"recipient_email"`
	DocumentPath   *string    `json:"document_path"`
}

// RegisterReturnRequest entrada para registrar la devolución de una salida devolutiva.
type RegisterReturnRequest struct {
	ExitMovementID string `json:"exit_movement_id" validate:"required"`
	Quantity       int    `json:"quantity" validate:"required,gt=0"`
	Reference      string `json:"reference"`
}

// MovementResponse una entrada del libro de movimientos.
type MovementResponse struct {
	ID              string     `json:"id"`
	ProductID       string     `json:"product_id"`
	ProductName     string     `json:"product_name,omitempty"`
	Quantity        int        `json:"quantity"`
	Type            string     `json:"type"`
	Reference       string     `json:"reference"`
	DocumentPath    *string    `json:"document_path,omitempty"`
	Applicant       *string    `json:"applicant,omitempty"`
	ApplicantArea   *string    `json:"applicant_area,omitempty"`
	IsReturnable    bool       `json:"is_returnable"`
	ReturnDeadline  *time.Time `json:"return_deadline,omitempty"`
	RecipientEmail  *string    `json:"recipient_email,omitempty"`
	ParentID        *string    `json:"parent_id,omitempty"`
	SalesOrderID    *string    `json:"sales_order_id,omitempty"`
	PurchaseOrderID *string    `json:"purchase_order_id,omitempty"`
	Date            time.Time  `json:"date"`
}

// PendingReturnResponse salida devolutiva con cantidad pendiente.
type PendingReturnResponse struct {
	Movement        MovementResponse `json:"movement"`
	ReturnedQty     int              `json:"returned_qty"`
	PendingQuantity int              `json:"pending_quantity"`
}
