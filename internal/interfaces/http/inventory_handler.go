package http

import (
	"github.com/GustavoCollie/GUSMI-STORE/internal/application/dto"
	"github.com/GustavoCollie/GUSMI-STORE/internal/application/inventory"
	"github.com/gofiber/fiber/v2"
)

// InventoryHandler maneja ingresos, salidas, devoluciones y el libro de
// movimientos (protegido).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ReceiveStock godoc
// @Summary      Registrar ingreso de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ReceiveStockRequest  true  "Cantidad y referencia"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock/receive [post]
func (h *InventoryHandler) ReceiveStock(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Reference == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "reference es requerido"})
	}
	out, err := h.uc.ReceiveStock(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DispatchStock godoc
// @Summary      Registrar salida de stock (venta, consumo interno o salida devolutiva)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.DispatchStockRequest  true  "Cantidad, tipo y referencia"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente"
// @Router       /api/products/{id}/stock/dispatch [post]
func (h *InventoryHandler) DispatchStock(c *fiber.Ctx) error {
	var in dto.DispatchStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Reference == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "reference es requerido"})
	}
	out, err := h.uc.DispatchStock(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegisterReturn godoc
// @Summary      Registrar devolución de una salida devolutiva
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterReturnRequest  true  "Salida a cerrar y cantidad"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Cantidad mayor a la pendiente"
// @Router       /api/inventory/returns [post]
func (h *InventoryHandler) RegisterReturn(c *fiber.Ctx) error {
	var in dto.RegisterReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ExitMovementID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "exit_movement_id es requerido"})
	}
	out, err := h.uc.RegisterReturn(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Listar el libro de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.uc.ListMovements(c.Context(), c.Query("product_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PendingReturns godoc
// @Summary      Listar salidas devolutivas con retorno pendiente
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PendingReturnResponse
// @Router       /api/inventory/pending-returns [get]
func (h *InventoryHandler) PendingReturns(c *fiber.Ctx) error {
	out, err := h.uc.PendingReturns(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
