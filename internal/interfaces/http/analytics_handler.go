package http

import (
	"time"

	"github.com/GustavoCollie/GUSMI-STORE/internal/application/analytics"
	"github.com/GustavoCollie/GUSMI-STORE/internal/application/dto"
	"github.com/gofiber/fiber/v2"
)

// AnalyticsHandler maneja las consultas del dashboard (protegido).
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del dashboard
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del rango (YYYY-MM-DD); por defecto 12 meses atrás"
// @Param        end_date    query  string  false  "Fin del rango (YYYY-MM-DD); por defecto hoy"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Success      200  {object}  dto.AnalyticsSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	var q dto.AnalyticsQuery
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date debe tener formato YYYY-MM-DD"})
		}
		q.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date debe tener formato YYYY-MM-DD"})
		}
		// La fecha sin hora cubre el día completo.
		t = t.Add(24*time.Hour - time.Nanosecond)
		q.EndDate = &t
	}
	if v := c.Query("product_id"); v != "" {
		q.ProductID = &v
	}
	out, err := h.uc.Summary(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PriceVariation godoc
// @Summary      Variación diaria de precios de un mes calendario
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        year        query  int     true   "Año (ej: 2026)"
// @Param        month       query  int     true   "Mes (1-12)"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Success      200  {object}  dto.PriceVariationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/price-variation [get]
func (h *AnalyticsHandler) PriceVariation(c *fiber.Ctx) error {
	now := time.Now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month debe estar entre 1 y 12"})
	}
	var productID *string
	if v := c.Query("product_id"); v != "" {
		productID = &v
	}
	out, err := h.uc.PriceVariation(c.Context(), year, time.Month(month), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
