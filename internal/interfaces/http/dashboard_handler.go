package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/depot-ops-api/internal/application/analytics"
	"github.com/jhoicas/depot-ops-api/internal/application/dto"
)

// DashboardHandler maneja el resumen gerencial (solo admin).
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve las ventas agregadas (hoy / semana / mes / año), la
// variación mes a mes, el promedio móvil de 7 días y el desglose por depósito.
// La fecha de referencia se puede fijar con ?ref=YYYY-MM-DD (default: hoy).
// GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	ref, ok := parseRefDate(c)
	if !ok {
		return nil
	}
	summary, err := h.uc.GetSummary(c.Context(), ref)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(summary)
}
