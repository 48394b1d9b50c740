package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	appcompliance "github.com/jhoicas/depot-ops-api/internal/application/compliance"
	"github.com/jhoicas/depot-ops-api/internal/application/dto"
	"github.com/jhoicas/depot-ops-api/internal/domain"
	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
)

// ComplianceHandler maneja el reporte de confiabilidad de un depósito.
type ComplianceHandler struct {
	uc *appcompliance.UseCase
}

// NewComplianceHandler construye el handler.
func NewComplianceHandler(uc *appcompliance.UseCase) *ComplianceHandler {
	return &ComplianceHandler{uc: uc}
}

// TrustReport devuelve puntaje de confianza, racha limpia y eventos de la
// ventana móvil. La fecha de referencia se puede fijar con ?ref=YYYY-MM-DD
// (default: hoy).
// GET /api/depots/:id/trust
func (h *ComplianceHandler) TrustReport(c *fiber.Ctx) error {
	depotID := c.Params("id")
	if depotID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de depósito requerido"})
	}
	if GetRole(c) == entity.RoleOperador && GetDepotID(c) != depotID {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el operador solo puede consultar su propio depósito"})
	}
	ref, ok := parseRefDate(c)
	if !ok {
		return nil
	}
	out, err := h.uc.TrustReport(c.Context(), depotID, ref)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "DEPOT_NOT_FOUND", Message: "el depósito no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// parseRefDate lee ?ref=YYYY-MM-DD; sin parámetro usa la fecha actual.
// Si el formato es inválido ya escribió la respuesta y devuelve ok=false.
func parseRefDate(c *fiber.Ctx) (ref time.Time, ok bool) {
	raw := c.Query("ref")
	if raw == "" {
		return time.Now(), true
	}
	ref, err := time.Parse("2006-01-02", raw)
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ref inválido, formato esperado YYYY-MM-DD"})
		return time.Time{}, false
	}
	return ref, true
}
