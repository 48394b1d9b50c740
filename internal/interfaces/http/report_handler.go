package http

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/depot-ops-api/internal/application/dto"
	appreports "github.com/jhoicas/depot-ops-api/internal/application/reports"
	"github.com/jhoicas/depot-ops-api/internal/domain"
	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
)

// ReportHandler maneja los documentos descargables (PDF y Excel).
type ReportHandler struct {
	uc *appreports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appreports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// CloseCertificate descarga el certificado de cierre de una jornada en PDF.
// GET /api/depots/:id/days/:date/certificate.pdf
func (h *ReportHandler) CloseCertificate(c *fiber.Ctx) error {
	depotID := c.Params("id")
	if depotID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de depósito requerido"})
	}
	date, err := time.Parse("2006-01-02", c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato esperado YYYY-MM-DD"})
	}
	if GetRole(c) == entity.RoleOperador && GetDepotID(c) != depotID {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el operador solo puede consultar su propio depósito"})
	}

	pdfBytes, filename, err := h.uc.CloseCertificatePDF(c.Context(), depotID, date)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "DEPOT_NOT_FOUND", Message: "el depósito no existe"})
		case errors.Is(err, domain.ErrDayNotOpened):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DAY_NOT_OPENED", Message: "la jornada no fue abierta"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DAY_NOT_CLOSED", Message: "la jornada aún no está cerrada"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}

// MonthlyReconciliation descarga la conciliación mensual en Excel (solo admin).
// GET /api/reports/monthly.xlsx?year=2026&month=3
func (h *ReportHandler) MonthlyReconciliation(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "year requerido"})
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month requerido, entre 1 y 12"})
	}

	xlsxBytes, filename, err := h.uc.MonthlyReconciliationXLSX(c.Context(), year, time.Month(month))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(xlsxBytes)
}
