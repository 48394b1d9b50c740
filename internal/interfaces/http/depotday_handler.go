package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	appdepotday "github.com/jhoicas/depot-ops-api/internal/application/depotday"
	"github.com/jhoicas/depot-ops-api/internal/application/dto"
	"github.com/jhoicas/depot-ops-api/internal/domain"
	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
)

// DayHandler maneja la apertura, cierre y consulta de jornadas.
type DayHandler struct {
	uc *appdepotday.UseCase
}

// NewDayHandler construye el handler.
func NewDayHandler(uc *appdepotday.UseCase) *DayHandler {
	return &DayHandler{uc: uc}
}

// parseDayParams extrae depot id y fecha de jornada de la ruta, y verifica que
// un operador solo opere sobre su propio depósito (los admin no tienen esa
// restricción). Si hay error, ya escribió la respuesta y devuelve ok=false.
func parseDayParams(c *fiber.Ctx) (depotID string, date time.Time, ok bool) {
	depotID = c.Params("id")
	if depotID == "" {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de depósito requerido"})
		return "", time.Time{}, false
	}
	date, err := time.Parse("2006-01-02", c.Params("date"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato esperado YYYY-MM-DD"})
		return "", time.Time{}, false
	}
	if GetRole(c) == entity.RoleOperador && GetDepotID(c) != depotID {
		_ = c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el operador solo puede operar su propio depósito"})
		return "", time.Time{}, false
	}
	return depotID, date, true
}

// OpenDay registra la apertura de jornada.
// POST /api/depots/:id/days/:date/open
func (h *DayHandler) OpenDay(c *fiber.Ctx) error {
	depotID, date, ok := parseDayParams(c)
	if !ok {
		return nil
	}
	var in dto.OpenDayRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.OpenDay(c.Context(), depotID, date, in, GetUserID(c))
	if err != nil {
		return dayError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CloseDay registra el cierre de jornada y devuelve la conciliación.
// POST /api/depots/:id/days/:date/close
func (h *DayHandler) CloseDay(c *fiber.Ctx) error {
	depotID, date, ok := parseDayParams(c)
	if !ok {
		return nil
	}
	var in dto.CloseDayRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CloseDay(c.Context(), depotID, date, in, GetUserID(c))
	if err != nil {
		return dayError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DayStatus devuelve el estado derivado de la jornada con su conciliación.
// GET /api/depots/:id/days/:date
func (h *DayHandler) DayStatus(c *fiber.Ctx) error {
	depotID, date, ok := parseDayParams(c)
	if !ok {
		return nil
	}
	out, err := h.uc.DayStatus(c.Context(), depotID, date)
	if err != nil {
		return dayError(c, err)
	}
	return c.JSON(out)
}

// dayError traduce errores de dominio de jornada a códigos HTTP.
func dayError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "DEPOT_NOT_FOUND", Message: "el depósito no existe"})
	case errors.Is(err, domain.ErrDayAlreadyOpened):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DAY_ALREADY_OPENED", Message: "la jornada ya fue abierta"})
	case errors.Is(err, domain.ErrDayAlreadyClosed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DAY_ALREADY_CLOSED", Message: "la jornada ya fue cerrada"})
	case errors.Is(err, domain.ErrDayNotOpened):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DAY_NOT_OPENED", Message: "la jornada no fue abierta"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
