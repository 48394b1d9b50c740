package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrDepotCodeExists    = errors.New("el código de depósito ya está en uso")

	// Invariantes de apertura/cierre de jornada. La base de datos es quien los
	// garantiza (constraint único por depósito+fecha y FK cierre→apertura);
	// estos errores traducen esas violaciones a lenguaje del dominio.
	ErrDayAlreadyOpened = errors.New("la jornada ya fue abierta para ese depósito y fecha")
	ErrDayAlreadyClosed = errors.New("la jornada ya fue cerrada para ese depósito y fecha")
	ErrDayNotOpened     = errors.New("no existe apertura de jornada para ese depósito y fecha")
)
