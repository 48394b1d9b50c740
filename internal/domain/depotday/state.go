// Package depotday contiene la lógica pura de la jornada de un depósito:
// resolución del estado del día y conciliación de caja al cierre.
//
// Todas las funciones son deterministas y sin I/O. La capa de aplicación
// consulta los registros en la base de datos y llama aquí; este paquete es la
// única implementación de estas reglas (no se duplican por vista ni reporte).
package depotday

// DayState es el estado derivado de una jornada (depósito + fecha).
// Nunca se persiste: se recalcula siempre a partir de la existencia de los
// registros de apertura y cierre.
type DayState string

const (
	StateNotOpened DayState = "NOT_OPENED"
	StateOpened    DayState = "OPENED"
	StateClosed    DayState = "CLOSED"

	// StateInconsistent: existe cierre sin apertura. La FK en la base de datos
	// lo impide; si aun así se observa, se reporta explícitamente en lugar de
	// disfrazarlo de CLOSED.
	StateInconsistent DayState = "INCONSISTENT"
)

// ResolveState deriva el estado de la jornada según qué registros existen.
// La ausencia de registros es un estado válido, no un error.
func ResolveState(hasOpen, hasClose bool) DayState {
	switch {
	case hasOpen && hasClose:
		return StateClosed
	case !hasOpen && hasClose:
		return StateInconsistent
	case hasOpen:
		return StateOpened
	default:
		return StateNotOpened
	}
}
