// Package compliance calcula el puntaje de confianza (0–100) y la racha limpia
// de un depósito a partir de su historial reciente de aperturas y cierres.
//
// El puntaje es una función pura de ventana móvil (30 días por defecto): se
// recalcula completo en cada lectura y las faltas salen de la ventana con el
// tiempo. No es un libro mayor permanente.
package compliance

import "time"

// Parámetros por defecto del puntaje.
const (
	DefaultWindowDays      = 30
	DefaultCleanStreakDays = 7

	PenaltyLateOpen    = 5  // apertura después de la hora de corte
	PenaltyMissedClose = 10 // jornada abierta sin cierre
	PenaltyVariance    = 25 // cierre con descuadre fuera de tolerancia
	PenaltyInactive    = 1  // día sin actividad alguna
)

// Status es la clasificación binaria de cumplimiento.
type Status string

const (
	StatusClean    Status = "CLEAN"
	StatusNotClean Status = "NOT_CLEAN"
)

// Event resume el cumplimiento de un depósito en un día.
// Inactive es excluyente con el resto: un día sin apertura ni cierre no es
// "cierre omitido", es inactividad (penalización menor).
type Event struct {
	Date        time.Time `json:"date"`
	OpenedLate  bool      `json:"opened_late"`
	Closed      bool      `json:"closed"`
	HasVariance bool      `json:"has_variance"`
	Inactive    bool      `json:"inactive"`
}

// Clean indica si el día no tuvo falta alguna.
func (e Event) Clean() bool {
	return !e.Inactive && !e.OpenedLate && e.Closed && !e.HasVariance
}

// Score calcula el puntaje de confianza sobre los eventos dados.
// Parte de 100, resta por falta y acota a [0, 100]. Sin historial (depósito
// nuevo) no hay faltas: puntaje perfecto.
func Score(events []Event) int {
	score := 100
	for _, e := range events {
		if e.Inactive {
			score -= PenaltyInactive
			continue
		}
		if e.OpenedLate {
			score -= PenaltyLateOpen
		}
		if !e.Closed {
			score -= PenaltyMissedClose
		}
		if e.HasVariance {
			score -= PenaltyVariance
		}
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// CleanStreak cuenta los días limpios consecutivos desde el más reciente hacia
// atrás. events debe venir en orden ascendente de fecha. Es independiente del
// puntaje numérico: una sola falta reciente rompe la racha aunque el puntaje
// siga alto.
func CleanStreak(events []Event) int {
	streak := 0
	for i := len(events) - 1; i >= 0; i-- {
		if !events[i].Clean() {
			break
		}
		streak++
	}
	return streak
}

// StatusFor deriva el estado binario a partir de la racha limpia.
func StatusFor(streak, minDays int) Status {
	if minDays <= 0 {
		minDays = DefaultCleanStreakDays
	}
	if streak >= minDays {
		return StatusClean
	}
	return StatusNotClean
}
