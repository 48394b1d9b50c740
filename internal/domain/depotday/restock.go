package depotday

import (
	"sort"

	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
)

// statusSeverity ordena los estados de conteo no numéricos: OUT < LOW < IN.
// Un estado desconocido queda fuera de la comparación.
func statusSeverity(s string) int {
	switch s {
	case entity.SKUStatusOut:
		return 0
	case entity.SKUStatusLow:
		return 1
	case entity.SKUStatusIn:
		return 2
	default:
		return -1
	}
}

// RestockCandidate es un SKU cuyo conteo al cierre supera al de apertura:
// señal de que hubo reposición durante el día. Es informativo; solo los SKUs
// que el operador confirma participan del efectivo de reposición.
type RestockCandidate struct {
	SKU       string          `json:"sku"`
	Opening   entity.SKUCount `json:"opening"`
	Closing   entity.SKUCount `json:"closing"`
	Confirmed bool            `json:"confirmed"`
}

// DetectRestocks detecta incrementos por SKU entre el conteo de apertura y el
// de cierre. Conteos numéricos comparan por cantidad; conteos por estado, por
// severidad (OUT < LOW < IN). Un SKU sin conteo de apertura se compara contra
// cero/OUT. SKUs con formas mezcladas (numérico vs estado) no son comparables
// y se omiten. confirmed marca los SKUs que el operador declaró repuestos.
func DetectRestocks(opening, closing map[string]entity.SKUCount, confirmed []string) []RestockCandidate {
	confirmedSet := make(map[string]bool, len(confirmed))
	for _, sku := range confirmed {
		confirmedSet[sku] = true
	}

	var out []RestockCandidate
	for sku, close := range closing {
		open := opening[sku] // cero/valor vacío si no existía en apertura
		if increased(open, close) {
			out = append(out, RestockCandidate{
				SKU:       sku,
				Opening:   open,
				Closing:   close,
				Confirmed: confirmedSet[sku],
			})
		}
	}
	// Orden estable para respuestas y reportes.
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// increased decide si el conteo de cierre supera al de apertura.
func increased(open, close entity.SKUCount) bool {
	switch {
	case close.IsStatus() && open.IsStatus():
		oc, cc := statusSeverity(open.Status), statusSeverity(close.Status)
		return oc >= 0 && cc >= 0 && cc > oc
	case close.IsStatus():
		// Apertura sin registro: un estado se compara contra OUT.
		if !open.Quantity.IsZero() {
			return false // formas mezcladas, no comparable
		}
		return statusSeverity(close.Status) > statusSeverity(entity.SKUStatusOut)
	case open.IsStatus():
		return false // formas mezcladas, no comparable
	default:
		return close.Quantity.GreaterThan(open.Quantity)
	}
}
