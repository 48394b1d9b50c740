package depotday_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/depot-ops-api/internal/domain/depotday"
)

// Tabla de verdad completa del resolutor de estado: para cada combinación de
// registros existentes debe salir exactamente uno de los estados definidos.
func TestResolveState_TablaCompleta(t *testing.T) {
	cases := []struct {
		name     string
		hasOpen  bool
		hasClose bool
		want     depotday.DayState
	}{
		{"sin registros", false, false, depotday.StateNotOpened},
		{"solo apertura", true, false, depotday.StateOpened},
		{"apertura y cierre", true, true, depotday.StateClosed},
		// Cierre sin apertura: violación de integridad que la FK debería
		// impedir. Se reporta explícito, nunca como CLOSED.
		{"cierre huérfano", false, true, depotday.StateInconsistent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, depotday.ResolveState(tc.hasOpen, tc.hasClose))
		})
	}
}
