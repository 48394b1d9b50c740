package depotday_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/depot-ops-api/internal/domain/depotday"
	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
)

func qty(n int64) entity.SKUCount {
	return entity.SKUCount{Quantity: decimal.NewFromInt(n)}
}

func status(s string) entity.SKUCount {
	return entity.SKUCount{Status: s}
}

func TestDetectRestocks_ConteoNumerico(t *testing.T) {
	opening := map[string]entity.SKUCount{
		"ARROZ-1K":  qty(10),
		"ACEITE-1L": qty(5),
		"SAL-500G":  qty(8),
	}
	closing := map[string]entity.SKUCount{
		"ARROZ-1K":  qty(25), // subió: candidato a reposición
		"ACEITE-1L": qty(2),  // bajó: venta normal
		"SAL-500G":  qty(8),  // igual: sin cambio
	}

	got := depotday.DetectRestocks(opening, closing, []string{"ARROZ-1K"})
	require.Len(t, got, 1)
	assert.Equal(t, "ARROZ-1K", got[0].SKU)
	assert.True(t, got[0].Confirmed)
}

func TestDetectRestocks_SeveridadDeEstados(t *testing.T) {
	opening := map[string]entity.SKUCount{
		"GAS-10KG":  status(entity.SKUStatusOut),
		"HIELO-5KG": status(entity.SKUStatusIn),
	}
	closing := map[string]entity.SKUCount{
		"GAS-10KG":  status(entity.SKUStatusLow), // OUT → LOW: incremento
		"HIELO-5KG": status(entity.SKUStatusLow), // IN → LOW: descenso
	}

	got := depotday.DetectRestocks(opening, closing, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "GAS-10KG", got[0].SKU)
	assert.False(t, got[0].Confirmed)
}

// Un SKU que aparece al cierre sin conteo de apertura se compara contra
// cero (numérico) o contra OUT (por estado).
func TestDetectRestocks_SKUNuevoAlCierre(t *testing.T) {
	closing := map[string]entity.SKUCount{
		"AZUCAR-1K": qty(12),
		"GAS-10KG":  status(entity.SKUStatusIn),
	}

	got := depotday.DetectRestocks(nil, closing, nil)
	require.Len(t, got, 2)
	// Orden alfabético estable.
	assert.Equal(t, "AZUCAR-1K", got[0].SKU)
	assert.Equal(t, "GAS-10KG", got[1].SKU)
}

// Formas mezcladas (numérico en apertura, estado al cierre o viceversa) no son
// comparables: se omiten en lugar de adivinar.
func TestDetectRestocks_FormasMezcladasSeOmiten(t *testing.T) {
	opening := map[string]entity.SKUCount{
		"ARROZ-1K": qty(10),
		"GAS-10KG": status(entity.SKUStatusLow),
	}
	closing := map[string]entity.SKUCount{
		"ARROZ-1K": status(entity.SKUStatusIn),
		"GAS-10KG": qty(3),
	}

	got := depotday.DetectRestocks(opening, closing, nil)
	assert.Empty(t, got)
}

func TestDetectRestocks_SinConteos(t *testing.T) {
	assert.Empty(t, depotday.DetectRestocks(nil, nil, nil))
}
