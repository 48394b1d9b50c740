package depotday_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/depot-ops-api/internal/domain"
	"github.com/jhoicas/depot-ops-api/internal/domain/depotday"
)

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// ──────────────────────────────────────────────────────────────────────────────
// ExpectedCash
// ──────────────────────────────────────────────────────────────────────────────

func TestExpectedCash_Formula(t *testing.T) {
	cases := []struct {
		name                       string
		opening, sales, restock    int64
		want                       int64
	}{
		{"día típico", 100000, 50000, 0, 150000},
		{"con reposición", 100000, 80000, 30000, 150000},
		{"todo cero", 0, 0, 0, 0},
		{"reposición agota la caja", 20000, 10000, 30000, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := depotday.ExpectedCash(d(tc.opening), d(tc.sales), d(tc.restock))
			require.NoError(t, err)
			assert.True(t, got.Equal(d(tc.want)), "esperado %d, obtenido %s", tc.want, got)
		})
	}
}

// Las ventas móviles no participan de la fórmula: ExpectedCash ni siquiera las
// recibe. Este test documenta que la base es solo efectivo físico.
func TestExpectedCash_ExcluyeVentasMoviles(t *testing.T) {
	got, err := depotday.ExpectedCash(d(100000), d(50000), d(0))
	require.NoError(t, err)
	// 150000, sin importar cuánto se haya vendido por pago móvil ese día.
	assert.True(t, got.Equal(d(150000)))
}

func TestExpectedCash_RechazaNegativos(t *testing.T) {
	_, err := depotday.ExpectedCash(d(-1), d(0), d(0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = depotday.ExpectedCash(d(0), d(-500), d(0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = depotday.ExpectedCash(d(0), d(0), d(-500))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeVariance
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeVariance_BaseCero(t *testing.T) {
	// esperado 0 y contado 0: sin descuadre, sin división por cero.
	v, err := depotday.ComputeVariance(d(0), d(0), depotday.DefaultTolerancePct)
	require.NoError(t, err)
	assert.False(t, v.NeedsReview)
	assert.True(t, v.Pct.IsZero())

	// esperado 0 con efectivo contado: siempre a revisión, Pct sigue en 0.
	v, err = depotday.ComputeVariance(d(0), d(500), depotday.DefaultTolerancePct)
	require.NoError(t, err)
	assert.True(t, v.NeedsReview)
	assert.True(t, v.Pct.IsZero())
	assert.True(t, v.Diff.Equal(d(500)))
}

func TestComputeVariance_ToleranciaPorDefecto(t *testing.T) {
	// 4% de descuadre: dentro de la tolerancia del 5%.
	v, err := depotday.ComputeVariance(d(100000), d(104000), depotday.DefaultTolerancePct)
	require.NoError(t, err)
	assert.True(t, v.Pct.Equal(d(4)), "pct = %s", v.Pct)
	assert.False(t, v.NeedsReview)

	// 6% de descuadre: fuera de tolerancia.
	v, err = depotday.ComputeVariance(d(100000), d(106000), depotday.DefaultTolerancePct)
	require.NoError(t, err)
	assert.True(t, v.Pct.Equal(d(6)), "pct = %s", v.Pct)
	assert.True(t, v.NeedsReview)

	// Exactamente 5%: la tolerancia es estricta (> y no >=), no se marca.
	v, err = depotday.ComputeVariance(d(100000), d(105000), depotday.DefaultTolerancePct)
	require.NoError(t, err)
	assert.False(t, v.NeedsReview)
}

func TestComputeVariance_ToleranciaConfigurable(t *testing.T) {
	// Con tolerancia del 3%, el mismo 4% sí va a revisión.
	v, err := depotday.ComputeVariance(d(100000), d(104000), d(3))
	require.NoError(t, err)
	assert.True(t, v.NeedsReview)
}

// Escenario completo del cierre de un día: apertura 100000, ventas en efectivo
// 50000, sin reposición.
func TestComputeVariance_EscenarioCierre(t *testing.T) {
	expected, err := depotday.ExpectedCash(d(100000), d(50000), d(0))
	require.NoError(t, err)
	require.True(t, expected.Equal(d(150000)))

	// Caja cuadrada: contado igual al esperado.
	v, err := depotday.ComputeVariance(expected, d(150000), depotday.DefaultTolerancePct)
	require.NoError(t, err)
	assert.True(t, v.Diff.IsZero())
	assert.False(t, v.NeedsReview)

	// Faltante de 10000: 6.67% sobre 150000, fuera de la tolerancia del 5%.
	v, err = depotday.ComputeVariance(expected, d(140000), depotday.DefaultTolerancePct)
	require.NoError(t, err)
	assert.True(t, v.Diff.Equal(d(-10000)))
	assert.True(t, v.Pct.Equal(decimal.NewFromFloat(6.67)), "pct = %s", v.Pct)
	assert.True(t, v.NeedsReview)
}

func TestComputeVariance_RechazaNegativos(t *testing.T) {
	_, err := depotday.ComputeVariance(d(-1), d(0), depotday.DefaultTolerancePct)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = depotday.ComputeVariance(d(100), d(-1), depotday.DefaultTolerancePct)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
