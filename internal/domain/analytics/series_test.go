package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/depot-ops-api/internal/domain/analytics"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func pt(t time.Time, v int64) analytics.Point {
	return analytics.Point{Date: t, Value: decimal.NewFromInt(v)}
}

// series construye una serie diaria consecutiva a partir de start.
func series(start time.Time, values ...int64) []analytics.Point {
	out := make([]analytics.Point, 0, len(values))
	for i, v := range values {
		out = append(out, pt(start.AddDate(0, 0, i), v))
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// RollingAverage
// ──────────────────────────────────────────────────────────────────────────────

// Serie constante: el promedio móvil debe ser exactamente el valor, con
// cualquier tamaño de ventana y en todos los puntos.
func TestRollingAverage_SerieConstante(t *testing.T) {
	pts := series(day(2026, 3, 1), 500, 500, 500, 500, 500, 500, 500, 500, 500, 500)

	for _, n := range []int{analytics.RollingWindowShort, analytics.RollingWindowWeek} {
		got := analytics.RollingAverage(pts, n)
		require.Len(t, got, len(pts))
		for _, p := range got {
			assert.True(t, p.Value.Equal(decimal.NewFromInt(500)),
				"ventana %d, fecha %s: %s", n, p.Date.Format("2006-01-02"), p.Value)
		}
	}
}

// Al inicio de la serie, con menos puntos que la ventana, se promedia sobre
// los que existan.
func TestRollingAverage_VentanaCorta(t *testing.T) {
	pts := series(day(2026, 3, 1), 100, 200, 300)

	got := analytics.RollingAverage(pts, 5)
	require.Len(t, got, 3)
	assert.True(t, got[0].Value.Equal(decimal.NewFromInt(100)))
	assert.True(t, got[1].Value.Equal(decimal.NewFromInt(150)))
	assert.True(t, got[2].Value.Equal(decimal.NewFromInt(200)))
}

// La ventana desliza: al llegar el punto n+1 el primero sale del promedio.
func TestRollingAverage_Desliza(t *testing.T) {
	pts := series(day(2026, 3, 1), 100, 100, 100, 700)

	got := analytics.RollingAverage(pts, 3)
	require.Len(t, got, 4)
	// Últimos 3 puntos: (100+100+700)/3 = 300.
	assert.True(t, got[3].Value.Equal(decimal.NewFromInt(300)), "got %s", got[3].Value)
}

func TestRollingAverage_OrdenaPorFecha(t *testing.T) {
	// Entrada desordenada: el resultado se calcula en orden ascendente.
	pts := []analytics.Point{
		pt(day(2026, 3, 3), 300),
		pt(day(2026, 3, 1), 100),
		pt(day(2026, 3, 2), 200),
	}
	got := analytics.RollingAverage(pts, 3)
	require.Len(t, got, 3)
	assert.Equal(t, day(2026, 3, 1), got[0].Date)
	assert.True(t, got[2].Value.Equal(decimal.NewFromInt(200)))
}

func TestRollingAverage_SerieVacia(t *testing.T) {
	assert.Empty(t, analytics.RollingAverage(nil, 7))
}

// ──────────────────────────────────────────────────────────────────────────────
// PeriodSums — la fecha de referencia se inyecta, nunca se lee el reloj.
// ──────────────────────────────────────────────────────────────────────────────

func TestPeriodSums_CortesDeCalendario(t *testing.T) {
	// Referencia: miércoles 18 de marzo de 2026. La semana ISO inicia el
	// lunes 16.
	ref := day(2026, 3, 18)
	pts := []analytics.Point{
		pt(day(2026, 3, 18), 100), // hoy
		pt(day(2026, 3, 16), 200), // lunes: misma semana
		pt(day(2026, 3, 15), 400), // domingo: semana anterior, mismo mes
		pt(day(2026, 2, 28), 800), // mes anterior, mismo año
		pt(day(2025, 12, 31), 1600), // año anterior: fuera de todo
		pt(day(2026, 3, 19), 3200),  // futuro respecto a ref: se ignora
	}

	got := analytics.PeriodSums(pts, ref)
	assert.True(t, got.Today.Equal(decimal.NewFromInt(100)), "hoy = %s", got.Today)
	assert.True(t, got.WeekToDate.Equal(decimal.NewFromInt(300)), "semana = %s", got.WeekToDate)
	assert.True(t, got.MonthToDate.Equal(decimal.NewFromInt(700)), "mes = %s", got.MonthToDate)
	assert.True(t, got.YearToDate.Equal(decimal.NewFromInt(1500)), "año = %s", got.YearToDate)
}

// Referencia en lunes: la semana a la fecha es solo ese día.
func TestPeriodSums_LunesIniciaSemana(t *testing.T) {
	ref := day(2026, 3, 16) // lunes
	pts := []analytics.Point{
		pt(day(2026, 3, 16), 100),
		pt(day(2026, 3, 15), 200), // domingo anterior
	}

	got := analytics.PeriodSums(pts, ref)
	assert.True(t, got.WeekToDate.Equal(decimal.NewFromInt(100)))
}

// Rango sin registros: resultado cero bien definido, no un error.
func TestPeriodSums_SinRegistros(t *testing.T) {
	got := analytics.PeriodSums(nil, day(2026, 3, 18))
	assert.True(t, got.Today.IsZero())
	assert.True(t, got.YearToDate.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// MonthOverMonth
// ──────────────────────────────────────────────────────────────────────────────

func TestMonthOverMonth_Disponible(t *testing.T) {
	ref := day(2026, 3, 18)
	pts := []analytics.Point{
		pt(day(2026, 3, 5), 120000),
		pt(day(2026, 3, 12), 30000),
		pt(day(2026, 2, 10), 100000),
	}

	got := analytics.MonthOverMonth(pts, ref)
	require.True(t, got.Available)
	// (150000 - 100000) / 100000 * 100 = 50%
	assert.True(t, got.Pct.Equal(decimal.NewFromInt(50)), "pct = %s", got.Pct)
}

// Mes anterior sin registros: la comparación se reporta como no disponible,
// jamás como 0 ni NaN.
func TestMonthOverMonth_SinMesAnterior(t *testing.T) {
	ref := day(2026, 3, 18)
	pts := []analytics.Point{pt(day(2026, 3, 5), 120000)}

	got := analytics.MonthOverMonth(pts, ref)
	assert.False(t, got.Available)
	assert.True(t, got.Current.Equal(decimal.NewFromInt(120000)))
	assert.True(t, got.Previous.IsZero())
}

// Mes anterior con registros que suman cero: tampoco hay base de comparación.
func TestMonthOverMonth_MesAnteriorEnCero(t *testing.T) {
	ref := day(2026, 3, 18)
	pts := []analytics.Point{
		pt(day(2026, 3, 5), 120000),
		pt(day(2026, 2, 10), 0),
	}

	got := analytics.MonthOverMonth(pts, ref)
	assert.False(t, got.Available)
}

func TestMonthOverMonth_CaidaNegativa(t *testing.T) {
	ref := day(2026, 3, 18)
	pts := []analytics.Point{
		pt(day(2026, 3, 5), 50000),
		pt(day(2026, 2, 10), 100000),
	}

	got := analytics.MonthOverMonth(pts, ref)
	require.True(t, got.Available)
	assert.True(t, got.Pct.Equal(decimal.NewFromInt(-50)), "pct = %s", got.Pct)
}
