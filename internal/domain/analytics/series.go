// Package analytics contiene reducciones numéricas puras sobre series con
// fecha: promedios móviles, sumas por período y variación mes a mes.
//
// Nada aquí lee el reloj del sistema: toda función que dependa de "hoy" recibe
// la fecha de referencia como parámetro, así los cortes de semana/mes/año son
// deterministas y testeables.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Ventanas de promedio móvil usadas por los dashboards.
const (
	RollingWindowShort = 5
	RollingWindowWeek  = 7
)

var hundred = decimal.NewFromInt(100)

// Point es un valor numérico asociado a una fecha de negocio.
type Point struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// sortedByDate devuelve una copia de la serie en orden ascendente de fecha.
func sortedByDate(points []Point) []Point {
	out := make([]Point, len(points))
	copy(out, points)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// RollingAverage calcula el promedio móvil de ventana n en orden ascendente de
// fecha. Al inicio de la serie, cuando aún no hay n puntos, promedia sobre los
// que existan. Con n <= 0 se usa RollingWindowWeek.
func RollingAverage(points []Point, n int) []Point {
	if n <= 0 {
		n = RollingWindowWeek
	}
	pts := sortedByDate(points)

	out := make([]Point, 0, len(pts))
	window := decimal.Zero
	for i, p := range pts {
		window = window.Add(p.Value)
		if i >= n {
			window = window.Sub(pts[i-n].Value)
		}
		size := i + 1
		if size > n {
			size = n
		}
		out = append(out, Point{
			Date:  p.Date,
			Value: window.Div(decimal.NewFromInt(int64(size))),
		})
	}
	return out
}

// PeriodTotals son las sumas acumuladas relativas a una fecha de referencia.
type PeriodTotals struct {
	Today       decimal.Decimal `json:"today"`
	WeekToDate  decimal.Decimal `json:"week_to_date"`
	MonthToDate decimal.Decimal `json:"month_to_date"`
	YearToDate  decimal.Decimal `json:"year_to_date"`
}

// PeriodSums suma los valores cuya fecha cae dentro de cada período terminado
// en ref. La semana inicia el lunes (convención ISO-8601); mes y año son
// calendario. Una serie vacía o sin fechas en rango devuelve sumas en cero.
func PeriodSums(points []Point, ref time.Time) PeriodTotals {
	refDay := dateOnly(ref)
	weekStart := refDay.AddDate(0, 0, -mondayOffset(refDay))
	monthStart := time.Date(refDay.Year(), refDay.Month(), 1, 0, 0, 0, 0, refDay.Location())
	yearStart := time.Date(refDay.Year(), 1, 1, 0, 0, 0, 0, refDay.Location())

	t := PeriodTotals{
		Today:       decimal.Zero,
		WeekToDate:  decimal.Zero,
		MonthToDate: decimal.Zero,
		YearToDate:  decimal.Zero,
	}
	for _, p := range points {
		d := dateOnly(p.Date)
		if d.After(refDay) || d.Before(yearStart) {
			continue
		}
		t.YearToDate = t.YearToDate.Add(p.Value)
		if !d.Before(monthStart) {
			t.MonthToDate = t.MonthToDate.Add(p.Value)
		}
		if !d.Before(weekStart) {
			t.WeekToDate = t.WeekToDate.Add(p.Value)
		}
		if d.Equal(refDay) {
			t.Today = t.Today.Add(p.Value)
		}
	}
	return t
}

// MoMChange es la variación porcentual del mes de referencia contra el
// anterior. Available es false cuando el mes anterior no tiene registros o
// suma cero: en ese caso no hay comparación posible (nunca se reporta 0 ni
// se divide por cero).
type MoMChange struct {
	Current   decimal.Decimal `json:"current"`
	Previous  decimal.Decimal `json:"previous"`
	Pct       decimal.Decimal `json:"pct"`
	Available bool            `json:"available"`
}

// MonthOverMonth compara el mes calendario de ref contra el mes anterior.
func MonthOverMonth(points []Point, ref time.Time) MoMChange {
	refDay := dateOnly(ref)
	curStart := time.Date(refDay.Year(), refDay.Month(), 1, 0, 0, 0, 0, refDay.Location())
	prevStart := curStart.AddDate(0, -1, 0)
	nextStart := curStart.AddDate(0, 1, 0)

	current, previous := decimal.Zero, decimal.Zero
	prevCount := 0
	for _, p := range points {
		d := dateOnly(p.Date)
		switch {
		case !d.Before(curStart) && d.Before(nextStart):
			current = current.Add(p.Value)
		case !d.Before(prevStart) && d.Before(curStart):
			previous = previous.Add(p.Value)
			prevCount++
		}
	}

	out := MoMChange{Current: current, Previous: previous}
	if prevCount == 0 || previous.IsZero() {
		return out // sin base de comparación
	}
	out.Pct = current.Sub(previous).Div(previous).Mul(hundred).Round(2)
	out.Available = true
	return out
}

// dateOnly trunca un timestamp a su fecha de negocio (00:00 en su zona).
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// mondayOffset devuelve cuántos días atrás está el lunes de la semana de d.
func mondayOffset(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}
