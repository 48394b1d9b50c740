// Package analytics (aplicación) arma el resumen del dashboard administrativo
// a partir de los cierres de jornada de todos los depósitos.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/depot-ops-api/internal/application/dto"
	"github.com/jhoicas/depot-ops-api/internal/domain/analytics"
	"github.com/jhoicas/depot-ops-api/internal/domain/depotday"
	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
	"github.com/jhoicas/depot-ops-api/internal/domain/repository"
)

const depotPageSize = 200 // techo razonable: el sistema maneja pocos depósitos

// DashboardUseCase genera los KPIs de ventas y conciliación del dashboard.
//
// La fecha de referencia se inyecta (parámetro ref): ningún corte de semana,
// mes o año lee el reloj del sistema, así los resultados son reproducibles.
type DashboardUseCase struct {
	dayRepo      repository.DayRecordRepository
	depotRepo    repository.DepotRepository
	tolerancePct decimal.Decimal
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dayRepo repository.DayRecordRepository, depotRepo repository.DepotRepository, tolerancePct decimal.Decimal) *DashboardUseCase {
	if tolerancePct.LessThanOrEqual(decimal.Zero) {
		tolerancePct = depotday.DefaultTolerancePct
	}
	return &DashboardUseCase{dayRepo: dayRepo, depotRepo: depotRepo, tolerancePct: tolerancePct}
}

// GetSummary construye el DashboardSummaryDTO para la fecha de referencia.
//
// Dos consultas en paralelo:
//  1. Cierres de todos los depósitos desde el inicio de año (o del mes
//     anterior, si ref es enero: la variación mes a mes necesita diciembre).
//  2. Lista de depósitos (para nombres del desglose).
func (uc *DashboardUseCase) GetSummary(ctx context.Context, ref time.Time) (*dto.DashboardSummaryDTO, error) {
	refDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	yearStart := time.Date(refDay.Year(), 1, 1, 0, 0, 0, 0, refDay.Location())
	monthStart := time.Date(refDay.Year(), refDay.Month(), 1, 0, 0, 0, 0, refDay.Location())
	from := yearStart
	if prev := monthStart.AddDate(0, -1, 0); prev.Before(from) {
		from = prev
	}

	type closesResult struct {
		closes []*entity.DayClose
		err    error
	}
	type opensResult struct {
		opens []*entity.DayOpen
		err   error
	}
	type depotsResult struct {
		depots []*entity.Depot
		err    error
	}

	closesCh := make(chan closesResult, 1)
	opensCh := make(chan opensResult, 1)
	depotsCh := make(chan depotsResult, 1)

	go func() {
		closes, err := uc.dayRepo.ListClosesByRange(ctx, "", from, refDay)
		closesCh <- closesResult{closes, err}
	}()
	go func() {
		opens, err := uc.dayRepo.ListOpensByRange(ctx, "", monthStart, refDay)
		opensCh <- opensResult{opens, err}
	}()
	go func() {
		depots, err := uc.depotRepo.List(ctx, depotPageSize, 0)
		depotsCh <- depotsResult{depots, err}
	}()

	closes := <-closesCh
	opens := <-opensCh
	depots := <-depotsCh

	if closes.err != nil {
		return nil, fmt.Errorf("dashboard: cierres del período: %w", closes.err)
	}
	if opens.err != nil {
		return nil, fmt.Errorf("dashboard: aperturas del mes: %w", opens.err)
	}
	if depots.err != nil {
		return nil, fmt.Errorf("dashboard: depósitos: %w", depots.err)
	}

	// ── Serie diaria de ventas en efectivo (todos los depósitos) ──────────────
	points := cashSalesByDay(closes.closes)

	sums := analytics.PeriodSums(points, refDay)
	mom := analytics.MonthOverMonth(points, refDay)
	rolling := analytics.RollingAverage(points, analytics.RollingWindowWeek)
	if len(rolling) > analytics.RollingWindowWeek*4 {
		rolling = rolling[len(rolling)-analytics.RollingWindowWeek*4:] // últimas ~4 semanas
	}

	return &dto.DashboardSummaryDTO{
		TodaySales: sums.Today,
		WeekSales:  sums.WeekToDate,
		MonthSales: sums.MonthToDate,
		YearSales:  sums.YearToDate,
		MonthOverMonth: dto.MoMChangeDTO{
			Current:   mom.Current,
			Previous:  mom.Previous,
			Pct:       mom.Pct,
			Available: mom.Available,
		},
		Rolling7Days: rolling,
		Depots:       uc.depotBreakdown(depots.depots, closes.closes, opens.opens, monthStart, refDay),
		DateLabel:    monthLabel(refDay),
	}, nil
}

// cashSalesByDay agrupa las ventas en efectivo por fecha de negocio.
// La suma es conmutativa: el orden de llegada de los cierres no importa.
func cashSalesByDay(closes []*entity.DayClose) []analytics.Point {
	byDay := make(map[string]*analytics.Point)
	for _, c := range closes {
		key := c.BusinessDate.Format("2006-01-02")
		if p, ok := byDay[key]; ok {
			p.Value = p.Value.Add(c.CashSales)
			continue
		}
		byDay[key] = &analytics.Point{Date: c.BusinessDate, Value: c.CashSales}
	}
	points := make([]analytics.Point, 0, len(byDay))
	for _, p := range byDay {
		points = append(points, *p)
	}
	return points
}

// depotBreakdown arma el desglose del mes en curso por depósito, incluyendo
// cuántos cierres quedaron fuera de tolerancia (requiere la apertura del día
// para recalcular el esperado).
func (uc *DashboardUseCase) depotBreakdown(depots []*entity.Depot, closes []*entity.DayClose, opens []*entity.DayOpen, monthStart, refDay time.Time) []dto.DepotSalesDTO {
	type acc struct {
		cash, mobile decimal.Decimal
		closed       int
		review       int
	}
	byDepot := make(map[string]*acc, len(depots))
	for _, d := range depots {
		byDepot[d.ID] = &acc{cash: decimal.Zero, mobile: decimal.Zero}
	}

	openByKey := make(map[string]*entity.DayOpen, len(opens))
	for _, o := range opens {
		openByKey[dayKey(o.DepotID, o.BusinessDate)] = o
	}

	for _, c := range closes {
		if c.BusinessDate.Before(monthStart) || c.BusinessDate.After(refDay) {
			continue
		}
		a, ok := byDepot[c.DepotID]
		if !ok {
			continue
		}
		a.cash = a.cash.Add(c.CashSales)
		a.mobile = a.mobile.Add(c.MobileSales)
		a.closed++
		if uc.closeNeedsReview(openByKey[dayKey(c.DepotID, c.BusinessDate)], c) {
			a.review++
		}
	}

	out := make([]dto.DepotSalesDTO, 0, len(depots))
	for _, d := range depots {
		a := byDepot[d.ID]
		out = append(out, dto.DepotSalesDTO{
			DepotID:     d.ID,
			DepotName:   d.Name,
			CashSales:   a.cash,
			MobileSales: a.mobile,
			ClosedDays:  a.closed,
			ReviewDays:  a.review,
		})
	}
	return out
}

// closeNeedsReview recalcula la conciliación de un cierre contra su apertura.
func (uc *DashboardUseCase) closeNeedsReview(open *entity.DayOpen, c *entity.DayClose) bool {
	if open == nil {
		return false
	}
	expected, err := depotday.ExpectedCash(open.OpeningCash, c.CashSales, c.RestockCash)
	if err != nil {
		return true
	}
	v, err := depotday.ComputeVariance(expected, c.ClosingCash, uc.tolerancePct)
	if err != nil {
		return true
	}
	return v.NeedsReview
}

func dayKey(depotID string, d time.Time) string {
	return depotID + "|" + d.Format("2006-01-02")
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Marzo 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
