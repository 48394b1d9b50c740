// Package compliance (aplicación) construye el reporte de confianza de un
// depósito: arma los eventos diarios desde los registros de jornada y delega
// el puntaje y la racha en internal/domain/compliance.
package compliance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/depot-ops-api/internal/application/dto"
	"github.com/jhoicas/depot-ops-api/internal/domain"
	"github.com/jhoicas/depot-ops-api/internal/domain/compliance"
	"github.com/jhoicas/depot-ops-api/internal/domain/depotday"
	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
	"github.com/jhoicas/depot-ops-api/internal/domain/repository"
)

// Params parámetros del reporte, derivados de configuración.
type Params struct {
	CutoffHour   int // hora límite de apertura (local del registro)
	CutoffMinute int
	WindowDays   int             // ventana móvil, default 30
	StreakDays   int             // racha mínima para CLEAN, default 7
	TolerancePct decimal.Decimal // misma tolerancia que la conciliación
}

// UseCase genera el reporte de confianza por depósito.
type UseCase struct {
	dayRepo   repository.DayRecordRepository
	depotRepo repository.DepotRepository
	params    Params
}

// NewUseCase construye el caso de uso.
func NewUseCase(dayRepo repository.DayRecordRepository, depotRepo repository.DepotRepository, params Params) *UseCase {
	if params.WindowDays <= 0 {
		params.WindowDays = compliance.DefaultWindowDays
	}
	if params.StreakDays <= 0 {
		params.StreakDays = compliance.DefaultCleanStreakDays
	}
	if params.TolerancePct.LessThanOrEqual(decimal.Zero) {
		params.TolerancePct = depotday.DefaultTolerancePct
	}
	return &UseCase{dayRepo: dayRepo, depotRepo: depotRepo, params: params}
}

// TrustReport calcula puntaje, racha limpia y estado binario para la ventana
// móvil que termina en ref.
//
// Los días anteriores a la primera actividad registrada del depósito no
// generan eventos: un depósito recién creado no arrastra "días inactivos"
// que nunca pudo trabajar (sin historial = cero faltas, puntaje perfecto).
func (uc *UseCase) TrustReport(ctx context.Context, depotID string, ref time.Time) (*dto.TrustReportDTO, error) {
	depot, err := uc.depotRepo.GetByID(ctx, depotID)
	if err != nil {
		return nil, err
	}
	if depot == nil {
		return nil, domain.ErrNotFound
	}

	refDay := dateOnly(ref)
	from := refDay.AddDate(0, 0, -(uc.params.WindowDays - 1))

	opens, err := uc.dayRepo.ListOpensByRange(ctx, depotID, from, refDay)
	if err != nil {
		return nil, err
	}
	closes, err := uc.dayRepo.ListClosesByRange(ctx, depotID, from, refDay)
	if err != nil {
		return nil, err
	}

	events := uc.buildEvents(opens, closes, from, refDay)
	score := compliance.Score(events)
	streak := compliance.CleanStreak(events)

	return &dto.TrustReportDTO{
		DepotID:     depotID,
		WindowDays:  uc.params.WindowDays,
		Score:       score,
		CleanStreak: streak,
		Status:      compliance.StatusFor(streak, uc.params.StreakDays),
		Events:      events,
	}, nil
}

// buildEvents genera un evento por día desde la primera actividad de la
// ventana hasta ref, en orden ascendente.
func (uc *UseCase) buildEvents(opens []*entity.DayOpen, closes []*entity.DayClose, from, to time.Time) []compliance.Event {
	opensByDay := make(map[string]*entity.DayOpen, len(opens))
	for _, o := range opens {
		opensByDay[dayKey(o.BusinessDate)] = o
	}
	closesByDay := make(map[string]*entity.DayClose, len(closes))
	for _, c := range closes {
		closesByDay[dayKey(c.BusinessDate)] = c
	}

	start := firstActivity(opens, closes)
	if start == nil {
		return nil // depósito sin historial en la ventana
	}
	if start.Before(from) {
		start = &from
	}

	var events []compliance.Event
	for day := dateOnly(*start); !day.After(to); day = day.AddDate(0, 0, 1) {
		key := dayKey(day)
		open, hasOpen := opensByDay[key]
		dayClose, hasClose := closesByDay[key]

		e := compliance.Event{Date: day}
		if !hasOpen && !hasClose {
			e.Inactive = true
			events = append(events, e)
			continue
		}
		e.Closed = hasClose
		if hasOpen {
			e.OpenedLate = uc.openedLate(open.OpenedAt)
		}
		if hasOpen && hasClose {
			e.HasVariance = uc.hasVariance(open, dayClose)
		}
		events = append(events, e)
	}
	return events
}

// openedLate compara la hora local de apertura contra el corte configurado.
func (uc *UseCase) openedLate(openedAt time.Time) bool {
	cutoff := time.Date(openedAt.Year(), openedAt.Month(), openedAt.Day(),
		uc.params.CutoffHour, uc.params.CutoffMinute, 0, 0, openedAt.Location())
	return openedAt.After(cutoff)
}

// hasVariance recalcula la conciliación del día con la misma fórmula del
// cierre (nunca una copia local de la aritmética).
func (uc *UseCase) hasVariance(open *entity.DayOpen, dayClose *entity.DayClose) bool {
	expected, err := depotday.ExpectedCash(open.OpeningCash, dayClose.CashSales, dayClose.RestockCash)
	if err != nil {
		return true // registros malformados: tratar como descuadre a revisar
	}
	v, err := depotday.ComputeVariance(expected, dayClose.ClosingCash, uc.params.TolerancePct)
	if err != nil {
		return true
	}
	return v.NeedsReview
}

func firstActivity(opens []*entity.DayOpen, closes []*entity.DayClose) *time.Time {
	var first *time.Time
	for _, o := range opens {
		d := dateOnly(o.BusinessDate)
		if first == nil || d.Before(*first) {
			first = &d
		}
	}
	for _, c := range closes {
		d := dateOnly(c.BusinessDate)
		if first == nil || d.Before(*first) {
			first = &d
		}
	}
	return first
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }
