package compliance_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcompliance "github.com/jhoicas/depot-ops-api/internal/application/compliance"
	"github.com/jhoicas/depot-ops-api/internal/domain"
	domcompliance "github.com/jhoicas/depot-ops-api/internal/domain/compliance"
	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeDayRepo struct {
	opens  []*entity.DayOpen
	closes []*entity.DayClose
}

func (f *fakeDayRepo) InsertOpen(_ context.Context, o *entity.DayOpen) error {
	f.opens = append(f.opens, o)
	return nil
}

func (f *fakeDayRepo) InsertClose(_ context.Context, c *entity.DayClose) error {
	f.closes = append(f.closes, c)
	return nil
}

func (f *fakeDayRepo) GetOpen(_ context.Context, depotID string, date time.Time) (*entity.DayOpen, error) {
	for _, o := range f.opens {
		if o.DepotID == depotID && sameDay(o.BusinessDate, date) {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeDayRepo) GetClose(_ context.Context, depotID string, date time.Time) (*entity.DayClose, error) {
	for _, c := range f.closes {
		if c.DepotID == depotID && sameDay(c.BusinessDate, date) {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeDayRepo) ListOpensByRange(_ context.Context, depotID string, from, to time.Time) ([]*entity.DayOpen, error) {
	var out []*entity.DayOpen
	for _, o := range f.opens {
		if (depotID == "" || o.DepotID == depotID) && !o.BusinessDate.Before(from) && !o.BusinessDate.After(to) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeDayRepo) ListClosesByRange(_ context.Context, depotID string, from, to time.Time) ([]*entity.DayClose, error) {
	var out []*entity.DayClose
	for _, c := range f.closes {
		if (depotID == "" || c.DepotID == depotID) && !c.BusinessDate.Before(from) && !c.BusinessDate.After(to) {
			out = append(out, c)
		}
	}
	return out, nil
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

type fakeDepotRepo struct {
	depots map[string]*entity.Depot
}

func (f *fakeDepotRepo) Create(_ context.Context, d *entity.Depot) error {
	f.depots[d.ID] = d
	return nil
}

func (f *fakeDepotRepo) GetByID(_ context.Context, id string) (*entity.Depot, error) {
	return f.depots[id], nil
}

func (f *fakeDepotRepo) List(_ context.Context, _, _ int) ([]*entity.Depot, error) {
	var out []*entity.Depot
	for _, d := range f.depots {
		out = append(out, d)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers: arman jornadas limpias o con faltas contra una fecha de referencia
// ──────────────────────────────────────────────────────────────────────────────

var ref = time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time { return ref.AddDate(0, 0, offset) }

// openAt registra una apertura a la hora dada del día indicado.
func openAt(repo *fakeDayRepo, depotID string, date time.Time, hour, minute int) {
	repo.opens = append(repo.opens, &entity.DayOpen{
		DepotID:      depotID,
		BusinessDate: date,
		OpenedAt:     time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()),
		OperatorName: "María",
		OpeningCash:  decimal.NewFromInt(50_000),
	})
}

// closeWith registra un cierre con el efectivo contado dado (ventas 100.000).
func closeWith(repo *fakeDayRepo, depotID string, date time.Time, closingCash int64) {
	repo.closes = append(repo.closes, &entity.DayClose{
		DepotID:      depotID,
		BusinessDate: date,
		ClosedAt:     time.Date(date.Year(), date.Month(), date.Day(), 20, 0, 0, 0, date.Location()),
		OperatorName: "María",
		CashSales:    decimal.NewFromInt(100_000),
		ClosingCash:  decimal.NewFromInt(closingCash),
		RestockCash:  decimal.Zero,
	})
}

// cleanDay arma una jornada sin faltas: apertura temprana y caja cuadrada.
func cleanDay(repo *fakeDayRepo, depotID string, date time.Time) {
	openAt(repo, depotID, date, 7, 30)
	closeWith(repo, depotID, date, 150_000)
}

func newTestUseCase(dayRepo *fakeDayRepo) *appcompliance.UseCase {
	depotRepo := &fakeDepotRepo{depots: map[string]*entity.Depot{
		"d1": {ID: "d1", Code: "DEP-01", Name: "Depósito Centro"},
	}}
	return appcompliance.NewUseCase(dayRepo, depotRepo, appcompliance.Params{
		CutoffHour:   8,
		CutoffMinute: 0,
		WindowDays:   30,
		StreakDays:   7,
		TolerancePct: decimal.NewFromInt(5),
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// TrustReport
// ──────────────────────────────────────────────────────────────────────────────

func TestTrustReport_DepositoNuevoSinHistorial(t *testing.T) {
	uc := newTestUseCase(&fakeDayRepo{})

	out, err := uc.TrustReport(context.Background(), "d1", ref)
	require.NoError(t, err)

	assert.Equal(t, 100, out.Score, "sin historial no hay faltas que penalizar")
	assert.Equal(t, 0, out.CleanStreak)
	assert.Equal(t, domcompliance.StatusNotClean, out.Status)
	assert.Empty(t, out.Events)
}

func TestTrustReport_HistorialPerfecto(t *testing.T) {
	repo := &fakeDayRepo{}
	for i := -9; i <= 0; i++ {
		cleanDay(repo, "d1", day(i))
	}
	uc := newTestUseCase(repo)

	out, err := uc.TrustReport(context.Background(), "d1", ref)
	require.NoError(t, err)

	assert.Equal(t, 100, out.Score)
	assert.Equal(t, 10, out.CleanStreak)
	assert.Equal(t, domcompliance.StatusClean, out.Status, "10 días limpios superan la racha mínima de 7")
	assert.Len(t, out.Events, 10, "los eventos empiezan en la primera actividad, no en el inicio de la ventana")
}

func TestTrustReport_AperturaTardia(t *testing.T) {
	repo := &fakeDayRepo{}
	for i := -7; i <= -1; i++ {
		cleanDay(repo, "d1", day(i))
	}
	// Hoy abrió 09:30, después del corte de 08:00, pero cerró cuadrado.
	openAt(repo, "d1", day(0), 9, 30)
	closeWith(repo, "d1", day(0), 150_000)
	uc := newTestUseCase(repo)

	out, err := uc.TrustReport(context.Background(), "d1", ref)
	require.NoError(t, err)

	assert.Equal(t, 95, out.Score, "apertura tardía penaliza 5 puntos")
	assert.Equal(t, 0, out.CleanStreak, "la falta de hoy rompe la racha")
	assert.Equal(t, domcompliance.StatusNotClean, out.Status)
}

func TestTrustReport_CierreFaltante(t *testing.T) {
	repo := &fakeDayRepo{}
	for i := -7; i <= -2; i++ {
		cleanDay(repo, "d1", day(i))
	}
	openAt(repo, "d1", day(-1), 7, 30) // abrió y nunca cerró
	cleanDay(repo, "d1", day(0))
	uc := newTestUseCase(repo)

	out, err := uc.TrustReport(context.Background(), "d1", ref)
	require.NoError(t, err)

	assert.Equal(t, 90, out.Score, "cierre faltante penaliza 10 puntos")
	assert.Equal(t, 1, out.CleanStreak, "solo hoy cuenta para la racha")
}

func TestTrustReport_DiaInactivoNoEsCierreFaltante(t *testing.T) {
	repo := &fakeDayRepo{}
	cleanDay(repo, "d1", day(-2))
	// day(-1): sin apertura ni cierre → inactivo (−1), no cierre faltante (−10)
	cleanDay(repo, "d1", day(0))
	uc := newTestUseCase(repo)

	out, err := uc.TrustReport(context.Background(), "d1", ref)
	require.NoError(t, err)

	assert.Equal(t, 99, out.Score, "el día inactivo penaliza 1 punto, no 10")
	require.Len(t, out.Events, 3)
	assert.True(t, out.Events[1].Inactive)
}

func TestTrustReport_DescuadreFueraDeTolerancia(t *testing.T) {
	repo := &fakeDayRepo{}
	for i := -5; i <= -1; i++ {
		cleanDay(repo, "d1", day(i))
	}
	// Hoy: esperado 150.000, contado 140.000 → 6.67% de descuadre
	openAt(repo, "d1", day(0), 7, 30)
	closeWith(repo, "d1", day(0), 140_000)
	uc := newTestUseCase(repo)

	out, err := uc.TrustReport(context.Background(), "d1", ref)
	require.NoError(t, err)

	assert.Equal(t, 75, out.Score, "descuadre fuera de tolerancia penaliza 25 puntos")
	assert.Equal(t, 0, out.CleanStreak)
}

func TestTrustReport_DescuadreDentroDeToleranciaNoPenaliza(t *testing.T) {
	repo := &fakeDayRepo{}
	openAt(repo, "d1", day(0), 7, 30)
	closeWith(repo, "d1", day(0), 148_000) // 1.33%, dentro del 5%
	uc := newTestUseCase(repo)

	out, err := uc.TrustReport(context.Background(), "d1", ref)
	require.NoError(t, err)

	assert.Equal(t, 100, out.Score)
	assert.Equal(t, 1, out.CleanStreak)
}

func TestTrustReport_DepositoInexistente(t *testing.T) {
	uc := newTestUseCase(&fakeDayRepo{})

	_, err := uc.TrustReport(context.Background(), "fantasma", ref)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
