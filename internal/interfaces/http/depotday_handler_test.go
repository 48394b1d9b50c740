package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdepotday "github.com/jhoicas/depot-ops-api/internal/application/depotday"
	"github.com/jhoicas/depot-ops-api/internal/domain"
	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
	"github.com/jhoicas/depot-ops-api/internal/domain/repository"
	apphttp "github.com/jhoicas/depot-ops-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el handler de jornadas
// ──────────────────────────────────────────────────────────────────────────────

type memDayRepo struct {
	opens  map[string]*entity.DayOpen
	closes map[string]*entity.DayClose
}

func newMemDayRepo() *memDayRepo {
	return &memDayRepo{
		opens:  map[string]*entity.DayOpen{},
		closes: map[string]*entity.DayClose{},
	}
}

func dayKey(depotID string, d time.Time) string {
	return depotID + "|" + d.Format("2006-01-02")
}

func (m *memDayRepo) GetOpen(_ context.Context, depotID string, date time.Time) (*entity.DayOpen, error) {
	return m.opens[dayKey(depotID, date)], nil
}

func (m *memDayRepo) GetClose(_ context.Context, depotID string, date time.Time) (*entity.DayClose, error) {
	return m.closes[dayKey(depotID, date)], nil
}

func (m *memDayRepo) InsertOpen(_ context.Context, o *entity.DayOpen) error {
	k := dayKey(o.DepotID, o.BusinessDate)
	if _, ok := m.opens[k]; ok {
		return domain.ErrDayAlreadyOpened
	}
	m.opens[k] = o
	return nil
}

func (m *memDayRepo) InsertClose(_ context.Context, c *entity.DayClose) error {
	k := dayKey(c.DepotID, c.BusinessDate)
	if _, ok := m.closes[k]; ok {
		return domain.ErrDayAlreadyClosed
	}
	if _, ok := m.opens[k]; !ok {
		return domain.ErrDayNotOpened
	}
	m.closes[k] = c
	return nil
}

func (m *memDayRepo) ListOpensByRange(_ context.Context, _ string, _, _ time.Time) ([]*entity.DayOpen, error) {
	return nil, nil
}

func (m *memDayRepo) ListClosesByRange(_ context.Context, _ string, _, _ time.Time) ([]*entity.DayClose, error) {
	return nil, nil
}

type memDepotRepo struct {
	depots map[string]*entity.Depot
}

func (m *memDepotRepo) Create(_ context.Context, d *entity.Depot) error {
	m.depots[d.ID] = d
	return nil
}

func (m *memDepotRepo) GetByID(_ context.Context, id string) (*entity.Depot, error) {
	return m.depots[id], nil
}

func (m *memDepotRepo) List(_ context.Context, _, _ int) ([]*entity.Depot, error) {
	return nil, nil
}

type memTxRunner struct {
	dayRepo *memDayRepo
}

func (m *memTxRunner) RunDay(_ context.Context, fn func(dayRepo repository.DayRecordRepository) error) error {
	return fn(m.dayRepo)
}

// buildDayApp arma la aplicación con las rutas de jornada protegidas, igual
// que el router real.
func buildDayApp() *fiber.App {
	dayRepo := newMemDayRepo()
	depotRepo := &memDepotRepo{depots: map[string]*entity.Depot{
		testDepotID: {ID: testDepotID, Code: "DEP-01", Name: "Depósito Centro"},
	}}
	uc := appdepotday.NewUseCase(dayRepo, depotRepo, &memTxRunner{dayRepo: dayRepo}, decimal.NewFromInt(5))
	handler := apphttp.NewDayHandler(uc)

	app := fiber.New()
	days := app.Group("/api/depots/:id/days", apphttp.AuthMiddleware(testJWTSecret))
	days.Post("/:date/open", handler.OpenDay)
	days.Post("/:date/close", handler.CloseDay)
	days.Get("/:date", handler.DayStatus)
	return app
}

func doDayRequest(t *testing.T, app *fiber.App, method, path, role string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", tokenForRole(t, role))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo apertura → estado → cierre → estado
// ──────────────────────────────────────────────────────────────────────────────

func TestDayHandler_FlujoCompletoDeJornada(t *testing.T) {
	app := buildDayApp()
	base := "/api/depots/" + testDepotID + "/days/2026-03-18"

	// Antes de abrir: NOT_OPENED
	resp := doDayRequest(t, app, http.MethodGet, base, entity.RoleOperador, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "NOT_OPENED", decodeBody(t, resp)["state"])

	// Apertura
	resp = doDayRequest(t, app, http.MethodPost, base+"/open", entity.RoleOperador, fiber.Map{
		"operator_name": "María",
		"opening_cash":  "50000",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Abierta pero sin cierre
	resp = doDayRequest(t, app, http.MethodGet, base, entity.RoleOperador, nil)
	body := decodeBody(t, resp)
	assert.Equal(t, "OPENED", body["state"])
	assert.Nil(t, body["reconciliation"])

	// Cierre cuadrado: 50000 + 100000 = 150000 esperado, contado 148000 (1.33%)
	resp = doDayRequest(t, app, http.MethodPost, base+"/close", entity.RoleOperador, fiber.Map{
		"operator_name": "María",
		"cash_sales":    "100000",
		"mobile_sales":  "30000",
		"closing_cash":  "148000",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	result := decodeBody(t, resp)
	recon := result["reconciliation"].(map[string]any)
	assert.Equal(t, "150000", recon["expected"], "las ventas móviles no entran al esperado")
	assert.Equal(t, "-2000", recon["diff"])
	assert.Equal(t, false, recon["needs_review"])

	// Cerrada: el estado recalcula la misma conciliación
	resp = doDayRequest(t, app, http.MethodGet, base, entity.RoleOperador, nil)
	body = decodeBody(t, resp)
	assert.Equal(t, "CLOSED", body["state"])
	require.NotNil(t, body["reconciliation"])
}

func TestDayHandler_AperturaDuplicada_Retorna409(t *testing.T) {
	app := buildDayApp()
	path := "/api/depots/" + testDepotID + "/days/2026-03-18/open"
	in := fiber.Map{"operator_name": "María", "opening_cash": "50000"}

	resp := doDayRequest(t, app, http.MethodPost, path, entity.RoleAdmin, in)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doDayRequest(t, app, http.MethodPost, path, entity.RoleAdmin, in)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DAY_ALREADY_OPENED", decodeBody(t, resp)["code"])
}

func TestDayHandler_CierreSinApertura_Retorna409(t *testing.T) {
	app := buildDayApp()

	resp := doDayRequest(t, app, http.MethodPost,
		"/api/depots/"+testDepotID+"/days/2026-03-18/close", entity.RoleAdmin, fiber.Map{
			"operator_name": "María",
			"cash_sales":    "100000",
			"closing_cash":  "150000",
		})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DAY_NOT_OPENED", decodeBody(t, resp)["code"])
}

func TestDayHandler_OperadorNoOperaOtroDeposito(t *testing.T) {
	app := buildDayApp()

	// El token de operador lleva testDepotID; la ruta apunta a otro depósito.
	resp := doDayRequest(t, app, http.MethodPost,
		"/api/depots/otro-deposito/days/2026-03-18/open", entity.RoleOperador, fiber.Map{
			"operator_name": "María",
			"opening_cash":  "50000",
		})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeBody(t, resp)["code"])
}

func TestDayHandler_FechaInvalida_Retorna400(t *testing.T) {
	app := buildDayApp()

	resp := doDayRequest(t, app, http.MethodGet,
		"/api/depots/"+testDepotID+"/days/18-03-2026", entity.RoleAdmin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeBody(t, resp)["code"])
}

func TestDayHandler_DepositoInexistente_Retorna404(t *testing.T) {
	app := buildDayApp()

	resp := doDayRequest(t, app, http.MethodPost,
		"/api/depots/no-existe/days/2026-03-18/open", entity.RoleAdmin, fiber.Map{
			"operator_name": "María",
			"opening_cash":  "50000",
		})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "DEPOT_NOT_FOUND", decodeBody(t, resp)["code"])
}
