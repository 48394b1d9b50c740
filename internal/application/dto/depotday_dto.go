package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/depot-ops-api/internal/domain/depotday"
)

// SKUCountDTO conteo de un SKU: cantidad numérica o estado OUT/LOW/IN
// (status vacío = conteo numérico).
type SKUCountDTO struct {
	Quantity decimal.Decimal `json:"quantity"`
	Status   string          `json:"status,omitempty"`
}

// OpenDayRequest entrada de POST /api/depots/:id/days/:date/open.
type OpenDayRequest struct {
	OperatorName  string                 `json:"operator_name"`
	OpeningCash   decimal.Decimal        `json:"opening_cash"`
	OpeningCounts map[string]SKUCountDTO `json:"opening_counts"`
}

// CloseDayRequest entrada de POST /api/depots/:id/days/:date/close.
// RestockSKUs son los SKUs que el operador confirma como repuestos con
// efectivo de caja; el resto de incrementos detectados queda informativo.
type CloseDayRequest struct {
	OperatorName  string                 `json:"operator_name"`
	CashSales     decimal.Decimal        `json:"cash_sales"`
	MobileSales   decimal.Decimal        `json:"mobile_sales"`
	ClosingCash   decimal.Decimal        `json:"closing_cash"`
	RestockCash   decimal.Decimal        `json:"restock_cash"`
	RestockSKUs   []string               `json:"restock_skus,omitempty"`
	VarianceNote  string                 `json:"variance_note,omitempty"`
	ClosingCounts map[string]SKUCountDTO `json:"closing_counts"`
}

// DayOpenDTO apertura en respuestas.
type DayOpenDTO struct {
	DepotID      string          `json:"depot_id"`
	BusinessDate string          `json:"business_date"` // YYYY-MM-DD
	OpenedAt     time.Time       `json:"opened_at"`
	OperatorName string          `json:"operator_name"`
	OpeningCash  decimal.Decimal `json:"opening_cash"`
}

// DayCloseDTO cierre en respuestas.
type DayCloseDTO struct {
	DepotID      string          `json:"depot_id"`
	BusinessDate string          `json:"business_date"`
	ClosedAt     time.Time       `json:"closed_at"`
	OperatorName string          `json:"operator_name"`
	CashSales    decimal.Decimal `json:"cash_sales"`
	MobileSales  decimal.Decimal `json:"mobile_sales"`
	ClosingCash  decimal.Decimal `json:"closing_cash"`
	RestockCash  decimal.Decimal `json:"restock_cash"`
	RestockSKUs  []string        `json:"restock_skus,omitempty"`
	VarianceNote string          `json:"variance_note,omitempty"`
}

// DayStatusDTO respuesta de GET /api/depots/:id/days/:date.
// El estado y la conciliación son siempre derivados: se recalculan de los
// registros de apertura/cierre en cada lectura, nunca se persisten.
type DayStatusDTO struct {
	DepotID        string                      `json:"depot_id"`
	BusinessDate   string                      `json:"business_date"`
	State          depotday.DayState           `json:"state"`
	Open           *DayOpenDTO                 `json:"open,omitempty"`
	Close          *DayCloseDTO                `json:"close,omitempty"`
	Reconciliation *depotday.Variance          `json:"reconciliation,omitempty"`
	Restocks       []depotday.RestockCandidate `json:"restocks,omitempty"`
}

// CloseResultDTO respuesta de POST .../close: el cierre persistido más la
// conciliación calculada con la tolerancia configurada.
type CloseResultDTO struct {
	Close          DayCloseDTO                 `json:"close"`
	Reconciliation depotday.Variance           `json:"reconciliation"`
	Restocks       []depotday.RestockCandidate `json:"restocks,omitempty"`
}
