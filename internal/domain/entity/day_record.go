package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de conteo para SKUs que no se cuentan por unidad (ej. granel).
// El orden de severidad es OUT < LOW < IN.
const (
	SKUStatusOut = "OUT"
	SKUStatusLow = "LOW"
	SKUStatusIn  = "IN"
)

// SKUCount es el conteo de un SKU en apertura o cierre. Un SKU se cuenta por
// cantidad numérica o por estado (OUT/LOW/IN), nunca ambos: Status vacío
// significa conteo numérico.
type SKUCount struct {
	Quantity decimal.Decimal `json:"quantity"`
	Status   string          `json:"status,omitempty"`
}

// IsStatus indica si el conteo es por estado en lugar de cantidad.
func (c SKUCount) IsStatus() bool { return c.Status != "" }

// DayOpen es el registro de apertura de jornada de un depósito.
// Se crea una sola vez por (DepotID, BusinessDate) y es inmutable después:
// la unicidad la garantiza la base de datos, no este struct.
type DayOpen struct {
	ID            string
	DepotID       string
	BusinessDate  time.Time // solo fecha; la hora real de apertura va en OpenedAt
	OpenedAt      time.Time
	OperatorName  string
	OpeningCash   decimal.Decimal // efectivo de base en caja al abrir
	OpeningCounts map[string]SKUCount
	CreatedBy     string
}

// DayClose es el registro de cierre de jornada. Solo es válido si existe la
// apertura correspondiente (FK en la base de datos). También inmutable.
type DayClose struct {
	ID            string
	DepotID       string
	BusinessDate  time.Time
	ClosedAt      time.Time
	OperatorName  string
	CashSales     decimal.Decimal // ventas cobradas en efectivo
	MobileSales   decimal.Decimal // ventas por pago móvil/electrónico (no entran a la conciliación de caja)
	ClosingCash   decimal.Decimal // efectivo contado físicamente al cerrar
	RestockCash   decimal.Decimal // efectivo de caja usado en reposición de mercancía
	RestockSKUs   []string        // SKUs que el operador confirmó como repuestos
	VarianceNote  string          // explicación libre del descuadre, opcional
	ClosingCounts map[string]SKUCount
	CreatedBy     string
}
