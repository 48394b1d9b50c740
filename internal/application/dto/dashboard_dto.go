package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/depot-ops-api/internal/domain/analytics"
)

// MoMChangeDTO variación mes a mes. Available en false significa "sin
// comparación posible" (mes anterior sin datos o en cero), que es distinto
// de una variación del 0%.
type MoMChangeDTO struct {
	Current   decimal.Decimal `json:"current"`
	Previous  decimal.Decimal `json:"previous"`
	Pct       decimal.Decimal `json:"pct"`
	Available bool            `json:"available"`
}

// DepotSalesDTO ventas del mes en curso de un depósito.
type DepotSalesDTO struct {
	DepotID     string          `json:"depot_id"`
	DepotName   string          `json:"depot_name"`
	CashSales   decimal.Decimal `json:"cash_sales"`
	MobileSales decimal.Decimal `json:"mobile_sales"`
	ClosedDays  int             `json:"closed_days"`
	ReviewDays  int             `json:"review_days"` // cierres con descuadre fuera de tolerancia
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Todos los períodos se cortan contra la fecha de referencia inyectada
// (parámetro ?ref=YYYY-MM-DD, default hoy), con semana iniciando en lunes.
type DashboardSummaryDTO struct {
	// Ventas en efectivo acumuladas (todos los depósitos)
	TodaySales decimal.Decimal `json:"today_sales"`
	WeekSales  decimal.Decimal `json:"week_sales"`
	MonthSales decimal.Decimal `json:"month_sales"`
	YearSales  decimal.Decimal `json:"year_sales"`

	// Variación del mes contra el anterior
	MonthOverMonth MoMChangeDTO `json:"month_over_month"`

	// Promedio móvil de 7 días de ventas en efectivo (serie diaria)
	Rolling7Days []analytics.Point `json:"rolling_7_days"`

	// Desglose por depósito del mes en curso
	Depots []DepotSalesDTO `json:"depots"`

	// Etiqueta legible del mes de referencia, ej: "Marzo 2026"
	DateLabel string `json:"date_label"`
}
