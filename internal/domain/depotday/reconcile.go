package depotday

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/depot-ops-api/internal/domain"
)

// DefaultTolerancePct es la tolerancia de descuadre por defecto (5%).
// Es configurable (OPS_TOLERANCE_PCT) porque su valor decide qué días se marcan
// para revisión.
var DefaultTolerancePct = decimal.NewFromInt(5)

var hundred = decimal.NewFromInt(100)

// Variance es el resultado de la conciliación de caja de un cierre.
type Variance struct {
	Expected    decimal.Decimal `json:"expected"`
	Actual      decimal.Decimal `json:"actual"`
	Diff        decimal.Decimal `json:"diff"` // Actual - Expected
	Pct         decimal.Decimal `json:"pct"`  // |Diff| / Expected * 100; 0 si Expected es 0
	NeedsReview bool            `json:"needs_review"`
}

// ExpectedCash calcula el efectivo teórico que debería quedar en caja al cierre:
//
//	esperado = base de apertura + ventas en efectivo − reposición pagada de caja
//
// Las ventas por pago móvil quedan excluidas: solo cuentan movimientos físicos
// de efectivo. Montos negativos se rechazan en lugar de coercionarse a cero
// (la coerción silenciosa produjo lecturas de descuadre inconsistentes).
func ExpectedCash(openingCash, cashSales, restockCash decimal.Decimal) (decimal.Decimal, error) {
	if openingCash.IsNegative() || cashSales.IsNegative() || restockCash.IsNegative() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return openingCash.Add(cashSales).Sub(restockCash), nil
}

// ComputeVariance compara el efectivo esperado contra el contado físicamente.
//
// Caso especial base cero: si expected == 0 no hay base para un porcentaje,
// Pct se reporta como 0 y NeedsReview es true solo si actual != 0. Nunca se
// divide por cero.
func ComputeVariance(expected, actual, tolerancePct decimal.Decimal) (Variance, error) {
	if expected.IsNegative() || actual.IsNegative() || tolerancePct.IsNegative() {
		return Variance{}, domain.ErrInvalidInput
	}
	diff := actual.Sub(expected)

	v := Variance{Expected: expected, Actual: actual, Diff: diff}
	if expected.IsZero() {
		v.Pct = decimal.Zero
		v.NeedsReview = !actual.IsZero()
		return v, nil
	}

	pct := diff.Abs().Div(expected).Mul(hundred)
	v.Pct = pct.Round(2)
	// La comparación contra la tolerancia usa el porcentaje sin redondear.
	v.NeedsReview = pct.GreaterThan(tolerancePct)
	return v, nil
}
