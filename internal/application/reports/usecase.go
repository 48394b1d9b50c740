// Package reports (aplicación) genera los documentos descargables del sistema:
// el certificado de cierre de jornada (PDF) y la conciliación mensual (Excel).
package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/depot-ops-api/internal/domain"
	"github.com/jhoicas/depot-ops-api/internal/domain/depotday"
	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
	"github.com/jhoicas/depot-ops-api/internal/domain/repository"
)

// UseCase orquesta la carga de datos y delega el formato a los generadores.
type UseCase struct {
	dayRepo      repository.DayRecordRepository
	depotRepo    repository.DepotRepository
	pdfGen       CertificatePDFGenerator
	xlsxGen      ReconciliationWorkbookBuilder
	tolerancePct decimal.Decimal
}

// NewUseCase construye el caso de uso inyectando todas sus dependencias.
func NewUseCase(
	dayRepo repository.DayRecordRepository,
	depotRepo repository.DepotRepository,
	pdfGen CertificatePDFGenerator,
	xlsxGen ReconciliationWorkbookBuilder,
	tolerancePct decimal.Decimal,
) *UseCase {
	if tolerancePct.LessThanOrEqual(decimal.Zero) {
		tolerancePct = depotday.DefaultTolerancePct
	}
	return &UseCase{
		dayRepo:      dayRepo,
		depotRepo:    depotRepo,
		pdfGen:       pdfGen,
		xlsxGen:      xlsxGen,
		tolerancePct: tolerancePct,
	}
}

// CloseCertificatePDF genera el certificado de cierre de una jornada.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el depósito no existe.
//   - domain.ErrDayNotOpened     si la jornada nunca se abrió.
//   - domain.ErrInvalidInput     si la jornada aún no está cerrada.
func (uc *UseCase) CloseCertificatePDF(ctx context.Context, depotID string, date time.Time) (pdfBytes []byte, filename string, err error) {
	depot, err := uc.depotRepo.GetByID(ctx, depotID)
	if err != nil {
		return nil, "", fmt.Errorf("certificado: obtener depósito: %w", err)
	}
	if depot == nil {
		return nil, "", domain.ErrNotFound
	}

	open, err := uc.dayRepo.GetOpen(ctx, depotID, date)
	if err != nil {
		return nil, "", fmt.Errorf("certificado: obtener apertura: %w", err)
	}
	if open == nil {
		return nil, "", domain.ErrDayNotOpened
	}

	closeRec, err := uc.dayRepo.GetClose(ctx, depotID, date)
	if err != nil {
		return nil, "", fmt.Errorf("certificado: obtener cierre: %w", err)
	}
	if closeRec == nil {
		return nil, "", fmt.Errorf("%w: la jornada del %s aún no está cerrada",
			domain.ErrInvalidInput, date.Format("2006-01-02"))
	}

	expected, err := depotday.ExpectedCash(open.OpeningCash, closeRec.CashSales, closeRec.RestockCash)
	if err != nil {
		return nil, "", fmt.Errorf("certificado: efectivo esperado: %w", err)
	}
	variance, err := depotday.ComputeVariance(expected, closeRec.ClosingCash, uc.tolerancePct)
	if err != nil {
		return nil, "", fmt.Errorf("certificado: conciliación: %w", err)
	}
	restocks := depotday.DetectRestocks(open.OpeningCounts, closeRec.ClosingCounts, closeRec.RestockSKUs)

	pdfBytes, err = uc.pdfGen.GenerateCloseCertificate(ctx, &CloseCertificateData{
		Depot:    depot,
		Open:     open,
		Close:    closeRec,
		Variance: variance,
		Restocks: restocks,
	})
	if err != nil {
		return nil, "", fmt.Errorf("certificado: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("cierre_%s_%s.pdf", depot.Code, date.Format("2006-01-02"))
	return pdfBytes, filename, nil
}

// MonthlyReconciliationXLSX arma el libro Excel de conciliación de un mes:
// una fila por depósito y día con actividad, con estado y desvío recalculados.
func (uc *UseCase) MonthlyReconciliationXLSX(ctx context.Context, year int, month time.Month) (xlsxBytes []byte, filename string, err error) {
	if year < 2000 || year > 2100 {
		return nil, "", fmt.Errorf("%w: año fuera de rango", domain.ErrInvalidInput)
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	depots, err := uc.depotRepo.List(ctx, 200, 0)
	if err != nil {
		return nil, "", fmt.Errorf("reporte mensual: depósitos: %w", err)
	}
	opens, err := uc.dayRepo.ListOpensByRange(ctx, "", from, to)
	if err != nil {
		return nil, "", fmt.Errorf("reporte mensual: aperturas: %w", err)
	}
	closes, err := uc.dayRepo.ListClosesByRange(ctx, "", from, to)
	if err != nil {
		return nil, "", fmt.Errorf("reporte mensual: cierres: %w", err)
	}

	depotName := make(map[string]string, len(depots))
	for _, d := range depots {
		depotName[d.ID] = d.Name
	}

	openByKey := make(map[string]*entity.DayOpen, len(opens))
	for _, o := range opens {
		openByKey[recKey(o.DepotID, o.BusinessDate)] = o
	}
	closeByKey := make(map[string]*entity.DayClose, len(closes))
	for _, c := range closes {
		closeByKey[recKey(c.DepotID, c.BusinessDate)] = c
	}

	keys := make(map[string]struct{}, len(openByKey)+len(closeByKey))
	for k := range openByKey {
		keys[k] = struct{}{}
	}
	for k := range closeByKey {
		keys[k] = struct{}{}
	}

	rows := make([]ReconciliationRow, 0, len(keys))
	for k := range keys {
		o := openByKey[k]
		c := closeByKey[k]
		rows = append(rows, uc.buildRow(depotName, o, c))
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].BusinessDate.Equal(rows[j].BusinessDate) {
			return rows[i].BusinessDate.Before(rows[j].BusinessDate)
		}
		return rows[i].DepotName < rows[j].DepotName
	})

	xlsxBytes, err = uc.xlsxGen.BuildMonthlyWorkbook(ctx, &MonthlyReconciliationData{
		Year:  year,
		Month: month,
		Rows:  rows,
	})
	if err != nil {
		return nil, "", fmt.Errorf("reporte mensual: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("conciliacion_%04d-%02d.xlsx", year, int(month))
	return xlsxBytes, filename, nil
}

// buildRow arma la fila de un depósito/día. Cuando falta alguno de los dos
// registros deja en cero los montos que no se pueden calcular.
func (uc *UseCase) buildRow(depotName map[string]string, o *entity.DayOpen, c *entity.DayClose) ReconciliationRow {
	row := ReconciliationRow{
		State:       depotday.ResolveState(o != nil, c != nil),
		OpeningCash: decimal.Zero,
		CashSales:   decimal.Zero,
		MobileSales: decimal.Zero,
		RestockCash: decimal.Zero,
		Expected:    decimal.Zero,
		ClosingCash: decimal.Zero,
		Diff:        decimal.Zero,
		Pct:         decimal.Zero,
	}

	if o != nil {
		row.DepotName = depotName[o.DepotID]
		row.BusinessDate = o.BusinessDate
		row.OpeningCash = o.OpeningCash
	}
	if c != nil {
		row.DepotName = depotName[c.DepotID]
		row.BusinessDate = c.BusinessDate
		row.CashSales = c.CashSales
		row.MobileSales = c.MobileSales
		row.RestockCash = c.RestockCash
		row.ClosingCash = c.ClosingCash
	}
	if row.DepotName == "" {
		if o != nil {
			row.DepotName = o.DepotID
		} else if c != nil {
			row.DepotName = c.DepotID
		}
	}

	if o != nil && c != nil {
		expected, err := depotday.ExpectedCash(o.OpeningCash, c.CashSales, c.RestockCash)
		if err != nil {
			row.NeedsReview = true
			return row
		}
		v, err := depotday.ComputeVariance(expected, c.ClosingCash, uc.tolerancePct)
		if err != nil {
			row.NeedsReview = true
			return row
		}
		row.Expected = v.Expected
		row.Diff = v.Diff
		row.Pct = v.Pct
		row.NeedsReview = v.NeedsReview
	}
	return row
}

func recKey(depotID string, d time.Time) string {
	return depotID + "|" + d.Format("2006-01-02")
}
