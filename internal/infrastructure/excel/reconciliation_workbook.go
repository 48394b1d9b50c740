// Package excel implementa el reporte mensual de conciliación en formato XLSX.
package excel

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	appreports "github.com/jhoicas/depot-ops-api/internal/application/reports"
)

// ExcelizeWorkbookBuilder implementa reports.ReconciliationWorkbookBuilder usando excelize.
type ExcelizeWorkbookBuilder struct{}

// NewExcelizeWorkbookBuilder construye el generador.
func NewExcelizeWorkbookBuilder() *ExcelizeWorkbookBuilder { return &ExcelizeWorkbookBuilder{} }

// BuildMonthlyWorkbook arma el libro: una hoja "Conciliación" con una fila por
// depósito/día y una fila final de totales.
func (b *ExcelizeWorkbookBuilder) BuildMonthlyWorkbook(
	_ context.Context,
	data *appreports.MonthlyReconciliationData,
) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Conciliación"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	title := fmt.Sprintf("Conciliación de caja %04d-%02d", data.Year, int(data.Month))
	_ = f.SetCellValue(sheet, "A1", title)
	_ = f.MergeCell(sheet, "A1", "L1")

	header := []string{
		"Fecha", "Depósito", "Estado",
		"Fondo inicial", "Ventas efectivo", "Ventas móviles", "Reposición",
		"Esperado", "Contado", "Diferencia", "Desvío %", "Revisión",
	}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 2)
		_ = f.SetCellValue(sheet, cell, v)
	}

	totalCash := decimal.Zero
	totalMobile := decimal.Zero
	reviewCount := 0

	for r, rr := range data.Rows {
		row := r + 3
		review := "NO"
		if rr.NeedsReview {
			review = "SÍ"
			reviewCount++
		}
		totalCash = totalCash.Add(rr.CashSales)
		totalMobile = totalMobile.Add(rr.MobileSales)

		values := []any{
			rr.BusinessDate.Format("2006-01-02"),
			rr.DepotName,
			string(rr.State),
			moneyCell(rr.OpeningCash),
			moneyCell(rr.CashSales),
			moneyCell(rr.MobileSales),
			moneyCell(rr.RestockCash),
			moneyCell(rr.Expected),
			moneyCell(rr.ClosingCash),
			moneyCell(rr.Diff),
			pctCell(rr.Pct),
			review,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	// Fila de totales
	totalRow := len(data.Rows) + 3
	totals := []any{
		"TOTAL", "", "",
		"", moneyCell(totalCash), moneyCell(totalMobile), "",
		"", "", "", "",
		fmt.Sprintf("%d en revisión", reviewCount),
	}
	for c, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(c+1, totalRow)
		_ = f.SetCellValue(sheet, cell, v)
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "B", 24)
	_ = f.SetColWidth(sheet, "C", "C", 14)
	_ = f.SetColWidth(sheet, "D", "J", 15)
	_ = f.SetColWidth(sheet, "K", "K", 10)
	_ = f.SetColWidth(sheet, "L", "L", 14)

	bold, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#00467F"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A2", "L2", bold)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

// moneyCell convierte un decimal a float64 para que Excel lo trate como número.
func moneyCell(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

func pctCell(d decimal.Decimal) float64 {
	v, _ := d.Round(2).Float64()
	return v
}
