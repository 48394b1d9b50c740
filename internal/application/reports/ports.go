package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/depot-ops-api/internal/domain/depotday"
	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
)

// CloseCertificateData reúne todo lo que el certificado de cierre necesita.
type CloseCertificateData struct {
	Depot    *entity.Depot
	Open     *entity.DayOpen
	Close    *entity.DayClose
	Variance depotday.Variance
	Restocks []depotday.RestockCandidate
}

// CertificatePDFGenerator produce el certificado de cierre de jornada en PDF.
type CertificatePDFGenerator interface {
	GenerateCloseCertificate(ctx context.Context, data *CloseCertificateData) ([]byte, error)
}

// ReconciliationRow es una fila del reporte mensual: un depósito en un día.
type ReconciliationRow struct {
	DepotName    string
	BusinessDate time.Time
	State        depotday.DayState
	OpeningCash  decimal.Decimal
	CashSales    decimal.Decimal
	MobileSales  decimal.Decimal
	RestockCash  decimal.Decimal
	Expected     decimal.Decimal
	ClosingCash  decimal.Decimal
	Diff         decimal.Decimal
	Pct          decimal.Decimal
	NeedsReview  bool
}

// MonthlyReconciliationData es el contenido completo del reporte mensual.
type MonthlyReconciliationData struct {
	Year  int
	Month time.Month
	Rows  []ReconciliationRow
}

// ReconciliationWorkbookBuilder produce el libro Excel del reporte mensual.
type ReconciliationWorkbookBuilder interface {
	BuildMonthlyWorkbook(ctx context.Context, data *MonthlyReconciliationData) ([]byte, error)
}
