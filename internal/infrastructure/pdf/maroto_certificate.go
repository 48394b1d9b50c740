// Package pdf implementa el certificado de cierre de jornada de un depósito.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Depósito + código  │  Fecha de jornada             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  APERTURA: hora, operador, fondo de caja inicial            │
//	│  CIERRE: hora, operador, ventas, compras de reposición      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONCILIACIÓN: esperado / contado / diferencia / desvío %   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  REPOSICIONES: SKU, baja detectada, confirmada o no         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appreports "github.com/jhoicas/depot-ops-api/internal/application/reports"
	"github.com/jhoicas/depot-ops-api/internal/domain/depotday"
	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoCertificateGenerator implementa reports.CertificatePDFGenerator usando Maroto v2.
type MarotoCertificateGenerator struct{}

// NewMarotoCertificateGenerator construye el generador.
func NewMarotoCertificateGenerator() *MarotoCertificateGenerator { return &MarotoCertificateGenerator{} }

// GenerateCloseCertificate genera el PDF y devuelve sus bytes.
func (g *MarotoCertificateGenerator) GenerateCloseCertificate(
	_ context.Context,
	data *appreports.CloseCertificateData,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Certificado de Cierre de Jornada", true).
		WithAuthor(data.Depot.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(openRow(data))
	m.AddRows(closeRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(reconciliationRows(data)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(restockRows(data.Restocks)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre + código del depósito (izq) y fecha de jornada (der).
func headerRow(data *appreports.CloseCertificateData) core.Row {
	fecha := data.Close.BusinessDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(data.Depot.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Código: "+data.Depot.Code, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CERTIFICADO DE CIERRE DE JORNADA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Jornada: "+fecha, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 8,
			}),
		),
	)
}

// openRow: datos de la apertura.
func openRow(data *appreports.CloseCertificateData) core.Row {
	o := data.Open
	return row.New(12).Add(
		col.New(12).Add(
			text.New("APERTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Hora: %s   |   Operador: %s   |   Fondo inicial: $%s",
				o.OpenedAt.Format("15:04"),
				o.OperatorName,
				formatMoney(o.OpeningCash.StringFixed(0)),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// closeRow: datos del cierre.
func closeRow(data *appreports.CloseCertificateData) core.Row {
	c := data.Close
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CIERRE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Hora: %s   |   Operador: %s",
				c.ClosedAt.Format("15:04"), c.OperatorName,
			), props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New(fmt.Sprintf("Ventas efectivo: $%s   |   Ventas móviles: $%s   |   Reposición: $%s",
				formatMoney(c.CashSales.StringFixed(0)),
				formatMoney(c.MobileSales.StringFixed(0)),
				formatMoney(c.RestockCash.StringFixed(0)),
			), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

// reconciliationRows: bloque central con el resultado de la conciliación.
func reconciliationRows(data *appreports.CloseCertificateData) []core.Row {
	v := data.Variance

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	verdict := "DENTRO DE TOLERANCIA"
	verdictColor := colorPrimary
	if v.NeedsReview {
		verdict = "REQUIERE REVISIÓN"
		verdictColor = colorAlert
	}

	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("CONCILIACIÓN DE CAJA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(22).Add(
			col.New(3),
			col.New(3).Add(
				label("Efectivo esperado:"),
				label("Efectivo contado:"),
				label("Diferencia:"),
				label("Desvío:"),
			),
			col.New(3).Add(
				value("$"+formatMoney(v.Expected.StringFixed(0))),
				value("$"+formatMoney(v.Actual.StringFixed(0))),
				value("$"+formatMoney(v.Diff.StringFixed(0))),
				value(v.Pct.StringFixed(2)+"%"),
			),
			col.New(3),
		),
		row.New(9).Add(col.New(12).Add(
			text.New(verdict, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center,
				Color: verdictColor, Top: 2,
			}),
		)),
	}

	if data.Close.VarianceNote != "" {
		rows = append(rows, row.New(7).Add(col.New(12).Add(
			text.New("Nota del operador: "+data.Close.VarianceNote, props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
		)))
	}
	return rows
}

// restockRows: tabla de reposiciones detectadas durante la jornada.
func restockRows(restocks []depotday.RestockCandidate) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("REPOSICIONES DETECTADAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	if len(restocks) == 0 {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Sin caídas de existencia entre apertura y cierre.", props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
		)))
		return rows
	}

	rows = append(rows, row.New(6).Add(
		col.New(4).Add(text.New("SKU", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
		col.New(3).Add(text.New("Apertura", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1})),
		col.New(3).Add(text.New("Cierre", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New("Confirmada", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1})),
	))
	for _, r := range restocks {
		confirmed := "NO"
		if r.Confirmed {
			confirmed = "SÍ"
		}
		rows = append(rows, row.New(5).Add(
			col.New(4).Add(text.New(r.SKU, props.Text{Size: 8, Top: 0.5})),
			col.New(3).Add(text.New(countLabel(r.Opening), props.Text{Size: 8, Align: align.Center, Top: 0.5})),
			col.New(3).Add(text.New(countLabel(r.Closing), props.Text{Size: 8, Align: align.Center, Top: 0.5})),
			col.New(2).Add(text.New(confirmed, props.Text{Size: 8, Align: align.Center, Top: 0.5})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// countLabel muestra la cantidad numérica o la marca de nivel (IN/LOW/OUT).
func countLabel(c entity.SKUCount) string {
	if c.Status != "" {
		return c.Status
	}
	return c.Quantity.StringFixed(0)
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if neg {
		return "-" + string(buf)
	}
	return string(buf)
}
