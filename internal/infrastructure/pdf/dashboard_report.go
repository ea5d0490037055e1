// Package pdf genera el informe imprimible del tablero de evolución comercial.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA 1: Agente | una columna por acción | Total            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA 2: Mes | Agente | Acción | Cantidad                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/warner-inmobiliaria/internal/application/dto"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/ports"
)

var _ ports.ReportRenderer = (*DashboardReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// maxActionColumns columnas de acción que entran en la grilla de 12 junto a agente y total.
const maxActionColumns = 8

// DashboardReportGenerator implementa ports.ReportRenderer usando Maroto v2.
type DashboardReportGenerator struct {
	company string
}

// NewDashboardReportGenerator construye el generador; company va en el encabezado.
func NewDashboardReportGenerator(company string) *DashboardReportGenerator {
	return &DashboardReportGenerator{company: company}
}

// RenderDashboard genera el PDF y devuelve sus bytes.
func (g *DashboardReportGenerator) RenderDashboard(_ context.Context, report dto.DashboardReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Evolución comercial", true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	actions := report.Actions
	if len(actions) > maxActionColumns {
		actions = actions[:maxActionColumns]
	}
	m.AddRows(sectionTitle("ACUMULADO POR AGENTE"))
	m.AddRows(totalsHeaderRow(actions))
	m.AddRows(totalsRows(report.Agents, actions)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("EVOLUCIÓN MENSUAL"))
	m.AddRows(seriesHeaderRow())
	m.AddRows(seriesRows(report.Months)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *DashboardReportGenerator) headerRow(report dto.DashboardReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.company, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Informe de evolución comercial", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func cell(s string, size int, a align.Type, bold bool) core.Col {
	p := props.Text{Size: 7, Align: a, Top: 1, Left: 1, Right: 1}
	if bold {
		p.Style = fontstyle.Bold
	}
	return col.New(size).Add(text.New(s, p))
}

func agentColumnSize(actions []string) int {
	return 12 - len(actions) - 1
}

func totalsHeaderRow(actions []string) core.Row {
	cols := []core.Col{cell("Agente", agentColumnSize(actions), align.Left, true)}
	for _, a := range actions {
		cols = append(cols, cell(abbreviate(a), 1, align.Center, true))
	}
	cols = append(cols, cell("Total", 1, align.Right, true))
	return row.New(7).Add(cols...)
}

func totalsRows(agents []dto.AgentTotals, actions []string) []core.Row {
	out := make([]core.Row, 0, len(agents))
	for _, t := range agents {
		cols := []core.Col{cell(t.Agent, agentColumnSize(actions), align.Left, false)}
		for _, a := range actions {
			cols = append(cols, cell(formatThousands(t.ByAction[a]), 1, align.Center, false))
		}
		cols = append(cols, cell(formatThousands(t.Total), 1, align.Right, true))
		out = append(out, row.New(6).Add(cols...))
	}
	return out
}

func seriesHeaderRow() core.Row {
	return row.New(7).Add(
		cell("Mes", 2, align.Left, true),
		cell("Agente", 5, align.Left, true),
		cell("Acción", 3, align.Left, true),
		cell("Cantidad", 2, align.Right, true),
	)
}

func seriesRows(points []dto.SeriesPoint) []core.Row {
	out := make([]core.Row, 0, len(points))
	for _, p := range points {
		out = append(out, row.New(6).Add(
			cell(p.Bucket, 2, align.Left, false),
			cell(p.Agent, 5, align.Left, false),
			cell(p.Action, 3, align.Left, false),
			cell(formatThousands(p.Count), 2, align.Right, false),
		))
	}
	return out
}

// abbreviate acorta la etiqueta de acción para una columna de ancho 1.
func abbreviate(s string) string {
	r := []rune(s)
	if len(r) <= 6 {
		return s
	}
	return string(r[:5]) + "."
}

// formatThousands inserta puntos de miles. Ej: 25000 → "25.000".
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	l := len(s)
	if l <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, l+l/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
