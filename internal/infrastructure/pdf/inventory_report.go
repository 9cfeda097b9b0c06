// Package pdf genera el reporte de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + empresa    │  Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Total / En stock / Bajo stock / Sin stock          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Por categoría:                                              │
//	│    CATEGORÍA                                                 │
//	│    TABLA: Material | Cantidad | Unidad | Mínimo | Estado     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/kyujizt/Storage-Konstruksi/internal/application/dto"
	"github.com/kyujizt/Storage-Konstruksi/internal/domain/stock"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorAmber   = &props.Color{Red: 200, Green: 120, Blue: 0}
	colorGreen   = &props.Color{Red: 20, Green: 120, Blue: 60}
)

const uncategorized = "Uncategorized"

// ── Generator ─────────────────────────────────────────────────────────────────

// InventoryReportGenerator arma el PDF del reporte de inventario con Maroto v2.
type InventoryReportGenerator struct {
	company string
}

// NewInventoryReportGenerator construye el generador. company aparece en el encabezado.
func NewInventoryReportGenerator(company string) *InventoryReportGenerator {
	return &InventoryReportGenerator{company: company}
}

// Generate recibe los materiales ya ordenados por categoría y nombre y devuelve los bytes del PDF.
func (g *InventoryReportGenerator) Generate(
	ctx context.Context,
	items []dto.MaterialStockResponse,
	generatedAt time.Time,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Inventory Report", true).
		WithAuthor(nonEmpty(g.company, "Storage Konstruksi"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(nonEmpty(g.company, "Storage Konstruksi"), generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(items))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(items) == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("No active materials.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 4,
			}),
		)))
	}

	for _, group := range groupByCategory(items) {
		m.AddRows(categoryRow(group.name, len(group.items)))
		m.AddRows(tableHeaderRow())
		m.AddRows(tableDetailRows(group.items)...)
		m.AddRows(row.New(3))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company string, generatedAt time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("INVENTORY REPORT", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(company, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generated", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

// summaryRow: conteos por estado derivado.
func summaryRow(items []dto.MaterialStockResponse) core.Row {
	var in, low, out int
	for _, it := range items {
		switch stock.Status(it.Status) {
		case stock.StatusOutOfStock:
			out++
		case stock.StatusLowStock:
			low++
		default:
			in++
		}
	}
	cell := func(label string, n int, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", n), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: c, Top: 5,
			}),
		)
	}
	return row.New(14).Add(
		cell("Total materials", len(items), colorPrimary),
		cell("In stock", in, colorGreen),
		cell("Low stock", low, colorAmber),
		cell("Out of stock", out, colorRed),
	)
}

func categoryRow(name string, count int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%s (%d)", name, count), props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Material", 5, align.Left),
		h("Quantity", 2, align.Right),
		h("Unit", 1, align.Center),
		h("Min.", 2, align.Right),
		h("Status", 2, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(items []dto.MaterialStockResponse) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(it.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(it.Quantity.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(it.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(it.MinStockLevel.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(statusLabel(it.Status), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: statusColor(it.Status),
			})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

type categoryGroup struct {
	name  string
	items []dto.MaterialStockResponse
}

// groupByCategory agrupa filas consecutivas con el mismo nombre de categoría; respeta el orden de entrada.
func groupByCategory(items []dto.MaterialStockResponse) []categoryGroup {
	var groups []categoryGroup
	for _, it := range items {
		name := nonEmpty(it.CategoryName, uncategorized)
		if n := len(groups); n > 0 && groups[n-1].name == name {
			groups[n-1].items = append(groups[n-1].items, it)
			continue
		}
		groups = append(groups, categoryGroup{name: name, items: []dto.MaterialStockResponse{it}})
	}
	return groups
}

func statusLabel(s string) string {
	switch stock.Status(s) {
	case stock.StatusOutOfStock:
		return "OUT"
	case stock.StatusLowStock:
		return "LOW"
	default:
		return "OK"
	}
}

func statusColor(s string) *props.Color {
	switch stock.Status(s) {
	case stock.StatusOutOfStock:
		return colorRed
	case stock.StatusLowStock:
		return colorAmber
	default:
		return colorGreen
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
