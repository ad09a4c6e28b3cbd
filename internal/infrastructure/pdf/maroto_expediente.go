// Package pdf implementa el reporte imprimible del expediente con su listado
// de indicios, para adjuntar al oficio que se remite a la fiscalía.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: DICRI + Número de expediente │ Estado + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS GENERALES: Fiscalía / Tipo de caso / Fecha del hecho │
//	│  DESCRIPCIÓN DEL CASO                                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA INDICIOS: N° | Nombre | Color | Tamaño | Peso | Ubic. │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: justificación de rechazo (si aplica) + leyenda      │
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

	"github.com/dicri-gt/sii-dicri-api/internal/application/reporte"
	"github.com/dicri-gt/sii-dicri-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorInstitucional = &props.Color{Red: 27, Green: 54, Blue: 93}
	colorGray          = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRechazo       = &props.Color{Red: 153, Green: 27, Blue: 27}
)

var _ reporte.GeneradorPDF = (*MarotoGenerador)(nil)

// MarotoGenerador implementa reporte.GeneradorPDF usando Maroto v2.
type MarotoGenerador struct{}

// NewMarotoGenerador construye el generador.
func NewMarotoGenerador() *MarotoGenerador { return &MarotoGenerador{} }

// GenerarReporteExpediente genera el PDF y devuelve sus bytes.
func (g *MarotoGenerador) GenerarReporteExpediente(
	_ context.Context,
	e *entity.Expediente,
	indicios []entity.Indicio,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de expediente "+e.Numero, true).
		WithAuthor("DICRI", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(e))
	m.AddRows(line.NewRow(1, props.Line{Color: colorInstitucional, Thickness: 0.5}))
	m.AddRows(datosGeneralesRow(e))
	m.AddRows(descripcionRows(e)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorInstitucional, Thickness: 0.3}))

	m.AddRows(tablaIndiciosHeaderRow())
	if len(indicios) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("El expediente no registra indicios.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	for _, r := range tablaIndiciosRows(indicios) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	for _, r := range footerRows(e) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: institución + número (izq) y estado + fecha de creación (der).
func headerRow(e *entity.Expediente) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("DICRI - Dirección de Investigaciones Criminalísticas", props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorInstitucional, Top: 1,
			}),
			text.New("Expediente "+e.Numero, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 8,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE EXPEDIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorInstitucional, Top: 1,
			}),
			text.New("Estado: "+string(e.Estado), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
				Color: colorEstado(e.Estado),
			}),
			text.New("Creado: "+e.CreadoEn.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// datosGeneralesRow: fiscalía, tipo de caso y fecha del hecho.
func datosGeneralesRow(e *entity.Expediente) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS GENERALES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorInstitucional, Top: 1,
			}),
			text.New(fmt.Sprintf("Fiscalía: %s   |   Tipo de caso: %s   |   Fecha del hecho: %s",
				e.Fiscalia, e.TipoCaso, e.FechaHecho.Format("02/01/2006"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// descripcionRows: descripción libre del caso.
func descripcionRows(e *entity.Expediente) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("DESCRIPCIÓN DEL CASO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorInstitucional, Top: 1,
			}),
		)),
		row.New(14).Add(col.New(12).Add(
			text.New(e.Titulo, props.Text{Size: 9, Top: 1, Left: 1}),
		)),
	}
}

// tablaIndiciosHeaderRow: cabecera de la tabla de indicios.
func tablaIndiciosHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorInstitucional, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("N°", 1, align.Center),
		h("Nombre / Descripción", 5, align.Left),
		h("Color", 2, align.Left),
		h("Tamaño", 1, align.Center),
		h("Peso (kg)", 1, align.Right),
		h("Ubicación", 2, align.Left),
	)
}

// tablaIndiciosRows: una fila por indicio.
func tablaIndiciosRows(indicios []entity.Indicio) []core.Row {
	result := make([]core.Row, 0, len(indicios))
	for n, i := range indicios {
		nombre := i.Nombre
		if i.Descripcion != "" {
			nombre = i.Nombre + " - " + i.Descripcion
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				strconv.Itoa(n+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				nombre,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(i.Color, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				nonEmpty(i.Tamano, "—"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				formatPeso(i),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(i.Ubicacion, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// footerRows: justificación del rechazo si aplica, más la leyenda de uso.
func footerRows(e *entity.Expediente) []core.Row {
	var rows []core.Row

	if e.Estado == entity.EstadoRechazado && e.Justificacion != nil {
		rows = append(rows,
			row.New(6).Add(col.New(12).Add(
				text.New("JUSTIFICACIÓN DEL RECHAZO", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorRechazo, Top: 1,
				}),
			)),
			row.New(12).Add(col.New(12).Add(
				text.New(*e.Justificacion, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray}),
			)),
		)
	}

	rows = append(rows,
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Documento generado por el Sistema de Información de Indicios de la DICRI. "+
					"Su contenido refleja el expediente al momento de la impresión y no "+
					"sustituye la cadena de custodia física.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	)
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func colorEstado(e entity.Estado) *props.Color {
	if e == entity.EstadoRechazado {
		return colorRechazo
	}
	return colorInstitucional
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func formatPeso(i entity.Indicio) string {
	if !i.Peso.Valid {
		return "—"
	}
	return i.Peso.Decimal.StringFixed(2)
}
