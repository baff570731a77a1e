// Package report renders the client-facing take-on progress report.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	catalog "takeon/internal/catalog/models"
	"takeon/internal/progress/models"
	id "takeon/pkg/domain"
)

const (
	reportTitle     = "Pretor Group Take-On Progress Report"
	placeholderText = "No Pretor Group items found or linked."
	absentGlyph     = "-"

	colItemWidth   = 100.0
	colStatusWidth = 30.0
	colDateWidth   = 30.0
	colByWidth     = 30.0
	lineHeight     = 6.0
)

// row is one laid-out table row. The three fixed cells never wrap; they are
// drawn at the height the wrapped description dictates.
type row struct {
	description string
	status      string
	date        string
	completedBy string
}

// Renderer lays progress records into a fixed-width, variable-height table.
//
// Known limitation, reproduced deliberately: row heights are correct within a
// continuous section, but a row crossing a physical page boundary is not
// detected or split.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the PDF document for one scheme. Only records whose
// responsible-party snapshot is Pretor are included, in creation order; when
// none match, a single placeholder row is rendered instead of an empty table.
func (r *Renderer) Render(schemeLabel string, records []models.DisplayRecord) ([]byte, error) {
	rows := buildRows(records)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 15)
		pdf.CellFormat(0, 10, reportTitle, "", 1, "C", false, 0, "")
		pdf.Line(10, 20, 200, 20)
		pdf.Ln(5)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AliasNbPages("")
	pdf.AddPage()

	// Scheme banner
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(200, 220, 255)
	pdf.CellFormat(0, 8, sanitize("Scheme: "+schemeLabel), "", 1, "L", true, 0, "")
	pdf.Ln(4)

	// Table header
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(colItemWidth, 7, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(colStatusWidth, 7, "Status", "1", 0, "C", false, 0, "")
	pdf.CellFormat(colDateWidth, 7, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(colByWidth, 7, "Completed By", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, tr := range rows {
		r.drawRow(pdf, tr)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

// drawRow word-wraps the description, derives the shared row height, and
// draws the three fixed cells at exactly that height so the row stays
// vertically aligned no matter how many lines the description needs.
func (r *Renderer) drawRow(pdf *fpdf.Fpdf, tr row) {
	lines, height := r.rowHeight(pdf, tr.description)

	x, y := pdf.GetXY()
	pdf.MultiCell(colItemWidth, lineHeight, strings.Join(lines, "\n"), "1", "L", false)
	pdf.SetXY(x+colItemWidth, y)

	pdf.CellFormat(colStatusWidth, height, tr.status, "1", 0, "C", false, 0, "")
	pdf.CellFormat(colDateWidth, height, tr.date, "1", 0, "C", false, 0, "")
	pdf.CellFormat(colByWidth, height, tr.completedBy, "1", 1, "C", false, 0, "")
}

// rowHeight wraps an already-sanitized description at the item column width
// and returns the wrapped lines and the row height they dictate. Measurement
// and drawing operate on the same sanitized string; sanitizing after wrapping
// would desynchronize line counts from drawn content.
func (r *Renderer) rowHeight(pdf *fpdf.Fpdf, description string) ([]string, float64) {
	lines := pdf.SplitText(description, colItemWidth)
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines, float64(len(lines)) * lineHeight
}

// buildRows filters to the client-reportable subset and derives display
// values. Status is derived from the completion flag, never stored.
func buildRows(records []models.DisplayRecord) []row {
	var rows []row
	for _, rec := range records {
		if rec.Party != catalog.PartyPretor {
			continue
		}
		rows = append(rows, row{
			description: sanitize(rec.Description),
			status:      statusText(rec.Complete),
			date:        dateText(rec.DateCompleted),
			completedBy: operatorText(rec.CompletedBy),
		})
	}
	if len(rows) == 0 {
		rows = append(rows, row{
			description: placeholderText,
			status:      statusText(false),
			date:        absentGlyph,
			completedBy: absentGlyph,
		})
	}
	return rows
}

func statusText(complete bool) string {
	if complete {
		return "Complete"
	}
	return "Pending"
}

func dateText(d *id.Date) string {
	if d == nil {
		return absentGlyph
	}
	return d.String()
}

func operatorText(o *models.Operator) string {
	if o == nil {
		return absentGlyph
	}
	return sanitize(string(*o))
}

// sanitize drops characters the output format cannot represent. Dropping
// (not substituting) keeps wrapping calculations and drawn content in sync.
// Lossy and documented, not an error condition.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r > 126 {
			return -1
		}
		return r
	}, s)
}
