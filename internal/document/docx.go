package document

import (
	"fmt"
	"io"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"
)

// Page geometry in twentieths of a point (A4, 1 inch margins).
const (
	pageWidth  = 11906
	pageHeight = 16838
	pageMargin = 1440
	textWidth  = pageWidth - 2*pageMargin
	fontName   = "Times New Roman"
	fontSize   = 12 // points
)

// DocxWriter renders documents as Office Open XML (.docx) packages.
type DocxWriter struct{}

// NewDocxWriter creates a docx backend.
func NewDocxWriter() *DocxWriter {
	return &DocxWriter{}
}

// Extension implements Backend.
func (d *DocxWriter) Extension() string {
	return ".docx"
}

// Write implements Backend.
func (d *DocxWriter) Write(doc *Document, w io.Writer) error {
	rd, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("failed to create docx package: %w", err)
	}
	setPageLayout(rd)

	for _, block := range doc.Blocks {
		switch blk := block.(type) {
		case *Heading:
			p := rd.AddEmptyParagraph()
			p.Style(fmt.Sprintf("Heading%d", clampLevel(blk.Level)))
			p.AddText(blk.Text).Font(fontName)
		case *Table:
			addTable(rd, blk)
		case *Spacer:
			rd.AddEmptyParagraph()
		}
	}

	if err := rd.Write(w); err != nil {
		return fmt.Errorf("failed to write docx package: %w", err)
	}
	return nil
}

func setPageLayout(rd *docx.RootDoc) {
	body := rd.Document.Body
	if body.SectPr == nil {
		body.SectPr = ctypes.NewSectionProper()
	}
	width, height := uint64(pageWidth), uint64(pageHeight)
	body.SectPr.PageSize = &ctypes.PageSize{Width: &width, Height: &height}

	margin, edge, gutter := pageMargin, 708, 0
	body.SectPr.PageMargin = &ctypes.PageMargin{
		Top:    &margin,
		Right:  &margin,
		Bottom: &margin,
		Left:   &margin,
		Header: &edge,
		Footer: &edge,
		Gutter: &gutter,
	}
}

func addTable(rd *docx.RootDoc, t *Table) {
	widths := columnWidths(t)
	grid := make([]uint64, len(widths))
	for i, w := range widths {
		grid[i] = uint64(w)
	}

	tbl := rd.AddTable()
	tbl.Style("TableGrid")
	tbl.Width(5000, stypes.TableWidthPct)
	tbl.Layout(stypes.TableLayoutFixed)
	tbl.Grid(grid...)

	for _, r := range t.Rows {
		row := tbl.AddRow()
		if r.Header {
			rows := tbl.GetCT().RowContents
			rows[len(rows)-1].Row.Property.Header = &ctypes.OnOff{}
		}

		col := 0
		for _, c := range r.Cells {
			span := c.ColSpan()
			width := 0
			for i := col; i < col+span && i < len(widths); i++ {
				width += widths[i]
			}
			col += span

			cell := row.AddCell().Width(width, stypes.TableWidthDxa)
			if span > 1 {
				cell.ColSpan(span)
			}
			if c.Fill != "" {
				cell.BackgroundColor(c.Fill)
			}
			writeCellLines(cell.AddEmptyPara(), c)
		}
	}
}

func writeCellLines(p *docx.Paragraph, c Cell) {
	for i, line := range c.Lines {
		if i > 0 {
			p.AddRun().AddBreak(nil)
		}
		if line.Label != "" {
			textRun(p, line.Label, true).Underline(stypes.UnderlineSingle)
			if line.Text != "" {
				textRun(p, " ", c.Bold)
			}
		}
		if line.Text != "" {
			textRun(p, line.Text, c.Bold)
		}
	}
}

func textRun(p *docx.Paragraph, text string, bold bool) *docx.Run {
	run := p.AddText(text).Font(fontName).Size(fontSize)
	if bold {
		run.Bold(true)
	}
	return run
}

// columnWidths spreads the text width over the columns by their relative
// weights, or evenly when no weights are given.
func columnWidths(t *Table) []int {
	cols := t.Columns
	if cols < 1 {
		cols = 1
	}
	weights := t.Widths
	if len(weights) != cols {
		weights = make([]int, cols)
		for i := range weights {
			weights[i] = 1
		}
	}
	total := 0
	for _, w := range weights {
		total += w
	}
	widths := make([]int, cols)
	for i, w := range weights {
		widths[i] = textWidth * w / total
	}
	return widths
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 3 {
		return 3
	}
	return level
}
