// Package document builds the abstract class-specification document
// (headings and tables) and renders it through a backend.
package document

import "strings"

// HeaderFill shades header and block title rows.
const HeaderFill = "FFE8E1"

// Document is an ordered list of blocks.
type Document struct {
	Title  string
	Blocks []Block
}

// Block is one of *Heading, *Table or *Spacer.
type Block interface {
	block()
}

// Heading is a section title. Level 1 is the document title.
type Heading struct {
	Level int
	Text  string
}

// Table is a grid with a fixed column count. Cells with Span > 1 cover
// several columns.
type Table struct {
	Columns int
	// Relative column widths, one per column.
	Widths []int
	Rows   []Row
}

// Row is one table row. Header rows repeat their styling per backend.
type Row struct {
	Header bool
	Cells  []Cell
}

// Cell is a table cell made of lines.
type Cell struct {
	Lines []Line
	// Number of columns covered; 0 and 1 mean a single column.
	Span int
	Bold bool
	// Background colour as RRGGBB, empty for none.
	Fill string
}

// Line is one line of cell text. Label is rendered emphasised before Text.
type Line struct {
	Label string
	Text  string
}

// Spacer is an empty paragraph.
type Spacer struct{}

func (*Heading) block() {}
func (*Table) block()   {}
func (*Spacer) block()  {}

// TextCell returns a single-line cell.
func TextCell(text string) Cell {
	return Cell{Lines: []Line{{Text: text}}}
}

// ColSpan returns the number of columns the cell covers.
func (c Cell) ColSpan() int {
	if c.Span < 1 {
		return 1
	}
	return c.Span
}

// PlainText joins the cell lines with sep.
func (c Cell) PlainText(sep string) string {
	parts := make([]string, len(c.Lines))
	for i, l := range c.Lines {
		parts[i] = l.String()
	}
	return strings.Join(parts, sep)
}

// String renders the line as "Label Text".
func (l Line) String() string {
	switch {
	case l.Label == "":
		return l.Text
	case l.Text == "":
		return l.Label
	default:
		return l.Label + " " + l.Text
	}
}
