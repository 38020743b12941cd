package document

import (
	"fmt"

	"github.com/mvp-joe/project-classdoc/internal/model"
	"github.com/mvp-joe/project-classdoc/internal/numbering"
)

// DefaultTitle is the document title used when none is configured.
const DefaultTitle = "Class Specifications"

// Assemble lays out numbered sections as headings and one table per type.
func Assemble(title string, start int, sections []numbering.Section) *Document {
	if title == "" {
		title = DefaultTitle
	}

	doc := &Document{Title: title}
	doc.add(&Heading{Level: 1, Text: fmt.Sprintf("%d. %s", start, title)})

	for _, s := range sections {
		if s.IsNamespace() {
			doc.add(&Heading{Level: 2, Text: s.Label() + " " + s.Title})
			continue
		}
		doc.add(&Heading{Level: 3, Text: s.Label() + " " + s.Title})
		doc.add(TypeTable(s.Entity))
		doc.add(&Spacer{})
	}
	return doc
}

func (d *Document) add(b Block) {
	d.Blocks = append(d.Blocks, b)
}

// TypeTable builds the No/Name/Description table of one type: an attributes
// block followed by a methods block, each numbered from 01.
func TypeTable(entity *model.TypeEntity) *Table {
	table := &Table{
		Columns: 3,
		Widths:  []int{10, 30, 60},
	}

	header := Row{Header: true}
	for _, h := range []string{"No", "Name", "Description"} {
		cell := TextCell(h)
		cell.Bold = true
		cell.Fill = HeaderFill
		header.Cells = append(header.Cells, cell)
	}
	table.Rows = append(table.Rows, header)

	table.Rows = append(table.Rows, blockRow("Attributes"))
	for i, a := range entity.Attributes {
		lines := []Line{
			{Label: "Visibility:", Text: string(a.Visibility)},
			{Label: "Type:", Text: a.Type},
		}
		if a.Summary != "" {
			lines = append(lines, Line{Label: "Description:", Text: a.Summary})
		}
		table.Rows = append(table.Rows, memberRow(i+1, a.Name, lines))
	}

	table.Rows = append(table.Rows, blockRow("Methods/Operations"))
	for i, m := range entity.Methods {
		lines := []Line{
			{Label: "Visibility:", Text: string(m.Visibility)},
			{Label: "Return:", Text: m.ReturnType},
		}
		if m.Summary != "" {
			lines = append(lines, Line{Label: "Description:", Text: m.Summary})
		}
		lines = append(lines, parameterLines(m.Parameters)...)
		table.Rows = append(table.Rows, memberRow(i+1, m.Name, lines))
	}

	return table
}

// RowNumber formats a 1-based row number as "01", "02", ...
func RowNumber(n int) string {
	return fmt.Sprintf("%02d", n)
}

func blockRow(title string) Row {
	cell := TextCell(title)
	cell.Span = 3
	cell.Bold = true
	cell.Fill = HeaderFill
	return Row{Cells: []Cell{cell}}
}

func memberRow(n int, name string, lines []Line) Row {
	return Row{Cells: []Cell{
		TextCell(RowNumber(n)),
		TextCell(name),
		{Lines: lines},
	}}
}

func parameterLines(params []model.Parameter) []Line {
	if len(params) == 0 {
		return []Line{{Label: "Parameters:", Text: "None"}}
	}
	lines := []Line{{Label: "Parameters:"}}
	for _, p := range params {
		text := fmt.Sprintf("- %s: %s", p.Name, p.Type)
		if p.Summary != "" {
			text += ", " + p.Summary
		}
		lines = append(lines, Line{Text: text})
	}
	return lines
}
