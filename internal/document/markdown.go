package document

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// MarkdownWriter renders documents as GitHub-flavoured Markdown.
type MarkdownWriter struct{}

// NewMarkdownWriter creates a markdown backend.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// Extension implements Backend.
func (m *MarkdownWriter) Extension() string {
	return ".md"
}

// Write implements Backend.
func (m *MarkdownWriter) Write(doc *Document, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, block := range doc.Blocks {
		if i > 0 {
			bw.WriteString("\n")
		}
		switch blk := block.(type) {
		case *Heading:
			fmt.Fprintf(bw, "%s %s\n", strings.Repeat("#", clampLevel(blk.Level)), blk.Text)
		case *Table:
			writeMarkdownTable(bw, blk)
		case *Spacer:
			// Blank line already written between blocks.
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

// writeMarkdownTable writes a pipe table. The first row is the header; a
// spanning cell puts its text in the first column and leaves the rest blank.
func writeMarkdownTable(w *bufio.Writer, t *Table) {
	for i, row := range t.Rows {
		cells := make([]string, 0, t.Columns)
		for _, cell := range row.Cells {
			cells = append(cells, markdownCell(cell))
			for j := 1; j < cell.ColSpan(); j++ {
				cells = append(cells, "")
			}
		}
		for len(cells) < t.Columns {
			cells = append(cells, "")
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))

		if i == 0 {
			seps := make([]string, t.Columns)
			for j := range seps {
				seps[j] = "---"
			}
			fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))
		}
	}
}

func markdownCell(c Cell) string {
	lines := make([]string, 0, len(c.Lines))
	for _, l := range c.Lines {
		text := escapeCell(l.Text)
		if c.Bold && text != "" {
			text = "**" + text + "**"
		}
		switch {
		case l.Label == "":
			lines = append(lines, text)
		case text == "":
			lines = append(lines, "**_"+escapeCell(l.Label)+"_**")
		default:
			lines = append(lines, "**_"+escapeCell(l.Label)+"_** "+text)
		}
	}
	return strings.Join(lines, "<br>")
}

var cellEscaper = strings.NewReplacer("|", `\|`, "<", "&lt;", ">", "&gt;")

// escapeCell keeps pipes and generic type brackets from breaking the table.
func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}
