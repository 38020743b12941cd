package document

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnknownFormat is returned for an output format without a backend.
var ErrUnknownFormat = errors.New("unknown output format")

// Output formats.
const (
	FormatDocx     = "docx"
	FormatMarkdown = "markdown"
)

// Backend renders a document into a byte stream.
type Backend interface {
	// Write renders doc to w.
	Write(doc *Document, w io.Writer) error

	// Extension returns the file extension, including the dot.
	Extension() string
}

// NewBackend returns the backend for a format name ("docx", "markdown" or
// "md").
func NewBackend(format string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatDocx, "":
		return NewDocxWriter(), nil
	case FormatMarkdown, "md":
		return NewMarkdownWriter(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{FormatDocx, FormatMarkdown}
}
