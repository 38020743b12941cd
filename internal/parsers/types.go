package parsers

import (
	"context"
	"errors"
	"fmt"

	"github.com/mvp-joe/project-classdoc/internal/syntax"
)

// ErrParse marks every failure to turn a source file into a declaration tree.
var ErrParse = errors.New("parse failure")

// Parser turns a source file into a declaration tree.
type Parser interface {
	ParseFile(ctx context.Context, filePath string) (*syntax.CompilationUnit, error)
}

// ParseError describes why a file could not be parsed. Line and Column are
// 1-based and zero when the failure has no position (e.g. unreadable file).
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s:%d:%d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParse) hold for every ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
