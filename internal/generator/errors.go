package generator

import "errors"

var (
	// ErrValidation marks input rejected before any pipeline work starts:
	// missing root or output, bad start index, unknown format, empty file or
	// class selection.
	ErrValidation = errors.New("validation failed")

	// ErrIO marks an unreadable rule store or an unwritable output document.
	ErrIO = errors.New("i/o failure")
)
