package calllog

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for input files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// MissingColumnError reports a required column absent from the header row.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Column)
}

// RowError reports a malformed value in a data row. Row is 1-based and counts the header.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %q: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
