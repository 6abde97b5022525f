package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResult is the non-fatal warning raised when no customer has more
// than one transaction. Summaries are empty and the chart is skipped.
var ErrEmptyResult = errors.New("no repeat customers found")

// DataFormatError reports an amount or date field that cannot be parsed.
type DataFormatError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("line %d: invalid %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// MissingColumnError reports required headers absent from the source.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Columns, ", "))
}
