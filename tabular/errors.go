/*
errors.go - Centralized error types for the table layer

PURPOSE:
  All fatal pipeline errors in one place. Loading and writing failures
  are never swallowed: each error carries enough context (path, table,
  column, row) to locate the offending input without re-running.

ERROR CATEGORIES:
  1. Not-found errors  - An expected file or table is absent
  2. Schema errors     - A required column is missing
  3. Data-type errors  - A cell cannot be coerced to its expected type

Validation findings (split violations, negative values) are NOT errors.
They are data, returned in the validation report even when fatal-free.

USAGE:
  if errors.Is(err, tabular.ErrSchema) { ... }

  var dte *tabular.DataTypeError
  if errors.As(err, &dte) {
      log.Printf("bad value in %s row %d", dte.Column, dte.Row)
  }
*/
package tabular

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrFileNotFound is returned when an expected input, template or
	// report path does not exist. Fatal, aborts the run.
	ErrFileNotFound = errors.New("file not found")

	// ErrTableNotFound is returned when no workbook in the input
	// directory matches a required table's name hint.
	ErrTableNotFound = errors.New("input table not found")

	// ErrSchema is returned when a table lacks a required column.
	ErrSchema = errors.New("required column missing")

	// ErrDataType is returned when a cell cannot be coerced.
	ErrDataType = errors.New("value cannot be coerced")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NotFoundError names the missing path. Surfaced verbatim to the caller.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("file not found: %s", e.Path) }
func (e *NotFoundError) Unwrap() error { return ErrFileNotFound }

// SchemaError lists every required column absent from a table, so one
// failed load reports all gaps at once.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s: missing required column(s): %s",
		e.Table, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// DataTypeError names the table, column and row of an uncoercible value.
// Row is 1-based counting data rows, matching what a person sees when
// they open the sheet (header excluded).
type DataTypeError struct {
	Table  string
	Column string
	Row    int
	Value  string
	Kind   string // "date", "decimal", "integer"
}

func (e *DataTypeError) Error() string {
	return fmt.Sprintf("table %s, column %s, row %d: cannot parse %q as %s",
		e.Table, e.Column, e.Row, e.Value, e.Kind)
}

func (e *DataTypeError) Unwrap() error { return ErrDataType }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether the error indicates a missing file or table.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFileNotFound) || errors.Is(err, ErrTableNotFound)
}

// IsInputError reports whether the error is caused by the caller's input
// data rather than the pipeline itself.
func IsInputError(err error) bool {
	return errors.Is(err, ErrSchema) || errors.Is(err, ErrDataType)
}
