package tablefmt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput is returned when writing a table without records.
	ErrEmptyInput = errors.New("no records to write")

	// ErrMalformedInput is returned when a table has no header line.
	ErrMalformedInput = errors.New("malformed table")

	// ErrUnsplittableValue is returned when an encoded cell contains the
	// delimiter or a line break and could not be read back.
	ErrUnsplittableValue = errors.New("value contains the delimiter or a line break")
)

// SchemaError reports a column that cannot be part of a schema.
type SchemaError struct {
	Column  string
	Message string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema column %q: %s", e.Column, e.Message)
}

// ConversionError reports text that matches no symbol of an enumeration.
type ConversionError struct {
	Value   string
	Symbols []string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%q is not one of [%s]", e.Value, strings.Join(e.Symbols, ", "))
}

// RowConversionError reports a cell that could not be decoded into its field.
type RowConversionError struct {
	Line   int    // 1-based line in the input
	Column string // header name
	Raw    string // cell text as read
	Err    error
}

func (e *RowConversionError) Error() string {
	return fmt.Sprintf("line %d: converting column %s value %q: %v", e.Line, e.Column, e.Raw, e.Err)
}

func (e *RowConversionError) Unwrap() error {
	return e.Err
}
