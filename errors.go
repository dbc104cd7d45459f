package colcsv

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by every Reader and Writer method after Close.
	ErrClosed = errors.New("colcsv: file is closed")
	// ErrNoHeader is returned when the source has no header line.
	ErrNoHeader = errors.New("colcsv: missing header line")
	// ErrUnknownColumn is returned when a selected name is not in the header.
	ErrUnknownColumn = errors.New("colcsv: unknown column")
	// ErrColumnIndex is returned for a column or field index outside the valid range.
	ErrColumnIndex = errors.New("colcsv: column index out of range")
	// ErrMaskLength is returned when a selection mask is longer than the header.
	ErrMaskLength = errors.New("colcsv: mask longer than column count")
	// ErrArity is returned when the number of values or destinations does not match the column count.
	ErrArity = errors.New("colcsv: wrong number of arguments")
	// ErrFieldCount is returned when a line has too few (or, in strict mode, too many) fields.
	ErrFieldCount = errors.New("colcsv: wrong number of fields")
	// ErrInvalidFormat is returned when a field is not valid text for the destination type.
	ErrInvalidFormat = errors.New("colcsv: invalid field format")
	// ErrOutOfRange is returned when a numeric field does not fit the destination type.
	ErrOutOfRange = errors.New("colcsv: value out of range")
	// ErrUnsupportedType is returned for destinations the decoder does not know.
	ErrUnsupportedType = errors.New("colcsv: unsupported destination type")
	// ErrNoColumns is returned when rows are written before any column names are set.
	ErrNoColumns = errors.New("colcsv: no column names set")
	// ErrHeaderWritten is returned when column names change after the header is out.
	ErrHeaderWritten = errors.New("colcsv: header already written")
	// ErrRowOpen is returned when a row is started while a RowBuilder is still open.
	ErrRowOpen = errors.New("colcsv: row builder already open")
	// ErrRowClosed is returned by a RowBuilder after Flush.
	ErrRowClosed = errors.New("colcsv: row builder already flushed")
	// ErrInvalidField is returned when a value would contain the delimiter or a line break.
	ErrInvalidField = errors.New("colcsv: field contains delimiter or line break")
	// ErrInvalidComma is returned by a Config whose delimiter is a line break.
	ErrInvalidComma = errors.New("colcsv: invalid field delimiter")
	// ErrUnknownCompression is returned for an unrecognised Config.Compression.
	ErrUnknownCompression = errors.New("colcsv: unknown compression codec")
)

// DecodeError describes a field that could not be decoded into its destination.
type DecodeError struct {
	// Line is the 1-based physical line of the row; the header is line 1.
	Line int
	// Field is the index of the field within the current selection.
	Field int
	// Column is the physical column position of the field.
	Column int
	// Type is the destination type.
	Type string
	// Text is the raw field text.
	Text string
	Err  error
}

// Error formats the decode error with its location and the offending text.
func (e *DecodeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("colcsv: decode error on line %d, column %d: %q as %s: %v", e.Line, e.Column, e.Text, e.Type, e.Err)
}

// Unwrap returns the underlying Err so DecodeError participates in errors.Is.
func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
