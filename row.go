package colcsv

import (
	"encoding"
	"fmt"
	"reflect"
)

// Row is one parsed data line. Indexes passed to Field, Decode and Get refer to the
// selection that was active when the line was read, so index 0 is the first selected
// column, not necessarily the first physical one.
//
// A Row belongs to its Reader and is overwritten by the next call to Next or ReadRow.
type Row struct {
	line      string
	bounds    []int
	positions []int
	lineNo    int
}

// parse splits line and binds it to positions. The offset table is reused across lines.
func (r *Row) parse(line string, comma byte, positions []int, lineNo int) {
	r.line = line
	r.bounds = splitBounds(line, comma, r.bounds)
	r.positions = positions
	r.lineNo = lineNo
}

// Len returns the number of selected fields.
func (r *Row) Len() int {
	return len(r.positions)
}

// NumFields returns the number of physical fields on the line.
func (r *Row) NumFields() int {
	return len(r.bounds) / 2
}

// Line returns the raw line without its terminator.
func (r *Row) Line() string {
	return r.line
}

// LineNumber returns the 1-based line number; the header is line 1.
func (r *Row) LineNumber() int {
	return r.lineNo
}

// Field returns the raw text of the i-th selected field.
func (r *Row) Field(i int) (string, error) {
	if i < 0 || i >= len(r.positions) {
		return "", fmt.Errorf("%w: field %d of %d selected", ErrColumnIndex, i, len(r.positions))
	}
	pos := r.positions[i]
	if 2*pos+1 >= len(r.bounds) {
		return "", &DecodeError{
			Line:   r.lineNo,
			Field:  i,
			Column: pos,
			Type:   "field",
			Err:    fmt.Errorf("%w: line has %d fields", ErrFieldCount, r.NumFields()),
		}
	}
	return r.line[r.bounds[2*pos]:r.bounds[2*pos+1]], nil
}

// Decode stores the i-th selected field into dst, a pointer to a supported type.
func (r *Row) Decode(i int, dst any) error {
	text, err := r.Field(i)
	if err != nil {
		return err
	}
	if err := decodeField(text, dst); err != nil {
		return &DecodeError{
			Line:   r.lineNo,
			Field:  i,
			Column: r.positions[i],
			Type:   typeName(dst),
			Text:   text,
			Err:    err,
		}
	}
	return nil
}

// Scan decodes the selected fields, in selection order, into dst. The number of
// destinations must equal Len; otherwise ErrArity is returned and nothing is decoded.
// Decoding stops at the first failure, and destinations before it keep their new values.
func (r *Row) Scan(dst ...any) error {
	if len(dst) != len(r.positions) {
		return fmt.Errorf("%w: %d destinations for %d selected fields", ErrArity, len(dst), len(r.positions))
	}
	for i, d := range dst {
		if err := r.Decode(i, d); err != nil {
			return err
		}
	}
	return nil
}

// Strings returns every selected field. The strings share the line's storage.
func (r *Row) Strings() ([]string, error) {
	return selectFields(r.line, r.bounds, r.positions)
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// Get decodes the i-th selected field of row as a T. When T is a pointer whose type
// implements encoding.TextUnmarshaler, such as *big.Int, a new value is allocated.
func Get[T any](row *Row, i int) (T, error) {
	var v T
	if rt := reflect.TypeOf((*T)(nil)).Elem(); rt.Kind() == reflect.Pointer && rt.Implements(textUnmarshalerType) {
		p := reflect.New(rt.Elem())
		if err := row.Decode(i, p.Interface()); err != nil {
			return v, err
		}
		return p.Interface().(T), nil
	}
	err := row.Decode(i, &v)
	return v, err
}

// MustGet is like Get but panics if the field cannot be decoded. It is meant for tests and
// trusted input; use Get for anything read from outside the program.
func MustGet[T any](row *Row, i int) T {
	v, err := Get[T](row, i)
	if err != nil {
		panic(err)
	}
	return v
}
