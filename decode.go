package colcsv

import (
	"encoding"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Char is a single-byte field. It decodes only from fields exactly one byte long.
type Char byte

// decodeField stores text into dst, which must be a pointer to a supported type.
// Numeric fields must be consumed entirely and fit the destination width.
func decodeField(text string, dst any) error {
	switch d := dst.(type) {
	case *string:
		*d = text
	case *[]byte:
		*d = append((*d)[:0], text...)
	case *Char:
		if len(text) != 1 {
			return fmt.Errorf("%w: want exactly one byte, got %d", ErrInvalidFormat, len(text))
		}
		*d = Char(text[0])
	case *bool:
		v, err := strconv.ParseBool(text)
		if err != nil {
			return numError(err)
		}
		*d = v
	case *int:
		v, err := strconv.ParseInt(text, 10, strconv.IntSize)
		if err != nil {
			return numError(err)
		}
		*d = int(v)
	case *int8:
		v, err := strconv.ParseInt(text, 10, 8)
		if err != nil {
			return numError(err)
		}
		*d = int8(v)
	case *int16:
		v, err := strconv.ParseInt(text, 10, 16)
		if err != nil {
			return numError(err)
		}
		*d = int16(v)
	case *int32:
		v, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return numError(err)
		}
		*d = int32(v)
	case *int64:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return numError(err)
		}
		*d = v
	case *uint:
		v, err := strconv.ParseUint(text, 10, strconv.IntSize)
		if err != nil {
			return numError(err)
		}
		*d = uint(v)
	case *uint8:
		v, err := strconv.ParseUint(text, 10, 8)
		if err != nil {
			return numError(err)
		}
		*d = uint8(v)
	case *uint16:
		v, err := strconv.ParseUint(text, 10, 16)
		if err != nil {
			return numError(err)
		}
		*d = uint16(v)
	case *uint32:
		v, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return numError(err)
		}
		*d = uint32(v)
	case *uint64:
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return numError(err)
		}
		*d = v
	case *float32:
		v, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return numError(err)
		}
		*d = float32(v)
	case *float64:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return numError(err)
		}
		*d = v
	case *decimal.Decimal:
		v, err := decimal.NewFromString(text)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		*d = v
	case *uuid.UUID:
		v, err := uuid.Parse(text)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		*d = v
	case encoding.TextUnmarshaler:
		if err := d.UnmarshalText([]byte(text)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	default:
		return ErrUnsupportedType
	}
	return nil
}

// numError maps strconv failures onto the package sentinels.
func numError(err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return ErrOutOfRange
	}
	return ErrInvalidFormat
}

// typeName names dst's element type for DecodeError.
func typeName(dst any) string {
	name := fmt.Sprintf("%T", dst)
	if len(name) > 0 && name[0] == '*' {
		return name[1:]
	}
	return name
}
