package colcsv

import (
	"encoding"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// appendValue appends the text form of v to dst. Numbers use strconv's shortest
// representation so that they decode back to the same value.
func appendValue(dst []byte, v any) ([]byte, error) {
	switch x := v.(type) {
	case nil:
		return dst, nil
	case string:
		return append(dst, x...), nil
	case []byte:
		return append(dst, x...), nil
	case Char:
		return append(dst, byte(x)), nil
	case bool:
		return strconv.AppendBool(dst, x), nil
	case int:
		return strconv.AppendInt(dst, int64(x), 10), nil
	case int8:
		return strconv.AppendInt(dst, int64(x), 10), nil
	case int16:
		return strconv.AppendInt(dst, int64(x), 10), nil
	case int32:
		return strconv.AppendInt(dst, int64(x), 10), nil
	case int64:
		return strconv.AppendInt(dst, x, 10), nil
	case uint:
		return strconv.AppendUint(dst, uint64(x), 10), nil
	case uint8:
		return strconv.AppendUint(dst, uint64(x), 10), nil
	case uint16:
		return strconv.AppendUint(dst, uint64(x), 10), nil
	case uint32:
		return strconv.AppendUint(dst, uint64(x), 10), nil
	case uint64:
		return strconv.AppendUint(dst, x, 10), nil
	case float32:
		return strconv.AppendFloat(dst, float64(x), 'g', -1, 32), nil
	case float64:
		return strconv.AppendFloat(dst, x, 'g', -1, 64), nil
	case decimal.Decimal:
		return append(dst, x.String()...), nil
	case uuid.UUID:
		return append(dst, x.String()...), nil
	case encoding.TextMarshaler:
		text, err := x.MarshalText()
		if err != nil {
			return dst, err
		}
		return append(dst, text...), nil
	case fmt.Stringer:
		return append(dst, x.String()...), nil
	default:
		return fmt.Append(dst, x), nil
	}
}

// appendField appends v and rejects text that would break the line framing.
func appendField(dst []byte, v any, comma byte) ([]byte, error) {
	start := len(dst)
	dst, err := appendValue(dst, v)
	if err != nil {
		return dst[:start], err
	}
	if !validField(dst[start:], comma) {
		return dst[:start], fmt.Errorf("%w: %q", ErrInvalidField, dst[start:])
	}
	return dst, nil
}

func validField(field []byte, comma byte) bool {
	for _, c := range field {
		switch c {
		case comma, '\n', '\r':
			return false
		}
	}
	return true
}
