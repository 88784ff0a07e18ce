package generate

import (
	"math"
	"strconv"
	"strings"
)

// numeric converts a scalar to a number the way a loose comparison would:
// bools count as 0/1 and numeric strings are parsed.
func numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, !math.IsNaN(v)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		return f, err == nil
	case interface{ String() string }:
		f, err := strconv.ParseFloat(v.String(), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// booleanCell renders a stored boolean column: "true" when the value is
// greater than zero, otherwise "false".
func booleanCell(value any) string {
	if f, ok := numeric(value); ok && f > 0 {
		return "true"
	}
	return "false"
}

// Truthy decides whether an existing value checks a checkbox. Strings that
// parse as booleans use that value, other strings are truthy when non-empty.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed
		}
		return v != ""
	default:
		f, ok := numeric(v)
		return !ok || f != 0
	}
}
