package resolver

import (
	"fmt"
	"strconv"
	"time"
)

// PropertyAs returns the property key of r converted to T.
// It reports false when the property is missing, nil, or not convertible.
func PropertyAs[T any](r Resource, key string) (T, bool) {
	var zero T
	var v any
	switch x := unwrap(r).(type) {
	case propertySource:
		v = x.rawProperties()[key]
	case *PropertyResource:
		if key != x.key {
			return zero, false
		}
		v = x.owner[key]
	default:
		v = r.Properties()[key]
	}
	return Convert[T](v)
}

// Convert converts a stored property value to T. Besides plain type
// assertion it handles numeric widening, number and bool to string,
// string to number/bool/time (RFC 3339), and string <-> []byte.
func Convert[T any](v any) (T, bool) {
	var zero T
	if v == nil {
		return zero, false
	}
	if t, ok := v.(T); ok {
		return t, true
	}

	var out any
	var ok bool
	switch any(zero).(type) {
	case string:
		out, ok = toString(v)
	case int64:
		out, ok = toInt64(v)
	case int:
		var n int64
		n, ok = toInt64(v)
		out = int(n)
	case float64:
		out, ok = toFloat64(v)
	case bool:
		if s, isStr := v.(string); isStr {
			b, err := strconv.ParseBool(s)
			out, ok = b, err == nil
		}
	case time.Time:
		if s, isStr := v.(string); isStr {
			ts, err := time.Parse(time.RFC3339, s)
			out, ok = ts, err == nil
		}
	case []byte:
		if s, isStr := v.(string); isStr {
			out, ok = []byte(s), true
		}
	}
	if !ok {
		return zero, false
	}
	t, ok := out.(T)
	return t, ok
}

func toString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	case time.Time:
		return x.Format(time.RFC3339), true
	case fmt.Stringer:
		return x.String(), true
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(x), true
	default:
		return "", false
	}
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case float64:
		if x == float64(int64(x)) {
			return int64(x), true
		}
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		return n, err == nil
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	}
	if n, ok := toInt64(v); ok {
		return float64(n), true
	}
	return 0, false
}
