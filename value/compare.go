package value

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
	"unicode/utf8"
)

// ErrIncomparable is returned when two values have no common ordering.
var ErrIncomparable = errors.New("value: incomparable")

// ErrNoLength is returned by Len for values without a length notion.
var ErrNoLength = errors.New("value: no length")

// Compare orders a against b and returns -1, 0 or +1. Numbers compare across
// Go numeric kinds, exactly when both are integers; NaN has no order.
// Strings, times, durations and year-months compare within their own kind.
func Compare(a, b any) (int, error) {
	if ia, ok := asInteger(a); ok {
		if ib, ok := asInteger(b); ok {
			return ia.cmp(ib), nil
		}
	}
	if fa, ok := asFloat(a); ok {
		fb, ok := asFloat(b)
		if !ok || math.IsNaN(fa) || math.IsNaN(fb) {
			return 0, incomparable(a, b)
		}
		return cmpFloat(fa, fb), nil
	}
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, incomparable(a, b)
		}
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		}
		return 0, nil
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, incomparable(a, b)
		}
		return x.Compare(y), nil
	case Duration:
		y, ok := b.(Duration)
		if !ok {
			return 0, incomparable(a, b)
		}
		return cmpFloat(x.TotalSeconds(), y.TotalSeconds()), nil
	case YearMonth:
		y, ok := b.(YearMonth)
		if !ok {
			return 0, incomparable(a, b)
		}
		return cmpInt(x.ordinal(), y.ordinal()), nil
	}
	return 0, incomparable(a, b)
}

// Equal reports structural equality. Temporal values are equal when they
// denote the same instant; numbers are equal across Go numeric kinds.
func Equal(a, b any) bool {
	if ia, ok := asInteger(a); ok {
		if ib, ok := asInteger(b); ok {
			return ia.cmp(ib) == 0
		}
	}
	if fa, ok := asFloat(a); ok {
		fb, ok := asFloat(b)
		return ok && fa == fb
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}

// Len returns the rune count of a string or the element count of an array or
// object.
func Len(v any) (int, error) {
	switch x := v.(type) {
	case string:
		return utf8.RuneCountInString(x), nil
	case []any:
		return len(x), nil
	case map[string]any:
		return len(x), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), nil
	}
	return 0, fmt.Errorf("%w: %T", ErrNoLength, v)
}

// integer is an exact integer as sign and magnitude, covering the whole
// int64 and uint64 ranges.
type integer struct {
	neg bool
	mag uint64
}

func fromInt64(n int64) integer {
	if n < 0 {
		return integer{neg: true, mag: uint64(-n)}
	}
	return integer{mag: uint64(n)}
}

func (x integer) cmp(y integer) int {
	switch {
	case x.neg && !y.neg:
		return -1
	case !x.neg && y.neg:
		return 1
	}
	c := 0
	switch {
	case x.mag < y.mag:
		c = -1
	case x.mag > y.mag:
		c = 1
	}
	if x.neg {
		return -c
	}
	return c
}

func asInteger(v any) (integer, bool) {
	switch n := v.(type) {
	case int:
		return fromInt64(int64(n)), true
	case int8:
		return fromInt64(int64(n)), true
	case int16:
		return fromInt64(int64(n)), true
	case int32:
		return fromInt64(int64(n)), true
	case int64:
		return fromInt64(n), true
	case uint:
		return integer{mag: uint64(n)}, true
	case uint8:
		return integer{mag: uint64(n)}, true
	case uint16:
		return integer{mag: uint64(n)}, true
	case uint32:
		return integer{mag: uint64(n)}, true
	case uint64:
		return integer{mag: n}, true
	case json.Number:
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return fromInt64(i), true
		}
		if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
			return integer{mag: u}, true
		}
	}
	return integer{}, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := strconv.ParseFloat(n.String(), 64)
		return f, err == nil
	}
	return 0, false
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func incomparable(a, b any) error {
	return fmt.Errorf("%w: %T and %T", ErrIncomparable, a, b)
}
