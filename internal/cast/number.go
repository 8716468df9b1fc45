package cast

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	defaultDecimalChar = "."
	defaultGroupChar   = ","
)

var (
	floatLiteral   = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)
	integerLiteral = regexp.MustCompile(`^[+-]?\d+$`)
)

func castNumber(opts Options, raw any) (any, error) {
	if f, ok := nativeFloat(raw); ok {
		return f, nil
	}
	var s string
	switch v := raw.(type) {
	case json.Number:
		s = v.String()
	case string:
		s = v
	default:
		return nil, invalid("not a number", raw)
	}
	s = normalizeNumber(opts, s)
	switch s {
	case "NaN":
		return math.NaN(), nil
	case "INF", "+INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	}
	if !floatLiteral.MatchString(s) {
		return nil, invalid("not a number literal", raw)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, invalid("number out of range", raw)
	}
	return f, nil
}

// normalizeNumber strips whitespace, group characters and (optionally)
// currency symbols, then rewrites the decimal character to '.'.
func normalizeNumber(opts Options, s string) string {
	decimal := opts.DecimalChar
	if decimal == "" {
		decimal = defaultDecimalChar
	}
	group := opts.GroupChar
	if group == "" {
		group = defaultGroupChar
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		if opts.Currency && (unicode.Is(unicode.Sc, r) || r == '%') {
			return -1
		}
		return r
	}, s)
	if group != decimal {
		s = strings.ReplaceAll(s, group, "")
	}
	if decimal != "." {
		s = strings.ReplaceAll(s, decimal, ".")
	}
	return s
}

func castInteger(opts Options, raw any) (any, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return uintToInt64(v, raw)
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return uintToInt64(v, raw)
	case float32:
		return floatToInt64(float64(v), raw)
	case float64:
		return floatToInt64(v, raw)
	case json.Number:
		return parseInteger(v.String(), raw)
	case string:
		return parseInteger(v, raw)
	}
	return nil, invalid("not an integer", raw)
}

func parseInteger(s string, raw any) (any, error) {
	if !integerLiteral.MatchString(s) {
		return nil, invalid("not an integer literal", raw)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, invalid("integer out of range", raw)
	}
	return n, nil
}

func floatToInt64(f float64, raw any) (any, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, invalid("not an integral value", raw)
	}
	return int64(f), nil
}

func uintToInt64[T uint | uint64](v T, raw any) (any, error) {
	if uint64(v) > math.MaxInt64 {
		return nil, invalid("integer out of range", raw)
	}
	return int64(v), nil
}

// nativeFloat reports Go numeric values as float64. Booleans are not numbers.
func nativeFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
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
	}
	return 0, false
}
