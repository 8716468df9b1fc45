package cast

import (
	"encoding/json"
	"regexp"
	"strconv"

	"github.com/reoring/tableschema/value"
)

var (
	yearLiteral      = regexp.MustCompile(`^\d{4}$`)
	yearMonthLiteral = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
)

func castYear(_ Options, raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		if !yearLiteral.MatchString(v) {
			return nil, invalid("not a four digit year", raw)
		}
		y, _ := strconv.Atoi(v)
		return y, nil
	case json.Number:
		return castYear(Options{}, v.String())
	}
	f, ok := nativeFloat(raw)
	if !ok {
		return nil, invalid("not a year", raw)
	}
	y, err := floatToInt64(f, raw)
	if err != nil {
		return nil, err
	}
	n := y.(int64)
	if n < 0 || n > 9999 {
		return nil, invalid("year out of range", raw)
	}
	return int(n), nil
}

func castYearMonth(_ Options, raw any) (any, error) {
	switch v := raw.(type) {
	case value.YearMonth:
		return validYearMonth(v.Year, v.Month, raw)
	case string:
		m := yearMonthLiteral.FindStringSubmatch(v)
		if m == nil {
			return nil, invalid("not a YYYY-MM literal", raw)
		}
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		return validYearMonth(y, mo, raw)
	case []any:
		if len(v) != 2 {
			return nil, invalid("year-month pair must have two elements", raw)
		}
		y, err := castYear(Options{}, v[0])
		if err != nil {
			return nil, invalid("bad year in pair", raw)
		}
		mo, err := castInteger(Options{}, v[1])
		if err != nil {
			return nil, invalid("bad month in pair", raw)
		}
		return validYearMonth(y.(int), int(mo.(int64)), raw)
	}
	return nil, invalid("not a year-month", raw)
}

func validYearMonth(y, m int, raw any) (any, error) {
	if y < 0 || y > 9999 || m < 1 || m > 12 {
		return nil, invalid("year-month out of range", raw)
	}
	return value.YearMonth{Year: y, Month: m}, nil
}
