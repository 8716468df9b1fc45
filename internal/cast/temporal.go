package cast

import (
	"strings"
	"time"

	"github.com/reoring/tableschema/internal/strptime"
)

const (
	isoDate = "2006-01-02"
	isoTime = "15:04:05"
)

// Layouts tried in order by the "any" format.
var (
	anyDateLayouts = []string{
		isoDate, "2006/01/02", "02/01/2006", "01/02/2006", "02.01.2006",
		"2 Jan 2006", "Jan 2, 2006", "2 January 2006", "January 2, 2006", "20060102",
	}
	anyTimeLayouts = []string{
		isoTime, "15:04", "15:04:05.999999999", "3:04 PM", "3:04:05 PM", "3:04PM", "15:04:05Z07:00",
	}
	anyDatetimeLayouts = []string{
		time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02 15:04",
		"2006-01-02 15:04:05Z07:00", time.RFC1123Z, time.RFC1123, time.RFC850, time.ANSIC,
		"02/01/2006 15:04:05", "02/01/2006 15:04",
	}
)

func castDate(opts Options, raw any) (any, error) {
	return castTemporal(opts, raw, []string{isoDate}, anyDateLayouts)
}

func castTime(opts Options, raw any) (any, error) {
	return castTemporal(opts, raw, []string{isoTime, "15:04:05.999999999"}, anyTimeLayouts)
}

func castDatetime(opts Options, raw any) (any, error) {
	return castTemporal(opts, raw, []string{time.RFC3339Nano}, anyDatetimeLayouts)
}

func castTemporal(opts Options, raw any, defaults, anyLayouts []string) (any, error) {
	if t, ok := raw.(time.Time); ok {
		return t, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, invalid("not a temporal string", raw)
	}
	switch f := opts.format(); f {
	case DefaultFormat:
		return parseLayouts(defaults, s, raw)
	case "any":
		return parseLayouts(anyLayouts, s, raw)
	default:
		t, err := strptime.Parse(strings.TrimPrefix(f, "fmt:"), s)
		if err != nil {
			return nil, invalid(err.Error(), raw)
		}
		return t, nil
	}
}

func parseLayouts(layouts []string, s string, raw any) (any, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, invalid("does not match a temporal layout", raw)
}
