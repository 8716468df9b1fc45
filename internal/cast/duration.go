package cast

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/reoring/tableschema/value"
)

// Designators must appear in canonical order; each is optional but at least
// one must be present, and a 'T' must be followed by a clock component.
var durationLiteral = regexp.MustCompile(
	`^P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)(?:[.,](\d{1,9}))?S)?)?$`)

func castDuration(_ Options, raw any) (any, error) {
	switch v := raw.(type) {
	case value.Duration:
		return v, nil
	case string:
		return parseDuration(v, raw)
	}
	return nil, invalid("not a duration", raw)
}

func parseDuration(s string, raw any) (any, error) {
	m := durationLiteral.FindStringSubmatch(s)
	if m == nil || s == "P" || strings.HasSuffix(s, "T") {
		return nil, invalid("not an ISO 8601 duration", raw)
	}
	var d value.Duration
	parts := []*int{&d.Years, &d.Months, &d.Weeks, &d.Days, &d.Hours, &d.Minutes, &d.Seconds}
	for i, p := range parts {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return nil, invalid("duration component out of range", raw)
		}
		*p = n
	}
	if frac := m[8]; frac != "" {
		n, _ := strconv.Atoi(frac + strings.Repeat("0", 9-len(frac)))
		d.Nanoseconds = n
	}
	return d, nil
}
