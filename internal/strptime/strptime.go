// Package strptime parses times with C strptime-style patterns such as
// "%d/%m/%Y %H:%M". Parsing is strict: every byte of the input must be
// consumed by the pattern.
package strptime

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMismatch is returned when the input does not conform to the pattern.
var ErrMismatch = errors.New("strptime: value does not match pattern")

// ErrDirective is returned for unsupported or truncated % directives.
var ErrDirective = errors.New("strptime: unsupported directive")

var (
	shortMonths = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}
	longMonths  = []string{"january", "february", "march", "april", "may", "june", "july", "august", "september", "october", "november", "december"}
	shortDays   = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}
	longDays    = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
)

type fields struct {
	year, month, day     int
	hour, minute, second int
	nsec                 int
	yday                 int
	pm, hasPM, hour12    bool
	loc                  *time.Location
}

// Parse interprets value according to pattern. Fields absent from the pattern
// default to year 0, January 1st, midnight UTC, so a time-only pattern yields
// a time on 0000-01-01.
func Parse(pattern, value string) (time.Time, error) {
	f := fields{month: 1, day: 1, loc: time.UTC}
	pos := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			if c == ' ' {
				// one pattern space matches any run of input whitespace
				n := skipSpace(value[pos:])
				if n == 0 {
					return time.Time{}, mismatch(pattern, value)
				}
				pos += n
				continue
			}
			if pos >= len(value) || value[pos] != c {
				return time.Time{}, mismatch(pattern, value)
			}
			pos++
			continue
		}
		i++
		if i >= len(pattern) {
			return time.Time{}, fmt.Errorf("%w: trailing %%", ErrDirective)
		}
		n, err := f.directive(pattern[i], value[pos:])
		if err != nil {
			if errors.Is(err, ErrDirective) {
				return time.Time{}, err
			}
			return time.Time{}, mismatch(pattern, value)
		}
		pos += n
	}
	if pos != len(value) {
		return time.Time{}, mismatch(pattern, value)
	}
	return f.build(pattern, value)
}

func (f *fields) directive(d byte, s string) (int, error) {
	var n int
	var err error
	switch d {
	case 'Y':
		f.year, n, err = number(s, 4, 4)
	case 'y':
		var yy int
		yy, n, err = number(s, 2, 2)
		if yy < 69 {
			f.year = 2000 + yy
		} else {
			f.year = 1900 + yy
		}
	case 'm':
		f.month, n, err = number(s, 1, 2)
	case 'd', 'e':
		f.day, n, err = number(s, 1, 2)
	case 'j':
		f.yday, n, err = number(s, 1, 3)
	case 'H':
		f.hour, n, err = number(s, 1, 2)
	case 'I':
		f.hour, n, err = number(s, 1, 2)
		f.hour12 = true
	case 'M':
		f.minute, n, err = number(s, 1, 2)
	case 'S':
		f.second, n, err = number(s, 1, 2)
	case 'f':
		var frac int
		frac, n, err = number(s, 1, 9)
		for k := n; k < 9; k++ {
			frac *= 10
		}
		f.nsec = frac
	case 'p':
		switch {
		case hasFoldPrefix(s, "am"):
			f.pm, f.hasPM, n = false, true, 2
		case hasFoldPrefix(s, "pm"):
			f.pm, f.hasPM, n = true, true, 2
		default:
			err = ErrMismatch
		}
	case 'b', 'h':
		f.month, n, err = name(s, shortMonths)
	case 'B':
		f.month, n, err = name(s, longMonths)
	case 'a':
		_, n, err = name(s, shortDays)
	case 'A':
		_, n, err = name(s, longDays)
	case 'z':
		f.loc, n, err = offset(s)
	case 'Z':
		switch {
		case hasFoldPrefix(s, "utc"), hasFoldPrefix(s, "gmt"):
			f.loc, n = time.UTC, 3
		case strings.HasPrefix(s, "Z"):
			f.loc, n = time.UTC, 1
		default:
			err = ErrMismatch
		}
	case '%':
		if !strings.HasPrefix(s, "%") {
			err = ErrMismatch
		}
		n = 1
	default:
		return 0, fmt.Errorf("%w: %%%c", ErrDirective, d)
	}
	return n, err
}

func (f *fields) build(pattern, value string) (time.Time, error) {
	if f.hour12 {
		if f.hour < 1 || f.hour > 12 {
			return time.Time{}, mismatch(pattern, value)
		}
		f.hour %= 12
		if f.pm {
			f.hour += 12
		}
	} else if f.hasPM && f.pm && f.hour < 12 {
		f.hour += 12
	}
	if f.month < 1 || f.month > 12 || f.hour > 23 || f.minute > 59 || f.second > 59 {
		return time.Time{}, mismatch(pattern, value)
	}
	if f.yday > 0 {
		t := time.Date(f.year, time.January, 1, f.hour, f.minute, f.second, f.nsec, f.loc).AddDate(0, 0, f.yday-1)
		if t.Year() != f.year {
			return time.Time{}, mismatch(pattern, value)
		}
		return t, nil
	}
	t := time.Date(f.year, time.Month(f.month), f.day, f.hour, f.minute, f.second, f.nsec, f.loc)
	// time.Date normalizes overflow such as Feb 30; reject it instead
	if t.Day() != f.day || int(t.Month()) != f.month {
		return time.Time{}, mismatch(pattern, value)
	}
	return t, nil
}

func number(s string, minDigits, maxDigits int) (int, int, error) {
	n, v := 0, 0
	for n < len(s) && n < maxDigits && s[n] >= '0' && s[n] <= '9' {
		v = v*10 + int(s[n]-'0')
		n++
	}
	if n < minDigits {
		return 0, 0, ErrMismatch
	}
	return v, n, nil
}

func name(s string, names []string) (int, int, error) {
	for i, nm := range names {
		if hasFoldPrefix(s, nm) {
			return i + 1, len(nm), nil
		}
	}
	return 0, 0, ErrMismatch
}

func offset(s string) (*time.Location, int, error) {
	if strings.HasPrefix(s, "Z") {
		return time.UTC, 1, nil
	}
	if len(s) < 5 || (s[0] != '+' && s[0] != '-') {
		return nil, 0, ErrMismatch
	}
	hh, n, err := number(s[1:], 2, 2)
	if err != nil {
		return nil, 0, err
	}
	rest := s[1+n:]
	consumed := 1 + n
	if strings.HasPrefix(rest, ":") {
		rest = rest[1:]
		consumed++
	}
	mm, n, err := number(rest, 2, 2)
	if err != nil || hh > 23 || mm > 59 {
		return nil, 0, ErrMismatch
	}
	secs := hh*3600 + mm*60
	if s[0] == '-' {
		secs = -secs
	}
	return time.FixedZone("", secs), consumed + n, nil
}

func skipSpace(s string) int {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	return n
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func mismatch(pattern, value string) error {
	return fmt.Errorf("%w: %q against %q", ErrMismatch, value, pattern)
}
