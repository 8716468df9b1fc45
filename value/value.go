// Package value holds the typed shapes produced by casting that have no
// native Go counterpart, together with the ordering and equality rules that
// constraint checks rely on.
package value

import (
	"fmt"
	"strings"
)

// YearMonth is a calendar month without a day component.
type YearMonth struct {
	Year  int
	Month int
}

func (ym YearMonth) String() string { return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month) }

func (ym YearMonth) ordinal() int { return ym.Year*12 + ym.Month - 1 }

// Geopoint is a longitude/latitude pair in decimal degrees.
type Geopoint struct {
	Lon float64
	Lat float64
}

func (g Geopoint) String() string { return fmt.Sprintf("%g,%g", g.Lon, g.Lat) }

// Valid reports whether both coordinates are within range.
func (g Geopoint) Valid() bool {
	return g.Lon >= -180 && g.Lon <= 180 && g.Lat >= -90 && g.Lat <= 90
}

// Duration is an ISO 8601 period. Components are kept as written; no
// normalization between units is applied.
type Duration struct {
	Years       int
	Months      int
	Weeks       int
	Days        int
	Hours       int
	Minutes     int
	Seconds     int
	Nanoseconds int
}

// Approximate unit lengths used for ordering durations that mix calendar and
// clock components.
const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	secondsPerWeek   = 7 * secondsPerDay
	secondsPerMonth  = 2629746 // 365.2425 days / 12
	secondsPerYear   = 12 * secondsPerMonth
)

// TotalSeconds converts the duration to seconds using average calendar unit
// lengths.
func (d Duration) TotalSeconds() float64 {
	s := float64(d.Years)*secondsPerYear +
		float64(d.Months)*secondsPerMonth +
		float64(d.Weeks)*secondsPerWeek +
		float64(d.Days)*secondsPerDay +
		float64(d.Hours)*secondsPerHour +
		float64(d.Minutes)*secondsPerMinute +
		float64(d.Seconds)
	return s + float64(d.Nanoseconds)/1e9
}

// IsZero reports whether every component is zero.
func (d Duration) IsZero() bool { return d == Duration{} }

// String renders the duration in ISO 8601 form, omitting zero components.
func (d Duration) String() string {
	if d.IsZero() {
		return "PT0S"
	}
	b := &strings.Builder{}
	b.WriteByte('P')
	writeUnit(b, d.Years, 'Y')
	writeUnit(b, d.Months, 'M')
	writeUnit(b, d.Weeks, 'W')
	writeUnit(b, d.Days, 'D')
	if d.Hours != 0 || d.Minutes != 0 || d.Seconds != 0 || d.Nanoseconds != 0 {
		b.WriteByte('T')
		writeUnit(b, d.Hours, 'H')
		writeUnit(b, d.Minutes, 'M')
		if d.Nanoseconds != 0 {
			frac := strings.TrimRight(fmt.Sprintf("%09d", d.Nanoseconds), "0")
			fmt.Fprintf(b, "%d.%sS", d.Seconds, frac)
		} else {
			writeUnit(b, d.Seconds, 'S')
		}
	}
	return b.String()
}

func writeUnit(b *strings.Builder, n int, designator byte) {
	if n == 0 {
		return
	}
	fmt.Fprintf(b, "%d%c", n, designator)
}
