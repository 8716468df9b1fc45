// Package cast implements the per-type grammars that turn raw table cells
// into typed values.
package cast

import (
	"errors"
	"fmt"
)

// Kind enumerates the logical field types.
type Kind int

const (
	String Kind = iota
	Number
	Integer
	Boolean
	Date
	Time
	Datetime
	Year
	YearMonth
	Duration
	Array
	Object
	Geopoint
	Geojson
	Any
)

var kindNames = [...]string{
	String:    "string",
	Number:    "number",
	Integer:   "integer",
	Boolean:   "boolean",
	Date:      "date",
	Time:      "time",
	Datetime:  "datetime",
	Year:      "year",
	YearMonth: "yearmonth",
	Duration:  "duration",
	Array:     "array",
	Object:    "object",
	Geopoint:  "geopoint",
	Geojson:   "geojson",
	Any:       "any",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ErrInvalid marks a raw value that does not conform to the type grammar.
var ErrInvalid = errors.New("cast: invalid value")

// ErrUnknownKind is returned for type names outside the closed set.
var ErrUnknownKind = errors.New("cast: unknown type")

// DefaultFormat selects each type's canonical grammar.
const DefaultFormat = "default"

// ParseKind resolves a type name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Options carries the format and type-specific settings bound at field
// construction.
type Options struct {
	Format      string
	DecimalChar string
	GroupChar   string
	Currency    bool
}

func (o Options) format() string {
	if o.Format == "" {
		return DefaultFormat
	}
	return o.Format
}

// Cast converts raw according to kind and opts. A non-conforming raw value
// yields an error wrapping ErrInvalid.
func Cast(kind Kind, opts Options, raw any) (any, error) {
	switch kind {
	case String:
		return castString(opts, raw)
	case Number:
		return castNumber(opts, raw)
	case Integer:
		return castInteger(opts, raw)
	case Boolean:
		return castBoolean(opts, raw)
	case Date:
		return castDate(opts, raw)
	case Time:
		return castTime(opts, raw)
	case Datetime:
		return castDatetime(opts, raw)
	case Year:
		return castYear(opts, raw)
	case YearMonth:
		return castYearMonth(opts, raw)
	case Duration:
		return castDuration(opts, raw)
	case Array:
		return castArray(opts, raw)
	case Object:
		return castObject(opts, raw)
	case Geopoint:
		return castGeopoint(opts, raw)
	case Geojson:
		return castGeojson(opts, raw)
	case Any:
		return raw, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
}

func invalid(reason string, raw any) error {
	return fmt.Errorf("%w: %s (%T %v)", ErrInvalid, reason, raw, raw)
}
