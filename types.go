package tableschema

import (
	"github.com/reoring/tableschema/internal/cast"
)

// Type is a logical field type. The set is closed; descriptors naming any
// other type are rejected by NewField.
type Type = cast.Kind

const (
	TypeString    = cast.String
	TypeNumber    = cast.Number
	TypeInteger   = cast.Integer
	TypeBoolean   = cast.Boolean
	TypeDate      = cast.Date
	TypeTime      = cast.Time
	TypeDatetime  = cast.Datetime
	TypeYear      = cast.Year
	TypeYearMonth = cast.YearMonth
	TypeDuration  = cast.Duration
	TypeArray     = cast.Array
	TypeObject    = cast.Object
	TypeGeopoint  = cast.Geopoint
	TypeGeojson   = cast.Geojson
	TypeAny       = cast.Any
)

// DefaultFormat is the format token selecting each type's canonical grammar.
const DefaultFormat = cast.DefaultFormat

// DefaultMissingValues is the sentinel set used when none is configured.
var DefaultMissingValues = []string{""}

// Selector chooses which declared constraints a cast evaluates.
type Selector struct {
	all   bool
	names []string
}

var (
	// AllConstraints evaluates every declared constraint.
	AllConstraints = Selector{all: true}
	// NoConstraints evaluates none.
	NoConstraints = Selector{}
)

// OnlyConstraints evaluates the named constraints that the field declares.
func OnlyConstraints(names ...string) Selector {
	return Selector{names: append([]string(nil), names...)}
}

func (s Selector) includes(name string) bool {
	if s.all {
		return true
	}
	for _, n := range s.names {
		if n == name {
			return true
		}
	}
	return false
}
