package tableschema

import (
	"fmt"
	"math"
	"time"

	"github.com/reoring/tableschema/internal/cast"
	js "github.com/reoring/tableschema/jsonschema"
	"github.com/reoring/tableschema/value"
)

// JSONSchema projects the field into the JSON Schema that describes its
// typed value as JSON. Fields that are not required admit null.
func (f *Field) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Title: f.desc.Title, Description: f.desc.Description}
	switch f.typ {
	case cast.String:
		s.Type = "string"
		switch f.desc.Format {
		case "email", "uri", "uuid":
			s.Format = f.desc.Format
		case "binary":
			s.Format = "byte"
		}
	case cast.Number:
		s.Type = "number"
	case cast.Integer:
		s.Type = "integer"
	case cast.Boolean:
		s.Type = "boolean"
	case cast.Date:
		s.Type, s.Format = "string", "date"
	case cast.Time:
		s.Type, s.Format = "string", "time"
	case cast.Datetime:
		s.Type, s.Format = "string", "date-time"
	case cast.Year:
		s.Type = "integer"
		s.Minimum, s.Maximum = 0, 9999
	case cast.YearMonth:
		s.Type, s.Pattern = "string", `^\d{4}-\d{2}$`
	case cast.Duration:
		s.Type, s.Format = "string", "duration"
	case cast.Array:
		s.Type = "array"
	case cast.Object, cast.Geojson:
		s.Type = "object"
	case cast.Geopoint:
		s.Type = "array"
		two := 2
		s.Items = &js.Schema{Type: "number"}
		s.MinItems, s.MaxItems = &two, &two
	case cast.Any:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownType, f.typ)
	}
	for _, c := range f.checks {
		switch c.name {
		case "minLength", "maxLength":
			n := c.bound.(int)
			switch {
			case f.typ == cast.Array && c.name == "minLength":
				s.MinItems = &n
			case f.typ == cast.Array:
				s.MaxItems = &n
			case c.name == "minLength":
				s.MinLength = &n
			default:
				s.MaxLength = &n
			}
		case "minimum":
			s.Minimum = f.JSONValue(c.bound)
		case "maximum":
			s.Maximum = f.JSONValue(c.bound)
		case "enum":
			for _, m := range c.bound.([]any) {
				s.Enum = append(s.Enum, f.JSONValue(m))
			}
		}
	}
	if re := f.pattern(); re != nil {
		s.Pattern = re.String()
	}
	if !f.Required() {
		return s.Nullable(), nil
	}
	return s, nil
}

// JSONValue renders a typed value in the JSON shape described by JSONSchema.
// Non-finite numbers have no JSON form and are rendered as strings.
func (f *Field) JSONValue(v any) any {
	switch x := v.(type) {
	case float64:
		switch {
		case math.IsNaN(x):
			return "NaN"
		case math.IsInf(x, 1):
			return "INF"
		case math.IsInf(x, -1):
			return "-INF"
		}
		return x
	case time.Time:
		switch f.typ {
		case cast.Date:
			return x.Format(time.DateOnly)
		case cast.Time:
			return x.Format(time.TimeOnly)
		}
		return x.Format(time.RFC3339Nano)
	case value.Duration, value.YearMonth:
		return fmt.Sprint(x)
	case value.Geopoint:
		return []any{x.Lon, x.Lat}
	}
	return v
}

// RowObject keys a cast row by field name, rendering each cell with
// JSONValue. Cells beyond the schema width are ignored.
func (s *Schema) RowObject(row []any) map[string]any {
	out := make(map[string]any, len(s.fields))
	for i, f := range s.fields {
		if i >= len(row) {
			break
		}
		out[f.Name()] = f.JSONValue(row[i])
	}
	return out
}
