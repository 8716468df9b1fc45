// Package tableschema casts raw table cells into typed values according to
// Table Schema field descriptors and enforces their constraints.
//
// A Field is built once per descriptor and reused for every cell of its
// column:
//
//	f, err := tableschema.NewField(tableschema.Descriptor{
//		Name: "age",
//		Type: "integer",
//		Constraints: tableschema.Constraints{
//			{Name: "minimum", Value: 0},
//			{Name: "maximum", Value: 120},
//		},
//	})
//	v, err := f.CastValue("42") // int64(42)
//
// Casting failures are reported as *CastError, constraint failures as
// *ConstraintError; both convert to an Issue. Descriptors naming an unknown
// type or constraint are rejected by NewField.
//
// Typed values: string, float64 (number), int64 (integer), bool, time.Time
// (date, time, datetime), int (year), value.YearMonth, value.Duration,
// value.Geopoint, []any (array), map[string]any (object, geojson). Missing
// values cast to nil.
//
// Design policy:
//   - Keep the public API in the root package; grammars live in internal/cast,
//     constraint predicates in internal/constraint.
//   - No I/O or logging in the core; the CLI under cmd/tableschema adds both.
package tableschema
