package tableschema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/tableschema/i18n"
)

// Issue codes.
const (
	CodeCast          = "cast_error"
	CodeRequired      = "required"
	CodeUnique        = "unique"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodePattern       = "pattern"
	CodeInvalidEnum   = "invalid_enum"
	CodeConstraint    = "constraint_error"
	CodeRowLength     = "row_length"
	CodeParseError    = "parse_error"
	CodeSchemaNoField = "schema_no_fields"
	// Schema document checks
	CodeSchemaFieldName     = "schema_field_name"
	CodeSchemaDuplicate     = "schema_duplicate_field"
	CodeSchemaFieldInvalid  = "schema_field_invalid"
	CodeSchemaPrimaryKey    = "schema_primary_key"
	CodeSchemaForeignKey    = "schema_foreign_key"
	CodeSchemaReferenceSize = "schema_reference_size"
	CodeSchemaConstraints   = "schema_constraints"
	CodeSchemaKeys          = "schema_keys"
)

// Sentinel errors. CastError and ConstraintError match ErrCast and
// ErrConstraint under errors.Is; the remaining sentinels indicate an invalid
// descriptor and are reported by NewField.
var (
	ErrCast              = errors.New("tableschema: cast failed")
	ErrConstraint        = errors.New("tableschema: constraint not satisfied")
	ErrUnknownType       = errors.New("tableschema: unknown field type")
	ErrUnknownConstraint = errors.New("tableschema: unknown constraint")
	ErrInvalidConstraint = errors.New("tableschema: invalid constraint value")
)

// CastError reports a raw value that does not conform to the field's type
// and format.
type CastError struct {
	Field  string
	Type   string
	Format string
	Value  any
	Cause  error
}

func (e *CastError) Error() string {
	return fmt.Sprintf("field %q can't cast value %q for type %q with format %q",
		e.Field, fmt.Sprint(e.Value), e.Type, e.Format)
}

func (e *CastError) Unwrap() error { return e.Cause }

func (e *CastError) Is(target error) bool { return target == ErrCast }

// Issue converts the error into an Issue rooted at the field.
func (e *CastError) Issue() Issue {
	return Issue{
		Path:    "/" + e.Field,
		Code:    CodeCast,
		Message: i18n.T(CodeCast, map[string]string{"type": e.Type, "format": e.Format}),
		Cause:   e,
		Params:  map[string]any{"type": e.Type, "format": e.Format, "value": e.Value},
	}
}

// ConstraintError reports a typed value that fails a declared constraint.
type ConstraintError struct {
	Field      string
	Constraint string
	Value      any
	Cause      error
}

func (e *ConstraintError) Error() string {
	msg := fmt.Sprintf("field %q has constraint %q which is not satisfied for value %q",
		e.Field, e.Constraint, fmt.Sprint(e.Value))
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConstraintError) Unwrap() error { return e.Cause }

func (e *ConstraintError) Is(target error) bool { return target == ErrConstraint }

// Issue converts the error into an Issue rooted at the field.
func (e *ConstraintError) Issue() Issue {
	code := constraintCode(e.Constraint)
	return Issue{
		Path:    "/" + e.Field,
		Code:    code,
		Message: i18n.T(code, map[string]string{"constraint": e.Constraint}),
		Cause:   e,
		Params:  map[string]any{"constraint": e.Constraint, "value": e.Value},
		Rule:    e.Constraint,
	}
}

func constraintCode(name string) string {
	switch name {
	case "required":
		return CodeRequired
	case "unique":
		return CodeUnique
	case "minLength":
		return CodeTooShort
	case "maxLength":
		return CodeTooLong
	case "minimum":
		return CodeTooSmall
	case "maximum":
		return CodeTooBig
	case "pattern":
		return CodePattern
	case "enum":
		return CodeInvalidEnum
	}
	return CodeConstraint
}

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer such as /3/age (row 3, field age) or /fields/1.
	Code    string
	Message string
	Cause   error
	// Params carries structured parameters for i18n and diagnostics.
	Params map[string]any
	// Rule optionally records the constraint that produced the issue.
	Rule string
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if n := len(iss); n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IssueOf converts a cast or constraint error into an Issue. Other errors are
// reported with CodeParseError.
func IssueOf(err error) Issue {
	var ce *CastError
	if errors.As(err, &ce) {
		return ce.Issue()
	}
	var ke *ConstraintError
	if errors.As(err, &ke) {
		return ke.Issue()
	}
	return Issue{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Cause: err}
}
