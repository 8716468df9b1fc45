package tableschema

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"

	"github.com/reoring/tableschema/internal/cast"
	"github.com/reoring/tableschema/internal/constraint"
	"github.com/reoring/tableschema/value"
)

// Field casts raw cells for one descriptor and enforces its constraints.
// A Field is immutable after NewField returns and safe for concurrent use.
type Field struct {
	desc    Descriptor
	typ     Type
	opts    cast.Options
	missing MissingValues
	checks  []check
}

// check is a constraint bound to its prepared value.
type check struct {
	name  string
	kind  constraint.Kind
	bound any
}

// FieldOption configures NewField.
type FieldOption func(*Field)

// WithMissingValues replaces the missing-value sentinels. Passing no values
// makes every string a candidate for casting.
func WithMissingValues(vals ...string) FieldOption {
	return func(f *Field) { f.missing = append(MissingValues{}, vals...) }
}

// NewField builds a Field from d. Constraint literals for minimum, maximum
// and enum are cast once here. The descriptor is copied; later changes to
// d do not affect the Field.
func NewField(d Descriptor, opts ...FieldOption) (*Field, error) {
	d = d.Expand()
	if len(d.problems) > 0 {
		p := d.problems[0]
		return nil, fmt.Errorf("field %q %s: %w: %v", d.Name, p.member, ErrInvalidConstraint, p.err)
	}
	typ, err := cast.ParseKind(d.Type)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w: %q", d.Name, ErrUnknownType, d.Type)
	}
	f := &Field{
		desc:    d,
		typ:     typ,
		missing: append(MissingValues{}, DefaultMissingValues...),
		opts: cast.Options{
			Format:      d.Format,
			DecimalChar: d.DecimalChar,
			GroupChar:   d.GroupChar,
			Currency:    d.Currency,
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	for _, c := range d.Constraints {
		chk, err := f.bind(c)
		if err != nil {
			return nil, err
		}
		f.checks = append(f.checks, chk)
	}
	return f, nil
}

func (f *Field) bind(c Constraint) (check, error) {
	kind, err := constraint.ParseKind(c.Name)
	if err != nil {
		return check{}, fmt.Errorf("field %q: %w: %q", f.desc.Name, ErrUnknownConstraint, c.Name)
	}
	bound, err := f.bindValue(kind, c.Value)
	if err != nil {
		return check{}, fmt.Errorf("field %q constraint %q: %w: %v", f.desc.Name, c.Name, ErrInvalidConstraint, err)
	}
	return check{name: c.Name, kind: kind, bound: bound}, nil
}

func (f *Field) bindValue(kind constraint.Kind, v any) (any, error) {
	switch kind {
	case constraint.Required, constraint.Unique:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("expected boolean, got %T", v)
		}
		return b, nil
	case constraint.MinLength, constraint.MaxLength:
		n, err := cast.Cast(cast.Integer, cast.Options{}, v)
		if err != nil || n.(int64) < 0 {
			return nil, fmt.Errorf("expected non-negative integer, got %v", v)
		}
		return int(n.(int64)), nil
	case constraint.Pattern:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		return constraint.Compile(s)
	case constraint.Minimum, constraint.Maximum:
		bound, err := f.castLiteral(v)
		if err != nil {
			return nil, err
		}
		if bound == nil {
			return nil, errors.New("bound is null")
		}
		if _, err := value.Compare(bound, bound); err != nil {
			return nil, fmt.Errorf("type %s has no order: %w", f.desc.Type, err)
		}
		return bound, nil
	case constraint.Enum:
		list := reflect.ValueOf(v)
		if k := list.Kind(); k != reflect.Slice && k != reflect.Array {
			return nil, fmt.Errorf("expected list, got %T", v)
		}
		members := make([]any, 0, list.Len())
		for i := 0; i < list.Len(); i++ {
			cm, err := f.castLiteral(list.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			members = append(members, cm)
		}
		return members, nil
	}
	return nil, fmt.Errorf("%w: %v", constraint.ErrUnknownKind, kind)
}

// castLiteral casts a type-sensitive constraint literal through the field's
// own caster, without constraint evaluation.
func (f *Field) castLiteral(v any) (any, error) {
	return f.CastValueWith(v, NoConstraints)
}

// Name returns the field name.
func (f *Field) Name() string { return f.desc.Name }

// Type returns the resolved logical type.
func (f *Field) Type() Type { return f.typ }

// Format returns the format token, "default" when none was declared.
func (f *Field) Format() string { return f.desc.Format }

// Descriptor returns a copy of the expanded descriptor.
func (f *Field) Descriptor() Descriptor { return f.desc.Expand() }

// Constraints returns the declared constraints in declaration order.
func (f *Field) Constraints() Constraints { return append(Constraints(nil), f.desc.Constraints...) }

// Required reports whether the field declares required: true.
func (f *Field) Required() bool {
	v, _ := f.desc.Constraints.Get("required")
	b, _ := v.(bool)
	return b
}

// MissingValues returns the sentinels treated as absent values.
func (f *Field) MissingValues() MissingValues { return append(MissingValues(nil), f.missing...) }

// CastValue casts raw and evaluates every declared constraint. A missing
// value yields nil and is still subject to required.
func (f *Field) CastValue(raw any) (any, error) {
	return f.CastValueWith(raw, AllConstraints)
}

// CastValueWith is CastValue restricted to the constraints chosen by sel.
// The first failing constraint in declaration order is reported.
func (f *Field) CastValueWith(raw any, sel Selector) (any, error) {
	var typed any
	if !f.missing.IsMissing(raw) {
		v, err := cast.Cast(f.typ, f.opts, raw)
		if err != nil {
			return nil, &CastError{
				Field:  f.desc.Name,
				Type:   f.desc.Type,
				Format: f.desc.Format,
				Value:  raw,
				Cause:  err,
			}
		}
		typed = v
	}
	for _, c := range f.checks {
		if !sel.includes(c.name) {
			continue
		}
		ok, err := constraint.Check(c.kind, c.bound, typed)
		if err != nil || !ok {
			return nil, &ConstraintError{Field: f.desc.Name, Constraint: c.name, Value: typed, Cause: err}
		}
	}
	return typed, nil
}

// TestValue reports whether raw casts and satisfies every constraint.
func (f *Field) TestValue(raw any) bool {
	return f.TestValueWith(raw, AllConstraints)
}

// TestValueWith reports whether raw casts and satisfies the constraints
// chosen by sel.
func (f *Field) TestValueWith(raw any, sel Selector) bool {
	_, err := f.CastValueWith(raw, sel)
	return err == nil
}

// pattern exposes the compiled pattern constraint, if any.
func (f *Field) pattern() *regexp.Regexp {
	for _, c := range f.checks {
		if c.kind == constraint.Pattern {
			re, _ := c.bound.(*regexp.Regexp)
			return re
		}
	}
	return nil
}
