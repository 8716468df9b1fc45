// Package constraint implements the predicates behind field constraints.
// Checkers receive an already bound constraint value (cast to the field's
// representation, or compiled) and a typed value.
package constraint

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/reoring/tableschema/value"
)

// Kind enumerates the supported constraints.
type Kind int

const (
	Required Kind = iota
	Unique
	MinLength
	MaxLength
	Minimum
	Maximum
	Pattern
	Enum
)

var kindNames = [...]string{
	Required:  "required",
	Unique:    "unique",
	MinLength: "minLength",
	MaxLength: "maxLength",
	Minimum:   "minimum",
	Maximum:   "maximum",
	Pattern:   "pattern",
	Enum:      "enum",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ErrUnknownKind is returned for constraint names outside the closed set.
var ErrUnknownKind = errors.New("constraint: unknown constraint")

// ErrBound is returned when a bound value has the wrong shape for its kind.
var ErrBound = errors.New("constraint: invalid bound value")

// TypeSensitive reports whether the declared value of k must be cast through
// the field's type before binding.
func (k Kind) TypeSensitive() bool {
	return k == Minimum || k == Maximum || k == Enum
}

// ParseKind resolves a constraint name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Compile prepares an anchored regular expression for the pattern checker.
func Compile(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + pattern + `)$`)
}

// Check evaluates constraint kind with its bound value against v. A nil v
// passes every constraint except required. The error return signals a
// checker that cannot evaluate v, such as a length test on a number.
//
// Bound value shapes: bool for required/unique, int for minLength/maxLength,
// a typed value for minimum/maximum, *regexp.Regexp for pattern and []any of
// typed values for enum.
func Check(kind Kind, bound, v any) (bool, error) {
	if kind == Required {
		req, ok := bound.(bool)
		if !ok {
			return false, boundErr(kind, bound)
		}
		return !req || v != nil, nil
	}
	if v == nil {
		return true, nil
	}
	switch kind {
	case Unique:
		// uniqueness spans rows; a single value always passes
		return true, nil
	case MinLength, MaxLength:
		limit, ok := bound.(int)
		if !ok {
			return false, boundErr(kind, bound)
		}
		n, err := value.Len(v)
		if err != nil {
			return false, err
		}
		if kind == MinLength {
			return n >= limit, nil
		}
		return n <= limit, nil
	case Minimum, Maximum:
		c, err := value.Compare(v, bound)
		if err != nil {
			return false, err
		}
		if kind == Minimum {
			return c >= 0, nil
		}
		return c <= 0, nil
	case Pattern:
		re, ok := bound.(*regexp.Regexp)
		if !ok {
			return false, boundErr(kind, bound)
		}
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprint(v)
		}
		return re.MatchString(s), nil
	case Enum:
		members, ok := bound.([]any)
		if !ok {
			return false, boundErr(kind, bound)
		}
		for _, m := range members {
			if value.Equal(v, m) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
}

func boundErr(kind Kind, bound any) error {
	return fmt.Errorf("%w: %s got %T", ErrBound, kind, bound)
}
