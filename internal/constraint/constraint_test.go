package constraint

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/tableschema/value"
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind("minLength")
	require.NoError(t, err)
	assert.Equal(t, MinLength, k)
	assert.Equal(t, "minLength", k.String())
	assert.False(t, k.TypeSensitive())
	assert.True(t, Enum.TypeSensitive())

	_, err = ParseKind("exclusiveMinimum")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestCheck(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2020, 1, d, 0, 0, 0, 0, time.UTC) }
	tests := []struct {
		name  string
		kind  Kind
		bound any
		v     any
		want  bool
	}{
		{"required present", Required, true, "x", true},
		{"required nil", Required, true, nil, false},
		{"not required nil", Required, false, nil, true},
		{"unique", Unique, true, "x", true},
		{"minLength ok", MinLength, 2, "ab", true},
		{"minLength short", MinLength, 3, "ab", false},
		{"minLength runes", MinLength, 2, "éé", true},
		{"maxLength array", MaxLength, 1, []any{1, 2}, false},
		{"maxLength object", MaxLength, 2, map[string]any{"a": 1}, true},
		{"minimum int", Minimum, int64(10), int64(15), true},
		{"minimum int fail", Minimum, int64(10), int64(5), false},
		{"maximum float", Maximum, 1.5, 1.5, true},
		{"maximum date", Maximum, day(2), day(3), false},
		{"minimum duration", Minimum, value.Duration{Days: 1}, value.Duration{Hours: 25}, true},
		{"maximum yearmonth", Maximum, value.YearMonth{Year: 2000, Month: 6}, value.YearMonth{Year: 2000, Month: 7}, false},
		{"pattern", Pattern, regexp.MustCompile(`^(?:[a-c]+)$`), "abc", true},
		{"pattern partial", Pattern, regexp.MustCompile(`^(?:[a-c]+)$`), "abcd", false},
		{"enum hit", Enum, []any{"a", "b"}, "a", true},
		{"enum miss", Enum, []any{"a", "b"}, "c", false},
		{"enum deep", Enum, []any{[]any{1.0}}, []any{1.0}, true},
		{"nil passes minimum", Minimum, int64(1), nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Check(tt.kind, tt.bound, tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheck_Errors(t *testing.T) {
	_, err := Check(MinLength, 1, 42.0)
	assert.ErrorIs(t, err, value.ErrNoLength)

	_, err = Check(Maximum, "a", 1.0)
	assert.ErrorIs(t, err, value.ErrIncomparable)

	_, err = Check(Required, "yes", "x")
	assert.ErrorIs(t, err, ErrBound)

	_, err = Check(Kind(42), nil, "x")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestCompile(t *testing.T) {
	re, err := Compile(`a|b`)
	require.NoError(t, err)
	assert.True(t, re.MatchString("a"))
	assert.False(t, re.MatchString("ab"))

	_, err = Compile(`(`)
	assert.Error(t, err)
}
