package tableschema_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ts "github.com/reoring/tableschema"
)

func TestField_JSONSchema(t *testing.T) {
	f := mustField(t, ts.Descriptor{Name: "code", Title: "Code", Constraints: ts.Constraints{
		{Name: "required", Value: true},
		{Name: "minLength", Value: 2},
		{Name: "pattern", Value: "[A-Z]+"},
		{Name: "enum", Value: []any{"AB", "CD"}},
	}})
	s, err := f.JSONSchema()
	require.NoError(t, err)
	assert.Equal(t, "string", s.Type)
	assert.Equal(t, "Code", s.Title)
	require.NotNil(t, s.MinLength)
	assert.Equal(t, 2, *s.MinLength)
	assert.Equal(t, "^(?:[A-Z]+)$", s.Pattern)
	assert.Equal(t, []any{"AB", "CD"}, s.Enum)
}

func TestField_JSONSchema_NullableAndBounds(t *testing.T) {
	f := mustField(t, ts.Descriptor{Name: "d", Type: "date", Constraints: ts.Constraints{
		{Name: "minimum", Value: "2020-01-01"},
	}})
	s, err := f.JSONSchema()
	require.NoError(t, err)
	assert.Equal(t, []string{"string", "null"}, s.Type)
	assert.Equal(t, "date", s.Format)
	assert.Equal(t, "2020-01-01", s.Minimum)

	tags := mustField(t, ts.Descriptor{Name: "tags", Type: "array", Constraints: ts.Constraints{{Name: "maxLength", Value: 3}}})
	s, err = tags.JSONSchema()
	require.NoError(t, err)
	require.NotNil(t, s.MaxItems)
	assert.Equal(t, 3, *s.MaxItems)
	assert.Nil(t, s.MaxLength)
}

func TestSchema_JSONSchema(t *testing.T) {
	s, err := ts.NewSchema(baseSchema())
	require.NoError(t, err)
	js, err := s.JSONSchema()
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, js.Required)
	assert.Len(t, js.Properties, 5)

	out, err := json.Marshal(js)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"required":["id","name"]`)
	assert.Contains(t, string(out), `"age":{"type":["integer","null"]}`)
}

func TestSchema_RowObject(t *testing.T) {
	s, err := ts.NewSchema(ts.SchemaDescriptor{Fields: []ts.Descriptor{
		{Name: "n", Type: "number"},
		{Name: "d", Type: "date"},
		{Name: "p", Type: "duration"},
		{Name: "g", Type: "geopoint"},
	}})
	require.NoError(t, err)
	row, err := s.CastRow([]any{"NaN", "2020-01-02", "P1DT2H", "10,20"})
	require.NoError(t, err)

	obj := s.RowObject(row)
	assert.Equal(t, map[string]any{
		"n": "NaN",
		"d": "2020-01-02",
		"p": "P1DT2H",
		"g": []any{10.0, 20.0},
	}, obj)

	_, err = json.Marshal(obj)
	require.NoError(t, err)
}
