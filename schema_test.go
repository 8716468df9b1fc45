package tableschema_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ts "github.com/reoring/tableschema"
)

func baseSchema() ts.SchemaDescriptor {
	req := ts.Constraints{{Name: "required", Value: true}}
	return ts.SchemaDescriptor{
		Fields: []ts.Descriptor{
			{Name: "id", Type: "string", Constraints: req},
			{Name: "height", Type: "number"},
			{Name: "age", Type: "integer"},
			{Name: "name", Type: "string", Constraints: req},
			{Name: "occupation", Type: "string"},
		},
		PrimaryKey: ts.Keys{"id"},
	}
}

func issueCodes(t *testing.T, err error) []string {
	t.Helper()
	iss, ok := ts.AsIssues(err)
	require.True(t, ok, "expected Issues, got %v", err)
	codes := make([]string, len(iss))
	for i, it := range iss {
		codes[i] = it.Code
	}
	return codes
}

func TestSchemaValidate_Valid(t *testing.T) {
	assert.NoError(t, baseSchema().Validate())
}

func TestSchemaValidate_NoFields(t *testing.T) {
	err := ts.SchemaDescriptor{}.Validate()
	assert.Equal(t, []string{ts.CodeSchemaNoField}, issueCodes(t, err))
}

func TestSchemaValidate_FieldProblems(t *testing.T) {
	d := ts.SchemaDescriptor{Fields: []ts.Descriptor{
		{Name: "id", Type: "number"},
		{Type: "number"},
		{Name: "id", Type: "string"},
		{Name: "bad", Type: "string", Constraints: ts.Constraints{{Name: "required", Value: "string"}}},
		{Name: "weird", Type: "decimal"},
	}}
	codes := issueCodes(t, d.Validate())
	assert.Equal(t, []string{
		ts.CodeSchemaFieldName,
		ts.CodeSchemaDuplicate,
		ts.CodeSchemaFieldInvalid,
		ts.CodeSchemaFieldInvalid,
	}, codes)
}

func TestSchemaValidate_PrimaryKey(t *testing.T) {
	d := baseSchema()
	d.PrimaryKey = ts.Keys{"id", "unknown"}
	err := d.Validate()
	assert.Equal(t, []string{ts.CodeSchemaPrimaryKey}, issueCodes(t, err))
	iss, _ := ts.AsIssues(err)
	assert.Equal(t, "/primaryKey/1", iss[0].Path)
}

func TestSchemaValidate_ForeignKeys(t *testing.T) {
	t.Run("no fields", func(t *testing.T) {
		d := baseSchema()
		d.ForeignKeys = []ts.ForeignKey{{}, {}}
		assert.Len(t, issueCodes(t, d.Validate()), 2)
	})
	t.Run("fields must exist", func(t *testing.T) {
		d := baseSchema()
		d.ForeignKeys = []ts.ForeignKey{
			{Fields: ts.Keys{"unknown"}, Reference: ts.Reference{Resource: "other", Fields: ts.Keys{"id"}}},
			{Fields: ts.Keys{"id", "missing"}, Reference: ts.Reference{Resource: "other", Fields: ts.Keys{"a", "b"}}},
		}
		assert.Equal(t, []string{ts.CodeSchemaForeignKey, ts.CodeSchemaForeignKey}, issueCodes(t, d.Validate()))
	})
	t.Run("reference arity", func(t *testing.T) {
		d := baseSchema()
		d.ForeignKeys = []ts.ForeignKey{
			{Fields: ts.Keys{"id", "name"}, Reference: ts.Reference{Resource: "other", Fields: ts.Keys{"id"}}},
		}
		assert.Equal(t, []string{ts.CodeSchemaReferenceSize}, issueCodes(t, d.Validate()))
	})
	t.Run("self reference", func(t *testing.T) {
		d := baseSchema()
		d.ForeignKeys = []ts.ForeignKey{
			{Fields: ts.Keys{"name"}, Reference: ts.Reference{Fields: ts.Keys{"id"}}},
			{Fields: ts.Keys{"name"}, Reference: ts.Reference{Fields: ts.Keys{"nope"}}},
		}
		err := d.Validate()
		assert.Equal(t, []string{ts.CodeSchemaForeignKey}, issueCodes(t, err))
		iss, _ := ts.AsIssues(err)
		assert.Equal(t, "/foreignKeys/1/reference/fields/0", iss[0].Path)
	})
}

func TestNewSchema_RejectsInvalid(t *testing.T) {
	_, err := ts.NewSchema(ts.SchemaDescriptor{})
	assert.Error(t, err)
}

func TestSchema_CastRow(t *testing.T) {
	s, err := ts.NewSchema(baseSchema())
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "height", "age", "name", "occupation"}, s.FieldNames())
	assert.Equal(t, []string{"id"}, s.PrimaryKey())

	row, err := s.CastRow([]any{"1", "10.5", "42", "John", ""})
	require.NoError(t, err)
	assert.Equal(t, []any{"1", 10.5, int64(42), "John", nil}, row)

	_, err = s.CastRow([]any{"", "x", "42", "John", ""})
	iss, ok := ts.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 2)
	assert.Equal(t, "/id", iss[0].Path)
	assert.Equal(t, ts.CodeRequired, iss[0].Code)
	assert.Equal(t, "/height", iss[1].Path)
	assert.Equal(t, ts.CodeCast, iss[1].Code)

	_, err = s.CastRow([]any{"1"})
	assert.Equal(t, []string{ts.CodeRowLength}, issueCodes(t, err))

	f, ok := s.Field("age")
	require.True(t, ok)
	assert.Equal(t, ts.TypeInteger, f.Type())
	_, ok = s.Field("nope")
	assert.False(t, ok)
}

func TestSchema_MissingValues(t *testing.T) {
	d := baseSchema()
	d.MissingValues = []string{"NA"}
	s, err := ts.NewSchema(d)
	require.NoError(t, err)
	row, err := s.CastRow([]any{"1", "NA", "NA", "John", ""})
	require.NoError(t, err)
	assert.Equal(t, []any{"1", nil, nil, "John", ""}, row)
}

const schemaJSON = `{
  "fields": [
    {"name": "id", "type": "integer", "constraints": {"required": true, "minimum": "1", "maximum": 100}},
    {"name": "price", "type": "number", "decimalChar": ",", "groupChar": ".", "currency": true},
    {"name": "when", "type": "date", "format": "%d/%m/%Y"}
  ],
  "primaryKey": "id",
  "missingValues": ["", "n/a"]
}`

const schemaYAML = `
fields:
  - name: id
    type: integer
    constraints:
      required: true
      minimum: "1"
      maximum: 100
  - name: price
    type: number
    decimalChar: ","
    groupChar: "."
    currency: true
  - name: when
    type: date
    format: "%d/%m/%Y"
primaryKey: id
missingValues: ["", "n/a"]
`

func TestLoadSchema_JSONAndYAML(t *testing.T) {
	fromJSON, err := ts.LoadSchema(strings.NewReader(schemaJSON))
	require.NoError(t, err)
	fromYAML, err := ts.LoadSchemaYAML(strings.NewReader(schemaYAML))
	require.NoError(t, err)

	for name, s := range map[string]*ts.Schema{"json": fromJSON, "yaml": fromYAML} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, []string{"id"}, s.PrimaryKey())
			f, _ := s.Field("id")
			names := []string{}
			for _, c := range f.Constraints() {
				names = append(names, c.Name)
			}
			assert.Equal(t, []string{"required", "minimum", "maximum"}, names)

			row, err := s.CastRow([]any{"7", "€1.234,50", "21/11/2006"})
			require.NoError(t, err)
			assert.Equal(t, int64(7), row[0])
			assert.Equal(t, 1234.5, row[1])
			assert.True(t, row[2].(time.Time).Equal(time.Date(2006, 11, 21, 0, 0, 0, 0, time.UTC)))

			row, err = s.CastRow([]any{"8", "n/a", "n/a"})
			require.NoError(t, err)
			assert.Equal(t, []any{int64(8), nil, nil}, row)

			_, err = s.CastRow([]any{"0", "", ""})
			assert.Equal(t, []string{ts.CodeTooSmall}, issueCodes(t, err))
		})
	}
}

func TestLoadSchema_MemberShapeProblems(t *testing.T) {
	const doc = `{
  "fields": [
    {"name": "id", "type": "integer", "constraints": "required"},
    {"name": "name", "constraints": ["minLength"]},
    {"name": "ok", "constraints": {"required": true}}
  ],
  "primaryKey": {"id": true}
}`
	const docYAML = `
fields:
  - name: id
    type: integer
    constraints: required
  - name: name
    constraints: [minLength]
  - name: ok
    constraints:
      required: true
primaryKey:
  id: true
`
	want := []string{
		"/primaryKey " + ts.CodeSchemaKeys,
		"/fields/0/constraints " + ts.CodeSchemaConstraints,
		"/fields/1/constraints " + ts.CodeSchemaConstraints,
	}
	load := map[string]func() (*ts.Schema, error){
		"json": func() (*ts.Schema, error) { return ts.LoadSchema(strings.NewReader(doc)) },
		"yaml": func() (*ts.Schema, error) { return ts.LoadSchemaYAML(strings.NewReader(docYAML)) },
	}
	for name, fn := range load {
		t.Run(name, func(t *testing.T) {
			_, err := fn()
			iss, ok := ts.AsIssues(err)
			require.True(t, ok, "expected Issues, got %v", err)
			got := make([]string, len(iss))
			for i, it := range iss {
				got[i] = it.Path + " " + it.Code
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestDescriptor_BadConstraintsRejectedByNewField(t *testing.T) {
	var d ts.Descriptor
	require.NoError(t, json.Unmarshal([]byte(`{"name": "x", "constraints": 5}`), &d))
	_, err := ts.NewField(d)
	assert.ErrorIs(t, err, ts.ErrInvalidConstraint)

	require.NoError(t, json.Unmarshal([]byte(`{"name": "x", "constraints": null}`), &d))
	_, err = ts.NewField(d)
	assert.NoError(t, err)
}

func TestLoadSchemaFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "schema.json")
	yamlPath := filepath.Join(dir, "schema.yml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(schemaJSON), 0o644))
	require.NoError(t, os.WriteFile(yamlPath, []byte(schemaYAML), 0o644))

	for _, p := range []string{jsonPath, yamlPath} {
		s, err := ts.LoadSchemaFile(p)
		require.NoError(t, err, p)
		assert.Len(t, s.Fields(), 3)
	}

	_, err := ts.LoadSchemaFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestKeys_Unmarshal(t *testing.T) {
	var fk ts.ForeignKey
	require.NoError(t, json.Unmarshal([]byte(`{"fields": "a", "reference": {"resource": "", "fields": ["b"]}}`), &fk))
	assert.Equal(t, ts.Keys{"a"}, fk.Fields)
	assert.Equal(t, ts.Keys{"b"}, fk.Reference.Fields)

	var k ts.Keys
	assert.Error(t, json.Unmarshal([]byte(`{"some": "thing"}`), &k))
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &k))
}

func TestConstraints_JSONOrder(t *testing.T) {
	var cs ts.Constraints
	require.NoError(t, json.Unmarshal([]byte(`{"pattern": "a+", "required": true, "enum": ["a", "aa"]}`), &cs))
	require.Len(t, cs, 3)
	assert.Equal(t, "pattern", cs[0].Name)
	assert.Equal(t, "required", cs[1].Name)
	assert.Equal(t, []any{"a", "aa"}, cs[2].Value)

	v, ok := cs.Get("required")
	assert.True(t, ok)
	assert.Equal(t, true, v)

	out, err := json.Marshal(cs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pattern": "a+", "required": true, "enum": ["a", "aa"]}`, string(out))
	assert.True(t, strings.HasPrefix(string(out), `{"pattern"`))

	assert.Error(t, json.Unmarshal([]byte(`"string"`), &cs))
}
