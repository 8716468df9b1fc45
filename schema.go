package tableschema

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/tableschema/i18n"
	js "github.com/reoring/tableschema/jsonschema"
)

// SchemaDescriptor is a table schema document.
type SchemaDescriptor struct {
	Fields      []Descriptor `json:"fields" yaml:"fields"`
	PrimaryKey  Keys         `json:"primaryKey,omitempty" yaml:"primaryKey,omitempty"`
	ForeignKeys []ForeignKey `json:"foreignKeys,omitempty" yaml:"foreignKeys,omitempty"`
	// MissingValues overrides DefaultMissingValues when non-nil. An empty,
	// non-nil list disables missing-value detection.
	MissingValues []string `json:"missingValues,omitempty" yaml:"missingValues,omitempty"`

	problems []problem
}

// schemaDoc mirrors SchemaDescriptor with the primary key left undecoded.
type schemaDoc struct {
	Fields        []Descriptor `json:"fields" yaml:"fields"`
	ForeignKeys   []ForeignKey `json:"foreignKeys,omitempty" yaml:"foreignKeys,omitempty"`
	MissingValues []string     `json:"missingValues,omitempty" yaml:"missingValues,omitempty"`
}

func (doc schemaDoc) descriptor() SchemaDescriptor {
	return SchemaDescriptor{Fields: doc.Fields, ForeignKeys: doc.ForeignKeys, MissingValues: doc.MissingValues}
}

func (d *SchemaDescriptor) setPrimaryKey(v any) {
	keys, err := keysFrom(v)
	if err != nil {
		d.problems = append(d.problems, problem{member: "primaryKey", code: CodeSchemaKeys, err: err})
		return
	}
	d.PrimaryKey = keys
}

// UnmarshalJSON decodes a schema document. A primary key of the wrong shape
// is recorded as a problem and reported by Validate.
func (d *SchemaDescriptor) UnmarshalJSON(data []byte) error {
	var doc struct {
		schemaDoc
		PrimaryKey any `json:"primaryKey,omitempty"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	out := doc.schemaDoc.descriptor()
	out.setPrimaryKey(doc.PrimaryKey)
	*d = out
	return nil
}

// UnmarshalYAML is the YAML counterpart of UnmarshalJSON.
func (d *SchemaDescriptor) UnmarshalYAML(node *yaml.Node) error {
	var doc struct {
		schemaDoc  `yaml:",inline"`
		PrimaryKey any `yaml:"primaryKey,omitempty"`
	}
	if err := node.Decode(&doc); err != nil {
		return err
	}
	out := doc.schemaDoc.descriptor()
	out.setPrimaryKey(doc.PrimaryKey)
	*d = out
	return nil
}

// ForeignKey links local fields to fields of a referenced resource. An empty
// resource refers to the schema itself.
type ForeignKey struct {
	Fields    Keys      `json:"fields" yaml:"fields"`
	Reference Reference `json:"reference" yaml:"reference"`
}

// Reference is the target side of a foreign key.
type Reference struct {
	Resource string `json:"resource" yaml:"resource"`
	Fields   Keys   `json:"fields" yaml:"fields"`
}

// Keys is a list of field names; a single name may be written as a string.
type Keys []string

var errKeys = errors.New("tableschema: keys must be a string or a list of strings")

// UnmarshalJSON accepts a string or an array of strings.
func (k *Keys) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	keys, err := keysFrom(v)
	if err != nil {
		return err
	}
	*k = keys
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (k *Keys) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	keys, err := keysFrom(v)
	if err != nil {
		return err
	}
	*k = keys
	return nil
}

func keysFrom(v any) (Keys, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return Keys{x}, nil
	case []any:
		out := make(Keys, 0, len(x))
		for _, e := range x {
			s, ok := e.(string)
			if !ok {
				return nil, errKeys
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, errKeys
}

// Validate checks the structure of the schema document: field descriptors
// must be well formed and bindable, and primary and foreign keys must
// reference declared fields with matching arity. All problems are returned
// together as Issues.
func (d SchemaDescriptor) Validate() error {
	var iss Issues
	if len(d.Fields) == 0 {
		iss = AppendIssues(iss, schemaIssue("/fields", CodeSchemaNoField, nil))
	}
	for _, p := range d.problems {
		iss = AppendIssues(iss, problemIssue("", p, nil))
	}
	names := make(map[string]bool, len(d.Fields))
	for i, fd := range d.Fields {
		path := "/fields/" + strconv.Itoa(i)
		if fd.Name == "" {
			iss = AppendIssues(iss, schemaIssue(path+"/name", CodeSchemaFieldName, nil))
			continue
		}
		if names[fd.Name] {
			iss = AppendIssues(iss, schemaIssue(path+"/name", CodeSchemaDuplicate, map[string]any{"name": fd.Name}))
		}
		names[fd.Name] = true
		if len(fd.problems) > 0 {
			for _, p := range fd.problems {
				iss = AppendIssues(iss, problemIssue(path, p, map[string]any{"name": fd.Name}))
			}
			continue
		}
		if _, err := NewField(fd); err != nil {
			it := schemaIssue(path, CodeSchemaFieldInvalid, map[string]any{"name": fd.Name})
			it.Cause = err
			iss = AppendIssues(iss, it)
		}
	}
	for i, name := range d.PrimaryKey {
		if !names[name] {
			iss = AppendIssues(iss, schemaIssue(fmt.Sprintf("/primaryKey/%d", i), CodeSchemaPrimaryKey, map[string]any{"name": name}))
		}
	}
	for i, fk := range d.ForeignKeys {
		path := fmt.Sprintf("/foreignKeys/%d", i)
		if len(fk.Fields) == 0 {
			iss = AppendIssues(iss, schemaIssue(path+"/fields", CodeSchemaForeignKey, nil))
			continue
		}
		for j, name := range fk.Fields {
			if !names[name] {
				iss = AppendIssues(iss, schemaIssue(fmt.Sprintf("%s/fields/%d", path, j), CodeSchemaForeignKey, map[string]any{"name": name}))
			}
		}
		if len(fk.Reference.Fields) != len(fk.Fields) {
			iss = AppendIssues(iss, schemaIssue(path+"/reference/fields", CodeSchemaReferenceSize,
				map[string]any{"fields": len(fk.Fields), "reference": len(fk.Reference.Fields)}))
		}
		if fk.Reference.Resource == "" {
			for j, name := range fk.Reference.Fields {
				if !names[name] {
					iss = AppendIssues(iss, schemaIssue(fmt.Sprintf("%s/reference/fields/%d", path, j), CodeSchemaForeignKey, map[string]any{"name": name}))
				}
			}
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func problemIssue(prefix string, p problem, params map[string]any) Issue {
	if params == nil {
		params = map[string]any{}
	}
	params["member"] = p.member
	it := schemaIssue(prefix+"/"+p.member, p.code, params)
	it.Cause = p.err
	return it
}

func schemaIssue(path, code string, params map[string]any) Issue {
	data := map[string]string{}
	for k, v := range params {
		data[k] = fmt.Sprint(v)
	}
	return Issue{Path: path, Code: code, Message: i18n.T(code, data), Params: params}
}

// Schema is a validated schema document with one Field per column.
type Schema struct {
	desc   SchemaDescriptor
	fields []*Field
	index  map[string]int
}

// NewSchema validates d and builds its fields. Fields share the document's
// missing values unless opts override them.
func NewSchema(d SchemaDescriptor, opts ...FieldOption) (*Schema, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if d.MissingValues != nil {
		opts = append([]FieldOption{WithMissingValues(d.MissingValues...)}, opts...)
	}
	s := &Schema{desc: d, index: make(map[string]int, len(d.Fields))}
	for i, fd := range d.Fields {
		f, err := NewField(fd, opts...)
		if err != nil {
			return nil, err
		}
		s.fields = append(s.fields, f)
		s.index[fd.Name] = i
	}
	return s, nil
}

// Descriptor returns the schema document.
func (s *Schema) Descriptor() SchemaDescriptor { return s.desc }

// Fields returns the fields in column order.
func (s *Schema) Fields() []*Field { return append([]*Field(nil), s.fields...) }

// Field looks a field up by name.
func (s *Schema) Field(name string) (*Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// FieldNames returns the field names in column order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name()
	}
	return names
}

// PrimaryKey returns the primary key field names.
func (s *Schema) PrimaryKey() []string { return append([]string(nil), s.desc.PrimaryKey...) }

// CastRow casts one row, cell i through field i. Every failing cell is
// reported; on any failure the row is discarded and Issues are returned.
func (s *Schema) CastRow(row []any) ([]any, error) {
	if len(row) != len(s.fields) {
		return nil, Issues{{
			Path:    "/",
			Code:    CodeRowLength,
			Message: i18n.T(CodeRowLength, nil),
			Params:  map[string]any{"want": len(s.fields), "got": len(row)},
		}}
	}
	out := make([]any, len(row))
	var iss Issues
	for i, f := range s.fields {
		v, err := f.CastValue(row[i])
		if err != nil {
			iss = AppendIssues(iss, IssueOf(err))
			continue
		}
		out[i] = v
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// JSONSchema projects a row, keyed by field name, into JSON Schema.
func (s *Schema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "object", Properties: map[string]*js.Schema{}, AdditionalProperties: false}
	for _, f := range s.fields {
		fs, err := f.JSONSchema()
		if err != nil {
			return nil, err
		}
		out.Properties[f.Name()] = fs
		if f.Required() {
			out.Required = append(out.Required, f.Name())
		}
	}
	return out, nil
}
