package tableschema

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Descriptor describes one field of a table schema. Type-specific options
// (decimalChar, groupChar, currency) sit alongside type and format.
type Descriptor struct {
	Name        string      `json:"name" yaml:"name"`
	Title       string      `json:"title,omitempty" yaml:"title,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string      `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string      `json:"format,omitempty" yaml:"format,omitempty"`
	Constraints Constraints `json:"constraints,omitempty" yaml:"constraints,omitempty"`

	DecimalChar string `json:"decimalChar,omitempty" yaml:"decimalChar,omitempty"`
	GroupChar   string `json:"groupChar,omitempty" yaml:"groupChar,omitempty"`
	Currency    bool   `json:"currency,omitempty" yaml:"currency,omitempty"`

	// problems records members that decoded to the wrong shape. They are
	// reported by SchemaDescriptor.Validate and rejected by NewField.
	problems []problem
}

// problem is a document member that could not be decoded into its Go shape.
type problem struct {
	member string
	code   string
	err    error
}

// descriptorDoc mirrors Descriptor with constraints left undecoded.
type descriptorDoc struct {
	Name        string `json:"name" yaml:"name"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string `json:"format,omitempty" yaml:"format,omitempty"`
	DecimalChar string `json:"decimalChar,omitempty" yaml:"decimalChar,omitempty"`
	GroupChar   string `json:"groupChar,omitempty" yaml:"groupChar,omitempty"`
	Currency    bool   `json:"currency,omitempty" yaml:"currency,omitempty"`
}

func (doc descriptorDoc) descriptor() Descriptor {
	return Descriptor{
		Name:        doc.Name,
		Title:       doc.Title,
		Description: doc.Description,
		Type:        doc.Type,
		Format:      doc.Format,
		DecimalChar: doc.DecimalChar,
		GroupChar:   doc.GroupChar,
		Currency:    doc.Currency,
	}
}

// UnmarshalJSON decodes a field descriptor. Constraints that are not an
// object are recorded as a problem instead of failing the whole document.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var doc struct {
		descriptorDoc
		Constraints json.RawMessage `json:"constraints,omitempty"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	out := doc.descriptorDoc.descriptor()
	if raw := bytes.TrimSpace(doc.Constraints); len(raw) > 0 {
		err := out.Constraints.UnmarshalJSON(raw)
		switch {
		case errors.Is(err, errConstraintsObject):
			out.problems = append(out.problems, problem{member: "constraints", code: CodeSchemaConstraints, err: err})
		case err != nil:
			return err
		}
	}
	*d = out
	return nil
}

// UnmarshalYAML is the YAML counterpart of UnmarshalJSON.
func (d *Descriptor) UnmarshalYAML(node *yaml.Node) error {
	var doc struct {
		descriptorDoc `yaml:",inline"`
		Constraints   yaml.Node `yaml:"constraints,omitempty"`
	}
	if err := node.Decode(&doc); err != nil {
		return err
	}
	out := doc.descriptorDoc.descriptor()
	if c := &doc.Constraints; c.Kind != 0 && c.Tag != "!!null" {
		err := out.Constraints.UnmarshalYAML(c)
		switch {
		case errors.Is(err, errConstraintsObject):
			out.problems = append(out.problems, problem{member: "constraints", code: CodeSchemaConstraints, err: err})
		case err != nil:
			return err
		}
	}
	*d = out
	return nil
}

// Expand returns a copy of d with the shorthand defaults filled in: type
// "string" and format "default".
func (d Descriptor) Expand() Descriptor {
	if d.Type == "" {
		d.Type = "string"
	}
	if d.Format == "" {
		d.Format = DefaultFormat
	}
	d.Constraints = append(Constraints(nil), d.Constraints...)
	return d
}

// Constraint is one declared constraint.
type Constraint struct {
	Name  string
	Value any
}

// Constraints keeps declared constraints in declaration order.
type Constraints []Constraint

// Get returns the value declared for name.
func (cs Constraints) Get(name string) (any, bool) {
	for _, c := range cs {
		if c.Name == name {
			return c.Value, true
		}
	}
	return nil, false
}

var errConstraintsObject = errors.New("tableschema: constraints must be an object")

// UnmarshalJSON decodes a JSON object while preserving key order.
func (cs *Constraints) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*cs = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errConstraintsObject
	}
	out := Constraints{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return errConstraintsObject
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("constraint %q: %w", name, err)
		}
		out = append(out, Constraint{Name: name, Value: v})
	}
	*cs = out
	return nil
}

// MarshalJSON encodes the constraints as an object in declaration order.
func (cs Constraints) MarshalJSON() ([]byte, error) {
	b := &bytes.Buffer{}
	b.WriteByte('{')
	for i, c := range cs {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c.Value)
		if err != nil {
			return nil, fmt.Errorf("constraint %q: %w", c.Name, err)
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalYAML decodes a YAML mapping while preserving key order.
func (cs *Constraints) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errConstraintsObject
	}
	out := make(Constraints, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var v any
		if err := node.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("constraint %q: %w", name, err)
		}
		out = append(out, Constraint{Name: name, Value: v})
	}
	*cs = out
	return nil
}
