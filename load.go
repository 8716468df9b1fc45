package tableschema

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// LoadSchema decodes a JSON schema document and builds the Schema.
func LoadSchema(r io.Reader, opts ...FieldOption) (*Schema, error) {
	var d SchemaDescriptor
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding schema json: %w", err)
	}
	return NewSchema(d, opts...)
}

// LoadSchemaYAML decodes a YAML schema document and builds the Schema.
func LoadSchemaYAML(r io.Reader, opts ...FieldOption) (*Schema, error) {
	var d SchemaDescriptor
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding schema yaml: %w", err)
	}
	return NewSchema(d, opts...)
}

// ReadSchemaDescriptor reads a schema document from path without building
// it. Files ending in .yaml or .yml are read as YAML, anything else as JSON.
func ReadSchemaDescriptor(path string) (SchemaDescriptor, error) {
	var d SchemaDescriptor
	f, err := os.Open(path)
	if err != nil {
		return d, fmt.Errorf("opening schema: %w", err)
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.NewDecoder(f).Decode(&d)
	default:
		err = json.NewDecoder(f).Decode(&d)
	}
	if err != nil {
		return d, fmt.Errorf("decoding schema %s: %w", path, err)
	}
	return d, nil
}

// LoadSchemaFile reads and builds the schema stored at path.
func LoadSchemaFile(path string, opts ...FieldOption) (*Schema, error) {
	d, err := ReadSchemaDescriptor(path)
	if err != nil {
		return nil, err
	}
	return NewSchema(d, opts...)
}
