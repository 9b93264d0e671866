// Package schemafile loads field definitions from YAML or JSON documents so
// forms can be declared in data files instead of code. Labels, placeholders,
// and help text are sanitized before use since schema documents often travel
// with user-editable content.
package schemafile

import (
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/devhubhq/go-formkit/pkg/model"
)

type document struct {
	Fields []fieldEntry `yaml:"fields"`
}

type fieldEntry struct {
	Name        string            `yaml:"name"`
	Label       string            `yaml:"label"`
	Kind        string            `yaml:"kind"`
	Placeholder string            `yaml:"placeholder"`
	Help        string            `yaml:"help"`
	Options     []model.Option    `yaml:"options"`
	Rule        ruleEntry         `yaml:"rule"`
	Metadata    map[string]string `yaml:"metadata"`
}

type ruleEntry struct {
	Required  bool   `yaml:"required"`
	MinLength *int   `yaml:"minLength"`
	MaxLength *int   `yaml:"maxLength"`
	Pattern   string `yaml:"pattern"`
	Message   string `yaml:"message"`
}

// Load parses a schema document from r. YAML is a superset of JSON, so both
// formats are accepted.
func Load(r io.Reader) ([]model.FieldDefinition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("schemafile: read document: %w", err)
	}
	return Parse(data)
}

// LoadFS reads and parses a schema document from the provided filesystem.
func LoadFS(fsys fs.FS, path string) ([]model.FieldDefinition, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: read %s: %w", path, err)
	}
	fields, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %s: %w", path, err)
	}
	return fields, nil
}

// Parse decodes and validates a schema document.
func Parse(data []byte) ([]model.FieldDefinition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("schemafile: document is empty")
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemafile: parse document: %w", err)
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("schemafile: document defines no fields")
	}

	seen := make(map[string]struct{}, len(doc.Fields))
	fields := make([]model.FieldDefinition, 0, len(doc.Fields))
	for idx, entry := range doc.Fields {
		def, err := convertField(entry)
		if err != nil {
			return nil, fmt.Errorf("schemafile: field %d: %w", idx, err)
		}
		if _, dup := seen[def.Name]; dup {
			return nil, fmt.Errorf("schemafile: duplicate field name %q", def.Name)
		}
		seen[def.Name] = struct{}{}
		fields = append(fields, def)
	}
	return fields, nil
}

func convertField(entry fieldEntry) (model.FieldDefinition, error) {
	name := strings.TrimSpace(entry.Name)
	if name == "" {
		return model.FieldDefinition{}, fmt.Errorf("name is required")
	}

	kind := model.Kind(strings.TrimSpace(entry.Kind))
	if kind == "" {
		kind = model.KindText
	}
	if !kind.Valid() {
		return model.FieldDefinition{}, fmt.Errorf("unknown kind %q", entry.Kind)
	}

	if len(entry.Options) > 0 && kind != model.KindSelect && kind != model.KindMultiSelect {
		return model.FieldDefinition{}, fmt.Errorf("options are only valid for select kinds, got %q", kind)
	}

	if entry.Rule.Pattern != "" {
		if _, err := regexp.Compile(entry.Rule.Pattern); err != nil {
			return model.FieldDefinition{}, fmt.Errorf("invalid pattern: %w", err)
		}
	}
	if entry.Rule.MinLength != nil && *entry.Rule.MinLength < 0 {
		return model.FieldDefinition{}, fmt.Errorf("minLength must not be negative")
	}
	if entry.Rule.MaxLength != nil && *entry.Rule.MaxLength < 0 {
		return model.FieldDefinition{}, fmt.Errorf("maxLength must not be negative")
	}
	if entry.Rule.MinLength != nil && entry.Rule.MaxLength != nil && *entry.Rule.MinLength > *entry.Rule.MaxLength {
		return model.FieldDefinition{}, fmt.Errorf("minLength exceeds maxLength")
	}

	options := make([]model.Option, 0, len(entry.Options))
	for _, opt := range entry.Options {
		value := strings.TrimSpace(opt.Value)
		if value == "" {
			return model.FieldDefinition{}, fmt.Errorf("option value is required")
		}
		options = append(options, model.Option{
			Value: value,
			Label: sanitizeText(opt.Label),
		})
	}
	if len(options) == 0 {
		options = nil
	}

	return model.FieldDefinition{
		Name:        name,
		Label:       sanitizeText(entry.Label),
		Kind:        kind,
		Placeholder: sanitizeText(entry.Placeholder),
		Options:     options,
		Help:        sanitizeText(entry.Help),
		Metadata:    entry.Metadata,
		Rule: model.Rule{
			Required:  entry.Rule.Required,
			MinLength: entry.Rule.MinLength,
			MaxLength: entry.Rule.MaxLength,
			Pattern:   entry.Rule.Pattern,
			Message:   strings.TrimSpace(entry.Rule.Message),
		},
	}, nil
}
