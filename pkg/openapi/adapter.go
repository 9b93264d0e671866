// Package openapi derives field definitions from OpenAPI documents so forms
// can be generated straight from an API contract instead of hand-written
// schemas.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/devhubhq/go-formkit/pkg/model"
)

// Load parses an OpenAPI document from raw bytes.
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return doc, nil
}

// LoadFile parses an OpenAPI document from disk.
func LoadFile(ctx context.Context, path string) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", path, err)
	}
	return doc, nil
}

// FieldsForOperation maps the JSON request body of the operation with the
// given id to field definitions. Property order follows sorted names so the
// result is deterministic across runs.
func FieldsForOperation(doc *openapi3.T, operationID string) ([]model.FieldDefinition, error) {
	if doc == nil {
		return nil, errors.New("openapi: document is required")
	}
	op := findOperation(doc, operationID)
	if op == nil {
		return nil, fmt.Errorf("openapi: operation %q not found", operationID)
	}

	schema := requestSchema(op)
	if schema == nil {
		return nil, fmt.Errorf("openapi: operation %q has no request body schema", operationID)
	}
	if len(schema.Properties) == 0 {
		return nil, fmt.Errorf("openapi: operation %q request schema declares no properties", operationID)
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]model.FieldDefinition, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		def, ok := convertProperty(name, ref.Value)
		if !ok {
			continue
		}
		_, def.Rule.Required = required[name]
		fields = append(fields, def)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("openapi: operation %q yields no usable fields", operationID)
	}
	return fields, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// convertProperty maps one schema property to a field definition. Properties
// that do not translate to a flat form input (objects, arrays of objects) are
// skipped.
func convertProperty(name string, src *openapi3.Schema) (model.FieldDefinition, bool) {
	def := model.FieldDefinition{
		Name:        name,
		Label:       strings.TrimSpace(src.Title),
		Help:        strings.TrimSpace(src.Description),
		Placeholder: placeholderFromExample(src.Example),
	}

	switch schemaType(src) {
	case "string":
		def.Kind = kindForString(src)
		if len(src.Enum) > 0 {
			def.Kind = model.KindSelect
			def.Options = optionsFromEnum(src.Enum)
		}
	case "array":
		if src.Items == nil || src.Items.Value == nil {
			return model.FieldDefinition{}, false
		}
		items := src.Items.Value
		if schemaType(items) != "string" {
			return model.FieldDefinition{}, false
		}
		def.Kind = model.KindMultiSelect
		if len(items.Enum) > 0 {
			def.Options = optionsFromEnum(items.Enum)
		}
		if items.Pattern != "" {
			def.Rule.Pattern = items.Pattern
		}
	default:
		return model.FieldDefinition{}, false
	}

	if src.MinLength != 0 {
		value := int(src.MinLength)
		def.Rule.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		def.Rule.MaxLength = &value
	}
	if src.Pattern != "" {
		def.Rule.Pattern = src.Pattern
	}
	return def, true
}

func schemaType(src *openapi3.Schema) string {
	if src.Type == nil {
		return ""
	}
	values := src.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func kindForString(src *openapi3.Schema) model.Kind {
	switch strings.ToLower(strings.TrimSpace(src.Format)) {
	case "email":
		return model.KindEmail
	case "password":
		return model.KindPassword
	case "uri", "url":
		return model.KindURL
	case "textarea":
		return model.KindTextarea
	default:
		return model.KindText
	}
}

func optionsFromEnum(enum []any) []model.Option {
	options := make([]model.Option, 0, len(enum))
	for _, raw := range enum {
		value := strings.TrimSpace(fmt.Sprint(raw))
		if value == "" {
			continue
		}
		options = append(options, model.Option{Value: value})
	}
	return options
}

func placeholderFromExample(example any) string {
	if example == nil {
		return ""
	}
	if s, ok := example.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
