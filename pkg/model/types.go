// Package model holds the declarative form schema: field definitions,
// validation rules, and the value types entered into a form.
package model

// Kind is the closed enumeration of input kinds a field can take. Dispatch on
// Kind should go through a single exhaustive mapping (see pkg/widgets) rather
// than ad-hoc branching at call sites.
type Kind string

const (
	KindText        Kind = "text"
	KindEmail       Kind = "email"
	KindPassword    Kind = "password"
	KindURL         Kind = "url"
	KindTextarea    Kind = "textarea"
	KindSelect      Kind = "select"
	KindMultiSelect Kind = "multiselect"
)

// Valid reports whether k is a member of the closed kind set.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindEmail, KindPassword, KindURL, KindTextarea, KindSelect, KindMultiSelect:
		return true
	}
	return false
}

// IsList reports whether values for this kind are lists rather than single
// strings.
func (k Kind) IsList() bool {
	return k == KindMultiSelect
}

// Option is a selectable choice for select and multiselect fields.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Rule collects the validation constraints for one field. Every member is
// optional; the zero Rule imposes no constraints. Message overrides the
// built-in error text for the required/length/pattern checks; Custom returns
// its own message verbatim and ignores the override.
type Rule struct {
	Required  bool               `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength *int               `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int               `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string             `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Message   string             `json:"message,omitempty" yaml:"message,omitempty"`
	Custom    func(Value) string `json:"-" yaml:"-"`
}

// FieldDefinition describes one form input and its validation rule. Callers
// supply definitions once when constructing a form; the engine never mutates
// them.
type FieldDefinition struct {
	Name        string            `json:"name" yaml:"name"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Kind        Kind              `json:"kind" yaml:"kind"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     []Option          `json:"options,omitempty" yaml:"options,omitempty"`
	Rule        Rule              `json:"rule,omitempty" yaml:"rule,omitempty"`
	Help        string            `json:"help,omitempty" yaml:"help,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// DisplayLabel returns the label when set, falling back to the field name so
// error messages always carry an identifier the user can act on.
func (f FieldDefinition) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}
