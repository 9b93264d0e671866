// Package formkit is a declarative form engine: callers describe fields and
// validation rules once, and the engine owns live input state, deterministic
// validation, and the gated submit pipeline around an external async
// submission function.
package formkit

import (
	"github.com/devhubhq/go-formkit/pkg/form"
	"github.com/devhubhq/go-formkit/pkg/model"
	"github.com/devhubhq/go-formkit/pkg/validate"
)

// Kind re-exports the closed input kind enumeration.
type Kind = model.Kind

const (
	KindText        = model.KindText
	KindEmail       = model.KindEmail
	KindPassword    = model.KindPassword
	KindURL         = model.KindURL
	KindTextarea    = model.KindTextarea
	KindSelect      = model.KindSelect
	KindMultiSelect = model.KindMultiSelect
)

// FieldDefinition describes one form input and its validation rule.
type FieldDefinition = model.FieldDefinition

// Rule collects the validation constraints for one field.
type Rule = model.Rule

// Option is a selectable choice for select and multiselect fields.
type Option = model.Option

// Value holds the data entered into one field.
type Value = model.Value

// Values maps field names to their current value.
type Values = model.Values

// Form is the state store and submission controller for one form instance.
type Form = form.Form

// SubmitFunc is the external submission callback invoked by Form.Submit.
type SubmitFunc = form.SubmitFunc

// ValidationError carries the field errors that blocked a submit attempt.
type ValidationError = form.ValidationError

// String wraps a single string value.
func String(s string) Value { return model.String(s) }

// List wraps a list value for multiselect fields.
func List(items ...string) Value { return model.List(items...) }

// New constructs a form over the supplied definitions.
func New(fields []FieldDefinition, options ...form.Option) *Form {
	return form.New(fields, options...)
}

// ValidateField evaluates one definition against a candidate value.
func ValidateField(def FieldDefinition, value Value) string {
	return validate.Field(def, value)
}

// ValidateForm evaluates every definition against the supplied values.
func ValidateForm(fields []FieldDefinition, values Values) map[string]string {
	return validate.Form(fields, values)
}
