package model

import "strings"

// Value holds the data entered into one field: either a single string or a
// list of strings for multiselect fields. The zero Value is an empty single
// string.
type Value struct {
	text   string
	list   []string
	isList bool
}

// String wraps a single string value.
func String(s string) Value {
	return Value{text: s}
}

// List wraps a list value. The slice is copied so later mutations by the
// caller do not leak into form state.
func List(items ...string) Value {
	return Value{list: append([]string(nil), items...), isList: true}
}

// IsList reports whether the value carries a list.
func (v Value) IsList() bool {
	return v.isList
}

// Text returns the single string form. List values return their joined form.
func (v Value) Text() string {
	if v.isList {
		return v.Join()
	}
	return v.text
}

// Items returns the list form. Single values return nil.
func (v Value) Items() []string {
	if !v.isList {
		return nil
	}
	return append([]string(nil), v.list...)
}

// Join returns the comma-joined representation used by length and pattern
// checks. Single values join to themselves.
func (v Value) Join() string {
	if v.isList {
		return strings.Join(v.list, ",")
	}
	return v.text
}

// IsEmpty reports whether the joined form is empty or whitespace-only. An
// empty list is therefore empty, matching the required-check semantics.
func (v Value) IsEmpty() bool {
	return strings.TrimSpace(v.Join()) == ""
}

// Len returns the length of the joined form in bytes.
func (v Value) Len() int {
	return len(v.Join())
}

// Values maps field names to their current value. Keys correspond to
// FieldDefinition names; unknown keys are preserved but never validated.
type Values map[string]Value

// Clone returns a shallow copy. Value is immutable from the outside, so a
// shallow copy is sufficient isolation.
func (vs Values) Clone() Values {
	if vs == nil {
		return nil
	}
	out := make(Values, len(vs))
	for k, v := range vs {
		out[k] = v
	}
	return out
}
