// Package form owns live input state for one form instance and the gated
// submit pipeline around an external submission callback.
package form

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/devhubhq/go-formkit/pkg/model"
	"github.com/devhubhq/go-formkit/pkg/validate"
)

// SubmitFunc is the external submission callback. It receives a snapshot of
// the form values containing exactly the schema's field names. The form does
// not inspect, classify, or retry its error; it is returned to the Submit
// caller verbatim.
type SubmitFunc func(ctx context.Context, values model.Values) error

// Form is the single source of truth for one form instance: current values,
// touched flags, computed errors, and the in-flight submit state. A mutex
// serializes access so a Form can be driven from UI callbacks running on
// different goroutines; instances are never shared between forms.
type Form struct {
	mu         sync.Mutex
	fields     []model.FieldDefinition
	values     model.Values
	errors     map[string]string
	touched    map[string]struct{}
	submitting bool

	initial   model.Values
	realtime  bool
	autoReset bool
	logger    *zap.Logger
}

// New constructs a form over the supplied definitions. Definitions are copied
// and treated as immutable afterwards.
func New(fields []model.FieldDefinition, options ...Option) *Form {
	f := &Form{
		fields:  append([]model.FieldDefinition(nil), fields...),
		errors:  make(map[string]string),
		touched: make(map[string]struct{}),
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	f.values = f.initial.Clone()
	if f.values == nil {
		f.values = make(model.Values)
	}
	return f
}

// Fields returns the form's definitions in declaration order.
func (f *Form) Fields() []model.FieldDefinition {
	return append([]model.FieldDefinition(nil), f.fields...)
}

// SetValue replaces the value for a field and marks it touched. Names without
// a matching definition are stored but never validated, so callers can pass
// through extra values untouched. In realtime mode every field's error is
// recomputed.
func (f *Form) SetValue(name string, value model.Value) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[name] = value
	f.touched[name] = struct{}{}
	if f.realtime {
		f.errors = validate.Form(f.fields, f.values)
	}
}

// Blur marks a field touched. In realtime mode only that field is
// re-evaluated and its error entry updated.
func (f *Form) Blur(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.touched[name] = struct{}{}
	if !f.realtime {
		return
	}
	for _, def := range f.fields {
		if def.Name != name {
			continue
		}
		if msg := validate.Field(def, f.values[name]); msg != "" {
			f.errors[name] = msg
		} else {
			delete(f.errors, name)
		}
		return
	}
}

// Reset restores values to the given baseline and clears errors and touched
// flags. A nil baseline restores the values supplied via WithInitialValues.
func (f *Form) Reset(initial model.Values) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked(initial)
}

func (f *Form) resetLocked(initial model.Values) {
	if initial == nil {
		initial = f.initial
	}
	f.values = initial.Clone()
	if f.values == nil {
		f.values = make(model.Values)
	}
	f.errors = make(map[string]string)
	f.touched = make(map[string]struct{})
}

// Value returns the current value for a field.
func (f *Form) Value(name string) (model.Value, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[name]
	return v, ok
}

// Values returns a snapshot of all stored values, including passthrough
// entries without a definition.
func (f *Form) Values() model.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values.Clone()
}

// Errors returns a snapshot of the current error mapping. Keys are always a
// subset of the schema's field names.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneErrors(f.errors)
}

// Touched reports whether the user has interacted with the field.
func (f *Form) Touched(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.touched[name]
	return ok
}

// VisibleError returns the error for a field only once the field has been
// touched. A computed-but-hidden error is deliberate UX policy, not a bug:
// untouched fields never display errors.
func (f *Form) VisibleError(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.touched[name]; !ok {
		return "", false
	}
	msg, ok := f.errors[name]
	return msg, ok
}

// Submitting reports whether a submit attempt is in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Validate runs a whole-form evaluation, stores the result, and returns a
// snapshot of it.
func (f *Form) Validate() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = validate.Form(f.fields, f.values)
	return cloneErrors(f.errors)
}

// Submit gates and sequences the terminal submit action. Every field is
// marked touched, the whole form is evaluated regardless of realtime mode,
// and any error aborts with *ValidationError before fn is invoked. On a clean
// pass fn is called exactly once with a snapshot containing exactly the
// schema's field names. The submitting flag is cleared unconditionally when
// fn resolves, fails, or panics; fn's error is returned verbatim. There is no
// cancellation of an in-flight fn and no timeout imposed here: a hung fn
// leaves the form submitting indefinitely.
func (f *Form) Submit(ctx context.Context, fn SubmitFunc) error {
	if fn == nil {
		return ErrNilSubmit
	}

	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}

	for _, def := range f.fields {
		f.touched[def.Name] = struct{}{}
	}
	errs := validate.Form(f.fields, f.values)
	f.errors = errs
	if len(errs) > 0 {
		f.mu.Unlock()
		f.logger.Debug("submit blocked by validation", zap.Int("fields", len(errs)))
		return &ValidationError{Fields: cloneErrors(errs)}
	}

	f.submitting = true
	payload := make(model.Values, len(f.fields))
	for _, def := range f.fields {
		payload[def.Name] = f.values[def.Name]
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	f.logger.Debug("submitting form", zap.Int("fields", len(payload)))
	if err := fn(ctx, payload); err != nil {
		f.logger.Debug("submit failed", zap.Error(err))
		return err
	}

	if f.autoReset {
		f.mu.Lock()
		f.resetLocked(nil)
		f.mu.Unlock()
	}
	f.logger.Debug("submit succeeded")
	return nil
}

func cloneErrors(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
