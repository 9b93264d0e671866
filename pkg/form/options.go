package form

import (
	"go.uber.org/zap"

	"github.com/devhubhq/go-formkit/pkg/model"
)

// Option configures a Form at construction time.
type Option func(*Form)

// WithInitialValues seeds the form with a baseline. Reset(nil) restores this
// baseline.
func WithInitialValues(values model.Values) Option {
	return func(f *Form) {
		f.initial = values.Clone()
	}
}

// WithRealtimeValidation toggles re-evaluation on every value change. When
// disabled, errors are only recomputed at submit time.
func WithRealtimeValidation(enabled bool) Option {
	return func(f *Form) {
		f.realtime = enabled
	}
}

// WithAutoReset clears values back to the baseline after a successful submit.
// Off by default; callers that keep entered values for follow-up edits should
// leave it off.
func WithAutoReset(enabled bool) Option {
	return func(f *Form) {
		f.autoReset = enabled
	}
}

// WithLogger attaches a structured logger. Submit attempts and outcomes are
// logged at debug level. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}
