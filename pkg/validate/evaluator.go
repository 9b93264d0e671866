// Package validate evaluates field definitions against candidate values.
// Evaluation is pure and deterministic; rules apply in a fixed precedence and
// short-circuit on the first failure.
package validate

import (
	"regexp"
	"sync"

	"github.com/devhubhq/go-formkit/pkg/model"
)

// Field evaluates one definition against a candidate value and returns the
// error message, or "" when the value is valid. Checks run in fixed precedence
// and short-circuit: required, optional-empty exit, min length, max length,
// pattern, custom predicate. List values are checked against their
// comma-joined form. The function is pure; evaluating the same pair twice
// yields the same result.
func Field(def model.FieldDefinition, value model.Value) string {
	rule := def.Rule

	if rule.Required && value.IsEmpty() {
		return requiredMessage(def)
	}
	if value.IsEmpty() {
		// Optional and empty: no further checks apply.
		return ""
	}

	if rule.MinLength != nil && value.Len() < *rule.MinLength {
		return minLengthMessage(def, *rule.MinLength)
	}
	if rule.MaxLength != nil && value.Len() > *rule.MaxLength {
		return maxLengthMessage(def, *rule.MaxLength)
	}

	if rule.Pattern != "" {
		re, err := compilePattern(rule.Pattern)
		if err != nil || !re.MatchString(value.Join()) {
			return patternMessage(def)
		}
	}

	if rule.Custom != nil {
		// Custom messages are returned verbatim; the override does not apply.
		if msg := rule.Custom(value); msg != "" {
			return msg
		}
	}

	return ""
}

// Form evaluates every definition against the current values and returns the
// field name → error message mapping, omitting valid fields. Missing values
// evaluate as empty; value entries without a matching definition are ignored.
func Form(fields []model.FieldDefinition, values model.Values) map[string]string {
	errs := make(map[string]string)
	for _, def := range fields {
		if msg := Field(def, values[def.Name]); msg != "" {
			errs[def.Name] = msg
		}
	}
	return errs
}

var (
	patternMu    sync.RWMutex
	patternCache = make(map[string]*regexp.Regexp)
)

// compilePattern anchors the expression so it must match the full value, and
// memoizes compilation so per-keystroke re-evaluation stays cheap.
func compilePattern(expr string) (*regexp.Regexp, error) {
	patternMu.RLock()
	re, ok := patternCache[expr]
	patternMu.RUnlock()
	if ok {
		return re, nil
	}

	compiled, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, err
	}

	patternMu.Lock()
	patternCache[expr] = compiled
	patternMu.Unlock()
	return compiled, nil
}
