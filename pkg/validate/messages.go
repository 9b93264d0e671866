package validate

import (
	"fmt"
	"sync"

	"github.com/devhubhq/go-formkit/pkg/model"
)

// Messages holds the process-wide templates used to build validation error
// text. Required, pattern: one %s (the field label). MinLength, MaxLength:
// %s then %d (label, threshold). A Rule.Message override replaces the
// rendered template entirely.
type Messages struct {
	Required  string
	MinLength string
	MaxLength string
	Pattern   string
}

// DefaultMessages returns the built-in English templates.
func DefaultMessages() Messages {
	return Messages{
		Required:  "%s is required",
		MinLength: "%s must be at least %d characters",
		MaxLength: "%s must be no more than %d characters",
		Pattern:   "%s format is invalid",
	}
}

var (
	messagesMu sync.RWMutex
	messages   = DefaultMessages()
)

// SetMessages installs new templates process-wide. Empty members keep their
// current value. Intended for application startup; pair with ResetMessages in
// tests.
func SetMessages(m Messages) {
	messagesMu.Lock()
	defer messagesMu.Unlock()
	if m.Required != "" {
		messages.Required = m.Required
	}
	if m.MinLength != "" {
		messages.MinLength = m.MinLength
	}
	if m.MaxLength != "" {
		messages.MaxLength = m.MaxLength
	}
	if m.Pattern != "" {
		messages.Pattern = m.Pattern
	}
}

// ResetMessages restores the default templates.
func ResetMessages() {
	messagesMu.Lock()
	defer messagesMu.Unlock()
	messages = DefaultMessages()
}

func currentMessages() Messages {
	messagesMu.RLock()
	defer messagesMu.RUnlock()
	return messages
}

func requiredMessage(def model.FieldDefinition) string {
	if def.Rule.Message != "" {
		return def.Rule.Message
	}
	return fmt.Sprintf(currentMessages().Required, def.DisplayLabel())
}

func minLengthMessage(def model.FieldDefinition, n int) string {
	if def.Rule.Message != "" {
		return def.Rule.Message
	}
	return fmt.Sprintf(currentMessages().MinLength, def.DisplayLabel(), n)
}

func maxLengthMessage(def model.FieldDefinition, n int) string {
	if def.Rule.Message != "" {
		return def.Rule.Message
	}
	return fmt.Sprintf(currentMessages().MaxLength, def.DisplayLabel(), n)
}

func patternMessage(def model.FieldDefinition) string {
	if def.Rule.Message != "" {
		return def.Rule.Message
	}
	return fmt.Sprintf(currentMessages().Pattern, def.DisplayLabel())
}
