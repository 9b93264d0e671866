// Package widgets maps field kinds to the widget a UI layer should render.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/devhubhq/go-formkit/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetInput    = "input"
	WidgetEmail    = "email"
	WidgetPassword = "password"
	WidgetURL      = "url"
	WidgetTextarea = "textarea"
	WidgetSelect   = "select"
	WidgetChips    = "chips"
)

// ForKind is the canonical mapping from the closed kind set to a widget name.
// Every kind has exactly one default widget; unknown kinds fall back to a
// plain input.
func ForKind(kind model.Kind) string {
	switch kind {
	case model.KindEmail:
		return WidgetEmail
	case model.KindPassword:
		return WidgetPassword
	case model.KindURL:
		return WidgetURL
	case model.KindTextarea:
		return WidgetTextarea
	case model.KindSelect:
		return WidgetSelect
	case model.KindMultiSelect:
		return WidgetChips
	case model.KindText:
		return WidgetInput
	default:
		return WidgetInput
	}
}

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.FieldDefinition) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order. When
// no matcher claims a field, the canonical kind mapping applies, so Resolve
// always succeeds.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs an empty registry backed by the kind mapping.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit "widget" metadata
// hint wins, then registered matchers by priority, then the kind mapping.
func (r *Registry) Resolve(field model.FieldDefinition) string {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit
	}
	if r == nil {
		return ForKind(field.Kind)
	}

	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name
		}
	}
	return ForKind(field.Kind)
}

func explicitWidget(field model.FieldDefinition) string {
	if field.Metadata == nil {
		return ""
	}
	return strings.TrimSpace(field.Metadata["widget"])
}
