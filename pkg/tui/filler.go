// Package tui drives a form through terminal prompts. It maps each field's
// widget to an interactive prompt, validates answers as the user moves
// through the form, and hands the collected values to the submission
// controller.
package tui

import (
	"context"
	"fmt"

	"github.com/devhubhq/go-formkit/pkg/form"
	"github.com/devhubhq/go-formkit/pkg/model"
	"github.com/devhubhq/go-formkit/pkg/validate"
	"github.com/devhubhq/go-formkit/pkg/widgets"
)

// Option configures a Filler.
type Option func(*Filler)

// WithPromptDriver overrides the prompt driver used by the filler.
func WithPromptDriver(driver PromptDriver) Option {
	return func(fl *Filler) {
		if driver != nil {
			fl.driver = driver
		}
	}
}

// WithWidgetRegistry overrides the widget registry used to pick prompts.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(fl *Filler) {
		if registry != nil {
			fl.registry = registry
		}
	}
}

// Filler walks a form's fields, prompting for each and validating answers
// before they are stored. Invalid answers re-prompt with the validation
// message.
type Filler struct {
	driver   PromptDriver
	registry *widgets.Registry
}

// NewFiller constructs a Filler with defaults (survey driver, built-in widget
// mapping).
func NewFiller(options ...Option) *Filler {
	fl := &Filler{
		driver:   newSurveyDriver(),
		registry: widgets.NewRegistry(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(fl)
	}
	return fl
}

// Fill prompts for every field in declaration order and stores the answers.
func (fl *Filler) Fill(ctx context.Context, f *form.Form) error {
	for _, field := range f.Fields() {
		if err := fl.fillField(ctx, f, field); err != nil {
			return err
		}
	}
	return nil
}

// Run fills the form and submits it through the supplied callback.
func (fl *Filler) Run(ctx context.Context, f *form.Form, submit form.SubmitFunc) error {
	if err := fl.Fill(ctx, f); err != nil {
		return err
	}
	return f.Submit(ctx, submit)
}

func (fl *Filler) fillField(ctx context.Context, f *form.Form, field model.FieldDefinition) error {
	for {
		value, err := fl.prompt(ctx, f, field)
		if err != nil {
			return err
		}

		if msg := validate.Field(field, value); msg != "" {
			if err := fl.driver.Info(ctx, fmt.Sprintf("Invalid %s: %s", field.Name, msg)); err != nil {
				return err
			}
			continue
		}

		f.SetValue(field.Name, value)
		f.Blur(field.Name)
		return nil
	}
}

func (fl *Filler) prompt(ctx context.Context, f *form.Form, field model.FieldDefinition) (model.Value, error) {
	label := field.DisplayLabel()
	help := promptHelp(field)

	switch fl.registry.Resolve(field) {
	case widgets.WidgetPassword:
		answer, err := fl.driver.Password(ctx, InputConfig{Message: label, Help: help})
		if err != nil {
			return model.Value{}, err
		}
		return model.String(answer), nil

	case widgets.WidgetTextarea:
		answer, err := fl.driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: currentText(f, field.Name),
			Help:    help,
		})
		if err != nil {
			return model.Value{}, err
		}
		return model.String(answer), nil

	case widgets.WidgetSelect:
		options := optionLabels(field.Options)
		idx, err := fl.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: indexOf(optionValues(field.Options), currentText(f, field.Name)),
			Help:         help,
		})
		if err != nil {
			return model.Value{}, err
		}
		if idx < 0 || idx >= len(field.Options) {
			return model.String(""), nil
		}
		return model.String(field.Options[idx].Value), nil

	case widgets.WidgetChips:
		options := optionLabels(field.Options)
		indices, err := fl.driver.MultiSelect(ctx, SelectConfig{
			Message:  label,
			Options:  options,
			Defaults: currentIndices(f, field),
			Help:     help,
		})
		if err != nil {
			return model.Value{}, err
		}
		selected := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(field.Options) {
				selected = append(selected, field.Options[idx].Value)
			}
		}
		return model.List(selected...), nil

	default:
		answer, err := fl.driver.Input(ctx, InputConfig{
			Message: label,
			Default: currentText(f, field.Name),
			Help:    help,
		})
		if err != nil {
			return model.Value{}, err
		}
		return model.String(answer), nil
	}
}

func promptHelp(field model.FieldDefinition) string {
	if field.Help != "" {
		return field.Help
	}
	return field.Placeholder
}

func currentText(f *form.Form, name string) string {
	if v, ok := f.Value(name); ok && !v.IsList() {
		return v.Text()
	}
	return ""
}

func currentIndices(f *form.Form, field model.FieldDefinition) []int {
	v, ok := f.Value(field.Name)
	if !ok || !v.IsList() {
		return nil
	}
	return indicesOf(optionValues(field.Options), v.Items())
}

func optionLabels(options []model.Option) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		if opt.Label != "" {
			out[i] = opt.Label
		} else {
			out[i] = opt.Value
		}
	}
	return out
}

func optionValues(options []model.Option) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		out[i] = opt.Value
	}
	return out
}
