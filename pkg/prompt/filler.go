// Package prompt fills model instances interactively, one prompt per member.
package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-modelkit/pkg/model"
	"github.com/goliatone/go-modelkit/pkg/schema"
)

// Filler asks for every member of an instance and stores the answers.
type Filler struct {
	driver Driver
	logger zerolog.Logger
}

// Option configures a Filler.
type Option func(*Filler)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithLogger sets the logger used to trace answers.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Filler) {
		f.logger = logger
	}
}

// NewFiller returns a Filler prompting on the terminal unless another driver
// is given.
func NewFiller(options ...Option) *Filler {
	f := &Filler{logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(nil)
	}
	return f
}

// Fill prompts for each member of inst in declaration order. Current values
// and defaults are offered as the prompt default.
func (f *Filler) Fill(ctx context.Context, inst *model.Instance) error {
	s := inst.Class().Schema()
	if err := f.driver.Info(ctx, s.DisplayLabel()); err != nil {
		return err
	}
	for field := range s.Members() {
		if err := ctx.Err(); err != nil {
			return err
		}
		current, err := inst.Get(field.Name())
		if err != nil {
			return err
		}
		value, err := f.ask(ctx, field, current)
		if err != nil {
			return fmt.Errorf("prompt: %s: %w", field.QualifiedName(), err)
		}
		if err := inst.Set(field.Name(), value); err != nil {
			return err
		}
		f.logger.Debug().Str("field", field.QualifiedName()).Interface("value", value).Msg("answer stored")
	}
	return nil
}

func (f *Filler) ask(ctx context.Context, field schema.Field, current any) (any, error) {
	message := field.DisplayLabel()
	if field.Required() {
		message += " *"
	}

	switch field := field.(type) {
	case *schema.Boolean:
		initial, _ := current.(bool)
		return f.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: initial,
			Help:    field.Description(),
		})

	case *schema.Enum:
		return f.choose(ctx, field, message, current)

	case *schema.Schema, *schema.Collection, *schema.Mapping:
		return f.structured(ctx, field, message, current)
	}

	answer, err := f.driver.Input(ctx, InputConfig{
		Message:   message,
		Default:   encodeText(field, current),
		Help:      field.Description(),
		Validator: func(text string) error { _, err := parseText(field, text); return err },
	})
	if err != nil {
		return nil, err
	}
	return parseText(field, answer)
}

func (f *Filler) choose(ctx context.Context, field *schema.Enum, message string, current any) (any, error) {
	values := field.Values()
	var options []string
	var choices []any
	if !field.Required() {
		none := field.NullLabel()
		if none == "" {
			none = "(none)"
		}
		options = append(options, none)
		choices = append(choices, nil)
	}
	defaultIndex := 0
	for _, value := range values {
		if value == current {
			defaultIndex = len(options)
		}
		options = append(options, field.ValueLabel(value, schema.LabelOptions{}))
		choices = append(choices, value)
	}

	index, err := f.driver.Select(ctx, SelectConfig{
		Message:      message,
		Options:      options,
		DefaultIndex: defaultIndex,
		Help:         field.Description(),
	})
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(choices) {
		return nil, fmt.Errorf("selection %d out of range", index)
	}
	return choices[index], nil
}

// structured asks for composite values as JSON, repeating the prompt until
// the answer decodes.
func (f *Filler) structured(ctx context.Context, field schema.Field, message string, current any) (any, error) {
	initial := ""
	if !field.ValueIsBlank(current) {
		if encoded, err := field.ToJSON(current); err == nil {
			if data, err := json.MarshalIndent(encoded, "", "  "); err == nil {
				initial = string(data)
			}
		}
	}

	for {
		answer, err := f.driver.TextArea(ctx, TextAreaConfig{
			Message: message + " (JSON)",
			Default: initial,
			Help:    field.Description(),
		})
		if err != nil {
			return nil, err
		}
		value, err := parseJSON(field, answer)
		if err == nil {
			return value, nil
		}
		if err := f.driver.Info(ctx, err.Error()); err != nil {
			return nil, err
		}
		initial = answer
	}
}

func parseText(field schema.Field, text string) (any, error) {
	if strings.TrimSpace(text) == "" {
		if field.Required() {
			return nil, ErrValueRequired
		}
		return nil, nil
	}
	return field.FromJSON(text)
}

func parseJSON(field schema.Field, text string) (any, error) {
	if strings.TrimSpace(text) == "" {
		if field.Required() {
			return nil, ErrValueRequired
		}
		return nil, nil
	}
	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	value, err := field.FromJSON(raw)
	if err != nil {
		return nil, err
	}
	if field.Required() && field.ValueIsBlank(value) {
		return nil, ErrValueRequired
	}
	return value, nil
}

func encodeText(field schema.Field, current any) string {
	if field.ValueIsBlank(current) {
		return ""
	}
	encoded, err := field.ToJSON(current)
	if err != nil || encoded == nil {
		return ""
	}
	return fmt.Sprint(encoded)
}
