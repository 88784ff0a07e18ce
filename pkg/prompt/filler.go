// Package prompt fills a table row interactively in the terminal, asking one
// question per form column and normalising the answers like a submitted
// HTML form.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goliatone/go-compositor/internal/logging"
	"github.com/goliatone/go-compositor/pkg/generate"
	"github.com/goliatone/go-compositor/pkg/markup"
	"github.com/goliatone/go-compositor/pkg/schema"
)

// Filler asks for column values through a PromptDriver.
type Filler struct {
	driver       PromptDriver
	outputFormat OutputFormat
	labels       schema.Labels
	labelsSet    bool
	logger       *slog.Logger
	theme        Theme
}

// New constructs a Filler with defaults (survey driver, JSON output).
func New(options ...Option) *Filler {
	f := &Filler{
		driver:       NewSurveyDriver(),
		outputFormat: OutputFormatJSON,
		logger:       logging.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Fill prompts for every form column of columns. Existing values become the
// prompt defaults. The answers are normalised with generate.FormValues, so
// the result matches what a submitted HTML form would produce.
func (f *Filler) Fill(ctx context.Context, columns []string, existing map[string]any) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("prompt: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	options := []generate.Option{generate.WithLogger(f.logger)}
	if f.labelsSet {
		options = append(options, generate.WithLabels(f.labels))
	}
	fields := generate.Fields(columns, options...)
	if len(fields) == 0 {
		return map[string]any{}, nil
	}

	submitted := make(map[string]any, len(fields))
	for _, field := range fields {
		answer, err := f.ask(ctx, field, existing[field.Spec.Name])
		if err != nil {
			return nil, fmt.Errorf("prompt: %s: %w", field.Spec.Name, err)
		}
		submitted[field.Spec.Name] = answer
	}

	values, err := generate.FormValues(columns, submitted)
	if err != nil {
		_ = f.driver.Info(ctx, f.theme.ErrorPrefix+err.Error())
		return nil, err
	}
	for key := range values {
		if _, ok := submitted[key]; !ok {
			delete(values, key)
		}
	}
	return values, nil
}

// Info shows msg through the driver with the theme's info prefix.
func (f *Filler) Info(ctx context.Context, msg string) error {
	return f.driver.Info(ctx, f.theme.InfoPrefix+msg)
}

func (f *Filler) ask(ctx context.Context, field generate.Field, current any) (any, error) {
	spec := field.Spec
	message := field.Label
	if spec.Unit != "" {
		message = field.Label + " (" + strings.TrimSpace(spec.Unit) + ")"
	}

	var fallback string
	if current != nil {
		fallback = markup.Stringify(current)
	}

	switch {
	case spec.Type == schema.TypeBoolean:
		return f.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: current != nil && generate.Truthy(current),
		})
	case spec.Enumerated():
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      spec.EnumValues,
			DefaultIndex: indexOf(spec.EnumValues, fallback),
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(spec.EnumValues) {
			return nil, fmt.Errorf("selection %d out of range", idx)
		}
		return spec.EnumValues[idx], nil
	default:
		return f.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   fallback,
			Help:      help(spec),
			Validator: validator(spec.Type),
		})
	}
}

func help(spec schema.ColumnSpec) string {
	switch spec.Type {
	case schema.TypeInteger:
		return "whole number, leave blank for none"
	case schema.TypeReal:
		return "number, leave blank for none"
	default:
		return ""
	}
}

func validator(kind schema.Type) func(string) error {
	var parse func(string) error
	switch kind {
	case schema.TypeInteger:
		parse = func(s string) error {
			_, err := strconv.ParseInt(s, 10, 64)
			return err
		}
	case schema.TypeReal:
		parse = func(s string) error {
			_, err := strconv.ParseFloat(s, 64)
			return err
		}
	default:
		return nil
	}
	return func(answer string) error {
		trimmed := strings.TrimSpace(answer)
		if trimmed == "" {
			return nil
		}
		if err := parse(trimmed); err != nil {
			return fmt.Errorf("%q is not a valid %s", trimmed, strings.ToLower(string(kind)))
		}
		return nil
	}
}
