package prompt

import (
	"log/slog"

	"github.com/goliatone/go-compositor/pkg/schema"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one key=value line per column.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional prefixes the filler applies to messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Filler.
type Option func(*Filler)

// WithPromptDriver overrides the prompt driver used by the filler.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithOutputFormat selects the serialization used by Encode.
func WithOutputFormat(format OutputFormat) Option {
	return func(f *Filler) {
		if format != "" {
			f.outputFormat = format
		}
	}
}

// WithLabels restricts and orders the prompted columns.
func WithLabels(labels schema.Labels) Option {
	return func(f *Filler) {
		f.labels = labels
		f.labelsSet = true
	}
}

// WithLogger receives diagnostics such as skipped columns.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Filler) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(f *Filler) {
		f.theme = theme
	}
}
