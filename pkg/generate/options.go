package generate

import (
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-compositor/internal/logging"
	"github.com/goliatone/go-compositor/pkg/markup"
	"github.com/goliatone/go-compositor/pkg/schema"
)

// Row is one data record: column name to scalar (string, number, bool or
// nil).
type Row map[string]any

// Postprocessor turns a table cell into rich content. It receives the whole
// row, the column key and the display string computed for the cell; its
// result replaces the escaped text of the cell.
type Postprocessor func(row Row, key, display string) []markup.Node

// Option customises table and form generation. Options that do not apply to
// a generator are ignored by it.
type Option func(*config)

type config struct {
	logger        *slog.Logger
	classes       Classes
	labels        schema.Labels
	labelsSet     bool
	values        map[string]any
	postprocessor Postprocessor
	blankNulls    bool
	anchorKey     string
}

func newConfig(options []Option) config {
	cfg := config{
		logger:     logging.NewNop(),
		classes:    DefaultClasses(),
		blankNulls: true,
		anchorKey:  "id",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}
	return cfg
}

// WithLogger receives diagnostics such as skipped columns.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithLabels restricts a form to the labelled columns, in label order.
func WithLabels(labels schema.Labels) Option {
	return func(cfg *config) {
		cfg.labels = append(schema.Labels(nil), labels...)
		cfg.labelsSet = true
	}
}

// WithValues pre-populates form inputs with existing values.
func WithValues(values map[string]any) Option {
	return func(cfg *config) {
		cfg.values = values
	}
}

// WithPostprocessor renders table cells through fn.
func WithPostprocessor(fn Postprocessor) Option {
	return func(cfg *config) {
		cfg.postprocessor = fn
	}
}

// WithBlankNulls controls whether null table values render as empty text
// (the default) or as "null".
func WithBlankNulls(blank bool) Option {
	return func(cfg *config) {
		cfg.blankNulls = blank
	}
}

// WithAnchorKey selects the row field used for the row_<value> anchor.
func WithAnchorKey(key string) Option {
	return func(cfg *config) {
		if key != "" {
			cfg.anchorKey = key
		}
	}
}

// WithClasses overrides the CSS classes applied to generated markup. Empty
// fields keep their defaults.
func WithClasses(classes Classes) Option {
	return func(cfg *config) {
		cfg.classes = cfg.classes.merge(classes)
	}
}

// WithTheme reads class overrides from a go-theme selection.
func WithTheme(selection *theme.Selection) Option {
	return func(cfg *config) {
		cfg.classes = cfg.classes.merge(ClassesFromTheme(selection))
	}
}
