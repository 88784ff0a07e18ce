package openapi

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-compositor/internal/openapi/parser"
	"github.com/goliatone/go-compositor/pkg/schema"
)

// Option configures document conversion.
type Option func(*parser.Options)

// WithValidation validates the document before converting it.
func WithValidation(enabled bool) Option {
	return func(opts *parser.Options) {
		opts.Validate = enabled
	}
}

// Parse converts an OpenAPI document (JSON or YAML) into table definitions,
// one per object schema under components.schemas.
func Parse(ctx context.Context, data []byte, options ...Option) ([]schema.Table, error) {
	var opts parser.Options
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}
	return parser.Tables(ctx, data, opts)
}

// LoadFile reads and parses a document from disk.
func LoadFile(ctx context.Context, path string, options ...Option) ([]schema.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return Parse(ctx, data, options...)
}

// LoadFS reads and parses a document from fsys.
func LoadFS(ctx context.Context, fsys fs.FS, name string, options ...Option) ([]schema.Table, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", name, err)
	}
	return Parse(ctx, data, options...)
}

// Store parses data and collects the resulting tables into a schema.Store.
func Store(ctx context.Context, data []byte, options ...Option) (*schema.Store, error) {
	tables, err := Parse(ctx, data, options...)
	if err != nil {
		return nil, err
	}
	store, err := schema.NewStore(tables...)
	if err != nil {
		return nil, fmt.Errorf("openapi: %w", err)
	}
	return store, nil
}
