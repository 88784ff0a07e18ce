// Package compositor turns node trees and column schemas into markup.
//
// The root package re-exports the entry points most callers need so the
// quick start does not require importing the individual packages:
//
//	spec, _ := compositor.ParseColumn("volume_ul REAL")
//	form := compositor.GenerateForm([]string{"id INTEGER PRIMARY KEY", "volume_ul REAL"})
//	html := compositor.Compose(form)
package compositor

import (
	"context"
	"fmt"

	"github.com/goliatone/go-compositor/pkg/escape"
	"github.com/goliatone/go-compositor/pkg/generate"
	"github.com/goliatone/go-compositor/pkg/markup"
	"github.com/goliatone/go-compositor/pkg/render"
	"github.com/goliatone/go-compositor/pkg/renderers/fragment"
	"github.com/goliatone/go-compositor/pkg/renderers/jsonnode"
	"github.com/goliatone/go-compositor/pkg/renderers/page"
	"github.com/goliatone/go-compositor/pkg/schema"
)

// Node aliases markup.Node for callers building trees by hand.
type Node = markup.Node

// ColumnSpec aliases schema.ColumnSpec.
type ColumnSpec = schema.ColumnSpec

// Labels aliases schema.Labels, the ordered column -> label mapping.
type Labels = schema.Labels

// Row aliases generate.Row.
type Row = generate.Row

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// Compose serialises nodes. Several nodes are joined with a newline.
func Compose(nodes ...Node) string {
	return markup.Compose(nodes...)
}

// ComposeJSON decodes interchange JSON (tag/className/innerText/...) and
// composes the result.
func ComposeJSON(data []byte) (string, error) {
	nodes, err := markup.Decode(data)
	if err != nil {
		return "", err
	}
	return markup.Compose(nodes...), nil
}

// EscapeMarkup replaces markup-significant characters with numeric
// references. Already escaped references are left alone.
func EscapeMarkup(s string) string {
	return escape.Markup(s)
}

// EscapeScript escapes s for use inside a script string literal.
func EscapeScript(s string) string {
	return escape.Script(s)
}

// ParseColumn parses a single column descriptor such as
// "status TEXT CHECK (status IN ('open','closed'))".
func ParseColumn(descriptor string) (ColumnSpec, error) {
	return schema.ParseColumn(descriptor)
}

// GenerateTable builds the read-only table view of rows.
func GenerateTable(rows []Row, columns []string, labels Labels, options ...generate.Option) Node {
	return generate.Table(rows, columns, labels, options...)
}

// GenerateForm builds the editable form for columns.
func GenerateForm(columns []string, options ...generate.Option) Node {
	return generate.Form(columns, options...)
}

// NewRegistry returns a registry holding the built-in renderers: "html"
// (bare fragment), "page" (full document) and "json" (interchange JSON).
// Extra renderers are registered after the built-ins; reusing a built-in
// name is an error.
func NewRegistry(extra ...render.Renderer) (*render.Registry, error) {
	pageRenderer, err := page.New()
	if err != nil {
		return nil, fmt.Errorf("compositor: %w", err)
	}
	registry := render.NewRegistry(fragment.New(), jsonnode.New(), pageRenderer)
	for _, renderer := range extra {
		if err := registry.Register(renderer); err != nil {
			return nil, fmt.Errorf("compositor: %w", err)
		}
	}
	return registry, nil
}

// Render renders root with the named built-in renderer and returns the
// output together with its content type.
func Render(ctx context.Context, rendererName string, root Node, options RenderOptions) ([]byte, string, error) {
	registry, err := NewRegistry()
	if err != nil {
		return nil, "", err
	}
	return registry.Render(ctx, rendererName, root, options)
}
