// Package fragment renders node trees as bare HTML fragments, suitable for
// swapping into an existing page.
package fragment

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goliatone/go-compositor/pkg/markup"
	"github.com/goliatone/go-compositor/pkg/render"
)

// Renderer composes the decorated tree without any surrounding document.
type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the fragment renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, root markup.Node, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := markup.ComposeTo(&buf, render.Decorate(root, options)...); err != nil {
		return nil, fmt.Errorf("fragment renderer: %w", err)
	}
	return buf.Bytes(), nil
}
