// Package jsonnode renders node trees in the interchange JSON shape
// understood by markup.Decode, for clients that build markup themselves.
package jsonnode

import (
	"context"
	"fmt"

	"github.com/goliatone/go-compositor/pkg/markup"
	"github.com/goliatone/go-compositor/pkg/render"
)

type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, root markup.Node, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := markup.Encode(render.Decorate(root, options)...)
	if err != nil {
		return nil, fmt.Errorf("jsonnode renderer: %w", err)
	}
	return out, nil
}
