package render

import (
	"context"

	"github.com/goliatone/go-compositor/pkg/markup"
)

// Renderer converts a composed node tree into a byte representation (an HTML
// fragment, a full page, interchange JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, root markup.Node, options RenderOptions) ([]byte, error)
}
