// Package page renders node trees inside a complete HTML document using a
// pongo2 layout template.
package page

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-compositor/pkg/markup"
	"github.com/goliatone/go-compositor/pkg/render"
	rendertemplate "github.com/goliatone/go-compositor/pkg/render/template"
	"github.com/goliatone/go-compositor/pkg/render/template/pongo"
)

const layoutTemplate = "templates/page.tmpl"

type Option func(*config)

type config struct {
	templateFS fs.FS
	layout     rendertemplate.Layout
	inlineCSS  bool
	title      string
}

// WithTemplatesFS supplies an alternate layout bundle. It must contain
// templates/page.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithLayout injects a custom layout engine. The bundled stylesheet and the
// default title are handed to it as global data.
func WithLayout(layout rendertemplate.Layout) Option {
	return func(cfg *config) {
		if layout != nil {
			cfg.layout = layout
		}
	}
}

// WithInlineStylesheet toggles embedding the bundled stylesheet in a style
// element. Enabled by default.
func WithInlineStylesheet(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineCSS = enabled
	}
}

// WithDefaultTitle sets the title used when RenderOptions.Title is empty.
func WithDefaultTitle(title string) Option {
	return func(cfg *config) {
		cfg.title = strings.TrimSpace(title)
	}
}

type Renderer struct {
	layout rendertemplate.Layout
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the page renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), inlineCSS: true, title: "compositor"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	globals := map[string]any{"default_title": cfg.title, "inline_css": ""}
	if cfg.inlineCSS {
		globals["inline_css"] = defaultStylesheet()
	}

	if cfg.layout != nil {
		if err := cfg.layout.GlobalContext(globals); err != nil {
			return nil, fmt.Errorf("page renderer: layout globals: %w", err)
		}
		return &Renderer{layout: cfg.layout}, nil
	}

	engine, err := pongo.New(cfg.templateFS,
		pongo.WithExtension(".tmpl"),
		pongo.WithGlobalData(globals),
	)
	if err != nil {
		return nil, fmt.Errorf("page renderer: configure layout: %w", err)
	}
	return &Renderer{layout: engine}, nil
}

func (r *Renderer) Name() string {
	return "page"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, root markup.Node, options render.RenderOptions) ([]byte, error) {
	if r.layout == nil {
		return nil, fmt.Errorf("page renderer: layout is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stylesheets := make([]any, 0, len(options.Stylesheets))
	for _, href := range options.Stylesheets {
		stylesheets = append(stylesheets, href)
	}
	// Messages get their own slot in the layout; only hidden inputs touch root.
	body := render.Decorate(root, render.RenderOptions{Hidden: options.Hidden})

	result, err := r.layout.RenderTemplate(layoutTemplate, map[string]any{
		"title":       strings.TrimSpace(options.Title),
		"stylesheets": stylesheets,
		"messages":    markup.Compose(options.Messages...),
		"body":        markup.Compose(body...),
	})
	if err != nil {
		return nil, fmt.Errorf("page renderer: render layout: %w", err)
	}
	return []byte(result), nil
}
