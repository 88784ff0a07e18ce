package page_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-compositor/pkg/generate"
	"github.com/goliatone/go-compositor/pkg/markup"
	"github.com/goliatone/go-compositor/pkg/render"
	"github.com/goliatone/go-compositor/pkg/renderers/page"
)

func TestRenderer_WrapsBodyInLayout(t *testing.T) {
	renderer, err := page.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	root := markup.El("p", markup.InnerText("a < b"))
	out, err := renderer.Render(context.Background(), root, render.RenderOptions{
		Title:       "Samples & more",
		Stylesheets: []string{"/static/site.css"},
		Messages:    []markup.Node{generate.SuccessMessage("ok")},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	got := string(out)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Samples &amp; more</title>",
		`<link rel="stylesheet" href="/static/site.css">`,
		".display_table",
		"<div class=\"text&#95;pad&#32;success\">ok</div>\n<p>a&#32;&#60;&#32;b</p>",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestRenderer_DefaultTitleAndNoInlineCSS(t *testing.T) {
	renderer, err := page.New(page.WithDefaultTitle("Lab"), page.WithInlineStylesheet(false))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.Render(context.Background(), markup.El("br"), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, "<title>Lab</title>") {
		t.Fatalf("expected default title, got:\n%s", got)
	}
	if strings.Contains(got, "<style>") {
		t.Fatalf("expected no inline stylesheet, got:\n%s", got)
	}
}

func TestRenderer_CustomLayout(t *testing.T) {
	layouts := fstest.MapFS{
		"templates/page.tmpl": {Data: []byte("[{{ title }}]{{ body|safe }}")},
	}
	renderer, err := page.New(page.WithTemplatesFS(layouts))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.Render(context.Background(), markup.El("br"), render.RenderOptions{Title: "t"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "[t]<br>" {
		t.Fatalf("unexpected output %q", got)
	}
}

type recordingLayout struct {
	globals map[string]any
	name    string
	data    map[string]any
}

func (l *recordingLayout) RenderTemplate(name string, data map[string]any) (string, error) {
	l.name, l.data = name, data
	return "ok", nil
}

func (l *recordingLayout) GlobalContext(data map[string]any) error {
	l.globals = data
	return nil
}

func TestRenderer_WithLayout(t *testing.T) {
	layout := &recordingLayout{}
	renderer, err := page.New(page.WithLayout(layout), page.WithDefaultTitle("Lab"), page.WithInlineStylesheet(false))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if layout.globals["default_title"] != "Lab" || layout.globals["inline_css"] != "" {
		t.Fatalf("unexpected globals %v", layout.globals)
	}

	root := markup.El("form")
	out, err := renderer.Render(context.Background(), root, render.RenderOptions{
		Messages: []markup.Node{generate.ErrorMessage("bad")},
		Hidden:   []render.HiddenField{{Name: "_csrf", Value: "t"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "ok" || layout.name != "templates/page.tmpl" {
		t.Fatalf("unexpected render %q via %q", out, layout.name)
	}
	if got := layout.data["messages"]; got != `<div class="text&#95;pad&#32;error">bad</div>` {
		t.Fatalf("unexpected messages %q", got)
	}
	if got := layout.data["body"]; got != `<form><input type="hidden" name="&#95;csrf" value="t"></form>` {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestAssetsFS(t *testing.T) {
	if _, err := page.AssetsFS().Open(page.StylesheetName); err != nil {
		t.Fatalf("open stylesheet: %v", err)
	}
}
