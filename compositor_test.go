package compositor_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-compositor"
	"github.com/goliatone/go-compositor/pkg/generate"
	"github.com/goliatone/go-compositor/pkg/markup"
	"github.com/goliatone/go-compositor/pkg/renderers/fragment"
)

func TestEscape(t *testing.T) {
	escaped := compositor.EscapeMarkup("<a>")
	if escaped != "&#60;a&#62;" {
		t.Fatalf("unexpected markup escape %q", escaped)
	}
	if again := compositor.EscapeMarkup(escaped); again != escaped {
		t.Fatalf("escaping is not idempotent: %q", again)
	}
	if got := compositor.EscapeScript("<a>"); got != `\x3ca\x3e` {
		t.Fatalf("unexpected script escape %q", got)
	}
}

func TestParseColumn(t *testing.T) {
	spec, err := compositor.ParseColumn("volume_ul REAL")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if spec.DisplayName != "volume" || spec.Unit != " μL" {
		t.Fatalf("unexpected name/unit %q %q", spec.DisplayName, spec.Unit)
	}
}

func TestGenerateFormCompose(t *testing.T) {
	form := compositor.GenerateForm(
		[]string{"id INTEGER PRIMARY KEY", "dose_mm REAL"},
		generate.WithValues(map[string]any{"dose_mm": 2.5}),
	)

	want := `<div class="form&#95;container"><table class="form&#95;table"><tbody>` +
		`<tr><td class="display&#95;name">dose</td>` +
		`<td><input type="number" name="dose&#95;mm" value="2&#46;5">&#32;mm</td></tr>` +
		`</tbody></table></div>`
	if diff := cmp.Diff(want, compositor.Compose(form)); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateTable(t *testing.T) {
	table := compositor.GenerateTable(
		[]compositor.Row{{"id": 1, "done": 1}},
		[]string{"id INTEGER PRIMARY KEY", "done BOOLEAN"},
		compositor.Labels{{Key: "done", Text: "Done"}},
	)

	want := `<div class="display&#95;container"><table class="display&#95;table">` +
		`<tr><th>Done</th></tr>` +
		`<tr><a id="row&#95;1"></a><td class="display&#95;cell">true</td></tr>` +
		`</table></div>`
	if diff := cmp.Diff(want, table.String()); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeJSON(t *testing.T) {
	got, err := compositor.ComposeJSON([]byte(`["hi", {"tag": "p", "className": "x", "innerText": "a<b", "onload": "evil()"}]`))
	if err != nil {
		t.Fatalf("compose json: %v", err)
	}
	want := "hi\n" + `<p class="x">a&#60;b</p>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("composed mismatch (-want +got):\n%s", diff)
	}

	if _, err := compositor.ComposeJSON([]byte(`{"innerText": "no tag"}`)); err == nil {
		t.Fatalf("expected error for element without tag")
	}
}

func TestNewRegistry(t *testing.T) {
	registry, err := compositor.NewRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if diff := cmp.Diff([]string{"html", "json", "page"}, registry.List()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}

	if _, err := compositor.NewRegistry(fragment.New()); err == nil {
		t.Fatalf("expected duplicate renderer error")
	}
}

func TestRender(t *testing.T) {
	out, contentType, err := compositor.Render(context.Background(), "html",
		markup.El("p", markup.InnerText("ok")), compositor.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "<p>ok</p>" || contentType != "text/html; charset=utf-8" {
		t.Fatalf("unexpected output %q (%s)", out, contentType)
	}

	if _, _, err := compositor.Render(context.Background(), "pdf", markup.El("p"), compositor.RenderOptions{}); err == nil {
		t.Fatalf("expected unknown renderer error")
	}
}
