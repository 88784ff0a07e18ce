package generate_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-compositor/pkg/generate"
	"github.com/goliatone/go-compositor/pkg/markup"
	"github.com/goliatone/go-compositor/pkg/schema"
)

var tableColumns = []string{
	"id INTEGER PRIMARY KEY",
	"note TEXT",
	"dose_mm REAL",
	"active BOOLEAN",
}

// tableRows returns the tr nodes under div > table.
func tableRows(t *testing.T, node markup.Node) []markup.Node {
	t.Helper()
	tables := node.Children()
	if len(tables) != 1 || tables[0].Tag() != "table" {
		t.Fatalf("expected a single table, got %s", node)
	}
	return tables[0].Children()
}

// cellTexts returns the text content of every td in a row.
func cellTexts(row markup.Node) []string {
	var out []string
	for _, cell := range row.Children() {
		if cell.Tag() != "td" {
			continue
		}
		text, _ := cell.Content()
		out = append(out, text)
	}
	return out
}

func TestTable_Structure(t *testing.T) {
	labels := schema.NewLabels("note", "Note", "dose_mm", "Dose")
	rows := []generate.Row{{"id": 4, "note": "<hi>", "dose_mm": 0.25}}

	got := generate.Table(rows, tableColumns, labels).String()
	want := `<div class="display&#95;container"><table class="display&#95;table">` +
		`<tr><th>Note</th><th>Dose</th></tr>` +
		`<tr><a id="row&#95;4"></a><td class="display&#95;cell">&#60;hi&#62;</td><td class="display&#95;cell">0&#46;25</td></tr>` +
		`</table></div>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestTable_ColumnOrderFollowsLabels(t *testing.T) {
	labels := schema.NewLabels("dose_mm", "Dose", "note", "Note")
	rows := []generate.Row{{"note": "n", "dose_mm": 2, "id": 1, "hidden": "h"}}

	table := tableRows(t, generate.Table(rows, tableColumns, labels))
	if diff := cmp.Diff([]string{"2", "n"}, cellTexts(table[1])); diff != "" {
		t.Fatalf("cells mismatch (-want +got):\n%s", diff)
	}
}

func TestTable_NullBlanking(t *testing.T) {
	labels := schema.NewLabels("note", "Note", "active", "Active")
	rows := []generate.Row{{"id": 1, "note": nil, "active": nil}, {"id": 2}}

	blanked := tableRows(t, generate.Table(rows, tableColumns, labels))
	if diff := cmp.Diff([]string{"", ""}, cellTexts(blanked[1])); diff != "" {
		t.Fatalf("blanked cells mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"", ""}, cellTexts(blanked[2])); diff != "" {
		t.Fatalf("absent cells mismatch (-want +got):\n%s", diff)
	}

	literal := tableRows(t, generate.Table(rows, tableColumns, labels, generate.WithBlankNulls(false)))
	if diff := cmp.Diff([]string{"null", "false"}, cellTexts(literal[1])); diff != "" {
		t.Fatalf("literal cells mismatch (-want +got):\n%s", diff)
	}
}

func TestTable_BooleanCells(t *testing.T) {
	labels := schema.NewLabels("active", "Active")
	rows := []generate.Row{
		{"id": 1, "active": 1},
		{"id": 2, "active": 0},
		{"id": 3, "active": true},
		{"id": 4, "active": "2"},
		{"id": 5, "active": "yes"},
		{"id": 6, "active": -1.5},
	}

	table := tableRows(t, generate.Table(rows, tableColumns, labels))
	var got []string
	for _, row := range table[1:] {
		got = append(got, cellTexts(row)...)
	}
	want := []string{"true", "false", "true", "true", "false", "false"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("boolean cells mismatch (-want +got):\n%s", diff)
	}
}

func TestTable_PostprocessorReplacesText(t *testing.T) {
	labels := schema.NewLabels("note", "Note")
	rows := []generate.Row{{"id": 9, "note": "<raw>"}}

	var seen []string
	post := func(row generate.Row, key, display string) []markup.Node {
		seen = append(seen, key+"="+display)
		return []markup.Node{
			markup.El("a", markup.Href("/rows/"+markup.Stringify(row["id"])), markup.InnerText("open")),
			markup.El("input", markup.Type("button"), markup.Value("delete")),
		}
	}

	table := tableRows(t, generate.Table(rows, tableColumns, labels, generate.WithPostprocessor(post)))
	cells := table[1].Children()
	cell := cells[1]
	if got := len(cell.Children()); got != 2 {
		t.Fatalf("expected 2 children, got %d: %s", got, cell)
	}
	if _, hasText := cell.Content(); hasText {
		t.Fatalf("expected children instead of text content")
	}
	if diff := cmp.Diff([]string{"note=<raw>"}, seen); diff != "" {
		t.Fatalf("postprocessor args mismatch (-want +got):\n%s", diff)
	}
}

func TestTable_AnchorKeyAndEmptyRows(t *testing.T) {
	labels := schema.NewLabels("note", "Note")

	table := tableRows(t, generate.Table([]generate.Row{{"uuid": "a-1"}}, tableColumns, labels, generate.WithAnchorKey("uuid")))
	if anchor, _ := table[1].Children()[0].Attr(markup.AttrID); anchor != "row_a-1" {
		t.Fatalf("unexpected anchor id %q", anchor)
	}

	empty := tableRows(t, generate.Table(nil, tableColumns, labels))
	if len(empty) != 1 {
		t.Fatalf("expected header row only, got %d rows", len(empty))
	}
}
