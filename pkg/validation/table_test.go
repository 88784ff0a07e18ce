package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-compositor/pkg/schema"
	"github.com/goliatone/go-compositor/pkg/validation"
)

func TestValidateTable_Clean(t *testing.T) {
	table := schema.Table{
		Name: "samples",
		Columns: []string{
			"id INTEGER PRIMARY KEY",
			"volume_ul REAL",
			"active BOOLEAN",
			"status TEXT CHECK (status IN ('open','closed'))",
			"UNIQUE (id, status)",
		},
		Labels: schema.NewLabels("volume_ul", "Volume", "status", "Status"),
		Rows: []map[string]any{
			{"id": 1, "volume_ul": 2.5, "active": true, "status": "open"},
			{"id": 2, "volume_ul": "3", "active": nil, "status": nil},
		},
	}

	result := validation.ValidateTable(table)
	if !result.Valid || len(result.Issues) != 0 {
		t.Fatalf("expected a clean table, got %v", result.Issues)
	}
}

func TestValidateTable_Issues(t *testing.T) {
	table := schema.Table{
		Name: "samples",
		Columns: []string{
			"id INTEGER PRIMARY KEY",
			"shape BLOB",
			"note",
			"status TEXT CHECK (status IN ('open','closed'))",
			"status TEXT",
		},
		Labels: schema.NewLabels("colour", "Colour"),
		Rows: []map[string]any{
			{"id": 1, "status": "pending", "extra": 1},
			{"id": 1, "status": "open"},
			{"id": "x"},
		},
	}

	result := validation.ValidateTable(table)
	if result.Valid {
		t.Fatalf("expected issues")
	}

	got := make([]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		got = append(got, issue.String())
	}
	want := []string{
		`samples.shape: unsupported type "BLOB"`,
		`samples.note: column descriptor has no type: "note"`,
		`samples.status: duplicate column`,
		`samples.colour: label names an unknown column`,
		`samples[1].extra: unknown column`,
		`samples[1].status: "pending" is not one of open, closed`,
		`samples[2].id: duplicate id "1" (first used by row 1)`,
		`samples[3].id: "x" is not a number`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateStore(t *testing.T) {
	store, err := schema.NewStore(
		schema.Table{Name: "b", Columns: []string{"x WHATEVER"}},
		schema.Table{Name: "a", Columns: []string{"y TEXT"}, Labels: schema.NewLabels("z", "Z")},
	)
	if err != nil {
		t.Fatalf("store: %v", err)
	}

	result := validation.ValidateStore(store)
	want := validation.Result{
		Valid: false,
		Issues: []validation.Issue{
			{Table: "a", Column: "z", Message: "label names an unknown column"},
			{Table: "b", Column: "x", Message: `unsupported type "WHATEVER"`},
		},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}
