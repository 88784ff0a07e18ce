package schema_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-compositor/pkg/schema"
)

func TestParseColumn(t *testing.T) {
	cases := []struct {
		name       string
		descriptor string
		want       schema.ColumnSpec
	}{
		{
			name:       "unit suffix mm",
			descriptor: "dose_mm REAL",
			want: schema.ColumnSpec{
				Descriptor:  "dose_mm REAL",
				Name:        "dose_mm",
				DisplayName: "dose",
				Unit:        " mm",
				Type:        schema.TypeReal,
			},
		},
		{
			name:       "unit suffix ul",
			descriptor: "sample_volume_ul integer",
			want: schema.ColumnSpec{
				Descriptor:  "sample_volume_ul integer",
				Name:        "sample_volume_ul",
				DisplayName: "sample volume",
				Unit:        " μL",
				Type:        schema.TypeInteger,
			},
		},
		{
			name:       "primary key",
			descriptor: "id INTEGER PRIMARY KEY",
			want: schema.ColumnSpec{
				Descriptor:  "id INTEGER PRIMARY KEY",
				Name:        "id",
				DisplayName: "id",
				Type:        schema.TypeInteger,
				PrimaryKey:  true,
			},
		},
		{
			name:       "enumerated text",
			descriptor: "status TEXT CHECK (status IN ('open','closed'))",
			want: schema.ColumnSpec{
				Descriptor:  "status TEXT CHECK (status IN ('open','closed'))",
				Name:        "status",
				DisplayName: "status",
				Type:        schema.TypeText,
				EnumValues:  []string{"open", "closed"},
			},
		},
		{
			name:       "enumerated text spaced literals",
			descriptor: "state TEXT NOT NULL CHECK(state IN ('in progress', 'done', 'new'))",
			want: schema.ColumnSpec{
				Descriptor:  "state TEXT NOT NULL CHECK(state IN ('in progress', 'done', 'new'))",
				Name:        "state",
				DisplayName: "state",
				Type:        schema.TypeText,
				EnumValues:  []string{"in progress", "done", "new"},
			},
		},
		{
			name:       "empty literal leading",
			descriptor: "status TEXT CHECK (status IN ('', 'a'))",
			want: schema.ColumnSpec{
				Descriptor:  "status TEXT CHECK (status IN ('', 'a'))",
				Name:        "status",
				DisplayName: "status",
				Type:        schema.TypeText,
				EnumValues:  []string{"a"},
			},
		},
		{
			name:       "empty literal between values",
			descriptor: "status TEXT CHECK (status IN ('a','','b'))",
			want: schema.ColumnSpec{
				Descriptor:  "status TEXT CHECK (status IN ('a','','b'))",
				Name:        "status",
				DisplayName: "status",
				Type:        schema.TypeText,
				EnumValues:  []string{"a", "b"},
			},
		},
		{
			name:       "only empty literals degrade to free text",
			descriptor: "status TEXT CHECK (status IN (''))",
			want: schema.ColumnSpec{
				Descriptor:  "status TEXT CHECK (status IN (''))",
				Name:        "status",
				DisplayName: "status",
				Type:        schema.TypeText,
			},
		},
		{
			name:       "check without in degrades to free text",
			descriptor: "code TEXT CHECK (length(code) > 2)",
			want: schema.ColumnSpec{
				Descriptor:  "code TEXT CHECK (length(code) > 2)",
				Name:        "code",
				DisplayName: "code",
				Type:        schema.TypeText,
			},
		},
		{
			name:       "in before check is ignored",
			descriptor: "note TEXT IN CHECK",
			want: schema.ColumnSpec{
				Descriptor:  "note TEXT IN CHECK",
				Name:        "note",
				DisplayName: "note",
				Type:        schema.TypeText,
			},
		},
		{
			name:       "enum on non text is ignored",
			descriptor: "level INTEGER CHECK (level IN ('1','2'))",
			want: schema.ColumnSpec{
				Descriptor:  "level INTEGER CHECK (level IN ('1','2'))",
				Name:        "level",
				DisplayName: "level",
				Type:        schema.TypeInteger,
			},
		},
		{
			name:       "unique constraint line",
			descriptor: "UNIQUE (name, dose_mm)",
			want: schema.ColumnSpec{
				Descriptor: "UNIQUE (name, dose_mm)",
				Name:       "UNIQUE",
				Constraint: true,
			},
		},
		{
			name:       "named constraint line",
			descriptor: "CONSTRAINT positive CHECK (dose_mm > 0)",
			want: schema.ColumnSpec{
				Descriptor: "CONSTRAINT positive CHECK (dose_mm > 0)",
				Name:       "CONSTRAINT",
				Constraint: true,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := schema.ParseColumn(tc.descriptor)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("spec mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseColumn_UnsupportedType(t *testing.T) {
	spec, err := schema.ParseColumn("created_at TIMESTAMP")
	var unsupported *schema.UnsupportedTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedTypeError, got %v", err)
	}
	if unsupported.Column != "created_at" || unsupported.Type != "TIMESTAMP" {
		t.Fatalf("unexpected error fields: %+v", unsupported)
	}
	if spec.Name != "created_at" || spec.DisplayName != "created at" {
		t.Fatalf("expected partial spec, got %+v", spec)
	}
}

func TestParseColumn_UnsupportedPrimaryKeyStillFlagged(t *testing.T) {
	spec, err := schema.ParseColumn("uuid BLOB PRIMARY KEY")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !spec.Skip() {
		t.Fatalf("expected primary key flag on partial spec")
	}
}

func TestParseColumn_Malformed(t *testing.T) {
	if _, err := schema.ParseColumn("   "); !errors.Is(err, schema.ErrEmptyDescriptor) {
		t.Fatalf("expected ErrEmptyDescriptor, got %v", err)
	}
	if _, err := schema.ParseColumn("lonely"); !errors.Is(err, schema.ErrMissingType) {
		t.Fatalf("expected ErrMissingType, got %v", err)
	}
}

func TestParseColumns(t *testing.T) {
	specs, errs := schema.ParseColumns([]string{
		"id INTEGER PRIMARY KEY",
		"blob BLOB",
		"name TEXT",
	})
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		names = append(names, spec.Name)
	}
	if diff := cmp.Diff([]string{"id", "name"}, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestNameUnit(t *testing.T) {
	cases := map[string][2]string{
		"dose_mm":    {"dose", " mm"},
		"volume_ul":  {"volume", " μL"},
		"first_name": {"first name", ""},
		"mm":         {"mm", ""},
		"summary":    {"summary", ""},
	}
	for in, want := range cases {
		name, unit := schema.NameUnit(in)
		if name != want[0] || unit != want[1] {
			t.Fatalf("NameUnit(%q) = (%q, %q), want (%q, %q)", in, name, unit, want[0], want[1])
		}
	}
}

func TestDetectFormats(t *testing.T) {
	formats := schema.DetectFormats([]string{
		"id INTEGER PRIMARY KEY",
		"active boolean",
		"broken",
		"archived BOOLEAN NOT NULL",
	})
	want := map[string]schema.Format{
		"active":   schema.FormatBoolean,
		"archived": schema.FormatBoolean,
	}
	if diff := cmp.Diff(want, formats); diff != "" {
		t.Fatalf("formats mismatch (-want +got):\n%s", diff)
	}
}
