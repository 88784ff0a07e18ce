package openapi_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-compositor/pkg/openapi"
)

const petstore = `{
  "openapi": "3.0.3",
  "info": {"title": "Pets", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "Pet": {
        "type": "object",
        "properties": {
          "id": {"type": "integer", "x-primary-key": true},
          "name": {"type": "string", "title": "Name"}
        }
      }
    }
  }
}`

func TestStore(t *testing.T) {
	store, err := openapi.Store(context.Background(), []byte(petstore), openapi.WithValidation(true))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	table, ok := store.Table("Pet")
	if !ok {
		t.Fatalf("expected Pet table, have %v", store.Names())
	}
	if len(table.Columns) != 2 || table.Columns[0] != "id INTEGER PRIMARY KEY" {
		t.Fatalf("unexpected columns %v", table.Columns)
	}
	if text, _ := table.Labels.Get("name"); text != "Name" {
		t.Fatalf("unexpected label %q", text)
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{"api.json": {Data: []byte(petstore)}}
	tables, err := openapi.LoadFS(context.Background(), fsys, "api.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("expected one table, got %d", len(tables))
	}
	if _, err := openapi.LoadFS(context.Background(), fsys, "missing.json"); err == nil {
		t.Fatalf("expected missing file error")
	}
}
