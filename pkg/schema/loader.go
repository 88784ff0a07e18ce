package schema

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table is a named table definition: its column descriptors, display labels
// and optional sample rows.
type Table struct {
	Name    string
	Source  string
	Columns []string
	Labels  Labels
	Rows    []map[string]any
}

// Specs parses the table's column descriptors.
func (t Table) Specs() ([]ColumnSpec, []error) {
	return ParseColumns(t.Columns)
}

// DisplayLabels returns the table's labels. Tables defined without labels
// get one per data column, captioned with its display name.
func (t Table) DisplayLabels() Labels {
	if len(t.Labels) > 0 {
		return append(Labels(nil), t.Labels...)
	}
	labels := make(Labels, 0, len(t.Columns))
	for _, descriptor := range t.Columns {
		spec, err := ParseColumn(descriptor)
		if err != nil || spec.Constraint {
			continue
		}
		labels = append(labels, Label{Key: spec.Name, Text: spec.DisplayName})
	}
	return labels
}

// Store holds table definitions keyed by name.
type Store struct {
	tables map[string]Table
}

// NewStore builds a store from in-memory definitions.
func NewStore(tables ...Table) (*Store, error) {
	store := &Store{tables: make(map[string]Table, len(tables))}
	for _, table := range tables {
		if err := store.add(table); err != nil {
			return nil, err
		}
	}
	return store, nil
}

type documentFile struct {
	Tables map[string]tableFile `json:"tables" yaml:"tables"`
}

type tableFile struct {
	SQL     string           `json:"sql" yaml:"sql"`
	Columns []string         `json:"columns" yaml:"columns"`
	Labels  Labels           `json:"labels" yaml:"labels"`
	Rows    []map[string]any `json:"rows" yaml:"rows"`
}

// LoadFS walks fsys and parses every JSON/YAML table definition file. A nil
// filesystem yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{tables: make(map[string]Table)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}
		tables, err := ParseDefinitions(data, path)
		if err != nil {
			return err
		}
		for _, table := range tables {
			if err := store.add(table); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// ParseDefinitions decodes one definition document. JSON documents are
// accepted as YAML.
func ParseDefinitions(data []byte, source string) ([]Table, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("schema: file %s is empty", source)
	}
	var doc documentFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse %s: %w", source, err)
	}

	names := make([]string, 0, len(doc.Tables))
	for name := range doc.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	tables := make([]Table, 0, len(names))
	for _, name := range names {
		table, err := normaliseTable(name, source, doc.Tables[name])
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func normaliseTable(name, source string, raw tableFile) (Table, error) {
	id := strings.TrimSpace(name)
	if id == "" {
		return Table{}, fmt.Errorf("schema: file %s defines a table with an empty name", source)
	}

	columns := append([]string(nil), raw.Columns...)
	if sql := strings.TrimSpace(raw.SQL); sql != "" {
		if len(columns) > 0 {
			return Table{}, fmt.Errorf("schema: table %q (file %s) sets both sql and columns", id, source)
		}
		_, parsed, err := SplitCreateTable(sql)
		if err != nil {
			return Table{}, fmt.Errorf("schema: table %q (file %s): %w", id, source, err)
		}
		columns = parsed
	}
	if len(columns) == 0 {
		return Table{}, fmt.Errorf("schema: table %q (file %s) has no columns", id, source)
	}

	return Table{
		Name:    id,
		Source:  source,
		Columns: columns,
		Labels:  append(Labels(nil), raw.Labels...),
		Rows:    raw.Rows,
	}, nil
}

func (s *Store) add(table Table) error {
	if table.Name == "" {
		return fmt.Errorf("schema: table name is required")
	}
	if _, exists := s.tables[table.Name]; exists {
		return fmt.Errorf("schema: duplicate table %q (file %s)", table.Name, table.Source)
	}
	s.tables[table.Name] = table
	return nil
}

// Table returns the named definition.
func (s *Store) Table(name string) (Table, bool) {
	if s == nil {
		return Table{}, false
	}
	table, ok := s.tables[name]
	return table, ok
}

// Names lists table names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any tables.
func (s *Store) Empty() bool {
	return s == nil || len(s.tables) == 0
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
