// Package validation lints table definitions. The generators tolerate bad
// definitions by logging and skipping; the linter reports the same problems
// up front together with labels and rows that do not match the columns.
package validation

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-compositor/pkg/markup"
	"github.com/goliatone/go-compositor/pkg/schema"
)

// Issue is one problem found in a table definition.
type Issue struct {
	Table  string `json:"table"`
	Column string `json:"column,omitempty"`
	// Row is the 1-based row index, 0 when the issue is not about a row.
	Row     int    `json:"row,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	location := i.Table
	if i.Row > 0 {
		location += fmt.Sprintf("[%d]", i.Row)
	}
	if i.Column != "" {
		location += "." + i.Column
	}
	return location + ": " + i.Message
}

// Result collects the issues of one or more tables.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

func (r *Result) add(issue Issue) {
	r.Valid = false
	r.Issues = append(r.Issues, issue)
}

// ValidateStore lints every table of store in name order.
func ValidateStore(store *schema.Store) Result {
	result := Result{Valid: true}
	for _, name := range store.Names() {
		table, _ := store.Table(name)
		for _, issue := range ValidateTable(table).Issues {
			result.add(issue)
		}
	}
	return result
}

// ValidateTable lints a single table definition.
func ValidateTable(table schema.Table) Result {
	result := Result{Valid: true}

	specs := make(map[string]schema.ColumnSpec, len(table.Columns))
	for idx, descriptor := range table.Columns {
		spec, err := schema.ParseColumn(descriptor)
		if err != nil {
			column := spec.Name
			if column == "" {
				column = fmt.Sprintf("#%d", idx+1)
			}
			result.add(Issue{Table: table.Name, Column: column, Message: issueMessage(err)})
		}
		if spec.Constraint || spec.Name == "" {
			continue
		}
		if _, dup := specs[spec.Name]; dup {
			result.add(Issue{Table: table.Name, Column: spec.Name, Message: "duplicate column"})
			continue
		}
		specs[spec.Name] = spec
	}

	for _, label := range table.Labels {
		if _, ok := specs[label.Key]; !ok {
			result.add(Issue{Table: table.Name, Column: label.Key, Message: "label names an unknown column"})
		}
	}

	ids := make(map[string]int, len(table.Rows))
	for idx, row := range table.Rows {
		for _, issue := range validateRow(table.Name, idx+1, row, specs) {
			result.add(issue)
		}
		id, ok := row["id"]
		if !ok || id == nil {
			continue
		}
		key := markup.Stringify(id)
		if first, dup := ids[key]; dup {
			result.add(Issue{Table: table.Name, Row: idx + 1, Column: "id", Message: fmt.Sprintf("duplicate id %q (first used by row %d)", key, first)})
			continue
		}
		ids[key] = idx + 1
	}

	return result
}

func validateRow(table string, index int, row map[string]any, specs map[string]schema.ColumnSpec) []Issue {
	var issues []Issue
	for _, key := range slices.Sorted(maps.Keys(row)) {
		value := row[key]
		spec, ok := specs[key]
		if !ok {
			issues = append(issues, Issue{Table: table, Row: index, Column: key, Message: "unknown column"})
			continue
		}
		if value == nil || !spec.Type.Supported() {
			continue
		}

		switch {
		case spec.Type.Numeric() || spec.Type == schema.TypeBoolean:
			if !isNumber(value) {
				issues = append(issues, Issue{Table: table, Row: index, Column: key, Message: fmt.Sprintf("%q is not a number", markup.Stringify(value))})
			}
		case spec.Enumerated():
			text := markup.Stringify(value)
			if !slices.Contains(spec.EnumValues, text) {
				issues = append(issues, Issue{Table: table, Row: index, Column: key, Message: fmt.Sprintf("%q is not one of %s", text, strings.Join(spec.EnumValues, ", "))})
			}
		}
	}
	return issues
}

// issueMessage strips the package prefix the schema errors carry.
func issueMessage(err error) string {
	var unsupported *schema.UnsupportedTypeError
	if errors.As(err, &unsupported) {
		return fmt.Sprintf("unsupported type %q", unsupported.Type)
	}
	msg := strings.TrimSpace(err.Error())
	return strings.TrimPrefix(msg, "schema: ")
}

func isNumber(value any) bool {
	switch v := value.(type) {
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	case string:
		_, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return err == nil
	case fmt.Stringer:
		_, err := strconv.ParseFloat(v.String(), 64)
		return err == nil
	default:
		return false
	}
}
