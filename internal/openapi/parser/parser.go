package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-compositor/pkg/schema"
)

// Extension keys read from component schemas and their properties.
const (
	PrimaryKeyExtension = "x-primary-key"
	OrderExtension      = "x-column-order"
	TableExtension      = "x-table"
)

// Options tune document parsing.
type Options struct {
	// Validate runs kin-openapi document validation before conversion.
	Validate bool
}

// Tables converts every object schema under components.schemas into a
// table definition. Scalar properties become column descriptors; arrays and
// nested objects have no column equivalent and are left out.
func Tables(ctx context.Context, raw []byte, options Options) ([]schema.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi parser: document does not define component schemas")
	}

	names := make([]string, 0, len(spec.Components.Schemas))
	for name := range spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	tables := make([]schema.Table, 0, len(names))
	for _, name := range names {
		ref := spec.Components.Schemas[name]
		if ref == nil || ref.Value == nil || firstSchemaType(ref.Value.Type) != openapi3.TypeObject {
			continue
		}
		table := convertObject(name, ref.Value)
		if len(table.Columns) == 0 {
			continue
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func convertObject(name string, src *openapi3.Schema) schema.Table {
	tableName := name
	if override, ok := src.Extensions[TableExtension].(string); ok && strings.TrimSpace(override) != "" {
		tableName = strings.TrimSpace(override)
	}

	required := make(map[string]struct{}, len(src.Required))
	for _, key := range src.Required {
		required[key] = struct{}{}
	}

	table := schema.Table{Name: tableName, Source: "openapi:" + name}
	for _, key := range propertyOrder(src) {
		ref := src.Properties[key]
		if ref == nil || ref.Value == nil {
			continue
		}
		descriptor, ok := descriptorFor(key, ref.Value, required)
		if !ok {
			continue
		}
		table.Columns = append(table.Columns, descriptor)
		if isPrimaryKey(ref.Value) {
			continue
		}
		label := strings.TrimSpace(ref.Value.Title)
		if label == "" {
			label, _ = schema.NameUnit(key)
		}
		table.Labels = table.Labels.Set(key, label)
	}
	return table
}

// propertyOrder honours an x-column-order list and appends any remaining
// properties alphabetically.
func propertyOrder(src *openapi3.Schema) []string {
	seen := make(map[string]struct{}, len(src.Properties))
	var ordered []string
	if listed, ok := src.Extensions[OrderExtension].([]any); ok {
		for _, item := range listed {
			key, ok := item.(string)
			if !ok {
				continue
			}
			if _, exists := src.Properties[key]; !exists {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			ordered = append(ordered, key)
		}
	}

	rest := make([]string, 0, len(src.Properties))
	for key := range src.Properties {
		if _, ok := seen[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

func descriptorFor(key string, src *openapi3.Schema, required map[string]struct{}) (string, bool) {
	var declared schema.Type
	switch firstSchemaType(src.Type) {
	case openapi3.TypeInteger:
		declared = schema.TypeInteger
	case openapi3.TypeNumber:
		declared = schema.TypeReal
	case openapi3.TypeBoolean:
		declared = schema.TypeBoolean
	case openapi3.TypeString:
		declared = schema.TypeText
	default:
		return "", false
	}

	parts := []string{key, string(declared)}
	if isPrimaryKey(src) {
		parts = append(parts, "PRIMARY", "KEY")
	} else if _, ok := required[key]; ok {
		parts = append(parts, "NOT", "NULL")
	}
	if declared == schema.TypeText {
		if literals := enumLiterals(src.Enum); len(literals) > 0 {
			parts = append(parts, "CHECK", "("+key, "IN", "("+strings.Join(literals, ",")+"))")
		}
	}
	return strings.Join(parts, " "), true
}

func enumLiterals(values []any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		text, ok := value.(string)
		if !ok || text == "" || strings.Contains(text, "'") {
			continue
		}
		out = append(out, "'"+text+"'")
	}
	return out
}

func isPrimaryKey(src *openapi3.Schema) bool {
	switch v := src.Extensions[PrimaryKeyExtension].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
