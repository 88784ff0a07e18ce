package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-compositor/pkg/markup"
)

// HiddenField represents a hidden input emitted alongside a generated form.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs a hidden field carrying the provided token under the
// input name the backend expects (for example "_csrf").
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// VersionField constructs a hidden field used for optimistic locking.
func VersionField(name string, version any) HiddenField {
	return Hidden(name, version)
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if field.Name == "" {
			continue
		}
		out[field.Name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields flattens a hidden field map in name order.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.TrimSpace(name) == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: fields[name]})
	}
	return result
}

// HiddenInputs turns fields into input nodes. Later duplicates win and the
// output is sorted by name.
func HiddenInputs(fields ...HiddenField) []markup.Node {
	sorted := SortedHiddenFields(MergeHiddenFields(nil, fields...))
	nodes := make([]markup.Node, 0, len(sorted))
	for _, field := range sorted {
		nodes = append(nodes, markup.El("input",
			markup.Type("hidden"),
			markup.Name(field.Name),
			markup.Value(field.Value),
		))
	}
	return nodes
}

// Decorate applies the shared parts of RenderOptions: message nodes come
// first, hidden inputs are appended to root.
func Decorate(root markup.Node, options RenderOptions) []markup.Node {
	out := make([]markup.Node, 0, len(options.Messages)+1)
	out = append(out, options.Messages...)
	if hidden := HiddenInputs(options.Hidden...); len(hidden) > 0 {
		root = root.With(markup.Append(hidden...))
	}
	return append(out, root)
}
