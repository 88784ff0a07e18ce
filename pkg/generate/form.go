package generate

import (
	"errors"

	"github.com/goliatone/go-compositor/pkg/markup"
	"github.com/goliatone/go-compositor/pkg/schema"
)

// Field is a column selected for a form, with the label it is shown under.
type Field struct {
	Spec  schema.ColumnSpec
	Label string
}

// Fields returns the columns a form built with the same options shows, in
// display order. Primary keys and constraint lines are left out; columns
// with unsupported types are logged and skipped. With WithLabels only
// labelled columns are kept, in label order; otherwise descriptor order is
// used.
func Fields(columns []string, options ...Option) []Field {
	cfg := newConfig(options)
	return cfg.fields(columns)
}

func (cfg config) fields(columns []string) []Field {
	fields := make([]Field, 0, len(columns))
	for _, descriptor := range columns {
		spec, err := schema.ParseColumn(descriptor)
		if errors.Is(err, schema.ErrEmptyDescriptor) || spec.Skip() {
			continue
		}

		label := spec.DisplayName
		if cfg.labelsSet {
			text, ok := cfg.labels.Get(spec.Name)
			if !ok {
				continue
			}
			label = text
		}

		if err != nil {
			cfg.logger.Warn("generate: skipping column", "column", spec.Name, "error", err)
			continue
		}
		fields = append(fields, Field{Spec: spec, Label: label})
	}

	if cfg.labelsSet {
		fields = orderByLabels(fields, cfg.labels)
	}
	return fields
}

// Form builds an editable form from column descriptors, one row per Fields
// entry: the label cell followed by the input cell (with the unit, if any).
func Form(columns []string, options ...Option) markup.Node {
	cfg := newConfig(options)

	fields := cfg.fields(columns)
	tableRows := make([]markup.Node, 0, len(fields))
	for _, field := range fields {
		input := cfg.input(field.Spec)
		if field.Spec.Unit != "" {
			input = append(input, markup.Text(field.Spec.Unit))
		}
		tableRows = append(tableRows, markup.El("tr", markup.Children(
			markup.El("td", markup.Class(cfg.classes.Label), markup.InnerText(field.Label)),
			markup.El("td", markup.Children(input...)),
		)))
	}

	return markup.El("div", markup.Class(cfg.classes.FormContainer), markup.Children(
		markup.El("table", markup.Class(cfg.classes.FormTable), markup.Children(
			markup.El("tbody", markup.Children(tableRows...)),
		)),
	))
}

// input builds the control for one column.
func (cfg config) input(spec schema.ColumnSpec) []markup.Node {
	current, hasCurrent := cfg.values[spec.Name]
	if current == nil {
		hasCurrent = false
	}

	switch {
	case spec.Type.Numeric():
		return []markup.Node{textInput(spec.Name, "number", current, hasCurrent)}
	case spec.Type == schema.TypeBoolean:
		return []markup.Node{markup.El("input",
			markup.Name(spec.Name),
			markup.Type("checkbox"),
			markup.Checked(hasCurrent && Truthy(current)),
		)}
	case spec.Enumerated():
		selected, _ := current.(string)
		options := make([]markup.Node, 0, len(spec.EnumValues))
		for _, value := range spec.EnumValues {
			options = append(options, markup.El("option",
				markup.Value(value),
				markup.Selected(hasCurrent && selected == value),
				markup.InnerText(value),
			))
		}
		return []markup.Node{markup.El("select", markup.Name(spec.Name), markup.Children(options...))}
	default:
		return []markup.Node{textInput(spec.Name, "text", current, hasCurrent)}
	}
}

func textInput(name, inputType string, current any, hasCurrent bool) markup.Node {
	options := []markup.Option{markup.Name(name), markup.Type(inputType)}
	if hasCurrent {
		options = append(options, markup.Value(current))
	}
	return markup.El("input", options...)
}

func orderByLabels(fields []Field, labels schema.Labels) []Field {
	byName := make(map[string]Field, len(fields))
	for _, field := range fields {
		byName[field.Spec.Name] = field
	}
	ordered := make([]Field, 0, len(fields))
	for _, key := range labels.Keys() {
		if field, ok := byName[key]; ok {
			ordered = append(ordered, field)
			delete(byName, key)
		}
	}
	return ordered
}
