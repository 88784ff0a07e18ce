package generate

import (
	theme "github.com/goliatone/go-theme"
)

// Classes lists the CSS classes the generators attach to their markup.
type Classes struct {
	TableContainer string
	Table          string
	Cell           string
	FormContainer  string
	FormTable      string
	Label          string
}

// Theme token keys read by ClassesFromTheme.
const (
	TokenTableContainer = "compositor.table.container"
	TokenTable          = "compositor.table"
	TokenCell           = "compositor.table.cell"
	TokenFormContainer  = "compositor.form.container"
	TokenFormTable      = "compositor.form.table"
	TokenLabel          = "compositor.form.label"
)

// DefaultClasses returns the built-in class names.
func DefaultClasses() Classes {
	return Classes{
		TableContainer: "display_container",
		Table:          "display_table",
		Cell:           "display_cell",
		FormContainer:  "form_container",
		FormTable:      "form_table",
		Label:          "display_name",
	}
}

func (c Classes) merge(override Classes) Classes {
	pick := func(current, next string) string {
		if next != "" {
			return next
		}
		return current
	}
	return Classes{
		TableContainer: pick(c.TableContainer, override.TableContainer),
		Table:          pick(c.Table, override.Table),
		Cell:           pick(c.Cell, override.Cell),
		FormContainer:  pick(c.FormContainer, override.FormContainer),
		FormTable:      pick(c.FormTable, override.FormTable),
		Label:          pick(c.Label, override.Label),
	}
}

// ClassesFromTheme reads class names from the manifest tokens of a theme
// selection. Variant tokens override manifest tokens. Missing tokens leave
// the corresponding field empty.
func ClassesFromTheme(selection *theme.Selection) Classes {
	if selection == nil || selection.Manifest == nil {
		return Classes{}
	}
	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}
	return Classes{
		TableContainer: tokens[TokenTableContainer],
		Table:          tokens[TokenTable],
		Cell:           tokens[TokenCell],
		FormContainer:  tokens[TokenFormContainer],
		FormTable:      tokens[TokenFormTable],
		Label:          tokens[TokenLabel],
	}
}
