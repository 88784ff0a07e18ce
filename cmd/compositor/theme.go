package main

import (
	"fmt"
	"os"

	theme "github.com/goliatone/go-theme"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// themeFile is the on-disk shape of a --theme file:
//
//	name: lab
//	tokens:
//	  compositor.table: grid
//	variants:
//	  dark:
//	    tokens:
//	      compositor.table.cell: grid-cell-dark
type themeFile struct {
	Name     string                  `mapstructure:"name"`
	Variant  string                  `mapstructure:"variant"`
	Tokens   map[string]string       `mapstructure:"tokens"`
	Variants map[string]themeVariant `mapstructure:"variants"`
}

type themeVariant struct {
	Tokens map[string]string `mapstructure:"tokens"`
}

// loadTheme reads a theme file into a go-theme selection. An explicit
// variant wins over the file's default variant; naming a variant the file
// does not define is an error.
func loadTheme(path, variant string) (*theme.Selection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theme: read %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("theme: parse %s: %w", path, err)
	}
	var file themeFile
	if err := mapstructure.Decode(raw, &file); err != nil {
		return nil, fmt.Errorf("theme: decode %s: %w", path, err)
	}

	if variant == "" {
		variant = file.Variant
	}
	manifest := &theme.Manifest{
		Tokens:   file.Tokens,
		Variants: make(map[string]theme.Variant, len(file.Variants)),
	}
	for name, v := range file.Variants {
		manifest.Variants[name] = theme.Variant{Tokens: v.Tokens}
	}
	if _, ok := manifest.Variants[variant]; variant != "" && !ok {
		return nil, fmt.Errorf("theme: %s has no variant %q", path, variant)
	}

	return &theme.Selection{
		Theme:    file.Name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}
