// Package schema parses relational column descriptors ("dose_mm REAL",
// "status TEXT CHECK (status IN ('open','closed'))") into ColumnSpec values
// that drive form and table generation.
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Type is a declared column type.
type Type string

const (
	TypeInteger Type = "INTEGER"
	TypeReal    Type = "REAL"
	TypeBoolean Type = "BOOLEAN"
	TypeText    Type = "TEXT"
)

// Supported reports whether the generators know how to render t.
func (t Type) Supported() bool {
	switch t {
	case TypeInteger, TypeReal, TypeBoolean, TypeText:
		return true
	default:
		return false
	}
}

// Numeric reports whether t renders as a number input.
func (t Type) Numeric() bool {
	return t == TypeInteger || t == TypeReal
}

var (
	// ErrEmptyDescriptor is returned for blank descriptors.
	ErrEmptyDescriptor = errors.New("schema: column descriptor is empty")
	// ErrMissingType is returned when a descriptor has no type token.
	ErrMissingType = errors.New("schema: column descriptor has no type")
)

// UnsupportedTypeError reports a declared type the generators cannot render.
// Callers skip the column and carry on.
type UnsupportedTypeError struct {
	Column string
	Type   string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("schema: column %q has unsupported type %q", e.Column, e.Type)
}

// ColumnSpec is the parsed form of one column descriptor.
type ColumnSpec struct {
	// Descriptor is the original, untrimmed descriptor string.
	Descriptor string
	// Name is the raw column name (first token), used as the input name.
	Name string
	// DisplayName is Name with underscores turned into spaces and any unit
	// suffix removed.
	DisplayName string
	// Unit is the unit annotation split off the name (" mm", " μL").
	Unit string
	Type Type
	// PrimaryKey is set when the descriptor declares PRIMARY KEY.
	PrimaryKey bool
	// Constraint marks a table-level constraint line (UNIQUE, CONSTRAINT,
	// ...) that describes no data column at all.
	Constraint bool
	// EnumValues lists the literals of a CHECK (... IN (...)) clause on a
	// TEXT column, in declaration order.
	EnumValues []string
}

// Skip reports whether the column is excluded from form generation.
func (c ColumnSpec) Skip() bool {
	return c.Constraint || c.PrimaryKey
}

// Enumerated reports whether the column is restricted to EnumValues.
func (c ColumnSpec) Enumerated() bool {
	return c.Type == TypeText && len(c.EnumValues) > 0
}

// constraintKeywords open table-level constraint lines.
var constraintKeywords = map[string]struct{}{
	"UNIQUE":     {},
	"CONSTRAINT": {},
	"PRIMARY":    {},
	"FOREIGN":    {},
	"CHECK":      {},
}

// ParseColumn parses a single descriptor. For descriptors with an unsupported
// type the returned spec still carries the name, unit and key flags, and the
// error is an *UnsupportedTypeError.
func ParseColumn(descriptor string) (ColumnSpec, error) {
	tokens := strings.Fields(descriptor)
	if len(tokens) == 0 {
		return ColumnSpec{Descriptor: descriptor}, ErrEmptyDescriptor
	}

	name := tokens[0]
	if _, ok := constraintKeywords[name]; ok {
		return ColumnSpec{Descriptor: descriptor, Name: name, Constraint: true}, nil
	}

	display, unit := NameUnit(name)
	spec := ColumnSpec{
		Descriptor:  descriptor,
		Name:        name,
		DisplayName: display,
		Unit:        unit,
		PrimaryKey:  hasPrimaryKey(tokens),
	}

	if len(tokens) < 2 {
		return spec, fmt.Errorf("%w: %q", ErrMissingType, name)
	}

	declared := strings.ToUpper(tokens[1])
	spec.Type = Type(declared)
	if !spec.Type.Supported() {
		return spec, &UnsupportedTypeError{Column: name, Type: declared}
	}

	if spec.Type == TypeText {
		spec.EnumValues = enumValues(tokens[2:])
	}
	return spec, nil
}

// ParseColumns parses every descriptor, returning the specs that parsed
// cleanly in order alongside the errors of those that did not.
func ParseColumns(descriptors []string) ([]ColumnSpec, []error) {
	specs := make([]ColumnSpec, 0, len(descriptors))
	var errs []error
	for _, descriptor := range descriptors {
		spec, err := ParseColumn(descriptor)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		specs = append(specs, spec)
	}
	return specs, errs
}

func hasPrimaryKey(tokens []string) bool {
	for i := 2; i+1 < len(tokens); i++ {
		if strings.EqualFold(tokens[i], "PRIMARY") && strings.EqualFold(trimPunct(tokens[i+1]), "KEY") {
			return true
		}
	}
	return false
}

func trimPunct(token string) string {
	return strings.TrimRight(token, ",()")
}

// Format is the display format detected for a column.
type Format string

const FormatBoolean Format = "boolean"

// DetectFormats maps column names to their display format. Only boolean
// columns receive an entry.
func DetectFormats(descriptors []string) map[string]Format {
	formats := make(map[string]Format)
	for _, descriptor := range descriptors {
		tokens := strings.Fields(descriptor)
		if len(tokens) < 2 {
			continue
		}
		if Type(strings.ToUpper(tokens[1])) == TypeBoolean {
			formats[tokens[0]] = FormatBoolean
		}
	}
	return formats
}
