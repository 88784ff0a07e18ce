package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotCreateTable is returned when a statement is not a CREATE TABLE.
var ErrNotCreateTable = errors.New("schema: statement is not CREATE TABLE")

// SplitCreateTable extracts the table name and the column descriptors of a
// CREATE TABLE statement. Descriptors are split on top-level commas; commas
// inside parentheses or quoted literals do not split.
func SplitCreateTable(statement string) (string, []string, error) {
	open := strings.IndexByte(statement, '(')
	if open < 0 {
		return "", nil, ErrNotCreateTable
	}

	head := strings.Fields(statement[:open])
	if len(head) < 3 || !strings.EqualFold(head[0], "CREATE") {
		return "", nil, ErrNotCreateTable
	}
	rest := head[1:]
	for len(rest) > 0 && !strings.EqualFold(rest[0], "TABLE") {
		// TEMP / TEMPORARY modifiers
		rest = rest[1:]
	}
	if len(rest) < 2 {
		return "", nil, ErrNotCreateTable
	}
	name := rest[len(rest)-1]
	name = strings.Trim(name, "\"`[]")

	body, err := parenthesised(statement[open:])
	if err != nil {
		return "", nil, fmt.Errorf("schema: table %q: %w", name, err)
	}

	var columns []string
	for _, part := range splitTopLevel(body) {
		descriptor := strings.Join(strings.Fields(part), " ")
		if descriptor == "" {
			continue
		}
		columns = append(columns, descriptor)
	}
	return name, columns, nil
}

// parenthesised returns the content of the balanced group opening at s[0].
func parenthesised(s string) (string, error) {
	depth := 0
	quoted := false
	for i, r := range s {
		switch {
		case r == '\'':
			quoted = !quoted
		case quoted:
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth == 0 {
				return s[1:i], nil
			}
		}
	}
	return "", errors.New("unbalanced parentheses")
}

func splitTopLevel(body string) []string {
	var parts []string
	depth := 0
	quoted := false
	start := 0
	for i, r := range body {
		switch {
		case r == '\'':
			quoted = !quoted
		case quoted:
		case r == '(':
			depth++
		case r == ')':
			depth--
		case r == ',' && depth == 0:
			parts = append(parts, body[start:i])
			start = i + 1
		}
	}
	return append(parts, body[start:])
}
