// Package escape implements the two escaping dialects used by the compositor:
// markup text (decimal numeric character references) and script strings
// (hexadecimal \x escapes).
package escape

import (
	"strconv"
	"strings"
)

// needsEscape reports whether r falls in one of the ranges both dialects
// treat as unsafe: ASCII controls and punctuation plus everything above 'z'.
func needsEscape(r rune) bool {
	return r <= 47 || (r >= 58 && r <= 64) || (r >= 91 && r <= 96) || r >= 123
}

// Markup encodes every character outside [0-9A-Za-z] as a decimal numeric
// character reference (&#N;). Existing numeric references are copied through
// untouched, which makes Markup idempotent.
func Markup(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) * 2)

	for i := 0; i < len(runes); {
		if end, ok := numericReference(runes, i); ok {
			b.WriteString(string(runes[i : end+1]))
			i = end + 1
			continue
		}
		r := runes[i]
		if needsEscape(r) {
			b.WriteString("&#")
			b.WriteString(strconv.Itoa(int(r)))
			b.WriteByte(';')
		} else {
			b.WriteRune(r)
		}
		i++
	}
	return b.String()
}

// numericReference reports whether runes[start:] opens an already escaped
// reference and returns the index of its terminating ';'. The optional hex
// marker is accepted but only decimal digits are scanned after it, and at
// least one digit must precede the ';'.
func numericReference(runes []rune, start int) (int, bool) {
	if runes[start] != '&' || start+1 >= len(runes) || runes[start+1] != '#' {
		return 0, false
	}
	j := start + 2
	if j < len(runes) && (runes[j] == 'x' || runes[j] == 'X') {
		j++
	}
	digits := j
	for j < len(runes) {
		switch r := runes[j]; {
		case r >= '0' && r <= '9':
			j++
		case r == ';' && j > digits:
			return j, true
		default:
			return 0, false
		}
	}
	return 0, false
}

// Script encodes characters that are unsafe inside a quoted script string as
// \x<hex>. Code points of 256 and above pass through unchanged. Unlike
// Markup, Script has no double-escape detection.
//
// The hex is lowercase and not zero padded: a newline becomes \xa, not \x0a.
// Code points below 16 therefore yield a single hex digit, and a JavaScript
// parser will not read such an escape as one character. Callers embedding
// the result in script source must not rely on it decoding back.
func Script(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s) * 2)

	for _, r := range s {
		if needsEscape(r) && r <= 255 {
			b.WriteString(`\x`)
			b.WriteString(strconv.FormatInt(int64(r), 16))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
