package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-compositor/pkg/generate"
	"github.com/goliatone/go-compositor/pkg/markup"
	"github.com/goliatone/go-compositor/pkg/schema"
)

// ErrorMapping splits an error payload into column-level and form-level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// ErrorPayload collects the *generate.FieldError values wrapped in err
// (including errors.Join trees) keyed by column. Any other error lands under
// the empty key.
func ErrorPayload(err error) map[string][]string {
	if err == nil {
		return nil
	}
	payload := make(map[string][]string)
	var walk func(error)
	walk = func(err error) {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		var fieldErr *generate.FieldError
		if errors.As(err, &fieldErr) {
			payload[fieldErr.Column] = append(payload[fieldErr.Column], fieldErr.Err.Error())
			return
		}
		payload[""] = append(payload[""], err.Error())
	}
	walk(err)
	return payload
}

// MapErrorPayload assigns server error payloads to form columns. Paths may
// use JSON pointer or dotted notation and may be wrapped in request envelopes
// ("/body/name", "$.data.name"); the first segment naming a form column wins.
// Unknown paths are treated as form-level errors so messages are not lost.
func MapErrorPayload(columns []string, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	known := make(map[string]struct{}, len(columns))
	for _, descriptor := range columns {
		spec, err := schema.ParseColumn(descriptor)
		if err != nil || spec.Skip() {
			continue
		}
		known[spec.Name] = struct{}{}
	}

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		column := matchColumn(rawPath, known)
		if column == "" {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[column] = append(mapping.Fields[column], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// Messages renders a mapping as message-bar nodes: form-level messages first,
// then column messages in descriptor order.
func (m ErrorMapping) Messages(columns []string, labels schema.Labels) []markup.Node {
	var nodes []markup.Node
	for _, message := range m.Form {
		nodes = append(nodes, generate.ErrorMessage(message))
	}
	for _, descriptor := range columns {
		spec, err := schema.ParseColumn(descriptor)
		if err != nil {
			continue
		}
		messages, ok := m.Fields[spec.Name]
		if !ok {
			continue
		}
		name := spec.DisplayName
		if text, ok := labels.Get(spec.Name); ok {
			name = text
		}
		for _, message := range messages {
			nodes = append(nodes, generate.ErrorMessage(name+": "+message))
		}
	}
	return nodes
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func matchColumn(raw string, known map[string]struct{}) string {
	for _, segment := range parsePathSegments(raw) {
		if _, ok := known[segment]; ok {
			return segment
		}
		if !isWrapperSegment(segment) {
			return ""
		}
	}
	return ""
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$/.")
	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func isWrapperSegment(segment string) bool {
	switch strings.ToLower(segment) {
	case "body", "request", "payload", "data", "attributes":
		return true
	default:
		return false
	}
}
