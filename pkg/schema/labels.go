package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Label pairs a column name with its display text.
type Label struct {
	Key  string
	Text string
}

// Labels is an ordered column-name to display-label mapping. Its order is the
// displayed column order for tables and the field order for forms.
type Labels []Label

// NewLabels builds Labels from alternating key/text pairs. A trailing key
// without text is labelled with its display name.
func NewLabels(pairs ...string) Labels {
	out := make(Labels, 0, (len(pairs)+1)/2)
	for i := 0; i < len(pairs); i += 2 {
		key := pairs[i]
		text := ""
		if i+1 < len(pairs) {
			text = pairs[i+1]
		} else {
			text, _ = NameUnit(key)
		}
		out = out.Set(key, text)
	}
	return out
}

// Get returns the label for key.
func (l Labels) Get(key string) (string, bool) {
	for _, label := range l {
		if label.Key == key {
			return label.Text, true
		}
	}
	return "", false
}

// Has reports whether key is labelled.
func (l Labels) Has(key string) bool {
	_, ok := l.Get(key)
	return ok
}

// Keys returns the keys in order.
func (l Labels) Keys() []string {
	keys := make([]string, len(l))
	for i, label := range l {
		keys[i] = label.Key
	}
	return keys
}

// Set returns labels with key set to text. An existing key keeps its
// position.
func (l Labels) Set(key, text string) Labels {
	out := append(Labels(nil), l...)
	for i := range out {
		if out[i].Key == key {
			out[i].Text = text
			return out
		}
	}
	return append(out, Label{Key: key, Text: text})
}

// UnmarshalYAML decodes a mapping while preserving key order.
func (l *Labels) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("schema: labels must be a mapping, got line %d", value.Line)
	}
	out := make(Labels, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var key, text string
		if err := value.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("schema: label key: %w", err)
		}
		if err := value.Content[i+1].Decode(&text); err != nil {
			return fmt.Errorf("schema: label %q: %w", key, err)
		}
		out = out.Set(key, text)
	}
	*l = out
	return nil
}

// UnmarshalJSON decodes a JSON object while preserving key order. JSON is a
// subset of YAML, so the ordered YAML node decoder serves both.
func (l *Labels) UnmarshalJSON(data []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("schema: labels: %w", err)
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		return l.UnmarshalYAML(node.Content[0])
	}
	return l.UnmarshalYAML(&node)
}
