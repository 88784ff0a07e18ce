package markup

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	json "github.com/goccy/go-json"
)

// Interchange keys for content. Attribute and flag keys match Attr and Flag.
const (
	keyTag      = "tag"
	keyRaw      = "innerHTML"
	keyText     = "innerText"
	keyChildren = "childElements"
)

// ErrMissingTag is returned when an interchange object has no usable tag.
var ErrMissingTag = errors.New("markup: element is missing a tag")

// Decode parses interchange JSON into nodes. Objects become elements, arrays
// become sequences and any other scalar becomes a text leaf.
func Decode(data []byte) ([]Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("markup: decode: %w", err)
	}
	return FromValue(raw)
}

// FromValue converts a loosely typed value (as produced by a JSON decoder)
// into nodes. Nested arrays are flattened.
func FromValue(value any) ([]Node, error) {
	switch v := value.(type) {
	case []any:
		out := make([]Node, 0, len(v))
		for _, item := range v {
			nodes, err := FromValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, nodes...)
		}
		return out, nil
	case []Node:
		return append([]Node(nil), v...), nil
	case Node:
		return []Node{v}, nil
	case map[string]any:
		node, err := FromMap(v)
		if err != nil {
			return nil, err
		}
		return []Node{node}, nil
	default:
		return []Node{Text(Stringify(v))}, nil
	}
}

// FromMap builds an element from an interchange object. Keys outside the
// attribute allow-list are ignored. When several content keys are present
// innerHTML wins over innerText, which wins over childElements.
func FromMap(m map[string]any) (Node, error) {
	tag, _ := m[keyTag].(string)
	if tag == "" {
		return Node{}, ErrMissingTag
	}

	n := Node{tag: tag}
	for _, flag := range presenceFlags {
		if value, ok := m[string(flag)]; ok && truthy(value) {
			if n.flags == nil {
				n.flags = make(map[Flag]bool, len(presenceFlags))
			}
			n.flags[flag] = true
		}
	}
	for _, attr := range valueAttrs {
		value, ok := m[string(attr)]
		if !ok {
			continue
		}
		if n.attrs == nil {
			n.attrs = make(map[Attr]string)
		}
		n.attrs[attr] = Stringify(value)
	}

	if raw, ok := m[keyRaw]; ok {
		n.kind, n.text = contentRaw, Stringify(raw)
		return n, nil
	}
	if text, ok := m[keyText]; ok {
		n.kind, n.text = contentText, Stringify(text)
		return n, nil
	}
	if children, ok := m[keyChildren].([]any); ok {
		nodes, err := FromValue(children)
		if err != nil {
			return Node{}, fmt.Errorf("markup: %s children: %w", tag, err)
		}
		n.kind, n.children = contentChildren, nodes
	}
	return n, nil
}

// Encode renders nodes as interchange JSON. A single node is encoded as an
// object (or string for text leaves), several nodes as an array.
func Encode(nodes ...Node) ([]byte, error) {
	if len(nodes) == 1 {
		return json.Marshal(nodes[0])
	}
	if nodes == nil {
		nodes = []Node{}
	}
	return json.Marshal(nodes)
}

// MarshalJSON implements json.Marshaler using the interchange format.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.interchange())
}

// UnmarshalJSON implements json.Unmarshaler for a single interchange value.
func (n *Node) UnmarshalJSON(data []byte) error {
	nodes, err := Decode(data)
	if err != nil {
		return err
	}
	if len(nodes) != 1 {
		return fmt.Errorf("markup: expected a single node, got %d", len(nodes))
	}
	*n = nodes[0]
	return nil
}

func (n Node) interchange() any {
	if n.IsText() {
		text, _ := n.Content()
		return text
	}
	out := map[string]any{keyTag: n.tag}
	for flag, on := range n.flags {
		if on {
			out[string(flag)] = true
		}
	}
	for attr, value := range n.attrs {
		out[string(attr)] = value
	}
	switch n.kind {
	case contentRaw:
		out[keyRaw] = n.text
	case contentText:
		out[keyText] = n.text
	case contentChildren:
		children := make([]any, 0, len(n.children))
		for _, child := range n.children {
			children = append(children, child.interchange())
		}
		out[keyChildren] = children
	}
	return out
}

// truthy follows the loose truthiness of the interchange format: empty
// strings, zero numbers, false and null are false.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := strconv.ParseFloat(v.String(), 64)
		return err != nil || (f != 0 && !math.IsNaN(f))
	case float64:
		return v != 0 && !math.IsNaN(v)
	case int:
		return v != 0
	default:
		return true
	}
}
