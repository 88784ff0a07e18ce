// Package markup models markup nodes and composes them into strings. Every
// path by which caller data reaches the output goes through the escape
// package, except raw content which is trusted verbatim.
package markup

import (
	"fmt"
	"math"
	"strconv"
)

type contentKind uint8

// Content kinds are ordered by precedence: when more than one is supplied
// the highest wins.
const (
	contentNone contentKind = iota
	contentChildren
	contentText
	contentRaw
)

// Node is an immutable markup element or text leaf. The zero value is an
// empty text leaf. Use Text, El and the Option helpers to build nodes; With
// returns a modified copy.
type Node struct {
	tag      string
	attrs    map[Attr]string
	flags    map[Flag]bool
	kind     contentKind
	text     string
	children []Node
}

// Option mutates a node under construction.
type Option func(*Node)

// Text returns a text leaf. Its content is always escaped when composed.
func Text(value string) Node {
	return Node{kind: contentText, text: value}
}

// El builds an element node. An empty tag yields a text leaf carrying
// whatever text content the options provide.
func El(tag string, options ...Option) Node {
	n := Node{tag: tag}
	n.apply(options)
	return n
}

// With returns a copy of n with the options applied. n is left untouched.
func (n Node) With(options ...Option) Node {
	out := n.clone()
	out.apply(options)
	return out
}

func (n *Node) apply(options []Option) {
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(n)
	}
}

func (n Node) clone() Node {
	out := Node{tag: n.tag, kind: n.kind, text: n.text}
	if len(n.attrs) > 0 {
		out.attrs = make(map[Attr]string, len(n.attrs))
		for key, value := range n.attrs {
			out.attrs[key] = value
		}
	}
	if len(n.flags) > 0 {
		out.flags = make(map[Flag]bool, len(n.flags))
		for key, value := range n.flags {
			out.flags[key] = value
		}
	}
	if len(n.children) > 0 {
		out.children = append([]Node(nil), n.children...)
	}
	return out
}

func (n *Node) setContent(kind contentKind, text string, children []Node) {
	if kind < n.kind {
		return
	}
	n.kind = kind
	n.text = text
	n.children = children
}

// Set assigns an allow-listed attribute. Keys outside the allow-list are
// ignored.
func Set(attr Attr, value any) Option {
	return func(n *Node) {
		if !attr.Allowed() {
			return
		}
		if n.attrs == nil {
			n.attrs = make(map[Attr]string)
		}
		n.attrs[attr] = Stringify(value)
	}
}

// Unset removes an attribute.
func Unset(attr Attr) Option {
	return func(n *Node) {
		delete(n.attrs, attr)
	}
}

// Present toggles a boolean-presence attribute.
func Present(flag Flag, on bool) Option {
	return func(n *Node) {
		if !flag.Allowed() {
			return
		}
		if n.flags == nil {
			n.flags = make(map[Flag]bool)
		}
		n.flags[flag] = on
	}
}

func Class(value string) Option { return Set(AttrClass, value) }
func ID(value string) Option    { return Set(AttrID, value) }
func Name(value string) Option  { return Set(AttrName, value) }
func Type(value string) Option  { return Set(AttrType, value) }
func Value(value any) Option    { return Set(AttrValue, value) }
func Href(value string) Option  { return Set(AttrHref, value) }

func Checked(on bool) Option  { return Present(FlagChecked, on) }
func Selected(on bool) Option { return Present(FlagSelected, on) }

// InnerText sets escaped text content.
func InnerText(value string) Option {
	return func(n *Node) {
		n.setContent(contentText, value, nil)
	}
}

// InnerHTML sets raw content. It is written verbatim, callers must sanitise
// anything that did not originate from trusted code (see Sanitized).
func InnerHTML(value string) Option {
	return func(n *Node) {
		n.setContent(contentRaw, value, nil)
	}
}

// Children sets the ordered child nodes.
func Children(children ...Node) Option {
	return func(n *Node) {
		n.setContent(contentChildren, "", append([]Node(nil), children...))
	}
}

// Append adds children after any existing ones. It has no effect when the
// node already carries text or raw content.
func Append(children ...Node) Option {
	return func(n *Node) {
		if n.kind > contentChildren {
			return
		}
		merged := make([]Node, 0, len(n.children)+len(children))
		merged = append(merged, n.children...)
		merged = append(merged, children...)
		n.kind = contentChildren
		n.children = merged
	}
}

// Tag returns the element name, empty for text leaves.
func (n Node) Tag() string { return n.tag }

// IsText reports whether n is a text leaf.
func (n Node) IsText() bool { return n.tag == "" }

// Attr returns the value of an attribute.
func (n Node) Attr(attr Attr) (string, bool) {
	value, ok := n.attrs[attr]
	return value, ok
}

// Flag reports whether a presence attribute is set.
func (n Node) Flag(flag Flag) bool {
	return n.flags[flag]
}

// Content returns the text carried by the node: escaped text for text
// content, verbatim markup for raw content.
func (n Node) Content() (string, bool) {
	switch n.kind {
	case contentText, contentRaw:
		return n.text, true
	default:
		return "", false
	}
}

// Raw reports whether the node carries raw (unescaped) content.
func (n Node) Raw() bool { return n.kind == contentRaw }

// Children returns a copy of the child nodes.
func (n Node) Children() []Node {
	if n.kind != contentChildren || len(n.children) == 0 {
		return nil
	}
	return append([]Node(nil), n.children...)
}

// String composes the node.
func (n Node) String() string {
	return Compose(n)
}

// Stringify converts a scalar to its display form. nil becomes "null",
// floats use the shortest decimal representation.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", v)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return formatFloat(float64(v), 32)
	case float64:
		return formatFloat(v, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(v float64, bits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, bits)
}
