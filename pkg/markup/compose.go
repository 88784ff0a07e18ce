package markup

import (
	"io"
	"strings"

	"github.com/goliatone/go-compositor/pkg/escape"
)

// Compose serialises the nodes. A single node is written directly, several
// nodes are joined with a newline.
func Compose(nodes ...Node) string {
	var b strings.Builder
	for i, node := range nodes {
		if i > 0 {
			b.WriteByte('\n')
		}
		node.write(&b)
	}
	return b.String()
}

// ComposeTo writes the composed nodes to w.
func ComposeTo(w io.Writer, nodes ...Node) error {
	_, err := io.WriteString(w, Compose(nodes...))
	return err
}

func (n Node) write(b *strings.Builder) {
	if n.IsText() {
		if n.kind == contentText || n.kind == contentRaw {
			b.WriteString(escape.Markup(n.text))
		}
		return
	}

	b.WriteByte('<')
	b.WriteString(n.tag)
	for _, flag := range presenceFlags {
		if n.flags[flag] {
			b.WriteByte(' ')
			b.WriteString(string(flag))
		}
	}
	for _, attr := range valueAttrs {
		value, ok := n.attrs[attr]
		if !ok {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(attr.OutputName())
		b.WriteString(`="`)
		b.WriteString(escape.Markup(value))
		b.WriteByte('"')
	}
	b.WriteByte('>')

	switch n.kind {
	case contentRaw:
		b.WriteString(n.text)
	case contentText:
		b.WriteString(escape.Markup(n.text))
	case contentChildren:
		for _, child := range n.children {
			child.write(b)
		}
	}

	if !SelfClosing(n.tag) {
		b.WriteString("</")
		b.WriteString(n.tag)
		b.WriteByte('>')
	}
}
