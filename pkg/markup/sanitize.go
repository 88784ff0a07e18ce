package markup

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	rawPolicyOnce sync.Once
	rawPolicy     *bluemonday.Policy
)

// Sanitized builds an element whose raw content has been cleaned with a
// user-generated-content policy. Use it instead of InnerHTML whenever the
// markup did not come from trusted code.
func Sanitized(tag, html string, options ...Option) Node {
	n := El(tag, options...)
	n.setContent(contentRaw, SanitizeHTML(html), nil)
	return n
}

// SanitizeHTML strips scripts, event handlers and unsafe URLs from html.
func SanitizeHTML(html string) string {
	if html == "" {
		return ""
	}
	return rawSanitizer().Sanitize(html)
}

func rawSanitizer() *bluemonday.Policy {
	rawPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		rawPolicy = policy
	})
	return rawPolicy
}

// SanitizeTree returns copies of nodes with every raw content cleaned by
// SanitizeHTML, at any depth. Escaped text is left as is.
func SanitizeTree(nodes ...Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = sanitizeNode(n)
	}
	return out
}

func sanitizeNode(n Node) Node {
	switch n.kind {
	case contentRaw:
		out := n.clone()
		out.text = SanitizeHTML(n.text)
		return out
	case contentChildren:
		out := n.clone()
		out.children = SanitizeTree(n.children...)
		return out
	default:
		return n
	}
}
