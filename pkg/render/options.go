package render

import "github.com/goliatone/go-compositor/pkg/markup"

// RenderOptions describe per-request data that renderers can use to customise
// their output without rebuilding the node tree.
type RenderOptions struct {
	// Title names the document for renderers that emit a full page.
	Title string
	// Messages are shown above the root node, typically the output of
	// generate.ErrorMessage / generate.SuccessMessage.
	Messages []markup.Node
	// Hidden inputs (CSRF tokens, versions) appended to the root element.
	Hidden []HiddenField
	// Stylesheets are linked from page layouts.
	Stylesheets []string
}
