package generate

import "github.com/goliatone/go-compositor/pkg/markup"

// ErrorMessage renders a message-bar entry for a failure.
func ErrorMessage(message string) markup.Node {
	return markup.El("div", markup.Class("text_pad error"), markup.InnerText(message))
}

// SuccessMessage renders a message-bar entry for a success.
func SuccessMessage(message string) markup.Node {
	return markup.El("div", markup.Class("text_pad success"), markup.InnerText(message))
}
