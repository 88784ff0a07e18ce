package prompt

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-compositor/pkg/markup"
)

// ContentType reports the media type produced by Encode.
func (f *Filler) ContentType() string {
	switch f.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Encode serializes collected values in the configured output format. Nil
// values become empty strings in the form and pretty formats.
func (f *Filler) Encode(values map[string]any) ([]byte, error) {
	switch f.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for key, value := range values {
			form.Set(key, plain(value))
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	case OutputFormatJSON:
		return json.Marshal(values)
	default:
		return nil, fmt.Errorf("prompt: unknown output format %q", f.outputFormat)
	}
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, plain(values[key]))
	}
	return b.String()
}

func plain(value any) string {
	if value == nil {
		return ""
	}
	return markup.Stringify(value)
}
