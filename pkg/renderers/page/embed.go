package page

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// StylesheetName is the file name of the bundled stylesheet inside AssetsFS.
const StylesheetName = "compositor.css"

// TemplatesFS exposes the embedded page layout.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the bundled stylesheet so callers can serve it over HTTP.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

func defaultStylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
