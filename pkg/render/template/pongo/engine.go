// Package pongo renders page layouts with pongo2.
package pongo

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-compositor/pkg/render/template"
)

const defaultExtension = ".tmpl"

// Option configures an Engine.
type Option func(*Engine)

// WithExtension sets the suffix appended to layout names that lack it.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e.ext = ext
	}
}

// WithGlobalData seeds values every layout sees.
func WithGlobalData(data map[string]any) Option {
	return func(e *Engine) {
		e.set.Globals.Update(toContext(data))
	}
}

// Engine loads layouts from an fs.FS and keeps them compiled.
type Engine struct {
	mu       sync.RWMutex
	set      *pongo2.TemplateSet
	ext      string
	compiled map[string]*pongo2.Template
}

var _ template.Layout = (*Engine)(nil)

// New builds an engine over layouts.
func New(layouts fs.FS, options ...Option) (*Engine, error) {
	if layouts == nil {
		return nil, errors.New("pongo: layouts fs is nil")
	}
	set := pongo2.NewSet("compositor", pongo2.NewFSLoader(layouts))

	e := &Engine{set: set, ext: defaultExtension, compiled: map[string]*pongo2.Template{}}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// RenderTemplate executes the layout called name with data.
func (e *Engine) RenderTemplate(name string, data map[string]any) (string, error) {
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tmpl, err := e.layout(name)
	if err != nil {
		return "", err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	out, err := tmpl.Execute(toContext(data))
	if err != nil {
		return "", fmt.Errorf("pongo: execute %q: %w", name, err)
	}
	return out, nil
}

// GlobalContext merges data into the values every layout sees.
func (e *Engine) GlobalContext(data map[string]any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.Globals.Update(toContext(data))
	return nil
}

func (e *Engine) layout(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.compiled[name]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.compiled[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("pongo: load %q: %w", name, err)
	}
	e.compiled[name] = tmpl
	return tmpl, nil
}

// toContext drops blank keys, which pongo2 rejects as identifiers.
func toContext(data map[string]any) pongo2.Context {
	out := make(pongo2.Context, len(data))
	for key, value := range data {
		if key = strings.TrimSpace(key); key != "" {
			out[key] = value
		}
	}
	return out
}
