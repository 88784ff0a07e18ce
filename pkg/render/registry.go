package render

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-compositor/pkg/markup"
)

// Registry stores renderers by name, providing discovery and duplication
// safeguards.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates a registry seeded with the given renderers. Duplicate
// names panic, as with MustRegister.
func NewRegistry(renderers ...Renderer) *Registry {
	r := &Registry{
		renderers: make(map[string]Renderer),
	}
	for _, renderer := range renderers {
		r.MustRegister(renderer)
	}
	return r
}

// Register adds a renderer by its Name(). Duplicate names return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}

	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// Render looks up a renderer and applies it to root.
func (r *Registry) Render(ctx context.Context, name string, root markup.Node, options RenderOptions) ([]byte, string, error) {
	renderer, err := r.Get(name)
	if err != nil {
		return nil, "", err
	}
	out, err := renderer.Render(ctx, root, options)
	if err != nil {
		return nil, "", fmt.Errorf("render: %s: %w", name, err)
	}
	return out, renderer.ContentType(), nil
}

// List returns a sorted list of renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a renderer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[name]
	return ok
}
