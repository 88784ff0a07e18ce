package template

// Layout renders named document layouts. Values given to GlobalContext are
// visible to every layout; per-call data shadows them.
type Layout interface {
	RenderTemplate(name string, data map[string]any) (string, error)
	GlobalContext(data map[string]any) error
}
