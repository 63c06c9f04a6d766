package render

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-sitegen/pkg/section"
)

// Registry stores section renderers by section name, providing discovery and
// duplication safeguards.
type Registry struct {
	mu        sync.RWMutex
	renderers map[section.Name]SectionRenderer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[section.Name]SectionRenderer),
	}
}

// Register adds a renderer by its Section(). Duplicate or unknown sections
// return an error.
func (r *Registry) Register(renderer SectionRenderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Section()
	if !name.Valid() {
		return fmt.Errorf("render: unknown section %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer for %q already registered", name)
	}

	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderers ...SectionRenderer) {
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			panic(err)
		}
	}
}

// Replace registers renderer, overriding any existing entry for its section.
func (r *Registry) Replace(renderer SectionRenderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Section()
	if !name.Valid() {
		return fmt.Errorf("render: unknown section %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[name] = renderer
	return nil
}

// Get retrieves the renderer for a section.
func (r *Registry) Get(name section.Name) (SectionRenderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("render: no renderer for section %q", name)
	}
	return renderer, nil
}

// Has reports whether a renderer is registered for the section.
func (r *Registry) Has(name section.Name) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[name]
	return ok
}

// List returns the registered sections in render order.
func (r *Registry) List() []section.Name {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]section.Name, 0, len(r.renderers))
	for _, name := range section.Order {
		if _, ok := r.renderers[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
