// Package render turns engine frames into drawable output.
//
// Back ends are looked up by name in a Registry. The engine only needs to know
// whether a back end exists (see engine.BackendSet), so new back ends can be
// added without touching the layout code.
package render

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"rhiza/internal/engine"
)

// Backend draws frames in one output format
type Backend interface {
	Name() string
	ContentType() string
	Render(w io.Writer, f *engine.Frame) error
}

// Registry holds the available back ends
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Backend
}

// NewRegistry creates a registry with the given back ends
func NewRegistry(backends ...Backend) *Registry {
	r := &Registry{backends: make(map[string]Backend)}
	for _, b := range backends {
		r.Register(b)
	}
	return r
}

// Register adds or replaces a back end
func (r *Registry) Register(b Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[b.Name()] = b
}

// Lookup returns a back end by name
func (r *Registry) Lookup(name string) (Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.backends[name]
	return b, ok
}

// Has implements engine.BackendSet
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names lists registered back ends in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render draws f with the named back end
func (r *Registry) Render(name string, w io.Writer, f *engine.Frame) error {
	b, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("render back end %q not registered", name)
	}
	return b.Render(w, f)
}

var defaultRegistry = NewRegistry(NewSVG(), NewJSON())

// Default returns the registry holding the built-in back ends
func Default() *Registry { return defaultRegistry }

// Lookup returns a built-in back end by name
func Lookup(name string) (Backend, bool) { return defaultRegistry.Lookup(name) }
