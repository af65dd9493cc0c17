package menu

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ButtonLoader produces the type specific part of a button. The engine layers
// placement, item, requirements and branches on top of the returned value.
type ButtonLoader interface {
	Load(node Section, path string, defaults DefaultButtonValue) (*Button, error)
}

// ButtonLoaderFunc adapts a function to ButtonLoader.
type ButtonLoaderFunc func(node Section, path string, defaults DefaultButtonValue) (*Button, error)

// Load implements ButtonLoader.
func (f ButtonLoaderFunc) Load(node Section, path string, defaults DefaultButtonValue) (*Button, error) {
	if f == nil {
		return &Button{}, nil
	}
	return f(node, path, defaults)
}

// TypeRegistry maps case-insensitive type tags to loaders.
type TypeRegistry struct {
	mu      sync.RWMutex
	loaders map[string]ButtonLoader
}

// NewTypeRegistry constructs an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		loaders: make(map[string]ButtonLoader),
	}
}

// Register stores loader under name guarding against duplicates.
func (r *TypeRegistry) Register(name string, loader ButtonLoader) error {
	if loader == nil {
		return fmt.Errorf("menu: loader for type %q is nil", name)
	}
	key := normalizeTypeName(name)
	if key == "" {
		return fmt.Errorf("menu: button type name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaders == nil {
		r.loaders = make(map[string]ButtonLoader)
	}
	if _, exists := r.loaders[key]; exists {
		return fmt.Errorf("menu: button type %q already registered", name)
	}
	r.loaders[key] = loader
	return nil
}

// MustRegister is Register for static setup code.
func (r *TypeRegistry) MustRegister(name string, loader ButtonLoader) {
	if err := r.Register(name, loader); err != nil {
		panic(err)
	}
}

// Lookup returns the loader registered for name.
func (r *TypeRegistry) Lookup(name string) (ButtonLoader, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	loader, ok := r.loaders[normalizeTypeName(name)]
	return loader, ok
}

// Clone returns a shallow copy of the registry.
func (r *TypeRegistry) Clone() *TypeRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &TypeRegistry{
		loaders: make(map[string]ButtonLoader, len(r.loaders)),
	}
	for name, loader := range r.loaders {
		clone.loaders[name] = loader
	}
	return clone
}

// Names returns registered type tags sorted alphabetically.
func (r *TypeRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.loaders))
	for name := range r.loaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeTypeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
