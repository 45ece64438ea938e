// Package registry provides a concurrent keyed store of watched
// variables. The registry only mediates creation, lookup, and teardown;
// every mutation and inspection happens directly against the variable,
// which is independently thread-safe.
package registry

import (
	"sync"

	"github.com/dshills/alma/pkg/watch"
)

// Registry maps unique names to watch.Var instances. The map is guarded by
// its own lock, independent of each variable's lock, so membership changes
// never block in-flight mutations on existing variables.
type Registry struct {
	mu   sync.RWMutex
	vars map[string]*watch.Var
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		vars: make(map[string]*watch.Var),
	}
}

// Watch constructs a new watched variable and registers it under name.
// Fails with *DuplicateNameError if the name is already taken; no two
// concurrent Watch calls can both succeed for the same name.
func (r *Registry) Watch(name string, initial interface{}, opts ...watch.Option) (*watch.Var, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.vars[name]; exists {
		return nil, &DuplicateNameError{Name: name}
	}
	v := watch.New(name, initial, opts...)
	r.vars[name] = v
	return v, nil
}

// Replace is Watch with overwrite semantics: an existing entry under name
// is replaced by a fresh variable with a fresh history. References to the
// old variable remain valid but are orphaned from the registry's view.
func (r *Registry) Replace(name string, initial interface{}, opts ...watch.Option) *watch.Var {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := watch.New(name, initial, opts...)
	r.vars[name] = v
	return v
}

// Get returns the variable registered under name, or *NotFoundError.
func (r *Registry) Get(name string) (*watch.Var, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, exists := r.vars[name]
	if !exists {
		return nil, &NotFoundError{Name: name}
	}
	return v, nil
}

// Unregister removes the mapping for name, reporting whether an entry was
// removed. Handles already held by callers keep working, orphaned from the
// registry.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.vars[name]; !exists {
		return false
	}
	delete(r.vars, name)
	return true
}

// Snapshot returns each registered variable's current value at the moment
// of the call. Each value is a consistent per-key read, not a global
// atomic snapshot across all variables.
func (r *Registry) Snapshot() map[string]interface{} {
	vars := r.All()
	out := make(map[string]interface{}, len(vars))
	for name, v := range vars {
		out[name] = v.Get()
	}
	return out
}

// All returns a copy of the name-to-variable mapping. The handles are
// shared; the map is the caller's to keep.
func (r *Registry) All() map[string]*watch.Var {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*watch.Var, len(r.vars))
	for name, v := range r.vars {
		out[name] = v
	}
	return out
}

// Names returns the registered names in no particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.vars))
	for name := range r.vars {
		names = append(names, name)
	}
	return names
}

// Len returns the number of registered variables.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.vars)
}
