package registry

import "github.com/dshills/alma/pkg/watch"

// defaultRegistry is the single process-wide registry. It is created once
// at package initialization and never re-created; applications that want
// scoped lifecycles should construct their own Registry and pass it
// explicitly.
var defaultRegistry = New()

// Default returns the process-wide default registry.
func Default() *Registry {
	return defaultRegistry
}

// Watch creates a watched variable in the default registry.
func Watch(name string, initial interface{}, opts ...watch.Option) (*watch.Var, error) {
	return defaultRegistry.Watch(name, initial, opts...)
}

// Replace creates or replaces a watched variable in the default registry.
func Replace(name string, initial interface{}, opts ...watch.Option) *watch.Var {
	return defaultRegistry.Replace(name, initial, opts...)
}

// Get returns a variable from the default registry.
func Get(name string) (*watch.Var, error) {
	return defaultRegistry.Get(name)
}

// Unregister removes a variable from the default registry.
func Unregister(name string) bool {
	return defaultRegistry.Unregister(name)
}

// Snapshot returns the default registry's name-to-current-value mapping.
func Snapshot() map[string]interface{} {
	return defaultRegistry.Snapshot()
}
