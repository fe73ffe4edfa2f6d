package backend

import (
	"errors"
	"sync"
)

// ErrNoBinding is returned when no graphics binding is available.
var ErrNoBinding = errors.New("backend: no binding available")

// BindingFactory creates a new binding instance.
type BindingFactory func() Binding

// registry holds registered bindings.
var (
	registryMu sync.RWMutex
	bindings   = make(map[string]BindingFactory)
	// Priority order for binding selection (first available wins).
	// An API-level binding beats the CPU fallback.
	bindingPriority = []string{BindingWGPU, BindingHeadless}
)

// Register registers a binding factory with the given name.
// This is typically called from init() functions in binding packages.
// If a binding with the same name is already registered, it will be
// replaced.
func Register(name string, factory BindingFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	bindings[name] = factory
}

// Unregister removes a binding from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(bindings, name)
}

// Available returns a list of registered binding names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a binding with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := bindings[name]
	return ok
}

// Get returns a binding instance by name.
// Returns nil if the binding is not registered.
func Get(name string) Binding {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := bindings[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available binding based on priority.
// Returns nil if no bindings are registered.
func Default() Binding {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range bindingPriority {
		if factory, ok := bindings[name]; ok {
			if b := factory(); b != nil {
				return b
			}
		}
	}

	// Fallback: return first available
	for _, factory := range bindings {
		if b := factory(); b != nil {
			return b
		}
	}

	return nil
}

// MustDefault returns the default binding or panics.
func MustDefault() Binding {
	b := Default()
	if b == nil {
		panic("backend: no binding available")
	}
	return b
}
