package driver

import "sync"

// registry holds registered drivers.
var (
	registryMu sync.RWMutex
	drivers    = make(map[string]Driver)
	// Priority order for driver selection (first available wins).
	// A platform loader beats the in-process headless fallback.
	driverPriority = []string{"openxr", "headless"}
)

// Register registers a driver under its Name. Driver packages call
// Register from an init function so that importing the package is
// enough to make the driver selectable. If a driver with the same name
// is already registered, it is replaced.
func Register(drv Driver) {
	registryMu.Lock()
	defer registryMu.Unlock()
	drivers[drv.Name()] = drv
}

// Unregister removes a driver from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(drivers, name)
}

// Available returns the names of all registered drivers.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a driver with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := drivers[name]
	return ok
}

// Get returns the registered driver with the given name, or nil.
func Get(name string) Driver {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return drivers[name]
}

// Default returns the best available driver based on priority.
// Returns nil if no drivers are registered.
func Default() Driver {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range driverPriority {
		if drv, ok := drivers[name]; ok {
			return drv
		}
	}
	// Fall back to any registered driver.
	for _, drv := range drivers {
		return drv
	}
	return nil
}
