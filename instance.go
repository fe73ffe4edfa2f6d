package xr

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/xr/driver"
)

// Extensions records the capabilities negotiated when an instance was
// created.
type Extensions struct {
	// DebugUtils reports whether diagnostic object naming is active.
	// It is true only when naming was requested and the driver's
	// table implements driver.DebugNamer.
	DebugUtils bool
}

// InstanceOptions configures instance creation.
// The zero value selects the best available driver with no extensions.
type InstanceOptions struct {
	// Driver selects a registered driver by name.
	// Empty selects the best available driver.
	Driver string

	// EnableDebugUtils requests the diagnostic naming extension.
	// The request degrades silently when the driver lacks support;
	// check Extensions afterwards if the distinction matters.
	EnableDebugUtils bool
}

// Instance resolves a driver's entry-point table once and shares it,
// read-only, with every session and swapchain derived from it.
// An Instance must outlive all of them.
type Instance struct {
	drv       driver.Driver
	tab       driver.ProcTable
	exts      Extensions
	destroyed atomic.Bool
}

// CreateInstance opens a driver and binds its entry points.
// Driver packages register themselves on import; with no options the
// highest-priority registered driver is used.
func CreateInstance(opts *InstanceOptions) (*Instance, error) {
	if opts == nil {
		opts = &InstanceOptions{}
	}

	var drv driver.Driver
	if opts.Driver != "" {
		drv = driver.Get(opts.Driver)
		if drv == nil {
			return nil, fmt.Errorf("%w: %q not registered", ErrNoDriver, opts.Driver)
		}
	} else {
		drv = driver.Default()
		if drv == nil {
			return nil, ErrNoDriver
		}
	}

	tab, err := drv.Open()
	if err != nil {
		return nil, fmt.Errorf("xr: opening driver %q: %w", drv.Name(), err)
	}

	var exts Extensions
	if opts.EnableDebugUtils {
		_, exts.DebugUtils = tab.(driver.DebugNamer)
	}

	Logger().Info("xr: instance created",
		"driver", drv.Name(),
		"debugUtils", exts.DebugUtils)

	return &Instance{drv: drv, tab: tab, exts: exts}, nil
}

// DriverName returns the name of the driver backing this instance.
func (inst *Instance) DriverName() string { return inst.drv.Name() }

// Extensions returns the negotiated capability set.
func (inst *Instance) Extensions() Extensions { return inst.exts }

// NewSession derives a session from the instance. The session borrows
// the instance and must not outlive it.
func (inst *Instance) NewSession() *Session {
	return &Session{instance: inst}
}

// Destroy closes the driver and invalidates the instance.
// All sessions and swapchains derived from the instance must already
// be done; Destroy does not track them. Destroy is idempotent.
func (inst *Instance) Destroy() {
	if !inst.destroyed.CompareAndSwap(false, true) {
		return
	}
	inst.drv.Close()
	Logger().Info("xr: instance destroyed", "driver", inst.drv.Name())
}
