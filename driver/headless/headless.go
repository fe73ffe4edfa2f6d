// Package headless provides an in-process driver that simulates a
// compositor-owned swapchain ring without any display hardware.
//
// Images are ordinary CPU buffers. Released images are composited onto
// a virtual display, which tools can read back and dump. The driver
// enforces the same FIFO acquire/wait/release discipline a real
// compositor runtime does, which makes it the reference substrate for
// protocol tests.
//
// Importing the package registers the driver and its CPU graphics
// binding:
//
//	import _ "github.com/gogpu/xr/driver/headless"
package headless

import (
	"image"
	"sync"
	"time"

	"github.com/gogpu/xr/backend"
	"github.com/gogpu/xr/driver"
)

// DriverName is the name the headless driver registers under.
const DriverName = "headless"

// defaults applied by New for zero Options fields.
const (
	defaultDisplayWidth  = 1024
	defaultDisplayHeight = 1024
	defaultImageCount    = 3
)

func init() {
	d := New(Options{})
	driver.Register(d)
	backend.Register(backend.BindingHeadless, func() backend.Binding { return d.Binding() })
}

// Options configures the simulated compositor.
type Options struct {
	// PresentLatency is how long an acquired image stays in compositor
	// hands before a wait on it can succeed. Zero means images are
	// ready the moment they are acquired.
	PresentLatency time.Duration

	// DisplayWidth and DisplayHeight size the virtual display that
	// released images are composited onto. Zero selects 1024.
	DisplayWidth  int
	DisplayHeight int

	// ImageCount is the ring depth used when a create info requests
	// zero images. Zero selects 3.
	ImageCount uint32
}

// Driver is an in-process compositor simulation.
// The zero value is not usable; call New.
type Driver struct {
	mu   sync.Mutex
	opts Options
	tab  *table
}

// New creates a headless driver. The driver registered on import uses
// default Options; tests that need a present latency or a specific
// display size create their own.
func New(opts Options) *Driver {
	if opts.DisplayWidth <= 0 {
		opts.DisplayWidth = defaultDisplayWidth
	}
	if opts.DisplayHeight <= 0 {
		opts.DisplayHeight = defaultDisplayHeight
	}
	if opts.ImageCount == 0 {
		opts.ImageCount = defaultImageCount
	}
	return &Driver{opts: opts}
}

// Name returns the driver identifier.
func (d *Driver) Name() string { return DriverName }

// Open resolves the entry-point table. Open is idempotent: further
// calls return the same table until Close.
func (d *Driver) Open() (driver.ProcTable, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tab == nil {
		d.tab = newTable(d.opts)
	}
	return d.tab, nil
}

// Close invalidates the table. Swapchains still alive keep their
// buffers but every entry point on them fails with ErrorHandleInvalid.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tab != nil {
		d.tab.close()
		d.tab = nil
	}
}

// Binding returns the CPU graphics binding for this driver's images.
func (d *Driver) Binding() backend.Binding { return &binding{d: d} }

// Display returns a copy of the virtual display the compositor
// composites released images onto, or nil if the driver is not open.
// The copy is taken between composites and never changes afterwards;
// call Display again to observe later releases.
func (d *Driver) Display() *image.RGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tab == nil {
		return nil
	}
	return d.tab.display.snapshot()
}

// DestroyCalls reports how many times DestroySwapchain ran for sc.
// Test hook; a conforming caller never observes a value above 1.
func (d *Driver) DestroyCalls(sc driver.Swapchain) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tab == nil {
		return 0
	}
	return d.tab.destroyCalls(sc)
}

// ObjectName returns the diagnostic name set on sc, if any.
func (d *Driver) ObjectName(sc driver.Swapchain) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tab == nil {
		return ""
	}
	return d.tab.objectName(sc)
}

// imageBuffer returns the CPU backing store of an enumerated image
// handle, or nil. The CPU binding uses this to expose drawable
// buffers.
func (d *Driver) imageBuffer(handle uint64) *image.RGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tab == nil {
		return nil
	}
	return d.tab.imageBuffer(handle)
}
