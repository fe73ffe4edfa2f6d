// Package driver defines the entry-point table through which swapchains
// are operated, along with the status codes and fixed-layout argument
// structs those entry points take.
//
// A Driver resolves the table once, when it is opened; every session and
// swapchain derived from that driver shares the same table for its whole
// lifetime. Platform loaders (an OpenXR loader, a remote runtime shim)
// implement Driver and register themselves on import:
//
//	import _ "github.com/gogpu/xr/driver/headless"
package driver

// Driver is the interface that provides access to a runtime's swapchain
// entry points.
type Driver interface {
	// Name returns the driver identifier used for registry lookup.
	// It must not cause the driver to be opened.
	Name() string

	// Open resolves the driver's entry-point table.
	// If it succeeds, further calls with the same receiver have no
	// effect and return the same table. Open is not safe for
	// parallel execution with itself or Close.
	Open() (ProcTable, error)

	// Close releases the driver and invalidates its table.
	// Closing a driver that is not open has no effect.
	Close()
}

// ProcTable is the fixed set of entry points bound when a driver is
// opened. Every call returns a Result; callers are expected to treat
// negative results as errors and propagate them unchanged.
//
// The acquire/wait/release entry points implement a strict FIFO
// protocol per swapchain: the Nth release corresponds to the Nth wait
// corresponds to the Nth acquire. The table does not re-check call
// ordering on behalf of the caller; a runtime reports
// ErrorCallOrderInvalid when it detects misuse.
type ProcTable interface {
	// CreateSwapchain creates a compositor-owned image ring and
	// returns its handle.
	CreateSwapchain(info *SwapchainCreateInfo) (Swapchain, Result)

	// DestroySwapchain destroys the ring unconditionally, whether or
	// not images remain acquired.
	DestroySwapchain(sc Swapchain) Result

	// AcquireImage returns the index of the next image available for
	// rendering. The runtime bounds the number of outstanding
	// acquisitions and reports ErrorLimitReached beyond it.
	AcquireImage(sc Swapchain, info *ImageAcquireInfo) (uint32, Result)

	// WaitImage blocks until the oldest acquired-but-unwaited image
	// is released by the compositor, up to info.Timeout. It reports
	// TimeoutExpired, a non-error result, when the image did not
	// become ready in time.
	WaitImage(sc Swapchain, info *ImageWaitInfo) Result

	// ReleaseImage hands the oldest waited image back to the
	// compositor.
	ReleaseImage(sc Swapchain, info *ImageReleaseInfo) Result

	// EnumerateImages fills images with descriptors for the ring's
	// backing array and returns how many were written. A nil slice
	// queries the count without writing.
	EnumerateImages(sc Swapchain, images []ImageDescriptor) (uint32, Result)
}

// DebugNamer is the optional naming extension. Tables that support
// diagnostic object names implement it in addition to ProcTable;
// callers probe for it with a type assertion.
type DebugNamer interface {
	// SetDebugObjectName tags an object with a human-readable name
	// for diagnostic tools. Repeated calls replace the name.
	SetDebugObjectName(info *DebugObjectNameInfo) Result
}
