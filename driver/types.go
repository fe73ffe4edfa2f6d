package driver

import (
	"unsafe"

	"github.com/gogpu/gputypes"
)

// Swapchain is an opaque, process-unique handle to a compositor-owned
// image ring. The zero value is never a valid handle.
type Swapchain uint64

// StructureType tags the argument structs passed across the driver
// boundary so runtimes can validate call layouts.
type StructureType uint32

const (
	StructureTypeSwapchainCreateInfo StructureType = 1 + iota
	StructureTypeImageAcquireInfo
	StructureTypeImageWaitInfo
	StructureTypeImageReleaseInfo
	StructureTypeImageDescriptor
	StructureTypeDebugObjectNameInfo
)

// ObjectType identifies the kind of object a diagnostic name applies to.
type ObjectType uint32

const (
	ObjectTypeSwapchain ObjectType = 1
)

// SwapchainCreateInfo describes the image ring to create.
type SwapchainCreateInfo struct {
	Type StructureType
	Next unsafe.Pointer // extension chain; always nil in this core

	// Format is the pixel format of every image in the ring.
	Format gputypes.TextureFormat

	// Usage declares how the application will use acquired images.
	Usage gputypes.TextureUsage

	// SampleCount is the multisample count per image.
	SampleCount uint32

	// Width and Height are the image extent in pixels.
	Width  uint32
	Height uint32

	// ArraySize is the number of array layers per image.
	ArraySize uint32

	// MipCount is the number of mip levels per image.
	MipCount uint32

	// ImageCount is the requested ring depth. Zero lets the runtime
	// choose; runtimes may round the request.
	ImageCount uint32
}

// ImageAcquireInfo carries no parameters today; it exists so the call
// layout can grow through the extension chain.
type ImageAcquireInfo struct {
	Type StructureType
	Next unsafe.Pointer
}

// ImageWaitInfo bounds how long a wait may block.
type ImageWaitInfo struct {
	Type StructureType
	Next unsafe.Pointer

	// Timeout is the wait bound in nanoseconds. Zero polls; a
	// negative value blocks indefinitely.
	Timeout int64
}

// ImageReleaseInfo carries no parameters today.
type ImageReleaseInfo struct {
	Type StructureType
	Next unsafe.Pointer
}

// ImageDescriptor describes one image in a swapchain's backing array.
// Handle is runtime-specific; graphics backends convert it to an
// API-level texture representation.
type ImageDescriptor struct {
	Type StructureType
	Next unsafe.Pointer

	Handle uint64
	Format gputypes.TextureFormat
	Width  uint32
	Height uint32
}

// DebugObjectNameInfo tags an object with a diagnostic name.
type DebugObjectNameInfo struct {
	Type StructureType
	Next unsafe.Pointer

	ObjectType   ObjectType
	ObjectHandle uint64
	ObjectName   string
}
