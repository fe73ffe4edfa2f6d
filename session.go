package xr

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/xr/driver"
)

// DefaultUsage is the image usage applied when a create info leaves
// Usage zero.
const DefaultUsage = gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc

// SwapchainCreateInfo describes the swapchain to create.
// Width and Height are required; every other zero field is filled with
// a documented default.
type SwapchainCreateInfo struct {
	// Format is the pixel format of the ring's images.
	// Zero selects gputypes.TextureFormatRGBA8Unorm.
	Format gputypes.TextureFormat

	// Usage declares how acquired images will be used.
	// Zero selects DefaultUsage.
	Usage gputypes.TextureUsage

	// SampleCount is the multisample count. Zero selects 1.
	SampleCount uint32

	// Width and Height are the image extent in pixels. Required.
	Width  uint32
	Height uint32

	// ArraySize is the number of array layers. Zero selects 1.
	ArraySize uint32

	// MipCount is the number of mip levels. Zero selects 1.
	MipCount uint32

	// ImageCount is the requested ring depth. Zero lets the driver
	// choose.
	ImageCount uint32
}

// Session represents one application's connection to the compositor.
// It borrows its Instance, which must stay alive for the session's
// lifetime, and is the factory for swapchains.
//
// Sessions hold no mutable state of their own; any number of
// swapchains may be created from one session and driven from
// different goroutines independently.
type Session struct {
	instance *Instance
}

// Instance returns the instance the session was derived from.
func (s *Session) Instance() *Instance { return s.instance }

// CreateSwapchain asks the driver for a new image ring and returns a
// Swapchain owning its handle. The caller must call Destroy on the
// result before the session's instance is destroyed.
func (s *Session) CreateSwapchain(info *SwapchainCreateInfo) (*Swapchain, error) {
	if s.instance.destroyed.Load() {
		return nil, ErrInstanceDestroyed
	}
	if info == nil || info.Width == 0 || info.Height == 0 {
		return nil, ErrInvalidExtent
	}

	raw := driver.SwapchainCreateInfo{
		Type:        driver.StructureTypeSwapchainCreateInfo,
		Format:      info.Format,
		Usage:       info.Usage,
		SampleCount: info.SampleCount,
		Width:       info.Width,
		Height:      info.Height,
		ArraySize:   info.ArraySize,
		MipCount:    info.MipCount,
		ImageCount:  info.ImageCount,
	}
	if raw.Format == gputypes.TextureFormatUndefined {
		raw.Format = gputypes.TextureFormatRGBA8Unorm
	}
	if raw.Usage == 0 {
		raw.Usage = DefaultUsage
	}
	if raw.SampleCount == 0 {
		raw.SampleCount = 1
	}
	if raw.ArraySize == 0 {
		raw.ArraySize = 1
	}
	if raw.MipCount == 0 {
		raw.MipCount = 1
	}

	handle, res := s.instance.tab.CreateSwapchain(&raw)
	if err := driverError("create swapchain", res); err != nil {
		return nil, err
	}

	Logger().Info("xr: swapchain created",
		"handle", uint64(handle),
		"format", uint32(raw.Format),
		"width", raw.Width,
		"height", raw.Height)

	return &Swapchain{session: s, handle: handle}, nil
}
