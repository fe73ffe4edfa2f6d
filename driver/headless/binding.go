package headless

import (
	"errors"
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/xr/backend"
	"github.com/gogpu/xr/driver"
)

// ErrUnknownImage is returned when a descriptor does not belong to a
// live swapchain of this driver.
var ErrUnknownImage = errors.New("headless: unknown image handle")

// binding exposes ring images as drawable CPU buffers.
type binding struct {
	d *Driver
}

var _ backend.Binding = (*binding)(nil)

func (b *binding) Name() string { return backend.BindingHeadless }

// WrapImage resolves a descriptor to its backing buffer.
func (b *binding) WrapImage(desc driver.ImageDescriptor) (backend.Image, error) {
	buf := b.d.imageBuffer(desc.Handle)
	if buf == nil {
		return nil, fmt.Errorf("%w: %#x", ErrUnknownImage, desc.Handle)
	}
	return &Image{desc: desc, buf: buf}, nil
}

// Image is a CPU view of one swapchain image.
type Image struct {
	desc     driver.ImageDescriptor
	buf      *image.RGBA
	released atomic.Bool
}

var _ backend.Image = (*Image)(nil)

// Format returns the image pixel format.
func (i *Image) Format() gputypes.TextureFormat { return i.desc.Format }

// Width returns the image width in pixels.
func (i *Image) Width() uint32 { return i.desc.Width }

// Height returns the image height in pixels.
func (i *Image) Height() uint32 { return i.desc.Height }

// RGBA returns the drawable backing buffer, or nil after Release.
// Drawing is only meaningful between a successful wait and the
// matching release.
func (i *Image) RGBA() *image.RGBA {
	if i.released.Load() {
		return nil
	}
	return i.buf
}

// Release drops the view. The buffer itself stays owned by the ring.
func (i *Image) Release() { i.released.Store(true) }
