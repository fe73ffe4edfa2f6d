// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu provides the gogpu/wgpu graphics binding for xr
// swapchains.
//
// The binding RECEIVES its GPU device from the host application via
// gpucontext.DeviceProvider; it never creates one behind the host's
// back. This keeps device ownership with the host and lets xr share
// resources with the rest of the gogpu stack. Standalone tools without
// a host device can bring their own through GPU.
package wgpu

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/xr/backend"
	"github.com/gogpu/xr/driver"
)

// Package errors for the wgpu binding.
var (
	// ErrNilProvider is returned when constructing a binding without
	// a device provider.
	ErrNilProvider = errors.New("wgpu: nil device provider")

	// ErrInvalidDescriptor is returned for descriptors with a zero
	// handle or extent, or an extent past the device limit.
	ErrInvalidDescriptor = errors.New("wgpu: invalid image descriptor")

	// ErrTextureReleased is returned when operating on a released
	// texture view.
	ErrTextureReleased = errors.New("wgpu: texture has been released")

	// ErrSizeMismatch is returned when uploaded data does not match
	// the texture size.
	ErrSizeMismatch = errors.New("wgpu: data size does not match texture")
)

// textureCreator matches the allocation side of
// gpucontext.TextureCreator. Providers that implement it back wrapped
// images with real device textures; others get logical views.
type textureCreator interface {
	NewTextureFromRGBA(width, height int, data []byte) (any, error)
}

// textureUpdater matches gpucontext.TextureUpdater.
type textureUpdater interface {
	UpdateData(data []byte) error
}

// textureDestroyer matches the gogpu Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// Binding wraps swapchain images as wgpu textures.
type Binding struct {
	provider gpucontext.DeviceProvider
	gpu      *GPU
}

var _ backend.Binding = (*Binding)(nil)

// New creates a wgpu binding on the host's device.
func New(provider gpucontext.DeviceProvider) (*Binding, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	return &Binding{provider: provider}, nil
}

// RegisterWith registers a wgpu binding factory under
// backend.BindingWGPU, closing over the host's device provider.
func RegisterWith(provider gpucontext.DeviceProvider) {
	backend.Register(backend.BindingWGPU, func() backend.Binding {
		b, err := New(provider)
		if err != nil {
			return nil
		}
		return b
	})
}

// Name returns the binding identifier.
func (b *Binding) Name() string { return backend.BindingWGPU }

// Device returns the host device the binding renders through.
func (b *Binding) Device() gpucontext.Device { return b.provider.Device() }

// Queue returns the host queue the binding submits on.
func (b *Binding) Queue() gpucontext.Queue { return b.provider.Queue() }

// AttachGPU ties a dedicated wgpu device to the binding. Once the GPU
// is initialized, WrapImage validates extents against its texture
// limits.
func (b *Binding) AttachGPU(g *GPU) { b.gpu = g }

// WrapImage wraps one enumerated swapchain image as a Texture.
//
// When the provider can allocate textures, the image is backed by a
// device texture of the descriptor's extent, created zero-filled and
// refreshed through Upload. Otherwise the view is logical and hosts
// address the image through the driver handle.
func (b *Binding) WrapImage(desc driver.ImageDescriptor) (backend.Image, error) {
	if desc.Handle == 0 || desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("%w: handle=%#x extent=%dx%d",
			ErrInvalidDescriptor, desc.Handle, desc.Width, desc.Height)
	}
	if b.gpu != nil {
		if limit := b.gpu.MaxTextureDimension2D(); limit > 0 && (desc.Width > limit || desc.Height > limit) {
			return nil, fmt.Errorf("%w: extent %dx%d exceeds device limit %d",
				ErrInvalidDescriptor, desc.Width, desc.Height, limit)
		}
	}

	if desc.Format == gputypes.TextureFormatUndefined {
		desc.Format = b.provider.SurfaceFormat()
	}

	sizeBytes := uint64(desc.Width) * uint64(desc.Height) * uint64(bytesPerPixel(desc.Format))

	tex := &Texture{desc: desc, sizeBytes: sizeBytes}
	if creator, ok := b.provider.(textureCreator); ok {
		// TODO: Import desc.Handle directly once gogpu/wgpu exposes
		// external-image import; until then the device texture starts
		// zero-filled and is refreshed through Upload.
		devTex, err := creator.NewTextureFromRGBA(int(desc.Width), int(desc.Height), make([]byte, sizeBytes))
		if err != nil {
			return nil, fmt.Errorf("wgpu: texture allocation failed: %w", err)
		}
		tex.deviceTex = devTex
	}
	return tex, nil
}

// Texture is a wgpu view of one swapchain image. It owns the device
// texture allocated for the image; the swapchain image itself stays
// owned by the compositor ring.
type Texture struct {
	desc      driver.ImageDescriptor
	deviceTex any
	sizeBytes uint64
	released  atomic.Bool
}

var _ backend.Image = (*Texture)(nil)

// Format returns the texture pixel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.desc.Format }

// Width returns the texture width in pixels.
func (t *Texture) Width() uint32 { return t.desc.Width }

// Height returns the texture height in pixels.
func (t *Texture) Height() uint32 { return t.desc.Height }

// SizeBytes returns the texture size in bytes.
func (t *Texture) SizeBytes() uint64 { return t.sizeBytes }

// Handle returns the driver-level image handle backing this texture.
func (t *Texture) Handle() uint64 { return t.desc.Handle }

// DeviceTexture returns the device texture backing this view, or nil
// for logical textures and after Release.
func (t *Texture) DeviceTexture() any {
	if t.released.Load() {
		return nil
	}
	return t.deviceTex
}

// Upload refreshes the device texture with new pixel contents. The
// data length must match SizeBytes. Upload on a logical texture is a
// no-op.
func (t *Texture) Upload(data []byte) error {
	if t.released.Load() {
		return ErrTextureReleased
	}
	if uint64(len(data)) != t.sizeBytes {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(data), t.sizeBytes)
	}
	if updater, ok := t.deviceTex.(textureUpdater); ok {
		return updater.UpdateData(data)
	}
	return nil
}

// IsReleased returns true if the texture view has been released.
func (t *Texture) IsReleased() bool { return t.released.Load() }

// Release destroys the device texture and drops the view. Release is
// idempotent.
func (t *Texture) Release() {
	if t.released.Swap(true) {
		return
	}
	if destroyer, ok := t.deviceTex.(textureDestroyer); ok {
		destroyer.Destroy()
	}
}

// bytesPerPixel reports the pixel stride of the formats swapchains use.
func bytesPerPixel(f gputypes.TextureFormat) int {
	switch f {
	case gputypes.TextureFormatR8Unorm:
		return 1
	default:
		// RGBA8/BGRA8 and friends.
		return 4
	}
}
