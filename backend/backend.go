// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package backend defines the capability interface through which
// graphics APIs plug into xr swapchains.
//
// The core swapchain protocol never looks inside an image: it moves
// opaque ring slots through acquire, wait and release. Turning an
// enumerated image into something a renderer can draw to is the job of
// a Binding, one per graphics API. The wgpu binding wraps images as
// wgpu textures; the headless driver ships a CPU binding for tests and
// tools.
package backend

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/xr/driver"
)

// Binding name constants.
const (
	// BindingWGPU is the name of the gogpu/wgpu graphics binding.
	BindingWGPU = "wgpu"
	// BindingHeadless is the name of the CPU binding provided by the
	// headless driver.
	BindingHeadless = "headless"
)

// Image is a graphics-API view of one swapchain image.
//
// The binding owns any API resources backing the view; Release returns
// them. Releasing a view does not affect the underlying swapchain
// image, which stays owned by the compositor ring.
type Image interface {
	// Format returns the image pixel format.
	Format() gputypes.TextureFormat

	// Width returns the image width in pixels.
	Width() uint32

	// Height returns the image height in pixels.
	Height() uint32

	// Release frees API resources held by this view.
	// Release is idempotent.
	Release()
}

// Binding adapts driver image descriptors to a graphics API.
//
// A Binding is bound to the device state of one session and must not
// be shared across sessions.
type Binding interface {
	// Name returns the binding identifier.
	Name() string

	// WrapImage converts one enumerated descriptor into an
	// API-level image view.
	WrapImage(desc driver.ImageDescriptor) (Image, error)
}

// WrapImages converts a full enumeration result through b.
// On error, views created so far are released before returning.
func WrapImages(b Binding, descs []driver.ImageDescriptor) ([]Image, error) {
	images := make([]Image, 0, len(descs))
	for _, desc := range descs {
		img, err := b.WrapImage(desc)
		if err != nil {
			for _, done := range images {
				done.Release()
			}
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}
