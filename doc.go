// Package xr manages the lifecycle of compositor-owned swapchains for
// the GoGPU ecosystem.
//
// # Overview
//
// A swapchain is a bounded ring of images cycled between application
// rendering and compositor presentation. xr wraps the runtime's entry
// points behind a small ownership model: an Instance resolves a driver
// and its capabilities, a Session borrows the instance, and a Swapchain
// exclusively owns one ring handle for exactly as long as it lives.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/xr"
//	    _ "github.com/gogpu/xr/driver/headless"
//	)
//
//	inst, err := xr.CreateInstance(nil)
//	// handle err
//	defer inst.Destroy()
//
//	session := inst.NewSession()
//	sc, err := session.CreateSwapchain(&xr.SwapchainCreateInfo{
//	    Width:  1024,
//	    Height: 1024,
//	})
//	// handle err
//	defer sc.Destroy()
//
//	index, err := sc.AcquireImage()
//	ready, err := sc.WaitImage(xr.InfiniteTimeout)
//	// render to the image at index, then:
//	err = sc.ReleaseImage()
//
// # The acquire/wait/release protocol
//
// Operations on one swapchain are strictly FIFO: the Nth release
// corresponds to the Nth wait corresponds to the Nth acquire. Acquiring
// an image does not make it usable; only a successful wait does. The
// wrapper propagates the driver's report when this discipline is
// violated rather than tracking protocol state itself, so the ordering
// preconditions on WaitImage and ReleaseImage are the caller's to
// uphold. A single Swapchain is not safe for unsynchronized concurrent
// use; distinct swapchains are independent.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Instance, Session, Swapchain
//   - driver: the entry-point table, status codes and argument structs
//   - driver/headless: an in-process compositor simulation
//   - backend: graphics-API image bindings (wgpu, headless CPU)
package xr
