// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
)

// ErrNoGPU is returned when no usable GPU adapter is found.
var ErrNoGPU = errors.New("wgpu: no GPU adapter available")

// GPUInfo contains information about the selected GPU.
type GPUInfo struct {
	// Name is the GPU name (e.g., "NVIDIA GeForce RTX 3080").
	Name string
	// Vendor is the GPU vendor.
	Vendor string
	// DeviceType is the type of GPU (discrete, integrated, etc.).
	DeviceType gputypes.DeviceType
	// Backend is the graphics API in use (Vulkan, Metal, DX12).
	Backend gputypes.Backend
	// Driver is the driver version string.
	Driver string
}

// String returns a human-readable description of the GPU.
func (g *GPUInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", g.Name, g.DeviceType, g.Backend)
}

// GPU owns a wgpu instance, adapter, device, and queue for hosts that
// do not already carry a device of their own. Hosts with a shared
// device keep using New with their DeviceProvider; GPU exists for
// standalone tools that want the binding to bring its own.
//
// GPU is safe for concurrent use.
type GPU struct {
	mu sync.RWMutex

	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID

	info       *GPUInfo
	maxTexture uint32

	initialized bool
}

// NewGPU creates an uninitialized GPU. Call Init before use.
func NewGPU() *GPU {
	return &GPU{}
}

// Init creates the instance, requests an adapter, and opens the
// device and queue. Init is idempotent.
func (g *GPU) Init() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.initialized {
		return nil
	}

	desc := &gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	}
	g.instance = core.NewInstance(desc)

	adapterID, err := g.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	g.adapter = adapterID

	deviceID, err := core.RequestDevice(adapterID, &gputypes.DeviceDescriptor{
		Label:            "xr-wgpu-device",
		RequiredFeatures: nil,
		RequiredLimits:   gputypes.DefaultLimits(),
	})
	if err != nil {
		return fmt.Errorf("wgpu: device creation failed: %w", err)
	}
	g.device = deviceID

	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		_ = core.DeviceDrop(deviceID)
		return fmt.Errorf("wgpu: queue retrieval failed: %w", err)
	}
	g.queue = queueID

	if info, err := core.GetAdapterInfo(adapterID); err == nil {
		g.info = &GPUInfo{
			Name:       info.Name,
			Vendor:     info.Vendor,
			DeviceType: info.DeviceType,
			Backend:    info.Backend,
			Driver:     info.Driver,
		}
		log.Printf("wgpu: GPU: %s", g.info.String())
	}
	if limits, err := core.GetDeviceLimits(deviceID); err == nil {
		g.maxTexture = limits.MaxTextureDimension2D
	}

	g.initialized = true
	return nil
}

// Close releases the device and adapter in reverse order of creation.
// Close is safe on an uninitialized GPU.
func (g *GPU) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return
	}

	// Queue is released when the device is dropped.
	if !g.device.IsZero() {
		if err := core.DeviceDrop(g.device); err != nil {
			log.Printf("wgpu: error releasing device: %v", err)
		}
		g.device = core.DeviceID{}
	}
	if !g.adapter.IsZero() {
		if err := core.AdapterDrop(g.adapter); err != nil {
			log.Printf("wgpu: error releasing adapter: %v", err)
		}
		g.adapter = core.AdapterID{}
	}

	g.instance = nil
	g.queue = core.QueueID{}
	g.info = nil
	g.maxTexture = 0
	g.initialized = false
}

// IsInitialized reports whether Init has completed.
func (g *GPU) IsInitialized() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.initialized
}

// DeviceID returns the wgpu device handle. Zero before Init.
func (g *GPU) DeviceID() core.DeviceID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.device
}

// QueueID returns the wgpu queue handle. Zero before Init.
func (g *GPU) QueueID() core.QueueID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.queue
}

// Info returns information about the selected GPU. Nil before Init.
func (g *GPU) Info() *GPUInfo {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.info
}

// MaxTextureDimension2D returns the device's 2D texture size limit.
// Zero before Init.
func (g *GPU) MaxTextureDimension2D() uint32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.maxTexture
}
