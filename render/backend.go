//go:build !nogpu

package render

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/cellgrid"
)

// Backend owns the GPU instance, device, and queue the renderer runs
// on. Applications that already hold a hal device can skip it and use
// NewRendererWith directly.
type Backend struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	adapterName string
	initialized bool
}

// NewBackend creates an uninitialized backend. Call Init before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Init acquires a GPU device: it creates a Vulkan instance, picks a
// discrete or integrated adapter (falling back to the first one), and
// opens a device with default limits.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("%w: vulkan backend not available", ErrNoAdapter)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	b.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return ErrNoAdapter
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	b.device = openDev.Device
	b.queue = openDev.Queue
	b.adapterName = selected.Info.Name
	b.initialized = true

	cellgrid.Logger().Info("gpu backend initialized", "adapter", b.adapterName)
	return nil
}

// Close releases the device. The backend must not be used afterwards.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	if b.device != nil {
		b.device.Destroy()
		b.device = nil
	}
	// The instance needs no explicit cleanup in the current hal.
	b.instance = nil
	b.queue = nil
	b.initialized = false

	cellgrid.Logger().Info("gpu backend closed")
}

// IsInitialized reports whether Init has succeeded.
func (b *Backend) IsInitialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized
}

// Device returns the hal device, or nil before Init.
func (b *Backend) Device() hal.Device {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.device
}

// Queue returns the hal queue, or nil before Init.
func (b *Backend) Queue() hal.Queue {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queue
}

// AdapterName returns the selected adapter's reported name.
func (b *Backend) AdapterName() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.adapterName
}
