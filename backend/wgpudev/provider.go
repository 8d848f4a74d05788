package wgpudev

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// Provider errors.
var (
	// ErrNoHALTypes is returned when the provider does not expose raw HAL
	// handles.
	ErrNoHALTypes = errors.New("wgpudev: provider does not expose HAL types")
)

// NewFromProvider creates a device from a host application's shared GPU
// device. The provider must implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue.
//
// When the provider also implements gpucontext.DeviceProvider, the render
// pipeline targets the host's surface format instead of the BGRA8Unorm
// default.
func NewFromProvider(provider any, opts ...Option) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALTypes
	}
	dev, ok := hp.HalDevice().(hal.Device)
	if !ok || dev == nil {
		return nil, errors.New("wgpudev: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, errors.New("wgpudev: provider HalQueue is not hal.Queue")
	}

	if dp, ok := provider.(gpucontext.DeviceProvider); ok {
		opts = append([]Option{WithTargetFormat(dp.SurfaceFormat())}, opts...)
	}

	return New(dev, queue, opts...)
}
