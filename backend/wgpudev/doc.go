// Package wgpudev implements the glyphatlas rendering device on top of the
// gogpu/wgpu HAL.
//
// Unlike the software device it cannot construct itself from nothing: it
// needs a hal.Device and hal.Queue, either passed directly to New or
// obtained from a host application through NewFromProvider. Draw targets
// are hal.RenderPassEncoder values recorded by the host's render loop.
package wgpudev
