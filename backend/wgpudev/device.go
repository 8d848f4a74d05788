package wgpudev

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/glyphatlas/backend"
)

// Device errors.
var (
	// ErrNilHALDevice is returned when constructing without a HAL device.
	ErrNilHALDevice = errors.New("wgpudev: hal device is nil")

	// ErrNilHALQueue is returned when constructing without a HAL queue.
	ErrNilHALQueue = errors.New("wgpudev: hal queue is nil")
)

// vertexStride is the byte stride per vertex.
// Layout per vertex:
//
//	position  (vec2<f32>) = 8 bytes  (location 0)
//	tex_coord (vec2<f32>) = 8 bytes  (location 1)
const vertexStride = 16

// uniformSize is the byte size of the text uniform buffer.
// Layout: matrix (mat4x4<f32>) = 64 bytes + color (vec4<f32>) = 16 bytes.
const uniformSize = 80

// Device implements backend.Device on a gogpu/wgpu HAL device.
//
// Per-draw uniform buffers and bind groups stay alive until EndFrame is
// called, so the GPU can still read them when the command buffer executes.
// Call EndFrame once per frame after submitting.
type Device struct {
	dev   hal.Device
	queue hal.Queue

	// format is the color target format of the host's render pass.
	format gputypes.TextureFormat

	// sampler is the shared linear clamp-to-edge sampler.
	sampler hal.Sampler

	// transient resources retired by EndFrame.
	transientBufs   []hal.Buffer
	transientGroups []hal.BindGroup

	closed bool
}

// Option configures a Device.
type Option func(*Device)

// WithTargetFormat sets the color target format of the render pipeline.
// Default is BGRA8Unorm.
func WithTargetFormat(format gputypes.TextureFormat) Option {
	return func(d *Device) { d.format = format }
}

// New creates a device over the given HAL handles.
func New(dev hal.Device, queue hal.Queue, opts ...Option) (*Device, error) {
	if dev == nil {
		return nil, ErrNilHALDevice
	}
	if queue == nil {
		return nil, ErrNilHALQueue
	}

	d := &Device{
		dev:    dev,
		queue:  queue,
		format: gputypes.TextureFormatBGRA8Unorm,
	}
	for _, opt := range opts {
		opt(d)
	}

	sampler, err := dev.CreateSampler(&hal.SamplerDescriptor{
		Label:        "glyphatlas_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpudev: create sampler: %w", err)
	}
	d.sampler = sampler

	return d, nil
}

// Name implements backend.Device.
func (d *Device) Name() string { return backend.DeviceWGPU }

// CreateTexture implements backend.Device. Coverage is uploaded as an
// R8Unorm texture; the fragment stage samples the red channel.
func (d *Device) CreateTexture(width, height int, coverage []float32) (backend.Texture, error) {
	if d.closed {
		return nil, backend.ErrDeviceClosed
	}

	w := uint32(width)
	h := uint32(height)

	tex, err := d.dev.CreateTexture(&hal.TextureDescriptor{
		Label:         "glyphatlas_atlas",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatR8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpudev: create atlas texture: %w", err)
	}

	view, err := d.dev.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "glyphatlas_atlas_view",
		Format:        gputypes.TextureFormatR8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.dev.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpudev: create atlas texture view: %w", err)
	}

	// One byte per pixel of coverage.
	data := make([]byte, len(coverage))
	for i, v := range coverage {
		if v <= 0 {
			continue
		}
		if v >= 1 {
			data[i] = 255
			continue
		}
		data[i] = byte(v*255 + 0.5)
	}

	d.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		data,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: w, RowsPerImage: h},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)

	return &texture{device: d, tex: tex, view: view, width: width, height: height}, nil
}

// CreateProgram implements backend.Device. The two sources are joined into
// one WGSL module; the render pipeline binds vs_main and fs_main.
func (d *Device) CreateProgram(vertexSrc, fragmentSrc string) (backend.Program, error) {
	if d.closed {
		return nil, backend.ErrDeviceClosed
	}
	if vertexSrc == "" || fragmentSrc == "" {
		return nil, errors.New("wgpudev: empty shader source")
	}

	p := &program{device: d}
	if err := p.build(vertexSrc + "\n" + fragmentSrc); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

// CreateVertexBuffer implements backend.Device.
func (d *Device) CreateVertexBuffer(data []byte, stride int) (backend.Buffer, error) {
	return d.createBuffer(data, gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst, "glyphatlas_vertices")
}

// CreateIndexBuffer implements backend.Device.
func (d *Device) CreateIndexBuffer(data []byte) (backend.Buffer, error) {
	return d.createBuffer(data, gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst, "glyphatlas_indices")
}

func (d *Device) createBuffer(data []byte, usage gputypes.BufferUsage, label string) (backend.Buffer, error) {
	if d.closed {
		return nil, backend.ErrDeviceClosed
	}
	buf, err := d.dev.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpudev: create buffer: %w", err)
	}
	d.queue.WriteBuffer(buf, 0, data)
	return &buffer{device: d, buf: buf, size: len(data)}, nil
}

// Draw implements backend.Device. The target must be a hal.RenderPassEncoder.
func (d *Device) Draw(target backend.Target, call *backend.DrawCall) error {
	if d.closed {
		return backend.ErrDeviceClosed
	}
	if target == nil {
		return backend.ErrNilTarget
	}
	rp, ok := target.(hal.RenderPassEncoder)
	if !ok {
		return backend.ErrInvalidTarget
	}
	if call == nil || call.Program == nil || call.Vertices == nil ||
		call.Indices == nil || call.Texture == nil || call.IndexCount == 0 {
		return backend.ErrInvalidDrawCall
	}

	prog, ok := call.Program.(*program)
	if !ok {
		return backend.ErrInvalidDrawCall
	}
	vb, ok := call.Vertices.(*buffer)
	if !ok {
		return backend.ErrInvalidDrawCall
	}
	ib, ok := call.Indices.(*buffer)
	if !ok {
		return backend.ErrInvalidDrawCall
	}
	tex, ok := call.Texture.(*texture)
	if !ok {
		return backend.ErrInvalidDrawCall
	}

	uniformBuf, err := d.dev.CreateBuffer(&hal.BufferDescriptor{
		Label: "glyphatlas_uniforms",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpudev: create uniform buffer: %w", err)
	}
	d.queue.WriteBuffer(uniformBuf, 0, uniformData(call.Matrix, call.Color))

	bindGroup, err := d.dev.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "glyphatlas_bind",
		Layout: prog.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{
				TextureView: tex.view.NativeHandle(),
			}},
			{Binding: 2, Resource: gputypes.SamplerBinding{
				Sampler: d.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		d.dev.DestroyBuffer(uniformBuf)
		return fmt.Errorf("wgpudev: create bind group: %w", err)
	}

	d.transientBufs = append(d.transientBufs, uniformBuf)
	d.transientGroups = append(d.transientGroups, bindGroup)

	rp.SetPipeline(prog.pipeline)
	rp.SetBindGroup(0, bindGroup, nil)
	rp.SetVertexBuffer(0, vb.buf, 0)
	rp.SetIndexBuffer(ib.buf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(uint32(call.IndexCount), 1, 0, 0, 0)

	return nil
}

// EndFrame releases the per-draw uniform buffers and bind groups of the
// frame. Call after the frame's command buffer has been submitted.
func (d *Device) EndFrame() {
	for _, bg := range d.transientGroups {
		d.dev.DestroyBindGroup(bg)
	}
	d.transientGroups = d.transientGroups[:0]
	for _, buf := range d.transientBufs {
		d.dev.DestroyBuffer(buf)
	}
	d.transientBufs = d.transientBufs[:0]
}

// Close implements backend.Device. The HAL device and queue belong to the
// caller and are left open.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	d.EndFrame()
	if d.sampler != nil {
		d.dev.DestroySampler(d.sampler)
		d.sampler = nil
	}
	return nil
}

// uniformData serializes the 80-byte uniform block: 4x4 matrix then color.
// The matrix arrives row-major; WGSL stores mat4x4 columns in consecutive
// memory, so it is written column by column.
func uniformData(matrix [16]float32, color [4]float32) []byte {
	buf := make([]byte, uniformSize)
	off := 0
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(matrix[row*4+col]))
			off += 4
		}
	}
	for _, v := range color {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	return buf
}

// texture wraps a HAL texture and its view.
type texture struct {
	device *Device
	tex    hal.Texture
	view   hal.TextureView
	width  int
	height int
}

func (t *texture) Size() (int, int) { return t.width, t.height }

func (t *texture) Destroy() {
	if t.view != nil {
		t.device.dev.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.device.dev.DestroyTexture(t.tex)
		t.tex = nil
	}
}

// buffer wraps a HAL buffer.
type buffer struct {
	device *Device
	buf    hal.Buffer
	size   int
}

func (b *buffer) Len() int { return b.size }

func (b *buffer) Destroy() {
	if b.buf != nil {
		b.device.dev.DestroyBuffer(b.buf)
		b.buf = nil
	}
}
