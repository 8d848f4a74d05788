package softdev

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/glyphatlas/backend"
)

func init() {
	backend.Register(backend.DeviceSoftware, func() backend.Device {
		return New()
	})
}

// Device is a pure-Go software implementation of backend.Device.
// It keeps all resources in memory and rasterizes draw calls on the CPU.
type Device struct {
	closed    bool
	drawCalls int
	lastCall  *backend.DrawCall
}

// New creates a new software device.
func New() *Device {
	return &Device{}
}

// Name implements backend.Device.
func (d *Device) Name() string { return backend.DeviceSoftware }

// DrawCallCount returns the total number of draw calls issued on this
// device since creation or the last Reset.
func (d *Device) DrawCallCount() int { return d.drawCalls }

// LastCall returns the most recent draw call, or nil.
func (d *Device) LastCall() *backend.DrawCall { return d.lastCall }

// Reset clears the draw call counter and last call record.
func (d *Device) Reset() {
	d.drawCalls = 0
	d.lastCall = nil
}

// CreateTexture implements backend.Device.
func (d *Device) CreateTexture(width, height int, coverage []float32) (backend.Texture, error) {
	if d.closed {
		return nil, backend.ErrDeviceClosed
	}
	pixels := make([]float32, len(coverage))
	copy(pixels, coverage)
	return &texture{width: width, height: height, coverage: pixels}, nil
}

// CreateProgram implements backend.Device. The software device does not
// compile shaders; it keeps the sources and implements their semantics
// directly in the rasterizer.
func (d *Device) CreateProgram(vertexSrc, fragmentSrc string) (backend.Program, error) {
	if d.closed {
		return nil, backend.ErrDeviceClosed
	}
	return &program{vertex: vertexSrc, fragment: fragmentSrc}, nil
}

// CreateVertexBuffer implements backend.Device.
func (d *Device) CreateVertexBuffer(data []byte, stride int) (backend.Buffer, error) {
	if d.closed {
		return nil, backend.ErrDeviceClosed
	}
	b := make([]byte, len(data))
	copy(b, data)
	return &buffer{data: b, stride: stride}, nil
}

// CreateIndexBuffer implements backend.Device.
func (d *Device) CreateIndexBuffer(data []byte) (backend.Buffer, error) {
	if d.closed {
		return nil, backend.ErrDeviceClosed
	}
	b := make([]byte, len(data))
	copy(b, data)
	return &buffer{data: b, stride: 2}, nil
}

// Draw implements backend.Device. The target must be an *Image.
func (d *Device) Draw(target backend.Target, call *backend.DrawCall) error {
	if d.closed {
		return backend.ErrDeviceClosed
	}
	if target == nil {
		return backend.ErrNilTarget
	}
	img, ok := target.(*Image)
	if !ok {
		return backend.ErrInvalidTarget
	}
	if call == nil || call.Program == nil || call.Vertices == nil ||
		call.Indices == nil || call.Texture == nil || call.IndexCount == 0 {
		return backend.ErrInvalidDrawCall
	}

	d.drawCalls++
	d.lastCall = call
	img.drawCalls++

	vb, ok := call.Vertices.(*buffer)
	if !ok {
		return backend.ErrInvalidDrawCall
	}
	tex, ok := call.Texture.(*texture)
	if !ok {
		return backend.ErrInvalidDrawCall
	}

	rasterizeQuads(img, vb, tex, call.Matrix, call.Color)
	return nil
}

// Close implements backend.Device.
func (d *Device) Close() error {
	d.closed = true
	return nil
}

// texture is a CPU-resident coverage texture.
type texture struct {
	width    int
	height   int
	coverage []float32
}

func (t *texture) Size() (int, int) { return t.width, t.height }
func (t *texture) Destroy()         { t.coverage = nil }

// sample returns bilinear-filtered coverage at normalized coordinates,
// clamping to the texture edge.
func (t *texture) sample(u, v float32) float32 {
	if t.coverage == nil || t.width == 0 || t.height == 0 {
		return 0
	}
	x := float64(u)*float64(t.width) - 0.5
	y := float64(v)*float64(t.height) - 0.5
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := float32(x - float64(x0))
	fy := float32(y - float64(y0))

	c00 := t.texel(x0, y0)
	c10 := t.texel(x0+1, y0)
	c01 := t.texel(x0, y0+1)
	c11 := t.texel(x0+1, y0+1)

	top := c00 + (c10-c00)*fx
	bot := c01 + (c11-c01)*fx
	return top + (bot-top)*fy
}

func (t *texture) texel(x, y int) float32 {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x >= t.width {
		x = t.width - 1
	}
	if y >= t.height {
		y = t.height - 1
	}
	return t.coverage[y*t.width+x]
}

// program keeps the shader sources for inspection; the rasterizer below is
// the software rendition of their semantics.
type program struct {
	vertex   string
	fragment string
}

func (p *program) Destroy() {}

// buffer is a CPU-resident vertex or index buffer.
type buffer struct {
	data   []byte
	stride int
}

func (b *buffer) Len() int { return len(b.data) }
func (b *buffer) Destroy() { b.data = nil }

// quadVertex mirrors the 16-byte vertex layout: position + tex_coord.
type quadVertex struct {
	x, y float32
	u, v float32
}

func (b *buffer) vertexAt(i int) quadVertex {
	off := i * b.stride
	return quadVertex{
		x: math.Float32frombits(binary.LittleEndian.Uint32(b.data[off:])),
		y: math.Float32frombits(binary.LittleEndian.Uint32(b.data[off+4:])),
		u: math.Float32frombits(binary.LittleEndian.Uint32(b.data[off+8:])),
		v: math.Float32frombits(binary.LittleEndian.Uint32(b.data[off+12:])),
	}
}

func (b *buffer) vertexCount() int {
	if b.stride == 0 {
		return 0
	}
	return len(b.data) / b.stride
}
