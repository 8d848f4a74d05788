package backend

// Known device names.
const (
	// DeviceWGPU is the WebGPU device backed by gogpu/wgpu.
	DeviceWGPU = "wgpu"

	// DeviceSoftware is the pure-Go software device.
	DeviceSoftware = "software"
)

// Device is a rendering device for text meshes.
//
// A Device is single-owner: resource creation and drawing must not be called
// concurrently. Resources created by one device must not be passed to
// another.
type Device interface {
	// Name returns the registry name of this device.
	Name() string

	// CreateTexture uploads a single-channel coverage image and returns the
	// texture. Coverage values are in [0, 1], one float per pixel, row-major
	// with stride width.
	CreateTexture(width, height int, coverage []float32) (Texture, error)

	// CreateProgram compiles a shader program from vertex and fragment
	// source. Both sources together form one module; the entry points are
	// vs_main and fs_main.
	CreateProgram(vertexSrc, fragmentSrc string) (Program, error)

	// CreateVertexBuffer uploads raw vertex data with the given byte stride.
	CreateVertexBuffer(data []byte, stride int) (Buffer, error)

	// CreateIndexBuffer uploads raw 16-bit index data (little endian).
	CreateIndexBuffer(data []byte) (Buffer, error)

	// Draw issues exactly one indexed draw call. The texture is sampled
	// with linear min/mag filtering. The matrix is 4x4 row-major; the color
	// is straight (non-premultiplied) RGBA.
	Draw(target Target, call *DrawCall) error

	// Close releases all resources owned by the device.
	Close() error
}

// Texture is a device-owned coverage texture.
type Texture interface {
	// Size returns the texture dimensions in pixels.
	Size() (width, height int)

	// Destroy releases the texture. Safe to call more than once.
	Destroy()
}

// Buffer is a device-owned vertex or index buffer.
type Buffer interface {
	// Len returns the buffer size in bytes.
	Len() int

	// Destroy releases the buffer. Safe to call more than once.
	Destroy()
}

// Program is a device-owned compiled shader program.
type Program interface {
	// Destroy releases the program. Safe to call more than once.
	Destroy()
}

// Target identifies where a draw call lands. The concrete type is
// device-specific: an image for the software device, a render pass encoder
// for the wgpu device.
type Target any

// DrawCall describes a single indexed draw.
type DrawCall struct {
	// Program is the compiled shader program to bind.
	Program Program

	// Vertices is the vertex buffer (position vec2 + tex_coord vec2,
	// 16 bytes per vertex).
	Vertices Buffer

	// Indices is the 16-bit index buffer.
	Indices Buffer

	// IndexCount is the number of indices to draw.
	IndexCount int

	// Texture is the coverage atlas texture to sample.
	Texture Texture

	// Matrix maps local text space to clip space (4x4, row-major).
	Matrix [16]float32

	// Color is the straight-alpha text color.
	Color [4]float32
}
