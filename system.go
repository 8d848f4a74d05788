package glyphatlas

import (
	"fmt"
	"sync"

	"github.com/gogpu/glyphatlas/backend"
)

// TextSystem holds the elements shared by all text meshes drawn on one
// device: the compiled shader program and the uploaded atlas textures.
//
// Create one TextSystem per device and share it across meshes. The system
// is single-owner; do not mutate it from multiple goroutines.
type TextSystem struct {
	device  backend.Device
	program backend.Program

	mu       sync.Mutex
	textures map[*Atlas]backend.Texture
	closed   bool
}

// NewTextSystem compiles the text shader program on the given device and
// returns a system ready to build and draw meshes.
func NewTextSystem(device backend.Device) (*TextSystem, error) {
	if device == nil {
		return nil, ErrNilDevice
	}

	program, err := device.CreateProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("glyphatlas: compile text program: %w", err)
	}

	Logger().Info("glyphatlas: text system ready", "device", device.Name())

	return &TextSystem{
		device:   device,
		program:  program,
		textures: make(map[*Atlas]backend.Texture),
	}, nil
}

// Device returns the rendering device the system was built on.
func (s *TextSystem) Device() backend.Device { return s.device }

// textureFor returns the device texture for an atlas, uploading it on
// first use. The texture lives until the system is closed.
func (s *TextSystem) textureFor(atlas *Atlas) (backend.Texture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSystemClosed
	}
	if tex, ok := s.textures[atlas]; ok {
		return tex, nil
	}

	tex, err := s.device.CreateTexture(atlas.Width(), atlas.Height(), atlas.Pixels())
	if err != nil {
		return nil, fmt.Errorf("glyphatlas: upload atlas: %w", err)
	}
	s.textures[atlas] = tex
	return tex, nil
}

// Close releases the shader program and all uploaded atlas textures.
// The device itself is left open; it belongs to the caller.
// Safe to call more than once.
func (s *TextSystem) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for _, tex := range s.textures {
		tex.Destroy()
	}
	s.textures = nil

	if s.program != nil {
		s.program.Destroy()
		s.program = nil
	}

	return nil
}
