package glyphatlas

import (
	"encoding/binary"
	"math"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/glyphatlas/backend"
)

// vertexStride is the byte stride per vertex.
// Layout per vertex:
//
//	position  (vec2<f32>) = 8 bytes  (location 0)
//	tex_coord (vec2<f32>) = 8 bytes  (location 1)
//
// Total = 16 bytes per vertex.
const vertexStride = 16

// vertex is one corner of a glyph quad, in local text space.
type vertex struct {
	x, y float32
	u, v float32
}

// TextMesh holds the vertex and index buffers for one string of text,
// built against a specific atlas.
//
// Vertices are in local text space: the baseline sits at y=0 and one unit
// of height corresponds to a line of text. Each matched visible character
// becomes one quad (4 vertices, 6 indices); characters missing from the
// atlas are skipped without error, and zero-area glyphs such as space only
// advance the pen.
//
// A TextMesh is single-owner. The atlas it references is shared read-only.
type TextMesh struct {
	system *TextSystem
	atlas  *Atlas

	texture   backend.Texture
	vertexBuf backend.Buffer
	indexBuf  backend.Buffer

	vertices   []vertex
	indices    []uint16
	totalWidth float32
	empty      bool
	text       string
}

// NewTextMesh builds the mesh for text. The atlas texture is uploaded to
// the system's device on first use and shared across meshes.
func NewTextMesh(system *TextSystem, atlas *Atlas, text string) (*TextMesh, error) {
	if system == nil {
		return nil, ErrNilSystem
	}
	if atlas == nil {
		return nil, ErrNilAtlas
	}

	texture, err := system.textureFor(atlas)
	if err != nil {
		return nil, err
	}

	m := &TextMesh{
		system:  system,
		atlas:   atlas,
		texture: texture,
		empty:   true,
	}
	if err := m.SetText(text); err != nil {
		return nil, err
	}
	return m, nil
}

// SetText replaces the mesh contents with a new string. The mesh is fully
// rebuilt; building the same string twice yields identical buffers.
//
// Indices are 16-bit, limiting a mesh to 16384 visible characters; longer
// strings fail with ErrTextTooLong and leave the mesh empty.
func (m *TextMesh) SetText(text string) error {
	m.destroyBuffers()
	m.vertices = nil
	m.indices = nil
	m.totalWidth = 0
	m.empty = true
	m.text = text

	if text == "" {
		return nil
	}

	for _, r := range norm.NFC.String(text) {
		infos, ok := m.atlas.Lookup(r)
		if !ok {
			// Character not covered by the font; ignore it.
			continue
		}

		m.totalWidth += infos.PadLeft

		left := m.totalWidth
		right := left + infos.Width

		// Zero-area glyphs (space and friends) consume pen advance but
		// contribute no quad.
		if infos.Width > 0 && infos.Height > 0 {
			// Indices are 16-bit; a quad past 65536 vertices would wrap.
			if len(m.vertices)+4 > 1<<16 {
				m.vertices = nil
				m.indices = nil
				m.totalWidth = 0
				m.empty = true
				return ErrTextTooLong
			}

			m.empty = false

			base := uint16(len(m.vertices))
			m.indices = append(m.indices,
				base, base+1, base+2,
				base+2, base+1, base+3)

			top := infos.BearingTop
			bottom := infos.BearingTop - infos.Height

			m.vertices = append(m.vertices,
				// top-left
				vertex{x: left, y: top, u: infos.OriginX, v: infos.OriginY},
				// top-right
				vertex{x: right, y: top, u: infos.OriginX + infos.Width, v: infos.OriginY},
				// bottom-left
				vertex{x: left, y: bottom, u: infos.OriginX, v: infos.OriginY + infos.Height},
				// bottom-right
				vertex{x: right, y: bottom, u: infos.OriginX + infos.Width, v: infos.OriginY + infos.Height})
		}

		m.totalWidth = right + infos.PadRight
	}

	if len(m.vertices) == 0 {
		return nil
	}

	vertexBuf, err := m.system.device.CreateVertexBuffer(m.vertexData(), vertexStride)
	if err != nil {
		return err
	}
	indexBuf, err := m.system.device.CreateIndexBuffer(m.indexData())
	if err != nil {
		vertexBuf.Destroy()
		return err
	}
	m.vertexBuf = vertexBuf
	m.indexBuf = indexBuf

	return nil
}

// Text returns the string the mesh was last built from.
func (m *TextMesh) Text() string { return m.text }

// TotalWidth returns the width of the text in local text space units,
// including the left and right spacing of every matched character.
func (m *TextMesh) TotalWidth() float32 { return m.totalWidth }

// IsEmpty reports whether the mesh contains no quads. True for the empty
// string and for strings whose characters are all missing from the atlas.
func (m *TextMesh) IsEmpty() bool { return m.empty }

// QuadCount returns the number of glyph quads in the mesh.
func (m *TextMesh) QuadCount() int { return len(m.vertices) / 4 }

// Close releases the mesh's device buffers. The atlas texture is owned by
// the TextSystem and stays alive.
func (m *TextMesh) Close() {
	m.destroyBuffers()
	m.vertices = nil
	m.indices = nil
	m.empty = true
}

func (m *TextMesh) destroyBuffers() {
	if m.vertexBuf != nil {
		m.vertexBuf.Destroy()
		m.vertexBuf = nil
	}
	if m.indexBuf != nil {
		m.indexBuf.Destroy()
		m.indexBuf = nil
	}
}

// vertexData serializes the vertices into raw little-endian bytes for
// device upload.
func (m *TextMesh) vertexData() []byte {
	data := make([]byte, len(m.vertices)*vertexStride)
	off := 0
	for _, v := range m.vertices {
		binary.LittleEndian.PutUint32(data[off:], math.Float32bits(v.x))
		binary.LittleEndian.PutUint32(data[off+4:], math.Float32bits(v.y))
		binary.LittleEndian.PutUint32(data[off+8:], math.Float32bits(v.u))
		binary.LittleEndian.PutUint32(data[off+12:], math.Float32bits(v.v))
		off += vertexStride
	}
	return data
}

// indexData serializes the indices into raw little-endian bytes.
func (m *TextMesh) indexData() []byte {
	data := make([]byte, len(m.indices)*2)
	for i, idx := range m.indices {
		binary.LittleEndian.PutUint16(data[i*2:], idx)
	}
	return data
}
