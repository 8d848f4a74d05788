package glyphatlas

import _ "embed"

// Embedded WGSL shader sources for the text program. The vertex source
// carries the shared declarations; devices concatenate the two into a
// single module.
//
//go:embed shaders/text_vertex.wgsl
var vertexShaderSource string

//go:embed shaders/text_fragment.wgsl
var fragmentShaderSource string

// VertexShaderSource returns the WGSL source of the text vertex stage.
func VertexShaderSource() string { return vertexShaderSource }

// FragmentShaderSource returns the WGSL source of the text fragment stage.
func FragmentShaderSource() string { return fragmentShaderSource }
