package wgpudev

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// program holds the compiled shader module and render pipeline for text
// drawing.
type program struct {
	device *Device

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// build compiles the WGSL module and creates the render pipeline with
// premultiplied alpha blending.
func (p *program) build(source string) error {
	shader, err := p.device.dev.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "glyphatlas_shader",
		Source: hal.ShaderSource{WGSL: source},
	})
	if err != nil {
		return fmt.Errorf("wgpudev: compile shader: %w", err)
	}
	p.shader = shader

	// Bind group layout:
	//   Binding 0: TextUniforms (uniform buffer, vertex+fragment)
	//   Binding 1: coverage atlas texture (texture_2d, fragment)
	//   Binding 2: sampler (fragment)
	bindLayout, err := p.device.dev.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "glyphatlas_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpudev: create bind group layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := p.device.dev.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "glyphatlas_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpudev: create pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.dev.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "glyphatlas_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{
				{
					ArrayStride: vertexStride,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
						{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // tex_coord
					},
				},
			},
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.device.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("wgpudev: create render pipeline: %w", err)
	}
	p.pipeline = pipeline

	return nil
}

// Destroy releases the pipeline resources in reverse creation order.
// Safe to call on a partially built program.
func (p *program) Destroy() {
	if p.pipeline != nil {
		p.device.dev.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.dev.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.dev.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		p.device.dev.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
