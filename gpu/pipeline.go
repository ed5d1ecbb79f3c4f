//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/spline"
	"github.com/gogpu/spline/vertex"
)

// variantFor picks the preview shader reading the attributes of t.
func variantFor(t vertex.Type) shaderVariant {
	if t&vertex.ColorMask != 0 {
		return variantColor
	}
	return variantPosition
}

// ensureShared creates the shader modules, layouts and viewport uniform.
func (s *Sink) ensureShared() error {
	if s.bindGroup != nil {
		return nil
	}
	for _, v := range []shaderVariant{variantPosition, variantColor} {
		if s.shaders[v] != nil {
			continue
		}
		code, err := compileShader(v)
		if err != nil {
			return err
		}
		sh, err := s.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label:  "spline_preview_" + v.String(),
			Source: hal.ShaderSource{SPIRV: code},
		})
		if err != nil {
			return fmt.Errorf("gpu: create %v shader: %w", v, err)
		}
		s.shaders[v] = sh
	}

	if s.uniformLayout == nil {
		layout, err := s.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label: "spline_viewport_layout",
			Entries: []gputypes.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: gputypes.ShaderStageVertex,
					Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
				},
			},
		})
		if err != nil {
			return fmt.Errorf("gpu: create viewport layout: %w", err)
		}
		s.uniformLayout = layout
	}

	if s.pipeLayout == nil {
		pl, err := s.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
			Label:            "spline_pipe_layout",
			BindGroupLayouts: []hal.BindGroupLayout{s.uniformLayout},
		})
		if err != nil {
			return fmt.Errorf("gpu: create pipeline layout: %w", err)
		}
		s.pipeLayout = pl
	}

	if s.uniformBuf == nil {
		ub, err := s.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "spline_viewport",
			Size:  viewportSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("gpu: create viewport buffer: %w", err)
		}
		s.uniformBuf = ub
		s.queue.WriteBuffer(ub, 0, viewportBytes(s.width, s.height))
	}

	bg, err := s.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "spline_viewport_bind",
		Layout: s.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: s.uniformBuf.NativeHandle(), Offset: 0, Size: viewportSize}},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create viewport bind group: %w", err)
	}
	s.bindGroup = bg
	return nil
}

// createPipeline builds the render pipeline for records of layout t.
func (s *Sink) createPipeline(t vertex.Type) (hal.RenderPipeline, error) {
	dec, err := vertex.Lookup(t)
	if err != nil {
		return nil, fmt.Errorf("gpu: %w", err)
	}
	shader := s.shaders[variantFor(t)]

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := s.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "spline_pipeline_" + t.String(),
		Layout: s.pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    []gputypes.VertexBufferLayout{dec.Layout()},
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    s.format,
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
			Count: s.opts.sampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create pipeline for %v: %w", t, err)
	}
	spline.Logger().Debug("gpu: created pipeline", "layout", t)
	return pipeline, nil
}
