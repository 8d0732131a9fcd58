package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"

	"github.com/gekko3d/sprites/render"
	"github.com/gekko3d/sprites/render/shaders"
)

type pipeline struct {
	p *wgpu.RenderPipeline
}

func (p *pipeline) Release() { p.p.Release() }

type bindings struct {
	group       *wgpu.BindGroup
	corners     *buffer
	indices     *buffer
	instances   *buffer
	indexFormat wgpu.IndexFormat
}

func (b *bindings) Release() { b.group.Release() }

// ValidateWGSL runs the source through the naga front end so shader errors
// surface with a readable message instead of a device validation callback.
func ValidateWGSL(source string) error {
	if _, err := naga.Compile(source); err != nil {
		return fmt.Errorf("invalid WGSL: %w", err)
	}
	return nil
}

func (d *Device) CreatePipeline(desc render.PipelineDesc) (render.Pipeline, error) {
	if err := ValidateWGSL(desc.Shader.WGSL); err != nil {
		return nil, err
	}
	shader, err := d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          desc.Label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: desc.Shader.WGSL},
	})
	if err != nil {
		return nil, err
	}
	defer shader.Release()

	p, err := d.device.CreateRenderPipeline(pipelineDescriptor(desc, shader, d.surfaceConfig.Format))
	if err != nil {
		return nil, err
	}
	return &pipeline{p: p}, nil
}

func pipelineDescriptor(desc render.PipelineDesc, shader *wgpu.ShaderModule, format wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor {
	return &wgpu.RenderPipelineDescriptor{
		Label: desc.Label,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: desc.Shader.VertexEntry,
			Buffers:    vertexBufferLayouts(desc.Buffers),
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: desc.Shader.FragmentEntry,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					Blend:     blendState(desc.Blend),
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: depthStencilState(desc.Depth),
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}
}

func vertexBufferLayouts(layouts []render.VertexBufferLayout) []wgpu.VertexBufferLayout {
	out := make([]wgpu.VertexBufferLayout, 0, len(layouts))
	for _, l := range layouts {
		attributes := make([]wgpu.VertexAttribute, 0, len(l.Attributes))
		for _, a := range l.Attributes {
			attributes = append(attributes, wgpu.VertexAttribute{
				ShaderLocation: a.Location,
				Offset:         a.Offset,
				Format:         vertexFormat(a.Format),
			})
		}
		step := wgpu.VertexStepModeVertex
		if l.Step == render.StepPerInstance {
			step = wgpu.VertexStepModeInstance
		}
		out = append(out, wgpu.VertexBufferLayout{
			ArrayStride: l.Stride,
			StepMode:    step,
			Attributes:  attributes,
		})
	}
	return out
}

func vertexFormat(f render.VertexFormat) wgpu.VertexFormat {
	switch f {
	case render.FormatFloat32x2:
		return wgpu.VertexFormatFloat32x2
	default:
		panic(fmt.Sprintf("unsupported vertex format: %d", f))
	}
}

func blendState(mode render.BlendMode) *wgpu.BlendState {
	if mode != render.BlendAlpha {
		return nil
	}
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

func compareFunction(c render.CompareFunc) wgpu.CompareFunction {
	switch c {
	case render.CompareLess:
		return wgpu.CompareFunctionLess
	case render.CompareLessEqual:
		return wgpu.CompareFunctionLessEqual
	default:
		return wgpu.CompareFunctionAlways
	}
}

func depthStencilState(depth render.DepthState) *wgpu.DepthStencilState {
	return &wgpu.DepthStencilState{
		Format:            depthFormat,
		DepthWriteEnabled: depth.Write,
		DepthCompare:      compareFunction(depth.Compare),
		StencilFront: wgpu.StencilFaceState{
			Compare: wgpu.CompareFunctionAlways,
		},
		StencilBack: wgpu.StencilFaceState{
			Compare: wgpu.CompareFunctionAlways,
		},
		StencilReadMask:  0xFFFFFFFF,
		StencilWriteMask: 0xFFFFFFFF,
	}
}

// CreateBindings builds bind group 0 from the pipeline's derived layout.
func (d *Device) CreateBindings(p render.Pipeline, set render.ResourceSet) (render.Bindings, error) {
	pl, ok := p.(*pipeline)
	if !ok {
		return nil, fmt.Errorf("pipeline %T not created by this device", p)
	}
	layout := pl.p.GetBindGroupLayout(0)
	defer layout.Release()

	uniforms := set.Uniforms.(*buffer)
	group, err := d.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Sprite Bindings",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: shaders.BindingGlobals, Buffer: uniforms.buf, Size: wgpu.WholeSize},
			{Binding: shaders.BindingTexture, TextureView: set.Texture.(*texture).view, Size: wgpu.WholeSize},
			{Binding: shaders.BindingSampler, Sampler: set.Sampler.(*sampler).s, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return nil, err
	}
	return &bindings{
		group:       group,
		corners:     set.Corners.(*buffer),
		indices:     set.Indices.(*buffer),
		instances:   set.Instances.(*buffer),
		indexFormat: wgpu.IndexFormatUint16,
	}, nil
}
