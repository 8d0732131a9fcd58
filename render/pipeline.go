package render

import (
	"unsafe"

	"github.com/gekko3d/sprites/render/shaders"
)

type VertexFormat int

const (
	FormatFloat32x2 VertexFormat = iota
)

type StepMode int

const (
	StepPerVertex StepMode = iota
	StepPerInstance
)

// VertexAttribute is addressed by Name on backends that link by name and by
// Location on backends that link by slot.
type VertexAttribute struct {
	Name     string
	Location uint32
	Format   VertexFormat
	Offset   uint64
}

type VertexBufferLayout struct {
	Stride     uint64
	Step       StepMode
	Attributes []VertexAttribute
}

type BlendMode int

const (
	BlendReplace BlendMode = iota
	// BlendAlpha is src*alpha + dst*(1-alpha).
	BlendAlpha
)

type CompareFunc int

const (
	CompareLess CompareFunc = iota
	CompareLessEqual
	CompareAlways
)

type DepthState struct {
	Compare CompareFunc
	Write   bool
}

type ShaderSource struct {
	WGSL          string
	VertexEntry   string
	FragmentEntry string
	GLSLVertex    string
	GLSLFragment  string
}

// BindingNames are the shader-side names of the non-vertex resources.
type BindingNames struct {
	UniformBlock string
	WindowSize   string
	Texture      string
	Sampler      string
}

type PipelineDesc struct {
	Label    string
	Shader   ShaderSource
	Buffers  []VertexBufferLayout
	Bindings BindingNames
	Blend    BlendMode
	Depth    DepthState
}

// DefaultPipelineDesc is the sprite pipeline: corners per vertex in slot 0,
// instances in slot 1, alpha-over blending, less-equal depth with writes.
func DefaultPipelineDesc() PipelineDesc {
	var inst Instance
	return PipelineDesc{
		Label: "Sprite Pipeline",
		Shader: ShaderSource{
			WGSL:          shaders.SpriteWGSL,
			VertexEntry:   shaders.VertexEntry,
			FragmentEntry: shaders.FragmentEntry,
			GLSLVertex:    shaders.SpriteVertGLSL,
			GLSLFragment:  shaders.SpriteFragGLSL,
		},
		Buffers: []VertexBufferLayout{
			{
				Stride: uint64(unsafe.Sizeof(Corner{})),
				Step:   StepPerVertex,
				Attributes: []VertexAttribute{
					{Name: shaders.AttrCorner, Location: shaders.LocationCorner, Format: FormatFloat32x2, Offset: 0},
				},
			},
			{
				Stride: instanceStride,
				Step:   StepPerInstance,
				Attributes: []VertexAttribute{
					{Name: shaders.AttrPosition, Location: shaders.LocationPosition, Format: FormatFloat32x2, Offset: uint64(unsafe.Offsetof(inst.PositionInPixels))},
					{Name: shaders.AttrSize, Location: shaders.LocationSize, Format: FormatFloat32x2, Offset: uint64(unsafe.Offsetof(inst.SizeInPixels))},
				},
			},
		},
		Bindings: BindingNames{
			UniformBlock: shaders.UniformBlock,
			WindowSize:   shaders.UniformWindowSize,
			Texture:      shaders.TextureName,
			Sampler:      shaders.SamplerName,
		},
		Blend: BlendAlpha,
		Depth: DepthState{Compare: CompareLessEqual, Write: true},
	}
}
