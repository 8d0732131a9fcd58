package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gekko3d/sprites/render"
)

type pipeline struct {
	program  uint32
	desc     render.PipelineDesc
	uniforms uint32
	texture  int32
}

func (p *pipeline) Release() { gl.DeleteProgram(p.program) }

type bindings struct {
	vao      uint32
	uniforms *buffer
	texture  *texture
	sampler  *sampler
}

func (b *bindings) Release() { gl.DeleteVertexArrays(1, &b.vao) }

func (d *Device) CreatePipeline(desc render.PipelineDesc) (render.Pipeline, error) {
	prog, err := newProgram(desc.Shader.GLSLVertex, desc.Shader.GLSLFragment)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", desc.Label, err)
	}
	p := &pipeline{program: prog, desc: desc}

	lookupAttrib := func(name string) int32 { return gl.GetAttribLocation(prog, gl.Str(name+"\x00")) }
	if err := checkAttributes(desc.Buffers, lookupAttrib); err != nil {
		p.Release()
		return nil, err
	}
	p.uniforms = gl.GetUniformBlockIndex(prog, gl.Str(desc.Bindings.UniformBlock+"\x00"))
	if p.uniforms == gl.INVALID_INDEX {
		p.Release()
		return nil, fmt.Errorf("uniform block %q not found", desc.Bindings.UniformBlock)
	}
	p.texture = gl.GetUniformLocation(prog, gl.Str(desc.Bindings.Texture+"\x00"))
	if p.texture < 0 {
		p.Release()
		return nil, fmt.Errorf("texture uniform %q not found", desc.Bindings.Texture)
	}
	gl.UniformBlockBinding(prog, p.uniforms, 0)
	gl.UseProgram(prog)
	gl.Uniform1i(p.texture, 0)
	gl.UseProgram(0)
	return p, glError("create pipeline")
}

// checkAttributes makes sure every vertex attribute the layouts feed is an
// active input of the program at the location the layout expects.
func checkAttributes(layouts []render.VertexBufferLayout, lookup func(string) int32) error {
	for _, l := range layouts {
		for _, a := range l.Attributes {
			loc := lookup(a.Name)
			if loc < 0 {
				return fmt.Errorf("vertex attribute %q not found", a.Name)
			}
			if uint32(loc) != a.Location {
				return fmt.Errorf("vertex attribute %q at location %d, expected %d", a.Name, loc, a.Location)
			}
		}
	}
	return nil
}

// CreateBindings records buffer bindings and attribute formats in a vertex array object.
func (d *Device) CreateBindings(p render.Pipeline, set render.ResourceSet) (render.Bindings, error) {
	pl, ok := p.(*pipeline)
	if !ok {
		return nil, fmt.Errorf("pipeline %T not created by this device", p)
	}
	if len(pl.desc.Buffers) != 2 {
		return nil, fmt.Errorf("expected 2 vertex buffers, got %d", len(pl.desc.Buffers))
	}
	b := &bindings{
		uniforms: set.Uniforms.(*buffer),
		texture:  set.Texture.(*texture),
		sampler:  set.Sampler.(*sampler),
	}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	sources := []*buffer{set.Corners.(*buffer), set.Instances.(*buffer)}
	for i, layout := range pl.desc.Buffers {
		gl.BindBuffer(gl.ARRAY_BUFFER, sources[i].id)
		divisor := uint32(0)
		if layout.Step == render.StepPerInstance {
			divisor = 1
		}
		for _, a := range layout.Attributes {
			gl.EnableVertexAttribArray(a.Location)
			gl.VertexAttribPointerWithOffset(a.Location, componentCount(a.Format), gl.FLOAT, false, int32(layout.Stride), uintptr(a.Offset))
			gl.VertexAttribDivisor(a.Location, divisor)
		}
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, set.Indices.(*buffer).id)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	if err := glError("create bindings"); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

func componentCount(f render.VertexFormat) int32 {
	switch f {
	case render.FormatFloat32x2:
		return 2
	default:
		panic(fmt.Sprintf("unsupported vertex format: %d", f))
	}
}

func glCompareFunc(c render.CompareFunc) uint32 {
	switch c {
	case render.CompareLess:
		return gl.LESS
	case render.CompareLessEqual:
		return gl.LEQUAL
	default:
		return gl.ALWAYS
	}
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", log)
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
