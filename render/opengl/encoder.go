package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gekko3d/sprites/render"
)

// encoder keeps a command list and replays it on Submit so GL sees the
// same ordering a WebGPU queue would.
type encoder struct {
	cmds []command
	done bool
}

type command struct {
	name string
	run  func()
}

func (d *Device) CreateEncoder() (render.Encoder, error) {
	return &encoder{}, nil
}

func (e *encoder) record(name string, run func()) {
	e.cmds = append(e.cmds, command{name: name, run: run})
}

func (e *encoder) ClearColor(target render.Target, c render.Color) {
	e.record("clear color", func() {
		gl.ClearColor(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
		gl.Clear(gl.COLOR_BUFFER_BIT)
	})
}

func (e *encoder) ClearDepth(target render.Target, depth float32) {
	e.record("clear depth", func() {
		gl.DepthMask(true)
		gl.ClearDepth(float64(depth))
		gl.Clear(gl.DEPTH_BUFFER_BIT)
	})
}

func (e *encoder) CopyBuffer(src, dst render.Buffer, srcOffset, dstOffset, size uint64) error {
	s, d := src.(*buffer), dst.(*buffer)
	if srcOffset+size > s.size || dstOffset+size > d.size {
		return fmt.Errorf("copy of %d bytes out of range", size)
	}
	e.record("copy buffer", func() {
		gl.BindBuffer(gl.COPY_READ_BUFFER, s.id)
		gl.BindBuffer(gl.COPY_WRITE_BUFFER, d.id)
		gl.CopyBufferSubData(gl.COPY_READ_BUFFER, gl.COPY_WRITE_BUFFER, int(srcOffset), int(dstOffset), int(size))
		gl.BindBuffer(gl.COPY_READ_BUFFER, 0)
		gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
	})
	return nil
}

func (e *encoder) WriteBuffer(dst render.Buffer, offset uint64, data []byte) error {
	d := dst.(*buffer)
	if offset+uint64(len(data)) > d.size {
		return fmt.Errorf("write of %d bytes out of range", len(data))
	}
	payload := append([]byte(nil), data...)
	e.record("write buffer", func() {
		gl.BindBuffer(gl.COPY_WRITE_BUFFER, d.id)
		gl.BufferSubData(gl.COPY_WRITE_BUFFER, int(offset), len(payload), gl.Ptr(payload))
		gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
	})
	return nil
}

func (e *encoder) Draw(call render.DrawCall) error {
	p, ok := call.Pipeline.(*pipeline)
	if !ok {
		return fmt.Errorf("pipeline %T not created by this device", call.Pipeline)
	}
	b, ok := call.Bindings.(*bindings)
	if !ok {
		return fmt.Errorf("bindings %T not created by this device", call.Bindings)
	}
	e.record("draw", func() {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(glCompareFunc(p.desc.Depth.Compare))
		gl.DepthMask(p.desc.Depth.Write)
		if p.desc.Blend == render.BlendAlpha {
			gl.Enable(gl.BLEND)
			gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
		} else {
			gl.Disable(gl.BLEND)
		}

		gl.UseProgram(p.program)
		gl.BindBufferBase(gl.UNIFORM_BUFFER, 0, b.uniforms.id)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, b.texture.id)
		gl.BindSampler(0, b.sampler.id)
		gl.BindVertexArray(b.vao)
		gl.DrawElementsInstanced(gl.TRIANGLES, int32(call.IndexCount), gl.UNSIGNED_SHORT, nil, int32(call.InstanceCount))
		gl.BindVertexArray(0)
	})
	return nil
}

func (e *encoder) Submit() error {
	if e.done {
		return fmt.Errorf("encoder already submitted")
	}
	e.done = true
	for _, cmd := range e.cmds {
		cmd.run()
		if err := glError(cmd.name); err != nil {
			return err
		}
	}
	return nil
}
