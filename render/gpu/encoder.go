package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/sprites/render"
)

// encoder wraps a command encoder. Clears are folded into the load ops of
// the next render pass; a frame with clears but no draw gets an empty pass.
type encoder struct {
	dev *Device
	enc *wgpu.CommandEncoder

	clearColor *render.Color
	clearDepth *float32
	drawn      bool
	done       bool
}

func (d *Device) CreateEncoder() (render.Encoder, error) {
	enc, err := d.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, err
	}
	return &encoder{dev: d, enc: enc}, nil
}

func (e *encoder) ClearColor(target render.Target, c render.Color) {
	e.clearColor = &c
}

func (e *encoder) ClearDepth(target render.Target, depth float32) {
	e.clearDepth = &depth
}

func (e *encoder) CopyBuffer(src, dst render.Buffer, srcOffset, dstOffset, size uint64) error {
	return e.enc.CopyBufferToBuffer(src.(*buffer).buf, srcOffset, dst.(*buffer).buf, dstOffset, size)
}

// WriteBuffer goes through the queue, which orders it before this encoder's submission.
func (e *encoder) WriteBuffer(dst render.Buffer, offset uint64, data []byte) error {
	return e.dev.queue.WriteBuffer(dst.(*buffer).buf, offset, data)
}

func (e *encoder) Draw(call render.DrawCall) error {
	b, ok := call.Bindings.(*bindings)
	if !ok {
		return fmt.Errorf("bindings %T not created by this device", call.Bindings)
	}
	pass, err := e.beginPass()
	if err != nil {
		return err
	}
	defer pass.Release()

	pass.SetPipeline(call.Pipeline.(*pipeline).p)
	pass.SetBindGroup(0, b.group, nil)
	pass.SetVertexBuffer(0, b.corners.buf, 0, b.corners.size)
	pass.SetVertexBuffer(1, b.instances.buf, 0, b.instances.size)
	pass.SetIndexBuffer(b.indices.buf, b.indexFormat, 0, b.indices.size)
	pass.DrawIndexed(call.IndexCount, call.InstanceCount, 0, 0, 0)
	e.drawn = true
	return pass.End()
}

func (e *encoder) beginPass() (*wgpu.RenderPassEncoder, error) {
	view, err := e.dev.color.acquire()
	if err != nil {
		return nil, render.NewError(render.ErrResourceCreation, "acquire surface texture", err)
	}
	color := wgpu.RenderPassColorAttachment{
		View:    view,
		LoadOp:  wgpu.LoadOpLoad,
		StoreOp: wgpu.StoreOpStore,
	}
	if e.clearColor != nil {
		color.LoadOp = wgpu.LoadOpClear
		color.ClearValue = wgpu.Color{R: e.clearColor.R, G: e.clearColor.G, B: e.clearColor.B, A: e.clearColor.A}
	}
	depth := &wgpu.RenderPassDepthStencilAttachment{
		View:         e.dev.depth.view,
		DepthLoadOp:  wgpu.LoadOpLoad,
		DepthStoreOp: wgpu.StoreOpStore,
	}
	if e.clearDepth != nil {
		depth.DepthLoadOp = wgpu.LoadOpClear
		depth.DepthClearValue = *e.clearDepth
	}
	e.clearColor, e.clearDepth = nil, nil

	return e.enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label:                  "Sprite Pass",
		ColorAttachments:       []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: depth,
	}), nil
}

func (e *encoder) Submit() error {
	if e.done {
		return fmt.Errorf("encoder already submitted")
	}
	e.done = true
	defer e.enc.Release()

	if e.clearColor != nil || e.clearDepth != nil {
		pass, err := e.beginPass()
		if err != nil {
			return err
		}
		err = pass.End()
		pass.Release()
		if err != nil {
			return err
		}
	}

	cmd, err := e.enc.Finish(nil)
	if err != nil {
		return err
	}
	defer cmd.Release()
	e.dev.queue.Submit(cmd)
	return nil
}
