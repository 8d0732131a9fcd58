// Package rendertest provides an in-memory render backend that records
// every command it executes.
package rendertest

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/sprites/render"
)

// Device keeps buffer contents in byte slices. Commands are applied on
// Submit and appended to Log in execution order.
type Device struct {
	Buffers  []*Buffer
	Log      []string
	Color    *Target
	Depth    *Target
	Samplers []render.SamplerConfig
	Cleanups int

	// Injected failures.
	MapErr      error
	SubmitErr   error
	PipelineErr error
	TextureErr  error
}

var (
	_ render.Device    = (*Device)(nil)
	_ render.Presenter = (*Presenter)(nil)
)

type Buffer struct {
	Desc     render.BufferDesc
	Data     []byte
	Mapped   bool
	Maps     int
	Released bool
}

func (b *Buffer) Size() uint64 { return b.Desc.Size }
func (b *Buffer) Release()     { b.Released = true }

type Texture struct {
	W, H   uint32
	Pixels []byte
}

func (t *Texture) Width() uint32  { return t.W }
func (t *Texture) Height() uint32 { return t.H }
func (t *Texture) Release()       {}

type Sampler struct{ Config render.SamplerConfig }

func (s *Sampler) Release() {}

// Target remembers the last clear applied to it.
type Target struct {
	W, H       uint32
	ClearColor render.Color
	ClearDepth float32
}

func (t *Target) Dimensions() (uint32, uint32) { return t.W, t.H }

type Pipeline struct {
	Desc     render.PipelineDesc
	Released bool
}

func (p *Pipeline) Release() { p.Released = true }

type Bindings struct{ Set render.ResourceSet }

func (b *Bindings) Release() {}

func NewDevice(width, height uint32) *Device {
	return &Device{
		Color: &Target{W: width, H: height},
		Depth: &Target{W: width, H: height},
	}
}

func (d *Device) CreateBuffer(desc render.BufferDesc) (render.Buffer, error) {
	b := &Buffer{Desc: desc, Data: make([]byte, desc.Size)}
	copy(b.Data, desc.Contents)
	d.Buffers = append(d.Buffers, b)
	return b, nil
}

func (d *Device) MapWrite(buf render.Buffer) ([]byte, error) {
	if d.MapErr != nil {
		return nil, d.MapErr
	}
	b := buf.(*Buffer)
	if b.Mapped {
		return nil, errors.New("already mapped")
	}
	b.Mapped = true
	b.Maps++
	d.Log = append(d.Log, "map "+b.Desc.Label)
	return b.Data, nil
}

func (d *Device) Unmap(buf render.Buffer) error {
	b := buf.(*Buffer)
	if !b.Mapped {
		return errors.New("not mapped")
	}
	b.Mapped = false
	d.Log = append(d.Log, "unmap "+b.Desc.Label)
	return nil
}

func (d *Device) CreateTexture(desc render.TextureDesc, pixels []byte) (render.Texture, error) {
	if d.TextureErr != nil {
		return nil, d.TextureErr
	}
	return &Texture{W: desc.Width, H: desc.Height, Pixels: append([]byte(nil), pixels...)}, nil
}

func (d *Device) CreateSampler(cfg render.SamplerConfig) (render.Sampler, error) {
	d.Samplers = append(d.Samplers, cfg)
	return &Sampler{Config: cfg}, nil
}

func (d *Device) CreatePipeline(desc render.PipelineDesc) (render.Pipeline, error) {
	if d.PipelineErr != nil {
		return nil, d.PipelineErr
	}
	return &Pipeline{Desc: desc}, nil
}

func (d *Device) CreateBindings(p render.Pipeline, set render.ResourceSet) (render.Bindings, error) {
	return &Bindings{Set: set}, nil
}

func (d *Device) CreateEncoder() (render.Encoder, error) {
	return &encoder{dev: d}, nil
}

func (d *Device) Targets() (render.Target, render.Target) { return d.Color, d.Depth }

func (d *Device) Cleanup() {
	d.Cleanups++
	d.Log = append(d.Log, "cleanup")
}

// Buffer returns the first buffer created with label, or nil.
func (d *Device) Buffer(label string) *Buffer {
	for _, b := range d.Buffers {
		if b.Desc.Label == label {
			return b
		}
	}
	return nil
}

// Count returns how many log entries equal entry.
func (d *Device) Count(entry string) int {
	n := 0
	for _, l := range d.Log {
		if l == entry {
			n++
		}
	}
	return n
}

// encoder defers every command until Submit, like a real command encoder.
type encoder struct {
	dev       *Device
	cmds      []func() error
	names     []string
	submitted bool
}

func (e *encoder) record(name string, cmd func() error) {
	e.names = append(e.names, name)
	e.cmds = append(e.cmds, cmd)
}

func (e *encoder) ClearColor(target render.Target, c render.Color) {
	e.record("clear color", func() error {
		target.(*Target).ClearColor = c
		return nil
	})
}

func (e *encoder) ClearDepth(target render.Target, depth float32) {
	e.record("clear depth", func() error {
		target.(*Target).ClearDepth = depth
		return nil
	})
}

func (e *encoder) CopyBuffer(src, dst render.Buffer, srcOffset, dstOffset, size uint64) error {
	s, d := src.(*Buffer), dst.(*Buffer)
	if srcOffset+size > s.Size() || dstOffset+size > d.Size() {
		return fmt.Errorf("copy of %d bytes out of range", size)
	}
	e.record("copy "+s.Desc.Label+" -> "+d.Desc.Label, func() error {
		if s.Mapped {
			return errors.New("copy from mapped buffer")
		}
		copy(d.Data[dstOffset:dstOffset+size], s.Data[srcOffset:srcOffset+size])
		return nil
	})
	return nil
}

func (e *encoder) WriteBuffer(dst render.Buffer, offset uint64, data []byte) error {
	d := dst.(*Buffer)
	if offset+uint64(len(data)) > d.Size() {
		return fmt.Errorf("write of %d bytes out of range", len(data))
	}
	payload := append([]byte(nil), data...)
	e.record("write "+d.Desc.Label, func() error {
		copy(d.Data[offset:], payload)
		return nil
	})
	return nil
}

func (e *encoder) Draw(call render.DrawCall) error {
	e.record(DrawEntry(call.IndexCount, call.InstanceCount), func() error { return nil })
	return nil
}

func (e *encoder) Submit() error {
	if e.submitted {
		return errors.New("encoder already submitted")
	}
	e.submitted = true
	if e.dev.SubmitErr != nil {
		return e.dev.SubmitErr
	}
	for i, cmd := range e.cmds {
		if err := cmd(); err != nil {
			return err
		}
		e.dev.Log = append(e.dev.Log, e.names[i])
	}
	e.dev.Log = append(e.dev.Log, "submit")
	return nil
}

// DrawEntry is the log entry of an indexed, instanced draw.
func DrawEntry(indices, instances uint32) string {
	return fmt.Sprintf("draw %d x %d", indices, instances)
}

type Presenter struct {
	Dev      *Device
	Presents int
	Err      error
}

func (p *Presenter) Present() error {
	if p.Err != nil {
		return p.Err
	}
	p.Presents++
	p.Dev.Log = append(p.Dev.Log, "present")
	return nil
}

// Events hands out one scripted batch of events per poll.
type Events struct {
	Batches [][]render.Event
	Polls   int
}

func (e *Events) PollEvents() []render.Event {
	e.Polls++
	if len(e.Batches) == 0 {
		return nil
	}
	batch := e.Batches[0]
	e.Batches = e.Batches[1:]
	return batch
}

// Instances decodes a buffer as tightly packed instances.
func Instances(b *Buffer) []render.Instance {
	stride := int(unsafe.Sizeof(render.Instance{}))
	out := make([]render.Instance, len(b.Data)/stride)
	for i := range out {
		out[i].PositionInPixels = Vec2(b.Data[i*stride:])
		out[i].SizeInPixels = Vec2(b.Data[i*stride+8:])
	}
	return out
}

// Vec2 reads two float32 values from the start of data.
func Vec2(data []byte) mgl32.Vec2 {
	var v mgl32.Vec2
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v)), data)
	return v
}

// RGBA returns a blank w x h RGBA8 image.
func RGBA(w, h int) []byte {
	return make([]byte, w*h*4)
}
