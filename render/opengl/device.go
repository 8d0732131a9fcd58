// Package opengl implements the render backend on OpenGL 4.1 core.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/sprites/render"
)

// Device issues GL calls on the thread that owns the window's context.
type Device struct {
	window *glfw.Window
	color  *framebufferTarget
	depth  *framebufferTarget
	info   string
}

var (
	_ render.Device    = (*Device)(nil)
	_ render.Presenter = (*Device)(nil)
)

type framebufferTarget struct {
	width  uint32
	height uint32
}

func (t *framebufferTarget) Dimensions() (uint32, uint32) { return t.width, t.height }

// New loads GL entry points for win's context. The context must be current.
func New(win *glfw.Window, vsync bool) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, render.NewError(render.ErrResourceCreation, "initialize OpenGL", err)
	}
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	width, height := win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Enable(gl.FRAMEBUFFER_SRGB)

	target := framebufferTarget{width: uint32(width), height: uint32(height)}
	depth := target
	return &Device{
		window: win,
		color:  &target,
		depth:  &depth,
		info:   gl.GoStr(gl.GetString(gl.VERSION)),
	}, nil
}

// Version is the driver's GL_VERSION string.
func (d *Device) Version() string { return d.info }

func (d *Device) Targets() (render.Target, render.Target) {
	return d.color, d.depth
}

func (d *Device) Present() error {
	d.window.SwapBuffers()
	return glError("swap buffers")
}

// Cleanup has nothing to reclaim; the driver owns transient GL state.
func (d *Device) Cleanup() {}

type buffer struct {
	id   uint32
	size uint64
}

func (b *buffer) Size() uint64 { return b.size }
func (b *buffer) Release()     { gl.DeleteBuffers(1, &b.id) }

func (d *Device) CreateBuffer(desc render.BufferDesc) (render.Buffer, error) {
	if desc.Size == 0 {
		return nil, fmt.Errorf("buffer %q has no size", desc.Label)
	}
	b := &buffer{size: desc.Size}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, b.id)
	var data unsafe.Pointer
	if len(desc.Contents) > 0 {
		data = gl.Ptr(desc.Contents)
	}
	gl.BufferData(gl.COPY_WRITE_BUFFER, int(desc.Size), data, usageHint(desc.Usage))
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
	if err := glError("create buffer " + desc.Label); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

// MapWrite maps without GL_MAP_UNSYNCHRONIZED_BIT so the driver waits for
// pending copies out of the buffer.
func (d *Device) MapWrite(b render.Buffer) ([]byte, error) {
	buf := b.(*buffer)
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, buf.id)
	ptr := gl.MapBufferRange(gl.COPY_WRITE_BUFFER, 0, int(buf.size), gl.MAP_WRITE_BIT)
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
	if ptr == nil {
		return nil, glError("map buffer")
	}
	return unsafe.Slice((*byte)(ptr), buf.size), nil
}

func (d *Device) Unmap(b render.Buffer) error {
	buf := b.(*buffer)
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, buf.id)
	ok := gl.UnmapBuffer(gl.COPY_WRITE_BUFFER)
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
	if !ok {
		return fmt.Errorf("buffer contents lost while mapped")
	}
	return glError("unmap buffer")
}

func usageHint(usage render.MemoryUsage) uint32 {
	switch usage {
	case render.UsageImmutable:
		return gl.STATIC_DRAW
	case render.UsageUpload:
		return gl.STREAM_DRAW
	default:
		return gl.DYNAMIC_DRAW
	}
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: GL error 0x%04X", op, code)
	}
	return nil
}
