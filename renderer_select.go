package sprites

import (
	"github.com/gekko3d/sprites/render"
	"github.com/gekko3d/sprites/render/gpu"
	"github.com/gekko3d/sprites/render/opengl"
)

// RendererName identifies a render backend.
type RendererName string

const (
	RendererWGPU RendererName = "wgpu"
	RendererGL   RendererName = "gl"
)

// backend is a device plus the presenter for the window it renders into.
type backend struct {
	device    render.Device
	presenter render.Presenter
	release   func()
}

type backendFactory func(ws *WindowState, vsync bool) (*backend, error)

var renderers = map[RendererName]backendFactory{
	RendererWGPU: newWGPUBackend,
	RendererGL:   newGLBackend,
}

func newWGPUBackend(ws *WindowState, vsync bool) (*backend, error) {
	dev, err := gpu.New(ws.Window(), vsync)
	if err != nil {
		return nil, err
	}
	return &backend{device: dev, presenter: dev, release: dev.Release}, nil
}

func newGLBackend(ws *WindowState, vsync bool) (*backend, error) {
	dev, err := opengl.New(ws.Window(), vsync)
	if err != nil {
		return nil, err
	}
	return &backend{device: dev, presenter: dev, release: func() {}}, nil
}
