// Package gpu implements the render backend on WebGPU.
package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/sprites/render"
)

const depthFormat = wgpu.TextureFormatDepth24Plus

// Device owns the surface, adapter, device and queue of one window.
type Device struct {
	surface       *wgpu.Surface
	adapter       *wgpu.Adapter
	device        *wgpu.Device
	queue         *wgpu.Queue
	surfaceConfig *wgpu.SurfaceConfiguration

	color *surfaceTarget
	depth *depthTarget
}

var (
	_ render.Device    = (*Device)(nil)
	_ render.Presenter = (*Device)(nil)
)

// New creates the GPU state for win. vsync selects FIFO presentation.
func New(win *glfw.Window, vsync bool) (*Device, error) {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(win))
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, render.NewError(render.ErrResourceCreation, "request adapter", err)
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Sprite Device",
	})
	if err != nil {
		return nil, render.NewError(render.ErrResourceCreation, "request device", err)
	}

	caps := surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return nil, render.NewError(render.ErrResourceCreation, "configure surface", fmt.Errorf("surface has no formats"))
	}
	width, height := win.GetFramebufferSize()
	surfaceConfig := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      surfaceFormat(caps.Formats),
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: presentMode(vsync, caps.PresentModes),
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, &surfaceConfig)

	d := &Device{
		surface:       surface,
		adapter:       adapter,
		device:        device,
		queue:         device.GetQueue(),
		surfaceConfig: &surfaceConfig,
	}
	d.color = &surfaceTarget{surface: surface, width: surfaceConfig.Width, height: surfaceConfig.Height}
	if d.depth, err = d.createDepthTarget(surfaceConfig.Width, surfaceConfig.Height); err != nil {
		return nil, render.NewError(render.ErrResourceCreation, "create depth texture", err)
	}
	return d, nil
}

// surfaceFormat prefers an sRGB format so sRGB texels are written back
// unchanged after blending in linear space.
func surfaceFormat(supported []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range supported {
		if f == wgpu.TextureFormatBGRA8UnormSrgb || f == wgpu.TextureFormatRGBA8UnormSrgb {
			return f
		}
	}
	return supported[0]
}

// spriteFormat pairs the texture encoding with the surface: sampling an sRGB
// texture decodes to linear, which only an sRGB surface encodes again.
func spriteFormat(surface wgpu.TextureFormat) wgpu.TextureFormat {
	switch surface {
	case wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatRGBA8UnormSrgb:
		return wgpu.TextureFormatRGBA8UnormSrgb
	}
	return wgpu.TextureFormatRGBA8Unorm
}

// presentMode falls back to Fifo, the only mode every surface supports.
func presentMode(vsync bool, supported []wgpu.PresentMode) wgpu.PresentMode {
	if !vsync {
		for _, m := range supported {
			if m == wgpu.PresentModeImmediate {
				return m
			}
		}
	}
	return wgpu.PresentModeFifo
}

func (d *Device) createDepthTarget(width, height uint32) (*depthTarget, error) {
	tex, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}
	return &depthTarget{texture: tex, view: view, width: width, height: height}, nil
}

func (d *Device) Targets() (render.Target, render.Target) {
	return d.color, d.depth
}

// Present shows the surface texture acquired for this frame.
func (d *Device) Present() error {
	if d.color.texture == nil {
		return fmt.Errorf("no surface texture acquired")
	}
	d.surface.Present()
	d.color.release()
	return nil
}

// Cleanup lets the device reclaim resources of finished submissions and
// fire pending map callbacks.
func (d *Device) Cleanup() {
	d.device.Poll(false, nil)
}

// Release destroys every object the device created.
func (d *Device) Release() {
	d.color.release()
	d.depth.release()
	d.queue.Release()
	d.device.Release()
	d.adapter.Release()
	d.surface.Release()
}

// surfaceTarget acquires the next swapchain texture the first time a frame
// renders into it.
type surfaceTarget struct {
	surface *wgpu.Surface
	texture *wgpu.Texture
	view    *wgpu.TextureView
	width   uint32
	height  uint32
}

func (t *surfaceTarget) Dimensions() (uint32, uint32) { return t.width, t.height }

func (t *surfaceTarget) acquire() (*wgpu.TextureView, error) {
	if t.view != nil {
		return t.view, nil
	}
	tex, err := t.surface.GetCurrentTexture()
	if err != nil {
		return nil, err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}
	t.texture, t.view = tex, view
	return view, nil
}

func (t *surfaceTarget) release() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}

type depthTarget struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	width   uint32
	height  uint32
}

func (t *depthTarget) Dimensions() (uint32, uint32) { return t.width, t.height }

func (t *depthTarget) release() {
	t.view.Release()
	t.texture.Release()
}
