package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/sprites/render"
)

type texture struct {
	tex    *wgpu.Texture
	view   *wgpu.TextureView
	width  uint32
	height uint32
}

func (t *texture) Width() uint32  { return t.width }
func (t *texture) Height() uint32 { return t.height }
func (t *texture) Release() {
	t.view.Release()
	t.tex.Release()
}

type sampler struct {
	s *wgpu.Sampler
}

func (s *sampler) Release() { s.s.Release() }

// CreateTexture uploads tightly packed RGBA8 pixels into a sampled 2D texture.
func (d *Device) CreateTexture(desc render.TextureDesc, pixels []byte) (render.Texture, error) {
	texDesc := textureDescriptor(desc, spriteFormat(d.surfaceConfig.Format))
	tex, err := d.device.CreateTexture(texDesc)
	if err != nil {
		return nil, err
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}
	err = d.queue.WriteTexture(
		tex.AsImageCopy(),
		pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  desc.Width * 4,
			RowsPerImage: desc.Height,
		},
		&texDesc.Size,
	)
	if err != nil {
		view.Release()
		tex.Release()
		return nil, err
	}
	return &texture{tex: tex, view: view, width: desc.Width, height: desc.Height}, nil
}

func textureDescriptor(desc render.TextureDesc, format wgpu.TextureFormat) *wgpu.TextureDescriptor {
	return &wgpu.TextureDescriptor{
		Label: desc.Label,
		Size: wgpu.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	}
}

func (d *Device) CreateSampler(cfg render.SamplerConfig) (render.Sampler, error) {
	s, err := d.device.CreateSampler(samplerDescriptor(cfg))
	if err != nil {
		return nil, err
	}
	return &sampler{s: s}, nil
}

func samplerDescriptor(cfg render.SamplerConfig) *wgpu.SamplerDescriptor {
	wrap := wgpuWrapMode(cfg.Wrap)
	filter := wgpuFilterMode(cfg.Filter)
	mipmap := wgpu.MipmapFilterModeNearest
	if cfg.Filter == render.FilterLinear {
		mipmap = wgpu.MipmapFilterModeLinear
	}
	return &wgpu.SamplerDescriptor{
		Label:         "Sprite Sampler",
		AddressModeU:  wrap,
		AddressModeV:  wrap,
		AddressModeW:  wrap,
		MagFilter:     filter,
		MinFilter:     filter,
		MipmapFilter:  mipmap,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		Compare:       wgpu.CompareFunctionUndefined,
		MaxAnisotropy: 1,
	}
}

func wgpuWrapMode(mode render.WrapMode) wgpu.AddressMode {
	switch mode {
	case render.WrapTile:
		return wgpu.AddressModeRepeat
	case render.WrapMirror:
		return wgpu.AddressModeMirrorRepeat
	case render.WrapClamp:
		return wgpu.AddressModeClampToEdge
	default:
		panic(fmt.Sprintf("Unknown wrap mode: %d", mode))
	}
}

func wgpuFilterMode(mode render.FilterMode) wgpu.FilterMode {
	switch mode {
	case render.FilterNearest:
		return wgpu.FilterModeNearest
	case render.FilterLinear:
		return wgpu.FilterModeLinear
	default:
		panic(fmt.Sprintf("Unknown filter mode: %d", mode))
	}
}
