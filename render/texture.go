package render

import "fmt"

type WrapMode int

const (
	WrapTile WrapMode = iota
	WrapMirror
	WrapClamp
)

type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

type SamplerConfig struct {
	Wrap   WrapMode
	Filter FilterMode
}

// DefaultSampler tiles outside [0,1] and scales without interpolation.
var DefaultSampler = SamplerConfig{Wrap: WrapTile, Filter: FilterNearest}

// TextureBinding pairs the sprite image with its sampler. Both are immutable.
type TextureBinding struct {
	texture Texture
	sampler Sampler
	config  SamplerConfig
}

func NewTextureBinding(dev Device, pixels []byte, width, height uint32) (*TextureBinding, error) {
	if width == 0 || height == 0 {
		return nil, newError(ErrResourceCreation, "create texture", fmt.Errorf("empty image %dx%d", width, height))
	}
	if want := int(width) * int(height) * 4; len(pixels) != want {
		return nil, newError(ErrResourceCreation, "create texture",
			fmt.Errorf("%dx%d RGBA8 image needs %d bytes, got %d", width, height, want, len(pixels)))
	}
	tex, err := dev.CreateTexture(TextureDesc{Label: "Sprite Texture", Width: width, Height: height}, pixels)
	if err != nil {
		return nil, newError(ErrResourceCreation, "create texture", err)
	}
	sampler, err := dev.CreateSampler(DefaultSampler)
	if err != nil {
		tex.Release()
		return nil, newError(ErrResourceCreation, "create sampler", err)
	}
	return &TextureBinding{texture: tex, sampler: sampler, config: DefaultSampler}, nil
}

func (t *TextureBinding) Texture() Texture      { return t.texture }
func (t *TextureBinding) Sampler() Sampler      { return t.sampler }
func (t *TextureBinding) Config() SamplerConfig { return t.config }
