package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gekko3d/sprites/render"
)

type texture struct {
	id     uint32
	width  uint32
	height uint32
}

func (t *texture) Width() uint32  { return t.width }
func (t *texture) Height() uint32 { return t.height }
func (t *texture) Release()       { gl.DeleteTextures(1, &t.id) }

type sampler struct {
	id uint32
}

func (s *sampler) Release() { gl.DeleteSamplers(1, &s.id) }

// spriteInternalFormat decodes texels to linear on sampling; the default
// framebuffer encodes them again with GL_FRAMEBUFFER_SRGB enabled.
const spriteInternalFormat = gl.SRGB8_ALPHA8

func (d *Device) CreateTexture(desc render.TextureDesc, pixels []byte) (render.Texture, error) {
	t := &texture{width: desc.Width, height: desc.Height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, spriteInternalFormat, int32(desc.Width), int32(desc.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if err := glError("create texture " + desc.Label); err != nil {
		t.Release()
		return nil, err
	}
	return t, nil
}

func (d *Device) CreateSampler(cfg render.SamplerConfig) (render.Sampler, error) {
	s := &sampler{}
	gl.GenSamplers(1, &s.id)
	wrap := glWrapMode(cfg.Wrap)
	filter := glFilterMode(cfg.Filter)
	gl.SamplerParameteri(s.id, gl.TEXTURE_WRAP_S, wrap)
	gl.SamplerParameteri(s.id, gl.TEXTURE_WRAP_T, wrap)
	gl.SamplerParameteri(s.id, gl.TEXTURE_MIN_FILTER, filter)
	gl.SamplerParameteri(s.id, gl.TEXTURE_MAG_FILTER, filter)
	if err := glError("create sampler"); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

func glWrapMode(mode render.WrapMode) int32 {
	switch mode {
	case render.WrapMirror:
		return gl.MIRRORED_REPEAT
	case render.WrapClamp:
		return gl.CLAMP_TO_EDGE
	default:
		return gl.REPEAT
	}
}

func glFilterMode(mode render.FilterMode) int32 {
	if mode == render.FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}
