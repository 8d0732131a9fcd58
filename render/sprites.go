package render

import "github.com/go-gl/mathgl/mgl32"

// SpriteSetup describes the fixed sprite set built at startup.
type SpriteSetup struct {
	Capacity int
	Pixels   []byte
	Width    uint32
	Height   uint32
	Pipeline PipelineDesc
}

// NewSpriteBundle creates every resource of the sprite pipeline and records the
// window size into the uniform buffer. Instance slots are left for the caller
// to fill with InstanceStore.Write.
func NewSpriteBundle(dev Device, setup SpriteSetup) (*Bundle, error) {
	quad, err := NewGeometry(dev)
	if err != nil {
		return nil, err
	}
	uniforms, err := NewUniforms(dev)
	if err != nil {
		return nil, err
	}
	texture, err := NewTextureBinding(dev, setup.Pixels, setup.Width, setup.Height)
	if err != nil {
		return nil, err
	}
	instances, err := AllocateInstances(dev, setup.Capacity)
	if err != nil {
		return nil, err
	}
	color, depth := dev.Targets()
	bundle, err := NewBundle(dev, setup.Pipeline, BundleData{
		Quad:      quad,
		Instances: instances,
		Uniforms:  uniforms,
		Texture:   texture,
		Color:     color,
		Depth:     depth,
	})
	if err != nil {
		return nil, err
	}

	enc, err := dev.CreateEncoder()
	if err != nil {
		return nil, newError(ErrResourceCreation, "create encoder", err)
	}
	if err := uniforms.Update(enc, TargetSize(color)); err != nil {
		return nil, err
	}
	if err := enc.Submit(); err != nil {
		return nil, wrapKind(ErrSubmission, "submit setup", err)
	}
	return bundle, nil
}

// WindowSize is the size the bundle's uniforms were written with.
func (b *Bundle) WindowSize() mgl32.Vec2 {
	return b.data.Uniforms.WindowSize()
}
