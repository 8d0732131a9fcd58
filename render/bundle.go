package render

import "fmt"

// BundleData is everything the sprite pipeline reads or writes.
type BundleData struct {
	Quad      *Geometry
	Instances *InstanceStore
	Uniforms  *Uniforms
	Texture   *TextureBinding
	Color     Target
	Depth     Target
}

// Bundle owns the pipeline, its bound resources and the draw descriptor.
// Only the Bundle issues the draw that reads them.
type Bundle struct {
	pipeline Pipeline
	bindings Bindings
	data     BundleData
	draw     DrawCall
}

func NewBundle(dev Device, desc PipelineDesc, data BundleData) (*Bundle, error) {
	if data.Quad == nil || data.Instances == nil || data.Uniforms == nil || data.Texture == nil {
		return nil, newError(ErrResourceCreation, "create bundle", fmt.Errorf("incomplete bundle data"))
	}
	if data.Color == nil || data.Depth == nil {
		return nil, newError(ErrResourceCreation, "create bundle", fmt.Errorf("missing output targets"))
	}
	pipeline, err := dev.CreatePipeline(desc)
	if err != nil {
		return nil, newError(ErrResourceCreation, "create pipeline "+desc.Label, err)
	}
	bindings, err := dev.CreateBindings(pipeline, ResourceSet{
		Corners:   data.Quad.VertexBuffer(),
		Indices:   data.Quad.IndexBuffer(),
		Instances: data.Instances.Buffer(),
		Uniforms:  data.Uniforms.Buffer(),
		Texture:   data.Texture.Texture(),
		Sampler:   data.Texture.Sampler(),
	})
	if err != nil {
		pipeline.Release()
		return nil, newError(ErrResourceCreation, "bind resources", err)
	}
	return &Bundle{
		pipeline: pipeline,
		bindings: bindings,
		data:     data,
		draw: DrawCall{
			Pipeline:      pipeline,
			Bindings:      bindings,
			IndexCount:    data.Quad.IndexCount(),
			InstanceCount: uint32(data.Instances.Capacity()),
			Color:         data.Color,
			Depth:         data.Depth,
		},
	}, nil
}

// Encode records the bundle's single indexed, instanced draw.
func (b *Bundle) Encode(enc Encoder) error {
	if err := enc.Draw(b.draw); err != nil {
		return newError(ErrSubmission, "encode draw", err)
	}
	return nil
}

func (b *Bundle) Data() BundleData   { return b.data }
func (b *Bundle) DrawCall() DrawCall { return b.draw }
