package render_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/sprites/render"
	"github.com/gekko3d/sprites/render/rendertest"
)

func newTestBundle(t *testing.T, dev *rendertest.Device, capacity int) *render.Bundle {
	t.Helper()
	b, err := render.NewSpriteBundle(dev, render.SpriteSetup{
		Capacity: capacity,
		Pixels:   rendertest.RGBA(2, 2),
		Width:    2,
		Height:   2,
		Pipeline: render.DefaultPipelineDesc(),
	})
	require.NoError(t, err)
	return b
}

func TestDefaultPipelineDesc(t *testing.T) {
	desc := render.DefaultPipelineDesc()
	assert.Equal(t, render.BlendAlpha, desc.Blend)
	assert.Equal(t, render.DepthState{Compare: render.CompareLessEqual, Write: true}, desc.Depth)
	require.Len(t, desc.Buffers, 2)

	assert.Equal(t, render.StepPerVertex, desc.Buffers[0].Step)
	assert.Equal(t, uint64(8), desc.Buffers[0].Stride)
	require.Len(t, desc.Buffers[0].Attributes, 1)
	assert.Equal(t, uint32(0), desc.Buffers[0].Attributes[0].Location)

	inst := desc.Buffers[1]
	assert.Equal(t, render.StepPerInstance, inst.Step)
	assert.Equal(t, uint64(16), inst.Stride)
	require.Len(t, inst.Attributes, 2)
	assert.Equal(t, uint64(0), inst.Attributes[0].Offset)
	assert.Equal(t, uint64(8), inst.Attributes[1].Offset)
	assert.Equal(t, uint32(1), inst.Attributes[0].Location)
	assert.Equal(t, uint32(2), inst.Attributes[1].Location)
	assert.NotEmpty(t, desc.Shader.WGSL)
	assert.NotEmpty(t, desc.Shader.GLSLVertex)
}

func TestSpriteBundleSetup(t *testing.T) {
	dev := rendertest.NewDevice(960, 720)
	b := newTestBundle(t, dev, 3)

	call := b.DrawCall()
	assert.Equal(t, uint32(6), call.IndexCount)
	assert.Equal(t, uint32(3), call.InstanceCount)
	assert.Equal(t, dev.Color, call.Color)
	assert.Equal(t, dev.Depth, call.Depth)

	bindings := call.Bindings.(*rendertest.Bindings)
	assert.Equal(t, b.Data().Instances.Buffer(), bindings.Set.Instances)
	assert.Equal(t, b.Data().Uniforms.Buffer(), bindings.Set.Uniforms)
	assert.Equal(t, b.Data().Texture.Sampler(), bindings.Set.Sampler)

	assert.Equal(t, float32(960), b.WindowSize().X())
	assert.Equal(t, float32(720), b.WindowSize().Y())
	assert.Equal(t, []string{"write Globals", "submit"}, dev.Log)
}

func TestBundleEncodesSingleDraw(t *testing.T) {
	dev := rendertest.NewDevice(960, 720)
	b := newTestBundle(t, dev, 3)
	dev.Log = nil

	enc, _ := dev.CreateEncoder()
	require.NoError(t, b.Encode(enc))
	require.NoError(t, enc.Submit())
	assert.Equal(t, []string{"draw 6 x 3", "submit"}, dev.Log)
}

func TestNewBundleIncompleteData(t *testing.T) {
	dev := rendertest.NewDevice(960, 720)
	_, err := render.NewBundle(dev, render.DefaultPipelineDesc(), render.BundleData{})
	assert.ErrorIs(t, err, render.ErrResourceCreation)
}

func TestNewBundlePipelineFailure(t *testing.T) {
	dev := rendertest.NewDevice(960, 720)
	dev.PipelineErr = errors.New("shader rejected")
	_, err := render.NewSpriteBundle(dev, render.SpriteSetup{
		Capacity: 1,
		Pixels:   rendertest.RGBA(1, 1),
		Width:    1,
		Height:   1,
		Pipeline: render.DefaultPipelineDesc(),
	})
	assert.ErrorIs(t, err, render.ErrResourceCreation)
}
