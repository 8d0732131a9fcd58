package opengl

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"

	"github.com/gekko3d/sprites/render"
	"github.com/gekko3d/sprites/render/shaders"
)

func TestCheckAttributes(t *testing.T) {
	layouts := render.DefaultPipelineDesc().Buffers
	locations := map[string]int32{
		shaders.AttrCorner:   0,
		shaders.AttrPosition: 1,
		shaders.AttrSize:     2,
	}
	lookup := func(name string) int32 {
		if loc, ok := locations[name]; ok {
			return loc
		}
		return -1
	}
	assert.NoError(t, checkAttributes(layouts, lookup))

	delete(locations, shaders.AttrSize)
	assert.ErrorContains(t, checkAttributes(layouts, lookup), shaders.AttrSize)

	locations[shaders.AttrSize] = 5
	assert.ErrorContains(t, checkAttributes(layouts, lookup), "expected 2")
}

func TestSamplerModes(t *testing.T) {
	assert.Equal(t, int32(gl.REPEAT), glWrapMode(render.WrapTile))
	assert.Equal(t, int32(gl.MIRRORED_REPEAT), glWrapMode(render.WrapMirror))
	assert.Equal(t, int32(gl.CLAMP_TO_EDGE), glWrapMode(render.WrapClamp))
	assert.Equal(t, int32(gl.NEAREST), glFilterMode(render.FilterNearest))
	assert.Equal(t, int32(gl.LINEAR), glFilterMode(render.FilterLinear))
}

func TestSpriteTextureIsSRGB(t *testing.T) {
	assert.Equal(t, int32(gl.SRGB8_ALPHA8), int32(spriteInternalFormat))
}

func TestDepthCompare(t *testing.T) {
	assert.Equal(t, uint32(gl.LEQUAL), glCompareFunc(render.CompareLessEqual))
	assert.Equal(t, uint32(gl.LESS), glCompareFunc(render.CompareLess))
	assert.Equal(t, uint32(gl.ALWAYS), glCompareFunc(render.CompareAlways))
}

func TestUsageHints(t *testing.T) {
	assert.Equal(t, uint32(gl.STATIC_DRAW), usageHint(render.UsageImmutable))
	assert.Equal(t, uint32(gl.DYNAMIC_DRAW), usageHint(render.UsageData))
	assert.Equal(t, uint32(gl.STREAM_DRAW), usageHint(render.UsageUpload))
}

func TestEncoderRecordsUntilSubmit(t *testing.T) {
	enc := &encoder{}
	src := &buffer{id: 1, size: 32}
	dst := &buffer{id: 2, size: 32}
	assert.NoError(t, enc.CopyBuffer(src, dst, 0, 0, 32))
	assert.Error(t, enc.CopyBuffer(src, dst, 16, 0, 32))
	assert.Error(t, enc.WriteBuffer(dst, 30, make([]byte, 4)))
	assert.Len(t, enc.cmds, 1)
	assert.Equal(t, "copy buffer", enc.cmds[0].name)
}
