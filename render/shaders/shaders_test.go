package shaders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourcesDeclareBoundNames(t *testing.T) {
	for _, name := range []string{AttrCorner, AttrPosition, AttrSize, TextureName} {
		assert.Contains(t, SpriteWGSL, name)
	}
	assert.Contains(t, SpriteWGSL, SamplerName)
	assert.Contains(t, SpriteWGSL, "fn "+VertexEntry)
	assert.Contains(t, SpriteWGSL, "fn "+FragmentEntry)

	for _, name := range []string{AttrCorner, AttrPosition, AttrSize, UniformBlock, UniformWindowSize} {
		assert.Contains(t, SpriteVertGLSL, name)
	}
	assert.Contains(t, SpriteFragGLSL, TextureName)
}

func TestSourcesFlipY(t *testing.T) {
	assert.True(t, strings.Contains(SpriteWGSL, "-ndc.y"))
	assert.True(t, strings.Contains(SpriteVertGLSL, "-ndc.y"))
}
