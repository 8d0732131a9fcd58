// Package shaders holds the sprite shader sources and the names both
// backends bind resources by.
package shaders

import _ "embed"

//go:embed sprite.wgsl
var SpriteWGSL string

//go:embed sprite.vert
var SpriteVertGLSL string

//go:embed sprite.frag
var SpriteFragGLSL string

const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// Vertex inputs. Locations are shared by the WGSL and GLSL sources.
const (
	AttrCorner   = "a_corner"
	AttrPosition = "a_position_px"
	AttrSize     = "a_size_px"

	LocationCorner   uint32 = 0
	LocationPosition uint32 = 1
	LocationSize     uint32 = 2
)

// Group 0 layout.
const (
	UniformBlock      = "Globals"
	UniformWindowSize = "u_window_size_px"
	TextureName       = "t_sprite"
	SamplerName       = "s_sprite"

	BindingGlobals uint32 = 0
	BindingTexture uint32 = 1
	BindingSampler uint32 = 2
)
