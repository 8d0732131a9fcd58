package render

import "github.com/go-gl/mathgl/mgl32"

// Corner is a quad corner in [0,1]², also used as the texture coordinate.
type Corner struct {
	ZeroToOne mgl32.Vec2
}

var QuadCorners = [4]Corner{
	{ZeroToOne: mgl32.Vec2{0, 0}},
	{ZeroToOne: mgl32.Vec2{0, 1}},
	{ZeroToOne: mgl32.Vec2{1, 1}},
	{ZeroToOne: mgl32.Vec2{1, 0}},
}

var QuadIndices = [6]uint16{0, 1, 2, 2, 3, 0}

// Geometry is the quad every instance is drawn with. It is created once and
// never written again.
type Geometry struct {
	corners Buffer
	indices Buffer
}

func NewGeometry(f BufferFactory) (*Geometry, error) {
	corners, err := CreateBufferFrom(f, "Quad Corners", RoleVertex, UsageImmutable, QuadCorners[:])
	if err != nil {
		return nil, err
	}
	indices, err := CreateBufferFrom(f, "Quad Indices", RoleIndex, UsageImmutable, QuadIndices[:])
	if err != nil {
		corners.Release()
		return nil, err
	}
	return &Geometry{corners: corners, indices: indices}, nil
}

func (g *Geometry) VertexBuffer() Buffer { return g.corners }
func (g *Geometry) IndexBuffer() Buffer  { return g.indices }
func (g *Geometry) IndexCount() uint32   { return uint32(len(QuadIndices)) }
