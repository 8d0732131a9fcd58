package render

import "github.com/go-gl/mathgl/mgl32"

// PixelToNDC is the vertex shader's placement: pixel (0,0) is the top-left
// corner of the window and y grows downwards.
func PixelToNDC(pixel, window mgl32.Vec2) mgl32.Vec2 {
	x := pixel.X()/window.X()*2 - 1
	y := pixel.Y()/window.Y()*2 - 1
	return mgl32.Vec2{x, -y}
}

// Rect is an axis-aligned rectangle in NDC.
type Rect struct {
	Min mgl32.Vec2
	Max mgl32.Vec2
}

// InstanceRect returns the NDC rectangle an instance covers.
func InstanceRect(inst Instance, window mgl32.Vec2) Rect {
	a := PixelToNDC(inst.PositionInPixels, window)
	b := PixelToNDC(inst.PositionInPixels.Add(inst.SizeInPixels), window)
	return Rect{
		Min: mgl32.Vec2{min(a.X(), b.X()), min(a.Y(), b.Y())},
		Max: mgl32.Vec2{max(a.X(), b.X()), max(a.Y(), b.Y())},
	}
}

// Visible reports whether any part of r lies inside the [-1,1]² clip square.
func (r Rect) Visible() bool {
	return r.Max.X() > -1 && r.Min.X() < 1 && r.Max.Y() > -1 && r.Min.Y() < 1
}
