package render

import "github.com/go-gl/mathgl/mgl32"

// WindowSizeUniform matches the Globals block in the sprite shaders.
type WindowSizeUniform struct {
	WindowSizeInPixels mgl32.Vec2
	Padding            mgl32.Vec2
}

type Uniforms struct {
	buffer Buffer
	value  WindowSizeUniform
}

func NewUniforms(f BufferFactory) (*Uniforms, error) {
	buf, err := CreateBuffer[WindowSizeUniform](f, "Globals", RoleConstant, UsageData, 1)
	if err != nil {
		return nil, err
	}
	return &Uniforms{buffer: buf}, nil
}

// Update records a write of the window size. It must equal the color target's
// dimensions or every instance lands in the wrong place.
func (u *Uniforms) Update(enc Encoder, size mgl32.Vec2) error {
	u.value = WindowSizeUniform{WindowSizeInPixels: size}
	if err := enc.WriteBuffer(u.buffer, 0, valueBytes(&u.value)); err != nil {
		return newError(ErrSubmission, "update globals", err)
	}
	return nil
}

func (u *Uniforms) Buffer() Buffer { return u.buffer }

func (u *Uniforms) WindowSize() mgl32.Vec2 { return u.value.WindowSizeInPixels }

// TargetSize converts target dimensions into the uniform's float pair.
func TargetSize(t Target) mgl32.Vec2 {
	w, h := t.Dimensions()
	return mgl32.Vec2{float32(w), float32(h)}
}
