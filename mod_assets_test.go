package sprites

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/sprites/render"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeTexture_PNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(2, 1, color.NRGBA{B: 255, A: 255})

	server := NewAssetServer()
	id, err := server.DecodeTexture(encodePNG(t, img))
	require.NoError(t, err)

	tx, ok := server.Texture(id)
	require.True(t, ok)
	assert.Equal(t, uint32(3), tx.Width)
	assert.Equal(t, uint32(2), tx.Height)
	require.Len(t, tx.Texels, 3*2*4)
	assert.Equal(t, []uint8{255, 0, 0, 255}, tx.Texels[0:4])
	assert.Equal(t, []uint8{0, 0, 255, 255}, tx.Texels[20:24])
}

func TestDecodeTexture_Paletted(t *testing.T) {
	palette := color.Palette{color.RGBA{A: 255}, color.RGBA{G: 255, A: 255}}
	img := image.NewPaletted(image.Rect(0, 0, 2, 2), palette)
	img.SetColorIndex(1, 0, 1)

	server := NewAssetServer()
	id, err := server.DecodeTexture(encodePNG(t, img))
	require.NoError(t, err)
	tx, _ := server.Texture(id)
	assert.Equal(t, []uint8{0, 255, 0, 255}, tx.Texels[4:8])
}

func TestDecodeTexture_Malformed(t *testing.T) {
	server := NewAssetServer()
	_, err := server.DecodeTexture([]byte("not an image"))
	assert.ErrorIs(t, err, render.ErrDecode)

	_, err = server.LoadTexture("does/not/exist.png")
	assert.ErrorIs(t, err, render.ErrDecode)
}

func TestToRGBA_SubImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.Set(2, 2, color.RGBA{R: 9, A: 255})
	sub := src.SubImage(image.Rect(2, 2, 4, 4))

	rgba := toRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 2, 2), rgba.Bounds())
	assert.Equal(t, 8, rgba.Stride)
	assert.Equal(t, uint8(9), rgba.Pix[0])
}

func TestCreateTestPattern(t *testing.T) {
	server := NewAssetServer()
	id := server.CreateTestPattern(16, 4)
	tx, ok := server.Texture(id)
	require.True(t, ok)

	assert.Equal(t, uint32(16), tx.Width)
	assert.Equal(t, uint32(16), tx.Height)
	require.Len(t, tx.Texels, 16*16*4)
	assert.Equal(t, []uint8{255, 255, 255, 255}, tx.Texels[0:4], "top-left marker cell")
	assert.Equal(t, []uint8{32, 32, 48, 255}, tx.Texels[4*4:4*4+4], "dark cell next to the marker")
	for i := 3; i < len(tx.Texels); i += 4 {
		require.Equal(t, uint8(255), tx.Texels[i])
	}
}

func TestAssetIdsAreUnique(t *testing.T) {
	server := NewAssetServer()
	a := server.CreateTexture([]uint8{0, 0, 0, 0}, 1, 1)
	b := server.CreateTexture([]uint8{0, 0, 0, 0}, 1, 1)
	assert.NotEqual(t, a, b)
	assert.Len(t, string(a), 36)
}
