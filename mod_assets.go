package sprites

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gekko3d/sprites/render"
)

type AssetId string

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

// TextureAsset holds tightly packed RGBA8 texels, rows top to bottom.
type TextureAsset struct {
	Texels []uint8
	Width  uint32
	Height uint32
}

type AssetServer struct {
	textures map[AssetId]TextureAsset
}

func NewAssetServer() *AssetServer {
	return &AssetServer{textures: make(map[AssetId]TextureAsset)}
}

type AssetServerModule struct{}

func (AssetServerModule) Install(app *App) error {
	return app.AddResources(NewAssetServer())
}

func (server *AssetServer) Texture(id AssetId) (TextureAsset, bool) {
	tx, ok := server.textures[id]
	return tx, ok
}

func (server *AssetServer) CreateTexture(texels []uint8, texWidth uint32, texHeight uint32) AssetId {
	id := makeAssetId()

	server.textures[id] = TextureAsset{
		Texels: texels,
		Width:  texWidth,
		Height: texHeight,
	}

	return id
}

// DecodeTexture decodes PNG, JPEG, GIF, BMP, TIFF or WebP bytes into an RGBA8 texture.
func (server *AssetServer) DecodeTexture(data []byte) (AssetId, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", render.NewError(render.ErrDecode, "decode texture", err)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return "", render.NewError(render.ErrDecode, "decode texture", fmt.Errorf("empty %s image", format))
	}

	rgba := toRGBA(img)
	return server.CreateTexture(rgba.Pix, uint32(bounds.Dx()), uint32(bounds.Dy())), nil
}

func (server *AssetServer) LoadTexture(filename string) (AssetId, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", render.NewError(render.ErrDecode, "read texture "+filename, err)
	}
	return server.DecodeTexture(data)
}

// toRGBA returns img as a zero-origin RGBA image whose stride is exactly 4*width.
func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && bounds.Min == (image.Point{}) && rgba.Stride == 4*bounds.Dx() {
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}
