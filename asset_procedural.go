package sprites

// CreateTestPattern builds a size x size checkerboard of cells x cells tiles
// with a red/green gradient in the light cells and a solid white top-left
// marker cell, so tiling and orientation are visible on screen.
func (server *AssetServer) CreateTestPattern(size, cells uint32) AssetId {
	if cells == 0 {
		cells = 1
	}
	cell := size / cells
	if cell == 0 {
		cell = 1
	}
	texels := make([]uint8, size*size*4)
	for y := uint32(0); y < size; y++ {
		for x := uint32(0); x < size; x++ {
			i := (y*size + x) * 4
			cx, cy := x/cell, y/cell
			switch {
			case cx == 0 && cy == 0:
				texels[i], texels[i+1], texels[i+2] = 255, 255, 255
			case (cx+cy)%2 == 0:
				texels[i] = uint8(x * 255 / size)
				texels[i+1] = uint8(y * 255 / size)
				texels[i+2] = 128
			default:
				texels[i], texels[i+1], texels[i+2] = 32, 32, 48
			}
			texels[i+3] = 255
		}
	}
	return server.CreateTexture(texels, size, size)
}
