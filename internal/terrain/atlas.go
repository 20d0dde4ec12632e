package terrain

import "math"

// TileSize is the width and height of one atlas tile in pixels.
const TileSize = 16

// AtlasSize is the pixel size of a block atlas texture.
type AtlasSize struct {
	W, H uint32
}

// TileUV maps a tile-local coordinate (u, v in [0,1]) of tile index onto the
// atlas. Tiles are laid out left to right; an index running past the right
// edge continues on the next row, the row being the integer part of the
// normalized horizontal offset.
func (a AtlasSize) TileUV(index uint16, u, v float32) (float32, float32) {
	width := float32(TileSize) / float32(a.W)
	height := float32(TileSize) / float32(a.H)
	horizontal := float32(index) * width
	row := float32(math.Floor(float64(horizontal)))
	col := horizontal - row
	return u*width + col, v*height + row*height
}
