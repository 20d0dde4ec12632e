package scene

import (
	"image"
	"image/color"

	"cubevox/internal/terrain"
)

// Demo atlas tiles.
const (
	TileGrass = iota
	TileDirt
	TileStone
	TileFlower
)

// DemoAtlas draws the 64×16 block atlas used by DemoRegistry.
func DemoAtlas() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4*terrain.TileSize, terrain.TileSize))
	speckled(img, TileGrass, color.NRGBA{86, 160, 58, 255})
	speckled(img, TileDirt, color.NRGBA{121, 85, 58, 255})
	speckled(img, TileStone, color.NRGBA{125, 125, 125, 255})

	// Flower: stem and a red head on a transparent tile.
	ox := TileFlower * terrain.TileSize
	for y := 7; y < terrain.TileSize; y++ {
		img.SetNRGBA(ox+7, y, color.NRGBA{60, 130, 40, 255})
		img.SetNRGBA(ox+8, y, color.NRGBA{50, 115, 35, 255})
	}
	for y := 2; y < 7; y++ {
		for x := 5; x < 11; x++ {
			img.SetNRGBA(ox+x, y, color.NRGBA{200, 40, 50, 255})
		}
	}
	img.SetNRGBA(ox+7, 4, color.NRGBA{240, 210, 60, 255})
	img.SetNRGBA(ox+8, 4, color.NRGBA{240, 210, 60, 255})
	return img
}

// speckled fills tile with base, lightened or darkened in a fixed pattern.
func speckled(img *image.NRGBA, tile int, base color.NRGBA) {
	ox := tile * terrain.TileSize
	for y := 0; y < terrain.TileSize; y++ {
		for x := 0; x < terrain.TileSize; x++ {
			d := int8((x*7+y*13+(x*y)%5)%4*8 - 12)
			img.SetNRGBA(ox+x, y, color.NRGBA{shift(base.R, d), shift(base.G, d), shift(base.B, d), 255})
		}
	}
}

func shift(c uint8, d int8) uint8 {
	v := int(c) + int(d)
	return uint8(max(0, min(255, v)))
}

// DemoSkin draws a 64×64 skin for DemoHumanoid.
func DemoSkin() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	fill := func(x0, y0, x1, y1 int, c color.NRGBA) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	fill(0, 0, 32, 16, color.NRGBA{224, 172, 132, 255})   // head
	fill(8, 0, 16, 4, color.NRGBA{70, 45, 30, 255})       // hair on top
	fill(8, 8, 16, 10, color.NRGBA{70, 45, 30, 255})      // fringe on the face
	fill(16, 16, 40, 32, color.NRGBA{48, 96, 176, 255})   // shirt
	fill(0, 16, 16, 26, color.NRGBA{52, 52, 90, 255})     // trousers
	fill(40, 16, 56, 26, color.NRGBA{224, 172, 132, 255}) // arms
	return img
}

// DemoRegistryFile describes the demo block set drawn from DemoAtlas: air,
// boundary, grass, stone and a cross-shaped flower.
func DemoRegistryFile() terrain.RegistryFile {
	return terrain.RegistryFile{
		Atlas: "demo_atlas.png",
		Blocks: []terrain.BlockFile{
			{Name: "air", Transparent: true, Renderer: "none"},
			{Name: "boundary", Transparent: true, Renderer: "none"},
			{Name: "grass", Renderer: "standard", Faces: []uint16{TileGrass, TileDirt, TileGrass, TileGrass, TileGrass, TileGrass}},
			{Name: "stone", Renderer: "standard", Faces: []uint16{TileStone}},
			{Name: "flower", Transparent: true, Renderer: "custom", Custom: "cross", Faces: []uint16{TileFlower}},
		},
	}
}

// DemoRegistry builds DemoRegistryFile.
func DemoRegistry() *terrain.Registry {
	f := DemoRegistryFile()
	atlas := terrain.AtlasSize{W: 4 * terrain.TileSize, H: terrain.TileSize}
	r, err := f.Registry(crossRenderers(atlas, &f))
	if err != nil {
		panic(err)
	}
	return r
}

// FillDemo lays out the demo terrain in c: a 15×15 grass floor with a
// three-high pillar at (5,5) ringed by four single blocks. Flowers are
// scattered on the floor when the registry defines one.
func FillDemo(c *terrain.Chunk) error {
	grass, ok := c.Registry().Lookup("grass")
	if !ok {
		return terrain.ErrUnknownMaterial
	}
	for x := 0; x < 15; x++ {
		for z := 0; z < 15; z++ {
			if err := c.Set(terrain.Pos{X: x, Y: 0, Z: z}, grass, 0); err != nil {
				return err
			}
			if x == 5 && z == 5 {
				c.Set(terrain.Pos{X: x, Y: 1, Z: z}, grass, 0)
				c.Set(terrain.Pos{X: x, Y: 2, Z: z}, grass, 0)
			}
			if (x == 5 && (z == 3 || z == 7)) || ((x == 3 || x == 7) && z == 5) {
				c.Set(terrain.Pos{X: x, Y: 1, Z: z}, grass, 0)
			}
		}
	}

	if flower, ok := c.Registry().Lookup("flower"); ok {
		for _, p := range []terrain.Pos{{X: 10, Y: 1, Z: 9}, {X: 2, Y: 1, Z: 11}, {X: 12, Y: 1, Z: 3}} {
			if err := c.Set(p, flower, 0); err != nil {
				return err
			}
		}
	}
	return nil
}
