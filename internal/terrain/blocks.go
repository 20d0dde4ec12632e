package terrain

import (
	"cubevox/internal/engine"
)

// Material is a block type id. Id 0 is air, id 1 is what lies outside a
// chunk's bounds.
type Material uint16

const (
	Air      Material = 0
	Boundary Material = 1
)

// BlockDef is the static definition of a material.
type BlockDef struct {
	Name        string
	Transparent bool
	Renderer    Renderer
}

// Neighbors holds the definitions of the six blocks around a block.
type Neighbors struct {
	Above, Below, North, South, East, West *BlockDef
}

func (n Neighbors) get(f Face) *BlockDef {
	switch f {
	case Above:
		return n.Above
	case Below:
		return n.Below
	case North:
		return n.North
	case South:
		return n.South
	case East:
		return n.East
	default:
		return n.West
	}
}

// Renderer generates the block-local geometry of a block from its
// neighbors. Implementations: NoneRenderer, StandardRenderer,
// CustomRenderer and BlockEntityRenderer.
type Renderer interface {
	Faces(atlas AtlasSize, n Neighbors) []engine.Vertex
}

// NoneRenderer draws nothing (air).
type NoneRenderer struct{}

func (NoneRenderer) Faces(AtlasSize, Neighbors) []engine.Vertex { return nil }

// BlockEntityRenderer marks blocks drawn per instance outside the chunk
// mesh. Chunk meshing emits nothing for them.
type BlockEntityRenderer struct{}

func (BlockEntityRenderer) Faces(AtlasSize, Neighbors) []engine.Vertex { return nil }

// StandardRenderer draws a full cube with one atlas tile per face. A face is
// emitted only when the neighbor on that side is transparent.
type StandardRenderer struct {
	Above, Below, North, South, East, West uint16
}

// Uniform returns a standard renderer using tile for every face.
func Uniform(tile uint16) StandardRenderer {
	return StandardRenderer{tile, tile, tile, tile, tile, tile}
}

func (s StandardRenderer) tile(f Face) uint16 {
	return [...]uint16{s.Above, s.Below, s.North, s.South, s.East, s.West}[f]
}

func (s StandardRenderer) Faces(atlas AtlasSize, n Neighbors) []engine.Vertex {
	var out []engine.Vertex
	for f := Above; f <= West; f++ {
		if nb := n.get(f); nb != nil && nb.Transparent {
			out = appendFace(out, f, atlas, s.tile(f))
		}
	}
	return out
}

// CustomRenderer builds arbitrary geometry from the six neighbors, for
// blocks that are not full cubes.
type CustomRenderer func(n Neighbors) []engine.Vertex

func (c CustomRenderer) Faces(_ AtlasSize, n Neighbors) []engine.Vertex { return c(n) }

// Cross returns a custom renderer drawing two diagonal quads textured with
// tile, the usual shape for plants. Neighbors are ignored.
func Cross(atlas AtlasSize, tile uint16) CustomRenderer {
	const d = 0.70710677
	quads := [2]struct {
		corners [4][3]float32
		normal  [3]float32
	}{
		{[4][3]float32{{0, 0, 0}, {1, 0, 1}, {1, 1, 1}, {0, 1, 0}}, [3]float32{d, 0, -d}},
		{[4][3]float32{{1, 0, 0}, {0, 0, 1}, {0, 1, 1}, {1, 1, 0}}, [3]float32{d, 0, d}},
	}
	uvs := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

	var mesh []engine.Vertex
	for _, q := range quads {
		for _, i := range [6]int{0, 1, 2, 2, 3, 0} {
			u, v := atlas.TileUV(tile, uvs[i][0], uvs[i][1])
			mesh = append(mesh, engine.Vertex{Position: q.corners[i], TexCoords: [2]float32{u, v}, Normal: q.normal})
		}
	}
	return func(Neighbors) []engine.Vertex {
		return append([]engine.Vertex(nil), mesh...)
	}
}

func appendFace(dst []engine.Vertex, f Face, atlas AtlasSize, tile uint16) []engine.Vertex {
	face := FaceVertices(f)
	for i := range face {
		u, v := atlas.TileUV(tile, face[i].TexCoords[0], face[i].TexCoords[1])
		face[i].TexCoords = [2]float32{u, v}
	}
	return append(dst, face[:]...)
}

// RenderBlock returns def's geometry for the block at grid position pos,
// translated into chunk-local space.
func RenderBlock(def *BlockDef, pos Pos, atlas AtlasSize, n Neighbors) []engine.Vertex {
	if def == nil || def.Renderer == nil {
		return nil
	}
	out := def.Renderer.Faces(atlas, n)
	x, y, z := float32(pos.X), float32(pos.Y), float32(pos.Z)
	for i := range out {
		out[i].Position[0] += x
		out[i].Position[1] += y
		out[i].Position[2] += z
	}
	return out
}
