package terrain

import (
	"errors"
	"fmt"

	"cubevox/internal/engine"
	"cubevox/internal/mathutil"
)

// ChunkSize is the edge length of a chunk in blocks.
const ChunkSize = 16

// ErrOutOfBounds is returned for positions outside [0,ChunkSize)³.
var ErrOutOfBounds = errors.New("terrain: position out of chunk bounds")

// Pos is a block position inside a chunk.
type Pos struct {
	X, Y, Z int
}

// InBounds reports whether p lies inside a chunk.
func (p Pos) InBounds() bool {
	return p.X >= 0 && p.X < ChunkSize &&
		p.Y >= 0 && p.Y < ChunkSize &&
		p.Z >= 0 && p.Z < ChunkSize
}

// Cell is the stored state of one block.
type Cell struct {
	Material Material
	Metadata uint16
}

// Chunk is a 16³ block grid with its own mesh and placement. The mesh is
// rebuilt wholesale by GenerateMesh; edits do not update it.
type Chunk struct {
	ID        uint32
	Transform mathutil.Transform

	registry *Registry
	cells    [ChunkSize][ChunkSize][ChunkSize]Cell
	mesh     *engine.MeshHandle
	vertices int
	buffer   engine.Buffer
}

// NewChunk returns a chunk filled with air. registry is required; a nil
// registry panics.
func NewChunk(id uint32, registry *Registry) *Chunk {
	if registry == nil {
		panic("terrain: chunk needs a registry")
	}
	return &Chunk{ID: id, Transform: mathutil.Identity(), registry: registry}
}

// Registry returns the material registry the chunk's ids refer to.
func (c *Chunk) Registry() *Registry { return c.registry }

// Set stores material and metadata at p.
func (c *Chunk) Set(p Pos, material Material, metadata uint16) error {
	if !p.InBounds() {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	if _, err := c.registry.Def(material); err != nil {
		return err
	}
	c.cells[p.X][p.Y][p.Z] = Cell{Material: material, Metadata: metadata}
	return nil
}

// Get returns the cell at p.
func (c *Chunk) Get(p Pos) (Cell, error) {
	if !p.InBounds() {
		return Cell{}, fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	return c.cells[p.X][p.Y][p.Z], nil
}

// Fill sets every cell for which fn returns ok.
func (c *Chunk) Fill(fn func(p Pos) (m Material, metadata uint16, ok bool)) error {
	for x := 0; x < ChunkSize; x++ {
		for y := 0; y < ChunkSize; y++ {
			for z := 0; z < ChunkSize; z++ {
				p := Pos{x, y, z}
				if m, md, ok := fn(p); ok {
					if err := c.Set(p, m, md); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// neighbor returns the material next to p in direction f; positions outside
// the chunk read as Boundary.
func (c *Chunk) neighbor(p Pos, f Face) Material {
	switch f {
	case Above:
		p.Y++
	case Below:
		p.Y--
	case North:
		p.Z++
	case South:
		p.Z--
	case East:
		p.X++
	case West:
		p.X--
	}
	if !p.InBounds() {
		return Boundary
	}
	return c.cells[p.X][p.Y][p.Z].Material
}

// Neighbors returns the definitions around p.
func (c *Chunk) Neighbors(p Pos) Neighbors {
	r := c.registry
	return Neighbors{
		Above: r.def(c.neighbor(p, Above)),
		Below: r.def(c.neighbor(p, Below)),
		North: r.def(c.neighbor(p, North)),
		South: r.def(c.neighbor(p, South)),
		East:  r.def(c.neighbor(p, East)),
		West:  r.def(c.neighbor(p, West)),
	}
}

// Vertices builds the chunk's triangle list against an atlas of the given
// size. Cells are visited x-major, then y, then z.
func (c *Chunk) Vertices(atlas AtlasSize) []engine.Vertex {
	var out []engine.Vertex
	for x := 0; x < ChunkSize; x++ {
		for y := 0; y < ChunkSize; y++ {
			for z := 0; z < ChunkSize; z++ {
				p := Pos{x, y, z}
				def := c.registry.def(c.cells[x][y][z].Material)
				out = append(out, RenderBlock(def, p, atlas, c.Neighbors(p))...)
			}
		}
	}
	return out
}

// GenerateMesh rebuilds the chunk mesh, replacing any previous one.
func (c *Chunk) GenerateMesh(dev engine.Device, ce *ChunkEngine) {
	vertices := c.Vertices(ce.AtlasSize(dev))
	mesh := dev.CreateMesh(fmt.Sprintf("chunk_%d", c.ID), vertices, nil)
	c.mesh = &mesh
	c.vertices = len(vertices)
	engine.Logger().Debug("terrain: chunk mesh generated", "chunk", c.ID, "vertices", len(vertices))
}

// EnsureMesh generates the mesh if the chunk has none and returns it.
func (c *Chunk) EnsureMesh(dev engine.Device, ce *ChunkEngine) engine.MeshHandle {
	if c.mesh == nil {
		c.GenerateMesh(dev, ce)
	}
	return *c.mesh
}

// Mesh returns the generated mesh, if any.
func (c *Chunk) Mesh() (engine.MeshHandle, bool) {
	if c.mesh == nil {
		return 0, false
	}
	return *c.mesh, true
}

// VertexCount returns the vertex count of the last generated mesh.
func (c *Chunk) VertexCount() int { return c.vertices }

// writeTransform uploads the chunk transform, creating the buffer on first use.
func (c *Chunk) writeTransform(dev engine.Device) engine.Buffer {
	raw := engine.NewTransformRaw(c.Transform).Bytes()
	if c.buffer == nil {
		c.buffer = dev.CreateBuffer(fmt.Sprintf("chunk_%d_transform", c.ID), raw)
	} else {
		dev.WriteBuffer(c.buffer, 0, raw)
	}
	return c.buffer
}

// Bounds returns the chunk-local box enclosing every non-air block, in block
// units. ok is false for an empty chunk.
func (c *Chunk) Bounds() (lo, hi Pos, ok bool) {
	lo = Pos{ChunkSize, ChunkSize, ChunkSize}
	hi = Pos{-1, -1, -1}
	for x := 0; x < ChunkSize; x++ {
		for y := 0; y < ChunkSize; y++ {
			for z := 0; z < ChunkSize; z++ {
				if c.cells[x][y][z].Material == Air {
					continue
				}
				lo = Pos{min(lo.X, x), min(lo.Y, y), min(lo.Z, z)}
				hi = Pos{max(hi.X, x+1), max(hi.Y, y+1), max(hi.Z, z+1)}
			}
		}
	}
	return lo, hi, hi.X >= 0
}
