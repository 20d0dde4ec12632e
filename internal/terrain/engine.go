package terrain

import (
	"fmt"

	"cubevox/internal/engine"
)

// ChunkEngine holds the terrain pipeline and the block atlas.
type ChunkEngine struct {
	pipeline engine.Pipeline
	atlas    engine.TextureHandle
	registry *Registry
}

// NewChunkEngine creates the terrain pipeline for chunks of registry drawn
// with atlas.
func NewChunkEngine(dev engine.Device, registry *Registry, atlas engine.TextureHandle) *ChunkEngine {
	if registry == nil {
		panic("terrain: chunk engine needs a registry")
	}
	return &ChunkEngine{
		pipeline: dev.CreatePipeline(engine.PipelineDesc{Label: "chunk", Shader: "terrain", Lit: true}),
		atlas:    atlas,
		registry: registry,
	}
}

// Atlas returns the atlas texture.
func (e *ChunkEngine) Atlas() engine.TextureHandle { return e.atlas }

// AtlasSize resolves the atlas dimensions. An atlas the device does not
// know (zero size) panics.
func (e *ChunkEngine) AtlasSize(dev engine.Device) AtlasSize {
	w, h := dev.TextureSize(e.atlas)
	if w == 0 || h == 0 {
		panic(fmt.Sprintf("terrain: atlas texture %d has no size; load it before meshing", e.atlas))
	}
	return AtlasSize{W: w, H: h}
}

// Prepare binds the terrain pipeline and the camera.
func (e *ChunkEngine) Prepare(pass engine.RenderPass, camera engine.BindGroup) {
	pass.SetPipeline(e.pipeline)
	pass.SetBindGroup(engine.CameraSlot, camera)
}

// DrawChunk uploads the chunk transform and draws its mesh. The mesh must
// have been generated; drawing a chunk without one panics.
func (e *ChunkEngine) DrawChunk(dev engine.Device, pass engine.RenderPass, c *Chunk) {
	buf := c.writeTransform(dev)
	mesh, ok := c.Mesh()
	if !ok {
		panic("terrain: chunk must have a generated mesh to be drawn")
	}
	pass.SetBindGroup(engine.TextureSlot, e.atlas)
	pass.DrawMesh(mesh, buf, 1)
}

// NewChunk returns an empty chunk using the engine's registry.
func (e *ChunkEngine) NewChunk(id uint32) *Chunk { return NewChunk(id, e.registry) }
