// Package engine declares the host-engine collaborators the cube and terrain
// pipelines draw through: texture registry, buffer and mesh allocation,
// pipelines and render passes. Any renderer that implements Device and
// RenderPass can host models and chunks; internal/raster is the software one.
package engine

// Bind group slots shared by the cube and terrain pipelines.
const (
	CameraSlot  = 0
	TextureSlot = 1
	LightSlot   = 2
)

// TextureHandle names a texture owned by a Device. It binds as a group.
type TextureHandle uint32

// BindGroupLabel implements BindGroup.
func (h TextureHandle) BindGroupLabel() string { return "texture" }

// MeshHandle names a vertex/index mesh owned by a Device.
type MeshHandle uint32

// Buffer is a GPU-visible byte buffer owned by a Device.
type Buffer interface {
	Size() int
}

// BindGroup is any resource set that can be bound to a pipeline slot
// (camera, texture, lights).
type BindGroup interface {
	BindGroupLabel() string
}

// Pipeline is a prepared render pipeline.
type Pipeline interface {
	Name() string
}

// PipelineDesc describes a pipeline to create.
// Shader selects the vertex program: "cubes" for instanced cube parts
// (Vertex + CubeInstance), "terrain" for chunk meshes (Vertex + TransformRaw).
type PipelineDesc struct {
	Label  string
	Shader string
	Lit    bool
}

// Device is the host engine's resource side.
type Device interface {
	// LoadTexture loads (or returns the already loaded) texture at path.
	LoadTexture(path string) (TextureHandle, error)
	// TextureSize resolves a handle to its pixel dimensions.
	TextureSize(t TextureHandle) (w, h uint32)

	CreateBuffer(label string, contents []byte) Buffer
	WriteBuffer(b Buffer, offset int, data []byte)

	// CreateMesh uploads vertices and optional indices. A nil index list
	// draws the vertices as a plain triangle list.
	CreateMesh(label string, vertices []Vertex, indices []uint16) MeshHandle

	CreatePipeline(desc PipelineDesc) Pipeline
}

// RenderPass records draw calls.
type RenderPass interface {
	SetPipeline(p Pipeline)
	SetBindGroup(slot int, g BindGroup)
	// DrawMesh draws mesh instanceCount times, reading per-instance data
	// from instances.
	DrawMesh(mesh MeshHandle, instances Buffer, instanceCount uint32)
}
