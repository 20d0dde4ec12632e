package cubes

import "cubevox/internal/engine"

// cubeVertices is the unit cube shared by every part. Texture coordinates
// address the cross-shaped skin layout in quarters (U) and halves (V); the
// cube shader maps them through each instance's TexSplits.
var cubeVertices = []engine.Vertex{
	// south Z-
	{Position: [3]float32{-0.5, -0.5, -0.5}, TexCoords: [2]float32{0.50, 1.00}, Normal: [3]float32{0, 0, -1}},
	{Position: [3]float32{0.5, -0.5, -0.5}, TexCoords: [2]float32{0.25, 1.00}, Normal: [3]float32{0, 0, -1}},
	{Position: [3]float32{0.5, 0.5, -0.5}, TexCoords: [2]float32{0.25, 0.50}, Normal: [3]float32{0, 0, -1}},
	{Position: [3]float32{-0.5, 0.5, -0.5}, TexCoords: [2]float32{0.50, 0.50}, Normal: [3]float32{0, 0, -1}},

	// north Z+
	{Position: [3]float32{-0.5, -0.5, 0.5}, TexCoords: [2]float32{0.75, 1.00}, Normal: [3]float32{0, 0, 1}},
	{Position: [3]float32{0.5, -0.5, 0.5}, TexCoords: [2]float32{1.00, 1.00}, Normal: [3]float32{0, 0, 1}},
	{Position: [3]float32{0.5, 0.5, 0.5}, TexCoords: [2]float32{1.00, 0.50}, Normal: [3]float32{0, 0, 1}},
	{Position: [3]float32{-0.5, 0.5, 0.5}, TexCoords: [2]float32{0.75, 0.50}, Normal: [3]float32{0, 0, 1}},

	// west X-
	{Position: [3]float32{-0.5, 0.5, -0.5}, TexCoords: [2]float32{0.50, 0.50}, Normal: [3]float32{-1, 0, 0}},
	{Position: [3]float32{-0.5, -0.5, -0.5}, TexCoords: [2]float32{0.50, 1.00}, Normal: [3]float32{-1, 0, 0}},
	{Position: [3]float32{-0.5, -0.5, 0.5}, TexCoords: [2]float32{0.75, 1.00}, Normal: [3]float32{-1, 0, 0}},
	{Position: [3]float32{-0.5, 0.5, 0.5}, TexCoords: [2]float32{0.75, 0.50}, Normal: [3]float32{-1, 0, 0}},

	// east X+
	{Position: [3]float32{0.5, -0.5, -0.5}, TexCoords: [2]float32{0.25, 1.00}, Normal: [3]float32{1, 0, 0}},
	{Position: [3]float32{0.5, 0.5, -0.5}, TexCoords: [2]float32{0.25, 0.50}, Normal: [3]float32{1, 0, 0}},
	{Position: [3]float32{0.5, 0.5, 0.5}, TexCoords: [2]float32{0.00, 0.50}, Normal: [3]float32{1, 0, 0}},
	{Position: [3]float32{0.5, -0.5, 0.5}, TexCoords: [2]float32{0.00, 1.00}, Normal: [3]float32{1, 0, 0}},

	// bottom Y-
	{Position: [3]float32{-0.5, -0.5, -0.5}, TexCoords: [2]float32{0.50, 0.50}, Normal: [3]float32{0, -1, 0}},
	{Position: [3]float32{0.5, -0.5, -0.5}, TexCoords: [2]float32{0.75, 0.50}, Normal: [3]float32{0, -1, 0}},
	{Position: [3]float32{0.5, -0.5, 0.5}, TexCoords: [2]float32{0.75, 0.00}, Normal: [3]float32{0, -1, 0}},
	{Position: [3]float32{-0.5, -0.5, 0.5}, TexCoords: [2]float32{0.50, 0.00}, Normal: [3]float32{0, -1, 0}},

	// top Y+
	{Position: [3]float32{0.5, 0.5, -0.5}, TexCoords: [2]float32{0.25, 0.00}, Normal: [3]float32{0, 1, 0}},
	{Position: [3]float32{-0.5, 0.5, -0.5}, TexCoords: [2]float32{0.50, 0.00}, Normal: [3]float32{0, 1, 0}},
	{Position: [3]float32{-0.5, 0.5, 0.5}, TexCoords: [2]float32{0.50, 0.50}, Normal: [3]float32{0, 1, 0}},
	{Position: [3]float32{0.5, 0.5, 0.5}, TexCoords: [2]float32{0.25, 0.50}, Normal: [3]float32{0, 1, 0}},
}

var cubeIndices = []uint16{
	0, 3, 2,
	2, 1, 0,
	4, 5, 6,
	6, 7, 4,
	11, 8, 9,
	9, 10, 11,
	12, 13, 14,
	14, 15, 12,
	16, 17, 18,
	18, 19, 16,
	20, 21, 22,
	22, 23, 20,
}

// CubeVertices returns a copy of the unit cube vertices.
func CubeVertices() []engine.Vertex { return append([]engine.Vertex(nil), cubeVertices...) }

// CubeIndices returns a copy of the unit cube triangle indices.
func CubeIndices() []uint16 { return append([]uint16(nil), cubeIndices...) }

// CubeEngine holds the cube pipeline and the shared cube mesh.
type CubeEngine struct {
	pipeline engine.Pipeline
	mesh     engine.MeshHandle
}

// NewCubeEngine creates the lit cube pipeline and uploads the cube mesh.
func NewCubeEngine(dev engine.Device) *CubeEngine {
	return &CubeEngine{
		pipeline: dev.CreatePipeline(engine.PipelineDesc{Label: "std", Shader: "cubes", Lit: true}),
		mesh:     dev.CreateMesh("cube_engine_mesh", cubeVertices, cubeIndices),
	}
}

// Mesh returns the shared cube mesh.
func (e *CubeEngine) Mesh() engine.MeshHandle { return e.mesh }

// Prepare binds the cube pipeline and the camera.
func (e *CubeEngine) Prepare(pass engine.RenderPass, camera engine.BindGroup) {
	pass.SetPipeline(e.pipeline)
	pass.SetBindGroup(engine.CameraSlot, camera)
}

// DrawCubes draws data's instances of the cube mesh with texture.
func (e *CubeEngine) DrawCubes(pass engine.RenderPass, texture engine.TextureHandle, data *InstanceBuffer) {
	pass.SetBindGroup(engine.TextureSlot, texture)
	pass.DrawMesh(e.mesh, data.Buffer(), uint32(data.Len()))
}

// DrawModel draws a baked model.
func (e *CubeEngine) DrawModel(pass engine.RenderPass, m *Model) {
	e.DrawCubes(pass, m.Texture, m.data)
}

// DrawAnimated draws the model of an animated model.
func (e *CubeEngine) DrawAnimated(pass engine.RenderPass, a *AnimatedModel) {
	e.DrawModel(pass, a.Model)
}
