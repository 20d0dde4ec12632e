package terrain

import "cubevox/internal/engine"

type fakeBuffer struct{ data []byte }

func (b *fakeBuffer) Size() int { return len(b.data) }

type fakeDevice struct {
	atlas   AtlasSize
	buffers []*fakeBuffer
	writes  int
	meshes  [][]engine.Vertex
}

func (d *fakeDevice) LoadTexture(string) (engine.TextureHandle, error) { return 7, nil }

func (d *fakeDevice) TextureSize(engine.TextureHandle) (uint32, uint32) { return d.atlas.W, d.atlas.H }

func (d *fakeDevice) CreateBuffer(_ string, contents []byte) engine.Buffer {
	b := &fakeBuffer{data: append([]byte(nil), contents...)}
	d.buffers = append(d.buffers, b)
	return b
}

func (d *fakeDevice) WriteBuffer(b engine.Buffer, offset int, data []byte) {
	d.writes++
	copy(b.(*fakeBuffer).data[offset:], data)
}

func (d *fakeDevice) CreateMesh(_ string, vertices []engine.Vertex, _ []uint16) engine.MeshHandle {
	d.meshes = append(d.meshes, vertices)
	return engine.MeshHandle(len(d.meshes))
}

func (d *fakeDevice) CreatePipeline(desc engine.PipelineDesc) engine.Pipeline {
	return fakePipeline(desc.Shader)
}

type fakePipeline string

func (p fakePipeline) Name() string { return string(p) }

type fakePass struct {
	pipeline engine.Pipeline
	groups   map[int]engine.BindGroup
	draws    int
	count    uint32
}

func (p *fakePass) SetPipeline(pl engine.Pipeline) { p.pipeline = pl }

func (p *fakePass) SetBindGroup(slot int, g engine.BindGroup) {
	if p.groups == nil {
		p.groups = map[int]engine.BindGroup{}
	}
	p.groups[slot] = g
}

func (p *fakePass) DrawMesh(_ engine.MeshHandle, _ engine.Buffer, count uint32) {
	p.draws++
	p.count = count
}

type fakeCamera struct{}

func (fakeCamera) BindGroupLabel() string { return "camera" }
