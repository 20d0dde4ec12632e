package cubes

import "cubevox/internal/engine"

type fakeBuffer struct {
	label string
	data  []byte
}

func (b *fakeBuffer) Size() int { return len(b.data) }

type fakeDevice struct {
	texW, texH uint32
	buffers    []*fakeBuffer
	writes     int
	meshes     [][]engine.Vertex
	pipelines  []engine.PipelineDesc
}

func newFakeDevice(w, h uint32) *fakeDevice { return &fakeDevice{texW: w, texH: h} }

func (d *fakeDevice) LoadTexture(string) (engine.TextureHandle, error) { return 1, nil }

func (d *fakeDevice) TextureSize(engine.TextureHandle) (uint32, uint32) { return d.texW, d.texH }

func (d *fakeDevice) CreateBuffer(label string, contents []byte) engine.Buffer {
	b := &fakeBuffer{label: label, data: append([]byte(nil), contents...)}
	d.buffers = append(d.buffers, b)
	return b
}

func (d *fakeDevice) WriteBuffer(b engine.Buffer, offset int, data []byte) {
	d.writes++
	copy(b.(*fakeBuffer).data[offset:], data)
}

func (d *fakeDevice) CreateMesh(label string, vertices []engine.Vertex, indices []uint16) engine.MeshHandle {
	d.meshes = append(d.meshes, vertices)
	return engine.MeshHandle(len(d.meshes))
}

func (d *fakeDevice) CreatePipeline(desc engine.PipelineDesc) engine.Pipeline {
	d.pipelines = append(d.pipelines, desc)
	return fakePipeline(desc.Shader)
}

type fakePipeline string

func (p fakePipeline) Name() string { return string(p) }

type drawCall struct {
	mesh      engine.MeshHandle
	instances engine.Buffer
	count     uint32
}

type fakePass struct {
	pipeline engine.Pipeline
	groups   map[int]engine.BindGroup
	draws    []drawCall
}

func (p *fakePass) SetPipeline(pl engine.Pipeline) { p.pipeline = pl }

func (p *fakePass) SetBindGroup(slot int, g engine.BindGroup) {
	if p.groups == nil {
		p.groups = map[int]engine.BindGroup{}
	}
	p.groups[slot] = g
}

func (p *fakePass) DrawMesh(mesh engine.MeshHandle, instances engine.Buffer, count uint32) {
	p.draws = append(p.draws, drawCall{mesh, instances, count})
}

type fakeCamera struct{}

func (fakeCamera) BindGroupLabel() string { return "camera" }
