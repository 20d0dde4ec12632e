// Package raster is a software host engine for the cube and terrain
// pipelines. Device implements engine.Device and Pass implements
// engine.RenderPass; triangles are rasterized on the CPU into a FrameBuffer
// with a z-buffer, per-face lighting and perspective-correct texturing.
//
// A Device and everything created through it belong to one goroutine.
// Run several devices in parallel to render several scenes at once.
package raster

import (
	"fmt"
	"image"
	"path/filepath"

	"cubevox/internal/engine"
	"cubevox/internal/texture"
)

// Shader names understood by CreatePipeline.
const (
	ShaderCubes   = "cubes"
	ShaderTerrain = "terrain"
)

// Device owns textures, buffers, meshes and pipelines.
type Device struct {
	Filter Filter
	Lights LightConfig // used when no lights are bound

	cache     *texture.Cache
	textures  []*image.NRGBA // handle-1 → image
	texByPath map[string]engine.TextureHandle
	meshes    []mesh // handle-1 → mesh
	buffers   int
}

type mesh struct {
	label    string
	vertices []engine.Vertex
	indices  []uint16
}

// triangles returns the number of triangles in the mesh.
func (m *mesh) triangles() int {
	if m.indices != nil {
		return len(m.indices) / 3
	}
	return len(m.vertices) / 3
}

// vertex returns corner k of triangle t.
func (m *mesh) vertex(t, k int) engine.Vertex {
	i := t*3 + k
	if m.indices != nil {
		return m.vertices[m.indices[i]]
	}
	return m.vertices[i]
}

// Buffer is a CPU byte buffer.
type Buffer struct {
	label string
	data  []byte
}

// Size implements engine.Buffer.
func (b *Buffer) Size() int { return len(b.data) }

// Bytes returns the buffer contents.
func (b *Buffer) Bytes() []byte { return b.data }

type pipeline struct {
	desc engine.PipelineDesc
}

func (p *pipeline) Name() string { return p.desc.Label }

// NewDevice returns a device that decodes textures through cache. A nil
// cache gets a private one.
func NewDevice(cache *texture.Cache) *Device {
	if cache == nil {
		cache = texture.NewCache()
	}
	return &Device{
		Filter:    Nearest,
		Lights:    DefaultLightConfig(),
		cache:     cache,
		texByPath: make(map[string]engine.TextureHandle),
	}
}

// LoadTexture implements engine.Device. Loading the same path twice returns
// the same handle.
func (d *Device) LoadTexture(path string) (engine.TextureHandle, error) {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	if h, ok := d.texByPath[key]; ok {
		return h, nil
	}

	img, err := d.cache.Load(key)
	if err != nil {
		return 0, fmt.Errorf("raster: load texture %s: %w", path, err)
	}
	h := d.AddTexture(img)
	d.texByPath[key] = h
	return h, nil
}

// AddTexture registers an in-memory image and returns its handle.
func (d *Device) AddTexture(img *image.NRGBA) engine.TextureHandle {
	d.textures = append(d.textures, img)
	return engine.TextureHandle(len(d.textures))
}

// Texture returns the image behind h, or nil for an unknown handle.
func (d *Device) Texture(h engine.TextureHandle) *image.NRGBA {
	if h == 0 || int(h) > len(d.textures) {
		return nil
	}
	return d.textures[h-1]
}

// TextureSize implements engine.Device. Unknown handles are 0×0.
func (d *Device) TextureSize(h engine.TextureHandle) (uint32, uint32) {
	img := d.Texture(h)
	if img == nil {
		return 0, 0
	}
	return uint32(img.Rect.Dx()), uint32(img.Rect.Dy())
}

// CreateBuffer implements engine.Device.
func (d *Device) CreateBuffer(label string, contents []byte) engine.Buffer {
	d.buffers++
	return &Buffer{label: label, data: append([]byte(nil), contents...)}
}

// WriteBuffer implements engine.Device. Writes past the end of the buffer
// panic, as they would on a GPU queue.
func (d *Device) WriteBuffer(b engine.Buffer, offset int, data []byte) {
	buf := asBuffer(b)
	if offset < 0 || offset+len(data) > len(buf.data) {
		panic(fmt.Sprintf("raster: write of %d bytes at %d overflows buffer %q of %d bytes", len(data), offset, buf.label, len(buf.data)))
	}
	copy(buf.data[offset:], data)
}

// CreateMesh implements engine.Device.
func (d *Device) CreateMesh(label string, vertices []engine.Vertex, indices []uint16) engine.MeshHandle {
	m := mesh{label: label, vertices: append([]engine.Vertex(nil), vertices...)}
	if indices != nil {
		m.indices = append([]uint16(nil), indices...)
	}
	d.meshes = append(d.meshes, m)
	engine.Logger().Debug("raster: mesh created", "label", label, "vertices", len(vertices), "indices", len(indices))
	return engine.MeshHandle(len(d.meshes))
}

func (d *Device) mesh(h engine.MeshHandle) *mesh {
	if h == 0 || int(h) > len(d.meshes) {
		panic(fmt.Sprintf("raster: unknown mesh %d", h))
	}
	return &d.meshes[h-1]
}

// CreatePipeline implements engine.Device. It panics on a shader it does not
// implement.
func (d *Device) CreatePipeline(desc engine.PipelineDesc) engine.Pipeline {
	switch desc.Shader {
	case ShaderCubes, ShaderTerrain:
	default:
		panic(fmt.Sprintf("raster: unknown shader %q for pipeline %q", desc.Shader, desc.Label))
	}
	engine.Logger().Debug("raster: pipeline created", "label", desc.Label, "shader", desc.Shader)
	return &pipeline{desc: desc}
}

// Stats reports how many resources the device holds.
func (d *Device) Stats() (textures, buffers, meshes int) {
	return len(d.textures), d.buffers, len(d.meshes)
}

func asBuffer(b engine.Buffer) *Buffer {
	buf, ok := b.(*Buffer)
	if !ok {
		panic(fmt.Sprintf("raster: buffer %T was not created by this device", b))
	}
	return buf
}
