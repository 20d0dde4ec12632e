package raster

import (
	"fmt"
	"image"

	"cubevox/internal/cubes"
	"cubevox/internal/engine"
	"cubevox/internal/mathutil"

	"github.com/go-gl/mathgl/mgl32"
)

// Pass records draws straight into a FrameBuffer.
type Pass struct {
	dev *Device
	fb  *FrameBuffer

	pipeline *pipeline
	camera   *Camera
	texture  engine.TextureHandle
	lights   *LightConfig

	// Triangles counts triangles that reached the rasterizer.
	Triangles int
}

// NewPass starts a pass drawing into fb.
func (d *Device) NewPass(fb *FrameBuffer) *Pass {
	return &Pass{dev: d, fb: fb}
}

// SetPipeline implements engine.RenderPass.
func (p *Pass) SetPipeline(pl engine.Pipeline) {
	rp, ok := pl.(*pipeline)
	if !ok {
		panic(fmt.Sprintf("raster: pipeline %T was not created by this device", pl))
	}
	p.pipeline = rp
}

// SetBindGroup implements engine.RenderPass. The camera slot takes a
// *Camera, the texture slot an engine.TextureHandle and the light slot a
// *LightConfig.
func (p *Pass) SetBindGroup(slot int, g engine.BindGroup) {
	var ok bool
	switch slot {
	case engine.CameraSlot:
		p.camera, ok = g.(*Camera)
	case engine.TextureSlot:
		p.texture, ok = g.(engine.TextureHandle)
	case engine.LightSlot:
		p.lights, ok = g.(*LightConfig)
	}
	if !ok {
		panic(fmt.Sprintf("raster: cannot bind %T (%s) at slot %d", g, g.BindGroupLabel(), slot))
	}
}

// DrawMesh implements engine.RenderPass. The cube shader reads count
// CubeInstance records from instances; the terrain shader reads one
// TransformRaw.
func (p *Pass) DrawMesh(h engine.MeshHandle, instances engine.Buffer, count uint32) {
	if p.pipeline == nil {
		panic("raster: draw without a pipeline")
	}
	if p.camera == nil {
		panic("raster: draw without a camera")
	}
	if count == 0 {
		return
	}

	m := p.dev.mesh(h)
	data := asBuffer(instances).data
	aspect := float32(p.fb.Width) / float32(p.fb.Height)
	vp := p.camera.ViewProj(aspect)
	tex := p.dev.Texture(p.texture)

	switch p.pipeline.desc.Shader {
	case ShaderCubes:
		for _, in := range cubes.DecodeInstances(data, int(count)) {
			p.drawMesh(m, vp, in.Model, in.Normal, in.SplitUV, tex)
		}
	case ShaderTerrain:
		raw := engine.DecodeTransformRaw(data)
		p.drawMesh(m, vp, raw.Model, raw.Normal, nil, tex)
	}
}

// drawMesh transforms and rasterizes every triangle of m. uv, when set, maps
// mesh texture coordinates into the bound texture.
func (p *Pass) drawMesh(m *mesh, vp, model mgl32.Mat4, normal mgl32.Mat3, uv func(u, v float32) (float32, float32), tex *image.NRGBA) {
	mvp := vp.Mul4(model)
	lit := p.pipeline.desc.Lit
	lc := p.lights
	if lc == nil {
		lc = &p.dev.Lights
	}
	w := float32(p.fb.Width)
	h := float32(p.fb.Height)
	near := p.camera.Near

	for t := 0; t < m.triangles(); t++ {
		var tri [3]screenVertex
		var n mgl32.Vec3
		visible := true
		for k := 0; k < 3; k++ {
			v := m.vertex(t, k)
			clip := mvp.Mul4x1(mgl32.Vec4{v.Position[0], v.Position[1], v.Position[2], 1})
			// Triangles crossing the near plane are dropped, not clipped.
			if clip[3] < near {
				visible = false
				break
			}
			invW := 1 / clip[3]
			tu, tv := v.TexCoords[0], v.TexCoords[1]
			if uv != nil {
				tu, tv = uv(tu, tv)
			}
			tri[k] = screenVertex{
				X:    float64((clip[0]*invW + 1) * 0.5 * w),
				Y:    float64((1 - clip[1]*invW) * 0.5 * h),
				InvW: float64(invW),
				U:    float64(tu * invW),
				V:    float64(tv * invW),
			}
			n = n.Add(normal.Mul3x1(mgl32.Vec3(v.Normal)))
		}
		if !visible {
			continue
		}

		shade := 1.0
		if lit {
			shade = lc.ComputeShade(mathutil.FromVec3(n).Normalize())
		}
		if RasterizeTriangle(p.fb, tri, tex, p.dev.Filter, shade, lc, lit) {
			p.Triangles++
		}
	}
}
