package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cubevox/internal/engine"
	"cubevox/internal/raster"
	"cubevox/internal/terrain"

	"github.com/go-gl/mathgl/mgl32"
)

// TerrainScene draws a set of chunks sharing one chunk engine.
type TerrainScene struct {
	name   string
	dev    engine.Device
	engine *terrain.ChunkEngine
	chunks []*terrain.Chunk
}

// NewTerrainScene generates any missing chunk meshes and returns the scene.
func NewTerrainScene(name string, dev engine.Device, ce *terrain.ChunkEngine, chunks ...*terrain.Chunk) *TerrainScene {
	for _, c := range chunks {
		c.EnsureMesh(dev, ce)
	}
	return &TerrainScene{name: name, dev: dev, engine: ce, chunks: chunks}
}

// LoadTerrain builds the terrain scene for the registry at registryPath,
// laid out with FillDemo. A missing registry file falls back to the demo
// registry and atlas.
func LoadTerrain(dev *raster.Device, registryPath string) (*TerrainScene, error) {
	var (
		reg   *terrain.Registry
		atlas engine.TextureHandle
	)
	if _, err := os.Stat(registryPath); registryPath == "" || errors.Is(err, os.ErrNotExist) {
		reg = DemoRegistry()
		atlas = dev.AddTexture(DemoAtlas())
	} else {
		f, err := terrain.ReadRegistryFile(registryPath)
		if err != nil {
			return nil, err
		}
		atlasPath := f.Atlas
		if !filepath.IsAbs(atlasPath) {
			atlasPath = filepath.Join(filepath.Dir(registryPath), atlasPath)
		}
		if atlas, err = dev.LoadTexture(atlasPath); err != nil {
			return nil, fmt.Errorf("scene: atlas for %s: %w", registryPath, err)
		}
		w, h := dev.TextureSize(atlas)
		if reg, err = f.Registry(crossRenderers(terrain.AtlasSize{W: w, H: h}, &f)); err != nil {
			return nil, fmt.Errorf("scene: %s: %w", registryPath, err)
		}
	}

	ce := terrain.NewChunkEngine(dev, reg, atlas)
	chunk := ce.NewChunk(0)
	if err := FillDemo(chunk); err != nil {
		return nil, fmt.Errorf("scene: fill terrain: %w", err)
	}
	return NewTerrainScene("terrain", dev, ce, chunk), nil
}

// crossRenderers resolves blocks naming the "cross" custom renderer. Each
// takes its tile from the first entry of its faces and is renamed to a
// per-tile key in f.
func crossRenderers(atlas terrain.AtlasSize, f *terrain.RegistryFile) map[string]terrain.CustomRenderer {
	out := make(map[string]terrain.CustomRenderer)
	for i := range f.Blocks {
		b := &f.Blocks[i]
		if b.Custom != "cross" || len(b.Faces) == 0 {
			continue
		}
		key := fmt.Sprintf("cross/%d", b.Faces[0])
		out[key] = terrain.Cross(atlas, b.Faces[0])
		b.Custom = key
	}
	return out
}

// Name implements Scene.
func (s *TerrainScene) Name() string { return s.name }

// Chunks returns the scene's chunks.
func (s *TerrainScene) Chunks() []*terrain.Chunk { return s.chunks }

// Bounds implements Scene: the box around all non-air blocks.
func (s *TerrainScene) Bounds() (lo, hi mgl32.Vec3) {
	first := true
	for _, c := range s.chunks {
		cl, ch, ok := c.Bounds()
		if !ok {
			continue
		}
		m := c.Transform.Mat()
		for i := 0; i < 8; i++ {
			corner := mgl32.Vec4{float32(cl.X), float32(cl.Y), float32(cl.Z), 1}
			if i&1 != 0 {
				corner[0] = float32(ch.X)
			}
			if i&2 != 0 {
				corner[1] = float32(ch.Y)
			}
			if i&4 != 0 {
				corner[2] = float32(ch.Z)
			}
			p := m.Mul4x1(corner).Vec3()
			if first {
				lo, hi, first = p, p, false
				continue
			}
			for k := 0; k < 3; k++ {
				lo[k] = min(lo[k], p[k])
				hi[k] = max(hi[k], p[k])
			}
		}
	}
	return lo, hi
}

// Advance implements Scene. Terrain is static.
func (s *TerrainScene) Advance(float64) {}

// Draw implements Scene.
func (s *TerrainScene) Draw(pass engine.RenderPass, camera engine.BindGroup) {
	s.engine.Prepare(pass, camera)
	for _, c := range s.chunks {
		s.engine.DrawChunk(s.dev, pass, c)
	}
}
