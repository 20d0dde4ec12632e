package terrain

import (
	"errors"
	"testing"

	"cubevox/internal/engine"
)

const (
	stone Material = 2
	glass Material = 3
	torch Material = 4
	chest Material = 5
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry("blocks.png", []BlockDef{
		{Name: "air", Transparent: true, Renderer: NoneRenderer{}},
		{Name: "boundary", Transparent: true, Renderer: NoneRenderer{}},
		{Name: "stone", Renderer: StandardRenderer{0, 1, 2, 3, 4, 5}},
		{Name: "glass", Transparent: true, Renderer: Uniform(6)},
		{Name: "torch", Transparent: true, Renderer: CustomRenderer(func(Neighbors) []engine.Vertex {
			f := FaceVertices(North)
			return f[:3]
		})},
		{Name: "chest", Renderer: BlockEntityRenderer{}},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

var atlas256 = AtlasSize{W: 256, H: 256}

func mustSet(t *testing.T, c *Chunk, p Pos, m Material) {
	t.Helper()
	if err := c.Set(p, m, 0); err != nil {
		t.Fatalf("Set(%v, %d): %v", p, m, err)
	}
}

func TestSingleBlockEmitsSixFaces(t *testing.T) {
	c := NewChunk(0, testRegistry(t))
	mustSet(t, c, Pos{0, 0, 0}, stone)

	v := c.Vertices(atlas256)
	if len(v) != 36 {
		t.Fatalf("vertices = %d, want 36", len(v))
	}
	for i, vx := range v {
		for k := 0; k < 3; k++ {
			if vx.Position[k] < 0 || vx.Position[k] > 1 {
				t.Fatalf("vertex %d position %v outside the block at origin", i, vx.Position)
			}
		}
	}
}

func TestEmptyChunkEmitsNothing(t *testing.T) {
	c := NewChunk(0, testRegistry(t))
	if v := c.Vertices(atlas256); len(v) != 0 {
		t.Errorf("air chunk produced %d vertices", len(v))
	}
}

func TestAdjacentOpaqueBlocksHideSharedFace(t *testing.T) {
	c := NewChunk(0, testRegistry(t))
	mustSet(t, c, Pos{4, 4, 4}, stone)
	mustSet(t, c, Pos{5, 4, 4}, stone)

	v := c.Vertices(atlas256)
	if len(v) != 10*6 {
		t.Fatalf("vertices = %d, want %d", len(v), 10*6)
	}
	// No face may lie on the shared plane x = 5.
	for i := 0; i < len(v); i += 6 {
		onPlane := true
		for _, vx := range v[i : i+6] {
			if vx.Position[0] != 5 {
				onPlane = false
			}
		}
		if onPlane {
			t.Errorf("face %d lies on the shared plane x=5 with normal %v", i/6, v[i].Normal)
		}
	}
}

func TestOwnTransparencyDoesNotCull(t *testing.T) {
	c := NewChunk(0, testRegistry(t))
	mustSet(t, c, Pos{4, 4, 4}, glass)
	if v := c.Vertices(atlas256); len(v) != 36 {
		t.Errorf("glass in air: vertices = %d, want 36", len(v))
	}

	// Glass enclosed by stone draws nothing; the stone draws its outer
	// faces plus the faces towards the glass.
	for _, p := range []Pos{{5, 4, 4}, {3, 4, 4}, {4, 5, 4}, {4, 3, 4}, {4, 4, 5}, {4, 4, 3}} {
		mustSet(t, c, p, stone)
	}
	n := c.Neighbors(Pos{4, 4, 4})
	if got := RenderBlock(c.registry.def(glass), Pos{4, 4, 4}, atlas256, n); len(got) != 0 {
		t.Errorf("enclosed glass emitted %d vertices, want 0", len(got))
	}
	if v := c.Vertices(atlas256); len(v) != 6*6*6 {
		t.Errorf("vertices = %d, want %d", len(v), 6*6*6)
	}
}

func TestBoundaryNeighborIsMaterialOne(t *testing.T) {
	c := NewChunk(0, testRegistry(t))
	n := c.Neighbors(Pos{0, 7, 7})
	if n.West != c.registry.def(Boundary) {
		t.Errorf("west of x=0 = %+v, want the boundary definition", n.West)
	}
	if n.East != c.registry.def(Air) {
		t.Errorf("east of x=0 = %+v, want air", n.East)
	}
	if c.neighbor(Pos{15, 15, 15}, Above) != Boundary || c.neighbor(Pos{15, 15, 15}, North) != Boundary {
		t.Error("top corner neighbors should read as boundary")
	}
}

func TestOpaqueBoundaryHidesEdgeFaces(t *testing.T) {
	r, err := NewRegistry("a.png", []BlockDef{
		{Name: "air", Transparent: true},
		{Name: "bedrock", Renderer: Uniform(0)},
	})
	if err != nil {
		t.Fatal(err)
	}
	c := NewChunk(0, r)
	mustSet(t, c, Pos{0, 0, 0}, Boundary)
	// West, south and below lie outside the chunk and are opaque.
	if v := c.Vertices(atlas256); len(v) != 3*6 {
		t.Errorf("vertices = %d, want 18", len(v))
	}
}

func TestVerticesTranslatedByGridPosition(t *testing.T) {
	c := NewChunk(0, testRegistry(t))
	mustSet(t, c, Pos{3, 9, 15}, stone)
	for _, v := range c.Vertices(atlas256) {
		if v.Position[0] < 3 || v.Position[0] > 4 ||
			v.Position[1] < 9 || v.Position[1] > 10 ||
			v.Position[2] < 15 || v.Position[2] > 16 {
			t.Fatalf("vertex %v outside block (3,9,15)", v.Position)
		}
	}
}

func TestStandardFacesUseTheirTiles(t *testing.T) {
	c := NewChunk(0, testRegistry(t))
	mustSet(t, c, Pos{8, 8, 8}, stone)
	v := c.Vertices(atlas256)
	// Emission order is above, below, north, south, east, west: tiles 0..5.
	for face := 0; face < 6; face++ {
		lo := float32(face) * 0.0625
		for _, vx := range v[face*6 : face*6+6] {
			if u := vx.TexCoords[0]; u < lo || u > lo+0.0625 {
				t.Errorf("face %d u = %v, want within [%v, %v]", face, u, lo, lo+0.0625)
			}
		}
	}
}

func TestCustomAndEntityRenderers(t *testing.T) {
	c := NewChunk(0, testRegistry(t))
	mustSet(t, c, Pos{2, 2, 2}, torch)
	mustSet(t, c, Pos{10, 10, 10}, chest)
	v := c.Vertices(atlas256)
	// The chest is opaque but block-entity: no geometry. The torch emits 3.
	if len(v) != 3 {
		t.Fatalf("vertices = %d, want 3", len(v))
	}
	for _, vx := range v {
		if vx.Position[2] != 3 {
			t.Errorf("custom vertex %v not translated to z=3", vx.Position)
		}
	}
}

func TestSetGetBounds(t *testing.T) {
	c := NewChunk(0, testRegistry(t))
	for _, p := range []Pos{{-1, 0, 0}, {16, 0, 0}, {0, 16, 0}, {0, 0, -1}} {
		if err := c.Set(p, stone, 0); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Set(%v) error = %v, want ErrOutOfBounds", p, err)
		}
		if _, err := c.Get(p); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Get(%v) error = %v, want ErrOutOfBounds", p, err)
		}
	}
	if err := c.Set(Pos{1, 1, 1}, 99, 0); !errors.Is(err, ErrUnknownMaterial) {
		t.Errorf("Set unknown material error = %v, want ErrUnknownMaterial", err)
	}
	if err := c.Set(Pos{1, 2, 3}, glass, 42); err != nil {
		t.Fatal(err)
	}
	got, err := c.Get(Pos{1, 2, 3})
	if err != nil || got != (Cell{Material: glass, Metadata: 42}) {
		t.Errorf("Get = %+v, %v; want glass/42", got, err)
	}
}

func TestFill(t *testing.T) {
	c := NewChunk(0, testRegistry(t))
	err := c.Fill(func(p Pos) (Material, uint16, bool) {
		return stone, 0, p.Y == 0
	})
	if err != nil {
		t.Fatal(err)
	}
	// A 16×16 slab: top and bottom faces of every block, plus the rim.
	want := (16*16*2 + 4*16) * 6
	if v := c.Vertices(atlas256); len(v) != want {
		t.Errorf("vertices = %d, want %d", len(v), want)
	}
}

func TestGenerateMeshAndDraw(t *testing.T) {
	dev := &fakeDevice{atlas: atlas256}
	ce := NewChunkEngine(dev, testRegistry(t), 7)
	c := ce.NewChunk(3)
	mustSet(t, c, Pos{0, 0, 0}, stone)

	pass := &fakePass{}
	ce.Prepare(pass, fakeCamera{})
	func() {
		defer func() {
			if recover() == nil {
				t.Error("drawing before GenerateMesh did not panic")
			}
		}()
		ce.DrawChunk(dev, pass, c)
	}()

	c.GenerateMesh(dev, ce)
	if len(dev.meshes) != 1 || len(dev.meshes[0]) != 36 || c.VertexCount() != 36 {
		t.Fatalf("mesh not generated: %d meshes", len(dev.meshes))
	}
	ce.DrawChunk(dev, pass, c)
	if pass.draws != 1 || pass.count != 1 {
		t.Errorf("draws = %d count = %d, want 1/1", pass.draws, pass.count)
	}
	if pass.groups[engine.TextureSlot] != ce.Atlas() {
		t.Errorf("texture slot = %v, want atlas", pass.groups[engine.TextureSlot])
	}
	// The transform buffer is created once, then rewritten.
	if len(dev.buffers) != 1 || dev.writes != 1 {
		t.Errorf("buffers = %d writes = %d, want 1/1", len(dev.buffers), dev.writes)
	}

	// Regeneration replaces the mesh wholesale.
	mustSet(t, c, Pos{1, 0, 0}, stone)
	c.GenerateMesh(dev, ce)
	if m, _ := c.Mesh(); m != 2 || len(dev.meshes[1]) != 60 {
		t.Errorf("regenerated mesh = %d with %d vertices, want 2 with 60", m, len(dev.meshes[1]))
	}
	if h := c.EnsureMesh(dev, ce); h != 2 || len(dev.meshes) != 2 {
		t.Error("EnsureMesh regenerated an existing mesh")
	}
}

func TestCrossRenderer(t *testing.T) {
	atlas := AtlasSize{W: 64, H: 16}
	cross := Cross(atlas, 3)
	v := cross(Neighbors{})
	if len(v) != 12 {
		t.Fatalf("vertices = %d, want 12", len(v))
	}
	for i, vx := range v {
		if u := vx.TexCoords[0]; u < 0.75 || u > 1 {
			t.Errorf("vertex %d u = %v, want within tile 3 [0.75, 1]", i, u)
		}
	}

	// Each call returns its own copy.
	v[0].Position[0] = 42
	if cross(Neighbors{})[0].Position[0] == 42 {
		t.Error("Cross output aliases shared geometry")
	}
}

func TestChunkBounds(t *testing.T) {
	c := NewChunk(0, testRegistry(t))
	if _, _, ok := c.Bounds(); ok {
		t.Error("empty chunk reported bounds")
	}
	mustSet(t, c, Pos{2, 0, 5}, stone)
	mustSet(t, c, Pos{4, 3, 1}, glass)

	lo, hi, ok := c.Bounds()
	if !ok || lo != (Pos{2, 0, 1}) || hi != (Pos{5, 4, 6}) {
		t.Errorf("Bounds() = %v %v %v", lo, hi, ok)
	}
}

func TestGenerateMeshUnknownAtlasPanics(t *testing.T) {
	dev := &fakeDevice{}
	ce := NewChunkEngine(dev, testRegistry(t), 9)
	c := ce.NewChunk(0)
	mustSet(t, c, Pos{0, 0, 0}, stone)

	defer func() {
		if r := recover(); r == nil {
			t.Error("meshing against a zero-size atlas did not panic")
		}
		if len(dev.meshes) != 0 {
			t.Errorf("meshes = %d, want none created", len(dev.meshes))
		}
	}()
	c.GenerateMesh(dev, ce)
}

func TestNewChunkNilRegistryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewChunk(nil registry) did not panic")
		}
	}()
	NewChunk(0, nil)
}
