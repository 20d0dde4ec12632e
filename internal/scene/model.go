package scene

import (
	"path/filepath"
	"strings"

	"cubevox/internal/cubes"
	"cubevox/internal/engine"
	"cubevox/internal/modelfile"
	"cubevox/internal/texture"

	"github.com/go-gl/mathgl/mgl32"
)

// ModelScene draws one cube model, optionally animated.
type ModelScene struct {
	name   string
	dev    engine.Device
	engine *cubes.CubeEngine
	model  *cubes.AnimatedModel
}

// NewModelScene wraps model. A nil controller leaves it static.
func NewModelScene(name string, dev engine.Device, ce *cubes.CubeEngine, model *cubes.Model, controller cubes.AnimController) *ModelScene {
	return &ModelScene{
		name:   name,
		dev:    dev,
		engine: ce,
		model:  cubes.NewAnimatedModel(model, controller),
	}
}

// LoadModel reads a model description and bakes it on dev. idx may be nil;
// see modelfile.File.Model.
func LoadModel(dev engine.Device, ce *cubes.CubeEngine, path string, idx *texture.Index, controller cubes.AnimController) (*ModelScene, error) {
	f, err := modelfile.Load(path)
	if err != nil {
		return nil, err
	}
	m, err := f.Model(dev, idx)
	if err != nil {
		return nil, err
	}
	name := f.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return NewModelScene(name, dev, ce, m, controller), nil
}

// Name returns the model name.
func (s *ModelScene) Name() string { return s.name }

// Model returns the scene's model.
func (s *ModelScene) Model() *cubes.Model { return s.model.Model }

// Bounds implements Scene.
func (s *ModelScene) Bounds() (lo, hi mgl32.Vec3) { return s.model.Model.Bounds() }

// Advance implements Scene. Static models ignore it.
func (s *ModelScene) Advance(t float64) {
	if s.model.Controller != nil {
		s.model.Update(s.dev, t)
	}
}

// Draw implements Scene.
func (s *ModelScene) Draw(pass engine.RenderPass, camera engine.BindGroup) {
	s.engine.Prepare(pass, camera)
	s.engine.DrawAnimated(pass, s.model)
}

// DemoModelFile describes a humanoid for the 64×64 DemoSkin. Its limbs carry
// the labels SwingController animates. Positions and sizes are in skin
// pixels.
func DemoModelFile() modelfile.File {
	limb := func(label string, x, y float32, tu uint32) modelfile.BoneFile {
		segment := modelfile.PartFile{Position: []float32{0, -3, 0}, Scale: []float32{4, 6, 4}, TexOffset: []uint32{tu, 16}}
		return modelfile.BoneFile{
			Name:     label,
			Position: []float32{x, y, 0},
			Parts:    []modelfile.PartFile{segment},
			Bones: []modelfile.BoneFile{{
				Name:     label + " lower",
				Position: []float32{0, -6, 0},
				Parts:    []modelfile.PartFile{segment},
			}},
		}
	}

	return modelfile.File{
		Name:    "demo",
		Texture: "demo_skin.png",
		Root: modelfile.BoneFile{
			Name:  "body",
			Parts: []modelfile.PartFile{{Position: []float32{0, 18, 0}, Scale: []float32{8, 12, 4}, TexOffset: []uint32{16, 16}}},
			Bones: []modelfile.BoneFile{
				{
					Name:     "head",
					Position: []float32{0, 24, 0},
					Parts:    []modelfile.PartFile{{Position: []float32{0, 4, 0}, Scale: []float32{8, 8, 8}, TexOffset: []uint32{0, 0}}},
				},
				limb("left leg", -2, 12, 0),
				limb("right leg", 2, 12, 0),
				limb("left arm", -6, 24, 40),
				limb("right arm", 6, 24, 40),
			},
		},
	}
}

// DemoHumanoid returns the bone tree of DemoModelFile.
func DemoHumanoid() *cubes.Bone {
	f := DemoModelFile()
	root, err := f.Bone(64, 64)
	if err != nil {
		panic(err)
	}
	return root
}
