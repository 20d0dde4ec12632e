package cubes

import (
	"math"

	"cubevox/internal/engine"
	"cubevox/internal/mathutil"

	"github.com/go-gl/mathgl/mgl32"
)

// Model is a cube model: a placed bone hierarchy sharing one skin texture.
type Model struct {
	Transform mathutil.Transform
	Texture   engine.TextureHandle
	Root      *Bone

	data *InstanceBuffer
}

// NewModel bakes root and uploads its instances. sizeHint is the expected
// part count; zero or a wrong guess only costs an extra allocation.
func NewModel(dev engine.Device, transform mathutil.Transform, texture engine.TextureHandle, root *Bone, sizeHint int) *Model {
	m := &Model{Transform: transform, Texture: texture, Root: root}
	m.data = NewInstanceBuffer(dev, m.bake(dev, sizeHint))
	return m
}

// Update re-bakes the model after its transform or any bone or part
// transform changed. Structural changes (adding or removing parts) are not
// allowed and panic.
func (m *Model) Update(dev engine.Device) {
	m.data.Update(dev, m.bake(dev, m.data.Len()))
}

// Clone returns an independent copy of the model with its own buffer.
func (m *Model) Clone(dev engine.Device) *Model {
	c := &Model{Transform: m.Transform, Texture: m.Texture, Root: m.Root.Clone()}
	c.data = NewInstanceBuffer(dev, c.bake(dev, m.data.Len()))
	return c
}

// Instances returns the model's instance buffer.
func (m *Model) Instances() *InstanceBuffer { return m.data }

func (m *Model) bake(dev engine.Device, sizeHint int) []CubeInstance {
	w, h := dev.TextureSize(m.Texture)
	return Bake(m.Transform, m.Root, float32(w), float32(h), PxPerUnit, sizeHint)
}

// Bounds returns the world-space box enclosing every part of the model in
// its current pose. A model without parts returns its position twice.
func (m *Model) Bounds() (lo, hi mgl32.Vec3) {
	return InstanceBounds(Bake(m.Transform, m.Root, 1, 1, PxPerUnit, m.data.Len()), m.Transform.Position)
}

// InstanceBounds returns the box enclosing the unit cubes of instances, or
// empty twice when there are none.
func InstanceBounds(instances []CubeInstance, empty mgl32.Vec3) (lo, hi mgl32.Vec3) {
	if len(instances) == 0 {
		return empty, empty
	}
	inf := float32(math.Inf(1))
	lo = mgl32.Vec3{inf, inf, inf}
	hi = lo.Mul(-1)
	for _, in := range instances {
		for i := 0; i < 8; i++ {
			corner := mgl32.Vec4{-0.5, -0.5, -0.5, 1}
			for k := 0; k < 3; k++ {
				if i&(1<<k) != 0 {
					corner[k] = 0.5
				}
			}
			p := in.Model.Mul4x1(corner).Vec3()
			for k := 0; k < 3; k++ {
				lo[k] = min(lo[k], p[k])
				hi[k] = max(hi[k], p[k])
			}
		}
	}
	return lo, hi
}
