package mathutil

import "github.com/go-gl/mathgl/mgl32"

// Transform is a position, rotation and component-wise scale.
// Children are expressed in their parent's local space.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// Identity returns the transform with no translation, rotation or scaling.
func Identity() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// At returns an identity transform translated to p.
func At(p mgl32.Vec3) Transform {
	t := Identity()
	t.Position = p
	return t
}

// Mat returns the homogeneous matrix T × R × S.
func (t Transform) Mat() mgl32.Mat4 {
	tr := mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	sc := mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return tr.Mul4(t.Rotation.Mat4()).Mul4(sc)
}

// NormalMat returns the rotation-only 3×3 matrix used for normals.
func (t Transform) NormalMat() mgl32.Mat3 {
	return t.Rotation.Mat4().Mat3()
}
