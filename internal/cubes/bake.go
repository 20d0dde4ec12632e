package cubes

import (
	"cubevox/internal/mathutil"

	"github.com/go-gl/mathgl/mgl32"
)

// Bake flattens the hierarchy under bone into cube instances, placing it with
// root. The number and order of instances depend only on the hierarchy's
// structure: pre-order, a bone's parts first, then its children.
//
// sizeHint pre-sizes the result and may be zero or inaccurate.
func Bake(root mathutil.Transform, bone *Bone, texW, texH, pxPerUnit float32, sizeHint int) []CubeInstance {
	if sizeHint < 0 {
		sizeHint = 0
	}
	result := make([]CubeInstance, 0, sizeHint)
	if bone == nil {
		return result
	}
	b := baker{texW: texW, texH: texH, pxPerUnit: pxPerUnit, out: result}
	b.bone(root.Mat(), root.Rotation, bone)
	return b.out
}

type baker struct {
	texW, texH, pxPerUnit float32
	out                   []CubeInstance
}

func (b *baker) bone(parent mgl32.Mat4, parentRot mgl32.Quat, bone *Bone) {
	// The rotation is chained separately from the matrix: the matrix carries
	// non-uniform scale, which must not reach the normal matrix.
	matrix := parent.Mul4(bone.Transform.Mat())
	rotation := bone.Transform.Rotation.Mul(parentRot)

	for _, part := range bone.Parts {
		b.out = append(b.out, Generate(
			matrix.Mul4(part.Transform.Mat()),
			part.Transform.Rotation.Mul(rotation),
			part.Transform.Scale,
			part.TexOffset,
			b.texW, b.texH, b.pxPerUnit,
		))
	}

	for _, child := range bone.Children {
		b.bone(matrix, rotation, child)
	}
}
