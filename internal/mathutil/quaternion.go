package mathutil

import "github.com/go-gl/mathgl/mgl32"

// EulerDegrees converts Euler XYZ angles in degrees to a unit quaternion.
// The result equals Rx * Ry * Rz, the convention used by the model files.
func EulerDegrees(x, y, z float32) mgl32.Quat {
	return mgl32.AnglesToQuat(mgl32.DegToRad(x), mgl32.DegToRad(y), mgl32.DegToRad(z), mgl32.XYZ)
}

// AxisDegrees returns a rotation of deg degrees about a single axis.
func AxisDegrees(deg float32, axis mgl32.Vec3) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(deg), axis.Normalize())
}
