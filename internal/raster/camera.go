package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera. A *Camera binds at engine.CameraSlot.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	FovY   float32 // degrees
	Near   float32
	Far    float32
}

// NewCamera returns a 45° camera at eye looking at target.
func NewCamera(eye, target mgl32.Vec3) *Camera {
	return &Camera{
		Eye:    eye,
		Target: target,
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   45,
		Near:   0.05,
		Far:    200,
	}
}

// BindGroupLabel implements engine.BindGroup.
func (c *Camera) BindGroupLabel() string { return "camera" }

// View returns the world-to-view matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

// Projection returns the perspective matrix for a viewport aspect ratio.
func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// ViewProj returns Projection × View.
func (c *Camera) ViewProj(aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.View())
}

// Frame points the camera at the centre of the box [lo, hi] from direction
// dir, far enough back for the box's bounding sphere to fit the vertical
// field of view.
func (c *Camera) Frame(lo, hi, dir mgl32.Vec3) {
	center := lo.Add(hi).Mul(0.5)
	radius := hi.Sub(lo).Len() / 2
	if radius < 1e-3 {
		radius = 1e-3
	}
	half := float64(mgl32.DegToRad(c.FovY)) / 2
	dist := radius / float32(math.Sin(half))

	if dir.Len() < 1e-6 {
		dir = mgl32.Vec3{0, 0, 1}
	}
	c.Target = center
	c.Eye = center.Add(dir.Normalize().Mul(dist))
	c.Far = dist + 2*radius + 1
}
