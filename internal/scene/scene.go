// Package scene assembles drawable scenes for the batch renderer: cube
// models loaded from their descriptions, terrain chunks and the built-in
// demo content used when no assets are configured.
package scene

import (
	"cubevox/internal/engine"
	"cubevox/internal/raster"

	"github.com/go-gl/mathgl/mgl32"
)

// Scene is a set of draws that can be framed and animated.
type Scene interface {
	Name() string
	// Bounds returns the world-space box the camera should frame.
	Bounds() (lo, hi mgl32.Vec3)
	// Advance poses the scene for time t in seconds.
	Advance(t float64)
	Draw(pass engine.RenderPass, camera engine.BindGroup)
}

// ViewDir is the default camera direction: front, above and to the right.
var ViewDir = mgl32.Vec3{0.8, 0.7, 1.6}

// Camera returns a camera framing s from ViewDir. pad enlarges the framed
// box around its centre; 1 frames it tightly.
func Camera(s Scene, pad float32) *raster.Camera {
	lo, hi := s.Bounds()
	if pad > 0 && pad != 1 {
		center := lo.Add(hi).Mul(0.5)
		half := hi.Sub(lo).Mul(0.5 * pad)
		lo, hi = center.Sub(half), center.Add(half)
	}
	cam := raster.NewCamera(mgl32.Vec3{}, mgl32.Vec3{})
	cam.Frame(lo, hi, ViewDir)
	return cam
}
