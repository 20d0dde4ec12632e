package raster

import (
	"math"

	"cubevox/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters. Directions are in world
// space. A *LightConfig binds at engine.LightSlot.
type LightConfig struct {
	LightDir  mathutil.Vec3
	RimDir    mathutil.Vec3
	ViewDir   mathutil.Vec3
	HalfMain  mathutil.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient   float64
	Hemi      float64
	Direct    float64
	Rim       float64
	SpecInt   float64
	SpecPow   float64
	Exposure  float64
	SRGBGamma float64
	InvGamma  float64
}

// BindGroupLabel implements engine.BindGroup.
func (lc *LightConfig) BindGroupLabel() string { return "lights" }

// DefaultLightConfig returns a key light from the upper front right, a cool
// rim from behind and a soft hemisphere fill.
func DefaultLightConfig() LightConfig {
	lightDir := mathutil.Vec3{0.45, 0.8, 0.55}.Normalize()
	rimDir := mathutil.Vec3{-0.5, 0.4, -0.65}.Normalize()
	viewDir := mathutil.Vec3{0, -0.3, -1}.Normalize()

	halfMain := lightDir.Sub(viewDir).Normalize()

	return LightConfig{
		LightDir:  lightDir,
		RimDir:    rimDir,
		ViewDir:   viewDir,
		HalfMain:  halfMain,
		Ambient:   0.35,
		Hemi:      0.25,
		Direct:    0.70,
		Rim:       0.20,
		SpecInt:   0.10,
		SpecPow:   12.0,
		Exposure:  1.0,
		SRGBGamma: 2.2,
		InvGamma:  1.0 / 2.2,
	}
}

// ComputeShade returns the combined lighting scalar for a world-space normal.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float64 {
	// Lambertian, one-sided: cube faces always point outwards.
	ndlMain := math.Max(normal.Dot(lc.LightDir), 0)
	ndlRim := math.Max(normal.Dot(lc.RimDir), 0)

	// Hemisphere fill, brightest for faces pointing up
	hemi := normal[1]*0.5 + 0.5
	hemiLight := hemi * lc.Hemi

	// Blinn-Phong specular
	ndh := normal.Dot(lc.HalfMain)
	if ndh < 0 {
		ndh = 0
	}
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemiLight + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// shadeTexel applies shade in linear space with ACES tone mapping and
// re-encodes to sRGB.
func (lc *LightConfig) shadeTexel(cr, cg, cb uint8, shade float64) (uint8, uint8, uint8) {
	k := shade * lc.Exposure
	r := math.Pow(ACESTonemap(srgbToLinear[cr]*k), lc.InvGamma)
	g := math.Pow(ACESTonemap(srgbToLinear[cg]*k), lc.InvGamma)
	b := math.Pow(ACESTonemap(srgbToLinear[cb]*k), lc.InvGamma)
	return clamp255(r * 255), clamp255(g * 255), clamp255(b * 255)
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
