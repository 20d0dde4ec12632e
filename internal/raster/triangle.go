package raster

import (
	"image"
	"math"
)

// screenVertex is a projected vertex. U and V are pre-divided by w so they
// interpolate linearly in screen space.
type screenVertex struct {
	X, Y float64
	InvW float64
	U, V float64
}

// Color used for triangles drawn without a texture.
const (
	defaultR, defaultG, defaultB, defaultA = 160, 160, 170, 255
)

// RasterizeTriangle fills one triangle with perspective-correct texturing,
// a 1/w z-buffer and flat shading. Texels with alpha below 8 are discarded;
// partially transparent texels blend over what is already drawn. When lit is
// false the texel color is written unshaded. It reports whether the triangle
// had a non-empty screen footprint.
//
// The pixel loop does not allocate.
func RasterizeTriangle(fb *FrameBuffer, tri [3]screenVertex, tex *image.NRGBA, filter Filter, shade float64, lc *LightConfig, lit bool) bool {
	x0, y0 := tri[0].X, tri[0].Y
	x1, y1 := tri[1].X, tri[1].Y
	x2, y2 := tri[2].X, tri[2].Y

	// Bounding box
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return false
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return false
	}
	invDet := 1.0 / det

	// Precompute edge deltas
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	// Pixel loop
	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*tri[0].InvW + w1*tri[1].InvW + w2*tri[2].InvW
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			var cr, cg, cb, ca uint8
			if tex != nil {
				u := (w0*tri[0].U + w1*tri[1].U + w2*tri[2].U) / z
				v := (w0*tri[0].V + w1*tri[1].V + w2*tri[2].V) / z
				cr, cg, cb, ca = filter.sample(tex, u, v)
			} else {
				cr, cg, cb, ca = defaultR, defaultG, defaultB, defaultA
			}

			// Skip transparent texels
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			if lit {
				cr, cg, cb = lc.shadeTexel(cr, cg, cb, shade)
			}

			pxIdx := zIdx * 4
			if ca == 255 {
				fb.Color[pxIdx] = cr
				fb.Color[pxIdx+1] = cg
				fb.Color[pxIdx+2] = cb
				fb.Color[pxIdx+3] = 255
				continue
			}
			blend(fb.Color[pxIdx:pxIdx+4:pxIdx+4], cr, cg, cb, ca)
		}
	}
	return true
}

// blend composites a straight-alpha color over dst.
func blend(dst []uint8, r, g, b, a uint8) {
	sa := float64(a) / 255
	da := float64(dst[3]) / 255
	oa := sa + da*(1-sa)
	if oa <= 0 {
		return
	}
	mix := func(s, d uint8) uint8 {
		return clamp255((float64(s)*sa + float64(d)*da*(1-sa)) / oa)
	}
	dst[0] = mix(r, dst[0])
	dst[1] = mix(g, dst[1])
	dst[2] = mix(b, dst[2])
	dst[3] = clamp255(oa * 255)
}
