package raster

import (
	"image"
	"image/color"
)

// Render draws one frame of w×h pixels. draw issues the frame's draw calls
// on the pass; the framebuffer starts filled with bg.
func (d *Device) Render(w, h int, bg color.NRGBA, draw func(*Pass)) *image.NRGBA {
	fb := NewFrameBuffer(w, h)
	if bg.A != 0 {
		fb.Fill(bg)
	}
	pass := d.NewPass(fb)
	draw(pass)
	return fb.Image()
}
