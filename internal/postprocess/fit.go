package postprocess

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// CropAndFit crops img to the bounding box of its non-transparent pixels and
// centers it on a transparent w×h canvas, scaled so its larger side fills
// fillRatio of the canvas. A fully transparent image yields an empty canvas.
func CropAndFit(img *image.NRGBA, w, h int, fillRatio float64) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	box, ok := OpaqueBounds(img)
	if !ok {
		return canvas
	}

	scaleF := math.Min(float64(w)*fillRatio/float64(box.Dx()), float64(h)*fillRatio/float64(box.Dy()))
	newW := max(int(float64(box.Dx())*scaleF+0.5), 1)
	newH := max(int(float64(box.Dy())*scaleF+0.5), 1)

	offX := (w - newW) / 2
	offY := (h - newH) / 2
	dst := image.Rect(offX, offY, offX+newW, offY+newH)
	draw.CatmullRom.Scale(canvas, dst, premultiply(img), box, draw.Src, nil)
	return canvas
}

// OpaqueBounds returns the bounding box of pixels with non-zero alpha.
func OpaqueBounds(img *image.NRGBA) (image.Rectangle, bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Pix[img.PixOffset(x, y)+3] == 0 {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}
