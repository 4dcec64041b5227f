package surface

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Mapping converts logical section/level coordinates into canvas coordinates.
// Section art is scaled to cover the canvas and the overhang is cropped
// symmetrically (letterbox crop), matching how the presentation layer fits
// level art to the screen.
type Mapping struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// FitMapping builds the cover-scale mapping from a srcW x srcH section onto
// a dstW x dstH canvas.
func FitMapping(srcW, srcH, dstW, dstH int) Mapping {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return Mapping{Scale: 1}
	}
	sx := float64(dstW) / float64(srcW)
	sy := float64(dstH) / float64(srcH)
	scale := sx
	if sy > sx {
		scale = sy
	}
	return Mapping{
		Scale:   scale,
		OffsetX: (float64(dstW) - float64(srcW)*scale) / 2,
		OffsetY: (float64(dstH) - float64(srcH)*scale) / 2,
	}
}

// ToCanvas maps a section-space point into canvas space.
func (m Mapping) ToCanvas(x, y float64) (float64, float64) {
	return x*m.Scale + m.OffsetX, y*m.Scale + m.OffsetY
}

// FromCanvas maps a canvas-space point back into section space.
func (m Mapping) FromCanvas(x, y float64) (float64, float64) {
	if m.Scale == 0 {
		return x, y
	}
	return (x - m.OffsetX) / m.Scale, (y - m.OffsetY) / m.Scale
}

// Rescale resamples the section mask into canvas space and snapshots it, so
// runtime queries index the mask directly in canvas pixels. Returns an empty
// (all non-solid) surface for degenerate input.
func Rescale(mask image.Image, canvasW, canvasH int) *Surface {
	if mask == nil || canvasW <= 0 || canvasH <= 0 {
		return &Surface{}
	}
	b := mask.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return &Surface{}
	}
	m := FitMapping(b.Dx(), b.Dy(), canvasW, canvasH)
	dst := image.NewRGBA(image.Rect(0, 0, canvasW, canvasH))
	// Cover-scaled destination rect; the scaler clips the overhang.
	dr := image.Rect(
		int(m.OffsetX),
		int(m.OffsetY),
		int(m.OffsetX+float64(b.Dx())*m.Scale),
		int(m.OffsetY+float64(b.Dy())*m.Scale),
	)
	xdraw.ApproxBiLinear.Scale(dst, dr, mask, b, xdraw.Src, nil)
	return FromImage(dst)
}
