// Package surface answers solidity queries against a bitmap opacity mask.
// Standable terrain is wherever the level art is more than half opaque;
// color never matters. All queries clamp into mask bounds and fail closed,
// so a missing or empty mask reads as "nothing is solid" rather than a
// crash in the tick loop.
package surface

import (
	"image"
)

// solidAlpha is the opacity threshold: alpha above 50% is solid ground.
const solidAlpha = 128

// Surface is an immutable snapshot of a mask's alpha plane. It keeps no
// reference to the source image, so level streaming can drop decoded art
// after construction.
type Surface struct {
	alpha  []uint8
	width  int
	height int
}

// FromImage snapshots the alpha plane of img. A nil or zero-sized image
// yields a Surface that answers "not solid" everywhere.
func FromImage(img image.Image) *Surface {
	if img == nil {
		return &Surface{}
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return &Surface{}
	}
	s := &Surface{
		alpha:  make([]uint8, w*h),
		width:  w,
		height: h,
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			s.alpha[y*w+x] = uint8(a >> 8)
		}
	}
	return s
}

// FromAlpha wraps a raw alpha grid. Used by tests and procedural masks.
func FromAlpha(w, h int, alpha []uint8) *Surface {
	if w <= 0 || h <= 0 || len(alpha) != w*h {
		return &Surface{}
	}
	return &Surface{alpha: alpha, width: w, height: h}
}

// Size returns the mask dimensions in canvas pixels.
func (s *Surface) Size() (w, h int) {
	if s == nil {
		return 0, 0
	}
	return s.width, s.height
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsSolid reports whether the canvas point (x, y) lies on opaque terrain.
// Coordinates are clamped into mask bounds rather than treated as empty, to
// avoid false negatives at image edges.
func (s *Surface) IsSolid(x, y float64) bool {
	if s == nil || len(s.alpha) == 0 {
		return false
	}
	xi := clampInt(int(x), 0, s.width-1)
	yi := clampInt(int(y), 0, s.height-1)
	return s.alpha[yi*s.width+xi] >= solidAlpha
}

// FirstSolidBelow scans rows between yFrom and yTo (canvas space, top-down)
// at xCenter and returns the first solid row. The scan is inclusive of both
// endpoints; yFrom above the mask starts at row 0.
func (s *Surface) FirstSolidBelow(xCenter, yFrom, yTo float64) (float64, bool) {
	if s == nil || len(s.alpha) == 0 || yTo < yFrom {
		return 0, false
	}
	xi := clampInt(int(xCenter), 0, s.width-1)
	y0 := clampInt(int(yFrom), 0, s.height-1)
	y1 := clampInt(int(yTo), 0, s.height-1)
	for y := y0; y <= y1; y++ {
		if s.alpha[y*s.width+xi] >= solidAlpha {
			return float64(y), true
		}
	}
	return 0, false
}

// TopY returns the first solid row from the top of the mask at x.
func (s *Surface) TopY(x float64) (float64, bool) {
	if s == nil {
		return 0, false
	}
	return s.FirstSolidBelow(x, 0, float64(s.height-1))
}

// SegmentClear steps along the segment (x0,y0)-(x1,y1) at roughly one-pixel
// intervals and reports whether every sample is non-solid. Used for
// line-of-sight probes.
func (s *Surface) SegmentClear(x0, y0, x1, y1 float64) bool {
	if s == nil || len(s.alpha) == 0 {
		return true
	}
	dx := x1 - x0
	dy := y1 - y0
	steps := int(maxf(absf(dx), absf(dy)))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		if s.IsSolid(x0+dx*t, y0+dy*t) {
			return false
		}
	}
	return true
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
