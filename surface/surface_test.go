package surface

import (
	"image"
	"image/color"
	"testing"
)

// grid builds a w x h surface where rows [floorY, h) are fully opaque except
// the columns listed in gaps.
func grid(w, h, floorY int, gaps ...int) *Surface {
	alpha := make([]uint8, w*h)
	gapSet := map[int]struct{}{}
	for _, g := range gaps {
		gapSet[g] = struct{}{}
	}
	for y := floorY; y < h; y++ {
		for x := 0; x < w; x++ {
			if _, gap := gapSet[x]; gap {
				continue
			}
			alpha[y*w+x] = 255
		}
	}
	return FromAlpha(w, h, alpha)
}

func TestIsSolid(t *testing.T) {
	s := grid(10, 10, 6, 4)

	cases := []struct {
		name string
		x, y float64
		want bool
	}{
		{"air", 2, 2, false},
		{"floor", 2, 7, true},
		{"gap_column", 4, 7, false},
		{"clamped_left_edge", -50, 7, true},
		{"clamped_right_edge", 500, 7, true},
		{"clamped_below", 2, 500, true},
		{"clamped_above", 2, -3, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := s.IsSolid(c.x, c.y); got != c.want {
				t.Fatalf("IsSolid(%v, %v) = %v, want %v", c.x, c.y, got, c.want)
			}
		})
	}
}

func TestFailClosed(t *testing.T) {
	var nilSurface *Surface
	if nilSurface.IsSolid(1, 1) {
		t.Fatalf("nil surface should never be solid")
	}
	empty := FromAlpha(0, 0, nil)
	if empty.IsSolid(1, 1) {
		t.Fatalf("empty surface should never be solid")
	}
	if _, ok := empty.FirstSolidBelow(1, 0, 10); ok {
		t.Fatalf("empty surface should have no solid rows")
	}
	if !empty.SegmentClear(0, 0, 10, 10) {
		t.Fatalf("empty surface should always be clear")
	}
}

func TestAlphaThreshold(t *testing.T) {
	alpha := []uint8{127, 128}
	s := FromAlpha(2, 1, alpha)
	if s.IsSolid(0, 0) {
		t.Fatalf("alpha 127 must read as not solid")
	}
	if !s.IsSolid(1, 0) {
		t.Fatalf("alpha 128 must read as solid")
	}
}

func TestFirstSolidBelow(t *testing.T) {
	s := grid(10, 20, 12, 7)

	t.Run("finds_floor", func(t *testing.T) {
		y, ok := s.FirstSolidBelow(3, 0, 19)
		if !ok || y != 12 {
			t.Fatalf("got (%v, %v), want (12, true)", y, ok)
		}
	})
	t.Run("inclusive_start", func(t *testing.T) {
		y, ok := s.FirstSolidBelow(3, 12, 12)
		if !ok || y != 12 {
			t.Fatalf("scan starting on a solid row must find it, got (%v, %v)", y, ok)
		}
	})
	t.Run("stops_before_floor", func(t *testing.T) {
		if _, ok := s.FirstSolidBelow(3, 0, 11); ok {
			t.Fatalf("scan ending above the floor must find nothing")
		}
	})
	t.Run("gap_column", func(t *testing.T) {
		if _, ok := s.FirstSolidBelow(7, 0, 19); ok {
			t.Fatalf("gap column must have no solid rows")
		}
	})
	t.Run("inverted_range", func(t *testing.T) {
		if _, ok := s.FirstSolidBelow(3, 19, 0); ok {
			t.Fatalf("inverted range must find nothing")
		}
	})
}

func TestSegmentClear(t *testing.T) {
	// Wall column at x=5 from y=0..9.
	alpha := make([]uint8, 10*10)
	for y := 0; y < 10; y++ {
		alpha[y*10+5] = 255
	}
	s := FromAlpha(10, 10, alpha)

	if s.SegmentClear(0, 3, 9, 3) {
		t.Fatalf("horizontal segment through the wall must be blocked")
	}
	if !s.SegmentClear(0, 3, 4, 3) {
		t.Fatalf("segment stopping short of the wall must be clear")
	}
	if !s.SegmentClear(6, 0, 9, 9) {
		t.Fatalf("segment on the far side of the wall must be clear")
	}
	if !s.SegmentClear(2, 2, 2, 2) {
		t.Fatalf("zero-length segment in air must be clear")
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.Set(2, 2, color.NRGBA{R: 200, G: 200, B: 200, A: 40})
	s := FromImage(img)

	if !s.IsSolid(1, 2) {
		t.Fatalf("opaque pixel must be solid regardless of color")
	}
	if s.IsSolid(2, 2) {
		t.Fatalf("translucent pixel must not be solid")
	}
	if got := FromImage(nil); got.IsSolid(0, 0) {
		t.Fatalf("nil image must yield an all-empty surface")
	}
}

func TestFitMappingRoundTrip(t *testing.T) {
	cases := []struct {
		name                   string
		srcW, srcH, dstW, dstH int
	}{
		{"same_aspect", 960, 540, 1280, 720},
		{"wider_source", 1000, 400, 1280, 720},
		{"taller_source", 400, 1000, 1280, 720},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := FitMapping(c.srcW, c.srcH, c.dstW, c.dstH)
			cx, cy := m.ToCanvas(123, 45)
			sx, sy := m.FromCanvas(cx, cy)
			if absf(sx-123) > 1e-9 || absf(sy-45) > 1e-9 {
				t.Fatalf("round trip moved the point: (%v, %v)", sx, sy)
			}

			// Cover scale: the scaled source must span at least the canvas.
			if float64(c.srcW)*m.Scale < float64(c.dstW)-1e-9 {
				t.Fatalf("scaled width %v does not cover canvas %d", float64(c.srcW)*m.Scale, c.dstW)
			}
			if float64(c.srcH)*m.Scale < float64(c.dstH)-1e-9 {
				t.Fatalf("scaled height %v does not cover canvas %d", float64(c.srcH)*m.Scale, c.dstH)
			}
		})
	}
}

func TestRescale(t *testing.T) {
	// A 100x100 mask whose bottom half is opaque, onto a 200x200 canvas.
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for y := 50; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.NRGBA{A: 255})
		}
	}
	s := Rescale(img, 200, 200)

	if s.IsSolid(100, 40) {
		t.Fatalf("top half must stay empty after rescale")
	}
	if !s.IsSolid(100, 160) {
		t.Fatalf("bottom half must stay solid after rescale")
	}
	if got := Rescale(nil, 200, 200); got.IsSolid(0, 0) {
		t.Fatalf("nil mask must yield an all-empty surface")
	}
}
