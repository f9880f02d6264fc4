package navigator

import (
	"image"
	"math"
)

// roundHalfEven returns num/den rounded to the nearest integer, ties to even.
func roundHalfEven(num, den int) int {
	return int(math.RoundToEven(float64(num) / float64(den)))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns +1 for positive x and -1 otherwise.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	return -1
}

// segmentTouches reports whether segment pq meets box, whose last pixel row
// and column are Max-1 (Liang-Barsky clipping on the inclusive bounds).
func segmentTouches(box image.Rectangle, p, q image.Point) bool {
	if box.Empty() {
		return false
	}
	xmin, ymin := float64(box.Min.X), float64(box.Min.Y)
	xmax, ymax := float64(box.Max.X-1), float64(box.Max.Y-1)
	x0, y0 := float64(p.X), float64(p.Y)
	dx, dy := float64(q.X-p.X), float64(q.Y-p.Y)

	t0, t1 := 0.0, 1.0
	clip := func(pp, qq float64) bool {
		if pp == 0 {
			return qq >= 0
		}
		r := qq / pp
		if pp < 0 {
			if r > t1 {
				return false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return false
			}
			t1 = math.Min(t1, r)
		}
		return true
	}
	return clip(-dx, x0-xmin) &&
		clip(dx, xmax-x0) &&
		clip(-dy, y0-ymin) &&
		clip(dy, ymax-y0) &&
		t0 <= t1
}
