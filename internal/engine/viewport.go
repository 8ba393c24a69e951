package engine

import "math"

// Transform maps simulation coordinates to screen coordinates:
// screen = world*K + (X, Y)
type Transform struct {
	K float64 `json:"k"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Identity is the unscaled, untranslated transform
var Identity = Transform{K: 1}

// Apply maps a world point to the screen
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.K + t.X, y*t.K + t.Y
}

// Invert maps a screen point back to world coordinates
func (t Transform) Invert(sx, sy float64) (float64, float64) {
	return (sx - t.X) / t.K, (sy - t.Y) / t.K
}

// viewport is a transform whose scale stays within [min, max]
type viewport struct {
	t        Transform
	min, max float64
}

func newViewport(lo, hi float64) viewport {
	return viewport{t: Identity, min: lo, max: hi}
}

// centerOn translates so world point (x, y) lands at screen (cx, cy), at scale 1
func (v *viewport) centerOn(x, y, cx, cy float64) {
	v.t = Transform{K: 1, X: cx - x, Y: cy - y}
	v.t.K = v.clamp(v.t.K)
}

// zoomAt scales by factor keeping screen point (ax, ay) fixed
func (v *viewport) zoomAt(factor, ax, ay float64) error {
	if factor <= 0 || !finite(factor, ax, ay) {
		return ErrInvalidGesture
	}
	k := v.clamp(v.t.K * factor)
	wx, wy := v.t.Invert(ax, ay)
	v.t = Transform{K: k, X: ax - wx*k, Y: ay - wy*k}
	return nil
}

func (v *viewport) pan(dx, dy float64) error {
	if !finite(dx, dy) {
		return ErrInvalidGesture
	}
	v.t.X += dx
	v.t.Y += dy
	return nil
}

func (v *viewport) clamp(k float64) float64 {
	return min(max(k, v.min), v.max)
}

// finite reports whether every value is a real number
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
