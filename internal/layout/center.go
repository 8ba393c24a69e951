package layout

import "math/rand/v2"

// CenterForce translates all bodies so their centroid moves toward (X, Y).
// It shifts positions directly and leaves velocities alone.
type CenterForce struct {
	X, Y     float64
	Strength float64
}

// NewCenterForce creates a centering force
func NewCenterForce(x, y, strength float64) *CenterForce {
	return &CenterForce{X: x, Y: y, Strength: strength}
}

// Apply implements Force
func (f *CenterForce) Apply(bodies []*Body, _ float64, _ *rand.Rand) {
	if len(bodies) == 0 {
		return
	}
	var sx, sy float64
	for _, b := range bodies {
		sx += b.X
		sy += b.Y
	}
	n := float64(len(bodies))
	sx = (sx/n - f.X) * f.Strength
	sy = (sy/n - f.Y) * f.Strength
	for _, b := range bodies {
		b.X -= sx
		b.Y -= sy
	}
}
