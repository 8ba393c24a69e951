package layout

import (
	"math"
	"math/rand/v2"
)

// CollideForce keeps bodies at least radius(i)+radius(j) apart.
// Overlap is resolved with the smaller body moving further.
type CollideForce struct {
	radii    []float64
	strength float64
}

// NewCollideForce creates a collision force with one radius per body
func NewCollideForce(radii []float64, strength float64) *CollideForce {
	return &CollideForce{radii: radii, strength: strength}
}

// Apply implements Force.
// Pairs are checked exhaustively; etymology graphs hold tens of nodes.
func (f *CollideForce) Apply(bodies []*Body, _ float64, rnd *rand.Rand) {
	for i, bi := range bodies {
		ri := f.radii[i]
		ri2 := ri * ri
		xi, yi := bi.X+bi.VX, bi.Y+bi.VY

		for j := i + 1; j < len(bodies); j++ {
			bj := bodies[j]
			rj := f.radii[j]
			r := ri + rj

			x := xi - (bj.X + bj.VX)
			y := yi - (bj.Y + bj.VY)
			l := x*x + y*y
			if l >= r*r {
				continue
			}
			if x == 0 {
				x = jiggle(rnd)
				l += x * x
			}
			if y == 0 {
				y = jiggle(rnd)
				l += y * y
			}

			d := math.Sqrt(l)
			k := (r - d) / d * f.strength
			x *= k
			y *= k

			rj2 := rj * rj
			share := rj2 / (ri2 + rj2)
			bi.VX += x * share
			bi.VY += y * share
			bj.VX -= x * (1 - share)
			bj.VY -= y * (1 - share)
		}
	}
}
