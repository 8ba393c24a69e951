package layout

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/barneshut"
	"gonum.org/v1/gonum/spatial/r2"
)

// ManyBodyForce applies pairwise charge between all bodies.
// Negative charges repel. When Theta is positive, far-away clusters of the
// common charge are approximated with a Barnes-Hut quadtree.
type ManyBodyForce struct {
	charges []float64
	theta   float64
}

// NewManyBodyForce creates a many-body force with one charge per body
func NewManyBodyForce(charges []float64, theta float64) *ManyBodyForce {
	return &ManyBodyForce{charges: charges, theta: theta}
}

// particle adapts a body to barneshut.Particle2 with unit mass, so an
// aggregate's mass is the number of bodies it holds.
type particle struct {
	body *Body
}

func (p *particle) Coord2() r2.Vec {
	return r2.Vec{X: p.body.X, Y: p.body.Y}
}

func (p *particle) Mass() float64 { return 1 }

// Apply implements Force
func (f *ManyBodyForce) Apply(bodies []*Body, alpha float64, rnd *rand.Rand) {
	if f.theta > 0 && finite(bodies) && f.applyApprox(bodies, alpha) {
		return
	}
	if f.theta > 0 && rnd != nil {
		// the quadtree cannot separate coincident bodies; nudge them for the next step
		for _, b := range bodies {
			b.X += jiggle(rnd)
			b.Y += jiggle(rnd)
		}
	}
	f.applyExact(bodies, alpha)
}

// applyApprox splits every charge into the common charge, summed over the
// quadtree, plus the remainder of off-common bodies, summed exactly.
func (f *ManyBodyForce) applyApprox(bodies []*Body, alpha float64) bool {
	base := f.commonCharge()
	if base == 0 {
		return false
	}

	particles := make([]barneshut.Particle2, len(bodies))
	for i, b := range bodies {
		particles[i] = &particle{body: b}
	}
	plane, err := barneshut.NewPlane(particles)
	if err != nil {
		return false
	}

	force := func(_, _ barneshut.Particle2, _, count float64, v r2.Vec) r2.Vec {
		return chargeDelta(base*count, v)
	}
	dv := make([]r2.Vec, len(bodies))
	for i, p := range particles {
		dv[i] = plane.ForceOn(p, f.theta, force)
	}

	for j, bj := range bodies {
		rest := f.charges[j] - base
		if rest == 0 {
			continue
		}
		pj := r2.Vec{X: bj.X, Y: bj.Y}
		for i, bi := range bodies {
			if i == j {
				continue
			}
			dv[i] = r2.Add(dv[i], chargeDelta(rest, r2.Sub(pj, r2.Vec{X: bi.X, Y: bi.Y})))
		}
	}

	for i, b := range bodies {
		b.VX += dv[i].X * alpha
		b.VY += dv[i].Y * alpha
	}
	return true
}

// applyExact sums every pair directly, which also supports mixed-sign charges
func (f *ManyBodyForce) applyExact(bodies []*Body, alpha float64) {
	dv := make([]r2.Vec, len(bodies))
	for i, bi := range bodies {
		pi := r2.Vec{X: bi.X, Y: bi.Y}
		for j, bj := range bodies {
			if i == j {
				continue
			}
			pj := r2.Vec{X: bj.X, Y: bj.Y}
			dv[i] = r2.Add(dv[i], chargeDelta(f.charges[j], r2.Sub(pj, pi)))
		}
	}
	for i, b := range bodies {
		b.VX += dv[i].X * alpha
		b.VY += dv[i].Y * alpha
	}
}

// commonCharge returns the most frequent charge, first seen on ties
func (f *ManyBodyForce) commonCharge() float64 {
	counts := make(map[float64]int, 2)
	best, bestN := 0.0, 0
	for _, c := range f.charges {
		counts[c]++
		if n := counts[c]; n > bestN {
			best, bestN = c, n
		}
	}
	return best
}

func finite(bodies []*Body) bool {
	for _, b := range bodies {
		if math.IsNaN(b.X) || math.IsInf(b.X, 0) || math.IsNaN(b.Y) || math.IsInf(b.Y, 0) {
			return false
		}
	}
	return true
}

// chargeDelta is the velocity change from a charge at offset v.
// Distances under 1 are softened so close bodies do not explode apart.
func chargeDelta(charge float64, v r2.Vec) r2.Vec {
	d2 := r2.Norm2(v)
	if d2 == 0 {
		return r2.Vec{}
	}
	if d2 < 1 {
		d2 = math.Sqrt(d2)
	}
	return r2.Scale(charge/d2, v)
}
