package layout

import (
	"math"
	"math/rand/v2"
)

// Spring connects two bodies by index
type Spring struct {
	Source, Target int
	Distance       float64
	// Strength overrides the degree-based default when non-nil
	Strength *float64
}

// LinkForce pulls connected bodies toward their rest distance.
// Stiffness defaults to 1/min(degree(source), degree(target)) so hubs are
// not dragged around by their many neighbours, and each spring's correction
// is split between its endpoints in proportion to their degrees.
type LinkForce struct {
	springs   []Spring
	strengths []float64
	bias      []float64
}

// NewLinkForce creates a link force over n bodies
func NewLinkForce(n int, springs []Spring) *LinkForce {
	count := make([]int, n)
	for _, sp := range springs {
		count[sp.Source]++
		count[sp.Target]++
	}

	f := &LinkForce{
		springs:   springs,
		strengths: make([]float64, len(springs)),
		bias:      make([]float64, len(springs)),
	}
	for i, sp := range springs {
		cs, ct := count[sp.Source], count[sp.Target]
		f.bias[i] = float64(cs) / float64(cs+ct)
		if sp.Strength != nil {
			f.strengths[i] = *sp.Strength
		} else {
			f.strengths[i] = 1 / float64(min(cs, ct))
		}
	}
	return f
}

// Apply implements Force
func (f *LinkForce) Apply(bodies []*Body, alpha float64, rnd *rand.Rand) {
	for i, sp := range f.springs {
		src, tgt := bodies[sp.Source], bodies[sp.Target]

		x := tgt.X + tgt.VX - src.X - src.VX
		if x == 0 {
			x = jiggle(rnd)
		}
		y := tgt.Y + tgt.VY - src.Y - src.VY
		if y == 0 {
			y = jiggle(rnd)
		}

		l := math.Sqrt(x*x + y*y)
		l = (l - sp.Distance) / l * alpha * f.strengths[i]
		x *= l
		y *= l

		b := f.bias[i]
		tgt.VX -= x * b
		tgt.VY -= y * b
		src.VX += x * (1 - b)
		src.VY += y * (1 - b)
	}
}
