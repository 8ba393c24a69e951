package layout

import (
	"math"
	"math/rand/v2"
)

// Defaults follow the conventional force-directed layout tuning: alpha
// decays from 1 to AlphaMin in about 300 steps.
const (
	DefaultAlphaMin      = 0.001
	DefaultVelocityDecay = 0.4
	DefaultJitter        = 20.0
)

// DefaultAlphaDecay is the per-step decay reaching DefaultAlphaMin after 300 steps
var DefaultAlphaDecay = 1 - math.Pow(DefaultAlphaMin, 1.0/300)

// Body is one simulated node
type Body struct {
	ID     string
	X, Y   float64
	VX, VY float64
	// FX and FY pin the body when non-nil
	FX, FY *float64
}

// Pinned reports whether the body is held in place
func (b *Body) Pinned() bool {
	return b.FX != nil && b.FY != nil
}

// Force contributes velocity to bodies on each step
type Force interface {
	Apply(bodies []*Body, alpha float64, rnd *rand.Rand)
}

type namedForce struct {
	name  string
	force Force
}

// Simulation is a force-directed layout over a fixed set of bodies
type Simulation struct {
	bodies []*Body
	forces []namedForce

	alpha         float64
	alphaMin      float64
	alphaDecay    float64
	alphaTarget   float64
	velocityDecay float64

	rnd   *rand.Rand
	steps int
}

// Option configures a Simulation
type Option func(*Simulation)

// WithSeed makes initial jitter and tie-breaking reproducible
func WithSeed(seed uint64) Option {
	return func(s *Simulation) {
		s.rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithAlphaDecay sets the per-step energy decay rate
func WithAlphaDecay(d float64) Option {
	return func(s *Simulation) {
		s.alphaDecay = d
	}
}

// WithAlphaMin sets the convergence threshold
func WithAlphaMin(m float64) Option {
	return func(s *Simulation) {
		s.alphaMin = m
	}
}

// WithVelocityDecay sets the fraction of velocity lost per step
func WithVelocityDecay(d float64) Option {
	return func(s *Simulation) {
		s.velocityDecay = d
	}
}

// New creates a simulation at full energy
func New(bodies []*Body, opts ...Option) *Simulation {
	s := &Simulation{
		bodies:        bodies,
		alpha:         1,
		alphaMin:      DefaultAlphaMin,
		alphaDecay:    DefaultAlphaDecay,
		velocityDecay: DefaultVelocityDecay,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// AddForce registers a force; forces apply in registration order
func (s *Simulation) AddForce(name string, f Force) *Simulation {
	s.forces = append(s.forces, namedForce{name: name, force: f})
	return s
}

// Force returns a registered force by name
func (s *Simulation) Force(name string) (Force, bool) {
	for _, nf := range s.forces {
		if nf.name == name {
			return nf.force, true
		}
	}
	return nil, false
}

// Seed places every body at (cx, cy) plus uniform jitter in [-jitter/2, jitter/2)
func (s *Simulation) Seed(cx, cy, jitter float64) {
	for _, b := range s.bodies {
		b.X = cx + (s.rnd.Float64()-0.5)*jitter
		b.Y = cy + (s.rnd.Float64()-0.5)*jitter
		b.VX, b.VY = 0, 0
	}
}

// Step advances the simulation by one tick
func (s *Simulation) Step() {
	s.alpha += (s.alphaTarget - s.alpha) * s.alphaDecay

	for _, nf := range s.forces {
		nf.force.Apply(s.bodies, s.alpha, s.rnd)
	}

	keep := 1 - s.velocityDecay
	for _, b := range s.bodies {
		if b.FX == nil {
			b.VX *= keep
			b.X += b.VX
		} else {
			b.X = *b.FX
			b.VX = 0
		}
		if b.FY == nil {
			b.VY *= keep
			b.Y += b.VY
		} else {
			b.Y = *b.FY
			b.VY = 0
		}
	}
	s.steps++
}

// Run steps until converged or until max steps were taken, returning the count
func (s *Simulation) Run(max int) int {
	n := 0
	for n < max && !s.Converged() {
		s.Step()
		n++
	}
	return n
}

// Converged reports whether alpha fell below the convergence threshold
func (s *Simulation) Converged() bool {
	return s.alpha < s.alphaMin
}

// Alpha returns the current energy
func (s *Simulation) Alpha() float64 { return s.alpha }

// SetAlpha sets the current energy
func (s *Simulation) SetAlpha(a float64) { s.alpha = a }

// AlphaMin returns the convergence threshold
func (s *Simulation) AlphaMin() float64 { return s.alphaMin }

// AlphaTarget returns the energy the simulation decays toward
func (s *Simulation) AlphaTarget() float64 { return s.alphaTarget }

// SetAlphaTarget sets the energy the simulation decays toward
func (s *Simulation) SetAlphaTarget(t float64) { s.alphaTarget = t }

// Steps returns the number of steps taken
func (s *Simulation) Steps() int { return s.steps }

// Bodies returns the simulated bodies
func (s *Simulation) Bodies() []*Body { return s.bodies }

// Pin fixes body i at (x, y)
func (s *Simulation) Pin(i int, x, y float64) {
	b := s.bodies[i]
	b.FX, b.FY = &x, &y
}

// Unpin releases body i back to the simulation
func (s *Simulation) Unpin(i int) {
	b := s.bodies[i]
	b.FX, b.FY = nil, nil
}

// jiggle returns a tiny random offset used to separate coincident bodies
func jiggle(rnd *rand.Rand) float64 {
	return (rnd.Float64() - 0.5) * 1e-6
}
