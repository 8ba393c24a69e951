package engine

import (
	"rhiza/internal/domain"
	"rhiza/internal/layout"
	"rhiza/internal/style"
)

// collideStrength fully resolves overlaps each tick
const collideStrength = 1

// newSimulation seeds bodies around the container center and wires the
// link, many-body, centering and collision forces from the theme.
func newSimulation(g *domain.Graph, theme *style.Theme, width, height float64, opts ...layout.Option) *layout.Simulation {
	bodies := make([]*layout.Body, len(g.Nodes))
	charges := make([]float64, len(g.Nodes))
	radii := make([]float64, len(g.Nodes))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		bodies[i] = &layout.Body{ID: n.ID}
		charges[i] = theme.Charge(n)
		radii[i] = theme.CollideRadius(n)
	}

	springs := make([]layout.Spring, 0, len(g.Links))
	for i := range g.Links {
		l := &g.Links[i]
		src, _ := g.IndexOf(l.Source)
		tgt, _ := g.IndexOf(l.Target)
		springs = append(springs, layout.Spring{
			Source:   src,
			Target:   tgt,
			Distance: theme.LinkDistance(l),
			Strength: theme.Forces.LinkStrength,
		})
	}

	cx, cy := width/2, height/2
	sim := layout.New(bodies, opts...)
	sim.Seed(cx, cy, layout.DefaultJitter)
	sim.AddForce("link", layout.NewLinkForce(len(bodies), springs)).
		AddForce("charge", layout.NewManyBodyForce(charges, theme.Forces.Theta)).
		AddForce("center", layout.NewCenterForce(cx, cy, theme.Forces.CenterStrength)).
		AddForce("collide", layout.NewCollideForce(radii, collideStrength))
	return sim
}
