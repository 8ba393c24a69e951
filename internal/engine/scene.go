package engine

import (
	"sort"

	"rhiza/internal/domain"
	"rhiza/internal/layout"
	"rhiza/internal/style"
)

type sceneNode struct {
	node *domain.Node

	baseRadius float64
	radius     float64
	fill       style.Fill
	stroke     style.Stroke
	// baseWidth is the stroke width outside hover; lenses change it
	baseWidth float64
	width     float64
	opacity   float64
	label     style.LabelStyle
	hovered   bool
}

type sceneLink struct {
	link     *domain.Link
	src, tgt int
	look     style.LinkAppearance
}

// scene holds the visual attributes derived once per graph.
// Positions live in the simulation bodies and are projected per frame.
type scene struct {
	nodes     []sceneNode
	links     []sceneLink
	legend    []LegendItem
	gradients []GradientDef
}

func newScene(g *domain.Graph, theme *style.Theme) *scene {
	s := &scene{
		nodes: make([]sceneNode, len(g.Nodes)),
		links: make([]sceneLink, 0, len(g.Links)),
	}
	grads := make(map[string]style.Gradient)

	for i := range g.Nodes {
		n := &g.Nodes[i]
		stroke := theme.NodeStroke(n)
		fill := theme.NodeFill(n)
		r := theme.NodeRadius(n)
		s.nodes[i] = sceneNode{
			node:       n,
			baseRadius: r,
			radius:     r,
			fill:       fill,
			stroke:     stroke,
			baseWidth:  stroke.Width,
			width:      stroke.Width,
			opacity:    1,
			label:      theme.NodeLabel(n),
		}
		if fill.Gradient != nil {
			grads[fill.GradientID] = *fill.Gradient
		}
	}

	for i := range g.Links {
		l := &g.Links[i]
		src, _ := g.IndexOf(l.Source)
		tgt, _ := g.IndexOf(l.Target)
		root, _ := g.RootEndpoint(l)
		s.links = append(s.links, sceneLink{
			link: l,
			src:  src,
			tgt:  tgt,
			look: theme.LinkStyle(l, root),
		})
	}

	for _, e := range theme.Legend() {
		s.legend = append(s.legend, LegendItem{
			Category:   e.Category,
			Label:      e.Label,
			Fill:       e.Fill.Color,
			GradientID: e.Fill.GradientID,
		})
		if e.Fill.Gradient != nil {
			grads[e.Fill.GradientID] = *e.Fill.Gradient
		}
	}

	ids := make([]string, 0, len(grads))
	for id := range grads {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		s.gradients = append(s.gradients, GradientDef{ID: id, From: grads[id].From, To: grads[id].To})
	}
	return s
}

// applyLens re-keys stroke width and opacity without touching the layout
func (s *scene) applyLens(m style.Mode) {
	for i := range s.nodes {
		sn := &s.nodes[i]
		w, o := style.Lens(m, sn.node)
		sn.baseWidth = w
		sn.opacity = o
		if !sn.hovered {
			sn.width = w
		}
	}
}

func (s *scene) hover(i int, theme *style.Theme) {
	sn := &s.nodes[i]
	sn.hovered = true
	sn.radius = sn.baseRadius * theme.Node.HoverScale
	sn.width = theme.Node.HoverStrokeWidth
}

func (s *scene) unhover(i int) {
	sn := &s.nodes[i]
	sn.hovered = false
	sn.radius = sn.baseRadius
	sn.width = sn.baseWidth
}

// project fills the positional parts of a frame from the simulation bodies
func (s *scene) project(f *Frame, bodies []*layout.Body) {
	f.Nodes = make([]NodeView, len(s.nodes))
	f.Labels = make([]LabelView, len(s.nodes))
	for i := range s.nodes {
		sn := &s.nodes[i]
		b := bodies[i]
		f.Nodes[i] = NodeView{
			ID:          sn.node.ID,
			Label:       sn.node.Label,
			Type:        sn.node.Type,
			X:           b.X,
			Y:           b.Y,
			Radius:      sn.radius,
			Fill:        sn.fill.Color,
			GradientID:  sn.fill.GradientID,
			Stroke:      sn.stroke.Color,
			StrokeWidth: sn.width,
			Dash:        sn.stroke.Dash,
			Opacity:     sn.opacity,
			Pinned:      b.Pinned(),
			Hovered:     sn.hovered,
		}
		f.Labels[i] = LabelView{
			NodeID:   sn.node.ID,
			Text:     sn.label.Text,
			X:        b.X,
			Y:        b.Y + sn.label.DY,
			FontSize: sn.label.FontSize,
			Bold:     sn.label.Bold,
			Color:    sn.label.Color,
		}
	}

	f.Links = make([]LinkView, len(s.links))
	for i, sl := range s.links {
		src, tgt := bodies[sl.src], bodies[sl.tgt]
		f.Links[i] = LinkView{
			Source:  sl.link.Source,
			Target:  sl.link.Target,
			X1:      src.X,
			Y1:      src.Y,
			X2:      tgt.X,
			Y2:      tgt.Y,
			Color:   sl.look.Color,
			Width:   sl.look.Width,
			Opacity: sl.look.Opacity,
			Dash:    sl.look.Dash,
		}
	}

	f.Legend = append([]LegendItem(nil), s.legend...)
	f.Gradients = append([]GradientDef(nil), s.gradients...)
}
