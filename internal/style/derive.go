package style

import (
	"fmt"
	"sort"
	"strings"

	"rhiza/internal/domain"
)

// Fill describes how a node is painted.
// Gradient is set when the theme defines one for the node's category.
type Fill struct {
	Color    string
	Gradient *Gradient
	// GradientID is the key shared by all nodes using the same gradient
	GradientID string
}

// LabelStyle describes a node label
type LabelStyle struct {
	Text     string
	DY       float64
	FontSize float64
	Bold     bool
	Color    string
}

// LegendEntry is one row of the category legend
type LegendEntry struct {
	Category string
	Label    string
	Fill     Fill
}

// NodeRadius returns the rendered radius of a node
func (t *Theme) NodeRadius(n *domain.Node) float64 {
	switch n.Type {
	case domain.NodeTypeWord:
		return t.Node.WordRadius
	case domain.NodeTypeRelated:
		return t.Node.RelatedRadius
	}
	scale := lookup(t.Node.FrequencyScale, frequencyKey(n.Frequency()))
	if scale == 0 {
		scale = 1
	}
	return t.Node.RootRadius * scale
}

// NodeFill returns the fill of a node
func (t *Theme) NodeFill(n *domain.Node) Fill {
	switch n.Type {
	case domain.NodeTypeWord:
		if t.Node.WordGradient {
			return t.gradientFill(DefaultKey, t.Node.WordFill)
		}
		return Fill{Color: t.Node.WordFill}
	case domain.NodeTypeRelated:
		if t.Node.WordGradient {
			return t.gradientFill(DefaultKey, t.Node.RelatedFill)
		}
		return Fill{Color: t.Node.RelatedFill}
	}

	category := n.Category()
	if _, ok := t.Node.CategoryFill[category]; !ok {
		category = DefaultKey
	}
	return t.gradientFill(category, t.Node.CategoryFill[category])
}

func (t *Theme) gradientFill(category, color string) Fill {
	g, ok := t.Node.Gradients[category]
	if !ok {
		return Fill{Color: color}
	}
	if color == "" {
		color = g.From
	}
	return Fill{Color: color, Gradient: &g, GradientID: "gradient-" + category}
}

// NodeStroke returns the outline of a node
func (t *Theme) NodeStroke(n *domain.Node) Stroke {
	var s Stroke
	if n.Type.IsWordLike() {
		s = t.Node.WordStroke
	} else {
		s = lookup(t.Node.PartOfSpeech, string(n.PartOfSpeech()))
	}
	if s.Color == "" {
		s.Color = t.Node.StrokeColor
	}
	if s.Width == 0 {
		s.Width = 1
	}
	if n.IsHighSalience() && t.Node.SalientStroke > 0 {
		s.Width = t.Node.SalientStroke
	}
	return s
}

// LinkStyle returns the appearance of a link.
// root is the link's root endpoint (see domain.Graph.RootEndpoint) and may be nil.
func (t *Theme) LinkStyle(l *domain.Link, root *domain.Node) LinkAppearance {
	if t.Link.Mode == LinkByStrength {
		s := l.StrengthOrDefault()
		a := LinkAppearance{
			Color:   fmt.Sprintf("rgba(%s, %g)", t.Link.StrengthRGB, max(0.3, s)),
			Width:   max(1, s*4),
			Opacity: 1,
		}
		if s < t.Link.DashBelow {
			a.Dash = t.Link.Dash
		}
		return a
	}

	key := DefaultKey
	if root != nil {
		key = frequencyKey(root.Frequency())
	}
	return lookup(t.Link.ByFrequency, key)
}

// NodeLabel returns the label style of a node
func (t *Theme) NodeLabel(n *domain.Node) LabelStyle {
	ls := LabelStyle{Text: n.Label, Color: t.Label.Color}
	if n.Type.IsWordLike() {
		ls.DY, ls.FontSize = t.Label.WordDY, t.Label.WordFont
	} else {
		ls.DY, ls.FontSize = t.Label.RootDY, t.Label.RootFont
	}

	if n.Root != nil && t.Label.ShowTransliteration {
		name := n.Root.Name
		if name == "" {
			name = n.Label
		}
		ls.Text = name
		if n.Root.Transliteration != "" {
			ls.Text += "\n(" + n.Root.Transliteration + ")"
		}
	}

	if n.IsHighSalience() {
		ls.FontSize += t.Label.SalientBump
		ls.Bold = t.Label.SalientBold
	}
	return ls
}

// Legend returns the category legend, or nil when the theme has none.
// Entries are sorted by category and exclude the default bucket.
func (t *Theme) Legend() []LegendEntry {
	if !t.ShowLegend {
		return nil
	}
	source := t.Node.CategoryFill
	categories := make([]string, 0, len(source))
	for c := range source {
		if c != DefaultKey {
			categories = append(categories, c)
		}
	}
	for c := range t.Node.Gradients {
		if _, ok := source[c]; !ok && c != DefaultKey {
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)

	out := make([]LegendEntry, 0, len(categories))
	for _, c := range categories {
		out = append(out, LegendEntry{
			Category: c,
			Label:    strings.ReplaceAll(c, "_", " "),
			Fill:     t.gradientFill(c, t.Node.CategoryFill[c]),
		})
	}
	return out
}

// LinkDistance returns the rest length of a link.
// Stronger links rest closer, within [LinkDistanceMin, LinkDistanceMax].
func (t *Theme) LinkDistance(l *domain.Link) float64 {
	lo, hi := t.Forces.LinkDistanceMin, t.Forces.LinkDistanceMax
	return hi - l.StrengthOrDefault()*(hi-lo)
}

// Charge returns the many-body strength of a node; negative values repel
func (t *Theme) Charge(n *domain.Node) float64 {
	if n.IsHighSalience() {
		return t.Forces.Charge * t.Forces.SalientCharge
	}
	return t.Forces.Charge
}

// CollideRadius returns the minimum separation radius of a node
func (t *Theme) CollideRadius(n *domain.Node) float64 {
	return t.NodeRadius(n) + t.Forces.CollideMargin
}
