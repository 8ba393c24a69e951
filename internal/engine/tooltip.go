package engine

import "rhiza/internal/domain"

// Tooltip offsets from the pointer, in screen pixels
const (
	tooltipOffsetX = 15
	tooltipOffsetY = -10
)

// Tooltip is the floating detail box of the hovered node
type Tooltip struct {
	Visible bool     `json:"visible"`
	NodeID  string   `json:"node_id,omitempty"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Opacity float64  `json:"opacity"`
	Lines   []string `json:"lines,omitempty"`
}

func (t Tooltip) clone() Tooltip {
	if t.Lines != nil {
		t.Lines = append([]string(nil), t.Lines...)
	}
	return t
}

// tooltipLines lists the label, the type and every present detail of n, one per line
func tooltipLines(n *domain.Node) []string {
	lines := []string{n.Label, string(n.Type)}
	r := n.Root
	if r == nil {
		return lines
	}

	add := func(name, value string) {
		if value != "" {
			lines = append(lines, name+": "+value)
		}
	}
	add("Transliteration", r.Transliteration)
	add("Meaning", r.Meaning)
	add("Category", r.Category)
	add("Frequency", r.Frequency.Display())
	add("Part of Speech", string(r.PartOfSpeech))
	if r.EtymologyNotes != "" {
		lines = append(lines, r.EtymologyNotes)
	}
	return lines
}
