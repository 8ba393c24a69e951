package domain

// Payload is the raw graph shape returned by the etymology backend.
// Older builds name the link list "edges", newer ones "links".
type Payload struct {
	Nodes []RawNode `json:"nodes" yaml:"nodes"`
	Links []RawLink `json:"links,omitempty" yaml:"links,omitempty"`
	Edges []RawLink `json:"edges,omitempty" yaml:"edges,omitempty"`
}

// RawNode is an unvalidated node from the backend
type RawNode struct {
	ID         string         `json:"id" yaml:"id" validate:"required"`
	Label      string         `json:"label" yaml:"label"`
	Type       string         `json:"type" yaml:"type" validate:"required,nodetype"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// RawLink is an unvalidated link from the backend
type RawLink struct {
	Source     string         `json:"source" yaml:"source" validate:"required"`
	Target     string         `json:"target" yaml:"target" validate:"required"`
	Type       string         `json:"type,omitempty" yaml:"type,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// AllLinks returns links and edges as one sequence, links first
func (p *Payload) AllLinks() []RawLink {
	out := make([]RawLink, 0, len(p.Links)+len(p.Edges))
	out = append(out, p.Links...)
	out = append(out, p.Edges...)
	return out
}
