package domain

// DefaultStrength is used for links that carry no strength property
const DefaultStrength = 0.5

// Link represents a derivation relationship between two nodes
type Link struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Type     string   `json:"type,omitempty"`
	Strength *float64 `json:"strength,omitempty"`
}

// NewLink creates a link with an explicit strength
func NewLink(source, target string, strength float64) Link {
	return Link{Source: source, Target: target, Type: "DERIVES_FROM", Strength: &strength}
}

// StrengthOrDefault returns the link strength, falling back to DefaultStrength
func (l *Link) StrengthOrDefault() float64 {
	if l.Strength == nil {
		return DefaultStrength
	}
	return *l.Strength
}
