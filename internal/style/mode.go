package style

import (
	"strings"

	"rhiza/internal/domain"
)

// Mode is an educational lens over node stroke width and opacity
type Mode string

const (
	ModeDefault  Mode = "default"
	ModeCategory Mode = "category"
	ModeGrammar  Mode = "grammar"
)

// ParseMode resolves a lens name; unknown names select ModeDefault
func ParseMode(s string) Mode {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeCategory, ModeGrammar:
		return m
	}
	return ModeDefault
}

// Lens returns the stroke width and opacity of a node under a mode
func Lens(m Mode, n *domain.Node) (width, opacity float64) {
	switch m {
	case ModeCategory:
		if n.Category() != "" {
			return 4, 1
		}
		return 1, 0.3
	case ModeGrammar:
		if n.PartOfSpeech() != "" {
			return 5, 1
		}
		return 1, 0.3
	}

	switch n.PartOfSpeech() {
	case domain.PartOfSpeechNoun:
		return 3, 1
	case domain.PartOfSpeechVerb:
		return 2, 1
	}
	return 1, 1
}
