package domain

import "strings"

// NodeType represents the kind of etymology node
type NodeType string

const (
	NodeTypeWord    NodeType = "word"
	NodeTypeRoot    NodeType = "root"
	NodeTypeRelated NodeType = "related"
)

// nodeTypeAliases maps type names used by older backend builds
var nodeTypeAliases = map[string]NodeType{
	"word":        NodeTypeWord,
	"englishword": NodeTypeWord,
	"root":        NodeTypeRoot,
	"greekroot":   NodeTypeRoot,
	"related":     NodeTypeRelated,
}

// ParseNodeType resolves a raw type name, accepting backend aliases
func ParseNodeType(s string) (NodeType, bool) {
	t, ok := nodeTypeAliases[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// IsWordLike reports whether the node is an English word (searched or related)
func (t NodeType) IsWordLike() bool {
	return t == NodeTypeWord || t == NodeTypeRelated
}

// Frequency is the categorical popularity rank of a root in English
type Frequency string

const (
	FrequencyVeryHigh Frequency = "very_high"
	FrequencyHigh     Frequency = "high"
	FrequencyMedium   Frequency = "medium"
	FrequencyLow      Frequency = "low"
)

// Known reports whether f is one of the ranked frequency values
func (f Frequency) Known() bool {
	switch f {
	case FrequencyVeryHigh, FrequencyHigh, FrequencyMedium, FrequencyLow:
		return true
	}
	return false
}

// Display returns the frequency with underscores rendered as spaces
func (f Frequency) Display() string {
	return strings.ReplaceAll(string(f), "_", " ")
}

// PartOfSpeech is the grammatical category of a root
type PartOfSpeech string

const (
	PartOfSpeechNoun      PartOfSpeech = "noun"
	PartOfSpeechAdjective PartOfSpeech = "adjective"
	PartOfSpeechVerb      PartOfSpeech = "verb"
	PartOfSpeechAdverb    PartOfSpeech = "adverb"
)

// RootDetails holds the optional metadata of a Greek root node
type RootDetails struct {
	Name            string       `json:"name,omitempty"`
	Transliteration string       `json:"transliteration,omitempty"`
	Meaning         string       `json:"meaning,omitempty"`
	Category        string       `json:"category,omitempty"`
	Frequency       Frequency    `json:"frequency,omitempty"`
	PartOfSpeech    PartOfSpeech `json:"part_of_speech,omitempty"`
	EtymologyNotes  string       `json:"etymology_notes,omitempty"`
}

// WordDetails holds the optional metadata of an English word node
type WordDetails struct {
	Name string `json:"name,omitempty"`
}

// Node is a vertex of an etymology graph.
// Exactly one of Root or Word is set, matching Type.
type Node struct {
	ID    string       `json:"id"`
	Label string       `json:"label"`
	Type  NodeType     `json:"type"`
	Root  *RootDetails `json:"root,omitempty"`
	Word  *WordDetails `json:"word,omitempty"`
}

// NewWordNode creates a word-like node of the given type
func NewWordNode(id, label string, nodeType NodeType) Node {
	return Node{ID: id, Label: label, Type: nodeType, Word: &WordDetails{Name: label}}
}

// NewRootNode creates a root node
func NewRootNode(id, label string, details RootDetails) Node {
	return Node{ID: id, Label: label, Type: NodeTypeRoot, Root: &details}
}

// Frequency returns the root frequency, or "" for word-like nodes
func (n *Node) Frequency() Frequency {
	if n.Root == nil {
		return ""
	}
	return n.Root.Frequency
}

// Category returns the root category, or ""
func (n *Node) Category() string {
	if n.Root == nil {
		return ""
	}
	return n.Root.Category
}

// PartOfSpeech returns the root part of speech, or ""
func (n *Node) PartOfSpeech() PartOfSpeech {
	if n.Root == nil {
		return ""
	}
	return n.Root.PartOfSpeech
}

// IsHighSalience reports whether the node should claim extra space in a layout
func (n *Node) IsHighSalience() bool {
	return n.Type == NodeTypeRoot && n.Frequency() == FrequencyVeryHigh
}
