package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNodeType(t *testing.T) {
	tests := []struct {
		in   string
		want NodeType
		ok   bool
	}{
		{"word", NodeTypeWord, true},
		{"root", NodeTypeRoot, true},
		{"related", NodeTypeRelated, true},
		{"EnglishWord", NodeTypeWord, true},
		{"GreekRoot", NodeTypeRoot, true},
		{" Root ", NodeTypeRoot, true},
		{"latin", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNodeType(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNodeAccessors(t *testing.T) {
	t.Run("word node has empty root fields", func(t *testing.T) {
		n := NewWordNode("w", "philosophy", NodeTypeWord)
		assert.Equal(t, Frequency(""), n.Frequency())
		assert.Equal(t, "", n.Category())
		assert.Equal(t, PartOfSpeech(""), n.PartOfSpeech())
		assert.False(t, n.IsHighSalience())
		assert.Equal(t, "philosophy", n.Word.Name)
	})

	t.Run("root node exposes details", func(t *testing.T) {
		n := NewRootNode("r1", "philo", RootDetails{
			Frequency:    FrequencyVeryHigh,
			Category:     "abstract_concept",
			PartOfSpeech: PartOfSpeechNoun,
		})
		assert.Equal(t, FrequencyVeryHigh, n.Frequency())
		assert.Equal(t, "abstract_concept", n.Category())
		assert.Equal(t, PartOfSpeechNoun, n.PartOfSpeech())
		assert.True(t, n.IsHighSalience())
	})

	t.Run("high frequency root is not high salience", func(t *testing.T) {
		n := NewRootNode("r2", "soph", RootDetails{Frequency: FrequencyHigh})
		assert.False(t, n.IsHighSalience())
	})
}

func TestFrequency(t *testing.T) {
	assert.True(t, FrequencyLow.Known())
	assert.False(t, Frequency("ultra").Known())
	assert.Equal(t, "very high", FrequencyVeryHigh.Display())
}
