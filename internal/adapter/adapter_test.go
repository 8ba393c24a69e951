package adapter

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"rhiza/internal/domain"
)

func samplePayload() *domain.Payload {
	return &domain.Payload{
		Nodes: []domain.RawNode{
			{ID: "w", Label: "philosophy", Type: "word"},
			{ID: "r1", Label: "φίλος", Type: "root", Properties: map[string]any{
				"transliteration": "philos",
				"meaning":         "loving",
				"category":        "emotion",
				"frequency":       "very_high",
				"part_of_speech":  "adjective",
			}},
		},
		Links: []domain.RawLink{
			{Source: "w", Target: "r1", Type: "DERIVES_FROM", Properties: map[string]any{"strength": 0.9}},
		},
	}
}

func TestAdapt_Basic(t *testing.T) {
	g, err := Adapt(samplePayload())
	require.NoError(t, err)

	require.Len(t, g.Nodes, 2)
	require.Len(t, g.Links, 1)

	word, ok := g.WordNode()
	require.True(t, ok)
	assert.Equal(t, "w", word.ID)
	assert.NotNil(t, word.Word)
	assert.Nil(t, word.Root)

	root, ok := g.NodeByID("r1")
	require.True(t, ok)
	require.NotNil(t, root.Root)
	assert.Equal(t, domain.FrequencyVeryHigh, root.Frequency())
	assert.Equal(t, "emotion", root.Category())
	assert.Equal(t, domain.PartOfSpeechAdjective, root.PartOfSpeech())
	assert.Equal(t, "philos", root.Root.Transliteration)
	assert.True(t, root.IsHighSalience())

	assert.InDelta(t, 0.9, g.Links[0].StrengthOrDefault(), 1e-9)
}

func TestAdapt_DanglingReference(t *testing.T) {
	p := samplePayload()
	p.Links = append(p.Links, domain.RawLink{Source: "w", Target: "r2"})

	_, err := Adapt(p)
	require.Error(t, err)

	var ie *domain.DataIntegrityError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, domain.DanglingReference, ie.Kind)
	assert.Equal(t, "r2", ie.Ref)
	assert.Equal(t, "target", ie.Role)
	assert.Contains(t, err.Error(), "r2")
}

func TestAdapt_EdgesKey(t *testing.T) {
	p := samplePayload()
	p.Edges, p.Links = p.Links, nil

	g, err := Adapt(p)
	require.NoError(t, err)
	require.Len(t, g.Links, 1)
	assert.Equal(t, "r1", g.Links[0].Target)
}

func TestAdapt_LinksAndEdgesConcatenated(t *testing.T) {
	p := samplePayload()
	p.Nodes = append(p.Nodes, domain.RawNode{ID: "r2", Type: "root"})
	p.Edges = []domain.RawLink{{Source: "w", Target: "r2"}}

	g, err := Adapt(p)
	require.NoError(t, err)
	require.Len(t, g.Links, 2)
	assert.Equal(t, "r1", g.Links[0].Target)
	assert.Equal(t, "r2", g.Links[1].Target)
}

func TestAdapt_EmptyGraph(t *testing.T) {
	_, err := Adapt(&domain.Payload{})
	assert.ErrorIs(t, err, domain.ErrEmptyGraph)

	_, err = Adapt(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyGraph)
}

func TestAdapt_DuplicateID(t *testing.T) {
	p := samplePayload()
	p.Nodes = append(p.Nodes, domain.RawNode{ID: "r1", Type: "root"})

	_, err := Adapt(p)
	var ie *domain.DataIntegrityError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, domain.DuplicateID, ie.Kind)
	assert.Equal(t, "r1", ie.Ref)
}

func TestAdapt_WordCount(t *testing.T) {
	tests := []struct {
		name  string
		nodes []domain.RawNode
		want  int
	}{
		{
			name:  "no word",
			nodes: []domain.RawNode{{ID: "r1", Type: "root"}},
			want:  0,
		},
		{
			name:  "two words",
			nodes: []domain.RawNode{{ID: "a", Type: "word"}, {ID: "b", Type: "word"}},
			want:  2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Adapt(&domain.Payload{Nodes: tt.nodes})
			var ie *domain.DataIntegrityError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, domain.WordCount, ie.Kind)
			assert.Equal(t, tt.want, ie.N)
		})
	}
}

func TestAdapt_StructuralValidation(t *testing.T) {
	p := &domain.Payload{
		Nodes: []domain.RawNode{
			{ID: "w", Type: "word"},
			{ID: "", Type: "root"},
			{ID: "x", Type: "planet"},
		},
		Links: []domain.RawLink{{Source: "w"}},
	}

	_, err := Adapt(p)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Problems, 3)
	assert.Contains(t, err.Error(), "nodes[1].id is required")
	assert.Contains(t, err.Error(), `"planet"`)
	assert.Contains(t, err.Error(), "links[0].target is required")
}

func TestAdapt_TypeAliases(t *testing.T) {
	p := &domain.Payload{
		Nodes: []domain.RawNode{
			{ID: "w", Type: "EnglishWord"},
			{ID: "r", Type: "GreekRoot"},
			{ID: "rel", Type: "related"},
		},
	}
	g, err := Adapt(p)
	require.NoError(t, err)

	assert.Equal(t, domain.NodeTypeWord, g.Nodes[0].Type)
	assert.Equal(t, domain.NodeTypeRoot, g.Nodes[1].Type)
	assert.Equal(t, domain.NodeTypeRelated, g.Nodes[2].Type)
}

func TestAdapt_Normalization(t *testing.T) {
	p := &domain.Payload{
		Nodes: []domain.RawNode{
			{ID: "w", Type: "word"},
			{ID: "r1", Type: "root"},
			{ID: "r2", Type: "root"},
			{ID: "r3", Type: "root"},
		},
		Links: []domain.RawLink{
			{Source: "w", Target: "r1"},
			{Source: "w", Target: "r2", Properties: map[string]any{"strength": 7}},
			{Source: "w", Target: "r3", Properties: map[string]any{"strength": "-0.4"}},
		},
	}
	g, err := Adapt(p)
	require.NoError(t, err)

	// label falls back to the id
	assert.Equal(t, "w", g.Nodes[0].Label)
	assert.Equal(t, "r1", g.Nodes[1].Label)

	assert.Nil(t, g.Links[0].Strength)
	assert.InDelta(t, domain.DefaultStrength, g.Links[0].StrengthOrDefault(), 1e-9)
	assert.InDelta(t, 1.0, g.Links[1].StrengthOrDefault(), 1e-9)
	assert.InDelta(t, 0.0, g.Links[2].StrengthOrDefault(), 1e-9)
}

func TestAdapt_NonFiniteStrengthRejected(t *testing.T) {
	payload := func(strength any) *domain.Payload {
		return &domain.Payload{
			Nodes: []domain.RawNode{{ID: "w", Type: "word"}, {ID: "r", Type: "root"}},
			Links: []domain.RawLink{{Source: "w", Target: "r", Properties: map[string]any{"strength": strength}}},
		}
	}

	tests := []struct {
		name     string
		strength any
	}{
		{"NaN string", "NaN"},
		{"Inf string", "Inf"},
		{"negative infinity string", "-Infinity"},
		{"NaN float", math.NaN()},
		{"Inf float", math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Adapt(payload(tt.strength))
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Contains(t, err.Error(), "links[0].strength")
		})
	}

	t.Run("yaml .nan", func(t *testing.T) {
		doc := `
nodes:
  - {id: w, type: word}
  - {id: r, type: root}
links:
  - {source: w, target: r, properties: {strength: .nan}}
`
		var p domain.Payload
		require.NoError(t, yaml.Unmarshal([]byte(doc), &p))
		_, err := Adapt(&p)
		var ve *ValidationError
		assert.True(t, errors.As(err, &ve), "got %v", err)
	})
}
