package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rhiza/internal/adapter"
	"rhiza/internal/domain"
)

const samplePayloadJSON = `{
  "nodes": [
    {"id": "word_philosophy", "label": "philosophy", "type": "word", "properties": {"name": "Philosophy"}},
    {"id": "root_philos", "label": "φίλος\n(philos)", "type": "root",
     "properties": {"frequency": "very_high", "category": "emotion", "meaning": "loving"}}
  ],
  "links": [
    {"source": "word_philosophy", "target": "root_philos", "type": "DERIVES_FROM",
     "properties": {"strength": 0.9}}
  ]
}`

const samplePayloadYAML = `
nodes:
  - id: w
    label: philosophy
    type: word
  - id: r1
    label: philo
    type: root
    properties:
      frequency: very_high
      category: abstract_concept
edges:
  - source: w
    target: r1
    properties:
      strength: 0.9
`

func TestJSONCodec_Parse(t *testing.T) {
	p, err := NewJSONCodec().Parse(strings.NewReader(samplePayloadJSON))
	require.NoError(t, err)

	require.Len(t, p.Nodes, 2)
	require.Len(t, p.Links, 1)
	assert.Empty(t, p.Edges)
	assert.Equal(t, "very_high", p.Nodes[1].Properties["frequency"])

	g, err := adapter.Adapt(p)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, g.Links[0].StrengthOrDefault(), 1e-9)
}

func TestJSONCodec_ParseInvalid(t *testing.T) {
	_, err := NewJSONCodec().Parse(strings.NewReader(`{"nodes": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON")
}

func TestYAMLCodec_ParseEdges(t *testing.T) {
	p, err := NewYAMLCodec().Parse(strings.NewReader(samplePayloadYAML))
	require.NoError(t, err)

	assert.Empty(t, p.Links)
	require.Len(t, p.Edges, 1)

	g, err := adapter.Adapt(p)
	require.NoError(t, err)
	require.Len(t, g.Links, 1)
	assert.InDelta(t, 0.9, g.Links[0].StrengthOrDefault(), 1e-9)

	r1, ok := g.NodeByID("r1")
	require.True(t, ok)
	assert.Equal(t, domain.FrequencyVeryHigh, r1.Frequency())
}

func TestYAMLCodec_ExportReadsBack(t *testing.T) {
	p, err := NewYAMLCodec().Parse(strings.NewReader(samplePayloadYAML))
	require.NoError(t, err)
	g, err := adapter.Adapt(p)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewYAMLCodec().Export(g, &buf))

	again, err := NewYAMLCodec().Parse(&buf)
	require.NoError(t, err)
	g2, err := adapter.Adapt(again)
	require.NoError(t, err)

	assert.Equal(t, g.Nodes, g2.Nodes)
	assert.Equal(t, g.Links, g2.Links)
}

func TestJSONCodec_ExportReadsBack(t *testing.T) {
	p, err := NewJSONCodec().Parse(strings.NewReader(samplePayloadJSON))
	require.NoError(t, err)
	g, err := adapter.Adapt(p)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(g, &buf))
	assert.NotContains(t, buf.String(), `"root": {`)
	assert.Contains(t, buf.String(), `"properties"`)

	again, err := NewJSONCodec().Parse(&buf)
	require.NoError(t, err)
	g2, err := adapter.Adapt(again)
	require.NoError(t, err)

	assert.Equal(t, g.Nodes, g2.Nodes)
	assert.Equal(t, g.Links, g2.Links)

	root, ok := g2.NodeByID("root_philos")
	require.True(t, ok)
	assert.Equal(t, domain.FrequencyVeryHigh, root.Frequency())
	assert.Equal(t, "emotion", root.Root.Category)
	assert.InDelta(t, 0.9, g2.Links[0].StrengthOrDefault(), 1e-9)

	word, ok := g2.NodeByID("word_philosophy")
	require.True(t, ok)
	assert.Equal(t, "Philosophy", word.Word.Name)
}

func TestExport_CrossFormat(t *testing.T) {
	p, err := NewYAMLCodec().Parse(strings.NewReader(samplePayloadYAML))
	require.NoError(t, err)
	g, err := adapter.Adapt(p)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(g, &buf))
	fromJSON, err := NewJSONCodec().Parse(&buf)
	require.NoError(t, err)
	g2, err := adapter.Adapt(fromJSON)
	require.NoError(t, err)

	assert.Equal(t, g.Nodes, g2.Nodes)
	assert.Equal(t, g.Links, g2.Links)
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		format  string
		wantErr bool
	}{
		{"graph.json", "json", false},
		{"graph.YAML", "yaml", false},
		{"fixtures/graph.yml", "yaml", false},
		{"graph.csv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			imp, err := ForPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.format, imp.Format())
		})
	}
}

func TestExporterForPath(t *testing.T) {
	exp, err := ExporterForPath("out/graph.yml")
	require.NoError(t, err)
	assert.Equal(t, "yaml", exp.Format())

	exp, err = ExporterForPath("graph.JSON")
	require.NoError(t, err)
	assert.Equal(t, "json", exp.Format())

	_, err = ExporterForPath("graph.svg")
	assert.Error(t, err)
}
