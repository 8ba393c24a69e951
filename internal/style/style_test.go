package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rhiza/internal/domain"
)

func root(freq domain.Frequency, category string, pos domain.PartOfSpeech) domain.Node {
	return domain.NewRootNode("r", "philo", domain.RootDetails{
		Frequency:    freq,
		Category:     category,
		PartOfSpeech: pos,
	})
}

func TestNodeRadius_FrequencyOrdering(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			theme, err := Preset(name)
			require.NoError(t, err)

			vh := root(domain.FrequencyVeryHigh, "abstract_concept", "")
			low := root(domain.FrequencyLow, "abstract_concept", "")
			assert.Greater(t, theme.NodeRadius(&vh), theme.NodeRadius(&low))
		})
	}
}

func TestBasicTheme_AbsoluteSizes(t *testing.T) {
	theme := BasicTheme()
	tests := []struct {
		freq domain.Frequency
		want float64
	}{
		{domain.FrequencyVeryHigh, 20},
		{domain.FrequencyHigh, 15},
		{domain.FrequencyMedium, 12},
		{domain.FrequencyLow, 10},
		{"", 12},
		{"legendary", 12},
	}
	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			n := root(tt.freq, "", "")
			assert.InDelta(t, tt.want, theme.NodeRadius(&n), 1e-9)
		})
	}

	w := domain.NewWordNode("w", "philosophy", domain.NodeTypeWord)
	assert.Equal(t, 15.0, theme.NodeRadius(&w))
}

func TestDerivation_Deterministic(t *testing.T) {
	theme := EnrichedTheme()
	n := root(domain.FrequencyHigh, "emotion", domain.PartOfSpeechVerb)

	assert.Equal(t, theme.NodeRadius(&n), theme.NodeRadius(&n))
	assert.Equal(t, theme.NodeFill(&n), theme.NodeFill(&n))
	assert.Equal(t, theme.NodeStroke(&n), theme.NodeStroke(&n))
	assert.Equal(t, theme.NodeLabel(&n), theme.NodeLabel(&n))
}

func TestDefaults_UnknownValues(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			theme, err := Preset(name)
			require.NoError(t, err)

			n := root("mythic", "astrology", "interjection")

			assert.Positive(t, theme.NodeRadius(&n))
			assert.NotEmpty(t, theme.NodeFill(&n).Color)
			assert.Equal(t, theme.Node.CategoryFill[DefaultKey], theme.NodeFill(&n).Color)

			stroke := theme.NodeStroke(&n)
			assert.Positive(t, stroke.Width)
			assert.NotEmpty(t, stroke.Color)
			assert.Empty(t, stroke.Dash)

			l := domain.Link{Source: "w", Target: "r"}
			a := theme.LinkStyle(&l, &n)
			assert.NotEmpty(t, a.Color)
			assert.Positive(t, a.Width)
			assert.Positive(t, a.Opacity)
		})
	}
}

func TestBasicTheme_Strokes(t *testing.T) {
	theme := BasicTheme()
	tests := []struct {
		pos   domain.PartOfSpeech
		width float64
		dash  string
	}{
		{domain.PartOfSpeechNoun, 3, ""},
		{domain.PartOfSpeechAdjective, 2, "5,3"},
		{domain.PartOfSpeechVerb, 4, ""},
		{domain.PartOfSpeechAdverb, 2, "2,2"},
		{"", 2, ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.pos), func(t *testing.T) {
			n := root("", "", tt.pos)
			s := theme.NodeStroke(&n)
			assert.Equal(t, tt.width, s.Width)
			assert.Equal(t, tt.dash, s.Dash)
			assert.Equal(t, "#fff", s.Color)
		})
	}
}

func TestEnrichedTheme_SalientStroke(t *testing.T) {
	theme := EnrichedTheme()
	vh := root(domain.FrequencyVeryHigh, "", domain.PartOfSpeechNoun)
	s := theme.NodeStroke(&vh)
	assert.Equal(t, 4.0, s.Width)
	assert.Equal(t, "#2c3e50", s.Color)

	label := theme.NodeLabel(&vh)
	assert.Equal(t, 14.0, label.FontSize)
	assert.True(t, label.Bold)
	assert.Equal(t, -18.0, label.DY)
}

func TestLinkStyle_Frequency(t *testing.T) {
	theme := BasicTheme()
	l := domain.Link{Source: "w", Target: "r"}

	vh := root(domain.FrequencyVeryHigh, "", "")
	a := theme.LinkStyle(&l, &vh)
	assert.Equal(t, LinkAppearance{Color: "#4caf50", Width: 4, Opacity: 0.9}, a)

	low := root(domain.FrequencyLow, "", "")
	b := theme.LinkStyle(&l, &low)
	assert.Less(t, b.Width, a.Width)
	assert.Less(t, b.Opacity, a.Opacity)

	assert.Equal(t, "#999", theme.LinkStyle(&l, nil).Color)
}

func TestLinkStyle_Strength(t *testing.T) {
	theme := EnrichedTheme()

	strong := domain.NewLink("w", "r", 0.9)
	a := theme.LinkStyle(&strong, nil)
	assert.Equal(t, "rgba(108, 117, 125, 0.9)", a.Color)
	assert.InDelta(t, 3.6, a.Width, 1e-9)
	assert.Empty(t, a.Dash)

	weak := domain.NewLink("w", "r", 0.1)
	b := theme.LinkStyle(&weak, nil)
	assert.Equal(t, "rgba(108, 117, 125, 0.3)", b.Color)
	assert.Equal(t, 1.0, b.Width)
	assert.Equal(t, "5,5", b.Dash)
}

func TestLinkDistance(t *testing.T) {
	enriched := EnrichedTheme()
	strong := domain.NewLink("w", "r", 0.9)
	weak := domain.NewLink("w", "r", 0.1)
	assert.Less(t, enriched.LinkDistance(&strong), enriched.LinkDistance(&weak))
	assert.InDelta(t, 95, enriched.LinkDistance(&strong), 1e-9)

	basic := BasicTheme()
	assert.Equal(t, 80.0, basic.LinkDistance(&strong))
	assert.Equal(t, 80.0, basic.LinkDistance(&weak))
}

func TestCharge_Salience(t *testing.T) {
	theme := EnrichedTheme()
	vh := root(domain.FrequencyVeryHigh, "", "")
	med := root(domain.FrequencyMedium, "", "")
	assert.Equal(t, -600.0, theme.Charge(&vh))
	assert.Equal(t, -400.0, theme.Charge(&med))
	assert.Greater(t, theme.CollideRadius(&vh), theme.NodeRadius(&vh))
}

func TestEnrichedFill_Gradient(t *testing.T) {
	theme := EnrichedTheme()
	n := root("", "emotion", "")
	f := theme.NodeFill(&n)
	require.NotNil(t, f.Gradient)
	assert.Equal(t, "gradient-emotion", f.GradientID)
	assert.Equal(t, "#ff8e8e", f.Gradient.To)

	w := domain.NewWordNode("w", "philosophy", domain.NodeTypeWord)
	assert.Equal(t, "gradient-default", theme.NodeFill(&w).GradientID)
}

func TestLegend(t *testing.T) {
	assert.Nil(t, BasicTheme().Legend())

	entries := EnrichedTheme().Legend()
	require.Len(t, entries, 5)
	assert.Equal(t, "abstract_concept", entries[0].Category)
	assert.Equal(t, "abstract concept", entries[0].Label)
	for _, e := range entries {
		assert.NotEqual(t, DefaultKey, e.Category)
	}
}

func TestLens(t *testing.T) {
	withCategory := root("", "emotion", "")
	withPOS := root("", "", domain.PartOfSpeechNoun)
	bare := root("", "", "")

	tests := []struct {
		mode        Mode
		node        domain.Node
		width, opac float64
	}{
		{ModeCategory, withCategory, 4, 1},
		{ModeCategory, bare, 1, 0.3},
		{ModeGrammar, withPOS, 5, 1},
		{ModeGrammar, bare, 1, 0.3},
		{ModeDefault, withPOS, 3, 1},
		{ModeDefault, root("", "", domain.PartOfSpeechVerb), 2, 1},
		{ModeDefault, bare, 1, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			w, o := Lens(tt.mode, &tt.node)
			assert.Equal(t, tt.width, w)
			assert.Equal(t, tt.opac, o)
		})
	}
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeCategory, ParseMode("Category"))
	assert.Equal(t, ModeGrammar, ParseMode(" grammar "))
	assert.Equal(t, ModeDefault, ParseMode("rainbow"))
	assert.Equal(t, ModeDefault, ParseMode(""))
}

func TestPreset_ReturnsIndependentCopies(t *testing.T) {
	a, err := Preset(Basic)
	require.NoError(t, err)
	b, err := Preset(Basic)
	require.NoError(t, err)

	a.Node.CategoryFill["emotion"] = "#000"
	*a.Forces.LinkStrength = 0.1
	assert.Equal(t, "#ff6b6b", b.Node.CategoryFill["emotion"])
	assert.Equal(t, 0.8, *b.Forces.LinkStrength)

	_, err = Preset("neon")
	assert.Error(t, err)
}

func TestPresets_Valid(t *testing.T) {
	for _, name := range PresetNames() {
		theme, err := Preset(name)
		require.NoError(t, err)
		assert.NoError(t, theme.Validate(), name)
	}
}

func TestLoadTheme(t *testing.T) {
	doc := `
extends: enriched
name: classroom
zoom:
  min: 0.5
node:
  category_fill:
    religion: "#f39c12"
forces:
  charge: -250
`
	theme, err := LoadTheme(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "classroom", theme.Name)
	assert.Equal(t, 0.5, theme.Zoom.Min)
	assert.Equal(t, 4.0, theme.Zoom.Max)
	assert.Equal(t, -250.0, theme.Forces.Charge)
	assert.Equal(t, "#f39c12", theme.Node.CategoryFill["religion"])
	assert.Equal(t, "#ff6b6b", theme.Node.CategoryFill["emotion"])
	assert.Equal(t, LinkByStrength, theme.Link.Mode)
}

func TestLoadTheme_Invalid(t *testing.T) {
	_, err := LoadTheme(strings.NewReader("zoom:\n  min: 3\n  max: 1\n"))
	assert.Error(t, err)

	_, err = LoadTheme(strings.NewReader("extends: neon\n"))
	assert.Error(t, err)

	theme, err := LoadTheme(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Basic, theme.Name)
}

func TestLoadTheme_LegendToggle(t *testing.T) {
	theme, err := LoadTheme(strings.NewReader("extends: basic\nlegend: true\n"))
	require.NoError(t, err)
	assert.True(t, theme.ShowLegend)
	assert.NotEmpty(t, theme.Legend())

	theme, err = LoadTheme(strings.NewReader("extends: enriched\nlegend: false\n"))
	require.NoError(t, err)
	assert.False(t, theme.ShowLegend)
	assert.Nil(t, theme.Legend())
}
