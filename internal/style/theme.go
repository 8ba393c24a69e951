package style

import (
	"fmt"
	"maps"

	"github.com/go-playground/validator/v10"

	"rhiza/internal/domain"
)

// DefaultKey is the fallback bucket of every lookup table
const DefaultKey = "default"

// LinkMode selects how link appearance is derived
type LinkMode string

const (
	// LinkByFrequency styles a link by the frequency of its root endpoint
	LinkByFrequency LinkMode = "frequency"
	// LinkByStrength styles a link by its own strength
	LinkByStrength LinkMode = "strength"
)

// Canvas is the drawing surface size in pixels
type Canvas struct {
	Width  float64 `yaml:"width" validate:"gt=0"`
	Height float64 `yaml:"height" validate:"gt=0"`
}

// ZoomExtent bounds the viewport scale
type ZoomExtent struct {
	Min float64 `yaml:"min" validate:"gt=0"`
	Max float64 `yaml:"max" validate:"gtefield=Min"`
}

// Stroke is the outline of a node
type Stroke struct {
	Color string  `yaml:"color,omitempty"`
	Width float64 `yaml:"width"`
	Dash  string  `yaml:"dash,omitempty"`
}

// Gradient is a two-stop fill
type Gradient struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// LinkAppearance is the rendered look of a link
type LinkAppearance struct {
	Color   string  `yaml:"color"`
	Width   float64 `yaml:"width"`
	Opacity float64 `yaml:"opacity"`
	Dash    string  `yaml:"dash,omitempty"`
}

// NodeTheme holds node sizing and colouring tables
type NodeTheme struct {
	WordRadius    float64 `yaml:"word_radius" validate:"gt=0"`
	RootRadius    float64 `yaml:"root_radius" validate:"gt=0"`
	RelatedRadius float64 `yaml:"related_radius" validate:"gt=0"`
	// FrequencyScale multiplies the base radius of root nodes
	FrequencyScale map[string]float64 `yaml:"frequency_scale"`

	WordFill      string              `yaml:"word_fill"`
	RelatedFill   string              `yaml:"related_fill"`
	CategoryFill  map[string]string   `yaml:"category_fill"`
	Gradients     map[string]Gradient `yaml:"gradients,omitempty"`
	WordGradient  bool                `yaml:"word_gradient"`
	StrokeColor   string              `yaml:"stroke_color"`
	WordStroke    Stroke              `yaml:"word_stroke"`
	PartOfSpeech  map[string]Stroke   `yaml:"part_of_speech"`
	SalientStroke float64             `yaml:"salient_stroke_width,omitempty"`

	HoverScale       float64 `yaml:"hover_scale" validate:"gte=1"`
	HoverStrokeWidth float64 `yaml:"hover_stroke_width" validate:"gt=0"`
}

// LinkTheme holds link appearance tables
type LinkTheme struct {
	Mode        LinkMode                  `yaml:"mode" validate:"oneof=frequency strength"`
	ByFrequency map[string]LinkAppearance `yaml:"by_frequency,omitempty"`
	StrengthRGB string                    `yaml:"strength_rgb,omitempty"`
	DashBelow   float64                   `yaml:"dash_below,omitempty"`
	Dash        string                    `yaml:"dash,omitempty"`
}

// LabelTheme holds label placement and typography
type LabelTheme struct {
	WordFont    float64 `yaml:"word_font" validate:"gt=0"`
	RootFont    float64 `yaml:"root_font" validate:"gt=0"`
	WordDY      float64 `yaml:"word_dy"`
	RootDY      float64 `yaml:"root_dy"`
	SalientBump float64 `yaml:"salient_bump,omitempty"`
	SalientBold bool    `yaml:"salient_bold"`
	Color       string  `yaml:"color"`
	// ShowTransliteration appends "(translit)" on a second line of root labels
	ShowTransliteration bool `yaml:"show_transliteration"`
}

// ForceTheme parameterizes the layout forces
type ForceTheme struct {
	LinkDistanceMin float64 `yaml:"link_distance_min" validate:"gte=0"`
	LinkDistanceMax float64 `yaml:"link_distance_max" validate:"gtefield=LinkDistanceMin"`
	// LinkStrength overrides the degree-based default stiffness when set
	LinkStrength   *float64 `yaml:"link_strength,omitempty"`
	Charge         float64  `yaml:"charge"`
	SalientCharge  float64  `yaml:"salient_charge" validate:"gte=1"`
	CenterStrength float64  `yaml:"center_strength" validate:"gte=0,lte=1"`
	CollideMargin  float64  `yaml:"collide_margin" validate:"gte=0"`
	Theta          float64  `yaml:"theta" validate:"gte=0"`
}

// Theme is the complete set of styling and physics tables for one engine
type Theme struct {
	Name       string     `yaml:"name"`
	Extends    string     `yaml:"extends,omitempty"`
	Canvas     Canvas     `yaml:"canvas"`
	Zoom       ZoomExtent `yaml:"zoom"`
	Node       NodeTheme  `yaml:"node"`
	Link       LinkTheme  `yaml:"link"`
	Label      LabelTheme `yaml:"label"`
	Forces     ForceTheme `yaml:"forces"`
	ShowLegend bool       `yaml:"legend"`
}

var themeValidator = validator.New()

// Validate checks numeric ranges of the theme
func (t *Theme) Validate() error {
	if err := themeValidator.Struct(t); err != nil {
		return fmt.Errorf("invalid theme %q: %w", t.Name, err)
	}
	return nil
}

// Clone returns a deep copy so engines never share table state
func (t *Theme) Clone() *Theme {
	c := *t
	c.Node.FrequencyScale = maps.Clone(t.Node.FrequencyScale)
	c.Node.CategoryFill = maps.Clone(t.Node.CategoryFill)
	c.Node.Gradients = maps.Clone(t.Node.Gradients)
	c.Node.PartOfSpeech = maps.Clone(t.Node.PartOfSpeech)
	c.Link.ByFrequency = maps.Clone(t.Link.ByFrequency)
	if t.Forces.LinkStrength != nil {
		s := *t.Forces.LinkStrength
		c.Forces.LinkStrength = &s
	}
	return &c
}

func lookup[V any](table map[string]V, key string) V {
	if v, ok := table[key]; ok && key != "" {
		return v
	}
	return table[DefaultKey]
}

func frequencyKey(f domain.Frequency) string {
	if f.Known() {
		return string(f)
	}
	return DefaultKey
}
