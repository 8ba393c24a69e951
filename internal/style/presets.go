package style

import (
	"fmt"
	"maps"
	"sort"
)

// Preset names
const (
	Basic    = "basic"
	Enriched = "enriched"
)

var categoryColors = map[string]string{
	"emotion":          "#ff6b6b",
	"abstract_concept": "#4ecdc4",
	"political":        "#9b59b6",
	"academic":         "#3498db",
	"nature":           "#2ecc71",
	"psychology":       "#e74c3c",
	"religion":         "#f39c12",
	"human":            "#34495e",
	"communication":    "#e67e22",
	"perception":       "#1abc9c",
	"distance":         "#95a5a6",
	"size":             "#8e44ad",
	"skill":            "#16a085",
	DefaultKey:         "#7f8c8d",
}

func ptr(f float64) *float64 { return &f }

// BasicTheme returns the plain category-coloured preset
func BasicTheme() *Theme {
	return &Theme{
		Name:   Basic,
		Canvas: Canvas{Width: 600, Height: 400},
		Zoom:   ZoomExtent{Min: 0.5, Max: 3},
		Node: NodeTheme{
			WordRadius:    15,
			RootRadius:    12,
			RelatedRadius: 10,
			// 20/15/12/10 px for a 12 px root
			FrequencyScale: map[string]float64{
				"very_high": 20.0 / 12,
				"high":      15.0 / 12,
				"medium":    1,
				"low":       10.0 / 12,
				DefaultKey:  1,
			},
			WordFill:     "#2c5aa0",
			RelatedFill:  "#5b8bd0",
			CategoryFill: maps.Clone(categoryColors),
			StrokeColor:  "#fff",
			WordStroke:   Stroke{Width: 2},
			PartOfSpeech: map[string]Stroke{
				"noun":      {Width: 3},
				"adjective": {Width: 2, Dash: "5,3"},
				"verb":      {Width: 4},
				"adverb":    {Width: 2, Dash: "2,2"},
				DefaultKey:  {Width: 2},
			},
			HoverScale:       1.3,
			HoverStrokeWidth: 4,
		},
		Link: LinkTheme{
			Mode: LinkByFrequency,
			ByFrequency: map[string]LinkAppearance{
				"very_high": {Color: "#4caf50", Width: 4, Opacity: 0.9},
				"high":      {Color: "#8bc34a", Width: 3, Opacity: 0.8},
				"medium":    {Color: "#ffc107", Width: 2, Opacity: 0.6},
				"low":       {Color: "#ff9800", Width: 2, Opacity: 0.6},
				DefaultKey:  {Color: "#999", Width: 2, Opacity: 0.6},
			},
		},
		Label: LabelTheme{
			WordFont: 12,
			RootFont: 12,
			WordDY:   -20,
			RootDY:   -18,
			Color:    "#333",
		},
		Forces: ForceTheme{
			LinkDistanceMin: 80,
			LinkDistanceMax: 80,
			LinkStrength:    ptr(0.8),
			Charge:          -200,
			SalientCharge:   1.5,
			CenterStrength:  1,
			CollideMargin:   15,
			Theta:           0.9,
		},
	}
}

// EnrichedTheme returns the gradient preset with strength-keyed links and a legend
func EnrichedTheme() *Theme {
	return &Theme{
		Name:   Enriched,
		Canvas: Canvas{Width: 800, Height: 600},
		Zoom:   ZoomExtent{Min: 0.3, Max: 4},
		Node: NodeTheme{
			WordRadius:    15,
			RootRadius:    12,
			RelatedRadius: 12,
			FrequencyScale: map[string]float64{
				"very_high": 1.4,
				"high":      1.2,
				"medium":    1,
				"low":       0.8,
				DefaultKey:  1,
			},
			WordFill:    "#95a5a6",
			RelatedFill: "#95a5a6",
			CategoryFill: map[string]string{
				"emotion":          "#ff6b6b",
				"abstract_concept": "#4ecdc4",
				"academic":         "#45b7d1",
				"nature":           "#96ceb4",
				"psychology":       "#dda0dd",
				DefaultKey:         "#95a5a6",
			},
			Gradients: map[string]Gradient{
				"emotion":          {From: "#ff6b6b", To: "#ff8e8e"},
				"abstract_concept": {From: "#4ecdc4", To: "#7dd3d8"},
				"academic":         {From: "#45b7d1", To: "#6bc5d2"},
				"nature":           {From: "#96ceb4", To: "#a8d5ba"},
				"psychology":       {From: "#dda0dd", To: "#e6b3e6"},
				DefaultKey:         {From: "#95a5a6", To: "#b2bec3"},
			},
			WordGradient: true,
			StrokeColor:  "#95a5a6",
			WordStroke:   Stroke{Color: "#95a5a6", Width: 2},
			PartOfSpeech: map[string]Stroke{
				"noun":      {Color: "#2c3e50", Width: 2},
				"adjective": {Color: "#e74c3c", Width: 2},
				"verb":      {Color: "#27ae60", Width: 2},
				DefaultKey:  {Color: "#95a5a6", Width: 2},
			},
			SalientStroke:    4,
			HoverScale:       1.3,
			HoverStrokeWidth: 4,
		},
		Link: LinkTheme{
			Mode:        LinkByStrength,
			StrengthRGB: "108, 117, 125",
			DashBelow:   0.7,
			Dash:        "5,5",
		},
		Label: LabelTheme{
			WordFont:            14,
			RootFont:            12,
			WordDY:              -20,
			RootDY:              -18,
			SalientBump:         2,
			SalientBold:         true,
			Color:               "#2d3748",
			ShowTransliteration: true,
		},
		Forces: ForceTheme{
			LinkDistanceMin: 80,
			LinkDistanceMax: 230,
			Charge:          -400,
			SalientCharge:   1.5,
			CenterStrength:  1,
			CollideMargin:   10,
			Theta:           0.9,
		},
		ShowLegend: true,
	}
}

var presets = map[string]func() *Theme{
	Basic:    BasicTheme,
	Enriched: EnrichedTheme,
}

// Preset returns a fresh copy of the named preset
func Preset(name string) (*Theme, error) {
	fn, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown style preset %q (available: %v)", name, PresetNames())
	}
	return fn().Clone(), nil
}

// PresetNames lists the built-in presets in sorted order
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
