package engine

import "rhiza/internal/domain"

// Frame is an immutable picture of a visualization at one instant.
// Frames handed to subscribers are shared and must not be modified.
type Frame struct {
	Engine    string      `json:"engine"`
	Container string      `json:"container"`
	Seq       uint64      `json:"seq"`
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	Transform Transform   `json:"transform"`
	Nodes     []NodeView  `json:"nodes"`
	Links     []LinkView  `json:"links"`
	Labels    []LabelView `json:"labels"`

	Legend    []LegendItem  `json:"legend,omitempty"`
	Gradients []GradientDef `json:"gradients,omitempty"`
	Tooltip   Tooltip       `json:"tooltip"`

	Mode    string  `json:"mode"`
	Alpha   float64 `json:"alpha"`
	Settled bool    `json:"settled"`
	Notice  string  `json:"notice,omitempty"`
}

// NodeView is a rendered node
type NodeView struct {
	ID          string          `json:"id"`
	Label       string          `json:"label"`
	Type        domain.NodeType `json:"type"`
	X           float64         `json:"x"`
	Y           float64         `json:"y"`
	Radius      float64         `json:"r"`
	Fill        string          `json:"fill"`
	GradientID  string          `json:"gradient,omitempty"`
	Stroke      string          `json:"stroke"`
	StrokeWidth float64         `json:"stroke_width"`
	Dash        string          `json:"dash,omitempty"`
	Opacity     float64         `json:"opacity"`
	Pinned      bool            `json:"pinned,omitempty"`
	Hovered     bool            `json:"hovered,omitempty"`
}

// LinkView is a rendered link
type LinkView struct {
	Source  string  `json:"source"`
	Target  string  `json:"target"`
	X1      float64 `json:"x1"`
	Y1      float64 `json:"y1"`
	X2      float64 `json:"x2"`
	Y2      float64 `json:"y2"`
	Color   string  `json:"color"`
	Width   float64 `json:"width"`
	Opacity float64 `json:"opacity"`
	Dash    string  `json:"dash,omitempty"`
}

// LabelView is a rendered node label anchored above its node
type LabelView struct {
	NodeID   string  `json:"node_id"`
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FontSize float64 `json:"font_size"`
	Bold     bool    `json:"bold,omitempty"`
	Color    string  `json:"color"`
}

// LegendItem is one category row of the legend
type LegendItem struct {
	Category   string `json:"category"`
	Label      string `json:"label"`
	Fill       string `json:"fill"`
	GradientID string `json:"gradient,omitempty"`
}

// GradientDef is a two-stop gradient referenced by nodes and legend items
type GradientDef struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Node returns the view of a node by id
func (f *Frame) Node(id string) (NodeView, bool) {
	for _, n := range f.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeView{}, false
}
