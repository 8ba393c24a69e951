package engine

import (
	"fmt"

	"rhiza/internal/style"
)

// dragAlphaTarget keeps the layout warm while a node is held
const dragAlphaTarget = 0.3

// Intent is an interaction applied by the engine between ticks
type Intent interface {
	// Kind names the intent for logs and metrics
	Kind() string
	apply(e *Engine) error
}

// DragStart pins a node at its current position and reheats the layout
type DragStart struct {
	Node string  `json:"node"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// DragMove moves a dragged node's pin to a screen point
type DragMove struct {
	Node string  `json:"node"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// DragEnd releases a dragged node
type DragEnd struct {
	Node string `json:"node"`
}

// HoverEnter highlights a node and shows its tooltip near the pointer
type HoverEnter struct {
	Node string  `json:"node"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// HoverExit removes the highlight and hides the tooltip
type HoverExit struct {
	Node string `json:"node"`
}

// Zoom scales the viewport by Factor around screen point (X, Y)
type Zoom struct {
	Factor float64 `json:"factor"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Pan translates the viewport
type Pan struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// ApplyMode switches the educational lens
type ApplyMode struct {
	Mode style.Mode `json:"mode"`
}

func (DragStart) Kind() string  { return "drag_start" }
func (DragMove) Kind() string   { return "drag_move" }
func (DragEnd) Kind() string    { return "drag_end" }
func (HoverEnter) Kind() string { return "hover_enter" }
func (HoverExit) Kind() string  { return "hover_exit" }
func (Zoom) Kind() string       { return "zoom" }
func (Pan) Kind() string        { return "pan" }
func (ApplyMode) Kind() string  { return "mode" }

func (i DragStart) apply(e *Engine) error {
	idx, err := e.nodeIndex(i.Node)
	if err != nil {
		return err
	}
	b := e.sim.Bodies()[idx]
	e.sim.Pin(idx, b.X, b.Y)
	e.dragging[idx] = struct{}{}
	e.sim.SetAlphaTarget(dragAlphaTarget)
	e.restart()
	return nil
}

func (i DragMove) apply(e *Engine) error {
	if !finite(i.X, i.Y) {
		return ErrInvalidGesture
	}
	idx, err := e.nodeIndex(i.Node)
	if err != nil {
		return err
	}
	if _, ok := e.dragging[idx]; !ok {
		return fmt.Errorf("%w: %s", ErrNotDragging, i.Node)
	}
	x, y := e.view.t.Invert(i.X, i.Y)
	e.sim.Pin(idx, x, y)
	e.restart()
	return nil
}

func (i DragEnd) apply(e *Engine) error {
	idx, err := e.nodeIndex(i.Node)
	if err != nil {
		return err
	}
	if _, ok := e.dragging[idx]; !ok {
		return fmt.Errorf("%w: %s", ErrNotDragging, i.Node)
	}
	e.sim.Unpin(idx)
	delete(e.dragging, idx)
	if len(e.dragging) == 0 {
		e.sim.SetAlphaTarget(0)
	}
	return nil
}

func (i HoverEnter) apply(e *Engine) error {
	if !finite(i.X, i.Y) {
		return ErrInvalidGesture
	}
	idx, err := e.nodeIndex(i.Node)
	if err != nil {
		return err
	}
	if e.hovered >= 0 && e.hovered != idx {
		e.scene.unhover(e.hovered)
	}
	e.scene.hover(idx, e.theme)
	e.hovered = idx
	e.tip = Tooltip{
		Visible: true,
		NodeID:  i.Node,
		X:       i.X + tooltipOffsetX,
		Y:       i.Y + tooltipOffsetY,
		Opacity: 1,
		Lines:   tooltipLines(e.scene.nodes[idx].node),
	}
	return nil
}

func (i HoverExit) apply(e *Engine) error {
	idx, err := e.nodeIndex(i.Node)
	if err != nil {
		return err
	}
	e.scene.unhover(idx)
	if e.hovered == idx {
		e.hovered = -1
		e.tip.Visible = false
		e.tip.Opacity = 0
	}
	return nil
}

func (i Zoom) apply(e *Engine) error {
	return e.view.zoomAt(i.Factor, i.X, i.Y)
}

func (i Pan) apply(e *Engine) error {
	return e.view.pan(i.DX, i.DY)
}

func (i ApplyMode) apply(e *Engine) error {
	m := style.ParseMode(string(i.Mode))
	e.scene.applyLens(m)
	e.mode = m
	return nil
}
