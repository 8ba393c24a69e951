package engine

import "errors"

var (
	// ErrAlreadyInitialized is returned by a second Initialize
	ErrAlreadyInitialized = errors.New("visualization already initialized")
	// ErrNotDragging is returned by DragMove or DragEnd for a node that no drag started
	ErrNotDragging = errors.New("node is not being dragged")
	// ErrInvalidGesture is returned for zoom factors that are not positive and finite
	ErrInvalidGesture = errors.New("invalid gesture")
)
