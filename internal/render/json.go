package render

import (
	"encoding/json"
	"fmt"
	"io"

	"rhiza/internal/engine"
)

// JSON encodes frames for clients that draw them themselves
type JSON struct{}

// NewJSON creates the JSON back end
func NewJSON() *JSON { return &JSON{} }

func (*JSON) Name() string        { return "json" }
func (*JSON) ContentType() string { return "application/json" }

// Render implements Backend
func (*JSON) Render(w io.Writer, f *engine.Frame) error {
	if err := json.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return nil
}
