package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"rhiza/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse reads a backend payload from JSON.
// Numbers in properties are kept as json.Number so strengths survive untouched.
func (c *JSONCodec) Parse(r io.Reader) (*domain.Payload, error) {
	var payload domain.Payload
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &payload, nil
}

// Export writes an adapted graph as JSON in the same shape Parse accepts
func (c *JSONCodec) Export(graph *domain.Graph, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(toPayload(graph)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
