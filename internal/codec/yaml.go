package codec

import (
	"fmt"
	"io"

	"rhiza/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export, mostly for hand-written fixtures
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse reads a backend payload from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Payload, error) {
	var payload domain.Payload
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &payload, nil
}

// Export writes an adapted graph as YAML in the same shape Parse accepts
func (c *YAMLCodec) Export(graph *domain.Graph, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(toPayload(graph)); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
