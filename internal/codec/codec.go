package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"rhiza/internal/domain"
)

// Importer interface for reading raw graph payloads from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Payload, error)
	Format() string
}

// Exporter interface for writing adapted graphs to various formats
type Exporter interface {
	Export(graph *domain.Graph, w io.Writer) error
	Format() string
}

// ForPath picks an importer from a file extension
func ForPath(path string) (Importer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONCodec(), nil
	case ".yaml", ".yml":
		return NewYAMLCodec(), nil
	}
	return nil, fmt.Errorf("no codec for %q (want .json, .yaml or .yml)", path)
}

// ExporterForPath picks an exporter from a file extension
func ExporterForPath(path string) (Exporter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONCodec(), nil
	case ".yaml", ".yml":
		return NewYAMLCodec(), nil
	}
	return nil, fmt.Errorf("no exporter for %q (want .json, .yaml or .yml)", path)
}
