package style

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// themeHeader is read first to find the preset a theme file extends
type themeHeader struct {
	Extends string `yaml:"extends"`
}

// LoadTheme reads a YAML theme. The document may name a preset under
// "extends" (default "basic"); its fields override that preset's values and
// table entries are merged key by key.
func LoadTheme(r io.Reader) (*Theme, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme: %w", err)
	}

	var hdr themeHeader
	if err := yaml.Unmarshal(data, &hdr); err != nil {
		return nil, fmt.Errorf("failed to parse theme: %w", err)
	}
	if hdr.Extends == "" {
		hdr.Extends = Basic
	}

	theme, err := Preset(hdr.Extends)
	if err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(theme); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse theme: %w", err)
	}
	if err := theme.Validate(); err != nil {
		return nil, err
	}
	return theme, nil
}

// LoadThemeFile reads a YAML theme from disk
func LoadThemeFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open theme file: %w", err)
	}
	defer f.Close()

	t, err := LoadTheme(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
