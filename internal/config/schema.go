package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure
type Config struct {
	Version int           `yaml:"version" toml:"version"`
	Server  ServerConfig  `yaml:"server" toml:"server"`
	Backend BackendConfig `yaml:"backend" toml:"backend"`
	Cache   CacheConfig   `yaml:"cache" toml:"cache"`
	Render  RenderConfig  `yaml:"render" toml:"render"`
	Proxy   ProxyConfig   `yaml:"proxy" toml:"proxy"`
	Log     LogConfig     `yaml:"log" toml:"log"`
}

// ServerConfig holds the HTTP API settings
type ServerConfig struct {
	Addr            string   `yaml:"addr" toml:"addr" validate:"required"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
	CORSOrigins     []string `yaml:"cors_origins,omitempty" toml:"cors_origins,omitempty"`
}

// BackendConfig points at the etymology backend API
type BackendConfig struct {
	URL     string   `yaml:"url" toml:"url" validate:"required,url"`
	Timeout Duration `yaml:"timeout" toml:"timeout"`
}

// CacheConfig holds payload cache settings
type CacheConfig struct {
	// Path is the SQLite database file; ":memory:" keeps the cache in process
	Path          string   `yaml:"path" toml:"path" validate:"required"`
	TTL           Duration `yaml:"ttl" toml:"ttl"`
	PurgeInterval Duration `yaml:"purge_interval" toml:"purge_interval"`
}

// RenderConfig holds layout and rendering settings
type RenderConfig struct {
	Backend string `yaml:"backend" toml:"backend" validate:"required"`
	Preset  string `yaml:"preset" toml:"preset" validate:"required"`
	// ThemeFile overrides Preset and is reloaded when it changes
	ThemeFile     string            `yaml:"theme_file,omitempty" toml:"theme_file,omitempty"`
	TickInterval  Duration          `yaml:"tick_interval" toml:"tick_interval"`
	FrameInterval Duration          `yaml:"frame_interval" toml:"frame_interval"`
	Containers    []ContainerConfig `yaml:"containers" toml:"containers" validate:"dive"`
}

// ContainerConfig declares a mount point; zero sizes use the theme canvas
type ContainerConfig struct {
	ID     string  `yaml:"id" toml:"id" validate:"required"`
	Width  float64 `yaml:"width" toml:"width" validate:"gte=0"`
	Height float64 `yaml:"height" toml:"height" validate:"gte=0"`
}

// ProxyConfig holds the development reverse proxy settings
type ProxyConfig struct {
	Addr      string `yaml:"addr" toml:"addr" validate:"required"`
	APIPrefix string `yaml:"api_prefix" toml:"api_prefix" validate:"required,startswith=/"`
	APITarget string `yaml:"api_target" toml:"api_target" validate:"required,url"`
	UITarget  string `yaml:"ui_target" toml:"ui_target" validate:"required,url"`
}

// LogConfig selects the logger
type LogConfig struct {
	Level  string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" toml:"format" validate:"oneof=json console"`
}

// Duration wraps time.Duration for YAML and TOML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, used by the TOML decoder
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
