// Package config provides configuration management for rhiza.
//
// Config files are YAML (.yaml, .yml) or TOML (.toml); see CandidatePaths
// for the lookup order. Missing values are filled with defaults and the
// result is validated before use. Durations are written as strings ("30s").
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if isTOML(path) {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, path, fmt.Errorf("parse config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path in the format its extension names
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = c.Marshal(); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}

// Marshal renders the config as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// Validate checks the config against its field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	seen := make(map[string]struct{}, len(c.Render.Containers))
	for _, ct := range c.Render.Containers {
		if _, dup := seen[ct.ID]; dup {
			return fmt.Errorf("invalid config: duplicate container %q", ct.ID)
		}
		seen[ct.ID] = struct{}{}
	}
	return nil
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	defaultDuration(&c.Server.ShutdownTimeout, 10*time.Second)
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}

	if c.Backend.URL == "" {
		c.Backend.URL = "http://127.0.0.1:8000"
	}
	defaultDuration(&c.Backend.Timeout, 30*time.Second)

	if c.Cache.Path == "" {
		c.Cache.Path = ":memory:"
	}
	defaultDuration(&c.Cache.TTL, time.Hour)
	defaultDuration(&c.Cache.PurgeInterval, 10*time.Minute)

	if c.Render.Backend == "" {
		c.Render.Backend = "svg"
	}
	if c.Render.Preset == "" {
		c.Render.Preset = "basic"
	}
	defaultDuration(&c.Render.TickInterval, 16*time.Millisecond)
	defaultDuration(&c.Render.FrameInterval, 50*time.Millisecond)
	if len(c.Render.Containers) == 0 {
		c.Render.Containers = []ContainerConfig{{ID: "graph-viz", Width: 600, Height: 400}}
	}

	if c.Proxy.Addr == "" {
		c.Proxy.Addr = ":3000"
	}
	if c.Proxy.APIPrefix == "" {
		c.Proxy.APIPrefix = "/api"
	}
	if c.Proxy.APITarget == "" {
		c.Proxy.APITarget = "http://127.0.0.1:8000"
	}
	if c.Proxy.UITarget == "" {
		c.Proxy.UITarget = "http://127.0.0.1:5173"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

func defaultDuration(d *Duration, v time.Duration) {
	if *d == 0 {
		*d = Duration(v)
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
