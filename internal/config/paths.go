package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "RHIZA_CONFIG"
	// ConfigFileName is the config file looked up in the working directory
	ConfigFileName = "rhiza.yaml"
	// ConfigDirName is the config directory name under XDG
	ConfigDirName = "rhiza"
)

// fileNames are tried in each config directory, YAML first
var fileNames = []string{"config.yaml", "config.yml", "config.toml"}

// CandidatePaths lists the config locations in priority order:
//  1. $RHIZA_CONFIG
//  2. ./rhiza.yaml, ./rhiza.toml
//  3. $XDG_CONFIG_HOME/rhiza/config.{yaml,yml,toml}
//  4. ~/.config/rhiza/config.{yaml,yml,toml}
//  5. /etc/rhiza/config.{yaml,yml,toml}
func CandidatePaths() []string {
	var paths []string
	if path := os.Getenv(EnvConfigPath); path != "" {
		paths = append(paths, path)
	}

	paths = append(paths, ConfigFileName, "rhiza.toml")

	var dirs []string
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		dirs = append(dirs, filepath.Join(xdgHome, ConfigDirName))
	}
	if home := os.Getenv("HOME"); home != "" {
		dirs = append(dirs, filepath.Join(home, ".config", ConfigDirName))
	}
	dirs = append(dirs, filepath.Join("/etc", ConfigDirName))

	for _, dir := range dirs {
		for _, name := range fileNames {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths
}

// FindConfigPath returns the first existing candidate path, or "" when there is none
func FindConfigPath() string {
	for _, path := range CandidatePaths() {
		if !Exists(path) {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}
	return ""
}

// DefaultConfigPath returns the preferred location for a new config file
// Prefers XDG config home, falls back to working directory
func DefaultConfigPath() string {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, ConfigDirName, "config.yaml")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", ConfigDirName, "config.yaml")
	}
	return ConfigFileName
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

// Exists reports whether path is a regular file
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
