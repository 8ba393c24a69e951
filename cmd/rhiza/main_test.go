package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"rhiza/internal/config"
)

const telephoneJSON = `{
	"nodes": [
		{"id": "telephone", "label": "telephone", "type": "word"},
		{"id": "tele", "label": "τῆλε", "type": "root", "properties": {"meaning": "far", "frequency": "high"}},
		{"id": "phone", "label": "φωνή", "type": "root", "properties": {"meaning": "voice"}}
	],
	"edges": [
		{"source": "telephone", "target": "tele"},
		{"source": "telephone", "target": "phone"}
	]
}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, logLevel, logFormat = "", "", ""
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRenderCommand(t *testing.T) {
	in := writeFile(t, "telephone.json", telephoneJSON)

	t.Run("svg by extension", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "telephone.svg")
		_, err := execute(t, "render", "--in", in, "--out", out, "--ticks", "50")
		require.NoError(t, err)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "<svg"))
		assert.Equal(t, 3, strings.Count(string(data), "<circle "))
	})

	t.Run("json to stdout", func(t *testing.T) {
		stdout, err := execute(t, "render", "--in", in, "--out", "-", "--backend", "json", "--ticks", "10")
		require.NoError(t, err)
		assert.Contains(t, stdout, `"nodes"`)
		assert.Contains(t, stdout, `"telephone"`)
	})

	t.Run("unknown back end", func(t *testing.T) {
		_, err := execute(t, "render", "--in", in, "--backend", "canvas")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "canvas")
		renderFlags.backend = ""
	})

	t.Run("invalid graph", func(t *testing.T) {
		bad := writeFile(t, "bad.json", `{"nodes":[{"id":"a","type":"root"}]}`)
		_, err := execute(t, "render", "--in", bad, "--out", "-")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "found 0")
	})
}

func TestConvertCommand(t *testing.T) {
	in := writeFile(t, "telephone.json", telephoneJSON)
	out := filepath.Join(t.TempDir(), "telephone.yaml")

	_, err := execute(t, "convert", in, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Len(t, doc["nodes"], 3)
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rhiza.yaml")

	stdout, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, path)

	cfg, _, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Server.Addr, cfg.Server.Addr)

	_, err = execute(t, "config", "init", path)
	assert.Error(t, err, "existing file is kept without --force")

	stdout, err = execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# "+path)
	assert.Contains(t, stdout, ":8080")
}
