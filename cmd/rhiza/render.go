package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rhiza/internal/adapter"
	"rhiza/internal/codec"
	"rhiza/internal/domain"
	"rhiza/internal/engine"
	"rhiza/internal/render"
	"rhiza/internal/style"
)

var renderFlags struct {
	in        string
	out       string
	backend   string
	preset    string
	themeFile string
	mode      string
	ticks     int
	seed      uint64
	width     float64
	height    float64
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Lay out a graph file offline and write the final frame",
	Example: `  rhiza render --in telephone.json --out telephone.svg
  rhiza render --in telephone.yaml --preset enriched --mode category --out -`,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderFlags.in, "in", "i", "", "graph payload (.json, .yaml or .yml)")
	f.StringVarP(&renderFlags.out, "out", "o", "-", "output file, - for stdout")
	f.StringVarP(&renderFlags.backend, "backend", "b", "", "render back end (default: from the output extension, else svg)")
	f.StringVar(&renderFlags.preset, "preset", style.Basic, "style preset ("+strings.Join(style.PresetNames(), ", ")+")")
	f.StringVar(&renderFlags.themeFile, "theme", "", "theme file, overrides --preset")
	f.StringVar(&renderFlags.mode, "mode", "", "educational mode (category, grammar)")
	f.IntVar(&renderFlags.ticks, "ticks", 300, "maximum simulation ticks; stops early once settled")
	f.Uint64Var(&renderFlags.seed, "seed", 1, "jitter seed, 0 for random")
	f.Float64Var(&renderFlags.width, "width", 0, "canvas width (default: theme canvas)")
	f.Float64Var(&renderFlags.height, "height", 0, "canvas height (default: theme canvas)")
	_ = renderCmd.MarkFlagRequired("in")
}

func runRender(cmd *cobra.Command, _ []string) error {
	g, err := readGraph(renderFlags.in)
	if err != nil {
		return err
	}

	theme, err := loadTheme(renderFlags.preset, renderFlags.themeFile)
	if err != nil {
		return err
	}

	backendName := renderFlags.backend
	if backendName == "" {
		backendName = backendForPath(renderFlags.out)
	}
	backend, ok := render.Lookup(backendName)
	if !ok {
		return fmt.Errorf("unknown back end %q (have %s)", backendName, strings.Join(render.Default().Names(), ", "))
	}

	eng := engine.New(engine.Options{
		Theme:   theme,
		Backend: backendName,
		Manual:  true,
		Seed:    renderFlags.seed,
	})
	defer func() { _ = eng.Dispose() }()

	if err := eng.Initialize(g, &engine.Container{ID: "render", Width: renderFlags.width, Height: renderFlags.height}); err != nil {
		return err
	}
	if renderFlags.mode != "" {
		if err := eng.Dispatch(engine.ApplyMode{Mode: style.ParseMode(renderFlags.mode)}); err != nil {
			return err
		}
	}
	if _, err := eng.Advance(renderFlags.ticks); err != nil {
		return err
	}
	frame, err := eng.Snapshot()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := backend.Render(&buf, frame); err != nil {
		return fmt.Errorf("render %s: %w", backendName, err)
	}
	return writeOutput(cmd.OutOrStdout(), renderFlags.out, buf.Bytes())
}

func readGraph(path string) (*domain.Graph, error) {
	imp, err := codec.ForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := imp.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return adapter.Adapt(p)
}

func loadTheme(preset, file string) (*style.Theme, error) {
	if file != "" {
		return style.LoadThemeFile(file)
	}
	return style.Preset(preset)
}

func backendForPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if render.Default().Has(ext) {
		return ext
	}
	return "svg"
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
