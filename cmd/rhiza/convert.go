package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"rhiza/internal/codec"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Validate a graph file and rewrite it as JSON or YAML",
	Long: `convert reads a graph payload, checks it the way the server does
(one word node, no dangling links, known node types) and writes the
normalized graph in the format named by the output extension.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := readGraph(args[0])
		if err != nil {
			return err
		}
		exp, err := codec.ExporterForPath(args[1])
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := exp.Export(g, &buf); err != nil {
			return fmt.Errorf("export %s: %w", exp.Format(), err)
		}
		return writeOutput(cmd.OutOrStdout(), args[1], buf.Bytes())
	},
}
