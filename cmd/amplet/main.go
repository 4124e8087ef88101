// amplet is a CLI tool to inspect and evaluate serialized model graphs
// produced by the graph backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amplet/amplet"
	"github.com/amplet/amplet/backend/graph"
)

var rootCmd = &cobra.Command{
	Use:     "amplet",
	Short:   "amplet inspects and evaluates translated optimization models",
	Version: amplet.Version.String(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadGraph(path string) (*graph.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var gm graph.Model
	if _, err := gm.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("reading model %s: %w", path, err)
	}
	return &gm, nil
}
