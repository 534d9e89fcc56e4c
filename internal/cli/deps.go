package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/apidef/internal/deps"
)

var (
	depsRoot string
	depsSeed string
	depsDot  string
)

// depsCmd represents the deps command.
var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Print the type dependency closure of a seed set, optionally as DOT",
	Long: `Deps builds the type-reference graph over the scanned symbols (an edge
from each symbol to every struct type its text mentions) and prints the
closure of the seed names. With --dot the whole graph is exported for
graphviz.

Examples:
  apidef deps --seed fw_spawn
  apidef deps --seed fw_spawn,Player --dot deps.dot
`,
	RunE: runDeps,
}

func init() {
	rootCmd.AddCommand(depsCmd)
	depsCmd.Flags().StringVar(&depsRoot, "root", ".", "root directory to scan")
	depsCmd.Flags().StringVar(&depsSeed, "seed", "", "comma-separated symbol names to start from")
	depsCmd.Flags().StringVar(&depsDot, "dot", "", "write the full graph in DOT format to this file")
}

func runDeps(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(depsRoot)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if depsSeed == "" && depsDot == "" {
		return fmt.Errorf("at least one of --seed or --dot is required")
	}

	cat, err := scanCatalog(depsRoot, cfg)
	if err != nil {
		return err
	}

	graph, err := deps.Build(cat)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}

	if depsSeed != "" {
		var seed []string
		for _, name := range strings.Split(depsSeed, ",") {
			if name = strings.TrimSpace(name); name != "" {
				seed = append(seed, name)
			}
		}

		closure, err := graph.Closure(seed)
		if err != nil {
			return err
		}
		for _, name := range closure {
			fmt.Println(name)
		}
	}

	if depsDot != "" {
		if dir := filepath.Dir(depsDot); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.Create(depsDot)
		if err != nil {
			return fmt.Errorf("failed to open DOT output: %w", err)
		}
		defer f.Close()
		if err := graph.WriteDOT(f); err != nil {
			return fmt.Errorf("failed to write DOT: %w", err)
		}
		fmt.Printf("✓ graph written to %s\n", depsDot)
	}
	return nil
}
