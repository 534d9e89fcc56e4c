// Package cli implements the apidef command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/apidef/internal/config"
	"github.com/mvp-joe/apidef/internal/scan"
	"github.com/mvp-joe/apidef/internal/symbols"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "apidef",
	Short: "Heuristic C API surface scanner and import generator",
	Long: `apidef extracts function and struct symbols from a C-like source tree
using heuristic pattern scanning, classifies each symbol public or private,
and computes the transitive type dependencies of a piece of code.

It generates the api.def definition file, a JSON symbol index, a SQLite
symbol database, and selective auto-import headers.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <root>/.apidef/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads configuration for root, honoring the --config override.
func loadConfig(root string) (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFile(cfgFile)
	}
	return config.Load(root)
}

// runScan performs one full scan of root using cfg's discovery settings.
// cache and progress may be nil.
func runScan(root string, cfg *config.Config, cache *scan.Cache, progress scan.ProgressReporter) (*scan.Result, error) {
	discovery, err := scan.NewDiscovery(root, cfg.Scan.Extensions, cfg.Scan.Exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to compile exclude patterns: %w", err)
	}
	return scan.NewScanner(root, discovery, cache, progress).Scan()
}

// scanCatalog scans root and builds the catalog in one step, for commands
// that need name partitions.
func scanCatalog(root string, cfg *config.Config) (*symbols.Catalog, error) {
	res, err := runScan(root, cfg, nil, nil)
	if err != nil {
		return nil, err
	}
	return symbols.NewCatalog(res.Symbols), nil
}
