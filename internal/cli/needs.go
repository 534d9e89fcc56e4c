package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/apidef/internal/emit"
	"github.com/mvp-joe/apidef/internal/symbols"
)

var (
	needsRoot       string
	needsEntry      string
	needsOut        string
	needsVis        string
	needsPreprocess string
)

// needsCmd represents the needs command.
var needsCmd = &cobra.Command{
	Use:   "needs",
	Short: "Resolve a file's symbol dependencies and generate its auto-import header",
	Long: `Needs tokenizes the entry file (or the output of --preprocess), intersects
its identifiers with the known symbol names under the chosen visibility
mode, expands the selection to the transitive closure of referenced struct
types, and writes the selective import header.

Public mode seeds only from public symbols; the closure may still pull in
private types, which are filtered again when the header is written.

Examples:
  apidef needs --entry game.c
  apidef needs --entry game.c --vis private
  apidef needs --preprocess "cc -E -P -I. game.c" --out framework/auto_import.h
`,
	RunE: runNeeds,
}

func init() {
	rootCmd.AddCommand(needsCmd)
	needsCmd.Flags().StringVar(&needsRoot, "root", ".", "root directory to scan")
	needsCmd.Flags().StringVar(&needsEntry, "entry", "", "entry file whose dependencies are resolved")
	needsCmd.Flags().StringVar(&needsOut, "out", "", "auto-import header path (default from config)")
	needsCmd.Flags().StringVar(&needsVis, "vis", "", "visibility mode: public or private (default from config)")
	needsCmd.Flags().StringVar(&needsPreprocess, "preprocess", "", "shell command whose output replaces the entry text")
}

func runNeeds(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(needsRoot)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if needsEntry == "" && needsPreprocess == "" {
		return fmt.Errorf("one of --entry or --preprocess is required")
	}

	visMode := needsVis
	if visMode == "" {
		visMode = cfg.Needs.Vis
	}
	if visMode != "public" && visMode != "private" {
		return fmt.Errorf("--vis must be public or private, got %q", visMode)
	}
	includePrivate := visMode == "private"

	outPath := needsOut
	if outPath == "" {
		outPath = filepath.Join(needsRoot, cfg.Outputs.AutoImport)
	}

	// The entry text is a required input: failure to obtain it is fatal,
	// unlike unreadable files during the tree scan.
	var entryText string
	if needsPreprocess != "" {
		out, err := exec.Command("sh", "-c", needsPreprocess).Output()
		if err != nil {
			return fmt.Errorf("preprocess command failed: %w", err)
		}
		entryText = string(out)
	} else {
		raw, err := os.ReadFile(needsEntry)
		if err != nil {
			return fmt.Errorf("failed to read entry file: %w", err)
		}
		entryText = string(raw)
	}

	cat, err := scanCatalog(needsRoot, cfg)
	if err != nil {
		return err
	}

	selected := symbols.SelectNeeds(cat, entryText, includePrivate)

	if err := emit.WriteAutoImportFile(outPath, cat.Symbols, selected, includePrivate, cfg.Outputs.APIHeader); err != nil {
		return err
	}

	fmt.Printf("✓ %d symbols selected -> %s\n", selected.Len(), outPath)
	if verbose {
		for _, name := range selected.Sorted() {
			fmt.Printf("  %s\n", name)
		}
	}
	return nil
}
