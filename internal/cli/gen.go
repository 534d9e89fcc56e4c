package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/apidef/internal/emit"
	"github.com/mvp-joe/apidef/internal/scan"
	"github.com/mvp-joe/apidef/internal/store"
)

var (
	genRoot     string
	genOut      string
	genIndex    string
	genDB       string
	genFnPrefix string
	genWatch    bool
	genQuiet    bool
)

// genCmd represents the gen command.
var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Scan the tree and generate api.def, the JSON index, and the symbol database",
	Long: `Gen scans every eligible source file under the root, extracts function
and struct symbols with resolved visibility, and writes:

  - the definition file (api.def) with API_TYPE/API_FN entries
  - the JSON symbol index
  - the SQLite symbol database used by 'search --db'

Examples:
  # Generate into the default framework/ paths
  apidef gen --root .

  # Only emit prototypes with a prefix
  apidef gen --fn-prefix fw_

  # Keep regenerating as files change
  apidef gen --watch
`,
	RunE: runGen,
}

func init() {
	rootCmd.AddCommand(genCmd)
	genCmd.Flags().StringVar(&genRoot, "root", ".", "root directory to scan")
	genCmd.Flags().StringVar(&genOut, "out", "", "definition file path (default from config)")
	genCmd.Flags().StringVar(&genIndex, "index", "", "JSON index path (default from config)")
	genCmd.Flags().StringVar(&genDB, "db", "", "symbol database path (default from config)")
	genCmd.Flags().StringVar(&genFnPrefix, "fn-prefix", "", "only emit API_FN entries for names with this prefix")
	genCmd.Flags().BoolVarP(&genWatch, "watch", "w", false, "watch for file changes and regenerate")
	genCmd.Flags().BoolVarP(&genQuiet, "quiet", "q", false, "disable progress output")
}

func runGen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(genRoot)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	outPath := genOut
	if outPath == "" {
		outPath = filepath.Join(genRoot, cfg.Outputs.Def)
	}
	indexPath := genIndex
	if indexPath == "" {
		indexPath = filepath.Join(genRoot, cfg.Outputs.Index)
	}
	dbPath := genDB
	if dbPath == "" {
		dbPath = filepath.Join(genRoot, cfg.Outputs.DB)
	}

	cache, err := scan.NewCache(cfg.Cache.Capacity)
	if err != nil {
		return err
	}
	defer cache.Close()

	generate := func(progress scan.ProgressReporter) error {
		res, err := runScan(genRoot, cfg, cache, progress)
		if err != nil {
			return err
		}

		if err := emit.WriteAPIDefFile(outPath, res.Symbols, genFnPrefix); err != nil {
			return err
		}
		if err := emit.WriteIndexFile(indexPath, res.Symbols); err != nil {
			return err
		}

		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		writer, err := store.NewWriter(dbPath)
		if err != nil {
			return err
		}
		defer writer.Close()
		if _, err := writer.ReplaceScan(genRoot, len(res.Files), res.Symbols); err != nil {
			return err
		}

		if !genQuiet {
			fmt.Printf("✓ %d symbols from %d files -> %s, %s, %s\n",
				len(res.Symbols), len(res.Files), outPath, indexPath, dbPath)
		}
		return nil
	}

	if err := generate(NewProgressReporter(genQuiet)); err != nil {
		return err
	}
	if !genWatch {
		return nil
	}

	// Watch mode: regenerate after each debounced change batch. The
	// extraction cache keeps unchanged files cheap.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Stopping watch mode...")
		cancel()
	}()

	discovery, err := scan.NewDiscovery(genRoot, cfg.Scan.Extensions, cfg.Scan.Exclude)
	if err != nil {
		return err
	}
	watcher, err := scan.NewWatcher(genRoot, discovery,
		time.Duration(cfg.Watch.DebounceMs)*time.Millisecond,
		func() {
			if err := generate(nil); err != nil {
				log.Printf("Error during regeneration: %v", err)
			}
		})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if !genQuiet {
		log.Println("Watching for changes (Ctrl+C to stop)...")
	}
	watcher.Start(ctx)
	<-ctx.Done()
	watcher.Stop()
	return nil
}
