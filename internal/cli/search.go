package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/apidef/internal/store"
	"github.com/mvp-joe/apidef/internal/symbols"
)

var (
	searchRoot    string
	searchKind    string
	searchName    string
	searchPattern string
	searchDB      bool
)

// searchCmd represents the search command.
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Filter the symbol list by kind, name, or substring",
	Long: `Search scans the tree (or reads the symbol database with --db) and prints
every symbol matching the filters.

--kind accepts fn (both function kinds), fn_proto, fn_def, struct (both
struct kinds), or typedef_struct. --name matches exactly. --pattern is a
case-insensitive substring match against names and snippets; with --db the
pattern is an FTS5 query against the database instead.

Examples:
  apidef search --kind fn_proto --name fw_add
  apidef search --pattern vec2
  apidef search --db --pattern "player OR vec2"
`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchRoot, "root", ".", "root directory to scan")
	searchCmd.Flags().StringVar(&searchKind, "kind", "", "kind filter: fn, fn_proto, fn_def, struct, typedef_struct")
	searchCmd.Flags().StringVar(&searchName, "name", "", "exact symbol name")
	searchCmd.Flags().StringVar(&searchPattern, "pattern", "", "substring pattern (FTS5 query with --db)")
	searchCmd.Flags().BoolVar(&searchDB, "db", false, "read the symbol database instead of rescanning")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(searchRoot)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	var syms []symbols.Symbol
	if searchDB {
		reader, err := store.NewReader(filepath.Join(searchRoot, cfg.Outputs.DB))
		if err != nil {
			return err
		}
		defer reader.Close()

		var rows []store.Row
		if searchPattern != "" {
			rows, err = reader.Search(searchPattern)
		} else {
			rows, err = reader.List(store.Filter{Kind: searchKind, Name: searchName})
		}
		if err != nil {
			return err
		}
		for _, row := range rows {
			syms = append(syms, row.Symbol)
		}
		// FTS results still need the non-pattern filters applied.
		if searchPattern != "" {
			syms = filterSymbols(syms, searchKind, searchName, "")
		}
	} else {
		res, err := runScan(searchRoot, cfg, nil, nil)
		if err != nil {
			return err
		}
		syms = filterSymbols(res.Symbols, searchKind, searchName, searchPattern)
	}

	for i := range syms {
		s := &syms[i]
		fmt.Printf("\n== %s/%s: %s  (%s:%d-%d) ==\n", s.Visibility, s.Kind, s.Name, s.File, s.LineStart, s.LineEnd)
		fmt.Println(s.Snippet)
	}
	return nil
}

// filterSymbols applies the kind, exact-name, and case-insensitive
// substring filters in order.
func filterSymbols(syms []symbols.Symbol, kind, name, pattern string) []symbols.Symbol {
	lower := strings.ToLower(pattern)

	var out []symbols.Symbol
	for i := range syms {
		s := &syms[i]
		if kind != "" && !symbols.MatchesKindFilter(s.Kind, kind) {
			continue
		}
		if name != "" && s.Name != name {
			continue
		}
		if pattern != "" &&
			!strings.Contains(strings.ToLower(s.Name), lower) &&
			!strings.Contains(strings.ToLower(s.Snippet), lower) {
			continue
		}
		out = append(out, *s)
	}
	return out
}
