package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/apidef/internal/mcp"
)

var mcpRoot string

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve symbol search and needs resolution over the Model Context Protocol",
	Long: `Mcp scans the tree once, indexes every symbol into an in-memory full-text
index, and serves three tools over stdio: search_symbols, get_symbol, and
resolve_needs. Intended to be launched by an MCP client, not interactively.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpRoot, "root", ".", "root directory to scan")
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(mcpRoot)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cat, err := scanCatalog(mcpRoot, cfg)
	if err != nil {
		return err
	}

	srv, err := mcp.NewServer(cat)
	if err != nil {
		return err
	}
	defer srv.Close()

	return srv.Serve(cmd.Context())
}
