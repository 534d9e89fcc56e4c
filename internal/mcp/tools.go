package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/apidef/internal/symbols"
)

// AddSearchSymbolsTool registers the search_symbols tool. Registration
// functions are composable so a server can pick its tool set.
func AddSearchSymbolsTool(s *server.MCPServer, searcher *Searcher) {
	tool := mcp.NewTool(
		"search_symbols",
		mcp.WithDescription("Full-text search over extracted C symbols (functions, structs, typedefs). Matches names, snippets, and signatures; supports bleve query syntax."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query (e.g. 'fw_spawn', 'Vec2', 'name:fw_*')")),
		mcp.WithString("kind",
			mcp.Description("Filter by kind: fn, fn_proto, fn_def, struct, typedef_struct")),
		mcp.WithString("vis",
			mcp.Description("Filter by visibility: PUBLIC or PRIVATE")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (1-100, default 15)")),
	)
	s.AddTool(tool, createSearchSymbolsHandler(searcher))
}

func createSearchSymbolsHandler(searcher *Searcher) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		queryStr, ok := args["query"].(string)
		if !ok || queryStr == "" {
			return mcp.NewToolResultError("query parameter is required"), nil
		}
		kind, _ := args["kind"].(string)
		vis, _ := args["vis"].(string)
		limit := 15
		if f, ok := args["limit"].(float64); ok {
			limit = int(f)
		}

		hits, err := searcher.Search(queryStr, kind, vis, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}

		return jsonResult(map[string]interface{}{
			"hits":  hits,
			"total": len(hits),
		})
	}
}

// AddGetSymbolTool registers the get_symbol tool: exact-name lookup from
// the catalog.
func AddGetSymbolTool(s *server.MCPServer, cat *symbols.Catalog) {
	tool := mcp.NewTool(
		"get_symbol",
		mcp.WithDescription("Look up every extracted symbol with an exact name. A name commonly maps to several symbols (a prototype and its definition)."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Exact symbol name (case-sensitive)")),
	)
	s.AddTool(tool, createGetSymbolHandler(cat))
}

func createGetSymbolHandler(cat *symbols.Catalog) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}
		name, ok := args["name"].(string)
		if !ok || name == "" {
			return mcp.NewToolResultError("name parameter is required"), nil
		}

		matches := cat.ByName(name)
		out := make([]Hit, 0, len(matches))
		for i := range matches {
			s := &matches[i]
			out = append(out, Hit{
				Name:      s.Name,
				Kind:      string(s.Kind),
				Vis:       string(s.Visibility),
				File:      s.File,
				LineStart: s.LineStart,
				LineEnd:   s.LineEnd,
				Snippet:   s.Snippet,
			})
		}

		return jsonResult(map[string]interface{}{
			"symbols": out,
			"total":   len(out),
		})
	}
}

// AddResolveNeedsTool registers the resolve_needs tool: the needs pipeline
// (identifier intersection plus type closure) over caller-supplied text.
func AddResolveNeedsTool(s *server.MCPServer, cat *symbols.Catalog) {
	tool := mcp.NewTool(
		"resolve_needs",
		mcp.WithDescription("Given a block of C source text, compute which known symbols it depends on, including the transitive closure of referenced struct types."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Source text whose dependencies should be resolved")),
		mcp.WithString("vis",
			mcp.Description("Visibility mode: 'public' (default) seeds from public symbols only, 'private' from all")),
	)
	s.AddTool(tool, createResolveNeedsHandler(cat))
}

func createResolveNeedsHandler(cat *symbols.Catalog) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}
		text, ok := args["text"].(string)
		if !ok || text == "" {
			return mcp.NewToolResultError("text parameter is required"), nil
		}
		visMode, _ := args["vis"].(string)
		if visMode == "" {
			visMode = "public"
		}
		if visMode != "public" && visMode != "private" {
			return mcp.NewToolResultError("vis must be 'public' or 'private'"), nil
		}
		includePrivate := visMode == "private"

		selected := symbols.SelectNeeds(cat, text, includePrivate)

		var matched []Hit
		for i := range cat.Symbols {
			s := &cat.Symbols[i]
			if !selected.Has(s.Name) {
				continue
			}
			if !includePrivate && s.Visibility != symbols.Public {
				continue
			}
			matched = append(matched, Hit{
				Name:      s.Name,
				Kind:      string(s.Kind),
				Vis:       string(s.Visibility),
				File:      s.File,
				LineStart: s.LineStart,
				LineEnd:   s.LineEnd,
				Snippet:   s.Snippet,
			})
		}

		return jsonResult(map[string]interface{}{
			"selected": selected.Sorted(),
			"symbols":  matched,
			"total":    len(matched),
		})
	}
}

// jsonResult marshals v and wraps it as an MCP text result.
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
