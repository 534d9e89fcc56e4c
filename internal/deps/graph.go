// Package deps projects a scan's symbol list into a directed type-reference
// graph: one vertex per distinct symbol name, one edge from a symbol to each
// type name its signature or snippet mentions.
package deps

import (
	"errors"
	"fmt"
	"io"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"

	"github.com/mvp-joe/apidef/internal/symbols"
)

// Graph is the type-reference graph for one catalog.
type Graph struct {
	g graph.Graph[string, string]
}

// Build constructs the graph from cat. Self-references are skipped and
// parallel edges collapsed, so the closure of a seed over the graph's edges
// equals the closure resolver's result for the same seed.
func Build(cat *symbols.Catalog) (*Graph, error) {
	g := graph.New(graph.StringHash, graph.Directed())

	for i := range cat.Symbols {
		s := &cat.Symbols[i]
		err := g.AddVertex(s.Name,
			graph.VertexAttribute("kind", string(s.Kind)),
			graph.VertexAttribute("vis", string(s.Visibility)),
		)
		if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("failed to add vertex %s: %w", s.Name, err)
		}
	}

	for i := range cat.Symbols {
		s := &cat.Symbols[i]

		ids := symbols.NewSet()
		if s.Signature != "" {
			symbols.CollectIdents(s.Signature, ids)
		}
		symbols.CollectIdents(s.Snippet, ids)

		for id := range ids {
			if id == s.Name || !cat.TypeNames.Has(id) {
				continue
			}
			err := g.AddEdge(s.Name, id)
			if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return nil, fmt.Errorf("failed to add edge %s -> %s: %w", s.Name, id, err)
			}
		}
	}

	return &Graph{g: g}, nil
}

// Closure returns the names reachable from seed (seed included, unknown
// seed names kept), sorted. Traversal is an explicit worklist over the
// adjacency map.
func (dg *Graph) Closure(seed []string) ([]string, error) {
	adj, err := dg.g.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("failed to build adjacency map: %w", err)
	}

	selected := symbols.NewSet()
	work := append([]string(nil), seed...)
	for len(work) > 0 {
		name := work[len(work)-1]
		work = work[:len(work)-1]
		if selected.Has(name) {
			continue
		}
		selected.Add(name)
		for target := range adj[name] {
			if !selected.Has(target) {
				work = append(work, target)
			}
		}
	}

	return selected.Sorted(), nil
}

// WriteDOT exports the graph in DOT format for graphviz.
func (dg *Graph) WriteDOT(w io.Writer) error {
	return draw.DOT(dg.g, w)
}
