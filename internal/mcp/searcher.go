// Package mcp serves the scanner's catalog over the Model Context Protocol
// so coding agents can query symbols and resolve import needs. Full-text
// search is backed by an in-memory bleve index built at startup.
package mcp

import (
	"fmt"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/mvp-joe/apidef/internal/symbols"
)

// Hit is one search result.
type Hit struct {
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Vis       string  `json:"vis"`
	File      string  `json:"file"`
	LineStart int     `json:"line_start"`
	LineEnd   int     `json:"line_end"`
	Snippet   string  `json:"snippet"`
	Score     float64 `json:"score"`
}

// Searcher answers full-text queries over one catalog. Document ids are
// catalog indexes, so hits are reconstructed from the catalog rather than
// from stored fields.
type Searcher struct {
	index   bleve.Index
	catalog *symbols.Catalog
}

// NewSearcher builds an in-memory index over every symbol in cat.
func NewSearcher(cat *symbols.Catalog) (*Searcher, error) {
	index, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	batch := index.NewBatch()
	for i := range cat.Symbols {
		s := &cat.Symbols[i]
		doc := map[string]interface{}{
			"name":      s.Name,
			"snippet":   s.Snippet,
			"signature": s.Signature,
			"kind":      string(s.Kind),
			"vis":       string(s.Visibility),
			"file":      s.File,
		}
		if err := batch.Index(strconv.Itoa(i), doc); err != nil {
			index.Close()
			return nil, fmt.Errorf("failed to add symbol %s to batch: %w", s.Name, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to execute batch: %w", err)
	}

	return &Searcher{index: index, catalog: cat}, nil
}

// buildMapping indexes name/snippet/signature with the standard analyzer
// and kind/vis/file as keywords for exact filtering.
func buildMapping() *mapping.IndexMappingImpl {
	text := bleve.NewTextFieldMapping()
	text.Analyzer = "standard"

	keyword := bleve.NewTextFieldMapping()
	keyword.Analyzer = "keyword"

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("name", text)
	doc.AddFieldMappingsAt("snippet", text)
	doc.AddFieldMappingsAt("signature", text)
	doc.AddFieldMappingsAt("kind", keyword)
	doc.AddFieldMappingsAt("vis", keyword)
	doc.AddFieldMappingsAt("file", keyword)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

// Search runs a bleve query string over the catalog. kindFilter accepts an
// exact kind or the "fn"/"struct" families; visFilter is PUBLIC or PRIVATE;
// both may be empty.
func (s *Searcher) Search(queryStr, kindFilter, visFilter string, limit int) ([]Hit, error) {
	if limit <= 0 || limit > 100 {
		limit = 15
	}

	queries := []query.Query{bleve.NewQueryStringQuery(queryStr)}

	if kinds := kindTerms(kindFilter); len(kinds) > 0 {
		var alts []query.Query
		for _, k := range kinds {
			tq := bleve.NewTermQuery(k)
			tq.SetField("kind")
			alts = append(alts, tq)
		}
		queries = append(queries, bleve.NewDisjunctionQuery(alts...))
	}
	if visFilter != "" {
		tq := bleve.NewTermQuery(visFilter)
		tq.SetField("vis")
		queries = append(queries, tq)
	}

	var finalQuery query.Query = queries[0]
	if len(queries) > 1 {
		finalQuery = bleve.NewConjunctionQuery(queries...)
	}

	req := bleve.NewSearchRequestOptions(finalQuery, limit, 0, false)
	res, err := s.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		i, err := strconv.Atoi(h.ID)
		if err != nil || i < 0 || i >= len(s.catalog.Symbols) {
			continue
		}
		sym := &s.catalog.Symbols[i]
		hits = append(hits, Hit{
			Name:      sym.Name,
			Kind:      string(sym.Kind),
			Vis:       string(sym.Visibility),
			File:      sym.File,
			LineStart: sym.LineStart,
			LineEnd:   sym.LineEnd,
			Snippet:   sym.Snippet,
			Score:     h.Score,
		})
	}
	return hits, nil
}

// Close releases the index.
func (s *Searcher) Close() error {
	return s.index.Close()
}

// kindTerms expands a kind filter into the exact kind strings it covers.
func kindTerms(filter string) []string {
	switch filter {
	case "":
		return nil
	case "fn":
		return []string{string(symbols.KindFnProto), string(symbols.KindFnDef)}
	case "struct":
		return []string{string(symbols.KindStruct), string(symbols.KindTypedefStruct)}
	}
	return []string{filter}
}
