package emit

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mvp-joe/apidef/internal/symbols"
)

// IndexEntry is one symbol in the JSON index. Field names are part of the
// external format and must not change.
type IndexEntry struct {
	Kind      string `json:"kind"`
	Vis       string `json:"vis"`
	Name      string `json:"name"`
	File      string `json:"file"`
	LineStart int    `json:"line_start"`
	LineEnd   int    `json:"line_end"`
	Snippet   string `json:"snippet"`
}

// WriteIndex renders the symbol list as a JSON array in symbol order.
func WriteIndex(w io.Writer, syms []symbols.Symbol) error {
	entries := make([]IndexEntry, len(syms))
	for i := range syms {
		s := &syms[i]
		entries[i] = IndexEntry{
			Kind:      string(s.Kind),
			Vis:       string(s.Visibility),
			Name:      s.Name,
			File:      s.File,
			LineStart: s.LineStart,
			LineEnd:   s.LineEnd,
			Snippet:   s.Snippet,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// WriteIndexFile writes the JSON index to path, creating parent directories
// as needed.
func WriteIndexFile(path string, syms []symbols.Symbol) error {
	f, err := createWithParents(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteIndex(f, syms); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
