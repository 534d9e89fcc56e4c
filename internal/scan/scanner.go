package scan

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mvp-joe/apidef/internal/symbols"
)

// ProgressReporter receives scan progress callbacks. Implementations must
// tolerate being called from the scan goroutine only.
type ProgressReporter interface {
	OnScanStart(totalFiles int)
	OnFileScanned(rel string)
	OnScanComplete(files, syms int)
}

// nopProgress is used when the caller does not care about progress.
type nopProgress struct{}

func (nopProgress) OnScanStart(int)        {}
func (nopProgress) OnFileScanned(string)   {}
func (nopProgress) OnScanComplete(int, int) {}

// ExtractFile runs the three matchers over one file's text and returns its
// symbols in pass order: typedef structs, then plain structs, then functions.
// rel is the root-relative slash path recorded on each symbol and used for
// the path-based visibility default.
func ExtractFile(raw, rel string) []symbols.Symbol {
	stripped := StripComments(raw)
	pathDefault := DefaultVisibility(rel)

	var out []symbols.Symbol
	out = append(out, matchTypedefStructs(stripped, raw, rel, pathDefault)...)
	out = append(out, matchStructs(stripped, raw, rel, pathDefault)...)
	out = append(out, matchFunctions(stripped, raw, rel, pathDefault)...)
	return out
}

// Scanner ties discovery, the extraction cache, and per-file extraction into
// one synchronous pass over a source tree.
type Scanner struct {
	root      string
	discovery *Discovery
	cache     *Cache
	progress  ProgressReporter
}

// Result is one scan's output: the ordered symbol list and the files that
// produced it, both in discovery order.
type Result struct {
	Symbols []symbols.Symbol
	Files   []string
}

// NewScanner creates a scanner for root. cache may be nil to disable
// caching; progress may be nil.
func NewScanner(root string, discovery *Discovery, cache *Cache, progress ProgressReporter) *Scanner {
	if progress == nil {
		progress = nopProgress{}
	}
	return &Scanner{
		root:      root,
		discovery: discovery,
		cache:     cache,
		progress:  progress,
	}
}

// Scan walks the tree and extracts every eligible file. A file that cannot
// be read is logged and skipped; only discovery failure on the root itself
// is fatal.
func (s *Scanner) Scan() (*Result, error) {
	files, err := s.discovery.Discover()
	if err != nil {
		return nil, fmt.Errorf("failed to discover files under %s: %w", s.root, err)
	}
	s.progress.OnScanStart(len(files))

	res := &Result{Files: files}
	for _, rel := range files {
		abs := filepath.Join(s.root, filepath.FromSlash(rel))

		if s.cache != nil {
			if syms, ok := s.cache.Get(abs, rel); ok {
				res.Symbols = append(res.Symbols, syms...)
				s.progress.OnFileScanned(rel)
				continue
			}
		}

		raw, err := os.ReadFile(abs)
		if err != nil {
			log.Printf("Warning: skipping unreadable file %s: %v", rel, err)
			continue
		}

		syms := ExtractFile(string(raw), rel)
		if s.cache != nil {
			s.cache.Put(abs, rel, syms)
		}
		res.Symbols = append(res.Symbols, syms...)
		s.progress.OnFileScanned(rel)
	}

	s.progress.OnScanComplete(len(res.Files), len(res.Symbols))
	return res, nil
}
