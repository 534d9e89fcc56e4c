package scan

import (
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultExtensions is the C-like extension set scanned when the config does
// not override it.
var DefaultExtensions = []string{".c", ".h", ".cc", ".cpp", ".hpp"}

// DefaultExcludes are directory patterns skipped by default.
var DefaultExcludes = []string{".git", "build", "dist", "out", ".cache", ".vscode"}

// compiledPattern keeps the pattern string next to its compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery walks a root directory and yields eligible source files in
// deterministic walk order.
type Discovery struct {
	root       string
	extensions map[string]bool
	excludes   []compiledPattern
}

// NewDiscovery compiles the exclude patterns and builds a discovery for
// root. extensions and excludes fall back to the defaults when empty.
func NewDiscovery(root string, extensions, excludes []string) (*Discovery, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	if len(excludes) == 0 {
		excludes = DefaultExcludes
	}

	d := &Discovery{
		root:       root,
		extensions: make(map[string]bool, len(extensions)),
	}
	for _, ext := range extensions {
		d.extensions[ext] = true
	}
	for _, pattern := range excludes {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.excludes = append(d.excludes, compiledPattern{pattern: pattern, glob: g})
	}
	return d, nil
}

// Discover walks the tree depth-first and returns root-relative,
// slash-separated paths of every eligible file. Excluded directories are
// pruned; unreadable directories are logged and skipped, never fatal.
func (d *Discovery) Discover() ([]string, error) {
	files := []string{}

	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("Warning: error accessing %s: %v", path, err)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(d.root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if entry.IsDir() {
			if d.excluded(rel, entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !entry.Type().IsRegular() {
			return nil
		}
		if d.Eligible(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Eligible reports whether the root-relative slash path rel names a file the
// scanner should read: a scanned extension, not under an excluded directory.
func (d *Discovery) Eligible(rel string) bool {
	if !d.extensions[filepath.Ext(rel)] {
		return false
	}
	parts := strings.Split(rel, "/")
	for i, part := range parts[:len(parts)-1] {
		if d.excluded(strings.Join(parts[:i+1], "/"), part) {
			return false
		}
	}
	return true
}

// excluded matches both the directory's bare name and its root-relative
// path against the exclude patterns.
func (d *Discovery) excluded(rel, name string) bool {
	for _, cp := range d.excludes {
		if cp.glob.Match(name) || cp.glob.Match(rel) {
			return true
		}
	}
	return false
}
