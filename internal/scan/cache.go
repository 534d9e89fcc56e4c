package scan

import (
	"fmt"
	"os"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/apidef/internal/symbols"
)

// DefaultCacheCapacity bounds how many files keep cached extraction results.
const DefaultCacheCapacity = 4096

// Cache memoizes per-file extraction results keyed by path, size, and mtime,
// so watch-mode rescans only re-extract files that actually changed. Safe
// for concurrent use.
type Cache struct {
	entries otter.Cache[string, []symbols.Symbol]
}

// NewCache creates a cache holding up to capacity files' results.
func NewCache(capacity int) (*Cache, error) {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	entries, err := otter.MustBuilder[string, []symbols.Symbol](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build extraction cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Get returns the cached symbols for abs if its size and mtime still match
// the cached key. The file is stat'ed, never read, on a hit.
func (c *Cache) Get(abs, rel string) ([]symbols.Symbol, bool) {
	key, ok := c.key(abs, rel)
	if !ok {
		return nil, false
	}
	return c.entries.Get(key)
}

// Put stores syms under the file's current size and mtime.
func (c *Cache) Put(abs, rel string, syms []symbols.Symbol) {
	if key, ok := c.key(abs, rel); ok {
		c.entries.Set(key, syms)
	}
}

// Close releases the cache's resources.
func (c *Cache) Close() {
	c.entries.Close()
}

func (c *Cache) key(abs, rel string) (string, bool) {
	info, err := os.Stat(abs)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%s|%d|%d", rel, info.Size(), info.ModTime().UnixNano()), true
}
