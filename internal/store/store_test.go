package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/apidef/internal/symbols"
)

// Test Plan for the Symbol Database:
// - ReplaceScan round-trips symbols in insertion order with metadata
// - A second ReplaceScan fully replaces the first scan's rows
// - List applies kind family, name and file filters in SQL
// - Search matches snippet words through the FTS mirror

func storeFixture() []symbols.Symbol {
	return []symbols.Symbol{
		{
			Kind:       symbols.KindTypedefStruct,
			Visibility: symbols.Public,
			Name:       "Vec2",
			File:       "include/math.h",
			LineStart:  1,
			LineEnd:    4,
			Snippet:    "typedef struct {\n  float x;\n  float y;\n} Vec2;",
		},
		{
			Kind:       symbols.KindFnProto,
			Visibility: symbols.Public,
			Name:       "fw_add",
			File:       "include/math.h",
			LineStart:  6,
			LineEnd:    6,
			Snippet:    "Vec2 fw_add(Vec2 a, Vec2 b);",
			Signature:  "Vec2 fw_add(Vec2 a, Vec2 b)",
		},
		{
			Kind:       symbols.KindFnDef,
			Visibility: symbols.Private,
			Name:       "fw_add",
			File:       "src/math.c",
			LineStart:  3,
			LineEnd:    5,
			Snippet:    "Vec2 fw_add(Vec2 a, Vec2 b) {\n  return a;\n}",
			Signature:  "Vec2 fw_add(Vec2 a, Vec2 b)",
		},
	}
}

func newTestStore(t *testing.T) (string, *Writer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "index.db")
	w, err := NewWriter(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return dbPath, w
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	dbPath, w := newTestStore(t)
	syms := storeFixture()

	scanID, err := w.ReplaceScan("/repo", 2, syms)
	require.NoError(t, err)
	require.NotEmpty(t, scanID)

	r, err := NewReader(dbPath)
	require.NoError(t, err)
	defer r.Close()

	rows, err := r.List(Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for i, row := range rows {
		assert.Equal(t, syms[i], row.Symbol, "insertion order is preserved")
		assert.Equal(t, scanID, row.ScanID)
	}

	meta, err := r.Metadata()
	require.NoError(t, err)
	assert.Equal(t, scanID, meta[MetaScanID])
	assert.Equal(t, "/repo", meta[MetaRoot])
	assert.Equal(t, "2", meta[MetaFileCount])
	assert.Equal(t, "3", meta[MetaSymbolCount])
}

func TestStore_ReplaceScanDropsOldRows(t *testing.T) {
	t.Parallel()

	dbPath, w := newTestStore(t)

	_, err := w.ReplaceScan("/repo", 2, storeFixture())
	require.NoError(t, err)

	second := []symbols.Symbol{{
		Kind:       symbols.KindFnProto,
		Visibility: symbols.Public,
		Name:       "fw_only",
		File:       "include/only.h",
		LineStart:  1,
		LineEnd:    1,
		Snippet:    "void fw_only(void);",
		Signature:  "void fw_only(void)",
	}}
	scanID, err := w.ReplaceScan("/repo", 1, second)
	require.NoError(t, err)

	r, err := NewReader(dbPath)
	require.NoError(t, err)
	defer r.Close()

	rows, err := r.List(Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "fw_only", rows[0].Symbol.Name)
	assert.Equal(t, scanID, rows[0].ScanID)

	// The FTS mirror was rebuilt too.
	hits, err := r.Search("fw_add")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestStore_ListFilters(t *testing.T) {
	t.Parallel()

	dbPath, w := newTestStore(t)
	_, err := w.ReplaceScan("/repo", 2, storeFixture())
	require.NoError(t, err)

	r, err := NewReader(dbPath)
	require.NoError(t, err)
	defer r.Close()

	fns, err := r.List(Filter{Kind: "fn"})
	require.NoError(t, err)
	require.Len(t, fns, 2, "fn covers prototypes and definitions")

	protos, err := r.List(Filter{Kind: "fn_proto"})
	require.NoError(t, err)
	require.Len(t, protos, 1)
	assert.Equal(t, symbols.KindFnProto, protos[0].Symbol.Kind)

	named, err := r.List(Filter{Name: "fw_add"})
	require.NoError(t, err)
	assert.Len(t, named, 2)

	byFile, err := r.List(Filter{Name: "fw_add", File: "src/math.c"})
	require.NoError(t, err)
	require.Len(t, byFile, 1)
	assert.Equal(t, symbols.KindFnDef, byFile[0].Symbol.Kind)
}

func TestStore_SearchMatchesSnippetWords(t *testing.T) {
	t.Parallel()

	dbPath, w := newTestStore(t)
	_, err := w.ReplaceScan("/repo", 2, storeFixture())
	require.NoError(t, err)

	r, err := NewReader(dbPath)
	require.NoError(t, err)
	defer r.Close()

	hits, err := r.Search("float")
	require.NoError(t, err)
	require.Len(t, hits, 1, "only the Vec2 snippet mentions float")
	assert.Equal(t, "Vec2", hits[0].Symbol.Name)

	byName, err := r.Search("fw_add")
	require.NoError(t, err)
	assert.Len(t, byName, 2)
}

func TestNewReader_MissingDatabase(t *testing.T) {
	t.Parallel()

	_, err := NewReader(filepath.Join(t.TempDir(), "absent.db"))
	assert.Error(t, err)
}
