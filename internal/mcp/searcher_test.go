package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/apidef/internal/symbols"
)

// Test Plan for the Searcher:
// - Name queries find the matching symbol with its catalog fields intact
// - Kind family and visibility filters narrow results
// - Snippet text is searchable
// - The limit is clamped to a sane default

func testCatalog() *symbols.Catalog {
	return symbols.NewCatalog([]symbols.Symbol{
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
			Name:       "fw_spawn",
			File:       "include/spawn.h",
			LineStart:  8,
			LineEnd:    8,
			Snippet:    "Player *fw_spawn(Vec2 pos);",
			Signature:  "Player *fw_spawn(Vec2 pos)",
		},
		{
			Kind:       symbols.KindFnDef,
			Visibility: symbols.Private,
			Name:       "fw_spawn",
			File:       "src/spawn.c",
			LineStart:  10,
			LineEnd:    14,
			Snippet:    "Player *fw_spawn(Vec2 pos) {\n  return alloc_player(pos);\n}",
			Signature:  "Player *fw_spawn(Vec2 pos)",
		},
		{
			Kind:       symbols.KindTypedefStruct,
			Visibility: symbols.Private,
			Name:       "Player",
			File:       "src/player.h",
			LineStart:  2,
			LineEnd:    6,
			Snippet:    "typedef struct {\n  Vec2 pos;\n  int hp;\n} Player;",
		},
	})
}

func newTestSearcher(t *testing.T) *Searcher {
	t.Helper()
	s, err := NewSearcher(testCatalog())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSearcher_ByName(t *testing.T) {
	t.Parallel()

	s := newTestSearcher(t)

	hits, err := s.Search("Vec2", "", "", 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)

	top := hits[0]
	assert.Equal(t, "Vec2", top.Name)
	assert.Equal(t, "typedef_struct", top.Kind)
	assert.Equal(t, "include/math.h", top.File)
	assert.Equal(t, 1, top.LineStart)
	assert.Equal(t, 4, top.LineEnd)
	assert.Greater(t, top.Score, 0.0)
}

func TestSearcher_KindFamilyFilter(t *testing.T) {
	t.Parallel()

	s := newTestSearcher(t)

	hits, err := s.Search("fw_spawn", "fn", "", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	for _, h := range hits {
		assert.Contains(t, []string{"fn_proto", "fn_def"}, h.Kind)
	}

	hits, err = s.Search("fw_spawn", "fn_def", "", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "src/spawn.c", hits[0].File)
}

func TestSearcher_VisFilter(t *testing.T) {
	t.Parallel()

	s := newTestSearcher(t)

	hits, err := s.Search("fw_spawn", "", "PUBLIC", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "PUBLIC", hits[0].Vis)
	assert.Equal(t, "fn_proto", hits[0].Kind)
}

func TestSearcher_SnippetText(t *testing.T) {
	t.Parallel()

	s := newTestSearcher(t)

	hits, err := s.Search("hp", "", "", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Player", hits[0].Name)
}

func TestSearcher_LimitClamped(t *testing.T) {
	t.Parallel()

	s := newTestSearcher(t)

	hits, err := s.Search("fw_spawn", "", "", -3)
	require.NoError(t, err)
	assert.NotEmpty(t, hits, "a nonsensical limit falls back to the default")
}
