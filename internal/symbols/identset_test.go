package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Identifier Set:
// - Add is idempotent; Has and Len agree
// - Sorted returns lexicographic order
// - CollectIdents tokenizes on identifier character classes
// - Digits never start an identifier but may continue one
// - Non-ASCII bytes never join identifiers

func TestSet_AddHasLen(t *testing.T) {
	t.Parallel()

	s := NewSet()
	assert.Equal(t, 0, s.Len())

	s.Add("Vec2")
	s.Add("Player")
	s.Add("Vec2") // duplicate

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("Vec2"))
	assert.True(t, s.Has("Player"))
	assert.False(t, s.Has("vec2"), "set is case-sensitive")
}

func TestSet_Sorted(t *testing.T) {
	t.Parallel()

	s := NewSet()
	s.Add("zeta")
	s.Add("alpha")
	s.Add("mid")

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, s.Sorted())
}

func TestCollectIdents_Basic(t *testing.T) {
	t.Parallel()

	s := NewSet()
	CollectIdents("void fw_spawn(Player *p, int n);", s)

	for _, want := range []string{"void", "fw_spawn", "Player", "p", "int", "n"} {
		assert.True(t, s.Has(want), "expected identifier %q", want)
	}
	assert.Equal(t, 6, s.Len())
}

func TestCollectIdents_DigitsAndUnderscores(t *testing.T) {
	t.Parallel()

	s := NewSet()
	CollectIdents("x1 = _private + 42 * y_2;", s)

	assert.True(t, s.Has("x1"))
	assert.True(t, s.Has("_private"))
	assert.True(t, s.Has("y_2"))
	assert.False(t, s.Has("42"), "a digit must not start an identifier")
}

func TestCollectIdents_MultiLineText(t *testing.T) {
	t.Parallel()

	// Multi-line prototypes are not extracted as symbols, but their
	// identifiers must still be discoverable by plain tokenization.
	text := "int fw_add(\n    Vec2 a,\n    Vec2 b\n);\n"
	s := NewSet()
	CollectIdents(text, s)

	require.True(t, s.Has("fw_add"))
	require.True(t, s.Has("Vec2"))
	assert.True(t, s.Has("int"))
	assert.True(t, s.Has("a"))
	assert.True(t, s.Has("b"))
}

func TestIsIdentStart(t *testing.T) {
	t.Parallel()

	assert.True(t, IsIdentStart('a'))
	assert.True(t, IsIdentStart('Z'))
	assert.True(t, IsIdentStart('_'))
	assert.False(t, IsIdentStart('1'))
	assert.False(t, IsIdentStart('-'))
	assert.True(t, IsIdentChar('1'))
	assert.False(t, IsIdentChar(' '))
}
