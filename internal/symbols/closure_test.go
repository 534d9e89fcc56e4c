package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Dependency Closure:
// - Seeding with a function pulls in the types its signature mentions,
//   transitively (fw_spawn -> Player -> Vec2)
// - Closure is idempotent: expanding the result again adds nothing
// - Function names mentioned in snippets are NOT pulled in (types only)
// - SelectNeeds intersects entry-text identifiers with symbol names under
//   the visibility mode, then expands
// - Public mode never seeds from private symbols, but private types can
//   still enter through the closure

func gameCatalog() *Catalog {
	return NewCatalog([]Symbol{
		{
			Kind:       KindTypedefStruct,
			Visibility: Public,
			Name:       "Vec2",
			File:       "include/fw/math.h",
			LineStart:  3,
			LineEnd:    6,
			Snippet:    "typedef struct {\n  float x;\n  float y;\n} Vec2;",
		},
		{
			Kind:       KindTypedefStruct,
			Visibility: Public,
			Name:       "Player",
			File:       "include/fw/player.h",
			LineStart:  4,
			LineEnd:    8,
			Snippet:    "typedef struct {\n  Vec2 pos;\n  Vec2 vel;\n  int hp;\n} Player;",
		},
		{
			Kind:       KindFnProto,
			Visibility: Public,
			Name:       "fw_spawn",
			File:       "include/fw/player.h",
			LineStart:  10,
			LineEnd:    10,
			Snippet:    "void fw_spawn(Player *p);",
			Signature:  "void fw_spawn(Player *p)",
		},
		{
			Kind:       KindFnDef,
			Visibility: Private,
			Name:       "fw_spawn_internal",
			File:       "src/player.c",
			LineStart:  20,
			LineEnd:    24,
			Snippet:    "static void fw_spawn_internal(Player *p) {\n  p->hp = 100;\n}",
			Signature:  "static void fw_spawn_internal(Player *p)",
		},
		{
			Kind:       KindStruct,
			Visibility: Private,
			Name:       "SpawnState",
			File:       "src/player.c",
			LineStart:  5,
			LineEnd:    8,
			Snippet:    "struct SpawnState {\n  Player *owner;\n  int seed;\n};",
		},
	})
}

func TestExpandClosure_TransitiveTypes(t *testing.T) {
	t.Parallel()

	cat := gameCatalog()
	selected := NewSet()
	selected.Add("fw_spawn")

	ExpandClosure(cat, selected)

	assert.True(t, selected.Has("fw_spawn"))
	assert.True(t, selected.Has("Player"), "parameter type must be pulled in")
	assert.True(t, selected.Has("Vec2"), "field type must be pulled in transitively")
	assert.Equal(t, 3, selected.Len())
}

func TestExpandClosure_Idempotent(t *testing.T) {
	t.Parallel()

	cat := gameCatalog()
	selected := NewSet()
	selected.Add("fw_spawn")
	ExpandClosure(cat, selected)

	before := selected.Sorted()
	ExpandClosure(cat, selected)

	assert.Equal(t, before, selected.Sorted(), "fixed point must not grow")
}

func TestExpandClosure_TypesOnlyNotFunctions(t *testing.T) {
	t.Parallel()

	cat := NewCatalog([]Symbol{
		{Kind: KindFnProto, Visibility: Public, Name: "fw_tick", Snippet: "void fw_tick(void);", Signature: "void fw_tick(void)"},
		{
			Kind:       KindFnDef,
			Visibility: Public,
			Name:       "fw_run",
			Snippet:    "void fw_run(void) {\n  fw_tick();\n}",
			Signature:  "void fw_run(void)",
		},
	})

	selected := NewSet()
	selected.Add("fw_run")
	ExpandClosure(cat, selected)

	assert.False(t, selected.Has("fw_tick"), "closure chases type names, not callees")
	assert.Equal(t, 1, selected.Len())
}

func TestExpandClosure_EmptySeed(t *testing.T) {
	t.Parallel()

	cat := gameCatalog()
	selected := NewSet()
	ExpandClosure(cat, selected)

	assert.Equal(t, 0, selected.Len())
}

func TestSelectNeeds_PublicMode(t *testing.T) {
	t.Parallel()

	cat := gameCatalog()
	entry := "int main(void) {\n  Player hero;\n  fw_spawn(&hero);\n  return 0;\n}\n"

	selected := SelectNeeds(cat, entry, false)

	assert.True(t, selected.Has("fw_spawn"))
	assert.True(t, selected.Has("Player"))
	assert.True(t, selected.Has("Vec2"))
	assert.False(t, selected.Has("fw_spawn_internal"), "private symbols never seed in public mode")
}

func TestSelectNeeds_PrivateModeSeedsPrivate(t *testing.T) {
	t.Parallel()

	cat := gameCatalog()
	entry := "void boot(void) { fw_spawn_internal(0); }\n"

	selected := SelectNeeds(cat, entry, true)

	require.True(t, selected.Has("fw_spawn_internal"))
	assert.True(t, selected.Has("Player"), "private symbol's types are chased")
	assert.True(t, selected.Has("Vec2"))
}

func TestSelectNeeds_PrivateTypeViaClosureInPublicMode(t *testing.T) {
	t.Parallel()

	// A public function whose snippet mentions a private type: the private
	// type enters the selection through the closure even in public mode.
	cat := NewCatalog([]Symbol{
		{Kind: KindStruct, Visibility: Private, Name: "Hidden", Snippet: "struct Hidden {\n  int v;\n};"},
		{
			Kind:       KindFnProto,
			Visibility: Public,
			Name:       "fw_peek",
			Snippet:    "struct Hidden *fw_peek(void);",
			Signature:  "struct Hidden *fw_peek(void)",
		},
	})

	selected := SelectNeeds(cat, "fw_peek();", false)

	assert.True(t, selected.Has("fw_peek"))
	assert.True(t, selected.Has("Hidden"), "closure ignores visibility")
}

func TestCatalog_Partitions(t *testing.T) {
	t.Parallel()

	cat := gameCatalog()

	assert.True(t, cat.TypeNames.Has("Vec2"))
	assert.True(t, cat.TypeNames.Has("SpawnState"))
	assert.False(t, cat.TypeNames.Has("fw_spawn"))
	assert.True(t, cat.FnNames.Has("fw_spawn"))
	assert.False(t, cat.FnNames.Has("Player"))
	assert.Equal(t, 5, cat.AllNames.Len())
}

func TestCatalog_ByName(t *testing.T) {
	t.Parallel()

	cat := NewCatalog([]Symbol{
		{Kind: KindFnProto, Name: "fw_add", File: "include/fw.h", LineStart: 1, LineEnd: 1, Snippet: "int fw_add(int a, int b);"},
		{Kind: KindFnDef, Name: "fw_add", File: "src/fw.c", LineStart: 3, LineEnd: 5, Snippet: "int fw_add(int a, int b) {\n  return a + b;\n}"},
	})

	got := cat.ByName("fw_add")
	require.Len(t, got, 2)
	assert.Equal(t, KindFnProto, got[0].Kind)
	assert.Equal(t, KindFnDef, got[1].Kind)
	assert.Empty(t, cat.ByName("missing"))
}

func TestMatchesKindFilter(t *testing.T) {
	t.Parallel()

	assert.True(t, MatchesKindFilter(KindFnProto, "fn"))
	assert.True(t, MatchesKindFilter(KindFnDef, "fn"))
	assert.False(t, MatchesKindFilter(KindStruct, "fn"))
	assert.True(t, MatchesKindFilter(KindStruct, "struct"))
	assert.True(t, MatchesKindFilter(KindTypedefStruct, "struct"))
	assert.False(t, MatchesKindFilter(KindTypedefStruct, "fn_proto"))
	assert.True(t, MatchesKindFilter(KindFnProto, ""), "empty filter matches all")
	assert.True(t, MatchesKindFilter(KindStruct, "bogus"), "unknown filter matches all")
}
