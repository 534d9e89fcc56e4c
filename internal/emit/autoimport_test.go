package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/apidef/internal/symbols"
)

// Test Plan for the Auto-Import Header:
// - Public mode sets API_VIS_PRIVATE_TOO 0 and drops private names even
//   when the selection set contains them
// - Private mode sets API_VIS_PRIVATE_TOO 1 and keeps everything selected
// - The trailing include honors the configured header path

func importFixture() []symbols.Symbol {
	return []symbols.Symbol{
		{Kind: symbols.KindFnProto, Visibility: symbols.Public, Name: "fw_spawn"},
		{Kind: symbols.KindTypedefStruct, Visibility: symbols.Private, Name: "SpawnState"},
		{Kind: symbols.KindFnProto, Visibility: symbols.Public, Name: "fw_despawn"},
	}
}

func TestWriteAutoImport_PublicMode(t *testing.T) {
	t.Parallel()

	selected := symbols.Set{}
	selected.Add("fw_spawn")
	selected.Add("SpawnState")

	var b strings.Builder
	require.NoError(t, WriteAutoImport(&b, importFixture(), selected, false, ""))
	out := b.String()

	assert.Contains(t, out, "#pragma once\n")
	assert.Contains(t, out, "#define API_SELECTIVE 1\n")
	assert.Contains(t, out, "#define API_VIS_PRIVATE_TOO 0\n")
	assert.Contains(t, out, "#define IMPORT_fw_spawn 1\n")
	assert.NotContains(t, out, "IMPORT_SpawnState",
		"private symbols stay out in public mode even when selected")
	assert.NotContains(t, out, "IMPORT_fw_despawn", "unselected symbols stay out")
	assert.True(t, strings.HasSuffix(out, "#include \"framework/api.h\"\n"))
}

func TestWriteAutoImport_PrivateMode(t *testing.T) {
	t.Parallel()

	selected := symbols.Set{}
	selected.Add("fw_spawn")
	selected.Add("SpawnState")

	var b strings.Builder
	require.NoError(t, WriteAutoImport(&b, importFixture(), selected, true, "engine/api.h"))
	out := b.String()

	assert.Contains(t, out, "#define API_VIS_PRIVATE_TOO 1\n")
	assert.Contains(t, out, "#define IMPORT_fw_spawn 1\n")
	assert.Contains(t, out, "#define IMPORT_SpawnState 1\n")
	assert.True(t, strings.HasSuffix(out, "#include \"engine/api.h\"\n"))
}

func TestWriteAutoImportFile(t *testing.T) {
	t.Parallel()

	selected := symbols.Set{}
	selected.Add("fw_spawn")

	path := filepath.Join(t.TempDir(), "gen", "auto_import.h")
	require.NoError(t, WriteAutoImportFile(path, importFixture(), selected, false, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#define IMPORT_fw_spawn 1\n")
}
