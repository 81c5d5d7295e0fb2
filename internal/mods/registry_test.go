package mods

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeModsDir(t *testing.T, folders ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range folders {
		require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0755))
	}
	return dir
}

func TestListSortedWithDerivedState(t *testing.T) {
	dir := makeModsDir(t, "B", "DISABLED_C", "A")

	list, warnings, err := List(dir)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, list, 3)

	assert.Equal(t, "A", list[0].Name)
	assert.True(t, list[0].Enabled)
	assert.Equal(t, "B", list[1].Name)
	assert.True(t, list[1].Enabled)
	assert.Equal(t, "C", list[2].Name)
	assert.False(t, list[2].Enabled)
	assert.Equal(t, filepath.Join(dir, "DISABLED_C"), list[2].Path)
}

func TestListSkipsFilesAndHiddenEntries(t *testing.T) {
	dir := makeModsDir(t, "Ayaka", ".git")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644))

	list, warnings, err := List(dir)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, list, 1)
	assert.Equal(t, "Ayaka", list[0].Name)
}

func TestListDuplicateIdentityWarns(t *testing.T) {
	dir := makeModsDir(t, "Ayaka", "DISABLED_Ayaka")

	list, warnings, err := List(dir)
	require.NoError(t, err)
	require.Len(t, list, 1, "one entry per identity")
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Ayaka")
}

func TestListMissingRoot(t *testing.T) {
	_, _, err := List(filepath.Join(t.TempDir(), "nope"))
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestListRootIsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Mods")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, _, err := List(path)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestListPreviewDetection(t *testing.T) {
	dir := makeModsDir(t, "WithPreview", "WithoutPreview")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "WithPreview", "preview.png"), []byte{0x89}, 0644))

	list, _, err := List(dir)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].HasPreview)
	assert.False(t, list[1].HasPreview)
}
