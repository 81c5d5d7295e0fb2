package mods

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findMod(t *testing.T, dir, name string) Mod {
	t.Helper()
	list, _, err := List(dir)
	require.NoError(t, err)
	for _, m := range list {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("mod %q not found", name)
	return Mod{}
}

func TestSetEnabledDisables(t *testing.T) {
	dir := makeModsDir(t, "Ayaka")
	m := findMod(t, dir, "Ayaka")

	updated, err := SetEnabled(dir, m, false)
	require.NoError(t, err)
	assert.False(t, updated.Enabled)
	assert.Equal(t, filepath.Join(dir, "DISABLED_Ayaka"), updated.Path)

	assert.NoDirExists(t, filepath.Join(dir, "Ayaka"))
	assert.DirExists(t, filepath.Join(dir, "DISABLED_Ayaka"))
}

func TestSetEnabledNoOp(t *testing.T) {
	dir := makeModsDir(t, "Ayaka")
	m := findMod(t, dir, "Ayaka")

	updated, err := SetEnabled(dir, m, true)
	require.NoError(t, err)
	assert.Equal(t, m, updated)
	assert.DirExists(t, filepath.Join(dir, "Ayaka"))
}

func TestSetEnabledRoundTrip(t *testing.T) {
	dir := makeModsDir(t, "Ayaka")
	m := findMod(t, dir, "Ayaka")

	off, err := SetEnabled(dir, m, false)
	require.NoError(t, err)
	back, err := SetEnabled(dir, off, true)
	require.NoError(t, err)

	assert.Equal(t, m, back)
	assert.DirExists(t, filepath.Join(dir, "Ayaka"))
}

func TestSetEnabledDestinationConflict(t *testing.T) {
	dir := makeModsDir(t, "Ayaka", "DISABLED_Ayaka")

	m := Mod{Name: "Ayaka", Path: filepath.Join(dir, "Ayaka"), Enabled: true}
	_, err := SetEnabled(dir, m, false)

	var conflict *StateConflictError
	require.ErrorAs(t, err, &conflict)

	// Both sides untouched.
	assert.DirExists(t, filepath.Join(dir, "Ayaka"))
	assert.DirExists(t, filepath.Join(dir, "DISABLED_Ayaka"))
}

func TestSetEnabledRenameFailureLeavesSource(t *testing.T) {
	dir := makeModsDir(t, "Ayaka")
	m := findMod(t, dir, "Ayaka")

	renameErr := errors.New("device busy")
	renameFunc = func(string, string) error { return renameErr }
	defer func() { renameFunc = os.Rename }()

	_, err := SetEnabled(dir, m, false)
	require.ErrorIs(t, err, renameErr)
	assert.DirExists(t, filepath.Join(dir, "Ayaka"))
}

func TestSetEnabledAllSequential(t *testing.T) {
	dir := makeModsDir(t, "A", "B", "DISABLED_C")
	list, _, err := List(dir)
	require.NoError(t, err)

	updated, err := SetEnabledAll(dir, list, false)
	require.NoError(t, err)
	require.Len(t, updated, 3)
	for _, m := range updated {
		assert.False(t, m.Enabled)
	}
	assert.DirExists(t, filepath.Join(dir, "DISABLED_A"))
	assert.DirExists(t, filepath.Join(dir, "DISABLED_B"))
	assert.DirExists(t, filepath.Join(dir, "DISABLED_C"))
}

func TestSetEnabledAllStopsAtConflict(t *testing.T) {
	dir := makeModsDir(t, "A", "B", "DISABLED_B")

	list := []Mod{
		{Name: "A", Path: filepath.Join(dir, "A"), Enabled: true},
		{Name: "B", Path: filepath.Join(dir, "B"), Enabled: true},
	}
	updated, err := SetEnabledAll(dir, list, false)

	var conflict *StateConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, updated, 1, "A toggled before the failure")
	assert.DirExists(t, filepath.Join(dir, "DISABLED_A"))
	assert.DirExists(t, filepath.Join(dir, "B"))
}
