package mods

import (
	"fmt"
	"os"
	"path/filepath"
)

// Swapped out in tests to simulate rename failures.
var renameFunc = os.Rename

// SetEnabled flips a mod between its enabled and disabled folder name with a
// single same-directory rename. The rename is the only mutation: no content
// is read, copied or deleted, so an interrupted toggle leaves the folder in
// exactly one of the two valid states. Toggling to the state the mod already
// has is a no-op.
func SetEnabled(modsDir string, m Mod, enabled bool) (Mod, error) {
	if m.Enabled == enabled {
		return m, nil
	}

	src := filepath.Join(modsDir, FolderName(m.Name, m.Enabled))
	dst := filepath.Join(modsDir, FolderName(m.Name, enabled))

	if _, err := os.Lstat(dst); err == nil {
		return Mod{}, &StateConflictError{Src: src, Dst: dst}
	} else if !os.IsNotExist(err) {
		return Mod{}, fmt.Errorf("toggle %s: %w", m.Name, err)
	}

	if err := renameFunc(src, dst); err != nil {
		return Mod{}, fmt.Errorf("toggle %s: %w", m.Name, err)
	}

	m.Path = dst
	m.Enabled = enabled
	return m, nil
}

// SetEnabledAll toggles mods one at a time. Batches are sequential on purpose:
// every rename touches the same parent directory. The first failure stops the
// batch; already-toggled mods stay toggled and are returned alongside the error.
func SetEnabledAll(modsDir string, list []Mod, enabled bool) ([]Mod, error) {
	updated := make([]Mod, 0, len(list))
	for _, m := range list {
		u, err := SetEnabled(modsDir, m, enabled)
		if err != nil {
			return updated, err
		}
		updated = append(updated, u)
	}
	return updated, nil
}
