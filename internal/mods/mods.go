package mods

import (
	"fmt"
)

// DisabledPrefix marks a mod folder the importer should skip. A mod named
// "Ayaka" is disabled by renaming its folder to "DISABLED_Ayaka"; the prefix
// on disk is the only record of enabled state.
const DisabledPrefix = "DISABLED_"

// Mod is one folder under Mods/, rebuilt on every scan.
type Mod struct {
	Name       string // folder name without the disabled prefix
	Path       string // absolute path as it currently exists on disk
	Enabled    bool
	HasPreview bool // preview.png present inside the folder
}

// FolderName returns the on-disk folder name for the given state.
func FolderName(name string, enabled bool) string {
	if enabled {
		return name
	}
	return DisabledPrefix + name
}

type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("mods directory %q: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// StateConflictError is returned when a toggle destination already exists,
// usually a leftover from an interrupted rename. Overwriting it could destroy
// a mod, so the toggle refuses instead.
type StateConflictError struct {
	Src string
	Dst string
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("cannot rename %q: %q already exists", e.Src, e.Dst)
}
