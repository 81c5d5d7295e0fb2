package mods

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// List scans the immediate subdirectories of modsDir and returns one Mod per
// folder, sorted by name. Enabled state is derived from the DISABLED_ prefix
// and nothing else. Entries that cannot be read are skipped and reported as
// warnings so one broken folder does not hide the rest.
func List(modsDir string) ([]Mod, []string, error) {
	fi, err := os.Stat(modsDir)
	if err != nil {
		return nil, nil, &ConfigError{Path: modsDir, Err: err}
	}
	if !fi.IsDir() {
		return nil, nil, &ConfigError{Path: modsDir, Err: errors.New("not a directory")}
	}

	entries, err := os.ReadDir(modsDir)
	if err != nil {
		return nil, nil, &ConfigError{Path: modsDir, Err: err}
	}

	var warnings []string
	seen := make(map[string]string)
	list := make([]Mod, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !entry.IsDir() {
			continue
		}
		if _, err := entry.Info(); err != nil {
			// Folders deleted mid-scan just disappear; anything else is
			// worth telling the user about.
			if !errors.Is(err, fs.ErrNotExist) {
				warnings = append(warnings, fmt.Sprintf("skipping %s: %v", name, err))
			}
			continue
		}

		enabled := !strings.HasPrefix(name, DisabledPrefix)
		ident := strings.TrimPrefix(name, DisabledPrefix)
		if ident == "" {
			warnings = append(warnings, fmt.Sprintf("skipping %s: empty mod name", name))
			continue
		}
		if other, ok := seen[ident]; ok {
			warnings = append(warnings, fmt.Sprintf("skipping %s: same mod as %s", name, other))
			continue
		}
		seen[ident] = name

		path := filepath.Join(modsDir, name)
		_, previewErr := os.Stat(filepath.Join(path, "preview.png"))
		list = append(list, Mod{
			Name:       ident,
			Path:       path,
			Enabled:    enabled,
			HasPreview: previewErr == nil,
		})
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, warnings, nil
}
