package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"modui/pkg/utils"
)

// Layout fixes the directory convention shared with the GIMI model importer.
// Both tools read the same folder, so none of these names are configurable.
type Layout struct {
	Root string
}

func (l Layout) ModsDir() string    { return filepath.Join(l.Root, "Mods") }
func (l Layout) ScriptsDir() string { return filepath.Join(l.Root, "Scripts") }
func (l Layout) MergeDir() string   { return filepath.Join(l.Root, "Scripts", "Merge") }

// LogoPath is the reserved name for a custom banner shown by the interface.
func (l Layout) LogoPath() string { return filepath.Join(l.Root, "logo.txt") }

// Settings is the small persisted state between runs, mirroring what the
// interface needs at startup: the last root the user picked.
type Settings struct {
	LastRoot string `json:"last_root"`
}

func settingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "modui", "settings.json"), nil
}

// LoadSettings returns zero settings when no file exists yet.
func LoadSettings() (Settings, error) {
	path, err := settingsPath()
	if err != nil {
		return Settings{}, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Save() error {
	path, err := settingsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, string(data))
}

// LoadLogo reads the optional banner file; the second return reports whether
// one was found.
func LoadLogo(l Layout) (string, bool) {
	data, err := os.ReadFile(l.LogoPath())
	if err != nil {
		return "", false
	}
	banner := strings.TrimRight(string(data), "\n")
	if banner == "" {
		return "", false
	}
	return banner, true
}

var scriptExts = map[string]bool{
	".py":  true,
	".sh":  true,
	".exe": true,
	".bat": true,
}

// FindScript returns the lexicographically first script file in dir, used as
// the default when the user did not name one explicitly.
func FindScript(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if scriptExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", errors.New("no script found in " + dir)
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}
