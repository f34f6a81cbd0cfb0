package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Where a config file was found, as reported by Find.
const (
	FromExplicit = "explicit"
	FromCwdUp    = "cwd-up"
	FromEditor   = "vscode"
	FromXDG      = "xdg"
	FromHome     = "home"
)

var (
	dotNames = []string{".tinkerthis.yaml", ".tinkerthis.yml", ".tinkerthis.toml", ".tinkerthis.json"}
	xdgNames = []string{"config.yaml", "config.yml", "config.toml", "config.json"}
	// workspace settings of the editor extension
	editorSettings = filepath.Join(".vscode", "settings.json")
)

// Find locates the config file and reports where it came from.
//
// Search order, first hit wins:
//  1. explicitPath (--config or TINKERTHIS_CONFIG), relative to dir
//  2. walking up from dir: .tinkerthis.*, then .vscode/settings.json when it
//     sets a tinker-this.* key
//  3. $XDG_CONFIG_HOME/tinkerthis/config.* (default ~/.config)
//  4. ~/.tinkerthis.*
//
// Nothing found is not an error: path and source are both "".
func Find(dir, explicitPath, xdgHome, home string) (string, string, error) {
	start, err := filepath.Abs(orDot(dir))
	if err != nil {
		return "", "", err
	}
	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		path, err := explicitConfig(start, explicit)
		if err != nil {
			return "", "", err
		}
		return path, FromExplicit, nil
	}

	for cur := start; ; {
		if path, ok := firstFile(cur, dotNames); ok {
			return path, FromCwdUp, nil
		}
		if path := filepath.Join(cur, editorSettings); mentionsExtension(path) {
			return path, FromEditor, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}

	homeDir := resolveHome(home)
	xdgRoot := strings.TrimSpace(xdgHome)
	if xdgRoot == "" && homeDir != "" {
		xdgRoot = filepath.Join(homeDir, ".config")
	}
	if xdgRoot != "" {
		if path, ok := firstFile(filepath.Join(xdgRoot, "tinkerthis"), xdgNames); ok {
			return path, FromXDG, nil
		}
	}
	if homeDir != "" {
		if path, ok := firstFile(homeDir, dotNames); ok {
			return path, FromHome, nil
		}
	}
	return "", "", nil
}

func explicitConfig(base, path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("config %q points to a directory", path)
	}
	return path, nil
}

func firstFile(dir string, names []string) (string, bool) {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// mentionsExtension reports whether the editor settings file exists and
// names a tinker-this.* setting. Other workspaces' settings are skipped.
func mentionsExtension(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Contains(data, []byte(`"`+editorKeyPrefix))
}

func orDot(dir string) string {
	if d := strings.TrimSpace(dir); d != "" {
		return d
	}
	return "."
}

func resolveHome(home string) string {
	if h := strings.TrimSpace(home); h != "" {
		return h
	}
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return ""
}
