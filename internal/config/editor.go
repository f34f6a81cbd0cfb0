package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/phyten/tinkerthis/internal/strip"
)

// editorKeyPrefix namespaces the editor extension's settings ("tinker-this.phpPath").
const editorKeyPrefix = "tinker-this."

func isEditorSettings(path string) bool {
	return filepath.Base(path) == "settings.json" && filepath.Base(filepath.Dir(path)) == ".vscode"
}

// loadEditorSettings reads the tinker-this.* keys of a VS Code settings file.
// The file is JSON with // comments; every other key belongs to someone else
// and is ignored, as are tinker-this.* keys the CLI has no use for.
func loadEditorSettings(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	doc := gjson.Parse(strip.Strip(string(data)))
	if !doc.IsObject() {
		return cfg, fmt.Errorf("parse %s: expected a JSON object", path)
	}
	raw := make(map[string]any)
	doc.ForEach(func(key, value gjson.Result) bool {
		norm := normalizeKey(key.String())
		if !strings.HasPrefix(norm, extensionPrefix) {
			return true
		}
		name := strings.TrimPrefix(norm, extensionPrefix)
		_, isEngine := engineKeyMap[name]
		_, isUI := uiKeyMap[name]
		if isEngine || isUI {
			raw[norm] = value.Value()
		}
		return true
	})
	decoded, err := decodeConfigMap(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return decoded, nil
}
