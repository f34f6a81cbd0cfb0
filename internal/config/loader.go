package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	engineopts "github.com/phyten/tinkerthis/internal/engine/opts"
)

// Keys written by the editor extension ("tinker-this.phpPath") normalize to this prefix.
const extensionPrefix = "tinker_this."

var engineKeyMap = map[string]string{
	"php_path":         "php_path",
	"phppath":          "php_path",
	"php":              "php_path",
	"subcommand":       "subcommand",
	"dir":              "dir",
	"cwd":              "dir",
	"working_dir":      "dir",
	"clear":            "clear",
	"clear_terminal":   "clear",
	"jobs":             "jobs",
	"match_timeout_ms": "match_timeout_ms",
	"match_timeout":    "match_timeout_ms",
}

var uiKeyMap = map[string]string{
	"output":        "output",
	"color":         "color",
	"preview_width": "preview_width",
	"width":         "preview_width",
}

var engineSections = map[string]struct{}{"engine": {}, "tinker_this": {}}

func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	if isEditorSettings(path) {
		return loadEditorSettings(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var raw map[string]any
	switch ext {
	case ".yaml", ".yml":
		if decodeErr := yaml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".toml":
		if decodeErr := toml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".json":
		if decodeErr := json.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if raw == nil {
		return cfg, nil
	}
	decoded, err := decodeConfigMap(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return decoded, nil
}

func decodeConfigMap(raw map[string]any) (Config, error) {
	var cfg Config
	engineSection := make(map[string]any)
	uiSection := make(map[string]any)

	// sections first so that flat keys override them, whatever the map order
	for key, value := range raw {
		norm := normalizeKey(key)
		_, isEngine := engineSections[norm]
		if !isEngine && norm != "ui" {
			continue
		}
		sub, err := toStringKeyMap(value)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", key, err)
		}
		if isEngine {
			err = fillSection(engineSection, sub, engineKeyMap, "engine")
		} else {
			err = fillSection(uiSection, sub, uiKeyMap, "ui")
		}
		if err != nil {
			return cfg, err
		}
	}

	for key, value := range raw {
		norm := normalizeKey(key)
		if _, ok := engineSections[norm]; ok || norm == "ui" {
			continue
		}
		norm = strings.TrimPrefix(norm, extensionPrefix)
		if canonical, ok := engineKeyMap[norm]; ok {
			engineSection[canonical] = value
			continue
		}
		if canonical, ok := uiKeyMap[norm]; ok {
			uiSection[canonical] = value
			continue
		}
		return cfg, fmt.Errorf("unknown config key: %s", key)
	}

	if err := assignEngine(engineSection, &cfg.Engine); err != nil {
		return cfg, fmt.Errorf("engine: %w", err)
	}
	if err := assignUI(uiSection, &cfg.UI); err != nil {
		return cfg, fmt.Errorf("ui: %w", err)
	}
	return cfg, nil
}

func fillSection(dst, src map[string]any, allowed map[string]string, section string) error {
	for key, value := range src {
		canonical, ok := allowed[normalizeKey(key)]
		if !ok {
			return fmt.Errorf("unknown %s key: %s", section, key)
		}
		dst[canonical] = value
	}
	return nil
}

func assignEngine(section map[string]any, dst *EngineConfig) error {
	for key, value := range section {
		switch key {
		case "php_path":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			dst.PHPPath = &str
		case "subcommand":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			dst.Subcommand = &str
		case "dir":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			dst.Dir = &str
		case "clear":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Clear = &b
		case "jobs":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.Jobs = &n
		case "match_timeout_ms":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			if n < 0 || n > engineopts.MaxMatchTimeoutMS {
				return fmt.Errorf("%s must be between 0 and %d", key, engineopts.MaxMatchTimeoutMS)
			}
			dst.MatchTimeoutMS = &n
		default:
			return fmt.Errorf("unsupported engine key: %s", key)
		}
	}
	return nil
}

func assignUI(section map[string]any, dst *UIConfig) error {
	for key, value := range section {
		switch key {
		case "output":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			dst.Output = &str
		case "color":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			dst.Color = &str
		case "preview_width":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.PreviewWidth = &n
		default:
			return fmt.Errorf("unsupported ui key: %s", key)
		}
	}
	return nil
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%s cannot be null", field)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string for %s, got %T", field, value)
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return engineopts.ParseBool(v, field)
	default:
		return false, fmt.Errorf("expected bool for %s, got %T", field, value)
	}
}

func expectInt(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected integer for %s, got %v", field, value)
		}
		return int(v), nil
	case json.Number:
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %v", field, value)
		}
		return n, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer for %s, got %T", field, value)
	}
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

func normalizeKey(key string) string {
	norm := strings.ToLower(strings.TrimSpace(key))
	norm = strings.ReplaceAll(norm, "-", "_")
	return norm
}
