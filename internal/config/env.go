package config

import (
	"errors"
	"math"
	"strings"

	engineopts "github.com/phyten/tinkerthis/internal/engine/opts"
)

// EnvConfigPath names the variable holding an explicit config file path.
const EnvConfigPath = "TINKERTHIS_CONFIG"

func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}
	setInt := func(target **int, key string, min, max int) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseIntInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}

	setString(&cfg.Engine.PHPPath, "TINKERTHIS_PHP_PATH")
	setString(&cfg.Engine.Subcommand, "TINKERTHIS_SUBCOMMAND")
	setString(&cfg.Engine.Dir, "TINKERTHIS_DIR")
	setBool(&cfg.Engine.Clear, "TINKERTHIS_CLEAR")
	// Allow large values here and rely on NormalizeAndValidate to enforce the
	// canonical upper bound so every input path shares the same error message.
	setInt(&cfg.Engine.Jobs, "TINKERTHIS_JOBS", 0, math.MaxInt)
	setInt(&cfg.Engine.MatchTimeoutMS, "TINKERTHIS_MATCH_TIMEOUT_MS", 0, engineopts.MaxMatchTimeoutMS)

	setString(&cfg.UI.Output, "TINKERTHIS_OUTPUT")
	setString(&cfg.UI.Color, "TINKERTHIS_COLOR")
	setInt(&cfg.UI.PreviewWidth, "TINKERTHIS_PREVIEW_WIDTH", 0, math.MaxInt)

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
