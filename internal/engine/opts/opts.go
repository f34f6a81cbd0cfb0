package opts

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/phyten/tinkerthis/internal/engine"
)

const (
	maxJobs = 64
	// DefaultPHPPath is used when neither config nor flags name an interpreter.
	DefaultPHPPath = "php"
	// MaxMatchTimeoutMS bounds match_timeout_ms to one hour.
	MaxMatchTimeoutMS = 60 * 60 * 1000
)

var (
	trueLiterals  = map[string]struct{}{"1": {}, "true": {}, "yes": {}, "on": {}}
	falseLiterals = map[string]struct{}{"0": {}, "false": {}, "no": {}, "off": {}}
)

// Defaults returns the baseline options shared by every subcommand.
func Defaults(dir string) engine.Options {
	jobs := runtime.NumCPU()
	if jobs < 1 {
		jobs = 1
	}
	if jobs > maxJobs {
		jobs = maxJobs
	}
	return engine.Options{
		PHPPath:      DefaultPHPPath,
		Subcommand:   engine.DefaultSubcommand,
		Dir:          dir,
		Clear:        true,
		Jobs:         jobs,
		MatchTimeout: 0,
	}
}

// NormalizeAndValidate ensures the options are canonical and within the allowed ranges.
func NormalizeAndValidate(o *engine.Options) error {
	o.PHPPath = strings.TrimSpace(o.PHPPath)
	o.Subcommand = strings.Join(strings.Fields(o.Subcommand), " ")
	if o.Subcommand == "" {
		o.Subcommand = engine.DefaultSubcommand
	}
	o.Dir = strings.TrimSpace(o.Dir)

	if o.Jobs < 1 || o.Jobs > maxJobs {
		return fmt.Errorf("jobs must be between 1 and %d", maxJobs)
	}
	if o.MatchTimeout < 0 || o.MatchTimeout > MaxMatchTimeoutMS*time.Millisecond {
		return fmt.Errorf("match_timeout_ms must be between 0 and %d", MaxMatchTimeoutMS)
	}
	return nil
}

// ParseBool accepts 1/true/yes/on and 0/false/no/off, case-insensitively.
func ParseBool(raw, key string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := trueLiterals[v]; ok {
		return true, nil
	}
	if _, ok := falseLiterals[v]; ok {
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q", key, raw)
}

// ParseIntInRange parses a string into an int and ensures it falls within [min, max].
// If max < min, the upper bound is ignored.
func ParseIntInRange(raw, key string, min, max int) (int, error) {
	n, err := parseInt(raw, key)
	if err != nil {
		return 0, err
	}
	if n < min {
		if max >= min {
			return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
		}
		return 0, fmt.Errorf("%s must be >= %d", key, min)
	}
	if max >= min && n > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return n, nil
}

// NormalizeOutput validates and lower-cases the output format value.
func NormalizeOutput(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "", "text":
		return "text", nil
	case "json", "ndjson":
		return v, nil
	case "markdown", "md":
		return "markdown", nil
	default:
		return "", fmt.Errorf("invalid --output: %s (allowed: text, json, ndjson, markdown)", value)
	}
}

func parseInt(raw, key string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	return n, nil
}
