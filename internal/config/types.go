package config

import (
	"strings"
	"time"

	"github.com/phyten/tinkerthis/internal/engine"
)

type EngineConfig struct {
	PHPPath        *string `yaml:"php_path" toml:"php_path" json:"php_path"`
	Subcommand     *string `yaml:"subcommand" toml:"subcommand" json:"subcommand"`
	Dir            *string `yaml:"dir" toml:"dir" json:"dir"`
	Clear          *bool   `yaml:"clear" toml:"clear" json:"clear"`
	Jobs           *int    `yaml:"jobs" toml:"jobs" json:"jobs"`
	MatchTimeoutMS *int    `yaml:"match_timeout_ms" toml:"match_timeout_ms" json:"match_timeout_ms"`
}

type UIConfig struct {
	Output       *string `yaml:"output" toml:"output" json:"output"`
	Color        *string `yaml:"color" toml:"color" json:"color"`
	PreviewWidth *int    `yaml:"preview_width" toml:"preview_width" json:"preview_width"`
}

type Config struct {
	Engine EngineConfig `yaml:"engine" toml:"engine" json:"engine"`
	UI     UIConfig     `yaml:"ui" toml:"ui" json:"ui"`
}

type EngineSettings struct {
	PHPPath        string
	Subcommand     string
	Dir            string
	Clear          bool
	Jobs           int
	MatchTimeoutMS int
}

type UISettings struct {
	Output       string
	Color        string
	PreviewWidth int
}

func EngineSettingsFromOptions(opts engine.Options) EngineSettings {
	return EngineSettings{
		PHPPath:        opts.PHPPath,
		Subcommand:     opts.Subcommand,
		Dir:            opts.Dir,
		Clear:          opts.Clear,
		Jobs:           opts.Jobs,
		MatchTimeoutMS: int(opts.MatchTimeout / time.Millisecond),
	}
}

func (s EngineSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.PHPPath = s.PHPPath
	opts.Subcommand = s.Subcommand
	if trimmed := strings.TrimSpace(s.Dir); trimmed != "" {
		opts.Dir = trimmed
	}
	opts.Clear = s.Clear
	opts.Jobs = s.Jobs
	opts.MatchTimeout = time.Duration(s.MatchTimeoutMS) * time.Millisecond
}

func DefaultUISettings() UISettings {
	return UISettings{
		Output:       "text",
		Color:        "auto",
		PreviewWidth: 0,
	}
}
