package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/phyten/tinkerthis/internal/config"
	"github.com/phyten/tinkerthis/internal/engine"
	engineopts "github.com/phyten/tinkerthis/internal/engine/opts"
	"github.com/phyten/tinkerthis/internal/util"
)

var subcommands = map[string]struct{}{
	"prepare": {},
	"command": {},
	"preview": {},
	"run":     {},
	"batch":   {},
}

type cliConfig struct {
	command    string
	opts       engine.Options
	ui         config.UISettings
	files      []string
	showHelp   bool
	verbose    bool
	configPath string
	configFrom string
}

// parseArgs layers defaults, the config file, TINKERTHIS_* variables and flags, in that order.
func parseArgs(args []string, getenv func(string) string, cwd string) (cliConfig, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	cfg := cliConfig{command: "prepare"}
	if len(args) > 0 {
		if _, ok := subcommands[args[0]]; ok {
			cfg.command = args[0]
			args = args[1:]
		} else if args[0] == "help" {
			cfg.showHelp = true
			return cfg, nil
		}
	}

	fs := flag.NewFlagSet("tinkerthis "+cfg.command, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		selection    = fs.String("selection", "", "only prepare the range L:C-L:C (1-based, end exclusive)")
		php          = fs.String("php", "", "PHP interpreter path")
		subcommand   = fs.String("subcommand", "", "arguments passed to php (default: artisan tinker)")
		dir          = fs.String("dir", "", "working directory for run")
		noClear      = fs.Bool("no-clear", false, "do not clear the terminal before run")
		output       string
		color        = fs.String("color", "", "auto|always|never")
		jobs         = fs.Int("jobs", 0, "max parallel workers for batch")
		configPath   = fs.String("config", "", "config file path")
		width        = fs.Int("width", 0, "preview width (0=terminal width)")
		matchTimeout = fs.Int("match-timeout", 0, "regexp match timeout in ms (0=none)")
		forceProg    = fs.Bool("progress", false, "force batch progress even when piped")
		noProgress   = fs.Bool("no-progress", false, "disable batch progress")
		verbose      bool
		help         = fs.Bool("help", false, "show help")
		helpShort    = fs.Bool("h", false, "show help")
	)
	fs.StringVar(&output, "output", "", "text|json|ndjson|markdown")
	fs.StringVar(&output, "o", "", "shorthand for --output")
	fs.BoolVar(&verbose, "verbose", false, "preview: also print the flatten steps")
	fs.BoolVar(&verbose, "v", false, "shorthand for --verbose")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cfg.showHelp = true
			return cfg, nil
		}
		return cfg, err
	}
	if *help || *helpShort {
		cfg.showHelp = true
		return cfg, nil
	}
	cfg.files = fs.Args()
	cfg.verbose = verbose

	var flagEngine config.EngineConfig
	var flagUI config.UIConfig
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "php":
			flagEngine.PHPPath = php
		case "subcommand":
			flagEngine.Subcommand = subcommand
		case "dir":
			flagEngine.Dir = dir
		case "no-clear":
			keep := !*noClear
			flagEngine.Clear = &keep
		case "jobs":
			flagEngine.Jobs = jobs
		case "match-timeout":
			flagEngine.MatchTimeoutMS = matchTimeout
		case "o", "output":
			flagUI.Output = &output
		case "color":
			flagUI.Color = color
		case "width":
			flagUI.PreviewWidth = width
		}
	})
	if *matchTimeout < 0 || *matchTimeout > engineopts.MaxMatchTimeoutMS {
		return cfg, fmt.Errorf("--match-timeout must be between 0 and %d", engineopts.MaxMatchTimeoutMS)
	}

	explicit := strings.TrimSpace(*configPath)
	if explicit == "" {
		explicit = getenv(config.EnvConfigPath)
	}
	path, from, err := config.Find(cwd, explicit, getenv("XDG_CONFIG_HOME"), getenv("HOME"))
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	cfg.configPath, cfg.configFrom = path, from

	envCfg, err := config.FromEnv(getenv)
	if err != nil {
		return cfg, err
	}

	defaults := engineopts.Defaults(cwd)
	settings := config.MergeEngine(config.EngineSettingsFromOptions(defaults), fileCfg.Engine, envCfg.Engine, flagEngine)
	cfg.opts = defaults
	settings.ApplyToOptions(&cfg.opts)
	if err := engineopts.NormalizeAndValidate(&cfg.opts); err != nil {
		return cfg, err
	}
	cfg.opts.Progress = util.ShouldShowProgress(*forceProg, *noProgress)

	ui := config.MergeUI(config.DefaultUISettings(), fileCfg.UI, envCfg.UI, flagUI)
	if cfg.ui, err = config.NormalizeUI(ui); err != nil {
		return cfg, err
	}

	if cfg.opts.Selection, err = engine.ParseSelection(*selection); err != nil {
		return cfg, err
	}

	switch {
	case cfg.command == "batch" && len(cfg.files) == 0:
		return cfg, fmt.Errorf("batch needs at least one file")
	case cfg.command != "batch" && len(cfg.files) > 1:
		return cfg, fmt.Errorf("%s takes at most one file, got %d (use batch)", cfg.command, len(cfg.files))
	case cfg.command == "batch" && !cfg.opts.Selection.Empty():
		return cfg, fmt.Errorf("--selection cannot be used with batch")
	}
	return cfg, nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, "Usage: tinkerthis [prepare|command|preview|run|batch] [options] [file]\n\n"+
		"Subcommands:\n"+
		"  prepare  Print the snippet with // comments removed, flattened to one line (default)\n"+
		"  command  Print the shell command that pipes the snippet into php artisan tinker\n"+
		"  preview  Print the command cut to the terminal width\n"+
		"  run      Clear the terminal and run the command\n"+
		"  batch    Prepare several files at once\n\n"+
		"Input is read from the file argument, or stdin when it is missing or \"-\".\n\n"+
		"Options:\n"+
		"  --selection L:C-L:C   only use this range of the input\n"+
		"  --php PATH            PHP interpreter (env TINKERTHIS_PHP_PATH)\n"+
		"  --subcommand ARGS     arguments after php (default: artisan tinker)\n"+
		"  --dir DIR             working directory for run\n"+
		"  --no-clear            keep the terminal contents before run\n"+
		"  -o, --output FORMAT   text|json|ndjson|markdown\n"+
		"  --color WHEN          auto|always|never\n"+
		"  --jobs N              parallel workers for batch (1-64)\n"+
		"  --width N             preview width (0=terminal width)\n"+
		"  -v, --verbose         preview: list the flatten steps on stderr\n"+
		"  --match-timeout MS    regexp match timeout (0=none)\n"+
		"  --progress, --no-progress\n"+
		"  --config PATH         config file (env TINKERTHIS_CONFIG)\n")
}
