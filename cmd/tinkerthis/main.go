package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/phyten/tinkerthis/internal/detect"
	"github.com/phyten/tinkerthis/internal/engine"
	"github.com/phyten/tinkerthis/internal/execx"
	"github.com/phyten/tinkerthis/internal/flatten"
	"github.com/phyten/tinkerthis/internal/output"
	"github.com/phyten/tinkerthis/internal/termcolor"
	"github.com/phyten/tinkerthis/internal/textutil"
)

// notAvailable is shown when no command can be built for the input.
const notAvailable = "The tinker command is not available"

const defaultPreviewWidth = 80

type cliEnv struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	getenv  func(string) string
	environ []string
	cwd     string
	runner  execx.Runner
}

func main() {
	log.SetFlags(0)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("tinkerthis: %v", err)
	}
	code := run(ctx, os.Args[1:], cliEnv{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		getenv:  os.Getenv,
		environ: os.Environ(),
		cwd:     cwd,
	})
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, env cliEnv) int {
	logger := log.New(env.stderr, "tinkerthis: ", 0)

	cfg, err := parseArgs(args, env.getenv, env.cwd)
	if err != nil {
		logger.Print(err)
		fmt.Fprintln(env.stderr, "Run 'tinkerthis --help' for usage.")
		return 2
	}
	if cfg.showHelp {
		printUsage(env.stdout)
		return 0
	}
	if env.runner != nil {
		cfg.opts.Runner = env.runner
	}

	vars := termcolor.EnvMap(env.environ)
	errColor, _ := termcolor.Resolve(cfg.ui.Color, asFile(env.stderr), vars)
	outColor, _ := termcolor.Resolve(cfg.ui.Color, asFile(env.stdout), vars)
	errPaint := termcolor.NewPainter(errColor, vars)
	outPaint := termcolor.NewPainter(outColor, vars)

	if cfg.command == "batch" {
		return runBatch(ctx, cfg, env, logger, errPaint)
	}

	name, doc, err := readInput(env.stdin, cfg.files)
	if err != nil {
		logger.Print(err)
		return 1
	}
	text := engine.SelectText(doc, cfg.opts.Selection)
	if info := detect.FromPathAndContent(name, []byte(doc)); info.Name != "" && !info.IsPHP() {
		logger.Print(errPaint.Paint(termcolor.RoleWarning, fmt.Sprintf("warning: %s looks like %s, not php", displayName(name), info.Name)))
	}

	item := engine.NewPreparer(cfg.opts).Item(name, text)
	single := &engine.Result{Items: []engine.Item{item}, Total: 1}

	if cfg.command == "prepare" {
		return writeResult(env.stdout, cfg.ui.Output, single, output.FieldCode, logger)
	}

	if item.Command == "" {
		_, buildErr := engine.BuildCommand(item.Code, cfg.opts)
		return notice(env.stderr, errPaint, buildErr)
	}

	switch cfg.command {
	case "command":
		return writeResult(env.stdout, cfg.ui.Output, single, output.FieldCommand, logger)
	case "preview":
		width := cfg.ui.PreviewWidth
		if width == 0 {
			width = textutil.TerminalWidth(asFile(env.stdout), defaultPreviewWidth)
		}
		fmt.Fprintln(env.stdout, outPaint.Paint(termcolor.RoleCommand, textutil.Preview(item.Command, width)))
		if n := len(item.Removed); n > 0 {
			fmt.Fprintln(env.stderr, errPaint.Paint(termcolor.RoleRemoved, fmt.Sprintf("removed %d comment(s)", n)))
		}
		if cfg.verbose {
			fmt.Fprintln(env.stderr, errPaint.Paint(termcolor.RoleLabel, "steps:"), strings.Join(flatten.Steps(), " > "))
		}
		return 0
	default:
		return runCommand(ctx, cfg, env, item, logger, errPaint)
	}
}

func runCommand(ctx context.Context, cfg cliConfig, env cliEnv, item engine.Item, logger *log.Logger, paint termcolor.Painter) int {
	opts := cfg.opts
	if cfg.ui.Output == "json" || cfg.ui.Output == "ndjson" {
		captured, err := engine.Capture(ctx, opts, item.Code)
		captured.File, captured.Lang, captured.Removed = item.File, item.Lang, item.Removed
		res := &engine.Result{Items: []engine.Item{captured}, Total: 1}
		if err != nil {
			res.Errors = []engine.ItemError{{File: item.File, Stage: "run", Message: err.Error()}}
			res.ErrorCount = 1
		}
		if code := writeResult(env.stdout, cfg.ui.Output, res, output.FieldCommand, logger); code != 0 {
			return code
		}
		return exitStatus(err)
	}

	opts.Clear = opts.Clear && termcolor.IsTerminal(asFile(env.stdout))
	err := engine.Run(ctx, opts, item.Code, execx.Streams{Stdout: env.stdout, Stderr: env.stderr})
	switch {
	case err == nil:
		return 0
	case errors.Is(err, engine.ErrNoCode), errors.Is(err, engine.ErrNoInterpreter):
		return notice(env.stderr, paint, err)
	case ctx.Err() != nil:
		logger.Print("interrupted")
		return 130
	case execx.IsNotFound(err), execx.ExitCode(err) == 127:
		logger.Printf("%s: command not found", opts.PHPPath)
		return notice(env.stderr, paint, nil)
	default:
		return exitStatus(err)
	}
}

func runBatch(ctx context.Context, cfg cliConfig, env cliEnv, logger *log.Logger, paint termcolor.Painter) int {
	res, err := engine.PrepareFiles(ctx, cfg.opts, cfg.files)
	if err != nil {
		logger.Print(err)
		return 1
	}
	for _, it := range res.Items {
		if it.Lang != "" && detect.NormalizeLangName(it.Lang) != detect.PHP {
			logger.Print(paint.Paint(termcolor.RoleWarning, fmt.Sprintf("warning: %s looks like %s, not php", it.File, it.Lang)))
		}
	}
	if code := writeResult(env.stdout, cfg.ui.Output, res, output.FieldCode, logger); code != 0 {
		return code
	}
	reportErrors(env.stderr, res, paint)
	if res.ErrorCount > 0 {
		return 1
	}
	return 0
}

func reportErrors(w io.Writer, res *engine.Result, paint termcolor.Painter) {
	if res == nil || res.ErrorCount == 0 {
		return
	}
	fmt.Fprintln(w, paint.Paint(termcolor.RoleWarning, fmt.Sprintf("tinkerthis: %d file(s) failed", res.ErrorCount)))
	for _, e := range res.Errors {
		fmt.Fprintf(w, "  %s [%s] %s\n", e.File, e.Stage, e.Message)
	}
}

func writeResult(w io.Writer, format string, res *engine.Result, field output.Field, logger *log.Logger) int {
	if err := output.Write(w, format, res, field); err != nil {
		logger.Print(err)
		return 1
	}
	return 0
}

func notice(w io.Writer, paint termcolor.Painter, cause error) int {
	fmt.Fprintln(w, paint.Paint(termcolor.RoleNotice, notAvailable))
	if cause != nil {
		fmt.Fprintln(w, paint.Paint(termcolor.RoleRemoved, "  ("+cause.Error()+")"))
	}
	return 1
}

func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	if code := execx.ExitCode(err); code > 0 {
		return code
	}
	return 1
}

// readInput returns the input name ("" for stdin) and its contents.
func readInput(stdin io.Reader, files []string) (string, string, error) {
	if len(files) == 0 || files[0] == "-" {
		if stdin == nil {
			return "", "", errors.New("no input")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "", string(data), nil
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		return "", "", err
	}
	return files[0], string(data), nil
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "stdin"
	}
	return name
}

func asFile(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
