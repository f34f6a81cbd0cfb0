package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/phyten/tinkerthis/internal/execx"
)

// DefaultSubcommand is what the interpreter runs when none is configured.
const DefaultSubcommand = "artisan tinker"

// ClearSequence moves the cursor home and clears the screen.
const ClearSequence = "\x1b[H\x1b[2J"

var (
	ErrNoCode        = errors.New("no code to run")
	ErrNoInterpreter = errors.New("no php path configured")
)

// BuildCommand は整形済みコードを interpreter に流し込むシェルコマンドを組み立てます。
//
// code が空、または PHP のパスが未設定の場合はコマンドを組み立てずにエラーを返します。
func BuildCommand(code string, opts Options) (string, error) {
	if code == "" {
		return "", ErrNoCode
	}
	php := strings.TrimSpace(opts.PHPPath)
	if php == "" {
		return "", ErrNoInterpreter
	}
	sub := strings.TrimSpace(opts.Subcommand)
	if sub == "" {
		sub = DefaultSubcommand
	}
	return `echo "` + code + `"|` + php + " " + sub, nil
}

// Run builds the command for code and runs it through the shell, streaming its output.
// When opts.Clear is set the terminal is cleared first.
func Run(ctx context.Context, opts Options, code string, streams execx.Streams) error {
	command, err := BuildCommand(code, opts)
	if err != nil {
		return err
	}
	if opts.Clear && streams.Stdout != nil {
		if _, err := io.WriteString(streams.Stdout, ClearSequence); err != nil {
			return fmt.Errorf("clear terminal: %w", err)
		}
	}
	name, args := shellInvocation(command)
	if err := runner(opts).Stream(ctx, opts.Dir, streams, name, args...); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

// Capture runs the command like Run but collects its output into an Item.
func Capture(ctx context.Context, opts Options, code string) (Item, error) {
	command, err := BuildCommand(code, opts)
	if err != nil {
		return Item{}, err
	}
	item := Item{Code: code, Command: command}
	name, args := shellInvocation(command)
	stdout, stderr, err := runner(opts).Run(ctx, opts.Dir, name, args...)
	item.Stdout = string(stdout)
	item.Stderr = string(stderr)
	if err != nil {
		return item, fmt.Errorf("run %s: %w", name, err)
	}
	return item, nil
}

func runner(opts Options) execx.Runner {
	if opts.Runner != nil {
		return opts.Runner
	}
	return execx.DefaultRunner()
}

func shellInvocation(command string) (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C", command}
	}
	return "sh", []string{"-c", command}
}
