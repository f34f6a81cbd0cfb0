package execx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// Streams は子プロセスに接続する標準入出力です。nil のものは接続しません。
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner は外部コマンドを実行するための最小インターフェースです。
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout []byte, stderr []byte, err error)
	Stream(ctx context.Context, dir string, streams Streams, name string, args ...string) error
}

// CommandRunner は exec.CommandContext を利用したデフォルト実装です。
type CommandRunner struct{}

// Run は指定された作業ディレクトリでコマンドを実行し、標準出力・標準エラーを収集します。
func (CommandRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	err := CommandRunner{}.Stream(ctx, dir, Streams{Stdout: &stdout, Stderr: &stderr}, name, args...)
	return stdout.Bytes(), stderr.Bytes(), err
}

// Stream はコマンドの入出力を streams にそのまま接続して実行します。
func (CommandRunner) Stream(ctx context.Context, dir string, streams Streams, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Stdin = streams.Stdin
	cmd.Stdout = streams.Stdout
	cmd.Stderr = streams.Stderr
	return cmd.Run()
}

// IsNotFound はコマンドが見つからない場合のエラーを判定します。
func IsNotFound(err error) bool {
	var execErr *exec.Error
	return errors.As(err, &execErr)
}

// ExitCode は終了コードを返します。プロセスが終了していない場合は -1 です。
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}

// DefaultRunner は CommandRunner を返します。
func DefaultRunner() Runner {
	return CommandRunner{}
}
