package engine

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/phyten/tinkerthis/internal/execx"
)

type fakeRunner struct {
	dir    string
	name   string
	args   []string
	stdout string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	f.dir, f.name, f.args = dir, name, args
	return []byte(f.stdout), []byte("warn"), f.err
}

func (f *fakeRunner) Stream(_ context.Context, dir string, streams execx.Streams, name string, args ...string) error {
	f.dir, f.name, f.args = dir, name, args
	if streams.Stdout != nil {
		_, _ = streams.Stdout.Write([]byte(f.stdout))
	}
	return f.err
}

func TestBuildCommand(t *testing.T) {
	got, err := BuildCommand(`\$x = 1;`, Options{PHPPath: "/usr/bin/php"})
	if err != nil {
		t.Fatalf("BuildCommand error: %v", err)
	}
	if want := `echo "\$x = 1;"|/usr/bin/php artisan tinker`; got != want {
		t.Fatalf("BuildCommand=%q want %q", got, want)
	}

	got, err = BuildCommand("1+1;", Options{PHPPath: " php ", Subcommand: "bin/console psysh"})
	if err != nil {
		t.Fatalf("BuildCommand error: %v", err)
	}
	if want := `echo "1+1;"|php bin/console psysh`; got != want {
		t.Fatalf("BuildCommand=%q want %q", got, want)
	}

	if _, err := BuildCommand("", Options{PHPPath: "php"}); !errors.Is(err, ErrNoCode) {
		t.Fatalf("expected ErrNoCode, got %v", err)
	}
	if _, err := BuildCommand("echo 1;", Options{PHPPath: "  "}); !errors.Is(err, ErrNoInterpreter) {
		t.Fatalf("expected ErrNoInterpreter, got %v", err)
	}
}

func TestRunClearsAndStreams(t *testing.T) {
	fr := &fakeRunner{stdout: "=> 2\n"}
	var out bytes.Buffer
	opts := Options{PHPPath: "php", Dir: "/srv/app", Clear: true, Runner: fr}
	if err := Run(context.Background(), opts, "1+1;", execx.Streams{Stdout: &out}); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !strings.HasPrefix(out.String(), ClearSequence) {
		t.Fatalf("output does not start with clear sequence: %q", out.String())
	}
	if !strings.HasSuffix(out.String(), "=> 2\n") {
		t.Fatalf("runner output missing: %q", out.String())
	}
	if fr.dir != "/srv/app" {
		t.Fatalf("dir=%q", fr.dir)
	}
	wantName, wantArgs := "sh", []string{"-c", `echo "1+1;"|php artisan tinker`}
	if runtime.GOOS == "windows" {
		wantName, wantArgs = "cmd", []string{"/C", `echo "1+1;"|php artisan tinker`}
	}
	if fr.name != wantName || !reflect.DeepEqual(fr.args, wantArgs) {
		t.Fatalf("invocation=%s %v want %s %v", fr.name, fr.args, wantName, wantArgs)
	}
}

func TestRunRefusesWithoutCode(t *testing.T) {
	fr := &fakeRunner{}
	var out bytes.Buffer
	err := Run(context.Background(), Options{PHPPath: "php", Clear: true, Runner: fr}, "", execx.Streams{Stdout: &out})
	if !errors.Is(err, ErrNoCode) {
		t.Fatalf("expected ErrNoCode, got %v", err)
	}
	if fr.name != "" || out.Len() != 0 {
		t.Fatalf("nothing should run or be written: name=%q out=%q", fr.name, out.String())
	}
}

func TestRunWrapsRunnerError(t *testing.T) {
	boom := errors.New("boom")
	fr := &fakeRunner{err: boom}
	err := Run(context.Background(), Options{PHPPath: "php", Runner: fr}, "1;", execx.Streams{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped runner error, got %v", err)
	}
}

func TestCapture(t *testing.T) {
	fr := &fakeRunner{stdout: "=> 3\n"}
	item, err := Capture(context.Background(), Options{PHPPath: "php", Runner: fr}, "1+2;")
	if err != nil {
		t.Fatalf("Capture error: %v", err)
	}
	if item.Stdout != "=> 3\n" || item.Stderr != "warn" {
		t.Fatalf("unexpected output: %+v", item)
	}
	if item.Command != `echo "1+2;"|php artisan tinker` {
		t.Fatalf("Command=%q", item.Command)
	}
}
