package util

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestPercentは100を上限とする(t *testing.T) {
	if got := percent(5, 4); got != 100 {
		t.Fatalf("5/4 は 100%% として扱うべきです: got=%d", got)
	}
	if got := percent(1, 4); got != 25 {
		t.Fatalf("1/4 は 25%% のはずです: got=%d", got)
	}
	if got := percent(0, 0); got != 100 {
		t.Fatalf("0/0 は 100%% として扱うべきです: got=%d", got)
	}
}

func TestProgressAdvance(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressTo(&buf, 2, true)
	p.Advance()
	p.Advance()
	p.Done()
	out := buf.String()
	if !strings.Contains(out, "[progress] 1/2 (50%)") || !strings.Contains(out, "[progress] 2/2 (100%)") {
		t.Fatalf("unexpected progress output: %q", out)
	}
	if !strings.HasSuffix(out, "\r\033[K") {
		t.Fatalf("Done should clear the line: %q", out)
	}
}

func TestProgress無効時は何も出力しない(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressTo(&buf, 3, false)
	p.Advance()
	p.Done()
	if buf.Len() != 0 {
		t.Fatalf("disabled progress wrote %q", buf.String())
	}
}

func TestShouldShowProgress(t *testing.T) {
	if ShouldShowProgress(true, true) {
		t.Fatal("no-progress must win")
	}
	if !ShouldShowProgress(true, false) {
		t.Fatal("force should enable progress")
	}
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()
	if IsTTY(w) || IsTTY(nil) {
		t.Fatal("pipe and nil are not terminals")
	}
}
