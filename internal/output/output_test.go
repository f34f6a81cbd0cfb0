package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phyten/tinkerthis/internal/engine"
	"github.com/phyten/tinkerthis/internal/span"
)

var sampleItems = []engine.Item{
	{
		File:    "app/Console/demo.php",
		Lang:    "php",
		Code:    `\$u = User::first();echo \"<b>\";`,
		Command: `echo "\$u = User::first();echo \"<b>\";"|php artisan tinker`,
		Removed: []span.Span{{Start: 20, End: 30}},
	},
	{
		File:    "scripts/count.php",
		Lang:    "php",
		Code:    "User::count();",
		Command: `echo "User::count();"|php artisan tinker`,
	},
}

var sampleErrors = []engine.ItemError{
	{File: "missing.php", Stage: "read", Message: "open missing.php: no such file or directory"},
}

func TestWriteNDJSON(t *testing.T) {
	var buf bytes.Buffer
	res := &engine.Result{Items: sampleItems, Total: 3, Errors: sampleErrors, ErrorCount: 1}
	if err := WriteNDJSON(&buf, res); err != nil {
		t.Fatalf("WriteNDJSON failed: %v", err)
	}
	output := buf.String()
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines) != len(sampleItems)+len(sampleErrors) {
		t.Fatalf("expected %d lines, got %d", len(sampleItems)+len(sampleErrors), len(lines))
	}
	for i, line := range lines[:len(sampleItems)] {
		var rec map[string]json.RawMessage
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("failed to decode line %d: %v", i, err)
		}
		if _, ok := rec["error"]; ok {
			t.Fatalf("item line %d should not carry an error key: %s", i, line)
		}
		var item engine.Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			t.Fatalf("failed to decode line %d: %v", i, err)
		}
		if item.Command != sampleItems[i].Command {
			t.Fatalf("line %d command=%q want %q", i, item.Command, sampleItems[i].Command)
		}
	}
	var failed struct {
		Error engine.ItemError `json:"error"`
	}
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &failed); err != nil {
		t.Fatalf("failed to decode error line: %v", err)
	}
	if failed.Error != sampleErrors[0] {
		t.Fatalf("error line=%+v want %+v", failed.Error, sampleErrors[0])
	}
	if strings.Contains(output, "\\u003c") {
		t.Fatal("HTML characters should not be escaped in NDJSON output")
	}
	assertGolden(t, "want-ndjson.ndjson", output)
}

func TestWriteMarkdownCommand(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, sampleItems, FieldCommand); err != nil {
		t.Fatalf("WriteMarkdown failed: %v", err)
	}
	assertGolden(t, "want-md.md", buf.String())
}

func TestWriteMarkdownバッククォートを含むコード(t *testing.T) {
	items := []engine.Item{{Code: "echo `ls```;"}}
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, items, FieldCode); err != nil {
		t.Fatalf("WriteMarkdown failed: %v", err)
	}
	want := "````php\necho `ls```;\n````\n"
	if got := buf.String(); got != want {
		t.Fatalf("WriteMarkdown=%q want %q", got, want)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleItems, FieldCode); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	assertGolden(t, "want-text.txt", buf.String())

	buf.Reset()
	if err := WriteText(&buf, sampleItems[1:], FieldCommand); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	if got, want := buf.String(), "echo \"User::count();\"|php artisan tinker\n"; got != want {
		t.Fatalf("single item text=%q want %q", got, want)
	}
}

func TestWriteDispatch(t *testing.T) {
	res := &engine.Result{Items: sampleItems, Total: len(sampleItems)}
	var buf bytes.Buffer
	if err := Write(&buf, "json", res, FieldCode); err != nil {
		t.Fatalf("Write json failed: %v", err)
	}
	var decoded engine.Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json output does not decode: %v\n%s", err, buf.String())
	}
	if decoded.Total != 2 || len(decoded.Items) != 2 || decoded.Items[0].Removed[0].End != 30 {
		t.Fatalf("unexpected decoded result: %+v", decoded)
	}
	if !strings.Contains(buf.String(), "\n  \"items\"") {
		t.Fatalf("json output should be indented:\n%s", buf.String())
	}

	if err := Write(&bytes.Buffer{}, "csv", res, FieldCode); err == nil {
		t.Fatal("expected error for unknown format")
	}
	buf.Reset()
	if err := Write(&buf, "ndjson", nil, FieldCode); err != nil || buf.Len() != 0 {
		t.Fatalf("nil result should write nothing, got %q, %v", buf.String(), err)
	}
}

func assertGolden(t *testing.T, name, got string) {
	t.Helper()
	path := filepath.Join("testdata", name)
	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v", name, err)
	}
	if diff := diffStrings(string(want), got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func diffStrings(want, got string) string {
	if want == got {
		return ""
	}
	var buf strings.Builder
	buf.WriteString("want:\n")
	buf.WriteString(want)
	if !strings.HasSuffix(want, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("got:\n")
	buf.WriteString(got)
	return buf.String()
}
