package engine

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("echo 1;\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", f, err)
		}
	}
}

func TestExpandPathsは再帰globを展開する(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "app/Models/User.php", "app/Http/Kernel.php", "app/readme.md", "routes/web.php")

	files, unmatched, err := ExpandPaths([]string{
		filepath.Join(root, "app", "**", "*.php"),
		filepath.Join(root, "routes", "web.php"),
		filepath.Join(root, "app", "Models", "User.php"),
		filepath.Join(root, "nothing", "*.php"),
		"  ",
	})
	if err != nil {
		t.Fatalf("ExpandPaths error: %v", err)
	}
	want := []string{
		filepath.Join(root, "app", "Http", "Kernel.php"),
		filepath.Join(root, "app", "Models", "User.php"),
		filepath.Join(root, "routes", "web.php"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("files=%v want %v", files, want)
	}
	if len(unmatched) != 1 || unmatched[0] != filepath.Join(root, "nothing", "*.php") {
		t.Fatalf("unmatched=%v", unmatched)
	}
}

func TestExpandPathsKeepsPlainMissingPaths(t *testing.T) {
	files, unmatched, err := ExpandPaths([]string{"does/not/exist.php"})
	if err != nil || len(unmatched) != 0 {
		t.Fatalf("unexpected: %v %v", unmatched, err)
	}
	if len(files) != 1 || files[0] != "does/not/exist.php" {
		t.Fatalf("files=%v", files)
	}
}

func TestPrepareFilesReportsUnmatchedGlob(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.php")
	res, err := PrepareFiles(context.Background(), Options{PHPPath: "php", Jobs: 1}, []string{
		filepath.Join(root, "*.php"),
		filepath.Join(root, "*.inc"),
	})
	if err != nil {
		t.Fatalf("PrepareFiles error: %v", err)
	}
	if res.Total != 1 || res.Items[0].Code != "echo 1;" {
		t.Fatalf("unexpected items: %+v", res.Items)
	}
	if res.ErrorCount != 1 || res.Errors[0].Stage != "glob" {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}
}
