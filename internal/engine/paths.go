package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandPaths resolves "**"-style globs to regular files. Plain paths are
// kept as given so that a missing file is reported when it is read.
// Globs that match nothing are returned in unmatched.
func ExpandPaths(patterns []string) (files []string, unmatched []string, err error) {
	seen := make(map[string]struct{}, len(patterns))
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}
	for _, raw := range patterns {
		pattern := strings.TrimSpace(raw)
		if pattern == "" {
			continue
		}
		if !containsGlobMeta(pattern) {
			add(pattern)
			continue
		}
		hits, gerr := doublestar.FilepathGlob(filepath.FromSlash(pattern))
		if gerr != nil {
			return nil, nil, fmt.Errorf("expand %q: %w", pattern, gerr)
		}
		sort.Strings(hits)
		n := 0
		for _, hit := range hits {
			if isRegularFile(hit) {
				add(hit)
				n++
			}
		}
		if n == 0 {
			unmatched = append(unmatched, pattern)
		}
	}
	return files, unmatched, nil
}

func containsGlobMeta(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
