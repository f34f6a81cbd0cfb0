package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is a 1-based line/column pair. Columns count runes.
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Selection mirrors an editor selection: Anchor is where it started, Active where the cursor is.
type Selection struct {
	Anchor Position `json:"anchor"`
	Active Position `json:"active"`
}

// Empty reports whether the selection covers nothing.
func (s Selection) Empty() bool {
	return s.Anchor == s.Active
}

// SelectText returns the selected part of doc, or the whole document when
// nothing is selected. Positions past the end are clamped.
func SelectText(doc string, sel Selection) string {
	if sel.Empty() || doc == "" {
		return doc
	}
	runes := []rune(doc)
	starts := computeLineStarts(runes)
	a := offsetOf(sel.Anchor, runes, starts)
	b := offsetOf(sel.Active, runes, starts)
	if a > b {
		a, b = b, a
	}
	return string(runes[a:b])
}

// ParseSelection parses "L:C-L:C". An empty string yields an empty selection.
func ParseSelection(raw string) (Selection, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Selection{}, nil
	}
	from, to, ok := strings.Cut(raw, "-")
	if !ok {
		return Selection{}, fmt.Errorf("invalid selection %q: want L:C-L:C", raw)
	}
	anchor, err := parsePosition(from)
	if err != nil {
		return Selection{}, fmt.Errorf("invalid selection %q: %w", raw, err)
	}
	active, err := parsePosition(to)
	if err != nil {
		return Selection{}, fmt.Errorf("invalid selection %q: %w", raw, err)
	}
	return Selection{Anchor: anchor, Active: active}, nil
}

func parsePosition(raw string) (Position, error) {
	lineStr, colStr, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return Position{}, fmt.Errorf("position %q lacks a column", raw)
	}
	line, err := strconv.Atoi(strings.TrimSpace(lineStr))
	if err != nil || line < 1 {
		return Position{}, fmt.Errorf("invalid line %q", lineStr)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil || col < 1 {
		return Position{}, fmt.Errorf("invalid column %q", colStr)
	}
	return Position{Line: line, Col: col}, nil
}

func offsetOf(p Position, runes []rune, starts []int) int {
	if p.Line < 1 {
		return 0
	}
	if p.Line > len(starts) {
		return len(runes)
	}
	start := starts[p.Line-1]
	end := len(runes)
	if p.Line < len(starts) {
		// stop before the line's '\n'
		end = starts[p.Line] - 1
	}
	// and before the '\r' of a CRLF
	if end > start && runes[end-1] == '\r' {
		end--
	}
	col := p.Col
	if col < 1 {
		col = 1
	}
	off := start + col - 1
	if off > end {
		off = end
	}
	return off
}

func computeLineStarts(runes []rune) []int {
	starts := make([]int, 1, 16)
	for i, r := range runes {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
