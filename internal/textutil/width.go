// Package textutil measures and truncates text by terminal display width.
package textutil

import (
	"os"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/term"
)

// Ellipsis is appended by Preview when text is cut.
const Ellipsis = "…"

// ANSI escape sequences (covers common CSI and OSC forms).
var ansiRe = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// StripANSI removes CSI and OSC escape sequences.
func StripANSI(s string) string {
	if s == "" || !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return ansiRe.ReplaceAllString(s, "")
}

// VisibleWidth returns terminal display width (wcwidth-based).
func VisibleWidth(s string) int {
	if s == "" {
		return 0
	}
	g := uniseg.NewGraphemes(StripANSI(s))
	width := 0
	for g.Next() {
		width += runewidth.StringWidth(g.Str())
	}
	return width
}

// TruncateByWidth truncates s to fit width w without breaking graphemes.
// If truncation happens and ellipsis is not empty, append it when it fits.
func TruncateByWidth(s string, w int, ellipsis string) string {
	if s == "" || w <= 0 {
		return ""
	}
	if VisibleWidth(s) <= w {
		return s
	}
	g := uniseg.NewGraphemes(StripANSI(s))
	var b strings.Builder
	cuts := make([]int, 0, w)
	widths := make([]int, 0, w)
	used := 0
	ellW := runewidth.StringWidth(ellipsis)
	for g.Next() {
		seg := g.Str()
		segW := runewidth.StringWidth(seg)
		if used+segW > w {
			break
		}
		cuts = append(cuts, b.Len())
		widths = append(widths, segW)
		b.WriteString(seg)
		used += segW
	}
	out := b.String()
	if ellipsis == "" || ellW > w {
		return out
	}
	for len(cuts) > 0 && used+ellW > w {
		last := len(cuts) - 1
		used -= widths[last]
		out = out[:cuts[last]]
		cuts = cuts[:last]
		widths = widths[:last]
	}
	return out + ellipsis
}

// Preview fits s into width columns, ending with Ellipsis when cut.
// A width <= 0 leaves s untouched.
func Preview(s string, width int) string {
	if width <= 0 {
		return s
	}
	return TruncateByWidth(s, width, Ellipsis)
}

// PadRight pads s on the right with spaces so that the visible width equals w.
func PadRight(s string, w int) string {
	pad := w - VisibleWidth(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}

// TerminalWidth returns the column count of f, or fallback when f is not a terminal.
func TerminalWidth(f *os.File, fallback int) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return fallback
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
