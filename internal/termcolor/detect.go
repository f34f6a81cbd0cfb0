package termcolor

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

type ColorMode int

const (
	ModeAuto ColorMode = iota
	ModeAlways
	ModeNever
)

func (m ColorMode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	default:
		return "auto"
	}
}

func ParseMode(v string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "auto":
		return ModeAuto, nil
	case "always":
		return ModeAlways, nil
	case "never":
		return ModeNever, nil
	default:
		return ModeAuto, fmt.Errorf("unknown color mode: %s", v)
	}
}

type Profile int

const (
	ProfileBasic8 Profile = iota
	ProfileANSI256
	ProfileTrueColor
)

// EnvMap turns os.Environ() style entries into a map.
func EnvMap(values []string) map[string]string {
	env := make(map[string]string, len(values))
	for _, entry := range values {
		if entry == "" {
			continue
		}
		key, value, _ := strings.Cut(entry, "=")
		env[key] = value
	}
	return env
}

// DetectMode resolves ModeAuto for out.
//
// First match wins:
//  1. TERM=dumb disables colors.
//  2. NO_COLOR disables colors.
//  3. CLICOLOR=0 disables colors.
//  4. CLICOLOR_FORCE / FORCE_COLOR with any non-zero value enable colors.
//  5. Otherwise colors follow whether out is a TTY.
//
// Notices are written to stderr, so out is usually os.Stderr here.
func DetectMode(out *os.File, env map[string]string) ColorMode {
	if out == nil {
		return ModeNever
	}
	if env != nil {
		if strings.EqualFold(strings.TrimSpace(env["TERM"]), "dumb") {
			return ModeNever
		}
		if strings.TrimSpace(env["NO_COLOR"]) != "" {
			return ModeNever
		}
		if strings.TrimSpace(env["CLICOLOR"]) == "0" {
			return ModeNever
		}
		if forceColor(env["CLICOLOR_FORCE"]) || forceColor(env["FORCE_COLOR"]) {
			return ModeAlways
		}
	}
	if IsTerminal(out) {
		return ModeAlways
	}
	return ModeNever
}

// Resolve parses a --color value and reports whether out should be colored.
func Resolve(raw string, out *os.File, env map[string]string) (bool, error) {
	mode, err := ParseMode(raw)
	if err != nil {
		return false, err
	}
	switch mode {
	case ModeAlways:
		return true, nil
	case ModeNever:
		return false, nil
	default:
		return DetectMode(out, env) == ModeAlways, nil
	}
}

// DetectProfile inspects COLORTERM/TERM: truecolor/24-bit gets TrueColor,
// *256color gets ANSI256, anything else the basic 8 colors.
func DetectProfile(env map[string]string) Profile {
	if env == nil {
		return ProfileBasic8
	}
	ct := strings.ToLower(strings.TrimSpace(env["COLORTERM"]))
	if strings.Contains(ct, "truecolor") || strings.Contains(ct, "24bit") || strings.Contains(ct, "24-bit") {
		return ProfileTrueColor
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "256color") {
		return ProfileANSI256
	}
	return ProfileBasic8
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func forceColor(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != "0"
}
