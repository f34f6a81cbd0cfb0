package termcolor

import (
	"strconv"
	"strings"
)

// Scheme picks which half of a role swatch is used.
type Scheme int

const (
	SchemeDark Scheme = iota
	SchemeLight
)

// DetectScheme reads the background from COLORFGBG, then from a TERM name
// mentioning "light". Anything else is treated as dark.
func DetectScheme(env map[string]string) Scheme {
	if bg, ok := colorfgbgBackground(env["COLORFGBG"]); ok {
		return schemeForBackground(bg)
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "light") {
		return SchemeLight
	}
	return SchemeDark
}

// colorfgbgBackground returns the last numeric field of "fg;bg" or
// "fg;default;bg". rxvt writes "default" when the color is unset.
func colorfgbgBackground(raw string) (int, bool) {
	fields := strings.Split(raw, ";")
	for i := len(fields) - 1; i >= 0; i-- {
		n, err := strconv.Atoi(strings.TrimSpace(fields[i]))
		if err == nil && n >= 0 {
			return n, true
		}
	}
	return 0, false
}

// 0-6 and 8 (bright black) are dark; 7 and the bright colors are light.
func schemeForBackground(bg int) Scheme {
	if bg == 7 || bg > 8 {
		return SchemeLight
	}
	return SchemeDark
}
