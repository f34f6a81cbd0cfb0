package termcolor

import (
	"strconv"
	"strings"
)

// Style is a set of SGR attributes. Only the most precise foreground that
// is set gets emitted: truecolor, then 256, then basic.
type Style struct {
	Bold    bool
	Dim     bool
	FGBasic *int
	FG256   *int
	FGTrue  *[3]uint8
}

const reset = "\x1b[0m"

// Wrap surrounds text with the style's escape sequence and a reset.
// An empty style or empty text is returned unchanged.
func (s Style) Wrap(text string) string {
	seq := s.sequence()
	if seq == "" || text == "" {
		return text
	}
	return seq + text + reset
}

func (s Style) sequence() string {
	var b strings.Builder
	add := func(parts ...string) {
		if b.Len() == 0 {
			b.WriteString("\x1b[")
		} else {
			b.WriteByte(';')
		}
		b.WriteString(strings.Join(parts, ";"))
	}
	if s.Bold {
		add("1")
	}
	if s.Dim {
		add("2")
	}
	switch {
	case s.FGTrue != nil:
		rgb := *s.FGTrue
		add("38", "2", strconv.Itoa(int(rgb[0])), strconv.Itoa(int(rgb[1])), strconv.Itoa(int(rgb[2])))
	case s.FG256 != nil:
		add("38", "5", strconv.Itoa(*s.FG256))
	case s.FGBasic != nil:
		add("3" + strconv.Itoa(*s.FGBasic))
	}
	if b.Len() == 0 {
		return ""
	}
	b.WriteByte('m')
	return b.String()
}

// Painter colors text by role for one output stream.
type Painter struct {
	Enabled bool
	Scheme  Scheme
	Profile Profile
}

// NewPainter builds a Painter whose scheme and profile come from env.
func NewPainter(enabled bool, env map[string]string) Painter {
	return Painter{Enabled: enabled, Scheme: DetectScheme(env), Profile: DetectProfile(env)}
}

func (p Painter) Paint(role Role, text string) string {
	if !p.Enabled {
		return text
	}
	return RoleStyle(role, p.Scheme, p.Profile).Wrap(text)
}
