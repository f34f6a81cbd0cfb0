package termcolor

// Role names a kind of text the CLI prints.
type Role int

const (
	RolePlain Role = iota
	// RoleNotice is the "command is not available" style message.
	RoleNotice
	RoleWarning
	// RoleCommand highlights the built shell command.
	RoleCommand
	// RoleRemoved marks comment text that was stripped.
	RoleRemoved
	RoleLabel
)

type swatch struct {
	basic int
	dark  [3]uint8
	light [3]uint8
}

var swatches = map[Role]swatch{
	RoleNotice:  {basic: 1, dark: [3]uint8{224, 108, 117}, light: [3]uint8{185, 28, 28}},
	RoleWarning: {basic: 3, dark: [3]uint8{229, 192, 123}, light: [3]uint8{146, 64, 14}},
	// php.net purple, darkened for light backgrounds
	RoleCommand: {basic: 5, dark: [3]uint8{119, 123, 180}, light: [3]uint8{79, 91, 147}},
}

// RoleStyle returns the style for role under the given scheme and profile.
func RoleStyle(role Role, scheme Scheme, profile Profile) Style {
	var s Style
	switch role {
	case RoleNotice:
		s.Bold = true
	case RoleRemoved:
		s.Dim = true
		return s
	case RoleLabel:
		s.Bold = true
		return s
	case RolePlain:
		return s
	}
	sw, ok := swatches[role]
	if !ok {
		return s
	}
	rgb := sw.dark
	if scheme == SchemeLight {
		rgb = sw.light
	}
	switch profile {
	case ProfileTrueColor:
		s.FGTrue = &rgb
	case ProfileANSI256:
		idx := rgbToANSI256(rgb[0], rgb[1], rgb[2])
		s.FG256 = &idx
	default:
		basic := sw.basic
		s.FGBasic = &basic
	}
	return s
}

func rgbToANSI256(r, g, b uint8) int {
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 248 {
			return 231
		}
		return 232 + (int(r)-8)*24/247
	}
	rr := int(r) * 5 / 255
	gg := int(g) * 5 / 255
	bb := int(b) * 5 / 255
	return 16 + 36*rr + 6*gg + bb
}
