package config

import (
	"fmt"
	"strings"

	engineopts "github.com/phyten/tinkerthis/internal/engine/opts"
)

func CanonicalizeColor(raw string) (string, error) {
	color := strings.ToLower(strings.TrimSpace(raw))
	switch color {
	case "", "auto":
		return "auto", nil
	case "always", "never":
		return color, nil
	default:
		return "", fmt.Errorf("invalid color: %s", raw)
	}
}

func ValidatePreviewWidth(width int) error {
	if width < 0 {
		return fmt.Errorf("preview_width must be >= 0")
	}
	return nil
}

func NormalizeUI(values UISettings) (UISettings, error) {
	var err error
	values.Output, err = engineopts.NormalizeOutput(values.Output)
	if err != nil {
		return values, err
	}
	values.Color, err = CanonicalizeColor(values.Color)
	if err != nil {
		return values, err
	}
	if err := ValidatePreviewWidth(values.PreviewWidth); err != nil {
		return values, err
	}
	return values, nil
}
