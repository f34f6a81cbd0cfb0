package config

import "strings"

func boolPtr(v bool) *bool {
	b := v
	return &b
}

// ResolveString returns the last non-nil value, or def.
func ResolveString(def string, values ...*string) string {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

func ResolveInt(def int, values ...*int) int {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

func ResolveBool(def bool, values ...*bool) bool {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

func ResolveAndTrim(def string, values ...*string) string {
	return strings.TrimSpace(ResolveString(def, values...))
}

// MergeEngine applies layers over base in order; later layers win.
func MergeEngine(base EngineSettings, layers ...EngineConfig) EngineSettings {
	out := base
	for _, layer := range layers {
		out.PHPPath = ResolveAndTrim(out.PHPPath, layer.PHPPath)
		out.Subcommand = ResolveAndTrim(out.Subcommand, layer.Subcommand)
		out.Dir = ResolveAndTrim(out.Dir, layer.Dir)
		out.Clear = ResolveBool(out.Clear, layer.Clear)
		out.Jobs = ResolveInt(out.Jobs, layer.Jobs)
		out.MatchTimeoutMS = ResolveInt(out.MatchTimeoutMS, layer.MatchTimeoutMS)
	}
	return out
}

func MergeUI(base UISettings, layers ...UIConfig) UISettings {
	out := base
	for _, layer := range layers {
		out.Output = ResolveAndTrim(out.Output, layer.Output)
		out.Color = ResolveAndTrim(out.Color, layer.Color)
		out.PreviewWidth = ResolveInt(out.PreviewWidth, layer.PreviewWidth)
	}
	if strings.TrimSpace(out.Output) == "" {
		out.Output = "text"
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}
