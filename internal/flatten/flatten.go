// Package flatten collapses a snippet into one line that can sit between
// double quotes in a shell command.
package flatten

import (
	"regexp"
	"strings"
)

// OpenTag is removed once, before lines are joined.
const OpenTag = "<?php"

var (
	newlineRe = regexp.MustCompile(`\r?\n`)
	spacesRe  = regexp.MustCompile(` +`)
	quotesRe  = regexp.MustCompile(`"+`)
	dollarsRe = regexp.MustCompile(`\$+`)
)

type step struct {
	name  string
	apply func(string) string
}

// Order matters: escapes are produced last so no later step rewrites them.
var steps = []step{
	{name: "open-tag", apply: func(s string) string { return strings.Replace(s, OpenTag, "", 1) }},
	{name: "newlines", apply: func(s string) string { return newlineRe.ReplaceAllLiteralString(s, "") }},
	{name: "spaces", apply: CollapseSpaces},
	{name: "quotes", apply: func(s string) string { return quotesRe.ReplaceAllLiteralString(s, `\"`) }},
	{name: "dollars", apply: func(s string) string { return dollarsRe.ReplaceAllLiteralString(s, `\$`) }},
}

// Flatten applies every step in order. A run of N quotes (or dollars)
// becomes a single escaped character.
func Flatten(text string) string {
	if text == "" {
		return ""
	}
	for _, st := range steps {
		text = st.apply(text)
	}
	return text
}

// CollapseSpaces turns each run of space characters into one space. Tabs are left alone.
func CollapseSpaces(s string) string {
	return spacesRe.ReplaceAllLiteralString(s, " ")
}

// Steps returns the step names in the order Flatten applies them.
func Steps() []string {
	out := make([]string, len(steps))
	for i, st := range steps {
		out[i] = st.name
	}
	return out
}
