package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/phyten/tinkerthis/internal/engine"
)

// WriteMarkdown renders each item as a fenced block: ```sh for commands,
// ```php for prepared code. Items with a file name get a heading.
func WriteMarkdown(w io.Writer, items []engine.Item, field Field) error {
	lang := "php"
	if field == FieldCommand {
		lang = "sh"
	}
	for i, it := range items {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if it.File != "" {
			if _, err := fmt.Fprintf(w, "### %s\n\n", escapeMarkdownHeading(it.File)); err != nil {
				return err
			}
		}
		body := field.value(it)
		fence := fenceFor(body)
		if _, err := fmt.Fprintf(w, "%s%s\n%s\n%s\n", fence, lang, body, fence); err != nil {
			return err
		}
	}
	return nil
}

// fenceFor returns a backtick fence longer than any run inside body.
func fenceFor(body string) string {
	longest, run := 0, 0
	for _, r := range body {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}

func escapeMarkdownHeading(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
