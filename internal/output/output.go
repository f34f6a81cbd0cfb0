// Package output renders prepared snippets as text, JSON, NDJSON or Markdown.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/phyten/tinkerthis/internal/engine"
)

// Field selects what the text and markdown renderers print for each item.
type Field int

const (
	FieldCode Field = iota
	FieldCommand
)

func (f Field) value(it engine.Item) string {
	if f == FieldCommand {
		return it.Command
	}
	return it.Code
}

// Write renders res in format (text, json, ndjson or markdown).
func Write(w io.Writer, format string, res *engine.Result, field Field) error {
	if res == nil {
		res = &engine.Result{}
	}
	switch format {
	case "", "text":
		return WriteText(w, res.Items, field)
	case "json":
		return WriteJSON(w, res)
	case "ndjson":
		return WriteNDJSON(w, res)
	case "markdown":
		return WriteMarkdown(w, res.Items, field)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// WriteJSON writes res as one indented document.
func WriteJSON(w io.Writer, res *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
