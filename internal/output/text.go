package output

import (
	"fmt"
	"io"

	"github.com/phyten/tinkerthis/internal/engine"
	"github.com/phyten/tinkerthis/internal/textutil"
)

// WriteText prints one line per item. With several items each line is
// prefixed by the file name, padded to a common width.
func WriteText(w io.Writer, items []engine.Item, field Field) error {
	if len(items) == 1 {
		_, err := fmt.Fprintln(w, field.value(items[0]))
		return err
	}
	width := 0
	for _, it := range items {
		if n := textutil.VisibleWidth(it.File); n > width {
			width = n
		}
	}
	for _, it := range items {
		if _, err := fmt.Fprintf(w, "%s  %s\n", textutil.PadRight(it.File, width), field.value(it)); err != nil {
			return err
		}
	}
	return nil
}
