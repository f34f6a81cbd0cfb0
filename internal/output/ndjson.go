package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/tinkerthis/internal/engine"
)

// errorRecord is the NDJSON line for a file that failed. Item lines never
// carry an "error" key, so a reader can tell the two apart by it.
type errorRecord struct {
	Error engine.ItemError `json:"error"`
}

// WriteNDJSON writes one line per prepared item, then one {"error":{...}}
// line per failed file, in the order PrepareFiles reported them.
func WriteNDJSON(w io.Writer, res *engine.Result) error {
	if res == nil {
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, it := range res.Items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	for _, e := range res.Errors {
		if err := enc.Encode(errorRecord{Error: e}); err != nil {
			return err
		}
	}
	return nil
}
