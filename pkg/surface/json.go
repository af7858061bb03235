package surface

import (
	"encoding/json"
	"io"
)

// JSONRenderer marshals reports and history to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, report Report) error {
	return encode(w, report)
}

func (r *JSONRenderer) RenderHistory(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	return encode(w, entries)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
