package output

import (
	"encoding/json"
	"io"
)

type jsonEncoder struct {
	w      io.Writer
	indent string
	items  []any
}

func (e *jsonEncoder) Encode(v any) error {
	e.items = append(e.items, v)
	return nil
}

func (e *jsonEncoder) Close() error {
	enc := json.NewEncoder(e.w)
	enc.SetIndent("", e.indent)
	return enc.Encode(collected(e.items))
}

// jsonlEncoder writes newline-delimited JSON, one value per line.
type jsonlEncoder struct {
	w io.Writer
}

func (e *jsonlEncoder) Encode(v any) error {
	return json.NewEncoder(e.w).Encode(v)
}

func (e *jsonlEncoder) Close() error {
	return nil
}
