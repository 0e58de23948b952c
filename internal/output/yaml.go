package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

type yamlEncoder struct {
	w     io.Writer
	items []any
}

func (e *yamlEncoder) Encode(v any) error {
	e.items = append(e.items, v)
	return nil
}

func (e *yamlEncoder) Close() error {
	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(2)
	if err := enc.Encode(collected(e.items)); err != nil {
		return err
	}
	return enc.Close()
}
