// Package output encodes build reports in machine-readable formats.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Format represents output format types.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatJSONL, FormatYAML}
}

// ParseFormat converts a flag value to a Format. "yml" is accepted as yaml.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatJSONL, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Streaming reports whether values are written as soon as they are encoded.
// Document formats collect values and write them on Close.
func (f Format) Streaming() bool {
	return f == FormatJSONL
}

// Encoder writes values in one format.
type Encoder interface {
	// Encode adds one value to the output.
	Encode(v any) error

	// Close writes anything still buffered. A document format with a single
	// value writes it directly rather than as a one-element list.
	Close() error
}

// Option configures an encoder.
type Option func(*options)

type options struct {
	indent string
}

// WithIndent sets the JSON indentation string; empty means compact.
func WithIndent(indent string) Option {
	return func(o *options) {
		o.indent = indent
	}
}

// NewEncoder creates an encoder for the specified format.
func NewEncoder(w io.Writer, format Format, opts ...Option) (Encoder, error) {
	o := &options{indent: "  "}
	for _, opt := range opts {
		opt(o)
	}

	switch format {
	case FormatJSON:
		return &jsonEncoder{w: w, indent: o.indent}, nil
	case FormatJSONL:
		return &jsonlEncoder{w: w}, nil
	case FormatYAML:
		return &yamlEncoder{w: w}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Write encodes a single value and closes the encoder.
func Write(w io.Writer, format Format, v any, opts ...Option) error {
	enc, err := NewEncoder(w, format, opts...)
	if err != nil {
		return err
	}
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// collected returns what a document encoder should emit.
func collected(items []any) any {
	if len(items) == 1 {
		return items[0]
	}
	if items == nil {
		return []any{}
	}
	return items
}
