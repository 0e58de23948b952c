package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type testItem struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSONL", FormatJSONL, false},
		{" yaml ", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormat_Streaming(t *testing.T) {
	if !FormatJSONL.Streaming() {
		t.Error("expected jsonl to stream")
	}
	if FormatJSON.Streaming() || FormatYAML.Streaming() {
		t.Error("expected document formats not to stream")
	}
}

func TestNewEncoder_Unsupported(t *testing.T) {
	_, err := NewEncoder(&bytes.Buffer{}, Format("unsupported"))
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestJSON_SingleValue(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Write(buf, FormatJSON, testItem{Name: "test", Value: 42}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	// Single values are written directly, not as an array.
	var result testItem
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if result.Name != "test" || result.Value != 42 {
		t.Errorf("unexpected result: %+v", result)
	}
	if !strings.Contains(buf.String(), "\n  \"name\"") {
		t.Errorf("expected indented output, got %s", buf.String())
	}
}

func TestJSON_MultipleValuesCompact(t *testing.T) {
	buf := &bytes.Buffer{}
	enc, err := NewEncoder(buf, FormatJSON, WithIndent(""))
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	_ = enc.Encode(testItem{Name: "first", Value: 1})
	_ = enc.Encode(testItem{Name: "second", Value: 2})
	if buf.Len() != 0 {
		t.Error("expected output to be buffered until Close")
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := `[{"name":"first","value":1},{"name":"second","value":2}]` + "\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestJSON_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	enc, _ := NewEncoder(buf, FormatJSON)
	if err := enc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("expected empty array, got %q", buf.String())
	}
}

func TestJSONL_Streams(t *testing.T) {
	buf := &bytes.Buffer{}
	enc, err := NewEncoder(buf, FormatJSONL)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}

	if err := enc.Encode(testItem{Name: "a", Value: 1}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if buf.String() != `{"name":"a","value":1}`+"\n" {
		t.Errorf("expected the first line immediately, got %q", buf.String())
	}
	_ = enc.Encode(testItem{Name: "b", Value: 2})
	if err := enc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var second testItem
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("failed to unmarshal line: %v", err)
	}
	if second.Name != "b" {
		t.Errorf("unexpected second line: %+v", second)
	}
}

func TestYAML(t *testing.T) {
	t.Run("single value", func(t *testing.T) {
		buf := &bytes.Buffer{}
		if err := Write(buf, FormatYAML, testItem{Name: "test", Value: 42}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		var result testItem
		if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("failed to unmarshal output: %v", err)
		}
		if result.Name != "test" || result.Value != 42 {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("multiple values", func(t *testing.T) {
		buf := &bytes.Buffer{}
		enc, _ := NewEncoder(buf, FormatYAML)
		_ = enc.Encode(testItem{Name: "a"})
		_ = enc.Encode(testItem{Name: "b"})
		if err := enc.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		var result []testItem
		if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("failed to unmarshal output: %v", err)
		}
		if len(result) != 2 || result[1].Name != "b" {
			t.Errorf("unexpected result: %+v", result)
		}
	})
}
