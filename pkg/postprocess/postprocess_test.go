package postprocess

import (
	"strings"
	"testing"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "inline image becomes alt reference",
			input: "See ![diagram](a.png) here",
			want:  "See [diagram] here",
		},
		{
			name:  "image-only reference line is dropped",
			input: "before\n![logo][1]\nafter",
			want:  "before\nafter",
		},
		{
			name:  "bare image line is dropped",
			input: "before\n  ![logo]  \nafter",
			want:  "before\nafter",
		},
		{
			name:  "blank runs collapse",
			input: "a\n\n\n\n\nb",
			want:  "a\n\nb",
		},
		{
			name:  "whitespace-only lines count as blank",
			input: "a\n  \n\t\n \nb",
			want:  "a\n\nb",
		},
		{
			name:  "empty link removed",
			input: "x [](https://example.com) y",
			want:  "x  y",
		},
		{
			name:  "link with empty target unwrapped",
			input: "go [home]( ) now",
			want:  "go home now",
		},
		{
			name:  "link with no target unwrapped",
			input: "go [home]() now",
			want:  "go home now",
		},
		{
			name:  "comments stripped",
			input: "a<!-- end list -->\n\n<!--\nmulti\n-->b",
			want:  "a\n\nb",
		},
		{
			name:  "trailing whitespace stripped",
			input: "a  \nb\t\nc",
			want:  "a\nb\nc",
		},
		{
			name:  "crlf normalized",
			input: "a\r\nb\rc",
			want:  "a\nb\nc",
		},
		{
			name:  "crlf blank runs collapse",
			input: "a\r\n\r\n\r\n\r\nb",
			want:  "a\n\nb",
		},
		{
			name:  "document trimmed",
			input: "\n\n  # Title\n\n",
			want:  "# Title",
		},
		{
			name:  "removed link leaves no blank run",
			input: "a\n\n[](x)\n\nb",
			want:  "a\n\nb",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.input)
			if got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	inputs := []string{
		"a\n \n \nb",
		"x\n\n<!-- c -->\n\n\ny",
		"![a](b)\n\n\n![c][d]\n[](e)\n\n\n[f]( )  \r\n\r\n\r\nz",
		"   \n\n",
		"# Title\n\n- one\n- two\n\n<!-- end list -->\n\n```ts\ncode\n```",
	}

	for _, in := range inputs {
		once := Apply(in)
		twice := Apply(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
		if strings.Contains(once, "\n\n\n") {
			t.Errorf("blank run survived in %q", once)
		}
	}
}

func TestRulesOrder(t *testing.T) {
	want := []string{
		"images", "image-lines", "blank-lines", "empty-links", "empty-targets",
		"comments", "trailing-space", "line-endings", "trim",
	}
	got := Rules()
	if len(got) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(got))
	}
	for i, r := range got {
		if r.Name != want[i] {
			t.Errorf("rule %d: expected %s, got %s", i, want[i], r.Name)
		}
	}
}
