// Package postprocess applies the final string-level cleanup to serialized
// Markdown. Rules know nothing about the tree they came from.
package postprocess

import (
	"regexp"
	"strings"
)

// Rule is a single named string rewrite.
type Rule struct {
	Name  string
	Apply func(string) string
}

func replace(re *regexp.Regexp, repl string) func(string) string {
	return func(s string) string { return re.ReplaceAllString(s, repl) }
}

var (
	inlineImageRegex   = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	imageLineRegex     = regexp.MustCompile(`(?m)^[ \t]*!\[[^\]]*\](\[[^\]]*\])?[ \t]*(\r?\n|$)`)
	blankRunRegex      = regexp.MustCompile(`\n(?:[ \t]*\r?\n){2,}`)
	emptyLinkRegex     = regexp.MustCompile(`\[\]\([^)]*\)`)
	emptyTargetRegex   = regexp.MustCompile(`\[([^\]]+)\]\(\s*\)`)
	commentRegex       = regexp.MustCompile(`<!--[\s\S]*?-->`)
	trailingSpaceRegex = regexp.MustCompile(`(?m)[ \t]+$`)
	lineEndingRegex    = regexp.MustCompile(`\r\n?`)
)

// Rules returns the cleanup rules in application order.
func Rules() []Rule {
	return []Rule{
		{"images", replace(inlineImageRegex, "[$1]")},
		{"image-lines", replace(imageLineRegex, "")},
		{"blank-lines", replace(blankRunRegex, "\n\n")},
		{"empty-links", replace(emptyLinkRegex, "")},
		{"empty-targets", replace(emptyTargetRegex, "$1")},
		{"comments", replace(commentRegex, "")},
		{"trailing-space", replace(trailingSpaceRegex, "")},
		{"line-endings", replace(lineEndingRegex, "\n")},
		{"trim", strings.TrimSpace},
	}
}

var rules = Rules()

// maxPasses bounds the fixpoint loop. Every rule only deletes or shortens
// text, so real inputs settle after two or three passes.
const maxPasses = 8

// Apply runs the ordered rules over s until the output stops changing, so
// Apply(Apply(s)) == Apply(s).
func Apply(s string) string {
	for i := 0; i < maxPasses; i++ {
		next := Once(s)
		if next == s {
			return next
		}
		s = next
	}
	return s
}

// Once runs a single ordered pass of the rules.
func Once(s string) string {
	for _, r := range rules {
		s = r.Apply(s)
	}
	return s
}
