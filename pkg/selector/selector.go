// Package selector provides CSS selector matching over html node trees.
// The pipeline only depends on the Matcher interface; CSS is the default
// implementation backed by cascadia.
package selector

import (
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/jmylchreest/llmsmd/internal/logger"
)

// Matcher answers selector queries against nodes.
type Matcher interface {
	// Matches tests n alone against the selector. Combinators inside the
	// selector may still look at ancestors.
	Matches(selector string, n *html.Node) bool

	// SelectFirst returns the first node in depth-first document order under
	// root (root included) that matches, or nil.
	SelectFirst(selector string, root *html.Node) *html.Node

	// SelectAll returns every node under root (root included) that matches,
	// in document order.
	SelectAll(selector string, root *html.Node) []*html.Node
}

// CSS is a cascadia-backed Matcher. Compiled selectors are cached by their
// source string; invalid or empty selectors compile to a matcher that never
// matches. A CSS value is safe for concurrent use.
type CSS struct {
	cache sync.Map // string -> cascadia.Selector (nil for invalid)
}

// New creates a CSS matcher with an empty cache.
func New() *CSS {
	return &CSS{}
}

// Default is a shared CSS matcher.
var Default = New()

// compile returns the compiled selector, or nil if it can never match.
func (m *CSS) compile(sel string) cascadia.Selector {
	if v, ok := m.cache.Load(sel); ok {
		return v.(cascadia.Selector)
	}

	var compiled cascadia.Selector
	if strings.TrimSpace(sel) != "" {
		s, err := cascadia.Compile(sel)
		if err != nil {
			logger.Debug("ignoring invalid selector", "selector", sel, "error", err)
		} else {
			compiled = s
		}
	}

	actual, _ := m.cache.LoadOrStore(sel, compiled)
	return actual.(cascadia.Selector)
}

// Valid reports whether sel compiles to a usable selector.
func (m *CSS) Valid(sel string) bool {
	return m.compile(sel) != nil
}

// Matches implements Matcher.
func (m *CSS) Matches(sel string, n *html.Node) bool {
	s := m.compile(sel)
	if s == nil || n == nil {
		return false
	}
	return s.Match(n)
}

// SelectFirst implements Matcher.
func (m *CSS) SelectFirst(sel string, root *html.Node) *html.Node {
	s := m.compile(sel)
	if s == nil || root == nil {
		return nil
	}
	return s.MatchFirst(root)
}

// SelectAll implements Matcher.
func (m *CSS) SelectAll(sel string, root *html.Node) []*html.Node {
	s := m.compile(sel)
	if s == nil || root == nil {
		return nil
	}
	return s.MatchAll(root)
}

// MatchesAny reports whether n matches at least one of the selectors.
func MatchesAny(m Matcher, selectors []string, n *html.Node) bool {
	for _, sel := range selectors {
		if m.Matches(sel, n) {
			return true
		}
	}
	return false
}
