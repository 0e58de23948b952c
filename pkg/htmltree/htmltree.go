// Package htmltree is the document tree model used by the conversion pipeline.
// Trees are plain golang.org/x/net/html nodes; this package adds the small set of
// mutation and query helpers the pipeline stages need while keeping the
// ownership rules intact (every node has at most one parent, removing a node
// removes its whole subtree).
package htmltree

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses a markup fragment leniently and returns a document root whose
// children are the top-level parsed nodes. Unclosed tags and invalid nesting
// are repaired by the HTML5 parsing algorithm; the result is always some tree.
func Parse(markup string) (*html.Node, error) {
	root := &html.Node{Type: html.DocumentNode}
	if strings.TrimSpace(markup) == "" {
		return root, nil
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, fmt.Errorf("parsing html fragment: %w", err)
	}
	for _, n := range nodes {
		Detach(n)
		root.AppendChild(n)
	}
	return root, nil
}

// Render serializes the children of n back to HTML.
func Render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// Detach removes n (and its subtree) from its parent. It is a no-op for
// nodes that are already detached.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// RemoveWhere removes every descendant of root for which match returns true.
// Matching nodes are removed with their subtree and not descended into. The
// root itself is never removed. It returns the number of removed nodes.
func RemoveWhere(root *html.Node, match func(*html.Node) bool) int {
	removed := 0
	for _, c := range Children(root) {
		if match(c) {
			Detach(c)
			removed++
			continue
		}
		removed += RemoveWhere(c, match)
	}
	return removed
}

// Children returns a snapshot of n's children, safe to iterate while mutating.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// ChildElements returns a snapshot of n's element children.
func ChildElements(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// IsElement reports whether n is an element with one of the given tag names.
func IsElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, t := range tags {
		if n.Data == t {
			return true
		}
	}
	return false
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	return goquery.NewDocumentFromNode(n).Text()
}

// JoinedText returns the descendant text nodes of n, each trimmed, joined
// with single spaces. Whitespace-only text nodes are skipped.
func JoinedText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

// FirstText returns the first descendant text node of n in document order.
func FirstText(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			return c
		}
		if t := FirstText(c); t != nil {
			return t
		}
	}
	return nil
}

// Attr returns the value of attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets attribute key on n, replacing an existing value.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// HasClass reports whether the class token list of n contains token.
func HasClass(n *html.Node, token string) bool {
	return goquery.NewDocumentFromNode(n).HasClass(token)
}

// AddClass appends token to the class list of n unless it is already there.
// It reports whether the list changed.
func AddClass(n *html.Node, token string) bool {
	if token == "" || HasClass(n, token) {
		return false
	}
	goquery.NewDocumentFromNode(n).AddClass(token)
	return true
}

// ClassList returns the class tokens of n in order.
func ClassList(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// NewElement builds a detached element with the given children.
// Children that are still attached elsewhere are detached first.
func NewElement(tag string, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for _, c := range children {
		Detach(c)
		n.AppendChild(c)
	}
	return n
}

// NewText builds a detached text node.
func NewText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Rewrite turns n into a bare element named tag: attributes are dropped and
// all children are detached.
func Rewrite(n *html.Node, tag string) {
	n.Data = tag
	n.DataAtom = atom.Lookup([]byte(tag))
	n.Attr = nil
	for _, c := range Children(n) {
		n.RemoveChild(c)
	}
}
