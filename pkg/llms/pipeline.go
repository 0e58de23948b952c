package llms

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/jmylchreest/llmsmd/internal/logger"
	"github.com/jmylchreest/llmsmd/pkg/htmltree"
	"github.com/jmylchreest/llmsmd/pkg/selector"
)

// Context is the per-conversion state handed to every stage. Its fields are
// fixed for the lifetime of one conversion; stages only write to the result.
type Context struct {
	IgnoreSelectors []string
	OnlyStructure   bool
	Matcher         selector.Matcher

	result *Result
}

func newContext(opts Options, m selector.Matcher, result *Result) *Context {
	if result == nil {
		result = &Result{Stats: NewStats()}
	}
	return &Context{
		IgnoreSelectors: append([]string(nil), opts.IgnoreSelectors...),
		OnlyStructure:   opts.OnlyStructure,
		Matcher:         m,
		result:          result,
	}
}

// Stage is one tree-rewriting step. Run returns the root the next stage
// should receive, normally the one it was given.
type Stage struct {
	Name string
	Run  func(ctx *Context, root *html.Node) *html.Node
}

// Stage names, also used as stats phases and warning phases.
const (
	StageMedia      = "media"
	StageIgnore     = "ignore"
	StageStructure  = "structure"
	StageCode       = "code"
	StageTabs       = "tabs"
	StageFileTree   = "filetree"
	StageEmptyItems = "empty-items"
	StageTables     = "tables"
)

// Stages returns the fixed pipeline in execution order.
func Stages() []Stage {
	return []Stage{
		{StageMedia, removeMedia},
		{StageIgnore, removeIgnored},
		{StageStructure, reduceToStructure},
		{StageCode, tagCodeBlocks},
		{StageTabs, flattenTabs},
		{StageFileTree, cleanFileTrees},
		{StageEmptyItems, removeEmptyItems},
		{StageTables, flattenTables},
	}
}

// warn records a skipped enhancement.
func (c *Context) warn(phase, message, context string) {
	logger.Debug("conversion warning", "phase", phase, "message", message, "context", context)
	c.result.AddWarning(phase, message, context)
}

func (c *Context) stats() *Stats {
	return c.result.Stats
}

// remove detaches n and records it against phase.
func (c *Context) remove(phase string, n *html.Node) {
	htmltree.Detach(n)
	c.stats().RecordRemoval(phase, tagOf(n))
}

// removeWhere removes every descendant of root for which match is true.
func (c *Context) removeWhere(phase string, root *html.Node, match func(*html.Node) bool) {
	htmltree.RemoveWhere(root, func(n *html.Node) bool {
		if !match(n) {
			return false
		}
		c.stats().RecordRemoval(phase, tagOf(n))
		return true
	})
}

func tagOf(n *html.Node) string {
	switch n.Type {
	case html.ElementNode:
		return n.Data
	case html.TextNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	default:
		return ""
	}
}

// describe renders a short identifier for a node, used in warnings.
func describe(n *html.Node) string {
	if n.Type != html.ElementNode {
		return tagOf(n)
	}
	var sb strings.Builder
	sb.WriteString(n.Data)
	for _, a := range n.Attr {
		if a.Key == "id" || a.Key == LanguageAttr || a.Key == "class" {
			sb.WriteString("[" + a.Key + "=" + a.Val + "]")
		}
	}
	return sb.String()
}
