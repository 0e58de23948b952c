package llms

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/jmylchreest/llmsmd/pkg/selector"
)

// mediaGroup is the blocklist as one selector group; every entry is a valid
// built-in selector so a single compile is safe.
var mediaGroup = strings.Join(MediaSelectors, ", ")

var structuralGroup = strings.Join(StructuralSelectors, ", ")

// removeMedia drops images, graphics, embeds and media containers.
func removeMedia(ctx *Context, root *html.Node) *html.Node {
	ctx.removeWhere(StageMedia, root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && ctx.Matcher.Matches(mediaGroup, n)
	})
	return root
}

// removeIgnored drops everything matching a caller-supplied selector. Each
// selector is tested on its own so one invalid entry cannot disable the
// rest; the removed set is the union of all matches.
func removeIgnored(ctx *Context, root *html.Node) *html.Node {
	if len(ctx.IgnoreSelectors) == 0 {
		return root
	}
	ctx.removeWhere(StageIgnore, root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && selector.MatchesAny(ctx.Matcher, ctx.IgnoreSelectors, n)
	})
	return root
}

// reduceToStructure keeps only nodes that are themselves headings or list
// elements. Text runs, comments and any other element are removed together
// with their subtree, so a kept heading loses its own text unless it sits in
// a nested structural child.
func reduceToStructure(ctx *Context, root *html.Node) *html.Node {
	if !ctx.OnlyStructure {
		return root
	}
	ctx.removeWhere(StageStructure, root, func(n *html.Node) bool {
		return !ctx.Matcher.Matches(structuralGroup, n)
	})
	return root
}
