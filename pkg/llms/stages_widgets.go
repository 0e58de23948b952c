package llms

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/jmylchreest/llmsmd/pkg/htmltree"
)

// flattenTabs rewrites every tab widget into a plain list: one item per
// (label, panel) pair holding the label text as a paragraph followed by the
// original panel. Unpaired labels or panels are dropped.
func flattenTabs(ctx *Context, root *html.Node) *html.Node {
	for _, tabs := range ctx.Matcher.SelectAll(TabsSelector, root) {
		labels := ctx.Matcher.SelectAll(TabSelector, tabs)
		panels := ctx.Matcher.SelectAll(TabPanelSelector, tabs)

		n := min(len(labels), len(panels))
		if len(labels) != len(panels) {
			ctx.warn(StageTabs,
				fmt.Sprintf("tab widget has %d labels and %d panels", len(labels), len(panels)),
				describe(tabs))
		}

		texts := make([]string, n)
		for i := 0; i < n; i++ {
			texts[i] = strings.TrimSpace(htmltree.Text(labels[i]))
			htmltree.Detach(panels[i])
		}

		htmltree.Rewrite(tabs, "ul")
		for i := 0; i < n; i++ {
			label := htmltree.NewElement("p", htmltree.NewText(texts[i]))
			tabs.AppendChild(htmltree.NewElement("li", label, panels[i]))
		}
		ctx.stats().RecordRewrite(StageTabs)
	}
	return root
}

// cleanFileTrees removes visually hidden accessibility labels from file tree
// widgets, keeping the visible tree text.
func cleanFileTrees(ctx *Context, root *html.Node) *html.Node {
	for _, tree := range ctx.Matcher.SelectAll(FileTreeSelector, root) {
		for _, hidden := range ctx.Matcher.SelectAll(ScreenReaderSelector, tree) {
			if hidden == tree {
				continue
			}
			ctx.remove(StageFileTree, hidden)
		}
	}
	return root
}

// removeEmptyItems removes list items that have no child nodes at all.
func removeEmptyItems(ctx *Context, root *html.Node) *html.Node {
	for _, list := range ctx.Matcher.SelectAll("ul, ol", root) {
		for _, li := range htmltree.ChildElements(list) {
			if li.Data == "li" && li.FirstChild == nil {
				ctx.remove(StageEmptyItems, li)
			}
		}
	}
	return root
}
