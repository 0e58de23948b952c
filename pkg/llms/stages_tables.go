package llms

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/jmylchreest/llmsmd/pkg/htmltree"
	"github.com/jmylchreest/llmsmd/pkg/markdown"
)

// flattenTables replaces every table with a block of plain text: one line per
// non-blank row, cells joined with " | ". The block keeps the text both as its
// only child and in markdown.LinesAttr, which the serializer emits verbatim.
func flattenTables(ctx *Context, root *html.Node) *html.Node {
	for _, table := range ctx.Matcher.SelectAll("table", root) {
		text := tableText(ctx, table)

		htmltree.Rewrite(table, "div")
		htmltree.SetAttr(table, markdown.LinesAttr, text)
		table.AppendChild(htmltree.NewText(text))
		ctx.stats().RecordRewrite(StageTables)
	}
	return root
}

func tableText(ctx *Context, table *html.Node) string {
	var rows []string
	for _, tr := range ctx.Matcher.SelectAll("tr", table) {
		var cells []string
		for _, cell := range htmltree.ChildElements(tr) {
			if !htmltree.IsElement(cell, "td", "th") {
				continue
			}
			if text := htmltree.JoinedText(cell); text != "" {
				cells = append(cells, text)
			}
		}
		if len(cells) > 0 {
			rows = append(rows, strings.Join(cells, " | "))
		}
	}
	return strings.Join(rows, "\n")
}
