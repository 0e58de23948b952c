package llms

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/jmylchreest/llmsmd/pkg/htmltree"
)

const diffLanguage = "diff"

// tagCodeBlocks moves the language hint of highlighted blocks onto their
// <code> element as a language-* class so the serializer emits a fenced block
// with an info string. Blocks in another language that carry inserted or
// deleted line markers are re-tagged as diff and their lines prefixed. Block
// line elements are joined into a single newline-separated text run.
func tagCodeBlocks(ctx *Context, root *html.Node) *html.Node {
	for _, pre := range ctx.Matcher.SelectAll(CodeBlockSelector, root) {
		lang, _ := htmltree.Attr(pre, LanguageAttr)
		lang = strings.TrimSpace(lang)
		if lang == "" {
			continue
		}

		code := ctx.Matcher.SelectFirst("code", pre)
		if code == nil {
			ctx.warn(StageCode, "code block without <code> element", describe(pre))
			continue
		}

		if lang != diffLanguage && markDiffLines(ctx, code) > 0 {
			lang = diffLanguage
		}
		joinCodeLines(ctx, code)

		if htmltree.AddClass(code, "language-"+lang) {
			ctx.stats().RecordRewrite(StageCode)
		}
	}
	return root
}

// markDiffLines prefixes the inserted and deleted line children of code with
// "+" and "-". It returns the number of marked lines.
func markDiffLines(ctx *Context, code *html.Node) int {
	marked := 0
	for _, line := range htmltree.ChildElements(code) {
		var marker string
		switch {
		case ctx.Matcher.Matches(InsertedLineSelector, line):
			marker = "+"
		case ctx.Matcher.Matches(DeletedLineSelector, line):
			marker = "-"
		default:
			continue
		}

		if c := ctx.Matcher.SelectFirst(LineCodeSelector, line); c != nil {
			line = c
		}
		if t := htmltree.FirstText(line); t != nil {
			t.Data = marker + t.Data
		} else {
			line.InsertBefore(htmltree.NewText(marker), line.FirstChild)
		}
		marked++
	}
	return marked
}

// joinCodeLines replaces the <div> line children of code with one text node,
// one line per element. The serializer starts a new line at every div, so
// nested line markup would otherwise double the line breaks. Code mixing
// text with line elements is left alone.
func joinCodeLines(ctx *Context, code *html.Node) {
	var lines []string
	for _, c := range htmltree.Children(code) {
		switch {
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
		case htmltree.IsElement(c, "div"):
			text := c
			if inner := ctx.Matcher.SelectFirst(LineCodeSelector, c); inner != nil {
				text = inner
			}
			lines = append(lines, htmltree.Text(text))
		default:
			return
		}
	}
	if len(lines) == 0 {
		return
	}

	for _, c := range htmltree.Children(code) {
		htmltree.Detach(c)
	}
	code.AppendChild(htmltree.NewText(strings.Join(lines, "\n")))
}
