// Package markdown serializes a transformed document tree into Markdown using
// html-to-markdown with a fixed, LLM-oriented style: "-" bullets, backtick
// fences, ATX headings, "---" rules, "**" strong and "_" emphasis, with the
// GitHub-flavored strikethrough and table extensions enabled.
package markdown

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"
)

// LinesAttr marks a block element whose content must be emitted verbatim, one
// line per row, in the attribute's value. Whitespace collapsing would
// otherwise fold the rows of a flattened table into a single line.
const LinesAttr = "data-llms-lines"

// Serializer converts html trees to Markdown. It is immutable after New and
// safe for concurrent use.
type Serializer struct {
	conv *converter.Converter
}

// New creates a Serializer with the fixed style.
func New() *Serializer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithBulletListMarker("-"),
				commonmark.WithCodeBlockFence("```"),
				commonmark.WithHeadingStyle("atx"),
				commonmark.WithHorizontalRule("---"),
				commonmark.WithStrongDelimiter("**"),
				commonmark.WithEmDelimiter("_"),
			),
			strikethrough.NewStrikethroughPlugin(),
			table.NewTablePlugin(),
		),
	)

	// PriorityEarly runs before the commonmark block renderer.
	conv.Register.RendererFor("div", converter.TagTypeBlock, renderLines, converter.PriorityEarly)
	for _, h := range []string{"h2", "h3", "h4", "h5", "h6"} {
		conv.Register.RendererFor(h, converter.TagTypeBlock, renderEmptyHeading, converter.PriorityEarly)
	}

	return &Serializer{conv: conv}
}

// entityReplacer matches the text handling of the base plugin.
var entityReplacer = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// renderLines emits LinesAttr blocks as plain lines, escaped like any other
// text so cell content cannot introduce Markdown or HTML.
func renderLines(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	lines, ok := dom.GetAttribute(n, LinesAttr)
	if !ok {
		return converter.RenderTryNext
	}
	if strings.TrimSpace(lines) == "" {
		return converter.RenderSuccess
	}

	w.WriteString("\n\n")
	w.Write(ctx.EscapeContent([]byte(entityReplacer.Replace(lines))))
	w.WriteString("\n\n")
	return converter.RenderSuccess
}

// renderEmptyHeading keeps childless h2-h6 as bare ATX markers so a
// structure-only skeleton still shows its headings.
func renderEmptyHeading(_ converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	if n.FirstChild != nil {
		return converter.RenderTryNext
	}
	level := int(dom.NodeName(n)[1] - '0')

	w.WriteString("\n\n")
	w.WriteString(strings.Repeat("#", level))
	w.WriteString("\n\n")
	return converter.RenderSuccess
}

// Serialize renders the tree rooted at root.
func (s *Serializer) Serialize(root *html.Node) (string, error) {
	out, err := s.conv.ConvertNode(root)
	if err != nil {
		return "", fmt.Errorf("serializing markdown: %w", err)
	}
	return string(out), nil
}

// SerializeString parses and renders an HTML string without any pipeline
// stages.
func (s *Serializer) SerializeString(markup string) (string, error) {
	out, err := s.conv.ConvertString(markup)
	if err != nil {
		return "", fmt.Errorf("serializing markdown: %w", err)
	}
	return out, nil
}
