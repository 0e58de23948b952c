// Package llms converts rendered documentation HTML into a restricted
// Markdown dialect for language models. Conversion parses the markup, runs a
// fixed sequence of tree-rewriting stages, serializes the tree and applies a
// deterministic text cleanup.
package llms

// Options are the per-conversion inputs. The zero value converts with no
// extra exclusions and full content.
type Options struct {
	// IgnoreSelectors removes every element matching any of these selectors
	// (site chrome, opt-out markers). Invalid selectors match nothing.
	IgnoreSelectors []string `json:"ignore_selectors" yaml:"ignore_selectors" mapstructure:"ignore_selectors"`

	// OnlyStructure reduces the document to its heading/list skeleton.
	OnlyStructure bool `json:"only_structure" yaml:"only_structure" mapstructure:"only_structure"`
}

// Merge returns a copy of o with other layered on top.
// Selectors are appended (deduplicated); OnlyStructure wins if either is set.
func (o Options) Merge(other Options) Options {
	merged := Options{
		OnlyStructure: o.OnlyStructure || other.OnlyStructure,
	}

	seen := make(map[string]bool)
	for _, list := range [][]string{o.IgnoreSelectors, other.IgnoreSelectors} {
		for _, s := range list {
			if !seen[s] {
				merged.IgnoreSelectors = append(merged.IgnoreSelectors, s)
				seen[s] = true
			}
		}
	}
	return merged
}

// MediaSelectors is the built-in blocklist removed from every document:
// images, graphics, audio/video, embeds and class-based media containers.
var MediaSelectors = []string{
	"img",
	"picture",
	"figure",
	"svg",
	"canvas",
	"video",
	"audio",
	"iframe",
	"object",
	"embed",
	".image",
	".photo",
	".gallery",
	".media",
}

// StructuralSelectors are the only elements kept in structure-only mode.
var StructuralSelectors = []string{"h2", "h3", "h4", "h5", "h6", "ul", "ol", "li"}

// Markup idioms recognised by the rewriting stages.
const (
	// LanguageAttr carries the language hint on syntax-highlighted blocks.
	LanguageAttr = "data-language"

	CodeBlockSelector    = "pre[" + LanguageAttr + "]"
	InsertedLineSelector = ".ec-line.ins"
	DeletedLineSelector  = ".ec-line.del"
	LineCodeSelector     = ".code"

	TabsSelector     = "starlight-tabs"
	TabSelector      = `[role="tab"]`
	TabPanelSelector = `[role="tabpanel"]`

	FileTreeSelector     = "starlight-file-tree"
	ScreenReaderSelector = ".sr-only"
)
