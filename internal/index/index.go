// Package index renders the llms.txt family of files for a documentation
// site: a linked table of contents plus full and abridged concatenations of
// every converted page.
package index

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/jmylchreest/llmsmd/internal/site"
)

// Output file names.
const (
	IndexFile = "llms.txt"
	FullFile  = "llms-full.txt"
	SmallFile = "llms-small.txt"
)

// Meta describes the site as a whole.
type Meta struct {
	Title       string
	Description string

	// Details is an optional paragraph placed after the description.
	Details string

	SiteURL string
}

// Variant selects which concatenated file is rendered.
type Variant string

const (
	VariantFull  Variant = "full"
	VariantSmall Variant = "small"
)

// FileName returns the output file for the variant.
func (v Variant) FileName() string {
	if v == VariantSmall {
		return SmallFile
	}
	return FullFile
}

func (v Variant) adjective() string {
	if v == VariantSmall {
		return "abridged"
	}
	return "full"
}

// Entry is a page with its converted Markdown body.
type Entry struct {
	Page *site.Page
	Body string
}

// link resolves an output file name against the site URL.
func (m Meta) link(name string) string {
	return strings.TrimRight(m.SiteURL, "/") + "/" + name
}

// RenderIndex renders llms.txt: the site header, links to the concatenated
// files and one section per page group.
func RenderIndex(meta Meta, sections []site.Section) string {
	var sb strings.Builder
	writeHeader(&sb, meta)

	sb.WriteString("## Documentation Sets\n\n")
	fmt.Fprintf(&sb, "- [Abridged documentation](%s): a compact version of the documentation for %s, with non-essential content removed\n",
		meta.link(SmallFile), meta.Title)
	fmt.Fprintf(&sb, "- [Complete documentation](%s): the full documentation for %s\n",
		meta.link(FullFile), meta.Title)

	for _, section := range sections {
		if len(section.Pages) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n## %s\n\n", section.Title())
		for _, p := range section.Pages {
			fmt.Fprintf(&sb, "- [%s](%s)", p.Title, p.URL)
			if p.Description != "" {
				fmt.Fprintf(&sb, ": %s", p.Description)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func writeHeader(sb *strings.Builder, meta Meta) {
	fmt.Fprintf(sb, "# %s\n\n", meta.Title)
	if meta.Description != "" {
		fmt.Fprintf(sb, "> %s\n\n", meta.Description)
	}
	if meta.Details != "" {
		sb.WriteString(strings.TrimSpace(meta.Details))
		sb.WriteString("\n\n")
	}
}

// RenderPages renders a concatenated file: a system preamble followed by
// every entry as a top-level heading, its description and its body.
func RenderPages(meta Meta, variant Variant, entries []Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<SYSTEM>This is the %s developer documentation for %s</SYSTEM>\n",
		variant.adjective(), meta.Title)

	for _, e := range entries {
		fmt.Fprintf(&sb, "\n# %s\n\n", e.Page.Title)
		if e.Page.Description != "" {
			fmt.Fprintf(&sb, "> %s\n\n", e.Page.Description)
		}
		if body := strings.TrimSpace(e.Body); body != "" {
			sb.WriteString(body)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// WriteFiles writes name -> content pairs into dir, creating it if needed.
// Files are written in name order.
func WriteFiles(fs afero.Fs, dir string, files map[string]string) error {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := afero.WriteFile(fs, path, []byte(files[name]), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
