package site

import (
	"bytes"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/afero"
)

// Page is one built page with its metadata.
type Page struct {
	Path        string `json:"path" yaml:"path"`
	URL         string `json:"url" yaml:"url"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// HTML is the complete file content.
	HTML string `json:"-" yaml:"-"`
}

// PageOptions control metadata extraction.
type PageOptions struct {
	// SiteURL prefixes page links.
	SiteURL string

	// TitleSeparator, when set, strips everything from its last occurrence
	// in the title (" | My Site" style suffixes).
	TitleSeparator string
}

// ReadPage reads relPath under root and extracts its metadata.
func ReadPage(fs afero.Fs, root, relPath string, opts PageOptions) (*Page, error) {
	data, err := afero.ReadFile(fs, filepath.Join(root, filepath.FromSlash(relPath)))
	if err != nil {
		return nil, fmt.Errorf("reading page %s: %w", relPath, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing page %s: %w", relPath, err)
	}

	return &Page{
		Path:        relPath,
		URL:         PageURL(opts.SiteURL, relPath),
		Title:       pageTitle(doc, relPath, opts.TitleSeparator),
		Description: pageDescription(doc),
		HTML:        string(data),
	}, nil
}

func pageTitle(doc *goquery.Document, relPath, separator string) string {
	title := strings.TrimSpace(doc.Find("head title").First().Text())
	if title != "" && separator != "" {
		if i := strings.LastIndex(title, separator); i > 0 {
			title = strings.TrimSpace(title[:i])
		}
	}
	if title == "" {
		title = metaContent(doc, `meta[property="og:title"]`)
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if title == "" {
		title = strings.TrimSuffix(relPath, path.Ext(relPath))
	}
	return title
}

func pageDescription(doc *goquery.Document) string {
	if d := metaContent(doc, `meta[name="description"]`); d != "" {
		return d
	}
	return metaContent(doc, `meta[property="og:description"]`)
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(v)
}
