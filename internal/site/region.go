package site

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/llmsmd/pkg/cleaner"
)

// DefaultContentSelector selects the main content region of a page.
const DefaultContentSelector = "main"

// RegionCleaner reduces a full page to the inner HTML of its content region.
// It implements the cleaner.Cleaner interface.
type RegionCleaner struct {
	selector string
}

var _ cleaner.Cleaner = (*RegionCleaner)(nil)

// NewRegionCleaner creates a RegionCleaner. An empty selector uses
// DefaultContentSelector.
func NewRegionCleaner(selector string) *RegionCleaner {
	if strings.TrimSpace(selector) == "" {
		selector = DefaultContentSelector
	}
	return &RegionCleaner{selector: selector}
}

// Name returns the cleaner name for logging.
func (c *RegionCleaner) Name() string {
	return "region"
}

// Clean returns the inner HTML of the first element matching the content
// selector, or of body when nothing matches.
func (c *RegionCleaner) Clean(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing page: %w", err)
	}

	region := doc.Find(c.selector).First()
	if region.Length() == 0 {
		region = doc.Find("body")
	}

	inner, err := region.Html()
	if err != nil {
		return "", fmt.Errorf("rendering content region: %w", err)
	}
	return inner, nil
}
