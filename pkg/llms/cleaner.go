package llms

import "github.com/jmylchreest/llmsmd/pkg/cleaner"

// Cleaner adapts a Converter with fixed options to the cleaner.Cleaner
// interface so it can be chained after region extraction.
type Cleaner struct {
	conv *Converter
	opts Options
}

var _ cleaner.Cleaner = (*Cleaner)(nil)

// NewCleaner creates a Cleaner. A nil converter uses the default one.
func NewCleaner(conv *Converter, opts Options) *Cleaner {
	if conv == nil {
		conv = defaultConverter
	}
	return &Cleaner{conv: conv, opts: opts}
}

// Name returns the cleaner name for logging.
func (c *Cleaner) Name() string {
	return "llms"
}

// Clean converts html to Markdown.
func (c *Cleaner) Clean(html string) (string, error) {
	return c.conv.Convert(html, c.opts)
}
