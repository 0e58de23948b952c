package cleaner

import (
	"fmt"
	"strings"
)

// ChainCleaner applies multiple cleaners in sequence.
type ChainCleaner struct {
	cleaners []Cleaner
}

// NewChain creates a new cleaner that applies multiple cleaners in sequence.
// Cleaners are applied in the order provided; nil entries are skipped.
//
// Example:
//
//	chain := cleaner.NewChain(
//	    site.NewRegionCleaner("main"),
//	    llms.NewCleaner(nil, opts),
//	)
func NewChain(cleaners ...Cleaner) *ChainCleaner {
	var kept []Cleaner
	for _, c := range cleaners {
		if c != nil {
			kept = append(kept, c)
		}
	}
	return &ChainCleaner{
		cleaners: kept,
	}
}

// Clean applies all cleaners in sequence, stopping at the first error.
func (c *ChainCleaner) Clean(content string) (string, error) {
	var err error
	for _, cleaner := range c.cleaners {
		content, err = cleaner.Clean(content)
		if err != nil {
			return "", fmt.Errorf("%s: %w", cleaner.Name(), err)
		}
	}
	return content, nil
}

// Name returns the names of all chained cleaners.
func (c *ChainCleaner) Name() string {
	names := make([]string, len(c.cleaners))
	for i, cleaner := range c.cleaners {
		names[i] = cleaner.Name()
	}
	return "chain(" + strings.Join(names, "->") + ")"
}
