package llms

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmylchreest/llmsmd/pkg/htmltree"
	"github.com/jmylchreest/llmsmd/pkg/markdown"
	"github.com/jmylchreest/llmsmd/pkg/postprocess"
	"github.com/jmylchreest/llmsmd/pkg/selector"
)

// Converter runs the conversion pipeline. It holds no per-call state and is
// safe for concurrent use.
type Converter struct {
	matcher    selector.Matcher
	serializer *markdown.Serializer
	stages     []Stage
}

// Option configures a Converter.
type Option func(*Converter)

// WithMatcher replaces the selector engine used by every stage.
func WithMatcher(m selector.Matcher) Option {
	return func(c *Converter) {
		if m != nil {
			c.matcher = m
		}
	}
}

// New creates a Converter with the fixed stage order.
func New(opts ...Option) *Converter {
	c := &Converter{
		matcher:    selector.Default,
		serializer: markdown.New(),
		stages:     Stages(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert turns an HTML fragment into Markdown.
func (c *Converter) Convert(html string, opts Options) (string, error) {
	result := c.ConvertWithStats(html, opts)
	if result.Error != nil {
		return "", result.Error
	}
	return result.Content, nil
}

// ConvertWithStats performs a conversion and returns detailed stats.
func (c *Converter) ConvertWithStats(html string, opts Options) *Result {
	startTime := time.Now()
	result := &Result{
		Stats: NewStats(),
	}
	result.Stats.InputBytes = len(html)
	defer func() {
		result.Stats.OutputBytes = len(result.Content)
		result.Stats.TotalDuration = time.Since(startTime)
	}()

	if strings.TrimSpace(html) == "" {
		return result
	}

	parseStart := time.Now()
	root, err := htmltree.Parse(html)
	result.Stats.ParseDuration = time.Since(parseStart)
	if err != nil {
		result.Error = fmt.Errorf("parsing html: %w", err)
		return result
	}

	ctx := newContext(opts, c.matcher, result)
	transformStart := time.Now()
	for _, stage := range c.stages {
		phase := result.Stats.Phase(stage.Name)
		stageStart := time.Now()
		root = stage.Run(ctx, root)
		phase.Duration = time.Since(stageStart)
	}
	result.Stats.TransformDuration = time.Since(transformStart)

	serializeStart := time.Now()
	md, err := c.serializer.Serialize(root)
	result.Stats.SerializeDuration = time.Since(serializeStart)
	if err != nil {
		result.Error = err
		return result
	}

	postStart := time.Now()
	result.Content = postprocess.Apply(md)
	result.Stats.PostProcessDuration = time.Since(postStart)

	return result
}

var defaultConverter = New()

// Convert converts html using the default converter.
func Convert(html string, ignoreSelectors []string, onlyStructure bool) (string, error) {
	return defaultConverter.Convert(html, Options{
		IgnoreSelectors: ignoreSelectors,
		OnlyStructure:   onlyStructure,
	})
}
