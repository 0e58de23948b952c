// Package build turns a statically built documentation site into llms.txt,
// llms-full.txt and llms-small.txt.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/jmylchreest/llmsmd/internal/index"
	"github.com/jmylchreest/llmsmd/internal/logger"
	"github.com/jmylchreest/llmsmd/internal/site"
	"github.com/jmylchreest/llmsmd/pkg/cleaner"
	"github.com/jmylchreest/llmsmd/pkg/llms"
)

// Options configure a build.
type Options struct {
	Input  string
	Output string

	Meta           index.Meta
	TitleSeparator string

	// ContentSelector picks the region of each page that is converted.
	ContentSelector string

	// Include and Exclude are page discovery globs; nil uses the defaults.
	Include []string
	Exclude []string

	// Full is applied to every page; Small is layered on top of Full for the
	// abridged file.
	Full  llms.Options
	Small llms.Options

	Concurrency int
}

// Builder runs builds against a filesystem.
type Builder struct {
	fs   afero.Fs
	opts Options
	conv *llms.Converter
	log  *slog.Logger
}

// New creates a Builder. A non-positive concurrency runs one page at a time.
func New(fs afero.Fs, opts Options) *Builder {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Builder{
		fs:   fs,
		opts: opts,
		conv: llms.New(),
		log:  logger.Component("build"),
	}
}

// converted is the per-page outcome of the worker pool.
type converted struct {
	page  *site.Page
	full  string
	small string
}

// Build discovers, converts and indexes every page, then writes the output
// files. A page that fails to convert fails the build.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	start := time.Now()

	paths, err := site.Discover(b.fs, b.opts.Input, b.opts.Include, b.opts.Exclude)
	if err != nil {
		return nil, err
	}
	b.log.Info("discovered pages", "count", len(paths), "input", b.opts.Input)

	results, err := b.convertAll(ctx, paths)
	if err != nil {
		return nil, err
	}

	meta := b.opts.Meta
	pages := make([]*site.Page, len(results))
	bodies := make(map[string]converted, len(results))
	for i, r := range results {
		pages[i] = r.page
		bodies[r.page.Path] = r
		if r.page.Path == "index.html" {
			if meta.Title == "" {
				meta.Title = r.page.Title
			}
			if meta.Description == "" {
				meta.Description = r.page.Description
			}
		}
	}

	// Concatenated files follow the index order.
	sections := site.Group(pages)
	var fullEntries, smallEntries []index.Entry
	for _, section := range sections {
		for _, p := range section.Pages {
			r := bodies[p.Path]
			fullEntries = append(fullEntries, index.Entry{Page: p, Body: r.full})
			smallEntries = append(smallEntries, index.Entry{Page: p, Body: r.small})
		}
	}

	files := map[string]string{
		index.IndexFile:               index.RenderIndex(meta, sections),
		index.VariantFull.FileName():  index.RenderPages(meta, index.VariantFull, fullEntries),
		index.VariantSmall.FileName(): index.RenderPages(meta, index.VariantSmall, smallEntries),
	}
	if err := index.WriteFiles(b.fs, b.opts.Output, files); err != nil {
		return nil, err
	}

	report := newReport(results, files, time.Since(start))
	for _, f := range report.Files {
		b.log.Info("wrote file", "name", f.Name, "size", f.Size)
	}
	return report, nil
}

// convertAll reads and converts each page on a bounded pool. Results keep
// the order of paths.
func (b *Builder) convertAll(ctx context.Context, paths []string) ([]converted, error) {
	full := cleaner.NewChain(
		site.NewRegionCleaner(b.opts.ContentSelector),
		llms.NewCleaner(b.conv, b.opts.Full),
	)
	small := cleaner.NewChain(
		site.NewRegionCleaner(b.opts.ContentSelector),
		llms.NewCleaner(b.conv, b.opts.Full.Merge(b.opts.Small)),
	)
	pageOpts := site.PageOptions{
		SiteURL:        b.opts.Meta.SiteURL,
		TitleSeparator: b.opts.TitleSeparator,
	}

	results := make([]converted, len(paths))
	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(b.opts.Concurrency)

	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			page, err := site.ReadPage(b.fs, b.opts.Input, path, pageOpts)
			if err != nil {
				return err
			}
			fullMD, err := full.Clean(page.HTML)
			if err != nil {
				return fmt.Errorf("converting %s: %w", path, err)
			}
			smallMD, err := small.Clean(page.HTML)
			if err != nil {
				return fmt.Errorf("converting %s (small): %w", path, err)
			}

			b.log.Debug("converted page", "path", path,
				"input", humanize.Bytes(uint64(len(page.HTML))),
				"full", humanize.Bytes(uint64(len(fullMD))))
			results[i] = converted{page: page, full: fullMD, small: smallMD}
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
