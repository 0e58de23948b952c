package build

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
)

// Report summarizes a build.
type Report struct {
	Pages    []PageReport  `json:"pages" yaml:"pages"`
	Files    []FileReport  `json:"files" yaml:"files"`
	Duration time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// PageReport is one converted page.
type PageReport struct {
	Path       string `json:"path" yaml:"path"`
	Title      string `json:"title" yaml:"title"`
	URL        string `json:"url" yaml:"url"`
	InputBytes int    `json:"input_bytes" yaml:"input_bytes"`
	FullBytes  int    `json:"full_bytes" yaml:"full_bytes"`
	SmallBytes int    `json:"small_bytes" yaml:"small_bytes"`
}

// FileReport is one written output file.
type FileReport struct {
	Name  string `json:"name" yaml:"name"`
	Bytes int    `json:"bytes" yaml:"bytes"`
	Size  string `json:"size" yaml:"size"`
}

func newReport(results []converted, files map[string]string, elapsed time.Duration) *Report {
	r := &Report{Duration: elapsed}
	for _, c := range results {
		r.Pages = append(r.Pages, PageReport{
			Path:       c.page.Path,
			Title:      c.page.Title,
			URL:        c.page.URL,
			InputBytes: len(c.page.HTML),
			FullBytes:  len(c.full),
			SmallBytes: len(c.small),
		})
	}
	for name, content := range files {
		r.Files = append(r.Files, FileReport{
			Name:  name,
			Bytes: len(content),
			Size:  humanize.Bytes(uint64(len(content))),
		})
	}
	sort.Slice(r.Files, func(i, j int) bool { return r.Files[i].Name < r.Files[j].Name })
	return r
}

// File returns the report for the named output file.
func (r *Report) File(name string) (FileReport, bool) {
	for _, f := range r.Files {
		if f.Name == name {
			return f, true
		}
	}
	return FileReport{}, false
}

// Summary returns a one-line description of the build.
func (r *Report) Summary() string {
	var in, out int
	for _, p := range r.Pages {
		in += p.InputBytes
	}
	for _, f := range r.Files {
		out += f.Bytes
	}
	return fmt.Sprintf("%d pages, %s HTML -> %s across %d files in %s",
		len(r.Pages), humanize.Bytes(uint64(in)), humanize.Bytes(uint64(out)),
		len(r.Files), r.Duration.Round(time.Millisecond))
}
