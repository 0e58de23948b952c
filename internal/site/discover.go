// Package site reads a statically built documentation site: it finds the
// page files, extracts their metadata and content region, and groups them
// into sections for the index files.
package site

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// Default discovery patterns, matched against slash-separated paths relative
// to the site root.
var (
	DefaultInclude = []string{"**.html"}
	DefaultExclude = []string{"404.html", "**/404.html"}
)

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// Discover returns the relative paths of every page under root that matches
// an include pattern and no exclude pattern, sorted. Nil pattern lists use
// the defaults.
func Discover(fs afero.Fs, root string, include, exclude []string) ([]string, error) {
	if include == nil {
		include = DefaultInclude
	}
	if exclude == nil {
		exclude = DefaultExclude
	}
	inc, err := compileGlobs(include)
	if err != nil {
		return nil, err
	}
	exc, err := compileGlobs(exclude)
	if err != nil {
		return nil, err
	}

	var pages []string
	err = afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if matchAny(inc, rel) && !matchAny(exc, rel) {
			pages = append(pages, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering pages in %s: %w", root, err)
	}

	sort.Strings(pages)
	return pages, nil
}

// PageURL builds the public link for a page. Directory indexes map to their
// directory ("guide/index.html" becomes "<site>/guide/"); other files keep
// their name.
func PageURL(siteURL, relPath string) string {
	p := strings.TrimPrefix(filepath.ToSlash(relPath), "/")
	if p == "index.html" {
		p = ""
	} else if strings.HasSuffix(p, "/index.html") {
		p = strings.TrimSuffix(p, "index.html")
	}
	return strings.TrimRight(siteURL, "/") + "/" + p
}
