package site

import (
	"sort"
	"strings"
)

// Section is a directory group of pages. The root section has an empty Name.
type Section struct {
	Name  string
	Pages []*Page
}

// Title is the heading used for the section in the index.
func (s Section) Title() string {
	if s.Name == "" {
		return "Overview"
	}
	words := strings.FieldsFunc(s.Name, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

// Group buckets pages by the first segment of their path. Root-level pages
// come first, then sections in lexical order; pages are sorted by path.
func Group(pages []*Page) []Section {
	byName := make(map[string][]*Page)
	for _, p := range pages {
		byName[sectionName(p.Path)] = append(byName[sectionName(p.Path)], p)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names) // "" sorts first

	sections := make([]Section, 0, len(names))
	for _, name := range names {
		ps := byName[name]
		sort.Slice(ps, func(i, j int) bool { return ps[i].Path < ps[j].Path })
		sections = append(sections, Section{Name: name, Pages: ps})
	}
	return sections
}

func sectionName(relPath string) string {
	if i := strings.IndexByte(relPath, '/'); i >= 0 {
		return relPath[:i]
	}
	return ""
}
