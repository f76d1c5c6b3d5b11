package nav

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// PageSet is the set of site-relative links that resolve to a page
type PageSet struct {
	links map[string]bool
}

// NewPageSet creates a page set holding links
func NewPageSet(links ...string) *PageSet {
	p := &PageSet{links: make(map[string]bool)}
	for _, l := range links {
		p.Add(l)
	}
	return p
}

// LoadPages walks a markdown source tree. index.md maps to its directory,
// other files to their path without extension. Dot-directories and
// node_modules are skipped.
func LoadPages(root string) (*PageSet, error) {
	p := NewPageSet()

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		p.Add("/" + filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Add records a page link
func (p *PageSet) Add(link string) {
	p.links[normalizeLink(link)] = true
}

// Has reports whether link resolves to a page. "/guide" also resolves to a
// "/guide/" index page.
func (p *PageSet) Has(link string) bool {
	n := normalizeLink(link)
	if p.links[n] {
		return true
	}
	return !strings.HasSuffix(n, "/") && p.links[n+"/"]
}

// Len returns the number of pages
func (p *PageSet) Len() int {
	return len(p.links)
}

// Links returns every page link, sorted
func (p *PageSet) Links() []string {
	out := make([]string, 0, len(p.links))
	for l := range p.links {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// IsExternal reports whether link leaves the site
func IsExternal(link string) bool {
	for _, scheme := range []string{"http://", "https://", "mailto:", "//"} {
		if strings.HasPrefix(link, scheme) {
			return true
		}
	}
	return false
}

func normalizeLink(link string) string {
	if i := strings.IndexAny(link, "#?"); i >= 0 {
		link = link[:i]
	}
	if !strings.HasPrefix(link, "/") {
		link = "/" + link
	}
	for _, ext := range []string{".md", ".html"} {
		link = strings.TrimSuffix(link, ext)
	}
	if link == "/index" {
		return "/"
	}
	if strings.HasSuffix(link, "/index") {
		link = strings.TrimSuffix(link, "index")
	}
	return link
}
