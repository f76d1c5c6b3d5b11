package nav

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

var (
	// ErrUnknownSection is returned when no sidebar is registered for a prefix
	ErrUnknownSection = errors.New("unknown sidebar section")

	// ErrDuplicateSection is returned when two sections share a prefix
	ErrDuplicateSection = errors.New("duplicate sidebar section")

	// ErrInvalidSection is returned for malformed prefixes, groups or items
	ErrInvalidSection = errors.New("invalid sidebar section")
)

// Item is a single sidebar link
type Item struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link" yaml:"link"`
}

// Group is a collapsible cluster of links. The JSON form matches what the
// site generator expects for a sidebar group.
type Group struct {
	Title     string `json:"text" yaml:"title"`
	Collapsed bool   `json:"collapsed" yaml:"collapsed"`
	Items     []Item `json:"items" yaml:"items"`
}

// Section is the sidebar shown for every page under Prefix
type Section struct {
	Prefix string  `json:"prefix" yaml:"prefix"`
	Groups []Group `json:"groups" yaml:"groups"`
}

// Model is the immutable set of sidebars for the site
type Model struct {
	sections []Section
	index    map[string]int
}

// NewModel validates and copies the sections
func NewModel(sections ...Section) (*Model, error) {
	m := &Model{
		sections: make([]Section, 0, len(sections)),
		index:    make(map[string]int, len(sections)),
	}

	for _, s := range sections {
		prefix := NormalizePrefix(s.Prefix)
		if prefix == "/" || strings.Contains(prefix, "//") {
			return nil, fmt.Errorf("%w: prefix %q", ErrInvalidSection, s.Prefix)
		}
		if _, exists := m.index[prefix]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSection, prefix)
		}

		for _, g := range s.Groups {
			if g.Title == "" {
				return nil, fmt.Errorf("%w: %s has a group without a title", ErrInvalidSection, prefix)
			}
			for _, it := range g.Items {
				if it.Text == "" || it.Link == "" {
					return nil, fmt.Errorf("%w: %s/%s has an item without text or link", ErrInvalidSection, prefix, g.Title)
				}
			}
		}

		m.index[prefix] = len(m.sections)
		m.sections = append(m.sections, Section{Prefix: prefix, Groups: cloneGroups(s.Groups)})
	}

	return m, nil
}

// NormalizePrefix returns prefix with exactly one leading and trailing slash
func NormalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return "/"
	}
	return "/" + prefix + "/"
}

// SidebarFor returns a copy of the groups registered for the section prefix
func (m *Model) SidebarFor(prefix string) ([]Group, error) {
	i, ok := m.index[NormalizePrefix(prefix)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, prefix)
	}
	return cloneGroups(m.sections[i].Groups), nil
}

// Sections returns the registered prefixes in declaration order
func (m *Model) Sections() []string {
	prefixes := make([]string, len(m.sections))
	for i, s := range m.sections {
		prefixes[i] = s.Prefix
	}
	return prefixes
}

// Sidebars returns the full model keyed by prefix
func (m *Model) Sidebars() map[string][]Group {
	out := make(map[string][]Group, len(m.sections))
	for _, s := range m.sections {
		out[s.Prefix] = cloneGroups(s.Groups)
	}
	return out
}

// Links yields every item of every section together with its prefix
func (m *Model) Links() iter.Seq2[string, Item] {
	return func(yield func(string, Item) bool) {
		for _, s := range m.sections {
			for _, g := range s.Groups {
				for _, it := range g.Items {
					if !yield(s.Prefix, it) {
						return
					}
				}
			}
		}
	}
}

func cloneGroups(groups []Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{Title: g.Title, Collapsed: g.Collapsed, Items: slices.Clone(g.Items)}
	}
	return out
}
