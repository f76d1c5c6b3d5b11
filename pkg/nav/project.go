package nav

import (
	"strings"

	"github.com/muzilix/dbapi-docs/pkg/endpoints"
)

// APIPrefix is the section that documents the endpoint catalog
const APIPrefix = "/api/"

// OverviewText labels the first item of every projected group
const OverviewText = "概览"

// GroupLink is the overview page of a feature area
func GroupLink(prefix, tag string) string {
	return NormalizePrefix(prefix) + tag + "/"
}

// EndpointLink is the page documenting one endpoint. The docs exporter writes
// pages at exactly these links.
func EndpointLink(prefix, tag, key string) string {
	return GroupLink(prefix, tag) + Slug(key)
}

// Slug turns CREATE_DATABASE into create-database
func Slug(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}

// FromRegistry projects the registry's groups into a sidebar section: one
// group per feature area, an overview link first, then one link per endpoint
// that is not hidden.
func FromRegistry(prefix string, reg *endpoints.Registry) Section {
	section := Section{Prefix: NormalizePrefix(prefix)}

	for _, g := range reg.Groups() {
		group := Group{
			Title:     g.Title,
			Collapsed: g.Collapsed,
			Items:     []Item{{Text: OverviewText, Link: GroupLink(prefix, g.Tag)}},
		}
		for key, d := range reg.ListByGroup(g.Tag) {
			if d.Hidden {
				continue
			}
			text := d.Description
			if text == "" {
				text = key
			}
			group.Items = append(group.Items, Item{Text: text, Link: EndpointLink(prefix, g.Tag, key)})
		}
		section.Groups = append(section.Groups, group)
	}

	return section
}
