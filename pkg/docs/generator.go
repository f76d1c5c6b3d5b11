package docs

import (
	"fmt"

	"github.com/muzilix/dbapi-docs/pkg/docs/examples"
	"github.com/muzilix/dbapi-docs/pkg/endpoints"
	"github.com/muzilix/dbapi-docs/pkg/nav"
	"github.com/muzilix/dbapi-docs/pkg/theme"
)

// Documentation is the generated reference for an endpoint catalog
type Documentation struct {
	BaseURL   string
	APIPrefix string
	Groups    []*GroupDoc
}

// GroupDoc documents one feature area
type GroupDoc struct {
	Tag       string
	Title     string
	Collapsed bool
	Link      string
	Endpoints []*EndpointDoc
}

// EndpointDoc documents one endpoint
type EndpointDoc struct {
	Key          string
	Group        string
	Method       string
	Path         string
	ExamplePath  string
	URL          string
	Description  string
	RequiresAuth bool
	Hidden       bool
	Params       []string
	Link         string
	Examples     []examples.Snippet

	descriptor endpoints.Descriptor
}

// Props are the endpoint card props for this endpoint
func (e *EndpointDoc) Props() theme.EndpointProps {
	return theme.PropsFor(e.descriptor, e.ExamplePath)
}

// Title is the page heading
func (e *EndpointDoc) Title() string {
	if e.Description != "" {
		return e.Description
	}
	return e.Key
}

// Endpoint finds a documented endpoint by key
func (d *Documentation) Endpoint(key string) (*EndpointDoc, bool) {
	for _, g := range d.Groups {
		for _, e := range g.Endpoints {
			if e.Key == key {
				return e, true
			}
		}
	}
	return nil, false
}

// Count returns the number of documented endpoints
func (d *Documentation) Count() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Endpoints)
	}
	return n
}

// Generator generates documentation from a registry
type Generator struct {
	apiPrefix string
}

// NewGenerator creates a generator that places pages under apiPrefix
func NewGenerator(apiPrefix string) *Generator {
	return &Generator{apiPrefix: nav.NormalizePrefix(apiPrefix)}
}

// Generate documents every entry of reg, grouped in declaration order, with
// example paths and request snippets against baseURL.
func (g *Generator) Generate(reg *endpoints.Registry, baseURL string) (*Documentation, error) {
	base, err := theme.NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	snippets, err := examples.NewGenerator(base)
	if err != nil {
		return nil, err
	}

	doc := &Documentation{
		BaseURL:   base,
		APIPrefix: g.apiPrefix,
	}

	for _, grp := range reg.Groups() {
		gd := &GroupDoc{
			Tag:       grp.Tag,
			Title:     grp.Title,
			Collapsed: grp.Collapsed,
			Link:      nav.GroupLink(g.apiPrefix, grp.Tag),
		}

		for key, d := range reg.ListByGroup(grp.Tag) {
			example, err := endpoints.RenderExamplePath(d, endpoints.ExampleValuesFor(d.Path))
			if err != nil {
				return nil, fmt.Errorf("failed to render example for %s: %w", key, err)
			}
			code, err := snippets.GenerateAll(key, d)
			if err != nil {
				return nil, err
			}

			gd.Endpoints = append(gd.Endpoints, &EndpointDoc{
				Key:          key,
				Group:        grp.Tag,
				Method:       d.Method.String(),
				Path:         d.Path.String(),
				ExamplePath:  example,
				URL:          base + example,
				Description:  d.Description,
				RequiresAuth: d.RequiresAuth,
				Hidden:       d.Hidden,
				Params:       d.Path.Params(),
				Link:         nav.EndpointLink(g.apiPrefix, grp.Tag, key),
				Examples:     code,
				descriptor:   d,
			})
		}

		doc.Groups = append(doc.Groups, gd)
	}

	return doc, nil
}
