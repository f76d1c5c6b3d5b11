package nav

import (
	"github.com/muzilix/dbapi-docs/pkg/endpoints"
)

// Section prefixes of the documentation site
const (
	GuidePrefix     = "/guide/"
	ExamplesPrefix  = "/examples/"
	ReferencePrefix = "/reference/"
)

// DefaultSections returns the static sidebars of the site. The API section is
// a placeholder that Assemble fills from the registry.
func DefaultSections() []Section {
	return []Section{
		{
			Prefix: GuidePrefix,
			Groups: []Group{
				{
					Title: "开始",
					Items: []Item{
						{Text: "介绍", Link: "/guide/"},
						{Text: "快速开始", Link: "/guide/quick-start"},
						{Text: "认证", Link: "/guide/authentication"},
					},
				},
				{
					Title: "进阶",
					Items: []Item{
						{Text: "错误处理", Link: "/guide/error-handling"},
						{Text: "最佳实践", Link: "/guide/best-practices"},
					},
				},
			},
		},
		{Prefix: APIPrefix},
		{
			Prefix: ExamplesPrefix,
			Groups: []Group{
				{
					Title: "示例",
					Items: []Item{
						{Text: "概览", Link: "/examples/"},
						{Text: "cURL", Link: "/examples/curl"},
						{Text: "Python", Link: "/examples/python"},
						{Text: "JavaScript", Link: "/examples/javascript"},
					},
				},
			},
		},
		{
			Prefix: ReferencePrefix,
			Groups: []Group{
				{
					Title: "参考手册",
					Items: []Item{
						{Text: "概览", Link: "/reference/"},
						{Text: "错误码", Link: "/reference/error-codes"},
						{Text: "数据类型", Link: "/reference/data-types"},
						{Text: "更新日志", Link: "/reference/changelog"},
					},
				},
			},
		},
	}
}

// Assemble builds a model from sections, replacing the groups of the section
// at apiPrefix with the registry projection. If no such section is listed the
// projection is appended.
func Assemble(reg *endpoints.Registry, apiPrefix string, sections []Section) (*Model, error) {
	apiPrefix = NormalizePrefix(apiPrefix)
	projected := FromRegistry(apiPrefix, reg)

	out := make([]Section, 0, len(sections)+1)
	found := false
	for _, s := range sections {
		if NormalizePrefix(s.Prefix) == apiPrefix {
			out = append(out, projected)
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, projected)
	}

	return NewModel(out...)
}

// DefaultModel is the site's sidebar model over reg
func DefaultModel(reg *endpoints.Registry) (*Model, error) {
	return Assemble(reg, APIPrefix, DefaultSections())
}
