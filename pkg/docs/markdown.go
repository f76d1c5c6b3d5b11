package docs

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/muzilix/dbapi-docs/pkg/endpoints"
	"github.com/muzilix/dbapi-docs/pkg/theme"
)

// MarkdownExporter renders site pages for the API section
type MarkdownExporter struct{}

// NewMarkdownExporter creates a new Markdown exporter
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// ExportIndex renders the landing page of the API section
func (e *MarkdownExporter) ExportIndex(doc *Documentation) string {
	var b strings.Builder

	b.WriteString("# API 参考\n\n")
	b.WriteString(fmt.Sprintf("所有接口的基础地址为 `%s`。\n\n", doc.BaseURL))
	b.WriteString("| 分组 | 接口数 |\n|---|---|\n")
	for _, g := range doc.Groups {
		b.WriteString(fmt.Sprintf("| [%s](%s) | %d |\n", g.Title, g.Link, visible(g)))
	}
	b.WriteString("\n")

	return b.String()
}

// ExportGroup renders the overview page of one feature area
func (e *MarkdownExporter) ExportGroup(g *GroupDoc) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# %s\n\n", g.Title))
	b.WriteString("| 接口 | 方法 | 路径 | 认证 |\n|---|---|---|---|\n")
	for _, ep := range g.Endpoints {
		if ep.Hidden {
			continue
		}
		auth := "否"
		if ep.RequiresAuth {
			auth = "是"
		}
		b.WriteString(fmt.Sprintf("| [%s](%s) | `%s` | `%s` | %s |\n",
			ep.Title(), ep.Link, ep.Method, ep.Path, auth))
	}
	b.WriteString("\n")

	return b.String()
}

// ExportEndpoint renders the page for one endpoint. The card is emitted as
// an <ApiEndpoint> tag for the site theme to render.
func (e *MarkdownExporter) ExportEndpoint(ep *EndpointDoc) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# %s\n\n", ep.Title()))
	b.WriteString(endpointTag(ep))
	b.WriteString("\n\n")

	if len(ep.Params) > 0 {
		b.WriteString("## 路径参数\n\n")
		b.WriteString("| 参数 | 示例 |\n|---|---|\n")
		for _, p := range ep.Params {
			b.WriteString(fmt.Sprintf("| `%s` | `%s` |\n", p, endpoints.ExampleValues[p]))
		}
		b.WriteString("\n")
	}

	if ep.RequiresAuth {
		b.WriteString("::: tip 认证\n该接口需要认证，参见 [认证](/guide/authentication)。\n:::\n\n")
	}

	if len(ep.Examples) > 0 {
		b.WriteString("## 请求示例\n\n::: code-group\n\n")
		for _, s := range ep.Examples {
			b.WriteString(fmt.Sprintf("```%s [%s]\n%s```\n\n", fence(s.Language), s.Language, s.Code))
		}
		b.WriteString(":::\n")
	}

	return b.String()
}

// WritePages writes the index, group and endpoint pages under dir at the
// paths their navigation links resolve to. Hidden endpoints get no page.
// It returns the written file paths.
func (e *MarkdownExporter) WritePages(dir string, doc *Documentation) ([]string, error) {
	var written []string
	write := func(link, content string) error {
		path := pagePath(dir, link)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", link, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	if err := write(doc.APIPrefix, e.ExportIndex(doc)); err != nil {
		return written, err
	}
	for _, g := range doc.Groups {
		if err := write(g.Link, e.ExportGroup(g)); err != nil {
			return written, err
		}
		for _, ep := range g.Endpoints {
			if ep.Hidden {
				continue
			}
			if err := write(ep.Link, e.ExportEndpoint(ep)); err != nil {
				return written, err
			}
		}
	}

	return written, nil
}

// pagePath maps /api/table/ to dir/api/table/index.md and
// /api/table/list-tables to dir/api/table/list-tables.md
func pagePath(dir, link string) string {
	rel := strings.TrimPrefix(link, "/")
	if rel == "" || strings.HasSuffix(rel, "/") {
		rel += "index"
	}
	return filepath.Join(dir, filepath.FromSlash(rel)+".md")
}

func endpointTag(ep *EndpointDoc) string {
	p := ep.Props()
	attrs := []string{
		fmt.Sprintf(`method="%s"`, html.EscapeString(p.Method)),
		fmt.Sprintf(`path="%s"`, html.EscapeString(p.Path)),
	}
	if p.Description != "" {
		attrs = append(attrs, fmt.Sprintf(`description="%s"`, html.EscapeString(p.Description)))
	}
	if p.RequiresAuth {
		attrs = append(attrs, `:requires-auth="true"`)
	}
	if p.Example != "" && p.Example != p.Path {
		attrs = append(attrs, fmt.Sprintf(`example="%s"`, html.EscapeString(p.Example)))
	}
	return "<" + theme.EndpointComponentName + " " + strings.Join(attrs, " ") + " />"
}

func visible(g *GroupDoc) int {
	n := 0
	for _, ep := range g.Endpoints {
		if !ep.Hidden {
			n++
		}
	}
	return n
}

func fence(language string) string {
	if language == "curl" {
		return "bash"
	}
	return language
}
