package docs

import (
	"fmt"
	"html/template"

	"github.com/muzilix/dbapi-docs/pkg/theme"
)

// HTMLExporter renders a standalone catalog page through the theme engine.
// The engine must already carry the ApiEndpoint component and base URL.
type HTMLExporter struct {
	engine *theme.Engine
}

// NewHTMLExporter creates a new HTML exporter over engine
func NewHTMLExporter(engine *theme.Engine) *HTMLExporter {
	return &HTMLExporter{engine: engine}
}

// Export renders every visible endpoint card grouped by feature area
func (e *HTMLExporter) Export(doc *Documentation) (string, error) {
	out, err := e.engine.ExecutePage("catalog", htmlTemplate, doc)
	if err != nil {
		return "", fmt.Errorf("failed to export HTML: %w", err)
	}
	return out, nil
}

// ExportEndpoint renders the card for a single endpoint
func (e *HTMLExporter) ExportEndpoint(ep *EndpointDoc) (template.HTML, error) {
	return e.engine.Render(theme.EndpointComponentName, ep.Props())
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>API 参考</title>
</head>
<body>
<h1>API 参考</h1>
<p>基础地址 <code>{{ inject "api-base-url" }}</code></p>
{{- range .Groups }}
<section id="{{ .Tag }}">
<h2>{{ .Title }}</h2>
{{- range .Endpoints }}{{ if not .Hidden }}
{{ component "ApiEndpoint" .Props }}
{{- end }}{{ end }}
</section>
{{- end }}
</body>
</html>
`
