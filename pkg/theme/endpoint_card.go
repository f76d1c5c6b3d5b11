package theme

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/muzilix/dbapi-docs/pkg/endpoints"
)

// EndpointComponentName is the name pages use for the endpoint card
const EndpointComponentName = "ApiEndpoint"

// EndpointProps are the display props of an endpoint card
type EndpointProps struct {
	Method       string `json:"method"`
	Path         string `json:"path"`
	Description  string `json:"description,omitempty"`
	RequiresAuth bool   `json:"requiresAuth"`
	// Example is a concrete path with placeholders substituted. When empty
	// the card links the template path.
	Example string `json:"example,omitempty"`
}

// PropsFor builds card props from a descriptor and an example path
func PropsFor(d endpoints.Descriptor, example string) EndpointProps {
	return EndpointProps{
		Method:       d.Method.String(),
		Path:         d.Path.String(),
		Description:  d.Description,
		RequiresAuth: d.RequiresAuth,
		Example:      example,
	}
}

// EndpointCard renders a styled card for one endpoint
type EndpointCard struct {
	template *template.Template
}

// NewEndpointCard creates the card component
func NewEndpointCard() *EndpointCard {
	tmpl := template.Must(template.New("endpoint-card").Funcs(template.FuncMap{
		"lower": strings.ToLower,
	}).Parse(endpointCardTemplate))

	return &EndpointCard{template: tmpl}
}

// Render accepts EndpointProps, *EndpointProps or endpoints.Descriptor
func (c *EndpointCard) Render(rc RenderContext, props any) (template.HTML, error) {
	var p EndpointProps
	switch v := props.(type) {
	case EndpointProps:
		p = v
	case *EndpointProps:
		if v == nil {
			return "", fmt.Errorf("%w: nil props", ErrInvalidComponent)
		}
		p = *v
	case endpoints.Descriptor:
		p = PropsFor(v, "")
	default:
		return "", fmt.Errorf("%w: unsupported props %T", ErrInvalidComponent, props)
	}

	if p.Method == "" || p.Path == "" {
		return "", fmt.Errorf("%w: method and path are required", ErrInvalidComponent)
	}

	target := p.Path
	if p.Example != "" {
		target = p.Example
	}
	base, _ := APIBaseURL(rc)

	data := struct {
		EndpointProps
		URL string
	}{
		EndpointProps: p,
		URL:           base + target,
	}

	var buf bytes.Buffer
	if err := c.template.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return template.HTML(buf.String()), nil
}

const endpointCardTemplate = `<div class="api-endpoint api-endpoint--{{ lower .Method }}">
  <div class="api-endpoint__header">
    <span class="api-endpoint__method">{{ .Method }}</span>
    <code class="api-endpoint__path">{{ .Path }}</code>
    {{- if .RequiresAuth }}
    <span class="api-endpoint__badge" title="需要认证">🔒 需要认证</span>
    {{- end }}
  </div>
  {{- if .Description }}
  <p class="api-endpoint__description">{{ .Description }}</p>
  {{- end }}
  <pre class="api-endpoint__url"><code>{{ .Method }} {{ .URL }}</code></pre>
</div>`
