package examples

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/muzilix/dbapi-docs/pkg/endpoints"
)

//go:embed templates/*/*.tmpl
var templateFS embed.FS

// Languages lists the supported example languages in display order
var Languages = []string{"curl", "python", "javascript"}

// ErrUnknownLanguage is returned for a language with no template
var ErrUnknownLanguage = errors.New("unknown example language")

// Generator renders request examples for catalog endpoints
type Generator struct {
	baseURL   string
	templates map[string]*template.Template
}

// NewGenerator loads the embedded templates. baseURL must already be
// normalized (no trailing slash).
func NewGenerator(baseURL string) (*Generator, error) {
	g := &Generator{
		baseURL:   baseURL,
		templates: make(map[string]*template.Template, len(Languages)),
	}

	for _, lang := range Languages {
		tmplPath := fmt.Sprintf("templates/%s/request.tmpl", lang)
		tmplContent, err := templateFS.ReadFile(tmplPath)
		if err != nil {
			return nil, fmt.Errorf("missing template for %s: %w", lang, err)
		}

		tmpl, err := template.New(lang).Parse(string(tmplContent))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template for %s: %w", lang, err)
		}
		g.templates[lang] = tmpl
	}

	return g, nil
}

// Generate renders the example for key's descriptor in language. The path is
// filled from endpoints.ExampleValues.
func (g *Generator) Generate(language, key string, d endpoints.Descriptor) (string, error) {
	tmpl, ok := g.templates[language]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownLanguage, language)
	}

	path, err := endpoints.RenderExamplePath(d, endpoints.ExampleValuesFor(d.Path))
	if err != nil {
		return "", fmt.Errorf("failed to render example path for %s: %w", key, err)
	}

	data := ExampleData{
		Language:     language,
		Key:          key,
		Description:  describe(key, d),
		Method:       d.Method.String(),
		URL:          g.baseURL + path,
		RequiresAuth: d.RequiresAuth,
		HasBody:      hasBody(d.Method),
		Install:      installInfo(language),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n") + "\n", nil
}

// GenerateAll renders the example in every language
func (g *Generator) GenerateAll(key string, d endpoints.Descriptor) ([]Snippet, error) {
	out := make([]Snippet, 0, len(Languages))
	for _, lang := range Languages {
		code, err := g.Generate(lang, key, d)
		if err != nil {
			return nil, err
		}
		out = append(out, Snippet{Language: lang, Code: code})
	}
	return out, nil
}

func describe(key string, d endpoints.Descriptor) string {
	if d.Description != "" {
		return d.Description
	}
	return key
}

func hasBody(m endpoints.Method) bool {
	switch m {
	case endpoints.MethodPost, endpoints.MethodPut, endpoints.MethodPatch:
		return true
	default:
		return false
	}
}

func installInfo(language string) PackageManagerInfo {
	switch language {
	case "python":
		return PackageManagerInfo{
			Command:        "pip install",
			PackageName:    "requests",
			InstallExample: "pip install requests",
		}
	case "javascript":
		return PackageManagerInfo{
			Command:        "node",
			InstallExample: "Node.js 18+ (built-in fetch)",
		}
	default:
		return PackageManagerInfo{}
	}
}
