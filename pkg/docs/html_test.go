package docs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muzilix/dbapi-docs/pkg/theme"
)

func newHTMLExporter(t *testing.T, baseURL string) *HTMLExporter {
	t.Helper()
	engine := theme.NewEngine()
	require.NoError(t, theme.NewExtension().Initialize(engine, baseURL))
	return NewHTMLExporter(engine)
}

func TestHTMLExporter_Export(t *testing.T) {
	doc := generate(t)
	page, err := newHTMLExporter(t, "https://staging.example.com").Export(doc)
	require.NoError(t, err)

	assert.Contains(t, page, "<code>https://staging.example.com</code>")
	assert.Contains(t, page, `<section id="table">`)
	assert.Contains(t, page, "https://staging.example.com/database/shop/tables")
	assert.NotContains(t, page, "/debug/database/")
	// one card per visible endpoint
	assert.Equal(t, doc.Count()-1, strings.Count(page, `class="api-endpoint `))
}

func TestHTMLExporter_WithoutExtension(t *testing.T) {
	_, err := NewHTMLExporter(theme.NewEngine()).Export(generate(t))
	assert.ErrorIs(t, err, theme.ErrUnknownComponent)
}

func TestHTMLExporter_ExportEndpoint(t *testing.T) {
	ep, ok := generate(t).Endpoint("LOGIN")
	require.True(t, ok)

	card, err := newHTMLExporter(t, theme.DefaultBaseURL).ExportEndpoint(ep)
	require.NoError(t, err)
	assert.Contains(t, string(card), theme.DefaultBaseURL+"/auth/login")
	assert.NotContains(t, string(card), "需要认证")
}
