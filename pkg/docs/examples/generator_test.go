package examples

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muzilix/dbapi-docs/pkg/endpoints"
)

const base = "https://dbapi.muzilix.cn"

func newGen(t *testing.T) *Generator {
	t.Helper()
	g, err := NewGenerator(base)
	require.NoError(t, err)
	return g
}

func lookup(t *testing.T, key string) endpoints.Descriptor {
	t.Helper()
	d, err := endpoints.Default().Lookup(key)
	require.NoError(t, err)
	return d
}

func TestGenerate_Curl(t *testing.T) {
	g := newGen(t)

	code, err := g.Generate("curl", "HEALTH", lookup(t, "HEALTH"))
	require.NoError(t, err)
	assert.Equal(t, "# 服务健康检查\ncurl -X GET \"https://dbapi.muzilix.cn/health\"\n", code)

	code, err = g.Generate("curl", "CREATE_TABLE", lookup(t, "CREATE_TABLE"))
	require.NoError(t, err)
	assert.Contains(t, code, `curl -X POST "https://dbapi.muzilix.cn/database/shop/table"`)
	assert.Contains(t, code, `-H "X-API-Key: $DBAPI_KEY"`)
	assert.Contains(t, code, `-d '{}'`)
}

func TestGenerate_Python(t *testing.T) {
	code, err := newGen(t).Generate("python", "LIST_TABLES", lookup(t, "LIST_TABLES"))
	require.NoError(t, err)
	assert.Contains(t, code, "# pip install requests")
	assert.Contains(t, code, `"https://dbapi.muzilix.cn/database/shop/tables",`)
	assert.Contains(t, code, `headers={"X-API-Key": os.environ["DBAPI_KEY"]},`)
	assert.NotContains(t, code, "json={}")
}

func TestGenerate_JavaScript(t *testing.T) {
	code, err := newGen(t).Generate("javascript", "INSERT_DATA", lookup(t, "INSERT_DATA"))
	require.NoError(t, err)
	assert.Contains(t, code, `fetch("https://dbapi.muzilix.cn/database/shop/table/orders/data"`)
	assert.Contains(t, code, `method: "POST"`)
	assert.Contains(t, code, "body: JSON.stringify({}),")
}

func TestGenerate_UnknownLanguage(t *testing.T) {
	_, err := newGen(t).Generate("cobol", "HEALTH", lookup(t, "HEALTH"))
	assert.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestGenerateAll_EveryCatalogEntry(t *testing.T) {
	g := newGen(t)
	for e := range endpoints.Default().All() {
		snippets, err := g.GenerateAll(e.Key, e.Descriptor)
		require.NoError(t, err, e.Key)
		require.Len(t, snippets, len(Languages))
		for i, s := range snippets {
			assert.Equal(t, Languages[i], s.Language)
			assert.NotRegexp(t, `/\{[a-z_]+\}`, s.Code, "placeholder left in %s/%s", e.Key, s.Language)
		}
	}
}
