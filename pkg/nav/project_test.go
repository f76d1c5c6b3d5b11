package nav

import (
	"strings"
	"testing"

	"github.com/muzilix/dbapi-docs/pkg/endpoints"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidebarFor_API(t *testing.T) {
	m, err := DefaultModel(endpoints.Default())
	require.NoError(t, err)

	groups, err := m.SidebarFor("/api/")
	require.NoError(t, err)

	var titles []string
	for _, g := range groups {
		titles = append(titles, g.Title)
	}
	assert.Equal(t, []string{"健康检查", "数据库管理", "表操作", "数据操作", "批量操作", "备份恢复", "监控统计", "用户管理", "AI 增强"}, titles)
}

func TestFromRegistry(t *testing.T) {
	reg := endpoints.Default()
	section := FromRegistry("api", reg)

	assert.Equal(t, "/api/", section.Prefix)
	require.Len(t, section.Groups, len(reg.Groups()))

	backup := section.Groups[5]
	assert.Equal(t, "备份恢复", backup.Title)
	assert.True(t, backup.Collapsed)
	require.Len(t, backup.Items, 8)
	assert.Equal(t, Item{Text: OverviewText, Link: "/api/backup/"}, backup.Items[0])
	assert.Equal(t, "/api/backup/backup-database", backup.Items[1].Link)
	assert.Equal(t, "/api/backup/get-backup-tasks", backup.Items[7].Link)

	for _, g := range section.Groups {
		for _, it := range g.Items {
			assert.True(t, strings.HasPrefix(it.Link, "/api/"), it.Link)
		}
	}
}

func TestFromRegistry_SkipsHidden(t *testing.T) {
	section := FromRegistry(APIPrefix, endpoints.Default())
	for _, g := range section.Groups {
		for _, it := range g.Items {
			assert.NotEqual(t, "/api/database/debug-database-info", it.Link)
		}
	}
}

func TestFromRegistry_FallsBackToKey(t *testing.T) {
	reg := endpoints.MustNewRegistry(
		[]endpoints.Group{{Tag: "misc", Title: "Misc"}},
		[]endpoints.Entry{{Key: "PING", Group: "misc", Descriptor: endpoints.Descriptor{
			Method: endpoints.MethodGet, Path: endpoints.MustParseTemplate("/ping"),
		}}},
	)
	section := FromRegistry(APIPrefix, reg)
	assert.Equal(t, Item{Text: "PING", Link: "/api/misc/ping"}, section.Groups[0].Items[1])
}

func TestAssemble(t *testing.T) {
	reg := endpoints.Default()

	t.Run("replaces placeholder in place", func(t *testing.T) {
		m, err := Assemble(reg, APIPrefix, DefaultSections())
		require.NoError(t, err)
		assert.Equal(t, []string{"/guide/", "/api/", "/examples/", "/reference/"}, m.Sections())
	})

	t.Run("appends when missing", func(t *testing.T) {
		m, err := Assemble(reg, "/reference-api/", DefaultSections()[:1])
		require.NoError(t, err)
		assert.Equal(t, []string{"/guide/", "/reference-api/"}, m.Sections())
	})
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "create-database", Slug("CREATE_DATABASE"))
	assert.Equal(t, "health", Slug("HEALTH"))
	assert.Equal(t, "/api/ai/ai-nl-execute", EndpointLink("/api/", "ai", "AI_NL_EXECUTE"))
}
