package nav

import (
	"testing"

	"github.com/muzilix/dbapi-docs/pkg/endpoints"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allPages returns a page set holding every link of the model
func allPages(m *Model) *PageSet {
	pages := NewPageSet()
	for _, it := range m.Links() {
		pages.Add(it.Link)
	}
	return pages
}

func findingsOf(r Report, kind FindingKind) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func TestChecker_DefaultSite(t *testing.T) {
	reg := endpoints.Default()
	m, err := DefaultModel(reg)
	require.NoError(t, err)

	report := NewChecker(APIPrefix).Check(m, reg, allPages(m))

	assert.False(t, report.HasErrors())
	assert.Empty(t, findingsOf(report, KindUnreachableEndpoint))

	hidden := findingsOf(report, KindHiddenEndpoint)
	require.Len(t, hidden, 1)
	assert.Equal(t, "DEBUG_DATABASE_INFO", hidden[0].Key)
	assert.Equal(t, SeverityWarning, hidden[0].Severity)

	assert.NoError(t, report.Err(false))
	assert.ErrorIs(t, report.Err(true), ErrCheckFailed)
}

func TestChecker_DanglingLink(t *testing.T) {
	reg := endpoints.Default()
	m, err := DefaultModel(reg)
	require.NoError(t, err)

	pages := allPages(m)
	pages = NewPageSet(removeLink(pages.Links(), "/guide/quick-start")...)

	report := NewChecker(APIPrefix).Check(m, reg, pages)
	dangling := findingsOf(report, KindDanglingLink)
	require.Len(t, dangling, 1)
	assert.Equal(t, "/guide/quick-start", dangling[0].Link)
	assert.Equal(t, "/guide/", dangling[0].Section)
	assert.True(t, report.HasErrors())
	assert.ErrorIs(t, report.Err(false), ErrCheckFailed)
}

func TestChecker_NilPagesSkipsDangling(t *testing.T) {
	reg := endpoints.Default()
	m, err := DefaultModel(reg)
	require.NoError(t, err)

	report := NewChecker(APIPrefix).Check(m, reg, nil)
	assert.Empty(t, findingsOf(report, KindDanglingLink))
}

func TestChecker_UnreachableEndpoint(t *testing.T) {
	reg := endpoints.Default()
	// a hand-written API sidebar that forgot most endpoints
	m, err := NewModel(Section{Prefix: APIPrefix, Groups: []Group{{
		Title: "健康检查",
		Items: []Item{{Text: "健康检查", Link: "/api/health/health"}},
	}}})
	require.NoError(t, err)

	report := NewChecker(APIPrefix).Check(m, reg, nil)
	unreachable := findingsOf(report, KindUnreachableEndpoint)

	// every authenticated endpoint except the hidden one
	assert.Len(t, unreachable, reg.Len()-3-1)
	for _, f := range unreachable {
		assert.NotEqual(t, "HEALTH", f.Key)
		assert.NotEqual(t, "LOGIN", f.Key)
	}
}

func TestChecker_CustomLinksReachEndpoints(t *testing.T) {
	reg := endpoints.Default()
	m, err := NewModel(
		Section{Prefix: GuidePrefix, Groups: []Group{{
			Title: "教程",
			Items: []Item{{Text: "写入数据", Link: "/api/data/insert-data.md#request-body"}},
		}}},
		Section{Prefix: APIPrefix, Groups: []Group{{
			Title: "数据库管理",
			Items: []Item{{Text: "数据库列表", Link: "/api/database/list-databases/"}},
		}}},
	)
	require.NoError(t, err)

	report := NewChecker(APIPrefix).Check(m, reg, nil)
	for _, f := range findingsOf(report, KindUnreachableEndpoint) {
		assert.NotEqual(t, "INSERT_DATA", f.Key)
		assert.NotEqual(t, "LIST_DATABASES", f.Key)
	}
	assert.NotEmpty(t, findingsOf(report, KindUnreachableEndpoint))
}

func TestChecker_DuplicateAndExternalLinks(t *testing.T) {
	reg := endpoints.MustNewRegistry([]endpoints.Group{{Tag: "misc", Title: "Misc"}}, nil)
	m, err := NewModel(Section{Prefix: "/guide/", Groups: []Group{{
		Title: "开始",
		Items: []Item{
			{Text: "介绍", Link: "/guide/"},
			{Text: "介绍", Link: "/guide/index.html"},
			{Text: "GitHub", Link: "https://github.com/example/repo"},
		},
	}}})
	require.NoError(t, err)

	report := NewChecker(APIPrefix).Check(m, reg, NewPageSet("/guide/"))
	assert.Len(t, findingsOf(report, KindDuplicateLink), 1)
	assert.Empty(t, findingsOf(report, KindDanglingLink))
}

func TestReport_Count(t *testing.T) {
	r := Report{Findings: []Finding{
		{Severity: SeverityError},
		{Severity: SeverityWarning},
		{Severity: SeverityWarning},
	}}
	assert.Equal(t, 1, r.Count(SeverityError))
	assert.Equal(t, 2, r.Count(SeverityWarning))
	assert.Contains(t, r.Findings[0].String(), "error")
}

func removeLink(links []string, drop string) []string {
	out := links[:0]
	for _, l := range links {
		if l != drop {
			out = append(out, l)
		}
	}
	return out
}
