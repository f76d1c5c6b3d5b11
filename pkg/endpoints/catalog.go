package endpoints

import "sync"

// Group tags of the built-in catalog
const (
	GroupHealth   = "health"
	GroupDatabase = "database"
	GroupTable    = "table"
	GroupData     = "data"
	GroupBatch    = "batch"
	GroupBackup   = "backup"
	GroupStats    = "stats"
	GroupUsers    = "users"
	GroupAI       = "ai"
)

var catalogGroups = []Group{
	{Tag: GroupHealth, Title: "健康检查"},
	{Tag: GroupDatabase, Title: "数据库管理"},
	{Tag: GroupTable, Title: "表操作"},
	{Tag: GroupData, Title: "数据操作"},
	{Tag: GroupBatch, Title: "批量操作", Collapsed: true},
	{Tag: GroupBackup, Title: "备份恢复", Collapsed: true},
	{Tag: GroupStats, Title: "监控统计", Collapsed: true},
	{Tag: GroupUsers, Title: "用户管理", Collapsed: true},
	{Tag: GroupAI, Title: "AI 增强", Collapsed: true},
}

func entry(key, group string, method Method, path, description string, auth bool) Entry {
	return Entry{
		Key:   key,
		Group: group,
		Descriptor: Descriptor{
			Method:       method,
			Path:         MustParseTemplate(path),
			Description:  description,
			RequiresAuth: auth,
		},
	}
}

func hidden(e Entry) Entry {
	e.Hidden = true
	return e
}

var catalogEntries = []Entry{
	entry("HEALTH", GroupHealth, MethodGet, "/health", "服务健康检查", false),

	// authentication lives under user management
	entry("REGISTER", GroupUsers, MethodPost, "/auth/register", "注册新用户", false),
	entry("LOGIN", GroupUsers, MethodPost, "/auth/login", "登录并获取 API Key", false),
	entry("LOGOUT", GroupUsers, MethodPost, "/auth/logout", "注销当前会话", true),
	entry("GET_PROFILE", GroupUsers, MethodGet, "/auth/profile", "获取当前用户信息", true),
	entry("CHANGE_PASSWORD", GroupUsers, MethodPost, "/auth/change-password", "修改密码", true),

	entry("CREATE_DATABASE", GroupDatabase, MethodPost, "/create", "创建数据库", true),
	entry("LIST_DATABASES", GroupDatabase, MethodGet, "/databases", "列出数据库", true),
	entry("DELETE_DATABASE", GroupDatabase, MethodDelete, "/database/{db_name}", "删除数据库", true),
	entry("GET_DATABASE_INFO", GroupDatabase, MethodGet, "/database/{db_name}/info", "获取数据库信息", true),
	hidden(entry("DEBUG_DATABASE_INFO", GroupDatabase, MethodGet, "/debug/database/{db_name}", "调试数据库信息", true)),

	entry("LIST_TABLES", GroupTable, MethodGet, "/database/{db_name}/tables", "列出数据表", true),
	entry("CREATE_TABLE", GroupTable, MethodPost, "/database/{db_name}/table", "创建数据表", true),
	entry("GET_TABLE_STRUCTURE", GroupTable, MethodGet, "/database/{db_name}/table/{table_name}/structure", "获取表结构", true),

	entry("INSERT_DATA", GroupData, MethodPost, "/database/{db_name}/table/{table_name}/data", "插入数据", true),
	entry("QUERY_DATA", GroupData, MethodGet, "/database/{db_name}/table/{table_name}/data", "查询数据", true),
	entry("EXECUTE_QUERY", GroupData, MethodPost, "/database/{db_name}/query", "执行 SQL 查询", true),
	entry("GET_TABLES_INFO", GroupData, MethodGet, "/database/{db_name}/tables-info", "获取所有表信息", true),
	entry("GET_QUERY_EXAMPLES", GroupData, MethodGet, "/database/{db_name}/query-examples", "获取查询示例", true),

	entry("BATCH_UPDATE", GroupBatch, MethodPost, "/database/{db_name}/batch/update", "批量更新", true),
	entry("BATCH_DELETE", GroupBatch, MethodPost, "/database/{db_name}/batch/delete", "批量删除", true),
	entry("EXPORT_DATA", GroupBatch, MethodPost, "/database/{db_name}/export", "导出数据", true),
	entry("IMPORT_DATA", GroupBatch, MethodPost, "/database/{db_name}/import", "导入数据", true),
	entry("DOWNLOAD_EXPORT", GroupBatch, MethodGet, "/download/export/{filename}", "下载导出文件", true),

	entry("BACKUP_DATABASE", GroupBackup, MethodPost, "/database/{db_name}/backup", "备份数据库", true),
	entry("LIST_BACKUPS", GroupBackup, MethodGet, "/database/{db_name}/backups", "列出备份", true),
	entry("DOWNLOAD_BACKUP", GroupBackup, MethodGet, "/backup/{filename}", "下载备份文件", true),
	entry("DELETE_BACKUP", GroupBackup, MethodDelete, "/backup/{filename}", "删除备份文件", true),
	entry("ENABLE_AUTO_BACKUP", GroupBackup, MethodPost, "/database/{db_name}/backup/auto", "启用自动备份", true),
	entry("GET_BACKUP_STATUS", GroupBackup, MethodGet, "/database/{db_name}/backup/{backup_id}/status", "查询备份任务状态", true),
	entry("GET_BACKUP_TASKS", GroupBackup, MethodGet, "/database/{db_name}/backup/tasks", "列出备份任务", true),

	entry("GET_DATABASE_STATS", GroupStats, MethodGet, "/stats/database", "数据库统计概览", true),
	entry("GET_DATABASE_DETAILED_STATS", GroupStats, MethodGet, "/stats/database/{db_name}", "单个数据库详细统计", true),
	entry("GET_PERFORMANCE_STATS", GroupStats, MethodGet, "/stats/performance", "性能统计", true),
	entry("GET_QUERY_ANALYSIS", GroupStats, MethodGet, "/stats/query-analysis", "查询分析", true),
	entry("GET_API_USAGE_STATS", GroupStats, MethodGet, "/stats/api-usage", "API 使用统计", true),
	entry("GET_SYSTEM_STATS", GroupStats, MethodGet, "/stats/system", "系统资源统计", true),
	entry("GET_STATS_SUMMARY", GroupStats, MethodGet, "/stats/summary", "统计汇总", true),

	entry("CREATE_USER", GroupUsers, MethodPost, "/admin/users", "创建用户（管理员）", true),
	entry("LIST_USERS", GroupUsers, MethodGet, "/admin/users", "列出用户（管理员）", true),
	entry("UPDATE_USER", GroupUsers, MethodPut, "/admin/users/{user_id}", "更新用户（管理员）", true),
	entry("DELETE_USER", GroupUsers, MethodDelete, "/admin/users/{user_id}", "删除用户（管理员）", true),
	entry("LIST_API_KEYS", GroupUsers, MethodGet, "/admin/api-keys", "列出 API Key（管理员）", true),
	entry("REVOKE_API_KEY", GroupUsers, MethodPost, "/admin/api-keys/{api_key}/revoke", "吊销 API Key（管理员）", true),
	entry("LIST_USER_API_KEYS", GroupUsers, MethodGet, "/admin/api-keys/{user_id}", "列出指定用户的 API Key（管理员）", true),
	entry("SEARCH_USERS", GroupUsers, MethodGet, "/admin/users/search", "搜索用户（管理员）", true),
	entry("GRANT_DATABASE_PERMISSION", GroupUsers, MethodPost, "/admin/database-permissions", "授予数据库权限（管理员）", true),
	entry("GET_SYSTEM_STATS_ADMIN", GroupUsers, MethodGet, "/admin/system-stats", "系统统计（管理员）", true),
	entry("RESET_USER_PASSWORD", GroupUsers, MethodPost, "/admin/users/{user_id}/reset-password", "重置用户密码（管理员）", true),
	entry("GET_MY_DATABASES", GroupUsers, MethodGet, "/user/databases", "我的数据库", true),

	entry("AI_ROUTER", GroupAI, MethodPost, "/ai/router", "AI 路由：根据意图选择接口", true),
	entry("AI_EXECUTE", GroupAI, MethodPost, "/ai/execute", "AI 执行接口调用", true),
	entry("AI_NL_EXECUTE", GroupAI, MethodPost, "/ai/nl-execute", "自然语言执行", true),
	entry("AI_LIST_ENDPOINTS", GroupAI, MethodGet, "/ai/endpoints", "列出 AI 可调用的接口", true),
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the built-in catalog of the database-management API.
// It is built on first use and shared afterwards.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = MustNewRegistry(catalogGroups, catalogEntries)
	})
	return defaultRegistry
}

// ExampleValues are the placeholder values used when rendering example
// requests in the documentation.
var ExampleValues = map[string]string{
	"db_name":    "shop",
	"table_name": "orders",
	"filename":   "shop_20240101.sql.gz",
	"backup_id":  "42",
	"user_id":    "1001",
	"api_key":    "sk_example",
}

// ExampleValuesFor returns the subset of ExampleValues the template uses
func ExampleValuesFor(t PathTemplate) map[string]string {
	values := make(map[string]string)
	for _, p := range t.Params() {
		if v, ok := ExampleValues[p]; ok {
			values[p] = v
		}
	}
	return values
}
