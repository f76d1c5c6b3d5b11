package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muzilix/dbapi-docs/pkg/config"
	"github.com/muzilix/dbapi-docs/pkg/docs"
	"github.com/muzilix/dbapi-docs/pkg/endpoints"
)

func newTestEnv() (*Env, *bytes.Buffer) {
	var out bytes.Buffer
	return &Env{Out: &out, Log: NewLogger("error", io.Discard)}, &out
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	env, out := newTestEnv()
	err := NewRootCommand(env).ExecuteArgs(args)
	return out.String(), err
}

// writeSite lays out a site with a one-page guide sidebar and returns the
// config path.
func writeSite(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "guide"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "guide", "index.md"), []byte("# 介绍\n"), 0o644))

	path = filepath.Join(dir, "docsgen.yaml")
	cfg := fmt.Sprintf(`title: DBAPI
api_base_url: https://api.example.com/
src_dir: %s
out_dir: %s
sidebars:
  - prefix: /guide/
    groups:
      - title: 开始
        items:
          - text: 介绍
            link: /guide/
`, filepath.Join(dir, "src"), filepath.Join(dir, "dist"))
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return dir, path
}

func TestRoot_UnknownCommand(t *testing.T) {
	_, err := run(t, "publish")
	assert.EqualError(t, err, "unknown command: publish")
}

func TestRoot_Usage(t *testing.T) {
	var buf bytes.Buffer
	env, _ := newTestEnv()
	require.NoError(t, NewRootCommand(env).usage(&buf))

	out := buf.String()
	for _, name := range []string{"build", "check", "diff", "endpoints", "path", "serve"} {
		assert.Contains(t, out, name)
	}
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("build")), bytes.Index(buf.Bytes(), []byte("serve")))
}

func TestBuild(t *testing.T) {
	dir, path := writeSite(t)

	out, err := run(t, "build", "-config", path)
	require.NoError(t, err)
	assert.Equal(t, "0 errors, 1 warnings\n", out)

	assert.FileExists(t, filepath.Join(dir, "src", "api", "health", "index.md"))
	assert.FileExists(t, filepath.Join(dir, "dist", SiteConfigFile))

	raw, err := os.ReadFile(filepath.Join(dir, "dist", SiteConfigFile))
	require.NoError(t, err)
	var manifest docs.SiteManifest
	require.NoError(t, json.Unmarshal(raw, &manifest))
	assert.Equal(t, "https://api.example.com", manifest.APIBaseURL)
	assert.Contains(t, manifest.ThemeConfig.Sidebar, "/api/")
	assert.Contains(t, manifest.ThemeConfig.Sidebar, "/guide/")
}

func TestBuild_StrictFailsOnHiddenEndpoint(t *testing.T) {
	dir, path := writeSite(t)

	_, err := run(t, "build", "-config", path, "-strict")
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "dist", SiteConfigFile))
}

func TestCheck_DanglingLinks(t *testing.T) {
	_, path := writeSite(t)

	// check does not write the API pages, so every API link dangles
	_, err := run(t, "check", "-config", path)
	require.Error(t, err)
}

func TestCheck_AfterBuild(t *testing.T) {
	_, path := writeSite(t)

	_, err := run(t, "build", "-config", path)
	require.NoError(t, err)

	out, err := run(t, "check", "-config", path)
	require.NoError(t, err)
	assert.Equal(t, "0 errors, 1 warnings\n", out)
}

func TestEndpoints_Table(t *testing.T) {
	out, err := run(t, "endpoints", "-group", endpoints.GroupHealth)
	require.NoError(t, err)

	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "HEALTH")
	assert.NotContains(t, out, "LIST_DATABASES")
}

func TestEndpoints_JSONSnapshot(t *testing.T) {
	out, err := run(t, "endpoints", "-json")
	require.NoError(t, err)

	reg, err := endpoints.ReadSnapshot(bytes.NewBufferString(out))
	require.NoError(t, err)
	assert.Equal(t, endpoints.Default().Keys(), reg.Keys())
}

func TestEndpoints_GroupSnapshotFeedsDiff(t *testing.T) {
	out, err := run(t, "endpoints", "-json", "-group", endpoints.GroupBackup)
	require.NoError(t, err)

	reg, err := endpoints.ReadSnapshot(bytes.NewBufferString(out))
	require.NoError(t, err)
	require.Len(t, reg.Groups(), 1)
	assert.Equal(t, endpoints.GroupBackup, reg.Groups()[0].Tag)
	assert.Equal(t, 7, reg.Len())

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))

	// every other group shows up as added, which is not breaking
	diffOut, err := run(t, "diff", "-base", path, "-fail-on-breaking")
	require.NoError(t, err)
	assert.Contains(t, diffOut, "LIST_DATABASES")
}

func TestEndpoints_UnknownGroup(t *testing.T) {
	_, err := run(t, "endpoints", "-json", "-group", "billing")
	assert.ErrorIs(t, err, endpoints.ErrUnknownGroup)
}

func TestPath(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{
			name: "single placeholder",
			args: []string{"LIST_TABLES", "db_name=shop"},
			want: "/database/shop/tables\n",
		},
		{
			name:    "missing value",
			args:    []string{"LIST_TABLES"},
			wantErr: endpoints.ErrMissingPlaceholderValue,
		},
		{
			name:    "extra value",
			args:    []string{"LIST_DATABASES", "db_name=shop"},
			wantErr: endpoints.ErrUnknownPlaceholder,
		},
		{
			name:    "unknown key",
			args:    []string{"DROP_EVERYTHING"},
			wantErr: endpoints.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"path"}, tt.args...)...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestPath_Full(t *testing.T) {
	_, path := writeSite(t)

	out, err := run(t, "path", "-full", "-config", path, "LIST_TABLES", "db_name=shop")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/database/shop/tables\n", out)
}

func TestPath_BadAssignment(t *testing.T) {
	_, err := run(t, "path", "LIST_TABLES", "shop")
	assert.ErrorContains(t, err, "expected name=value")
}

func writeSnapshot(t *testing.T, snap endpoints.Snapshot) string {
	t.Helper()
	reg, err := endpoints.NewRegistry(snap.Groups, snap.Entries)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "snapshot.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, reg.WriteSnapshot(f))
	return path
}

func TestDiff_NoChanges(t *testing.T) {
	path := writeSnapshot(t, endpoints.Default().Snapshot())

	out, err := run(t, "diff", "-base", path, "-fail-on-breaking")
	require.NoError(t, err)
	assert.Contains(t, out, "无接口变更")
}

func TestDiff_RemovedEndpointIsBreaking(t *testing.T) {
	snap := endpoints.Default().Snapshot()
	snap.Entries = append(snap.Entries, endpoints.Entry{
		Key:   "LEGACY_EXPORT",
		Group: endpoints.GroupData,
		Descriptor: endpoints.Descriptor{
			Method:       endpoints.MethodGet,
			Path:         endpoints.MustParseTemplate("/legacy/export"),
			RequiresAuth: true,
		},
	})
	path := writeSnapshot(t, snap)

	out, err := run(t, "diff", "-base", path, "-heading", "v2.0.0")
	require.NoError(t, err)
	assert.Contains(t, out, "## v2.0.0")
	assert.Contains(t, out, "破坏性变更")
	assert.Contains(t, out, "LEGACY_EXPORT")

	_, err = run(t, "diff", "-base", path, "-fail-on-breaking")
	assert.ErrorContains(t, err, "1 breaking changes")
}

func TestDiff_RequiresBase(t *testing.T) {
	_, err := run(t, "diff")
	assert.EqualError(t, err, "-base is required")
}

func TestWriteSiteConfig(t *testing.T) {
	cfg := config.DefaultSiteConfig()
	model, err := cfg.NavModel(endpoints.Default())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), SiteConfigFile)
	require.NoError(t, writeSiteConfig(path, cfg, model))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))

	err = writeSiteConfig(filepath.Join(t.TempDir(), "missing", SiteConfigFile), cfg, model)
	assert.ErrorContains(t, err, "failed to create")
}

func TestWriteSiteConfig_ReportsWriteFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	cfg := config.DefaultSiteConfig()
	model, err := cfg.NavModel(endpoints.Default())
	require.NoError(t, err)

	assert.Error(t, writeSiteConfig("/dev/full", cfg, model))
}

func TestInit_WritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsgen.yaml")

	out, err := run(t, "init", "-config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.LoadSiteConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSiteConfig().APIBaseURL, cfg.APIBaseURL)

	_, err = run(t, "init", "-config", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "init", "-config", path, "-force")
	assert.NoError(t, err)
}
