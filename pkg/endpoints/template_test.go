package endpoints

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		segments []Segment
		wantErr  bool
	}{
		{name: "root", input: "/"},
		{name: "single literal", input: "/health", segments: []Segment{{Literal: "health"}}},
		{
			name:  "placeholders",
			input: "/database/{db_name}/table/{table_name}/structure",
			segments: []Segment{
				{Literal: "database"}, {Param: "db_name"},
				{Literal: "table"}, {Param: "table_name"},
				{Literal: "structure"},
			},
		},
		{name: "trailing slash", input: "/api/", segments: []Segment{{Literal: "api"}}},
		{name: "hyphenated literal", input: "/auth/change-password", segments: []Segment{{Literal: "auth"}, {Literal: "change-password"}}},
		{name: "empty", input: "", wantErr: true},
		{name: "no leading slash", input: "health", wantErr: true},
		{name: "whitespace", input: "/data base", wantErr: true},
		{name: "tab", input: "/data\tbase", wantErr: true},
		{name: "double slash", input: "/database//info", wantErr: true},
		{name: "only slashes", input: "//", wantErr: true},
		{name: "query", input: "/health?x=1", wantErr: true},
		{name: "unterminated", input: "/database/{db_name", wantErr: true},
		{name: "partial segment", input: "/database/db_{name}", wantErr: true},
		{name: "stray brace", input: "/database/}", wantErr: true},
		{name: "empty name", input: "/database/{}", wantErr: true},
		{name: "bad name", input: "/database/{db-name}", wantErr: true},
		{name: "leading digit", input: "/database/{1db}", wantErr: true},
		{name: "duplicate", input: "/database/{db_name}/copy/{db_name}", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := ParseTemplate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidTemplate))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, tmpl.String())
			assert.Equal(t, tt.segments, tmpl.Segments())
		})
	}
}

func TestPathTemplate_Render(t *testing.T) {
	tmpl := MustParseTemplate("/database/{db_name}/table/{table_name}/structure")

	t.Run("all values", func(t *testing.T) {
		path, err := tmpl.Render(map[string]string{"db_name": "shop", "table_name": "orders"})
		require.NoError(t, err)
		assert.Equal(t, "/database/shop/table/orders/structure", path)
	})

	t.Run("missing value", func(t *testing.T) {
		_, err := tmpl.Render(map[string]string{"db_name": "shop"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingPlaceholderValue)
		assert.Contains(t, err.Error(), "table_name")
	})

	t.Run("empty value counts as missing", func(t *testing.T) {
		_, err := tmpl.Render(map[string]string{"db_name": "shop", "table_name": ""})
		assert.ErrorIs(t, err, ErrMissingPlaceholderValue)
	})

	t.Run("unknown value", func(t *testing.T) {
		_, err := tmpl.Render(map[string]string{"db_name": "shop", "table_name": "orders", "user_id": "1"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownPlaceholder)
		assert.Contains(t, err.Error(), "user_id")

		var pe *PlaceholderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "user_id", pe.Name)
		assert.Equal(t, tmpl.String(), pe.Template)
	})

	t.Run("missing reported before unknown", func(t *testing.T) {
		_, err := tmpl.Render(map[string]string{"db_name": "shop", "extra": "x"})
		assert.ErrorIs(t, err, ErrMissingPlaceholderValue)
	})

	t.Run("values are escaped", func(t *testing.T) {
		path, err := tmpl.Render(map[string]string{"db_name": "my shop", "table_name": "a/b"})
		require.NoError(t, err)
		assert.Equal(t, "/database/my%20shop/table/a%2Fb/structure", path)
	})

	t.Run("no placeholders", func(t *testing.T) {
		path, err := MustParseTemplate("/health").Render(nil)
		require.NoError(t, err)
		assert.Equal(t, "/health", path)
	})

	t.Run("root and trailing slash", func(t *testing.T) {
		path, err := MustParseTemplate("/").Render(nil)
		require.NoError(t, err)
		assert.Equal(t, "/", path)

		path, err = MustParseTemplate("/backup/{filename}/").Render(map[string]string{"filename": "x.gz"})
		require.NoError(t, err)
		assert.Equal(t, "/backup/x.gz/", path)
	})
}

func TestPathTemplate_Params(t *testing.T) {
	tmpl := MustParseTemplate("/database/{db_name}/backup/{backup_id}/status")
	assert.Equal(t, []string{"db_name", "backup_id"}, tmpl.Params())
	assert.True(t, tmpl.HasParam("backup_id"))
	assert.False(t, tmpl.HasParam("status"))
}

func TestPathTemplate_TextRoundTrip(t *testing.T) {
	var tmpl PathTemplate
	require.NoError(t, tmpl.UnmarshalText([]byte("/backup/{filename}")))
	text, err := tmpl.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "/backup/{filename}", string(text))

	assert.ErrorIs(t, tmpl.UnmarshalText([]byte("backup")), ErrInvalidTemplate)
}

func TestMustParseTemplate_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParseTemplate("no-slash") })
}

func TestPathTemplate_RenderProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		names := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z][a-z0-9_]{0,6}`), 0, 4, rapid.ID[string]).Draw(t, "names")
		literals := rapid.SliceOfN(rapid.StringMatching(`[a-z][a-z0-9-]{0,6}`), len(names)+1, len(names)+1).Draw(t, "literals")

		var tmplText, want strings.Builder
		values := make(map[string]string, len(names))
		for i, lit := range literals {
			tmplText.WriteString("/" + lit)
			want.WriteString("/" + lit)
			if i < len(names) {
				v := rapid.StringMatching(`[A-Za-z0-9]{1,8}`).Draw(t, "value")
				values[names[i]] = v
				tmplText.WriteString("/{" + names[i] + "}")
				want.WriteString("/" + v)
			}
		}

		tmpl, err := ParseTemplate(tmplText.String())
		if err != nil {
			t.Fatalf("parse %q: %v", tmplText.String(), err)
		}
		if got := len(tmpl.Params()); got != len(names) {
			t.Fatalf("expected %d params, got %d", len(names), got)
		}

		got, err := tmpl.Render(values)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if got != want.String() {
			t.Fatalf("expected %q, got %q", want.String(), got)
		}

		if len(names) > 0 {
			drop := rapid.SampledFrom(names).Draw(t, "drop")
			partial := make(map[string]string, len(values))
			for k, v := range values {
				if k != drop {
					partial[k] = v
				}
			}
			if _, err := tmpl.Render(partial); !errors.Is(err, ErrMissingPlaceholderValue) {
				t.Fatalf("expected missing placeholder error, got %v", err)
			}
		}

		values["zz_unused_"+rapid.StringMatching(`[a-z]{1,4}`).Draw(t, "extra")] = "x"
		if _, err := tmpl.Render(values); !errors.Is(err, ErrUnknownPlaceholder) {
			t.Fatalf("expected unknown placeholder error, got %v", err)
		}
	})
}
