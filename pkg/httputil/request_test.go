package httputil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogQuery struct {
	Group string `schema:"group"`
	Auth  *bool  `schema:"auth"`
}

func TestDecodeQuery(t *testing.T) {
	var q catalogQuery
	r := httptest.NewRequest(http.MethodGet, "/catalog?group=table&auth=false&extra=1", nil)
	require.NoError(t, DecodeQuery(r, &q))
	assert.Equal(t, "table", q.Group)
	require.NotNil(t, q.Auth)
	assert.False(t, *q.Auth)

	r = httptest.NewRequest(http.MethodGet, "/catalog?auth=maybe", nil)
	assert.Error(t, DecodeQuery(r, &catalogQuery{}))
}

func TestQueryValues(t *testing.T) {
	got := QueryValues(url.Values{"db_name": {"shop", "ignored"}, "empty": {}})
	assert.Equal(t, map[string]string{"db_name": "shop"}, got)
}

func TestParsePathString(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/catalog/{key}", func(w http.ResponseWriter, r *http.Request) {
		key, ok := ParsePathStringOrError(w, r, "key")
		require.True(t, ok)
		_, _ = w.Write([]byte(key))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog/LIST_TABLES", nil))
	assert.Equal(t, "LIST_TABLES", w.Body.String())

	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	_, ok := ParsePathStringOrError(w, r, "key")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
