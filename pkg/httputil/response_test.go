package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, WriteJSON(w, http.StatusOK, map[string]string{"path": "/db/<x>"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"path":"/db/<x>"}`, w.Body.String())
	assert.Contains(t, w.Body.String(), "<x>")
}

func TestWriteHTML(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, WriteHTML(w, http.StatusOK, "<div>card</div>"))
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "<div>card</div>", w.Body.String())
}

func TestWriteErrors(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		msg    string
	}{
		{"error", func(w http.ResponseWriter) { WriteError(w, http.StatusTeapot, errors.New("brew")) }, http.StatusTeapot, "brew"},
		{"not found", func(w http.ResponseWriter) { WriteNotFoundError(w, "gone") }, http.StatusNotFound, "gone"},
		{"bad request", func(w http.ResponseWriter) { WriteBadRequest(w, "bad") }, http.StatusBadRequest, "bad"},
		{"internal", func(w http.ResponseWriter) { WriteInternalError(w, errors.New("oops")) }, http.StatusInternalServerError, "oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)
			assert.Equal(t, tt.status, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.msg, resp.Error)
		})
	}
}

func TestWriteDetailedError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteDetailedError(w, http.StatusBadRequest, errors.New("missing value"), map[string]string{"placeholder": "db_name"})

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "db_name", resp.Details["placeholder"])
}
