package httputil

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
)

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// DecodeQuery decodes URL query parameters into dest using `schema` tags
func DecodeQuery(r *http.Request, dest interface{}) error {
	if err := queryDecoder.Decode(dest, r.URL.Query()); err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}
	return nil
}

// QueryValues flattens the query into single values, keeping the first of
// any repeated key.
func QueryValues(q url.Values) map[string]string {
	out := make(map[string]string, len(q))
	for k, vs := range q {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}

// ParsePathString extracts a non-empty path variable
func ParsePathString(r *http.Request, key string) (string, error) {
	value, ok := mux.Vars(r)[key]
	if !ok || value == "" {
		return "", fmt.Errorf("missing %s parameter", key)
	}
	return value, nil
}

// ParsePathStringOrError extracts a path variable or writes a 400 response
func ParsePathStringOrError(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	value, err := ParsePathString(r, key)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return "", false
	}
	return value, true
}
