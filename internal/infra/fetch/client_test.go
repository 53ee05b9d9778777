package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get_ParamsAndHeaders(t *testing.T) {
	reqs := make(chan *http.Request, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqs <- r.Clone(context.Background())
		_, _ = w.Write([]byte(`[{"id":"1"}]`))
	}))
	defer srv.Close()

	c := New(0)
	var out []map[string]string
	err := c.Get(context.Background(), srv.URL+"/runs", map[string]any{"size": 1000, "page": 0}, map[string]string{"psdevslnsys": "sys-1"}, &out)

	require.NoError(t, err)
	got := <-reqs
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "1000", got.URL.Query().Get("size"))
	assert.Equal(t, "0", got.URL.Query().Get("page"))
	assert.Equal(t, ContentTypeJSON, got.Header.Get(HeaderContentType))
	assert.Equal(t, "sys-1", got.Header.Get("psdevslnsys"))
	assert.NotEmpty(t, got.Header.Get(HeaderRequestID))
	assert.Equal(t, []map[string]string{{"id": "1"}}, out)
}

func TestClient_Post_BodyAndQueryMerge(t *testing.T) {
	type captured struct {
		body  map[string]any
		query string
	}
	seen := make(chan captured, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var c captured
		c.query = r.URL.RawQuery
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &c.body)
		seen <- c
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(0)
	err := c.Post(context.Background(), srv.URL+"/x?size=1000", map[string]any{"page": 0}, map[string]any{"n_psdevslnid_eq": "sln"}, nil, nil)

	require.NoError(t, err)
	c2 := <-seen
	assert.Contains(t, c2.query, "size=1000")
	assert.Contains(t, c2.query, "page=0")
	assert.Equal(t, "sln", c2.body["n_psdevslnid_eq"])
}

func TestClient_EmptyBodyIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	var out bool
	err := New(0).Post(context.Background(), srv.URL, nil, nil, nil, &out)

	require.NoError(t, err)
	assert.False(t, out)
}

func TestClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"solution not found"}`))
	}))
	defer srv.Close()

	err := New(0).Get(context.Background(), srv.URL, nil, nil, nil)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "solution not found", httpErr.Message)
	assert.Contains(t, err.Error(), "400")
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	err := New(0).Get(context.Background(), addr, nil, nil, nil)

	require.Error(t, err)
	var httpErr *HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	var out []string
	err := New(0).Get(context.Background(), srv.URL, nil, nil, &out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"m"}`, "m"},
		{"error field", `{"error":"e"}`, "e"},
		{"title field", `{"title":"t"}`, "t"},
		{"plain text", "  oops \n", "oops"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage([]byte(tt.body)))
		})
	}
}
