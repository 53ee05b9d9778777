package coreapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/runoshun/systask/internal/domain"
	"github.com/runoshun/systask/internal/infra/fetch"
	"github.com/runoshun/systask/internal/session"
	"github.com/runoshun/systask/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	header http.Header
	query  map[string]string
	body   map[string]any
	method string
	path   string
}

func newServer(t *testing.T, status int, response string) (*httptest.Server, chan recorded) {
	t.Helper()
	reqs := make(chan recorded, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{
			method: r.Method,
			path:   r.URL.Path,
			header: r.Header.Clone(),
			query:  map[string]string{},
		}
		for k := range r.URL.Query() {
			rec.query[k] = r.URL.Query().Get(k)
		}
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &rec.body)
		}
		reqs <- rec
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, reqs
}

func newClient(addr string, n domain.Notifier) *Client {
	sess := session.NewCompleted(addr, map[string]string{
		domain.SessionSolutionKey: "sln-1",
		domain.SessionSystemKey:   "sys-1",
	})
	return New(sess, fetch.New(0), n, nil)
}

func TestClient_CurSystemRuns(t *testing.T) {
	srv, reqs := newServer(t, http.StatusOK, `[
		{"pssysdevbktaskid":"t1","pssysdevbktaskname":"build","taskstate":20,"ordervalue":2},
		{"pssysdevbktaskid":"t2","pssysdevbktaskname":"lint","taskstate":10,"ordervalue":1}
	]`)
	n := &testutil.MockNotifier{}

	res := newClient(srv.URL, n).CurSystemRuns(context.Background())

	require.True(t, res.IsOk())
	require.Len(t, res.Value(), 2)
	assert.Equal(t, domain.TaskRun{ID: "t1", Name: "build", State: 20, Order: 2}, res.Value()[0])

	rec := <-reqs
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/pssystemruns/fetchcursys", rec.path)
	assert.Equal(t, "sys-1", rec.header.Get("psdevslnsys"))
	assert.Equal(t, fetch.ContentTypeJSON, rec.header.Get("Content-Type"))
	assert.Equal(t, "sln-1", rec.query["n_psdevslnid_eq"])
	assert.Equal(t, "1000", rec.query["size"])
	assert.Equal(t, 0, n.ErrorCount())
}

func TestClient_CurSystemRuns_NullBody(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `null`)

	res := newClient(srv.URL, &testutil.MockNotifier{}).CurSystemRuns(context.Background())

	require.True(t, res.IsOk())
	assert.NotNil(t, res.Value())
	assert.Empty(t, res.Value())
}

func TestClient_ServerErrorReportedOnce(t *testing.T) {
	srv, _ := newServer(t, http.StatusInternalServerError, `{"message":"db down"}`)
	n := &testutil.MockNotifier{}

	res := newClient(srv.URL, n).CurSystemRuns(context.Background())

	require.False(t, res.IsOk())
	assert.Nil(t, res.Value())
	require.Equal(t, 1, n.ErrorCount())
	assert.Contains(t, n.ErrorMessages()[0], "db down")
	assert.Contains(t, n.ErrorMessages()[0], "500")
	assert.True(t, domain.IsReported(res.Err()))
}

func TestClient_NetworkErrorReportedOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()
	n := &testutil.MockNotifier{}

	res := newClient(addr, n).CurSystemRuns(context.Background())

	assert.False(t, res.IsOk())
	assert.Equal(t, 1, n.ErrorCount())
}

func TestClient_WaitsForSessionBeforeCalling(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	sess := session.New()
	c := New(sess, fetch.New(0), &testutil.MockNotifier{}, nil)
	done := make(chan domain.Result[[]domain.TaskRun], 1)
	go func() { done <- c.CurSystemRuns(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), hits.Load(), "no request before the session is ready")

	sess.Complete(srv.URL, nil)

	select {
	case res := <-done:
		require.True(t, res.IsOk())
	case <-time.After(2 * time.Second):
		t.Fatal("call did not proceed after session became ready")
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_CanceledWhileWaitingIsNotReported(t *testing.T) {
	n := &testutil.MockNotifier{}
	c := New(session.New(), fetch.New(0), n, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.CurSystemRuns(ctx)

	assert.False(t, res.IsOk())
	assert.ErrorIs(t, res.Err(), context.Canceled)
	assert.False(t, domain.IsReported(res.Err()))
	assert.Equal(t, 0, n.ErrorCount())
}

func TestClient_NoAddress(t *testing.T) {
	n := &testutil.MockNotifier{}

	res := newClient("", n).CurSystemRuns(context.Background())

	assert.ErrorIs(t, res.Err(), domain.ErrNoAddress)
	assert.Equal(t, 1, n.ErrorCount())
}

func TestClient_CancelSystemRuns_EmptyKeys(t *testing.T) {
	srv, reqs := newServer(t, http.StatusOK, `true`)

	res := newClient(srv.URL, &testutil.MockNotifier{}).CancelSystemRuns(context.Background(), nil)

	require.True(t, res.IsOk())
	assert.True(t, res.Value())
	rec := <-reqs
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/pssysdevbktasks/cancel", rec.path)
	keys, ok := rec.body["keys"].([]any)
	require.True(t, ok, "keys must be a JSON array, got %#v", rec.body["keys"])
	assert.Empty(t, keys)
}

func TestClient_CancelSystemRuns_Rejected(t *testing.T) {
	srv, reqs := newServer(t, http.StatusOK, `false`)
	n := &testutil.MockNotifier{}

	res := newClient(srv.URL, n).CancelSystemRuns(context.Background(), []string{"a", "b"})

	require.True(t, res.IsOk())
	assert.False(t, res.Value())
	assert.Equal(t, 0, n.ErrorCount())
	rec := <-reqs
	assert.Equal(t, []any{"a", "b"}, rec.body["keys"])
}

func TestClient_CancelSystemRuns_FalsyBodies(t *testing.T) {
	for _, body := range []string{"null", "0", `""`} {
		t.Run(body, func(t *testing.T) {
			srv, _ := newServer(t, http.StatusOK, body)
			n := &testutil.MockNotifier{}

			res := newClient(srv.URL, n).CancelSystemRuns(context.Background(), []string{"a"})

			require.True(t, res.IsOk())
			assert.False(t, res.Value(), "a falsy body is a rejection")
			assert.Equal(t, 0, n.ErrorCount())
		})
	}
}

func TestClient_CurUserTemplates(t *testing.T) {
	srv, reqs := newServer(t, http.StatusOK, `[{"psdevslntemplid":"tp1","psdevslntemplname":"Vue app"}]`)

	res := newClient(srv.URL, &testutil.MockNotifier{}).CurUserTemplates(context.Background())

	require.True(t, res.IsOk())
	assert.Equal(t, []domain.Template{{ID: "tp1", Name: "Vue app"}}, res.Value())
	rec := <-reqs
	assert.Equal(t, "/psdevslntempls/fetchcuruserall", rec.path)
	assert.Equal(t, "1000", rec.query["size"])
	assert.Equal(t, "0", rec.query["page"])
	assert.Equal(t, "sln-1", rec.body["n_psdevslnid_eq"])
}

func TestClient_TemplateRepoURL(t *testing.T) {
	srv, reqs := newServer(t, http.StatusOK, `{"coderepourl":"https://git.example.com/tpl.git"}`)

	res := newClient(srv.URL, &testutil.MockNotifier{}).TemplateRepoURL(context.Background(), "tp1")

	require.True(t, res.IsOk())
	assert.Equal(t, "https://git.example.com/tpl.git", res.Value())
	rec := <-reqs
	assert.Equal(t, "/psdevslntempls/tp1/getrepourl", rec.path)
	assert.Equal(t, "sln-1", rec.body["psdevslnid"])
}

func TestClient_TemplateRepoURL_EmptyID(t *testing.T) {
	n := &testutil.MockNotifier{}

	res := newClient("http://unused", n).TemplateRepoURL(context.Background(), "")

	assert.ErrorIs(t, res.Err(), domain.ErrEmptyTemplateID)
	assert.Equal(t, 1, n.ErrorCount())
}

func TestClient_Cli(t *testing.T) {
	srv, reqs := newServer(t, http.StatusOK, `{"ok":1}`)

	res := newClient(srv.URL, &testutil.MockNotifier{}).Cli(context.Background(), "SyncModel", map[string]any{"x": "y"})

	require.True(t, res.IsOk())
	assert.JSONEq(t, `{"ok":1}`, string(res.Value()))
	rec := <-reqs
	assert.Equal(t, "/pstscmds/null/syncmodel", rec.path)
	assert.Equal(t, "y", rec.body["x"])
}

func TestParseAck(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{"", true},
		{"null", false},
		{"true", true},
		{"false", false},
		{"0", false},
		{"1", true},
		{`""`, false},
		{`"ok"`, true},
		{"{}", true},
		{`{"success":false}`, false},
		{`{"success":true}`, true},
		{`{"count":3}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			assert.Equal(t, tt.want, parseAck(json.RawMessage(tt.body)))
		})
	}
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "Failed to list (404)", ErrorText("list", &fetch.HTTPError{StatusCode: 404}))
	assert.Equal(t, "Failed to list (400): bad", ErrorText("list", &fetch.HTTPError{StatusCode: 400, Message: "bad"}))
	assert.Equal(t, "Failed to list: boom", ErrorText("list", errors.New("boom")))
}
