package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandroc0sta/TaskManagerApp/app/config"
	"github.com/sandroc0sta/TaskManagerApp/app/controllers"
	"github.com/sandroc0sta/TaskManagerApp/app/middleware"
	"github.com/sandroc0sta/TaskManagerApp/app/services"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := services.NewSQLTaskService(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	logger := config.NewLogger(io.Discard, "test", "error")
	srv := httptest.NewServer(NewHandler(controllers.NewTaskController(store, logger), logger))
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func TestTaskLifecycle(t *testing.T) {
	srv := newServer(t)

	resp, body := call(t, http.MethodPost, srv.URL+"/tasks", `{"title":"Buy milk","isDone":false}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/tasks/1", resp.Header.Get("Location"))
	assert.JSONEq(t, `{"id":1,"title":"Buy milk","isDone":false}`, body)

	resp, body = call(t, http.MethodGet, srv.URL+"/tasks", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"id":1,"title":"Buy milk","isDone":false}]`, body)

	resp, body = call(t, http.MethodPut, srv.URL+"/tasks/1", `{"title":"Buy milk","isDone":true}`)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)

	_, body = call(t, http.MethodGet, srv.URL+"/tasks", "")
	assert.JSONEq(t, `[{"id":1,"title":"Buy milk","isDone":true}]`, body)

	resp, _ = call(t, http.MethodDelete, srv.URL+"/tasks/1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, body = call(t, http.MethodGet, srv.URL+"/tasks", "")
	assert.JSONEq(t, `[]`, body)

	resp, body = call(t, http.MethodDelete, srv.URL+"/tasks/1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, body)
}

func TestUpdateMissingLeavesCollectionUnchanged(t *testing.T) {
	srv := newServer(t)

	call(t, http.MethodPost, srv.URL+"/tasks", `{"title":"keep","isDone":false}`)

	resp, body := call(t, http.MethodPut, srv.URL+"/tasks/2", `{"title":"nope","isDone":true}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, body)

	_, body = call(t, http.MethodGet, srv.URL+"/tasks", "")
	assert.JSONEq(t, `[{"id":1,"title":"keep","isDone":false}]`, body)
}

func TestGetTaskByID(t *testing.T) {
	srv := newServer(t)

	call(t, http.MethodPost, srv.URL+"/tasks", `{"title":"one","isDone":true}`)

	resp, body := call(t, http.MethodGet, srv.URL+"/tasks/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":1,"title":"one","isDone":true}`, body)

	resp, _ = call(t, http.MethodGet, srv.URL+"/tasks/2", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/tasks", nil)
	require.NoError(t, err)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "req-123", resp.Header.Get(middleware.RequestIDHeader))

	resp, _ = call(t, http.MethodGet, srv.URL+"/tasks", "")
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newServer(t)

	resp, body := call(t, http.MethodGet, srv.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)

	call(t, http.MethodGet, srv.URL+"/tasks/77", "")

	resp, body = call(t, http.MethodGet, srv.URL+"/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `http_requests_total{method="GET",route="/tasks/{taskID}",status="404"}`)
	assert.NotContains(t, body, `route="/tasks/77"`)
}

func TestUnknownMethodNotAllowed(t *testing.T) {
	srv := newServer(t)

	resp, _ := call(t, http.MethodPatch, srv.URL+"/tasks/1", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestMetricsCountUnroutedRequests(t *testing.T) {
	srv := newServer(t)

	resp, _ := call(t, http.MethodGet, srv.URL+"/no/such/path", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = call(t, http.MethodPatch, srv.URL+"/tasks", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	_, body := call(t, http.MethodGet, srv.URL+"/metrics", "")
	assert.Contains(t, body, `http_requests_total{method="GET",route="unmatched",status="404"}`)
	assert.Regexp(t, `http_requests_total\{method="PATCH",route="[^"]*",status="405"\}`, body)
	assert.NotContains(t, body, `route="/no/such/path"`)
}
