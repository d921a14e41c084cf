// Package client talks to the task store service and keeps a local copy of
// its task list.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sandroc0sta/TaskManagerApp/app/models"
)

// ErrNotFound matches a StatusError carrying HTTP 404.
var ErrNotFound = errors.New("task not found")

// StatusError is returned for any response outside the expected status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// Is reports whether target is ErrNotFound and the status was 404.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client is an HTTP client for the task store API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Entry
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request failures.
func WithLogger(logger *logrus.Entry) Option {
	return func(c *Client) { c.logger = logger }
}

// New returns a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		logger:     logrus.NewEntry(silent),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListTasks fetches the full task list.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, http.StatusOK, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// CreateTask stores a new task and returns it with its server-assigned id.
func (c *Client) CreateTask(ctx context.Context, title string, isDone bool) (models.Task, error) {
	var created models.Task
	err := c.do(ctx, http.MethodPost, "/tasks", models.Task{Title: title, IsDone: isDone}, http.StatusCreated, &created)
	return created, err
}

// UpdateTask sends the full task representation for task.ID.
func (c *Client) UpdateTask(ctx context.Context, task models.Task) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", task.ID), task, http.StatusNoContent, nil)
}

// DeleteTask removes the task with the given id.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, http.StatusNoContent, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in any, want int, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("path", path).Warn(method + " failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
	}).Debug("api call")

	if resp.StatusCode != want {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
