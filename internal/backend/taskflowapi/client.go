// Package taskflowapi implements service.Service against the TaskFlow REST
// API. The credential travels in the injected HTTP client; this package
// only shapes requests and maps status codes onto the service sentinels.
package taskflowapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskflow/internal/service"
)

// APITimeout is the timeout for a single API call.
const APITimeout = 5 * time.Second

// Client implements service.Service over HTTP.
type Client struct {
	base   *url.URL
	client *http.Client
}

// New creates a client for the API at baseURL. httpClient must inject the
// session's bearer credential (see session.Client); pass a plain client
// only in tests.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{base: base, client: httpClient}, nil
}

// Tasks returns every task owned by the current user.
func (c *Client) Tasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates one task.
func (c *Client) CreateTask(ctx context.Context, draft service.TaskDraft) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", draft, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id), patch, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteTask deletes a task by id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

// BatchCreateTasks creates several tasks in one call.
func (c *Client) BatchCreateTasks(ctx context.Context, drafts []service.TaskDraft) (service.BatchResult, error) {
	body := struct {
		Tasks []service.TaskDraft `json:"tasks"`
	}{Tasks: drafts}
	var result service.BatchResult
	if err := c.do(ctx, http.MethodPost, "/api/tasks/batch", body, &result); err != nil {
		return service.BatchResult{}, err
	}
	return result, nil
}

// Scratchpad returns every scratchpad item owned by the current user.
func (c *Client) Scratchpad(ctx context.Context) ([]service.ScratchpadItem, error) {
	var items []service.ScratchpadItem
	if err := c.do(ctx, http.MethodGet, "/api/scratchpad", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateScratchpadItem captures a note.
func (c *Client) CreateScratchpadItem(ctx context.Context, title string) (service.ScratchpadItem, error) {
	body := struct {
		Title string `json:"title"`
	}{Title: title}
	var item service.ScratchpadItem
	if err := c.do(ctx, http.MethodPost, "/api/scratchpad", body, &item); err != nil {
		return service.ScratchpadItem{}, err
	}
	return item, nil
}

// DeleteScratchpadItem deletes a note by id.
func (c *Client) DeleteScratchpadItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/scratchpad/"+url.PathEscape(id), nil, nil)
}

// do runs one API call: marshal body, send, map status, decode into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	u := c.base.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%w: request timed out", service.ErrUnavailable)
		}
		return fmt.Errorf("%w: %v", service.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", service.ErrUnavailable, err)
	}
	return nil
}

// statusError maps an error response onto the service sentinels, carrying
// the server's message when it sent one.
func statusError(resp *http.Response) error {
	msg := serverMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return service.ErrUnauthorized
	case http.StatusNotFound:
		return service.ErrNotFound
	case http.StatusBadRequest:
		if msg != "" {
			return fmt.Errorf("%w: %s", service.ErrInvalid, msg)
		}
		return service.ErrInvalid
	default:
		if msg != "" {
			return fmt.Errorf("%w: %s (HTTP %d)", service.ErrUnavailable, msg, resp.StatusCode)
		}
		return fmt.Errorf("%w: HTTP %d", service.ErrUnavailable, resp.StatusCode)
	}
}

func serverMessage(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Error)
}
