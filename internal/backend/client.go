// Package backend is the HTTP client for the download service's /v1 API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds every request that does not stream.
const DefaultTimeout = 30 * time.Second

// Client wraps HTTP calls to the download service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client. A zero timeout uses DefaultTimeout.
func NewClient(serverURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the server URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

func (c *Client) do(ctx context.Context, method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return newAPIError(resp.StatusCode, respBody)
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

func (c *Client) delete(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodDelete, path, nil, result)
}

func taskPath(id string) string {
	return "/v1/tasks/" + url.PathEscape(id)
}

// AlbumMeta fetches the tracklist preview for an album URL.
func (c *Client) AlbumMeta(ctx context.Context, albumURL string) (*AlbumMeta, error) {
	var resp AlbumMeta
	if err := c.get(ctx, "/v1/meta/album?url="+url.QueryEscape(albumURL), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ArtistMeta fetches the album list for an artist URL.
func (c *Client) ArtistMeta(ctx context.Context, artistURL string) (*ArtistMeta, error) {
	var resp ArtistMeta
	if err := c.get(ctx, "/v1/meta/artist?url="+url.QueryEscape(artistURL), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateTasks submits one task per URL in req.
func (c *Client) CreateTasks(ctx context.Context, req CreateTaskRequest) (*CreateTaskResponse, error) {
	var resp CreateTaskResponse
	if err := c.post(ctx, "/v1/tasks", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Tasks lists every task the backend knows about, oldest first.
func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	var resp []Task
	if err := c.get(ctx, "/v1/tasks", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Task fetches a single task including its logs.
func (c *Client) Task(ctx context.Context, id string) (*Task, error) {
	var resp Task
	if err := c.get(ctx, taskPath(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetryTask requeues a finished task. The backend refuses running tasks with 409.
func (c *Client) RetryTask(ctx context.Context, id string) error {
	return c.post(ctx, taskPath(id)+"/retry", nil, nil)
}

// CancelTask requests cancellation of a queued or running task.
func (c *Client) CancelTask(ctx context.Context, id string) error {
	return c.post(ctx, taskPath(id)+"/cancel", nil, nil)
}

// DeleteTask removes a task that is not running.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.delete(ctx, taskPath(id), nil)
}

// ClearCompleted removes all succeeded and failed tasks and returns how many went away.
func (c *Client) ClearCompleted(ctx context.Context) (int, error) {
	var resp clearResponse
	if err := c.delete(ctx, "/v1/tasks/completed", &resp); err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}

// Search looks up albums, songs or artists by keyword.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]SearchItem, error) {
	q := strings.TrimSpace(req.Query)
	if q == "" {
		return nil, errors.New("search query is empty")
	}
	switch req.Type {
	case SearchAlbum, SearchSong, SearchArtist:
	default:
		return nil, fmt.Errorf("invalid search type %q: use album, song or artist", req.Type)
	}

	params := url.Values{"q": {q}, "type": {req.Type}}
	if req.Limit > 0 {
		params.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Offset > 0 {
		params.Set("offset", strconv.Itoa(req.Offset))
	}

	var resp searchResponse
	if err := c.get(ctx, "/v1/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// CleanupDownloads empties the service's download folders.
// The backend refuses with 409 while a task is running.
func (c *Client) CleanupDownloads(ctx context.Context) (*CleanupResult, error) {
	var resp CleanupResult
	if err := c.post(ctx, "/v1/cleanup-downloads", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
