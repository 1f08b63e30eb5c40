package backend

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxEventSize = 1 << 20

// Stream follows a task's server-sent progress snapshots, calling fn for each one.
// It returns nil once the server sends its end event, ctx.Err() when ctx is done,
// or the first error fn returns.
func (c *Client) Stream(ctx context.Context, id string, fn func(Task) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+taskPath(id)+"/stream", nil)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	// The stream outlives the per-request timeout; ctx bounds it instead.
	streamClient := &http.Client{Transport: c.httpClient.Transport}
	resp, err := streamClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return newAPIError(resp.StatusCode, body)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)

	var event string
	var data strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if event == "end" {
				return endError(data.String())
			}
			if data.Len() > 0 {
				var t Task
				if err := json.Unmarshal([]byte(data.String()), &t); err != nil {
					return fmt.Errorf("decode snapshot: %w", err)
				}
				if err := fn(t); err != nil {
					return err
				}
			}
			event = ""
			data.Reset()
		case strings.HasPrefix(line, ":"):
			// comment / keepalive
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return nil
}

// endError turns the payload of an end event into an error when it reports one.
func endError(payload string) error {
	var end struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(payload), &end); err == nil && end.Error != "" {
		status := http.StatusInternalServerError
		if end.Error == "not found" {
			status = http.StatusNotFound
		}
		return &APIError{StatusCode: status, Message: end.Error}
	}
	return nil
}
