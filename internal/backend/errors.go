package backend

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrNotFound is matched by API errors with status 404.
	ErrNotFound = errors.New("not found")
	// ErrConflict is matched by API errors with status 409, e.g. retrying a running task.
	ErrConflict = errors.New("conflict")
)

// APIError is a non-2xx response from the backend.
// Message is what the server said, suitable for showing to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is maps well-known statuses onto package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	}
	return false
}

// newAPIError builds an APIError from a response body.
// The backend answers {"error": "..."}; any other body is used as plain text.
func newAPIError(status int, body []byte) *APIError {
	msg := strings.TrimSpace(string(body))

	var payload struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != nil {
		msg = *payload.Error
	}

	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: msg}
}
