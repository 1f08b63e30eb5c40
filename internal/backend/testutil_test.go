package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockServer is a single-route fake of the /v1 API. Expectations are checked
// on every request before the response handler runs.
type mockServer struct {
	t       *testing.T
	method  string
	path    string
	query   map[string]string
	respond http.HandlerFunc
	hits    atomic.Int32
}

func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	return &mockServer{t: t, query: map[string]string{}}
}

func (m *mockServer) ExpectPath(path string) *mockServer {
	m.path = path
	return m
}

func (m *mockServer) ExpectGET() *mockServer    { m.method = http.MethodGet; return m }
func (m *mockServer) ExpectPOST() *mockServer   { m.method = http.MethodPost; return m }
func (m *mockServer) ExpectDELETE() *mockServer { m.method = http.MethodDelete; return m }

// ExpectQuery requires a decoded query parameter, e.g. the page URL of a meta lookup.
func (m *mockServer) ExpectQuery(key, value string) *mockServer {
	m.query[key] = value
	return m
}

// Handler replaces the response with custom behavior.
func (m *mockServer) Handler(h func(w http.ResponseWriter, r *http.Request)) *mockServer {
	m.respond = h
	return m
}

func (m *mockServer) RespondJSON(code int, v any) *mockServer {
	return m.Handler(func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(m.t, w, code, v)
	})
}

// RespondError answers with the backend's {"error": "..."} failure body.
func (m *mockServer) RespondError(code int, message string) *mockServer {
	return m.RespondJSON(code, map[string]string{"error": message})
}

// RespondSSE writes each frame verbatim as a server-sent event stream,
// flushing after every frame.
func (m *mockServer) RespondSSE(frames ...string) *mockServer {
	return m.Handler(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, _ := w.(http.Flusher)
		for _, f := range frames {
			_, _ = fmt.Fprint(w, f)
			if flusher != nil {
				flusher.Flush()
			}
		}
	})
}

// Hits reports how many requests reached the server.
func (m *mockServer) Hits() int {
	return int(m.hits.Load())
}

func (m *mockServer) Build() *httptest.Server {
	m.t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.hits.Add(1)
		if m.method != "" {
			assert.Equal(m.t, m.method, r.Method, "unexpected request method")
		}
		if m.path != "" {
			assert.Equal(m.t, m.path, r.URL.Path, "unexpected request path")
		}
		for k, v := range m.query {
			assert.Equal(m.t, v, r.URL.Query().Get(k), "unexpected query parameter %q", k)
		}
		if m.respond != nil {
			m.respond(w, r)
		}
	}))
}

func respondJSON(t *testing.T, w http.ResponseWriter, code int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}
