package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/ampanel/internal/backend"
)

const (
	albumURL  = "https://music.example.com/us/album/blue/1440"
	artistURL = "https://music.example.com/us/artist/joni-mitchell/2001"
)

func sampleAlbum() *backend.AlbumMeta {
	return &backend.AlbumMeta{
		Title:  "Blue",
		Artist: "Joni Mitchell",
		Tracks: []backend.Track{
			{Index: 1, Name: "All I Want"},
			{Index: 2, Name: "My Old Man"},
			{Index: 3, Name: "Little Green"},
		},
	}
}

func sampleArtist() *backend.ArtistMeta {
	return &backend.ArtistMeta{
		Albums: []backend.AlbumRef{
			{Name: "Ladies of the Canyon", URL: "https://music.example.com/us/album/ladies/1", Date: "1970-04-01"},
			{Name: "Blue", URL: albumURL, Date: "1971-06-22"},
			{Name: "Court and Spark", URL: "https://music.example.com/us/album/court/3", Date: "1974-01-17"},
		},
	}
}

// fakeBackend serves the /v1 API from in-memory state and records what it received.
type fakeBackend struct {
	t *testing.T

	mu      sync.Mutex
	album   *backend.AlbumMeta
	artist  *backend.ArtistMeta
	tasks   []backend.Task
	stream  []backend.Task
	created []backend.CreateTaskRequest
	calls   []string
	nextID  int

	searchHits  []backend.SearchItem
	lastSearch  url.Values
	cleanupDone *backend.CleanupResult
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	return &fakeBackend{t: t, album: sampleAlbum(), artist: sampleArtist()}
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) Created() []backend.CreateTaskRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]backend.CreateTaskRequest(nil), f.created...)
}

func (f *fakeBackend) findLocked(id string) int {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeBackend) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/meta/album", func(w http.ResponseWriter, _ *http.Request) {
		if f.album == nil {
			respondError(f.t, w, http.StatusNotFound, "not found")
			return
		}
		respondJSON(f.t, w, http.StatusOK, f.album)
	})
	mux.HandleFunc("GET /v1/meta/artist", func(w http.ResponseWriter, _ *http.Request) {
		if f.artist == nil {
			respondError(f.t, w, http.StatusNotFound, "not found")
			return
		}
		respondJSON(f.t, w, http.StatusOK, f.artist)
	})
	mux.HandleFunc("POST /v1/tasks", func(w http.ResponseWriter, r *http.Request) {
		var req backend.CreateTaskRequest
		if !assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&req)) {
			respondError(f.t, w, http.StatusBadRequest, "bad request")
			return
		}
		f.mu.Lock()
		f.created = append(f.created, req)
		resp := backend.CreateTaskResponse{Count: len(req.URLs)}
		for _, u := range req.URLs {
			f.nextID++
			id := fmt.Sprintf("task-%d", f.nextID)
			resp.TaskIDs = append(resp.TaskIDs, id)
			f.tasks = append(f.tasks, backend.Task{ID: id, URL: u, Quality: req.Quality, Status: backend.StatusQueued})
		}
		f.mu.Unlock()
		respondJSON(f.t, w, http.StatusCreated, resp)
	})
	mux.HandleFunc("GET /v1/tasks", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		tasks := append([]backend.Task{}, f.tasks...)
		f.mu.Unlock()
		respondJSON(f.t, w, http.StatusOK, tasks)
	})
	mux.HandleFunc("DELETE /v1/tasks/completed", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		kept := f.tasks[:0]
		deleted := 0
		for _, t := range f.tasks {
			if t.Finished() {
				deleted++
				continue
			}
			kept = append(kept, t)
		}
		f.tasks = kept
		f.mu.Unlock()
		respondJSON(f.t, w, http.StatusOK, map[string]int{"deleted": deleted})
	})
	mux.HandleFunc("GET /v1/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		i := f.findLocked(r.PathValue("id"))
		if i < 0 {
			respondError(f.t, w, http.StatusNotFound, "not found")
			return
		}
		respondJSON(f.t, w, http.StatusOK, f.tasks[i])
	})
	mux.HandleFunc("POST /v1/tasks/{id}/retry", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		i := f.findLocked(r.PathValue("id"))
		switch {
		case i < 0:
			respondError(f.t, w, http.StatusNotFound, "not found")
		case f.tasks[i].Status == backend.StatusRunning:
			respondError(f.t, w, http.StatusConflict, "task is running")
		default:
			f.tasks[i].Status = backend.StatusQueued
			f.tasks[i].Progress = 0
			respondJSON(f.t, w, http.StatusOK, backend.StatusResponse{Status: "queued"})
		}
	})
	mux.HandleFunc("POST /v1/tasks/{id}/cancel", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		i := f.findLocked(r.PathValue("id"))
		if i < 0 {
			respondError(f.t, w, http.StatusNotFound, "not found")
			return
		}
		f.tasks[i].Canceled = true
		respondJSON(f.t, w, http.StatusOK, backend.StatusResponse{Status: "canceling"})
	})
	mux.HandleFunc("DELETE /v1/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		i := f.findLocked(r.PathValue("id"))
		if i < 0 {
			respondError(f.t, w, http.StatusNotFound, "not found")
			return
		}
		f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
		respondJSON(f.t, w, http.StatusOK, backend.StatusResponse{Status: "deleted"})
	})
	mux.HandleFunc("GET /v1/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f.mu.Lock()
		f.lastSearch = q
		hits := append([]backend.SearchItem{}, f.searchHits...)
		f.mu.Unlock()
		switch q.Get("type") {
		case backend.SearchAlbum, backend.SearchSong, backend.SearchArtist:
		default:
			respondError(f.t, w, http.StatusBadRequest, "q and type=album|song|artist required")
			return
		}
		respondJSON(f.t, w, http.StatusOK, map[string]any{"items": hits})
	})
	mux.HandleFunc("POST /v1/cleanup-downloads", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, t := range f.tasks {
			if t.Status == backend.StatusRunning {
				respondError(f.t, w, http.StatusConflict, "a task is still running")
				return
			}
		}
		res := backend.CleanupResult{
			DeletedFiles: 3,
			DeletedDirs:  1,
			Folders: []backend.CleanupFolder{
				{Folder: "ALAC", DeletedFiles: 3, DeletedDirs: 1},
				{Folder: "AAC", Skipped: true, Reason: "missing"},
			},
		}
		f.cleanupDone = &res
		respondJSON(f.t, w, http.StatusOK, res)
	})
	mux.HandleFunc("GET /v1/tasks/{id}/stream", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, snap := range f.stream {
			data, err := json.Marshal(snap)
			assert.NoError(f.t, err)
			_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
		}
		_, _ = fmt.Fprint(w, "event: end\ndata: {}\n\n")
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls = append(f.calls, r.Method+" "+r.URL.Path)
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	})
}

func respondJSON(t *testing.T, w http.ResponseWriter, code int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func respondError(t *testing.T, w http.ResponseWriter, code int, msg string) {
	t.Helper()
	respondJSON(t, w, code, map[string]string{"error": msg})
}

// cliHarness runs the root command against a fake backend with an isolated
// config and data directory.
type cliHarness struct {
	t          *testing.T
	backend    *fakeBackend
	server     *httptest.Server
	dir        string
	configPath string
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func newHarness(t *testing.T) *cliHarness {
	t.Helper()
	fb := newFakeBackend(t)
	srv := httptest.NewServer(fb.Handler())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	h := &cliHarness{t: t, backend: fb, server: srv, dir: dir, configPath: filepath.Join(dir, "ampanel.toml")}
	h.writeConfig("")
	return h
}

// writeConfig writes the harness config, appending extra TOML to the [tasks] table.
func (h *cliHarness) writeConfig(extraTasks string) {
	h.t.Helper()
	content := fmt.Sprintf(`[server]
url = %q
timeout = "5s"

[tasks]
quality = "alac"
%s

[cache]
path = %q
metadata_ttl = "0s"

[log]
level = "error"
`, h.server.URL, extraTasks, filepath.Join(h.dir, "ampanel.db"))
	require.NoError(h.t, os.WriteFile(h.configPath, []byte(content), 0644))
}

func (h *cliHarness) run(args ...string) cliResult {
	h.t.Helper()
	resetCommandState(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config", h.configPath}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func resetCommandState(cmd *cobra.Command) {
	serverURL, configPath, jsonOutput, quiet = "", "", false, false
	cfg = nil
	resetFlags(cmd)
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
