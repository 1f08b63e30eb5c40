package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/ampanel/internal/backend"
	"github.com/vmunix/ampanel/internal/panel"
	"github.com/vmunix/ampanel/internal/panel/mocks"
)

const (
	albumURL  = "https://music.example.com/us/album/blue/123"
	artistURL = "https://music.example.com/us/artist/joni/456"
)

type testPanel struct {
	api    *mocks.MockAPI
	srv    *Server
	ts     *httptest.Server
	client *http.Client
}

func newTestPanel(t *testing.T, opts Options) *testPanel {
	t.Helper()
	api := mocks.NewMockAPI(gomock.NewController(t))
	if opts.Tasks.Quality == "" {
		opts.Tasks.Quality = "alac"
	}
	srv := NewServer(api, opts, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testPanel{api: api, srv: srv, ts: ts, client: &http.Client{Jar: jar}}
}

func (p *testPanel) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := p.client.Get(p.ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func (p *testPanel) post(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()
	resp, err := p.client.PostForm(p.ts.URL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func (p *testPanel) htmxPost(t *testing.T, path string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, p.ts.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("HX-Request", "true")
	resp, err := p.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func sampleAlbum() *backend.AlbumMeta {
	return &backend.AlbumMeta{
		Title:  "Blue",
		Artist: "Joni Mitchell",
		Cover:  "https://img.example.com/blue.jpg",
		Tracks: []backend.Track{{Index: 1, Name: "All I Want"}, {Index: 2, Name: "My Old Man"}, {Index: 3, Name: "Little Green"}},
	}
}

func sampleArtist() *backend.ArtistMeta {
	return &backend.ArtistMeta{Albums: []backend.AlbumRef{
		{Name: "Blue", URL: "https://music.example.com/album/blue", Date: "1971-06-22"},
		{Name: "Court and Spark", URL: "https://music.example.com/album/court", Date: "1974-01-17"},
	}}
}

func TestIndex_SetsSessionCookie(t *testing.T) {
	p := newTestPanel(t, Options{PollInterval: 2 * time.Second})

	code, body := p.get(t, "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `hx-get="/htmx/tasks"`)
	assert.Contains(t, body, "every 2000ms")

	u, _ := url.Parse(p.ts.URL)
	cookies := p.client.Jar.Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)

	p.get(t, "/")
	assert.Equal(t, 1, p.srv.sessions.count(), "cookie should reuse the session")
}

func TestLoadMetadata_Album(t *testing.T) {
	p := newTestPanel(t, Options{})
	p.api.EXPECT().AlbumMeta(gomock.Any(), albumURL).Return(sampleAlbum(), nil)

	code, body := p.post(t, "/meta", url.Values{"url": {albumURL}, "quality": {"aac"}})
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<h2>Blue</h2>")
	assert.Contains(t, body, "3 of 3 tracks selected")
	assert.Contains(t, body, `value="2" checked`)
	assert.Contains(t, body, `<option value="aac" selected>`)
}

func TestLoadMetadata_FailureFlashesOnce(t *testing.T) {
	p := newTestPanel(t, Options{})
	p.api.EXPECT().ArtistMeta(gomock.Any(), artistURL).
		Return(nil, &backend.APIError{StatusCode: 404, Message: "not found"})

	_, body := p.post(t, "/meta", url.Values{"url": {artistURL}})
	assert.Contains(t, body, `<div class="flash" role="alert">not found</div>`)

	_, body = p.get(t, "/")
	assert.NotContains(t, body, "not found", "flash should show only once")
}

func TestCreateTask_AppliesTrackCheckboxes(t *testing.T) {
	p := newTestPanel(t, Options{})
	p.api.EXPECT().AlbumMeta(gomock.Any(), albumURL).Return(sampleAlbum(), nil)
	p.api.EXPECT().CreateTasks(gomock.Any(), backend.CreateTaskRequest{
		Quality: "atmos",
		URLs:    []string{albumURL},
		Tracks:  []int{1, 3},
	}).Return(&backend.CreateTaskResponse{TaskIDs: []string{"t1"}, Count: 1}, nil)
	p.api.EXPECT().Tasks(gomock.Any()).Return([]backend.Task{
		{ID: "t1", URL: albumURL, Quality: "atmos", Status: backend.StatusQueued},
	}, nil)

	p.post(t, "/meta", url.Values{"url": {albumURL}})
	code, body := p.post(t, "/tasks", url.Values{
		"url":              {albumURL},
		"quality":          {"atmos"},
		"tracks_submitted": {"1"},
		"track":            {"1", "3"},
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `id="task-t1"`)
}

func TestCreateTask_EmptyURLFlashes(t *testing.T) {
	p := newTestPanel(t, Options{})

	_, body := p.post(t, "/tasks", url.Values{"url": {"  "}})
	assert.Contains(t, body, "please enter a URL")
}

func TestCreateArtistTasks(t *testing.T) {
	var submitted []string
	p := newTestPanel(t, Options{OnSubmit: func(_ context.Context, req backend.CreateTaskRequest, _ *backend.CreateTaskResponse) {
		submitted = append(submitted, req.URLs...)
	}})
	p.api.EXPECT().ArtistMeta(gomock.Any(), artistURL).Return(sampleArtist(), nil)
	p.api.EXPECT().CreateTasks(gomock.Any(), backend.CreateTaskRequest{
		Quality: "alac",
		URLs:    []string{"https://music.example.com/album/court"},
	}).Return(&backend.CreateTaskResponse{TaskIDs: []string{"a"}, Count: 1}, nil)
	p.api.EXPECT().Tasks(gomock.Any()).Return(nil, nil)

	_, body := p.post(t, "/meta", url.Values{"url": {artistURL}})
	assert.Contains(t, body, "Blue (1971-06-22)")

	p.post(t, "/tasks/artist", url.Values{"url": {artistURL}, "album": {"1"}})
	assert.Equal(t, []string{"https://music.example.com/album/court"}, submitted)
}

func TestCreateArtistTasks_NothingChecked(t *testing.T) {
	p := newTestPanel(t, Options{})
	p.api.EXPECT().ArtistMeta(gomock.Any(), artistURL).Return(sampleArtist(), nil)

	p.post(t, "/meta", url.Values{"url": {artistURL}})
	_, body := p.post(t, "/tasks/artist", url.Values{"url": {artistURL}})
	assert.Contains(t, body, panel.ErrNoAlbumsSelected.Error())
}

func TestCreateArtistTasks_BadPositionSubmitsNothing(t *testing.T) {
	p := newTestPanel(t, Options{})
	p.api.EXPECT().ArtistMeta(gomock.Any(), artistURL).Return(sampleArtist(), nil)
	// No CreateTasks expectation: any submit fails the test.

	p.post(t, "/meta", url.Values{"url": {artistURL}})
	code, body := p.post(t, "/tasks/artist", url.Values{"url": {artistURL}, "album": {"0", "7"}})

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "selection no longer matches the loaded metadata: album 8")
	assert.NotContains(t, body, `name="album" value="0" checked`)
}

func TestCreateTask_UnknownTrackSubmitsNothing(t *testing.T) {
	p := newTestPanel(t, Options{})
	p.api.EXPECT().AlbumMeta(gomock.Any(), albumURL).Return(sampleAlbum(), nil)

	p.post(t, "/meta", url.Values{"url": {albumURL}})
	_, body := p.post(t, "/tasks", url.Values{
		"url":              {albumURL},
		"tracks_submitted": {"1"},
		"track":            {"1", "42"},
	})

	assert.Contains(t, body, "selection no longer matches the loaded metadata: track 42")
	assert.Contains(t, body, "3 of 3 tracks selected")
}

func TestTasksHTMX_RendersRows(t *testing.T) {
	p := newTestPanel(t, Options{})
	p.api.EXPECT().Tasks(gomock.Any()).Return([]backend.Task{
		{ID: "t1", URL: "u1", Status: backend.StatusRunning, Progress: 40},
		{ID: "t2", URL: "u2", Status: backend.StatusFailed},
	}, nil)

	code, body := p.get(t, "/htmx/tasks")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "width: 40%")
	assert.Contains(t, body, `hx-post="/tasks/t1/retry" hx-target="#tasks" disabled`)
	assert.Contains(t, body, `hx-post="/tasks/t2/retry" hx-target="#tasks">`)
	assert.NotContains(t, body, "<html", "fragment only")
}

func TestTasksHTMX_FailureKeepsPreviousRows(t *testing.T) {
	p := newTestPanel(t, Options{})
	gomock.InOrder(
		p.api.EXPECT().Tasks(gomock.Any()).Return([]backend.Task{{ID: "t1", URL: "u1", Status: backend.StatusQueued}}, nil),
		p.api.EXPECT().Tasks(gomock.Any()).Return(nil, errors.New("connection refused")),
	)

	p.get(t, "/htmx/tasks")
	code, body := p.get(t, "/htmx/tasks")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `id="task-t1"`)
	assert.NotContains(t, body, "connection refused")

	_, page := p.get(t, "/")
	assert.NotContains(t, page, "connection refused", "refresh errors are never flashed")
}

func TestRetry_HTMXConflictShowsInline(t *testing.T) {
	p := newTestPanel(t, Options{})
	p.api.EXPECT().RetryTask(gomock.Any(), "t1").
		Return(&backend.APIError{StatusCode: 409, Message: "task is running"})

	code, body := p.htmxPost(t, "/tasks/t1/retry")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "task is running")
}

func TestRetry_RefreshesList(t *testing.T) {
	p := newTestPanel(t, Options{})
	p.api.EXPECT().RetryTask(gomock.Any(), "t1").Return(nil)
	p.api.EXPECT().Tasks(gomock.Any()).Return([]backend.Task{{ID: "t1", Status: backend.StatusQueued}}, nil)

	_, body := p.htmxPost(t, "/tasks/t1/retry")
	assert.Contains(t, body, `id="task-t1"`)
}

func TestCancelDeleteClear(t *testing.T) {
	p := newTestPanel(t, Options{})
	p.api.EXPECT().CancelTask(gomock.Any(), "t1").Return(nil)
	p.api.EXPECT().DeleteTask(gomock.Any(), "t1").Return(nil)
	p.api.EXPECT().ClearCompleted(gomock.Any()).Return(2, nil)
	p.api.EXPECT().Tasks(gomock.Any()).Return(nil, nil).Times(3)

	for _, path := range []string{"/tasks/t1/cancel", "/tasks/t1/delete"} {
		code, _ := p.htmxPost(t, path)
		assert.Equal(t, http.StatusOK, code, path)
	}
	code, body := p.post(t, "/tasks/clear", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<html")
}

func TestDetailPage(t *testing.T) {
	p := newTestPanel(t, Options{})
	p.api.EXPECT().Task(gomock.Any(), "t1").Return(&backend.Task{
		ID: "t1", URL: albumURL, Status: backend.StatusFailed, Progress: 12, Message: "boom",
		Logs: []string{"queued", "boom"},
	}, nil)

	code, body := p.get(t, "/tasks/t1")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Status: failed")
	assert.Contains(t, body, "Progress: 12%")
	assert.Contains(t, body, "Logs:\nqueued\nboom")
}

func TestDetailPage_NotFound(t *testing.T) {
	p := newTestPanel(t, Options{})
	p.api.EXPECT().Task(gomock.Any(), "nope").
		Return(nil, &backend.APIError{StatusCode: 404, Message: "not found"})

	code, body := p.get(t, "/tasks/nope")
	assert.Equal(t, http.StatusOK, code, "redirected to index")
	assert.True(t, strings.Contains(body, `role="alert">not found<`))
}

func TestSessions_PruneIdle(t *testing.T) {
	m := newSessions(nil, "alac", time.Minute, nil, discardLogger())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	s := m.get(httptest.NewRecorder(), r)
	s.lastSeen = time.Now().Add(-2 * time.Minute)

	m.get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, 1, m.count())
}
