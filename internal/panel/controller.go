// Package panel is the UI-agnostic controller of the download panel: it
// classifies pasted URLs, holds the metadata selection state, builds task
// requests and drives task list refreshes. Front ends plug in through UI.
package panel

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/vmunix/ampanel/internal/backend"
	"github.com/vmunix/ampanel/pkg/mediaurl"
)

//go:generate mockgen -destination=mocks/mock_api.go -package=mocks github.com/vmunix/ampanel/internal/panel API

// API is the subset of the download service the panel talks to.
type API interface {
	AlbumMeta(ctx context.Context, albumURL string) (*backend.AlbumMeta, error)
	ArtistMeta(ctx context.Context, artistURL string) (*backend.ArtistMeta, error)
	CreateTasks(ctx context.Context, req backend.CreateTaskRequest) (*backend.CreateTaskResponse, error)
	Tasks(ctx context.Context) ([]backend.Task, error)
	Task(ctx context.Context, id string) (*backend.Task, error)
	RetryTask(ctx context.Context, id string) error
	CancelTask(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error
	ClearCompleted(ctx context.Context) (int, error)
	Search(ctx context.Context, req backend.SearchRequest) ([]backend.SearchItem, error)
	CleanupDownloads(ctx context.Context) (*backend.CleanupResult, error)
}

// UI is implemented by each front end.
// Alert is blocking from the user's point of view: it must be acknowledged.
type UI interface {
	Alert(msg string)
	RenderMetadata(view MetadataView)
	RenderTasks(rows []TaskRow)
	ShowDetail(detail TaskDetail)
}

// SubmitFunc observes successfully created tasks.
type SubmitFunc func(ctx context.Context, req backend.CreateTaskRequest, resp *backend.CreateTaskResponse)

// Controller owns the panel state and turns user commands into API calls.
// Handlers may be called from any goroutine.
type Controller struct {
	api    API
	ui     UI
	logger *slog.Logger

	mu       sync.Mutex
	state    State
	onSubmit SubmitFunc
}

// NewController creates a controller rendering into ui.
func NewController(api API, ui UI, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		api:    api,
		ui:     ui,
		logger: logger,
	}
}

// OnSubmit registers a hook called after tasks were created.
func (c *Controller) OnSubmit(fn SubmitFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSubmit = fn
}

func (c *Controller) alert(err error) error {
	c.ui.Alert(err.Error())
	return &Alerted{Err: err}
}

// View returns the metadata view of the current state.
func (c *Controller) View() MetadataView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return RenderMetadata(&c.state)
}

func (c *Controller) render() {
	c.ui.RenderMetadata(c.View())
}

// LoadMetadata classifies rawURL and fetches its preview.
// Album and artist URLs replace the state on success and leave it untouched
// on failure. A blank URL is ignored. Any other URL clears the state without
// a request.
func (c *Controller) LoadMetadata(ctx context.Context, rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return nil
	}
	kind := mediaurl.Classify(rawURL)
	logger := c.logger.With("url", rawURL, "kind", kind.String())

	switch kind {
	case mediaurl.Album:
		meta, err := c.api.AlbumMeta(ctx, rawURL)
		if err == nil && meta == nil {
			err = ErrEmptyMetadata
		}
		if err != nil {
			logger.Debug("album metadata fetch failed", "error", err)
			return c.alert(err)
		}
		c.mu.Lock()
		c.state.SetAlbum(meta)
		c.mu.Unlock()
		logger.Debug("album metadata loaded", "tracks", len(meta.Tracks))
	case mediaurl.Artist:
		meta, err := c.api.ArtistMeta(ctx, rawURL)
		if err == nil && meta == nil {
			err = ErrEmptyMetadata
		}
		if err != nil {
			logger.Debug("artist metadata fetch failed", "error", err)
			return c.alert(err)
		}
		c.mu.Lock()
		c.state.SetArtist(meta)
		c.mu.Unlock()
		logger.Debug("artist metadata loaded", "albums", len(meta.Albums))
	default:
		c.mu.Lock()
		c.state.Reset()
		c.mu.Unlock()
	}

	c.render()
	return nil
}

// mutate runs fn against the state and re-renders on success.
func (c *Controller) mutate(fn func(*State) error) error {
	c.mu.Lock()
	err := fn(&c.state)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.render()
	return nil
}

// ToggleTrack flips one album track.
func (c *Controller) ToggleTrack(index int) error {
	return c.mutate(func(s *State) error { return s.ToggleTrack(index) })
}

// SelectAllTracks selects every album track.
func (c *Controller) SelectAllTracks() error {
	return c.mutate((*State).SelectAllTracks)
}

// SelectNoTracks clears the album track selection.
func (c *Controller) SelectNoTracks() error {
	return c.mutate((*State).SelectNoTracks)
}

// SelectTracks makes exactly the given track indexes selected.
// An unknown index leaves the previous selection in place.
func (c *Controller) SelectTracks(indexes []int) error {
	return c.mutate(func(s *State) error { return s.SelectOnlyTracks(indexes) })
}

// ToggleAlbum flips one artist album by listing position.
func (c *Controller) ToggleAlbum(pos int) error {
	return c.mutate(func(s *State) error { return s.ToggleAlbum(pos) })
}

// SetAlbumChecked checks or unchecks one artist album by listing position.
func (c *Controller) SetAlbumChecked(pos int, checked bool) error {
	return c.mutate(func(s *State) error { return s.SetAlbumChecked(pos, checked) })
}

// CheckAlbums makes exactly the given listing positions checked.
// An out-of-range position leaves the previous selection in place.
func (c *Controller) CheckAlbums(positions []int) error {
	return c.mutate(func(s *State) error { return s.CheckOnlyAlbums(positions) })
}

// CreateTask submits rawURL, honoring the album track selection.
func (c *Controller) CreateTask(ctx context.Context, rawURL string, opts Options) (*backend.CreateTaskResponse, error) {
	c.mu.Lock()
	req, err := BuildTaskRequest(rawURL, opts, &c.state)
	c.mu.Unlock()
	if err != nil {
		return nil, c.alert(err)
	}
	return c.submit(ctx, req)
}

// CreateTasksFromArtist submits every checked artist album in one request.
// Nothing is sent while no album is checked.
func (c *Controller) CreateTasksFromArtist(ctx context.Context, opts Options) (*backend.CreateTaskResponse, error) {
	c.mu.Lock()
	req, err := BuildArtistRequest(opts, &c.state)
	c.mu.Unlock()
	if err != nil {
		return nil, c.alert(err)
	}
	return c.submit(ctx, req)
}

// CreateBatch submits every URL found in raw, ignoring any loaded metadata.
func (c *Controller) CreateBatch(ctx context.Context, raw string, opts Options) (*backend.CreateTaskResponse, error) {
	req, err := BuildBatchRequest(raw, opts)
	if err != nil {
		return nil, c.alert(err)
	}
	return c.submit(ctx, req)
}

func (c *Controller) submit(ctx context.Context, req backend.CreateTaskRequest) (*backend.CreateTaskResponse, error) {
	resp, err := c.api.CreateTasks(ctx, req)
	if err != nil {
		c.logger.Debug("task creation failed", "urls", len(req.URLs), "error", err)
		return nil, c.alert(err)
	}
	c.logger.Info("tasks created", "count", resp.Count, "quality", req.Quality, "tracks", len(req.Tracks))

	c.mu.Lock()
	hook := c.onSubmit
	c.mu.Unlock()
	if hook != nil {
		hook(ctx, req, resp)
	}

	_ = c.RefreshTasks(ctx)
	return resp, nil
}

// RefreshTasks fetches and renders the task list.
// Failures are logged, never alerted, so background polling stays quiet.
func (c *Controller) RefreshTasks(ctx context.Context) error {
	tasks, err := c.api.Tasks(ctx)
	if err != nil {
		c.logger.Warn("task refresh failed", "error", err)
		return err
	}
	c.ui.RenderTasks(TaskRows(tasks))
	return nil
}

// Retry requeues a task and refreshes the list.
func (c *Controller) Retry(ctx context.Context, id string) error {
	if err := c.api.RetryTask(ctx, id); err != nil {
		return c.alert(err)
	}
	c.logger.Info("task requeued", "task_id", id)
	_ = c.RefreshTasks(ctx)
	return nil
}

// Cancel asks the backend to stop a task and refreshes the list.
func (c *Controller) Cancel(ctx context.Context, id string) error {
	if err := c.api.CancelTask(ctx, id); err != nil {
		return c.alert(err)
	}
	c.logger.Info("task cancel requested", "task_id", id)
	_ = c.RefreshTasks(ctx)
	return nil
}

// Delete removes a task that is not running and refreshes the list.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.api.DeleteTask(ctx, id); err != nil {
		return c.alert(err)
	}
	c.logger.Info("task deleted", "task_id", id)
	_ = c.RefreshTasks(ctx)
	return nil
}

// ClearCompleted removes finished tasks and refreshes the list.
func (c *Controller) ClearCompleted(ctx context.Context) (int, error) {
	n, err := c.api.ClearCompleted(ctx)
	if err != nil {
		return 0, c.alert(err)
	}
	c.logger.Info("finished tasks cleared", "count", n)
	_ = c.RefreshTasks(ctx)
	return n, nil
}

// Search runs a catalog keyword search. Results are returned, not rendered.
func (c *Controller) Search(ctx context.Context, req backend.SearchRequest) ([]backend.SearchItem, error) {
	items, err := c.api.Search(ctx, req)
	if err != nil {
		return nil, c.alert(err)
	}
	c.logger.Debug("search finished", "type", req.Type, "query", req.Query, "results", len(items))
	return items, nil
}

// CleanupDownloads empties the service's download folders.
func (c *Controller) CleanupDownloads(ctx context.Context) (*backend.CleanupResult, error) {
	res, err := c.api.CleanupDownloads(ctx)
	if err != nil {
		return nil, c.alert(err)
	}
	c.logger.Info("download folders cleaned", "files", res.DeletedFiles, "dirs", res.DeletedDirs)
	return res, nil
}

// Detail fetches one task and shows its summary.
func (c *Controller) Detail(ctx context.Context, id string) (TaskDetail, error) {
	task, err := c.api.Task(ctx, id)
	if err != nil {
		return TaskDetail{}, c.alert(err)
	}
	detail := DetailOf(task)
	c.ui.ShowDetail(detail)
	return detail, nil
}
