package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/vmunix/ampanel/internal/backend"
	"github.com/vmunix/ampanel/internal/config"
	"github.com/vmunix/ampanel/internal/panel"
	"github.com/vmunix/ampanel/internal/store"
)

// app bundles what a command needs to talk to the backend.
type app struct {
	client *backend.Client
	api    panel.API
	store  *store.Store // nil when the cache is unavailable
	ui     *cliUI // nil when a custom UI drives the controller
	ctrl   *panel.Controller
}

// newApp wires the backend client, the optional local store and a controller
// rendering into the command's output.
func newApp(cmd *cobra.Command) *app {
	ui := newCLIUI(cmd.OutOrStdout(), cmd.ErrOrStderr())
	a := newAppWithUI(ui)
	a.ui = ui
	return a
}

func newAppWithUI(ui panel.UI) *app {
	client := backend.NewClient(cfg.Server.URL, cfg.Server.Timeout)
	a := &app{client: client, api: client}

	if cfg.Cache.Path != "" {
		st, err := store.Open(cfg.Cache.Path)
		if err != nil {
			logger.Warn("local store unavailable, continuing without cache and history", "path", cfg.Cache.Path, "error", err)
		} else {
			a.store = st
		}
	}

	if a.store != nil && cfg.Cache.MetadataTTL > 0 {
		a.api = panel.NewCachedAPI(client, a.store, cfg.Cache.MetadataTTL, logger.With("component", "cache"))
	}

	a.ctrl = panel.NewController(a.api, ui, logger.With("component", "panel"))
	if a.store != nil {
		a.ctrl.OnSubmit(recordSubmission(a.store))
	}
	return a
}

func (a *app) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

func recordSubmission(st *store.Store) panel.SubmitFunc {
	return func(ctx context.Context, req backend.CreateTaskRequest, resp *backend.CreateTaskResponse) {
		err := st.RecordSubmission(ctx, store.Submission{
			TaskIDs: resp.TaskIDs,
			URLs:    req.URLs,
			Quality: req.Quality,
			Tracks:  req.Tracks,
		})
		if err != nil {
			logger.Warn("failed to record submission", "error", err)
		}
	}
}

// cliUI prints alerts immediately and keeps the latest renders for the command to print.
type cliUI struct {
	out    io.Writer
	errOut io.Writer

	mu     sync.Mutex
	alerts []string
	view   panel.MetadataView
	rows   []panel.TaskRow
	detail *panel.TaskDetail
}

func newCLIUI(out, errOut io.Writer) *cliUI {
	return &cliUI{out: out, errOut: errOut}
}

func (u *cliUI) Alert(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.alerts = append(u.alerts, msg)
	fmt.Fprintf(u.errOut, "Error: %s\n", msg)
}

func (u *cliUI) RenderMetadata(view panel.MetadataView) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.view = view
}

func (u *cliUI) RenderTasks(rows []panel.TaskRow) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.rows = rows
}

func (u *cliUI) ShowDetail(detail panel.TaskDetail) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.detail = &detail
}

func (u *cliUI) Rows() []panel.TaskRow {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rows
}

// addTaskFlags registers the per-request options shared by create and artist.
func addTaskFlags(cmd *cobra.Command) {
	cmd.Flags().String("quality", "", "Quality: alac, aac or atmos (default from config)")
	cmd.Flags().Bool("song-only", false, "Skip album extras, fetch songs only")
	cmd.Flags().Int("retries", -1, "Backend retry budget per task (default from config)")
}

// taskOptions merges flags over config and validates them before any request.
func taskOptions(cmd *cobra.Command) (panel.Options, error) {
	opts := panel.Options{
		Quality:    cfg.Tasks.Quality,
		SongOnly:   cfg.Tasks.SongOnly,
		MaxRetries: cfg.Tasks.MaxRetries,
	}

	if q, _ := cmd.Flags().GetString("quality"); q != "" {
		opts.Quality = q
	}
	if cmd.Flags().Changed("song-only") {
		opts.SongOnly, _ = cmd.Flags().GetBool("song-only")
	}
	if r, _ := cmd.Flags().GetInt("retries"); r >= 0 {
		opts.MaxRetries = r
	}

	if !config.IsValidQuality(opts.Quality) {
		return opts, fmt.Errorf("invalid quality %q: must be one of alac, aac, atmos", opts.Quality)
	}
	return opts, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printCreated(w io.Writer, resp *backend.CreateTaskResponse) error {
	if jsonOutput {
		return printJSON(w, resp)
	}
	fmt.Fprintf(w, "Created %d task(s):\n", resp.Count)
	for _, id := range resp.TaskIDs {
		fmt.Fprintf(w, "  %s\n", id)
	}
	return nil
}
