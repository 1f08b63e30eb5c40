// Package web serves the browser panel: a server-rendered page per session
// with an htmx-polled task list.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vmunix/ampanel/internal/config"
	"github.com/vmunix/ampanel/internal/panel"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Options configures the browser panel.
type Options struct {
	Tasks        panel.Options
	PollInterval time.Duration
	SessionIdle  time.Duration
	// OnSubmit is registered on every session's controller.
	OnSubmit panel.SubmitFunc
}

// Server renders the panel for any number of browser sessions.
type Server struct {
	opts     Options
	logger   *slog.Logger
	sessions *sessions
	tmpl     *template.Template
}

// NewServer creates a browser panel backed by api.
func NewServer(api panel.API, opts Options, logger *slog.Logger) *Server {
	if opts.PollInterval <= 0 {
		opts.PollInterval = panel.DefaultPollInterval
	}
	if opts.SessionIdle <= 0 {
		opts.SessionIdle = 24 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}

	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"isAlbum":  func(k panel.Kind) bool { return k == panel.KindAlbum },
		"isArtist": func(k panel.Kind) bool { return k == panel.KindArtist },
	}).ParseFS(templateFiles, "templates/*.html"))

	return &Server{
		opts:     opts,
		logger:   logger,
		sessions: newSessions(api, opts.Tasks.Quality, opts.SessionIdle, opts.OnSubmit, logger),
		tmpl:     tmpl,
	}
}

// Handler returns the HTTP handler for the panel.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logRequests(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.indexPage)
	r.Post("/meta", s.loadMetadata)
	r.Post("/tasks", s.createTask)
	r.Post("/tasks/artist", s.createArtistTasks)
	r.Post("/tasks/clear", s.clearCompleted)
	r.Get("/tasks/{id}", s.detailPage)
	r.Post("/tasks/{id}/retry", s.retryTask)
	r.Post("/tasks/{id}/cancel", s.cancelTask)
	r.Post("/tasks/{id}/delete", s.deleteTask)
	r.Get("/htmx/tasks", s.tasksHTMX)

	return r
}

type pageData struct {
	URL       string
	Quality   string
	Qualities []string
	Flashes   []string
	View      panel.MetadataView
	Rows      []panel.TaskRow
	PollEvery string
	Detail    *panel.TaskDetail
	// InlineFlashes are alerts shown inside the task fragment after an htmx action.
	InlineFlashes []string
}

func (s *Server) pageData(sess *session) pageData {
	url, quality := sess.input()
	return pageData{
		URL:       url,
		Quality:   quality,
		Qualities: config.ValidQualities,
		Flashes:   sess.ui.popFlashes(),
		View:      sess.ui.lastView(),
		Rows:      sess.ui.lastRows(),
		PollEvery: fmt.Sprintf("%dms", s.opts.PollInterval.Milliseconds()),
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template render failed", "template", name, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// back redirects to the index page, or re-renders the task fragment for htmx callers.
func (s *Server) back(w http.ResponseWriter, r *http.Request, sess *session) {
	if r.Header.Get("HX-Request") == "true" {
		s.render(w, "tasks", pageData{
			Rows:          sess.ui.lastRows(),
			InlineFlashes: sess.ui.popFlashes(),
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) taskOptions(sess *session) panel.Options {
	opts := s.opts.Tasks
	if _, q := sess.input(); q != "" {
		opts.Quality = q
	}
	return opts
}

// formInts parses every value of a repeated form field, skipping junk.
func formInts(r *http.Request, key string) []int {
	var out []int
	for _, v := range r.PostForm[key] {
		if n, err := strconv.Atoi(v); err == nil {
			out = append(out, n)
		}
	}
	return out
}
