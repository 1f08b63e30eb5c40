package web

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vmunix/ampanel/internal/panel"
)

const sessionCookie = "ampanel_session"

// sessionUI records what the controller renders so the next page can show it.
type sessionUI struct {
	mu      sync.Mutex
	flashes []string
	view    panel.MetadataView
	rows    []panel.TaskRow
	detail  *panel.TaskDetail
}

func (u *sessionUI) Alert(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.flashes = append(u.flashes, msg)
}

func (u *sessionUI) RenderMetadata(view panel.MetadataView) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.view = view
}

func (u *sessionUI) RenderTasks(rows []panel.TaskRow) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.rows = rows
}

func (u *sessionUI) ShowDetail(detail panel.TaskDetail) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.detail = &detail
}

// popFlashes returns pending alerts and clears them.
func (u *sessionUI) popFlashes() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := u.flashes
	u.flashes = nil
	return out
}

func (u *sessionUI) lastRows() []panel.TaskRow {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rows
}

func (u *sessionUI) lastView() panel.MetadataView {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.view
}

// session is one browser's panel.
type session struct {
	id   string
	ctrl *panel.Controller
	ui   *sessionUI

	mu       sync.Mutex
	url      string // last URL entered in the form
	quality  string
	lastSeen time.Time
}

func (s *session) setInput(url, quality string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = url
	if quality != "" {
		s.quality = quality
	}
}

func (s *session) input() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url, s.quality
}

// sessions hands out a controller per browser, keyed by a uuid cookie.
type sessions struct {
	api     panel.API
	logger  *slog.Logger
	idle    time.Duration
	quality string
	hook    panel.SubmitFunc

	mu   sync.Mutex
	byID map[string]*session
}

func newSessions(api panel.API, quality string, idle time.Duration, hook panel.SubmitFunc, logger *slog.Logger) *sessions {
	return &sessions{
		api:     api,
		logger:  logger,
		idle:    idle,
		quality: quality,
		hook:    hook,
		byID:    make(map[string]*session),
	}
}

// get returns the request's session, creating one and setting the cookie when needed.
func (m *sessions) get(w http.ResponseWriter, r *http.Request) *session {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked(now)

	if c, err := r.Cookie(sessionCookie); err == nil {
		if s, ok := m.byID[c.Value]; ok {
			s.lastSeen = now
			return s
		}
	}

	id := uuid.NewString()
	ui := &sessionUI{}
	ctrl := panel.NewController(m.api, ui, m.logger.With("session", id))
	if m.hook != nil {
		ctrl.OnSubmit(m.hook)
	}
	s := &session{id: id, ctrl: ctrl, ui: ui, quality: m.quality, lastSeen: now}
	m.byID[id] = s

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	m.logger.Debug("session created", "session", id)
	return s
}

func (m *sessions) pruneLocked(now time.Time) {
	for id, s := range m.byID {
		if now.Sub(s.lastSeen) > m.idle {
			delete(m.byID, id)
		}
	}
}

func (m *sessions) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}
