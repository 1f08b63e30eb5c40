package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vmunix/ampanel/internal/panel"
)

func (s *Server) indexPage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	s.render(w, "page", s.pageData(sess))
}

func (s *Server) loadMetadata(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	url := r.PostForm.Get("url")
	sess.setInput(url, r.PostForm.Get("quality"))
	// Failures were already turned into a flash.
	_ = sess.ctrl.LoadMetadata(r.Context(), url)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	url := r.PostForm.Get("url")
	sess.setInput(url, r.PostForm.Get("quality"))

	if sess.ctrl.View().Kind == panel.KindAlbum && r.PostForm.Has("tracks_submitted") {
		if err := sess.ctrl.SelectTracks(formInts(r, "track")); err != nil {
			s.rejectSelection(w, r, sess, err)
			return
		}
	}

	_, _ = sess.ctrl.CreateTask(r.Context(), url, s.taskOptions(sess))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) createArtistTasks(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess.setInput(r.PostForm.Get("url"), r.PostForm.Get("quality"))

	if sess.ctrl.View().Kind == panel.KindArtist {
		if err := sess.ctrl.CheckAlbums(formInts(r, "album")); err != nil {
			s.rejectSelection(w, r, sess, err)
			return
		}
	}

	_, _ = sess.ctrl.CreateTasksFromArtist(r.Context(), s.taskOptions(sess))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// rejectSelection flashes a selection that no longer matches the loaded
// metadata and returns to the page without submitting anything.
func (s *Server) rejectSelection(w http.ResponseWriter, r *http.Request, sess *session, err error) {
	s.logger.Debug("stale selection rejected", "error", err)
	sess.ui.Alert("selection no longer matches the loaded metadata: " + err.Error())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// tasksHTMX refreshes and returns the task list fragment.
// A failed refresh keeps the previous rows; the controller logs it.
func (s *Server) tasksHTMX(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	_ = sess.ctrl.RefreshTasks(r.Context())
	s.render(w, "tasks", pageData{Rows: sess.ui.lastRows()})
}

func (s *Server) retryTask(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	_ = sess.ctrl.Retry(r.Context(), chi.URLParam(r, "id"))
	s.back(w, r, sess)
}

func (s *Server) cancelTask(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	_ = sess.ctrl.Cancel(r.Context(), chi.URLParam(r, "id"))
	s.back(w, r, sess)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	_ = sess.ctrl.Delete(r.Context(), chi.URLParam(r, "id"))
	s.back(w, r, sess)
}

func (s *Server) clearCompleted(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	_, _ = sess.ctrl.ClearCompleted(r.Context())
	s.back(w, r, sess)
}

func (s *Server) detailPage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	detail, err := sess.ctrl.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := s.pageData(sess)
	data.Detail = &detail
	s.render(w, "detail", data)
}
